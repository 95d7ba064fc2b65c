package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// ModifierMask maps a config modifier name to its X modifier bit.
func ModifierMask(name string) (uint16, error) {
	switch name {
	case "shift":
		return xproto.ModMaskShift, nil
	case "control":
		return xproto.ModMaskControl, nil
	case "mod1":
		return xproto.ModMask1, nil
	case "mod2":
		return xproto.ModMask2, nil
	case "mod3":
		return xproto.ModMask3, nil
	case "mod4":
		return xproto.ModMask4, nil
	case "mod5":
		return xproto.ModMask5, nil
	}
	return 0, fmt.Errorf("unknown modifier %q", name)
}
