package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/edgegrab/internal/edges"
)

// BuildStack assembles the stationary windows relevant to a grab of the
// given window, bottom to top in stacking order: showing, on the
// current desktop, and of a type that either contributes edges or
// obscures them (docks). The grabbed window itself is excluded; its
// edges would only resist itself.
func (c *Connection) BuildStack(grabbed xproto.Window) ([]edges.WindowInfo, error) {
	stacking, err := ewmh.ClientListStackingGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("get stacking list: %w", err)
	}

	currentDesktop := -1
	if d, err := c.GetCurrentDesktop(); err == nil {
		currentDesktop = d
	}

	var stack []edges.WindowInfo
	for _, win := range stacking {
		if win == grabbed {
			continue
		}

		kind := c.ClassifyWindow(win)
		if kind == TypeIgnored {
			continue
		}
		if c.IsHidden(win) {
			continue
		}
		if currentDesktop >= 0 && !c.onDesktop(win, currentDesktop) {
			continue
		}

		rect, err := c.OuterRect(win)
		if err != nil {
			// The window may have gone away between the list query and
			// the geometry query.
			continue
		}

		stack = append(stack, edges.WindowInfo{
			ID:   edges.WindowID(win),
			Rect: rect,
			Dock: kind == TypeDock,
		})
	}

	return stack, nil
}

// onDesktop reports whether a window lives on the given desktop or is
// sticky.
func (c *Connection) onDesktop(win xproto.Window, desktop int) bool {
	d, err := c.GetWindowDesktop(uint32(win))
	if err != nil {
		return true
	}
	return d == -1 || d == desktop
}
