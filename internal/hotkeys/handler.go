package hotkeys

import (
	"fmt"
	"log"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/edgegrab/internal/config"
	"github.com/1broseidon/edgegrab/internal/grab"
	"github.com/1broseidon/edgegrab/internal/x11"
)

// Handler registers the global bindings that start drag assistance:
// passive modifier+button grabs on the root window for pointer drags,
// and the keyboard hotkey that enters nudge mode.
type Handler struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	manager *grab.Manager

	dragHandlersAttached bool
}

// ignoreModsOnce guards one-time setup of modifier combinations
// (caps lock, num lock, scroll lock) that should not block bindings.
var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler bound to the given connection.
func NewHandler(conn *x11.Connection, manager *grab.Manager) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	return &Handler{
		xu:      conn.XUtil,
		root:    conn.Root,
		manager: manager,
	}
}

// Register binds everything the config asks for: the move and resize
// button grabs and the nudge mode hotkey. Bindings are established
// once at startup; changing buttons or modifiers requires a restart.
func (h *Handler) Register(cfg *config.Config) error {
	if err := h.registerButtonGrabs(cfg); err != nil {
		return err
	}

	if err := h.RegisterFunc(cfg.NudgeKey, func() {
		if err := h.manager.EnterNudgeMode(); err != nil {
			log.Printf("Failed to enter nudge mode: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to register nudge_key %q: %w", cfg.NudgeKey, err)
	}

	return nil
}

// RegisterFunc registers a hotkey that invokes an arbitrary callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// registerButtonGrabs establishes passive grabs for the configured
// modifier+button combinations on the root window. When a grab
// activates, press, motion and release events are reported against
// the root, so the drag handlers connect there.
func (h *Handler) registerButtonGrabs(cfg *config.Config) error {
	modMask, err := x11.ModifierMask(cfg.Modifier)
	if err != nil {
		return err
	}

	for _, button := range []int{cfg.MoveButton, cfg.ResizeButton} {
		if err := h.grabButton(xproto.Button(button), modMask); err != nil {
			return fmt.Errorf("failed to grab button %d with modifier %q: %w", button, cfg.Modifier, err)
		}
	}

	if !h.dragHandlersAttached {
		xevent.ButtonPressFun(h.manager.HandleButtonPress).Connect(h.xu, h.root)
		xevent.MotionNotifyFun(h.manager.HandleMotion).Connect(h.xu, h.root)
		xevent.ButtonReleaseFun(h.manager.HandleButtonRelease).Connect(h.xu, h.root)
		h.dragHandlersAttached = true
	}

	return nil
}

// grabButton grabs one button for every ignorable lock-modifier
// combination, mirroring what keybind does for key grabs.
func (h *Handler) grabButton(button xproto.Button, modMask uint16) error {
	eventMask := uint16(xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion)

	for _, ignore := range xevent.IgnoreMods {
		err := xproto.GrabButtonChecked(
			h.xu.Conn(),
			false,
			h.root,
			eventMask,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
			0,
			0,
			byte(button),
			modMask|ignore,
		).Check()
		if err != nil {
			return err
		}
	}

	return nil
}

// configureIgnoreMods sets up xgbutil's ignore-modifiers list so that
// bindings fire regardless of lock key states (caps lock, num lock,
// scroll lock).
func configureIgnoreMods(xu *xgbutil.XUtil) {
	var base []uint16

	// Caps lock is always the lock modifier.
	base = append(base, xproto.ModMaskLock)

	if numLock := modMaskForKeysym(xu, "Num_Lock"); numLock != 0 {
		base = append(base, numLock)
	}
	if scrollLock := modMaskForKeysym(xu, "Scroll_Lock"); scrollLock != 0 {
		base = append(base, scrollLock)
	}

	// Build every combination of the lock masks, starting with no
	// modifier at all.
	mods := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for i, m := range base {
			if subset&(1<<i) != 0 {
				mask |= m
			}
		}
		unique := true
		for _, existing := range mods {
			if existing == mask {
				unique = false
				break
			}
		}
		if unique {
			mods = append(mods, mask)
		}
	}

	xevent.IgnoreMods = mods
}

// modMaskForKeysym reports the modifier mask a keysym is attached to,
// or 0 when the keysym is not mapped to any modifier.
func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	keycodes := keybind.StrToKeycodes(xu, keysym)
	for _, keycode := range keycodes {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
