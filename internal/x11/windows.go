package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// FrameExtents holds the window manager decoration sizes around a
// client window.
type FrameExtents struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// GetFrameExtents returns the window decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (FrameExtents, error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		// No frame extents available, treat as undecorated
		return FrameExtents{}, nil
	}
	return FrameExtents{
		Left:   int(extents.Left),
		Right:  int(extents.Right),
		Top:    int(extents.Top),
		Bottom: int(extents.Bottom),
	}, nil
}

// ClientRect returns a window's client geometry in root coordinates.
func (c *Connection) ClientRect(windowID xproto.Window) (geometry.Rect, error) {
	conn := c.XUtil.Conn()

	geom, err := xproto.GetGeometry(conn, xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("get geometry of %d: %w", windowID, err)
	}

	translate, err := xproto.TranslateCoordinates(conn, windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("translate coordinates of %d: %w", windowID, err)
	}

	return geometry.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// OuterRect returns a window's geometry including its frame, the rect
// that edge logic works in. Undecorated windows come back unchanged.
func (c *Connection) OuterRect(windowID xproto.Window) (geometry.Rect, error) {
	client, err := c.ClientRect(windowID)
	if err != nil {
		return geometry.Rect{}, err
	}
	ext, _ := c.GetFrameExtents(windowID)
	return geometry.Rect{
		X:      client.X - ext.Left,
		Y:      client.Y - ext.Top,
		Width:  client.Width + ext.Left + ext.Right,
		Height: client.Height + ext.Top + ext.Bottom,
	}, nil
}

// SetOuterRect moves/resizes a window so that its outer rect (frame
// included) lands on the given geometry.
func (c *Connection) SetOuterRect(windowID xproto.Window, outer geometry.Rect) error {
	ext, _ := c.GetFrameExtents(windowID)
	return c.MoveResizeWindow(windowID,
		outer.X+ext.Left,
		outer.Y+ext.Top,
		outer.Width-ext.Left-ext.Right,
		outer.Height-ext.Top-ext.Bottom,
	)
}

// MoveResizeWindow moves and resizes a window to the specified client
// geometry.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	// Create xwindow wrapper
	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(
		c.XUtil,
		windowID,
		x, y, width, height,
	)

	if err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, width, height)
		return nil
	}

	return nil
}

// UnmaximizeWindow removes maximized state from a window. Dragging a
// maximized window makes no sense, so a grab clears the state first.
func (c *Connection) UnmaximizeWindow(windowID xproto.Window) error {
	// Get current window states
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	hasMaxH := false
	hasMaxV := false

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" {
			hasMaxH = true
		}
		if state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			hasMaxV = true
		}
	}

	if hasMaxH {
		ewmh.WmStateReq(c.XUtil, windowID, 0, "_NET_WM_STATE_MAXIMIZED_HORZ")
	}
	if hasMaxV {
		ewmh.WmStateReq(c.XUtil, windowID, 0, "_NET_WM_STATE_MAXIMIZED_VERT")
	}

	return nil
}

// WindowType classifies a window for edge purposes.
type WindowType int

const (
	// TypeNormal windows contribute edges and can be grabbed.
	TypeNormal WindowType = iota
	// TypeDock windows obscure edges behind them but contribute none.
	TypeDock
	// TypeIgnored windows play no part at all (desktop, menus, splash
	// screens, notifications).
	TypeIgnored
)

// ClassifyWindow inspects _NET_WM_WINDOW_TYPE.
func (c *Connection) ClassifyWindow(windowID xproto.Window) WindowType {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return TypeNormal
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_UTILITY":
			return TypeNormal
		case "_NET_WM_WINDOW_TYPE_DOCK":
			return TypeDock
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_MENU",
			"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
			"_NET_WM_WINDOW_TYPE_POPUP_MENU",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLTIP":
			return TypeIgnored
		}
	}

	// If no specific type is set, assume it's normal
	return TypeNormal
}

// IsHidden reports whether a window is minimized or otherwise not
// showing.
func (c *Connection) IsHidden(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// WindowTitle returns a window's _NET_WM_NAME, or an empty string.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	name, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return name
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// PointerPosition returns the pointer's current root coordinates.
func (c *Connection) PointerPosition() (int, int, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}
