package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Rect returns the monitor's bounds.
func (m Monitor) Rect() geometry.Rect {
	return geometry.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	// Get screen resources
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		// Get output name
		outputName := fmt.Sprintf("Monitor%d", i)
		if len(crtcInfo.Outputs) > 0 {
			outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
			if err == nil {
				outputName = string(outputInfo.Name)
			}
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// MonitorRects returns the monitor bounds, for boundary-edge
// construction. A single-monitor setup comes back as one rect and
// yields no interior boundaries.
func (c *Connection) MonitorRects() ([]geometry.Rect, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	rects := make([]geometry.Rect, 0, len(monitors))
	for _, m := range monitors {
		rects = append(rects, m.Rect())
	}
	return rects, nil
}

// RootRect returns the full root window bounds across all monitors.
func (c *Connection) RootRect() (geometry.Rect, error) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("get root geometry: %w", err)
	}
	return geometry.Rect{
		X:      0,
		Y:      0,
		Width:  int(rootGeom.Width),
		Height: int(rootGeom.Height),
	}, nil
}

// WorkArea returns the usable screen region: the root bounds shrunk by
// dock struts, so panel boundaries behave like screen borders. Falls
// back to the EWMH work area property, then to the raw root bounds.
func (c *Connection) WorkArea() (geometry.Rect, error) {
	root, err := c.RootRect()
	if err != nil {
		return geometry.Rect{}, err
	}

	if folded, ok := c.foldDockStruts(root); ok {
		return folded, nil
	}

	// Fallback: respect the work area the window manager advertises.
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err == nil && len(workArea) > 0 {
		desktopIndex := 0
		if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
			if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
				desktopIndex = int(currentDesktop)
			}
		}
		wa := workArea[desktopIndex]
		waRect := geometry.Rect{
			X:      int(wa.X),
			Y:      int(wa.Y),
			Width:  int(wa.Width),
			Height: int(wa.Height),
		}
		if r, ok := root.Intersect(waRect); ok {
			return r, nil
		}
	}

	return root, nil
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

// foldDockStruts shrinks the root bounds by every dock's reserved area.
// Reports false when no dock reserves anything, so the caller can try
// the EWMH work area instead.
func (c *Connection) foldDockStruts(root geometry.Rect) (geometry.Rect, bool) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return root, false
	}

	var struts dockStruts
	for _, windowID := range clients {
		if c.ClassifyWindow(windowID) != TypeDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			accumulateStruts(root, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(root.Height - 1),
				RightStartY:  0,
				RightEndY:    uint(root.Height - 1),
				TopStartX:    0,
				TopEndX:      uint(root.Width - 1),
				BottomStartX: 0,
				BottomEndX:   uint(root.Width - 1),
			}
			accumulateStruts(root, sp, &struts)
		}
	}

	if struts.left == 0 && struts.right == 0 && struts.top == 0 && struts.bottom == 0 {
		return root, false
	}

	folded := geometry.Rect{
		X:      root.X + struts.left,
		Y:      root.Y + struts.top,
		Width:  root.Width - struts.left - struts.right,
		Height: root.Height - struts.top - struts.bottom,
	}
	if folded.Width < 1 {
		folded.Width = 1
	}
	if folded.Height < 1 {
		folded.Height = 1
	}
	return folded, true
}

// accumulateStruts merges one dock's reservations into the running
// per-side maxima, counting only the parts that overlap the root rect.
func accumulateStruts(root geometry.Rect, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		band := geometry.Rect{
			X:      int(sp.TopStartX),
			Y:      0,
			Width:  int(sp.TopEndX) + 1 - int(sp.TopStartX),
			Height: int(sp.Top),
		}
		if isect, ok := root.Intersect(band); ok {
			acc.top = max(acc.top, isect.Height)
		}
	}

	// Bottom strut: y=[rootBottom-Bottom,rootBottom), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		band := geometry.Rect{
			X:      int(sp.BottomStartX),
			Y:      root.Bottom() - int(sp.Bottom),
			Width:  int(sp.BottomEndX) + 1 - int(sp.BottomStartX),
			Height: int(sp.Bottom),
		}
		if isect, ok := root.Intersect(band); ok {
			acc.bottom = max(acc.bottom, isect.Height)
		}
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		band := geometry.Rect{
			X:      0,
			Y:      int(sp.LeftStartY),
			Width:  int(sp.Left),
			Height: int(sp.LeftEndY) + 1 - int(sp.LeftStartY),
		}
		if isect, ok := root.Intersect(band); ok {
			acc.left = max(acc.left, isect.Width)
		}
	}

	// Right strut: x=[rootRight-Right,rootRight), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		band := geometry.Rect{
			X:      root.Right() - int(sp.Right),
			Y:      int(sp.RightStartY),
			Width:  int(sp.Right),
			Height: int(sp.RightEndY) + 1 - int(sp.RightStartY),
		}
		if isect, ok := root.Intersect(band); ok {
			acc.right = max(acc.right, isect.Width)
		}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
