package edges

import "github.com/1broseidon/edgegrab/internal/geometry"

// WindowInfo describes one stationary window considered during edge
// extraction. The caller supplies the stack bottom to top, already
// filtered to windows whose edges can matter for the grab: showing, on
// the grab's screen, not the grabbed window itself, and not a
// desktop/menu/splash window. Dock windows obscure edges behind them
// but contribute none of their own; their boundaries are folded into
// the screen edges by the work-area computation.
type WindowInfo struct {
	ID   WindowID
	Rect geometry.Rect // outer rect
	Dock bool
}

// extractWindowEdges builds the window-kind edges for a grab: each
// window's four boundaries, clipped to the screen, with the portions
// covered by higher-stacked windows removed. A boundary wholly behind
// a higher window contributes nothing.
func extractWindowEdges(stack []WindowInfo, screen geometry.Rect) []Edge {
	var out []Edge

	for i, win := range stack {
		if win.Dock {
			continue
		}

		// Offscreen portions can't be snapped to.
		reduced, ok := win.Rect.Intersect(screen)
		if !ok {
			continue
		}

		candidates := []Edge{
			// Left boundary resists the moving window's right side.
			{Rect: geometry.Rect{X: reduced.X, Y: reduced.Y, Width: 0, Height: reduced.Height},
				Side: SideRight, Kind: KindWindow},
			// Right boundary resists the moving window's left side.
			{Rect: geometry.Rect{X: reduced.Right(), Y: reduced.Y, Width: 0, Height: reduced.Height},
				Side: SideLeft, Kind: KindWindow},
			// Top boundary resists the moving window's bottom side.
			{Rect: geometry.Rect{X: reduced.X, Y: reduced.Y, Width: reduced.Width, Height: 0},
				Side: SideBottom, Kind: KindWindow},
			// Bottom boundary resists the moving window's top side.
			{Rect: geometry.Rect{X: reduced.X, Y: reduced.Bottom(), Width: reduced.Width, Height: 0},
				Side: SideTop, Kind: KindWindow},
		}

		// Only windows stacked strictly above this one obscure its
		// boundaries. Docks count here even though they emit no edges.
		for _, above := range stack[i+1:] {
			var remaining []Edge
			for _, e := range candidates {
				remaining = append(remaining, subtractRect(e, above.Rect)...)
			}
			candidates = remaining
		}

		out = append(out, candidates...)
	}

	return out
}

// subtractRect removes the portion of an edge's segment covered by a
// rect. The rect only covers the edge where it strictly crosses the
// edge's line; a window exactly abutting an edge leaves it visible.
func subtractRect(e Edge, r geometry.Rect) []Edge {
	if e.vertical() {
		if !(r.X < e.Rect.X && e.Rect.X < r.Right()) {
			return []Edge{e}
		}
		return splitSpan(e, e.Rect.Y, e.Rect.Bottom(), r.Y, r.Bottom())
	}
	if !(r.Y < e.Rect.Y && e.Rect.Y < r.Bottom()) {
		return []Edge{e}
	}
	return splitSpan(e, e.Rect.X, e.Rect.Right(), r.X, r.Right())
}

// splitSpan returns the parts of [lo, hi) outside [cutLo, cutHi),
// rebuilt as segments like e.
func splitSpan(e Edge, lo, hi, cutLo, cutHi int) []Edge {
	if cutHi <= lo || hi <= cutLo {
		return []Edge{e}
	}
	var out []Edge
	if cutLo > lo {
		out = append(out, e.withSpan(lo, cutLo))
	}
	if cutHi < hi {
		out = append(out, e.withSpan(cutHi, hi))
	}
	return out
}

// withSpan returns a copy of the edge restricted to [lo, hi) along its
// segment axis.
func (e Edge) withSpan(lo, hi int) Edge {
	ne := e
	if e.vertical() {
		ne.Rect.Y = lo
		ne.Rect.Height = hi - lo
	} else {
		ne.Rect.X = lo
		ne.Rect.Width = hi - lo
	}
	return ne
}

// MonitorEdges builds the monitor-kind edges for a monitor layout: a
// pair of edges facing both ways wherever two monitors meet, covering
// the extent they share. A monitor border lying on the screen border
// yields nothing here; the screen edges own it.
func MonitorEdges(monitors []geometry.Rect) []Edge {
	var out []Edge
	for i, a := range monitors {
		for j, b := range monitors {
			if i == j {
				continue
			}

			// a directly left of b: the shared boundary resists the
			// right side of windows on a and the left side of windows
			// on b.
			if a.Right() == b.X && geometry.VertOverlap(a, b) {
				lo := max(a.Y, b.Y)
				hi := min(a.Bottom(), b.Bottom())
				seg := geometry.Rect{X: a.Right(), Y: lo, Width: 0, Height: hi - lo}
				out = append(out,
					Edge{Rect: seg, Side: SideRight, Kind: KindMonitor},
					Edge{Rect: seg, Side: SideLeft, Kind: KindMonitor},
				)
			}

			// a directly above b.
			if a.Bottom() == b.Y && geometry.HorizOverlap(a, b) {
				lo := max(a.X, b.X)
				hi := min(a.Right(), b.Right())
				seg := geometry.Rect{X: lo, Y: a.Bottom(), Width: hi - lo, Height: 0}
				out = append(out,
					Edge{Rect: seg, Side: SideBottom, Kind: KindMonitor},
					Edge{Rect: seg, Side: SideTop, Kind: KindMonitor},
				)
			}
		}
	}
	return out
}

// ScreenEdges builds the screen-kind edges for the usable screen area
// (root bounds minus dock struts). They face inward: each resists the
// matching side of the moving window from within.
func ScreenEdges(region geometry.Rect) []Edge {
	return []Edge{
		{Rect: geometry.Rect{X: region.X, Y: region.Y, Width: 0, Height: region.Height},
			Side: SideLeft, Kind: KindScreen},
		{Rect: geometry.Rect{X: region.Right(), Y: region.Y, Width: 0, Height: region.Height},
			Side: SideRight, Kind: KindScreen},
		{Rect: geometry.Rect{X: region.X, Y: region.Y, Width: region.Width, Height: 0},
			Side: SideTop, Kind: KindScreen},
		{Rect: geometry.Rect{X: region.X, Y: region.Bottom(), Width: region.Width, Height: 0},
			Side: SideBottom, Kind: KindScreen},
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
