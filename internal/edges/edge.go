package edges

import (
	"fmt"
	"sort"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// WindowID identifies a toplevel window to the surrounding system.
type WindowID uint32

// Side names the side of the MOVING window that an edge resists or
// attracts. A stationary window's left boundary is therefore a
// SideRight edge: it is the moving window's right side that runs
// into it.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Kind classifies the source of an edge, which selects its resistance
// thresholds and timeouts.
type Kind int

const (
	KindWindow Kind = iota
	KindMonitor
	KindScreen
)

func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindMonitor:
		return "monitor"
	case KindScreen:
		return "screen"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Edge is a line segment that resists or attracts one side of a moving
// window. The rect is degenerate: left/right edges have zero width and
// a y extent, top/bottom edges have zero height and an x extent.
type Edge struct {
	Rect geometry.Rect
	Side Side
	Kind Kind
}

// Position returns the defining coordinate of the edge: x for
// left/right edges, y for top/bottom edges.
func (e Edge) Position() int {
	if e.Side == SideLeft || e.Side == SideRight {
		return e.Rect.X
	}
	return e.Rect.Y
}

// vertical reports whether the edge is a vertical segment (spans y).
func (e Edge) vertical() bool {
	return e.Side == SideLeft || e.Side == SideRight
}

// alignsWith reports whether the edge's segment overlaps the given rect
// on the axis perpendicular to the edge's position. A vertical edge
// must share part of the rect's y extent, a horizontal edge part of its
// x extent.
func (e Edge) alignsWith(rect geometry.Rect) bool {
	if e.vertical() {
		return geometry.VertOverlap(e.Rect, rect)
	}
	return geometry.HorizOverlap(e.Rect, rect)
}

// sortEdges orders a slice ascending by defining coordinate. Segments
// at equal positions are ordered by their start along the other axis so
// scans are deterministic.
func sortEdges(es []Edge) {
	sort.Slice(es, func(i, j int) bool {
		pi, pj := es[i].Position(), es[j].Position()
		if pi != pj {
			return pi < pj
		}
		if es[i].vertical() {
			return es[i].Rect.Y < es[j].Rect.Y
		}
		return es[i].Rect.X < es[j].Rect.X
	})
}
