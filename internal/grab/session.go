package grab

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/edgegrab/internal/edges"
	"github.com/1broseidon/edgegrab/internal/geometry"
)

// Kind identifies what a grab session is doing.
type Kind int

const (
	KindMove Kind = iota
	KindResize
	KindNudge
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindResize:
		return "resize"
	case KindNudge:
		return "nudge"
	}
	return "unknown"
}

// Direction represents an arrow key or nudge direction
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// ParseDirection maps the wire form used by the CLI and IPC payloads.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// Delta converts a direction into x/y increments of px pixels.
func (d Direction) Delta(px int) (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -px
	case DirDown:
		return 0, px
	case DirLeft:
		return -px, 0
	case DirRight:
		return px, 0
	}
	return 0, 0
}

// pending remembers the last requested change so an elapsed resistance
// timer can re-run it.
type pending struct {
	x, y     int
	w, h     int
	snap     bool
	keyboard bool
	hasMove  bool
	hasSize  bool
}

// Session is the state of one interactive move or resize, pointer or
// keyboard driven. It owns the edge cache computed when the grab began
// and releases it in end. All methods are called with the Manager
// lock held.
type Session struct {
	kind   Kind
	window xproto.Window
	button int // pointer sessions: the button that started the drag
	cache  *edges.Cache

	start   geometry.Rect // outer rect when the grab began
	current geometry.Rect // last applied outer rect
	anchorX int           // root pointer position at press
	anchorY int
	gravity geometry.Gravity

	pending  pending
	lastSnap bool

	// resizeKeys switches nudge arrows from moving to resizing.
	resizeKeys bool
}

// moveTo evaluates a pointer move. The proposed position derives from
// the original grab anchor, while resistance measures from where the
// window currently is, so a held window keeps feeling the pointer
// drift further past the edge.
func (s *Session) moveTo(rootX, rootY int, snap bool) (geometry.Rect, bool) {
	proposedX := s.start.X + rootX - s.anchorX
	proposedY := s.start.Y + rootY - s.anchorY
	return s.evalMove(proposedX, proposedY, snap, false)
}

// nudgeMove evaluates a keyboard nudge relative to the current rect.
func (s *Session) nudgeMove(dx, dy int, snap bool) (geometry.Rect, bool) {
	return s.evalMove(s.current.X+dx, s.current.Y+dy, snap, true)
}

func (s *Session) evalMove(proposedX, proposedY int, snap, keyboard bool) (geometry.Rect, bool) {
	s.pending = pending{x: proposedX, y: proposedY, snap: snap, keyboard: keyboard, hasMove: true}
	s.lastSnap = snap

	x, y := s.cache.ResistMove(s.current, proposedX, proposedY, edges.ResistFlags{Snap: snap, Keyboard: keyboard})
	rect := s.current.MoveTo(x, y)
	if rect == s.current {
		return rect, false
	}
	s.current = rect
	return rect, true
}

// resizeTo evaluates a pointer resize. Which sides follow the pointer
// depends on the gravity chosen at press time.
func (s *Session) resizeTo(rootX, rootY int, snap bool) (geometry.Rect, bool) {
	dx := rootX - s.anchorX
	dy := rootY - s.anchorY

	w := s.start.Width
	h := s.start.Height
	switch s.gravity {
	case geometry.GravityNorthWest, geometry.GravityWest, geometry.GravitySouthWest:
		w += dx
	case geometry.GravityNorthEast, geometry.GravityEast, geometry.GravitySouthEast:
		w -= dx
	}
	switch s.gravity {
	case geometry.GravityNorthWest, geometry.GravityNorth, geometry.GravityNorthEast:
		h += dy
	case geometry.GravitySouthWest, geometry.GravitySouth, geometry.GravitySouthEast:
		h -= dy
	}
	return s.evalResize(w, h, snap, false)
}

// nudgeResize evaluates a keyboard resize relative to the current rect.
func (s *Session) nudgeResize(dw, dh int, snap bool) (geometry.Rect, bool) {
	return s.evalResize(s.current.Width+dw, s.current.Height+dh, snap, true)
}

func (s *Session) evalResize(proposedW, proposedH int, snap, keyboard bool) (geometry.Rect, bool) {
	if proposedW < 1 {
		proposedW = 1
	}
	if proposedH < 1 {
		proposedH = 1
	}
	s.pending = pending{w: proposedW, h: proposedH, snap: snap, keyboard: keyboard, hasSize: true}
	s.lastSnap = snap

	w, h := s.cache.ResistResize(s.current, proposedW, proposedH, s.gravity, edges.ResistFlags{Snap: snap, Keyboard: keyboard})
	rect := geometry.ResizeWithGravity(s.current, s.gravity, w, h)
	if rect == s.current {
		return rect, false
	}
	s.current = rect
	return rect, true
}

// reevaluate re-runs the last requested change after a resistance
// timer elapsed, so a held window can now cross the edge.
func (s *Session) reevaluate() (geometry.Rect, bool) {
	switch {
	case s.pending.hasMove:
		return s.evalMove(s.pending.x, s.pending.y, s.pending.snap, s.pending.keyboard)
	case s.pending.hasSize:
		return s.evalResize(s.pending.w, s.pending.h, s.pending.snap, s.pending.keyboard)
	}
	return s.current, false
}

// end releases the edge cache.
func (s *Session) end() {
	s.cache.Cleanup()
}
