package edges

import (
	"testing"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

func TestResistMove_MouseSnapToNearestEdge(t *testing.T) {
	// Snap mode jumps the nearest side onto the nearest aligned edge:
	// a drag to 140 lands the left side exactly on the boundary at 150.
	c := newTestCache([]Edge{fullHeightEdge(150, SideLeft, KindWindow)})
	old := geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100}

	x, y := c.ResistMove(old, 140, old.Y, ResistFlags{Snap: true})
	if x != 150 || y != 100 {
		t.Errorf("ResistMove = (%d, %d), want (150, 100)", x, y)
	}
}

func TestResistMove_MouseSnapJitterSuppressed(t *testing.T) {
	// A snap of 8px or more is vetoed while the pointer itself moved
	// under 8px, so hand tremor near an edge cannot fling the window.
	old := geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100}

	tests := []struct {
		name      string
		proposedX int
		wantX     int
	}{
		{"small drag vetoed", 105, 100},
		{"deliberate drag snaps", 112, 109},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache([]Edge{fullHeightEdge(109, SideLeft, KindWindow)})

			x, _ := c.ResistMove(old, tt.proposedX, old.Y, ResistFlags{Snap: true})
			if x != tt.wantX {
				t.Errorf("ResistMove x=%d, want %d", x, tt.wantX)
			}
		})
	}
}

func TestResistMove_KeyboardSnapJumpsForward(t *testing.T) {
	// A snapped nudge travels all the way to the next edge in its
	// direction, however far. The right side has nothing to land on, so
	// its zero change yields to the left side's jump.
	c := newTestCache([]Edge{fullHeightEdge(150, SideLeft, KindWindow)})
	old := geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100}

	x, y := c.ResistMove(old, 110, old.Y, ResistFlags{Snap: true, Keyboard: true})
	if x != 150 || y != 100 {
		t.Errorf("ResistMove = (%d, %d), want (150, 100)", x, y)
	}
}

func TestResistMove_KeyboardSnapRefusesBackward(t *testing.T) {
	// The only edge lies behind a rightward nudge; with nothing ahead
	// to land on, the snapped nudge goes nowhere.
	c := newTestCache([]Edge{fullHeightEdge(50, SideLeft, KindWindow)})
	old := geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100}

	x, y := c.ResistMove(old, 110, old.Y, ResistFlags{Snap: true, Keyboard: true})
	if x != 100 || y != 100 {
		t.Errorf("ResistMove = (%d, %d), want (100, 100)", x, y)
	}
}

func TestSnap_LeavesResistanceStateAlone(t *testing.T) {
	// Snapping evaluations must not touch buildup or timers; a grab
	// can toggle between snap and resistance mid-drag.
	c := newTestCache([]Edge{fullHeightEdge(150, SideLeft, KindWindow)})
	old := geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100}

	c.ResistMove(old, 140, old.Y, ResistFlags{Snap: true})
	c.ResistMove(old, 110, old.Y, ResistFlags{Snap: true, Keyboard: true})

	for _, side := range []Side{SideLeft, SideRight, SideTop, SideBottom} {
		st := c.Status(side)
		if st.Buildup != 0 || st.TimerArmed || st.TimerElapsed {
			t.Errorf("side %v state mutated by snapping: %+v", side, st)
		}
	}
}

func TestSnap_NoEdgesKeepsWindowPut(t *testing.T) {
	// Snap mode only ever lands on edges. With none to land on the
	// window stays where it was, whatever the drag distance.
	c := newTestCache(nil)
	old := geometry.Rect{X: 100, Y: 100, Width: 200, Height: 100}

	x, y := c.ResistMove(old, 500, 700, ResistFlags{Snap: true})
	if x != 100 || y != 100 {
		t.Errorf("ResistMove = (%d, %d), want (100, 100)", x, y)
	}
}
