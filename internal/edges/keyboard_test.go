package edges

import (
	"testing"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// nudge applies one keyboard move step and returns the resulting rect.
func nudge(c *Cache, r geometry.Rect, dx, dy int) geometry.Rect {
	x, y := c.ResistMove(r, r.X+dx, r.Y+dy, ResistFlags{Keyboard: true})
	return r.MoveTo(x, y)
}

func TestKeyboardBuildup_AccumulatesThenReleases(t *testing.T) {
	// A window boundary at 300 blocks 10px leftward nudges until the
	// deposited energy reaches the 16px threshold. The first block
	// seeds the counter with 1, later blocks add the full nudge.
	c := newTestCache([]Edge{fullHeightEdge(300, SideLeft, KindWindow)})
	r := geometry.Rect{X: 310, Y: 100, Width: 200, Height: 100}

	r = nudge(c, r, -10, 0)
	if r.X != 300 {
		t.Fatalf("first nudge: x=%d, want 300 (parked at edge)", r.X)
	}
	if got := c.Status(SideLeft).Buildup; got != 1 {
		t.Fatalf("buildup after first block = %d, want 1", got)
	}

	r = nudge(c, r, -10, 0)
	if r.X != 300 {
		t.Fatalf("second nudge: x=%d, want 300 (still parked)", r.X)
	}
	if got := c.Status(SideLeft).Buildup; got != 11 {
		t.Fatalf("buildup after second block = %d, want 11", got)
	}

	// 16-11 leaves a 5px threshold; a 10px nudge clears it.
	r = nudge(c, r, -10, 0)
	if r.X != 290 {
		t.Fatalf("third nudge: x=%d, want 290 (released)", r.X)
	}
	if got := c.Status(SideLeft).Buildup; got != 0 {
		t.Errorf("buildup after release = %d, want 0", got)
	}
}

func TestKeyboardBuildup_FastNudgeCrossesImmediately(t *testing.T) {
	// Landing at least the threshold distance past the edge needs no
	// accumulated energy.
	c := newTestCache([]Edge{fullHeightEdge(300, SideLeft, KindWindow)})
	r := geometry.Rect{X: 310, Y: 100, Width: 200, Height: 100}

	r = nudge(c, r, -26, 0)
	if r.X != 284 {
		t.Fatalf("fast nudge: x=%d, want 284", r.X)
	}
	if got := c.Status(SideLeft).Buildup; got != 0 {
		t.Errorf("buildup after clean crossing = %d, want 0", got)
	}
}

func TestKeyboardBuildup_SharedCoordinateCountsOnce(t *testing.T) {
	// Two stationary windows sharing the boundary at 300 present two
	// edges at the same coordinate. Energy built against one carries
	// to the other, so the release nudge clears both at once.
	c := newTestCache([]Edge{
		fullHeightEdge(300, SideLeft, KindWindow),
		fullHeightEdge(300, SideLeft, KindWindow),
	})
	r := geometry.Rect{X: 310, Y: 100, Width: 200, Height: 100}

	r = nudge(c, r, -10, 0)
	r = nudge(c, r, -10, 0)
	if r.X != 300 {
		t.Fatalf("still parked: x=%d, want 300", r.X)
	}

	r = nudge(c, r, -10, 0)
	if r.X != 290 {
		t.Fatalf("release nudge: x=%d, want 290 (through both edges)", r.X)
	}
}

func TestKeyboardBuildup_ResetAtDifferentCoordinate(t *testing.T) {
	// Breaking through the edge at 300 immediately runs into another
	// boundary at 295. The 295 edge is a fresh obstacle: the old
	// energy is discarded and the window parks there.
	c := newTestCache([]Edge{
		fullHeightEdge(300, SideLeft, KindWindow),
		fullHeightEdge(295, SideLeft, KindWindow),
	})
	r := geometry.Rect{X: 310, Y: 100, Width: 200, Height: 100}

	r = nudge(c, r, -10, 0)
	r = nudge(c, r, -10, 0)
	if r.X != 300 {
		t.Fatalf("park at first edge: x=%d, want 300", r.X)
	}

	r = nudge(c, r, -10, 0)
	if r.X != 295 {
		t.Fatalf("after breaking 300: x=%d, want 295 (parked at next edge)", r.X)
	}
	if got := c.Status(SideLeft).Buildup; got != 1 {
		t.Errorf("buildup restarted = %d, want 1", got)
	}
}

func TestKeyboardBuildup_AwayFromEdgeAlsoSticky(t *testing.T) {
	// Leaving a window edge behind takes the same 16px of energy as
	// approaching it.
	c := newTestCache([]Edge{fullHeightEdge(300, SideLeft, KindWindow)})
	r := geometry.Rect{X: 300, Y: 100, Width: 200, Height: 100}

	r = nudge(c, r, 10, 0)
	if r.X != 300 {
		t.Fatalf("first away nudge: x=%d, want 300", r.X)
	}
	r = nudge(c, r, 10, 0)
	if r.X != 300 {
		t.Fatalf("second away nudge: x=%d, want 300", r.X)
	}
	r = nudge(c, r, 10, 0)
	if r.X != 310 {
		t.Fatalf("third away nudge: x=%d, want 310 (released)", r.X)
	}
}

func TestKeyboardBuildup_ThresholdsByKind(t *testing.T) {
	// A nudge landing 16px past the edge crosses a window boundary
	// outright but is short of the monitor (24) and screen (32)
	// thresholds.
	tests := []struct {
		name  string
		kind  Kind
		wantX int
	}{
		{"window crossed", KindWindow, 284},
		{"monitor blocked", KindMonitor, 300},
		{"screen blocked", KindScreen, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache([]Edge{fullHeightEdge(300, SideLeft, tt.kind)})
			r := geometry.Rect{X: 310, Y: 100, Width: 200, Height: 100}

			r = nudge(c, r, -26, 0)
			if r.X != tt.wantX {
				t.Errorf("26px nudge against %v edge: x=%d, want %d", tt.kind, r.X, tt.wantX)
			}
		})
	}
}
