package grab

import (
	"testing"

	"github.com/1broseidon/edgegrab/internal/edges"
	"github.com/1broseidon/edgegrab/internal/geometry"
)

// testSession builds a pointer session over an empty 1920x1080 screen,
// so the only edges are the four screen borders.
func testSession(kind Kind, rect geometry.Rect, anchorX, anchorY int) *Session {
	screen := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	info := edges.GrabInfo{
		Window:      7,
		WindowRect:  rect,
		ScreenRect:  screen,
		AnchorRootY: anchorY,
	}
	cache := edges.ComputeEdges(info, nil, nil, edges.ScreenEdges(screen), nil)
	return &Session{
		kind:    kind,
		window:  7,
		cache:   cache,
		start:   rect,
		current: rect,
		anchorX: anchorX,
		anchorY: anchorY,
	}
}

func TestSessionMove_FollowsPointer(t *testing.T) {
	start := geometry.Rect{X: 500, Y: 300, Width: 400, Height: 300}
	s := testSession(KindMove, start, 600, 350)
	defer s.end()

	rect, changed := s.moveTo(630, 370, false)
	want := geometry.Rect{X: 530, Y: 320, Width: 400, Height: 300}
	if !changed || rect != want {
		t.Fatalf("moveTo(630, 370) = %+v changed=%v, want %+v changed=true", rect, changed, want)
	}
	if s.current != want {
		t.Fatalf("current = %+v, want %+v", s.current, want)
	}

	// Same pointer position again is a no-op.
	rect, changed = s.moveTo(630, 370, false)
	if changed || rect != want {
		t.Fatalf("repeated moveTo = %+v changed=%v, want unchanged", rect, changed)
	}
}

func TestSessionMove_HeldAtScreenEdge(t *testing.T) {
	start := geometry.Rect{X: 100, Y: 300, Width: 200, Height: 150}
	s := testSession(KindMove, start, 150, 350)
	defer s.end()

	// Free drift left, short of the screen border.
	rect, changed := s.moveTo(130, 350, false)
	if !changed || rect.X != 80 {
		t.Fatalf("free move: got x=%d changed=%v, want x=80", rect.X, changed)
	}

	// Pointer pushes the window 20px past the border: held at 0.
	rect, changed = s.moveTo(30, 350, false)
	if !changed || rect.X != 0 {
		t.Fatalf("push past border: got x=%d changed=%v, want x=0", rect.X, changed)
	}

	// A little further, still under the 32px screen threshold: no change.
	rect, changed = s.moveTo(25, 350, false)
	if changed || rect.X != 0 {
		t.Fatalf("held position: got x=%d changed=%v, want x=0 unchanged", rect.X, changed)
	}

	// 48px past the border breaks through.
	rect, changed = s.moveTo(2, 350, false)
	if !changed || rect.X != -48 {
		t.Fatalf("break through: got x=%d changed=%v, want x=-48", rect.X, changed)
	}
}

func TestSessionResize_AnchorsOppositeCorner(t *testing.T) {
	start := geometry.Rect{X: 500, Y: 300, Width: 400, Height: 300}
	s := testSession(KindResize, start, 510, 310)
	s.gravity = resizeGravity(start, 510, 310)
	defer s.end()

	if s.gravity != geometry.GravitySouthEast {
		t.Fatalf("gravity = %v, want southeast", s.gravity)
	}

	// Dragging the top-left corner inward shrinks while the
	// bottom-right corner stays put.
	rect, changed := s.resizeTo(540, 330, false)
	want := geometry.Rect{X: 530, Y: 320, Width: 370, Height: 280}
	if !changed || rect != want {
		t.Fatalf("resizeTo(540, 330) = %+v changed=%v, want %+v", rect, changed, want)
	}
	if rect.Right() != start.Right() || rect.Bottom() != start.Bottom() {
		t.Fatalf("anchored corner moved: %+v", rect)
	}
}

func TestSessionReevaluate_RepeatsLastRequest(t *testing.T) {
	start := geometry.Rect{X: 500, Y: 300, Width: 400, Height: 300}
	s := testSession(KindMove, start, 600, 350)
	defer s.end()

	if _, changed := s.moveTo(630, 370, false); !changed {
		t.Fatalf("expected initial move to apply")
	}

	// Nothing is held, so re-running the same request changes nothing.
	rect, changed := s.reevaluate()
	if changed || rect != s.current {
		t.Fatalf("reevaluate = %+v changed=%v, want current unchanged", rect, changed)
	}
}

func TestResizeGravity_Quadrants(t *testing.T) {
	rect := geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}

	tests := []struct {
		name string
		x, y int
		want geometry.Gravity
	}{
		{"top left", 150, 150, geometry.GravitySouthEast},
		{"top right", 450, 150, geometry.GravitySouthWest},
		{"bottom left", 150, 350, geometry.GravityNorthEast},
		{"bottom right", 450, 350, geometry.GravityNorthWest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resizeGravity(rect, tt.x, tt.y); got != tt.want {
				t.Errorf("resizeGravity(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"up", "down", "left", "right"} {
		d, ok := ParseDirection(s)
		if !ok || d.String() != s {
			t.Errorf("ParseDirection(%q) = %v ok=%v", s, d, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Errorf("expected ParseDirection to reject unknown direction")
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, -10},
		{DirDown, 0, 10},
		{DirLeft, -10, 0},
		{DirRight, 10, 0},
	}
	for _, tt := range tests {
		dx, dy := tt.dir.Delta(10)
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta(10) = (%d, %d), want (%d, %d)", tt.dir, dx, dy, tt.dx, tt.dy)
		}
	}
}
