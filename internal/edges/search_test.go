package edges

import (
	"testing"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// verticalEdgesAt builds a sorted left-side collection with one
// full-height window edge per position.
func verticalEdgesAt(positions ...int) []Edge {
	es := make([]Edge, 0, len(positions))
	for _, p := range positions {
		es = append(es, Edge{
			Rect: geometry.Rect{X: p, Y: 0, Width: 0, Height: 1000},
			Side: SideLeft,
			Kind: KindWindow,
		})
	}
	sortEdges(es)
	return es
}

func TestIndexOfEdgeNear(t *testing.T) {
	// Value: 3  27 316 316 316 505 522 800 1213
	// Index: 0   1   2   3   4   5   6   7    8
	es := verticalEdgesAt(3, 27, 316, 316, 316, 505, 522, 800, 1213)

	tests := []struct {
		name     string
		position int
		wantMin  bool
		want     int
	}{
		{"first at or above 500", 500, true, 5},
		{"run of equal values, min side", 316, true, 2},
		{"run of equal values, max side", 316, false, 4},
		{"none smaller", 2, false, -1},
		{"none larger", 2000, true, 9},
		{"exact single match min", 505, true, 5},
		{"exact single match max", 505, false, 5},
		{"below all, min", 2, true, 0},
		{"above all, max", 2000, false, 8},
		{"between values, min", 28, true, 2},
		{"between values, max", 28, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := indexOfEdgeNear(es, tt.position, tt.wantMin)
			if got != tt.want {
				t.Errorf("indexOfEdgeNear(%d, wantMin=%v) = %d, want %d",
					tt.position, tt.wantMin, got, tt.want)
			}
		})
	}
}

func TestIndexOfEdgeNear_SmallCollections(t *testing.T) {
	empty := verticalEdgesAt()
	if got := indexOfEdgeNear(empty, 10, true); got != 0 {
		t.Errorf("empty wantMin = %d, want 0", got)
	}
	if got := indexOfEdgeNear(empty, 10, false); got != -1 {
		t.Errorf("empty wantMax = %d, want -1", got)
	}

	single := verticalEdgesAt(100)
	if got := indexOfEdgeNear(single, 50, true); got != 0 {
		t.Errorf("single wantMin below = %d, want 0", got)
	}
	if got := indexOfEdgeNear(single, 50, false); got != -1 {
		t.Errorf("single wantMax below = %d, want -1", got)
	}
	if got := indexOfEdgeNear(single, 150, true); got != 1 {
		t.Errorf("single wantMin above = %d, want 1", got)
	}
	if got := indexOfEdgeNear(single, 150, false); got != 0 {
		t.Errorf("single wantMax above = %d, want 0", got)
	}
}

func TestPointsOnSameSide(t *testing.T) {
	tests := []struct {
		name          string
		ref, pt1, pt2 int
		want          bool
	}{
		{"both above", 10, 20, 30, true},
		{"both below", 10, 2, 5, true},
		{"opposite sides", 10, 5, 15, false},
		{"one on ref", 10, 10, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pointsOnSameSide(tt.ref, tt.pt1, tt.pt2)
			if got != tt.want {
				t.Errorf("pointsOnSameSide(%d, %d, %d) = %v, want %v",
					tt.ref, tt.pt1, tt.pt2, got, tt.want)
			}
		})
	}
}

func TestNearestPosition(t *testing.T) {
	moving := geometry.Rect{X: 0, Y: 100, Width: 50, Height: 50}
	es := verticalEdgesAt(100, 200, 400)

	tests := []struct {
		name        string
		position    int
		oldPosition int
		onlyForward bool
		want        int
	}{
		{"closest below", 180, 0, false, 200},
		{"closest above", 130, 0, false, 100},
		{"exact hit", 200, 0, false, 200},
		{"forward only skips backward edge", 180, 150, true, 200},
		// 200 is between the start (150) and the proposal (230), so it
		// counts as behind; only 400 is ahead of the proposal.
		{"forward only skips passed edge", 230, 150, true, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nearestPosition(es, tt.position, tt.oldPosition, moving, tt.onlyForward)
			if got != tt.want {
				t.Errorf("nearestPosition(%d, old=%d, forward=%v) = %d, want %d",
					tt.position, tt.oldPosition, tt.onlyForward, got, tt.want)
			}
		})
	}
}

func TestNearestPosition_AlignmentFilter(t *testing.T) {
	moving := geometry.Rect{X: 0, Y: 100, Width: 50, Height: 50}

	// Near edge does not overlap the moving rect's rows; far edge does.
	es := []Edge{
		{Rect: geometry.Rect{X: 90, Y: 500, Width: 0, Height: 100}, Side: SideLeft, Kind: KindWindow},
		{Rect: geometry.Rect{X: 300, Y: 0, Width: 0, Height: 1000}, Side: SideLeft, Kind: KindWindow},
	}
	sortEdges(es)

	if got := nearestPosition(es, 100, 0, moving, false); got != 300 {
		t.Errorf("nearestPosition ignoring misaligned edge = %d, want 300", got)
	}
}

func TestNearestPosition_NoCandidateReturnsOld(t *testing.T) {
	moving := geometry.Rect{X: 0, Y: 100, Width: 50, Height: 50}

	if got := nearestPosition(nil, 100, 42, moving, false); got != 42 {
		t.Errorf("empty collection = %d, want old position 42", got)
	}

	// Edges exist but none aligns with the moving rect.
	es := []Edge{
		{Rect: geometry.Rect{X: 90, Y: 500, Width: 0, Height: 100}, Side: SideLeft, Kind: KindWindow},
	}
	if got := nearestPosition(es, 100, 42, moving, false); got != 42 {
		t.Errorf("no aligned candidate = %d, want old position 42", got)
	}
}

func TestNearestPosition_TieBreakIsScanOrder(t *testing.T) {
	moving := geometry.Rect{X: 0, Y: 100, Width: 50, Height: 50}

	// 100 and 200 are both 50 away from 150. The scan finds the lower
	// index first and a tie never displaces an earlier find.
	es := verticalEdgesAt(100, 200)
	if got := nearestPosition(es, 150, 0, moving, false); got != 100 {
		t.Errorf("equidistant tie = %d, want 100 (first in scan order)", got)
	}
	// Same collection, same tie, must stay deterministic on repeat.
	for i := 0; i < 5; i++ {
		if got := nearestPosition(es, 150, 0, moving, false); got != 100 {
			t.Fatalf("tie-break unstable on repeat %d: got %d", i, got)
		}
	}
}
