package edges

import (
	"testing"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

func TestEdgePosition(t *testing.T) {
	v := Edge{Rect: geometry.Rect{X: 300, Y: 100, Width: 0, Height: 50}, Side: SideLeft}
	if got := v.Position(); got != 300 {
		t.Errorf("vertical edge position = %d, want 300", got)
	}
	h := Edge{Rect: geometry.Rect{X: 100, Y: 250, Width: 50, Height: 0}, Side: SideTop}
	if got := h.Position(); got != 250 {
		t.Errorf("horizontal edge position = %d, want 250", got)
	}
}

func TestEdgeAlignsWith(t *testing.T) {
	edge := Edge{Rect: geometry.Rect{X: 300, Y: 100, Width: 0, Height: 100}, Side: SideLeft}

	tests := []struct {
		name string
		rect geometry.Rect
		want bool
	}{
		{"overlapping rows", geometry.Rect{X: 500, Y: 150, Width: 100, Height: 100}, true},
		{"one shared row", geometry.Rect{X: 500, Y: 199, Width: 100, Height: 100}, true},
		{"abutting rows", geometry.Rect{X: 500, Y: 200, Width: 100, Height: 100}, false},
		{"disjoint rows", geometry.Rect{X: 500, Y: 400, Width: 100, Height: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edge.alignsWith(tt.rect); got != tt.want {
				t.Errorf("alignsWith(%+v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestSortEdges(t *testing.T) {
	es := []Edge{
		{Rect: geometry.Rect{X: 500, Y: 700, Width: 0, Height: 50}, Side: SideLeft},
		{Rect: geometry.Rect{X: 300, Y: 400, Width: 0, Height: 50}, Side: SideLeft},
		{Rect: geometry.Rect{X: 300, Y: 100, Width: 0, Height: 50}, Side: SideLeft},
		{Rect: geometry.Rect{X: 100, Y: 900, Width: 0, Height: 50}, Side: SideLeft},
	}
	sortEdges(es)

	want := []geometry.Rect{
		{X: 100, Y: 900, Width: 0, Height: 50},
		{X: 300, Y: 100, Width: 0, Height: 50},
		{X: 300, Y: 400, Width: 0, Height: 50},
		{X: 500, Y: 700, Width: 0, Height: 50},
	}
	for i := range want {
		if es[i].Rect != want[i] {
			t.Errorf("edge %d: got %+v, want %+v", i, es[i].Rect, want[i])
		}
	}
}
