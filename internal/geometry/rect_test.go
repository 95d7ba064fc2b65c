package geometry

import "testing"

func TestIntersect(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Rect
		want    Rect
		overlap bool
	}{
		{
			name:    "partial overlap",
			a:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:       Rect{X: 50, Y: 50, Width: 100, Height: 100},
			want:    Rect{X: 50, Y: 50, Width: 50, Height: 50},
			overlap: true,
		},
		{
			name:    "contained",
			a:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:       Rect{X: 20, Y: 30, Width: 10, Height: 10},
			want:    Rect{X: 20, Y: 30, Width: 10, Height: 10},
			overlap: true,
		},
		{
			name:    "abutting is not overlap",
			a:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:       Rect{X: 100, Y: 0, Width: 50, Height: 100},
			overlap: false,
		},
		{
			name:    "disjoint",
			a:       Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:       Rect{X: 500, Y: 500, Width: 10, Height: 10},
			overlap: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.overlap {
				t.Fatalf("overlap = %v, want %v", ok, tt.overlap)
			}
			if ok && got != tt.want {
				t.Fatalf("intersection = %+v, want %+v", got, tt.want)
			}
			// Intersection is symmetric.
			got2, ok2 := tt.b.Intersect(tt.a)
			if ok2 != ok || got2 != got {
				t.Fatalf("intersection not symmetric: %+v/%v vs %+v/%v", got, ok, got2, ok2)
			}
		})
	}
}

func TestOverlapHelpers(t *testing.T) {
	base := Rect{X: 100, Y: 100, Width: 200, Height: 200}

	tests := []struct {
		name      string
		other     Rect
		wantHoriz bool
		wantVert  bool
	}{
		{
			name:      "same rect",
			other:     base,
			wantHoriz: true,
			wantVert:  true,
		},
		{
			name:      "to the right, same rows",
			other:     Rect{X: 300, Y: 100, Width: 50, Height: 200},
			wantHoriz: false, // spans touch at x=300 but do not overlap
			wantVert:  true,
		},
		{
			name:      "zero-width segment inside span",
			other:     Rect{X: 150, Y: 400, Width: 0, Height: 50},
			wantHoriz: true,
			wantVert:  false,
		},
		{
			name:      "zero-width segment on boundary",
			other:     Rect{X: 100, Y: 100, Width: 0, Height: 50},
			wantHoriz: false, // boundary position, not strictly inside
			wantVert:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HorizOverlap(tt.other, base); got != tt.wantHoriz {
				t.Errorf("HorizOverlap = %v, want %v", got, tt.wantHoriz)
			}
			if got := VertOverlap(tt.other, base); got != tt.wantVert {
				t.Errorf("VertOverlap = %v, want %v", got, tt.wantVert)
			}
		})
	}
}

func TestResizeWithGravity(t *testing.T) {
	old := Rect{X: 100, Y: 100, Width: 200, Height: 100}

	tests := []struct {
		name    string
		gravity Gravity
		w, h    int
		want    Rect
	}{
		{
			name:    "northwest keeps top-left",
			gravity: GravityNorthWest,
			w:       250, h: 150,
			want: Rect{X: 100, Y: 100, Width: 250, Height: 150},
		},
		{
			name:    "southeast keeps bottom-right",
			gravity: GravitySouthEast,
			w:       250, h: 150,
			// right stays at 300, bottom stays at 200
			want: Rect{X: 50, Y: 50, Width: 250, Height: 150},
		},
		{
			name:    "center splits the difference",
			gravity: GravityCenter,
			w:       150, h: 50,
			want: Rect{X: 125, Y: 125, Width: 150, Height: 50},
		},
		{
			name:    "east keeps right edge",
			gravity: GravityEast,
			w:       100, h: 100,
			// right stays at 300, vertical centered (no height change)
			want: Rect{X: 200, Y: 100, Width: 100, Height: 100},
		},
		{
			name:    "north keeps top edge",
			gravity: GravityNorth,
			w:       100, h: 50,
			want: Rect{X: 150, Y: 100, Width: 100, Height: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeWithGravity(old, tt.gravity, tt.w, tt.h)
			if got != tt.want {
				t.Fatalf("ResizeWithGravity(%v) = %+v, want %+v", tt.gravity, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	if !r.Contains(10, 10) {
		t.Errorf("top-left corner should be inside")
	}
	if r.Contains(30, 10) {
		t.Errorf("right boundary should be outside")
	}
	if r.Contains(10, 30) {
		t.Errorf("bottom boundary should be outside")
	}
	if !r.Contains(29, 29) {
		t.Errorf("last interior point should be inside")
	}
}
