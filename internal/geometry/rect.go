package geometry

// Rect represents a window position and size in root coordinates
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Left returns the x coordinate of the left boundary.
func (r Rect) Left() int { return r.X }

// Right returns the x coordinate just past the right boundary.
func (r Rect) Right() int { return r.X + r.Width }

// Top returns the y coordinate of the top boundary.
func (r Rect) Top() int { return r.Y }

// Bottom returns the y coordinate just past the bottom boundary.
func (r Rect) Bottom() int { return r.Y + r.Height }

// MoveTo returns the rect moved to a new top-left corner.
func (r Rect) MoveTo(x, y int) Rect {
	return Rect{X: x, Y: y, Width: r.Width, Height: r.Height}
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlapping region of two rects. The returned
// rect has zero width/height (clamped) when they do not overlap, and
// the bool reports whether any overlap exists.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())

	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// Overlaps reports whether two rects share any area.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// HorizOverlap reports whether the x extents of two rects overlap.
// A zero-width rect overlaps only when strictly inside the other's span.
func HorizOverlap(a, b Rect) bool {
	return a.X < b.Right() && b.X < a.Right()
}

// VertOverlap reports whether the y extents of two rects overlap.
func VertOverlap(a, b Rect) bool {
	return a.Y < b.Bottom() && b.Y < a.Bottom()
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
