package edges

import "github.com/1broseidon/edgegrab/internal/geometry"

// A mouse-driven snap of at least this distance is ignored when the
// pointer itself moved less, so jitter near an edge cannot fling the
// window to it.
const mouseSnapMinDistance = 8

// applySnapping computes where one side of the moving window lands in
// snap mode: the nearest aligned edge position from either of the two
// related collections, or oldPos when snapping is vetoed. Keyboard
// snapping discards a candidate lying behind the nudge's starting
// point and falls back to the other collection's candidate.
func applySnapping(oldPos, newPos int, newRect geometry.Rect, edges1, edges2 []Edge, keyboard bool) int {
	if oldPos == newPos {
		return newPos
	}

	pos1 := nearestPosition(edges1, newPos, oldPos, newRect, keyboard)
	pos2 := nearestPosition(edges2, newPos, oldPos, newRect, keyboard)

	if keyboard {
		if !pointsOnSameSide(oldPos, pos1, newPos) {
			return pos2
		}
		if !pointsOnSameSide(oldPos, pos2, newPos) {
			return pos1
		}
	}

	best := pos2
	if abs(pos1-newPos) < abs(pos2-newPos) {
		best = pos1
	}

	if !keyboard &&
		abs(best-oldPos) >= mouseSnapMinDistance &&
		abs(newPos-oldPos) < mouseSnapMinDistance {
		return oldPos
	}
	return best
}
