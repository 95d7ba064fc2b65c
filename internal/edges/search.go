package edges

import "github.com/1broseidon/edgegrab/internal/geometry"

// indexOfEdgeNear finds the index of the edge nearest a position in a
// sorted slice. This is basically a binary search, except that we are
// looking for a range boundary instead of an exact value. So, given
// edges at positions
//
//	Value: 3  27 316 316 316 505 522 800 1213
//	Index: 0   1   2   3   4   5   6   7    8
//
// position=500 with wantMin=true yields 5 (505 is the first position
// not below 500), position=316 with wantMin=true yields 2, with
// wantMin=false yields 4. When no edge qualifies the sentinel is
// len(es) for wantMin and -1 otherwise. Runs of equal positions make a
// plain binary search insufficient: it lands somewhere inside the run,
// so we walk linearly to the run's boundary afterwards.
func indexOfEdgeNear(es []Edge, position int, wantMin bool) int {
	if len(es) == 0 {
		if wantMin {
			return 0
		}
		return -1
	}

	mid := 0
	compare := es[mid].Position()

	low, high := 0, len(es)-1
	for low < high {
		mid = low + (high-low)/2
		compare = es[mid].Position()

		if compare == position {
			break
		}
		if compare > position {
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	// mid is close to the target index but may sit inside a run of
	// equal positions or one step off, so adjust linearly.
	if wantMin {
		for compare >= position && mid > 0 {
			mid--
			compare = es[mid].Position()
		}
		for compare < position && mid < len(es)-1 {
			mid++
			compare = es[mid].Position()
		}
		if compare < position {
			return len(es)
		}
		return mid
	}

	for compare <= position && mid < len(es)-1 {
		mid++
		compare = es[mid].Position()
	}
	for compare > position && mid > 0 {
		mid--
		compare = es[mid].Position()
	}
	if compare > position {
		return -1
	}
	return mid
}

// pointsOnSameSide reports whether pt1 and pt2 lie strictly on the same
// side of ref.
func pointsOnSameSide(ref, pt1, pt2 int) bool {
	return (pt1-ref)*(pt2-ref) > 0
}

// nearestPosition finds the edge position closest to position among the
// edges whose segment aligns with newRect, or oldPosition when none
// aligns. onlyForward (keyboard snapping) disqualifies edges lying on
// the same side of position as oldPosition, so a nudge never snaps
// backward past where it started. The scan binary-searches to an
// approximate index and then looks outward in both directions, stopping
// at the first aligned candidate on each side; ties keep the earlier
// candidate in scan order.
func nearestPosition(es []Edge, position, oldPosition int, newRect geometry.Rect, onlyForward bool) int {
	if len(es) == 0 {
		return oldPosition
	}

	mid := 0
	compare := es[mid].Position()

	low, high := 0, len(es)-1
	for low < high {
		mid = low + (high-low)/2
		compare = es[mid].Position()

		if compare == position {
			break
		}
		if compare > position {
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	best := oldPosition
	bestDist := maxInt

	// The candidate at mid itself.
	compare = es[mid].Position()
	if es[mid].alignsWith(newRect) &&
		(!onlyForward || !pointsOnSameSide(position, compare, oldPosition)) {
		if dist := abs(compare - position); dist < bestDist {
			best = compare
			bestDist = dist
		}
	}

	// First eligible candidate above mid.
	for i := mid + 1; i < len(es); i++ {
		compare = es[i].Position()
		if es[i].alignsWith(newRect) &&
			(!onlyForward || !pointsOnSameSide(position, compare, oldPosition)) {
			if dist := abs(compare - position); dist < bestDist {
				best = compare
				bestDist = dist
			}
			break
		}
	}

	// First eligible candidate below mid.
	for i := mid - 1; i >= 0; i-- {
		compare = es[i].Position()
		if es[i].alignsWith(newRect) &&
			(!onlyForward || !pointsOnSameSide(position, compare, oldPosition)) {
			if dist := abs(compare - position); dist < bestDist {
				best = compare
				bestDist = dist
			}
			break
		}
	}

	return best
}

const maxInt = int(^uint(0) >> 1)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
