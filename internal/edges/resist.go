package edges

import (
	"time"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// Pixel-distance thresholds for mouse resistance: movement must carry
// the position at least this many pixels past an edge before it lets
// go. An edge resists harder when approached than when left behind.
const (
	pixelThresholdTowardsWindow   = 16
	pixelThresholdAwayFromWindow  = 8
	pixelThresholdTowardsMonitor  = 32
	pixelThresholdAwayFromMonitor = 8
	pixelThresholdTowardsScreen   = 32
	pixelThresholdAwayFromScreen  = 8
)

// Keyboard energy-buildup thresholds. Keyboard moves are relative
// nudges rather than absolute pointer positions, so instead of a
// distance test each blocked nudge deposits its magnitude into the
// side's buildup counter until the edge's threshold is met.
const (
	buildupThresholdTowardsWindow   = 16
	buildupThresholdAwayFromWindow  = 16
	buildupThresholdTowardsMonitor  = 24
	buildupThresholdAwayFromMonitor = 16
	buildupThresholdTowardsScreen   = 32
	buildupThresholdAwayFromScreen  = 16
)

// ResistFlags selects the evaluation mode for one candidate
// move/resize.
type ResistFlags struct {
	// Snap jumps to the nearest aligned edge instead of resisting.
	Snap bool
	// Keyboard selects the relative-nudge policies: energy buildup for
	// resistance, forward-only candidates for snapping.
	Keyboard bool
}

// movementTowardsEdge reports whether moving by increment approaches
// an edge resisting the given side of the moving window.
func movementTowardsEdge(side Side, increment int) bool {
	if side == SideLeft || side == SideTop {
		return increment < 0
	}
	return increment > 0
}

// applyResistance evaluates one side's movement from oldPos to newPos
// against that side's edge collection and returns the resulting
// position: either newPos unchanged or the position of the edge that
// held it. Caller holds c.mu.
func (c *Cache) applyResistance(side Side, oldPos, newPos int, newRect geometry.Rect, keyboard bool) int {
	st := &c.states[side]
	es := c.edges[side]

	okayToClearBuildup := false
	buildupEdge := maxInt
	increasing := newPos > oldPos
	increment := 1
	if !increasing {
		increment = -1
	}

	if oldPos == newPos {
		return newPos
	}

	// Drop a timeout armed for an edge this move no longer brackets.
	if st.armed &&
		((st.armedEdgePos > oldPos && st.armedEdgePos > newPos) ||
			(st.armedEdgePos < oldPos && st.armedEdgePos < newPos)) {
		c.cancelTimerLocked(st)
	}

	// The inclusive index range of edges this movement crosses or
	// reaches, walked in the direction of movement.
	begin := indexOfEdgeNear(es, oldPos, increasing)
	end := indexOfEdgeNear(es, newPos, !increasing)

	i := begin
	for (increasing && i <= end) || (!increasing && i >= end) {
		edge := es[i]
		compare := edge.Position()

		// An edge only matters while its segment overlaps the moving
		// rect on the perpendicular axis.
		if !edge.alignsWith(newRect) {
			i += increment
			continue
		}

		towards := movementTowardsEdge(edge.Side, increment)

		if keyboard {
			var resistance int
			switch edge.Kind {
			case KindWindow:
				if towards {
					resistance = buildupThresholdTowardsWindow
				} else {
					resistance = buildupThresholdAwayFromWindow
				}
			case KindMonitor:
				if towards {
					resistance = buildupThresholdTowardsMonitor
				} else {
					resistance = buildupThresholdAwayFromMonitor
				}
			case KindScreen:
				if towards {
					resistance = buildupThresholdTowardsScreen
				} else {
					resistance = buildupThresholdAwayFromScreen
				}
			}

			// Buildup persists across edges at the same coordinate
			// (two windows sharing a boundary count as one obstacle)
			// but restarts when a qualifying edge shows up elsewhere.
			if okayToClearBuildup && compare != buildupEdge {
				okayToClearBuildup = false
				st.buildup = 0
			}

			threshold := resistance - st.buildup
			if abs(compare-newPos) < threshold {
				if st.buildup != 0 {
					st.buildup += abs(newPos - compare)
				} else {
					st.buildup = 1 // 0 causes stuckage
				}
				return compare
			}
			okayToClearBuildup = true
			buildupEdge = compare
		} else {
			// Screen edges can be made impassable for this grab;
			// nothing gets a window past one then.
			if edge.Kind == KindScreen && !st.allowPastScreen && towards {
				return compare
			}

			// Timeout resistance: hold at the edge until a timer,
			// armed on first contact, elapses.
			if towards {
				var timeout time.Duration
				switch edge.Kind {
				case KindWindow:
					timeout = c.windowTimeout
				case KindMonitor:
					if c.requireOnSingleMonitor {
						timeout = c.monitorTimeout
					}
				case KindScreen:
					if c.requireFullyOnscreen {
						timeout = c.screenTimeout
					}
				}

				if !st.armed && timeout != 0 {
					c.armTimerLocked(side, compare, timeout)
				}
				if !st.elapsed && timeout != 0 {
					return compare
				}
			}

			// Pixel-distance resistance.
			var threshold int
			switch edge.Kind {
			case KindWindow:
				if towards {
					threshold = pixelThresholdTowardsWindow
				} else {
					threshold = pixelThresholdAwayFromWindow
				}
			case KindMonitor:
				if towards {
					threshold = pixelThresholdTowardsMonitor
				} else {
					threshold = pixelThresholdAwayFromMonitor
				}
			case KindScreen:
				if towards {
					threshold = pixelThresholdTowardsScreen
				} else {
					threshold = pixelThresholdAwayFromScreen
				}
			}

			if abs(compare-newPos) < threshold {
				return compare
			}
		}

		i += increment
	}

	// Never blocked, but moved past the last qualifying edge: the
	// unconsumed buildup belongs to an obstacle that is now behind us.
	if okayToClearBuildup && newPos != buildupEdge {
		st.buildup = 0
	}

	return newPos
}

// resistSides runs the per-side evaluation (resistance or snapping)
// for all four sides against the same proposed rect and recombines the
// four results. The bool reports whether anything changed.
func (c *Cache) resistSides(oldOuter, newOuter geometry.Rect, flags ResistFlags) (geometry.Rect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var newLeft, newRight, newTop, newBottom int

	if flags.Snap {
		// A moving window's side may snap to either kind of boundary:
		// its left edge aligns with both left and right edges of
		// other windows, so snapping probes both collections.
		newLeft = applySnapping(oldOuter.Left(), newOuter.Left(), newOuter,
			c.edges[SideLeft], c.edges[SideRight], flags.Keyboard)
		newRight = applySnapping(oldOuter.Right(), newOuter.Right(), newOuter,
			c.edges[SideLeft], c.edges[SideRight], flags.Keyboard)
		newTop = applySnapping(oldOuter.Top(), newOuter.Top(), newOuter,
			c.edges[SideTop], c.edges[SideBottom], flags.Keyboard)
		newBottom = applySnapping(oldOuter.Bottom(), newOuter.Bottom(), newOuter,
			c.edges[SideTop], c.edges[SideBottom], flags.Keyboard)
	} else {
		newLeft = c.applyResistance(SideLeft, oldOuter.Left(), newOuter.Left(), newOuter, flags.Keyboard)
		newRight = c.applyResistance(SideRight, oldOuter.Right(), newOuter.Right(), newOuter, flags.Keyboard)
		newTop = c.applyResistance(SideTop, oldOuter.Top(), newOuter.Top(), newOuter, flags.Keyboard)
		newBottom = c.applyResistance(SideBottom, oldOuter.Bottom(), newOuter.Bottom(), newOuter, flags.Keyboard)
	}

	modified := geometry.Rect{
		X:      newLeft,
		Y:      newTop,
		Width:  newRight - newLeft,
		Height: newBottom - newTop,
	}
	return modified, modified != newOuter
}

// ResistMove evaluates one candidate move of the grabbed window. old
// is the window's current outer rect; proposedX/proposedY is where the
// caller wants its top-left corner. The returned coordinates are the
// proposal adjusted for resistance or snapping.
//
// The four sides are evaluated independently, so the left and right
// (top and bottom) results can disagree, which would implicitly resize
// the window. A move must not resize, so per axis the change with the
// smaller magnitude wins and shifts both sides together. Keyboard
// snapping special-cases a side that did not move at all: the other
// side's change is used so a one-sided snap still takes effect.
func (c *Cache) ResistMove(old geometry.Rect, proposedX, proposedY int, flags ResistFlags) (int, int) {
	proposed := old.MoveTo(proposedX, proposedY)

	modified, changed := c.resistSides(old, proposed, flags)
	if !changed {
		return proposedX, proposedY
	}

	// Mouse snapping measures changes against the proposed rect (the
	// pointer is absolute); everything else against where the window
	// was.
	reference := old
	if flags.Snap && !flags.Keyboard {
		reference = proposed
	}

	leftChange := modified.Left() - reference.Left()
	rightChange := modified.Right() - reference.Right()
	var smallerXChange int
	switch {
	case flags.Snap && flags.Keyboard && leftChange == 0:
		smallerXChange = rightChange
	case flags.Snap && flags.Keyboard && rightChange == 0:
		smallerXChange = leftChange
	case abs(leftChange) < abs(rightChange):
		smallerXChange = leftChange
	default:
		smallerXChange = rightChange
	}

	topChange := modified.Top() - reference.Top()
	bottomChange := modified.Bottom() - reference.Bottom()
	var smallerYChange int
	switch {
	case flags.Snap && flags.Keyboard && topChange == 0:
		smallerYChange = bottomChange
	case flags.Snap && flags.Keyboard && bottomChange == 0:
		smallerYChange = topChange
	case abs(topChange) < abs(bottomChange):
		smallerYChange = topChange
	default:
		smallerYChange = bottomChange
	}

	newX := old.X + smallerXChange + (reference.Left() - old.Left())
	newY := old.Y + smallerYChange + (reference.Top() - old.Top())
	return newX, newY
}

// ResistResize evaluates one candidate resize of the grabbed window,
// anchored by gravity. old is the current outer rect; the return
// values are the proposed outer dimensions adjusted for resistance or
// snapping. Unlike a move, a resize keeps whatever each evaluated side
// decided: only the sides that gravity lets move produce changes, so
// no reconciliation is needed.
func (c *Cache) ResistResize(old geometry.Rect, proposedWidth, proposedHeight int, gravity geometry.Gravity, flags ResistFlags) (int, int) {
	proposed := geometry.ResizeWithGravity(old, gravity, proposedWidth, proposedHeight)

	modified, changed := c.resistSides(old, proposed, flags)
	if !changed {
		return proposedWidth, proposedHeight
	}
	return modified.Width, modified.Height
}
