package edges

import (
	"sync"
	"time"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// Timeout resistance lengths per edge kind. Monitor and screen
// timeouts only apply when the grab requires the window to stay on a
// single monitor or fully onscreen, respectively.
const (
	defaultWindowTimeout  = 0
	defaultMonitorTimeout = 100 * time.Millisecond
	defaultScreenTimeout  = 750 * time.Millisecond
)

// TimeoutFunc is called from a timer goroutine when a side's timeout
// resistance elapses. The consumer must re-run the pending
// ResistMove/ResistResize so the now-released side can be crossed.
type TimeoutFunc func(window WindowID)

// GrabInfo describes the grab a cache is being built for.
type GrabInfo struct {
	Window     WindowID
	WindowRect geometry.Rect // outer rect at grab start
	ScreenRect geometry.Rect // full screen bounds, pre-strut

	// AnchorRootY is the root y coordinate where the grab started.
	// Dragging is allowed to push the window's top past the screen
	// edge only when the anchor was at or below the initial top, so a
	// titlebar can never be pulled out of reach.
	AnchorRootY int

	RequireFullyOnscreen   bool
	RequireOnSingleMonitor bool
}

// sideState holds the per-side resistance bookkeeping for one grab.
type sideState struct {
	armed        bool // a timeout has been set up for armedEdgePos
	timer        *time.Timer
	gen          uint64 // bumped on arm/cancel; stale callbacks check it
	armedEdgePos int
	elapsed      bool
	buildup      int // accumulated keyboard energy against an edge

	allowPastScreen bool
}

// Cache holds the four sorted edge collections and per-side resistance
// state for one grab. It is created by ComputeEdges when an
// interactive move/resize begins and must be released with Cleanup
// exactly once when the grab ends; no method may be called after that.
type Cache struct {
	mu     sync.Mutex
	edges  [4][]Edge // indexed by Side, each sorted by position
	states [4]sideState

	window    WindowID
	timeoutFn TimeoutFunc

	requireFullyOnscreen   bool
	requireOnSingleMonitor bool

	windowTimeout  time.Duration
	monitorTimeout time.Duration
	screenTimeout  time.Duration
}

// ComputeEdges builds the edge cache for a beginning grab: window
// edges are extracted from the stack (bottom to top, already filtered
// to relevant windows) with occluded portions removed, combined with
// the caller-owned monitor and screen edges, partitioned by side and
// sorted. The per-side resistance states start with no armed timers
// and zero keyboard buildup.
func ComputeEdges(info GrabInfo, stack []WindowInfo, monitorEdges, screenEdges []Edge, timeoutFn TimeoutFunc) *Cache {
	c := &Cache{
		window:                 info.Window,
		timeoutFn:              timeoutFn,
		requireFullyOnscreen:   info.RequireFullyOnscreen,
		requireOnSingleMonitor: info.RequireOnSingleMonitor,
		windowTimeout:          defaultWindowTimeout,
		monitorTimeout:         defaultMonitorTimeout,
		screenTimeout:          defaultScreenTimeout,
	}

	windowEdges := extractWindowEdges(stack, info.ScreenRect)

	for _, group := range [][]Edge{windowEdges, monitorEdges, screenEdges} {
		for _, e := range group {
			c.edges[e.Side] = append(c.edges[e.Side], e)
		}
	}
	for side := range c.edges {
		sortEdges(c.edges[side])
	}

	c.states[SideLeft].allowPastScreen = true
	c.states[SideRight].allowPastScreen = true
	c.states[SideBottom].allowPastScreen = true
	c.states[SideTop].allowPastScreen = info.AnchorRootY >= info.WindowRect.Y

	return c
}

// Cleanup cancels any armed timers and drops the edge collections.
// A fired-but-not-yet-run timer callback becomes a no-op. Safe to call
// on a nil cache, since a grab may end before edges were ever computed.
func (c *Cache) Cleanup() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for side := range c.states {
		c.cancelTimerLocked(&c.states[side])
	}
	for side := range c.edges {
		c.edges[side] = nil
	}
}

// cancelTimerLocked unconditionally tears down a side's timeout. The
// generation bump invalidates a callback that already fired but has
// not yet taken the lock.
func (c *Cache) cancelTimerLocked(st *sideState) {
	st.gen++
	st.armed = false
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
}

// armTimerLocked starts timeout resistance for an edge at pos.
func (c *Cache) armTimerLocked(side Side, pos int, d time.Duration) {
	st := &c.states[side]
	st.gen++
	gen := st.gen
	st.armed = true
	st.armedEdgePos = pos
	st.elapsed = false
	st.timer = time.AfterFunc(d, func() {
		c.timerFired(side, gen)
	})
}

func (c *Cache) timerFired(side Side, gen uint64) {
	c.mu.Lock()
	st := &c.states[side]
	if st.gen != gen {
		// Cancelled or re-armed after this fire was scheduled.
		c.mu.Unlock()
		return
	}
	st.elapsed = true
	st.timer = nil
	fn := c.timeoutFn
	window := c.window
	c.mu.Unlock()

	if fn != nil {
		fn(window)
	}
}

// SideStatus is a snapshot of one side's resistance state, for status
// reporting and the inspector.
type SideStatus struct {
	EdgeCount       int  `json:"edge_count"`
	Buildup         int  `json:"buildup"`
	TimerArmed      bool `json:"timer_armed"`
	TimerElapsed    bool `json:"timer_elapsed"`
	ArmedEdgePos    int  `json:"armed_edge_pos"`
	AllowPastScreen bool `json:"allow_past_screen"`
}

// Status returns a snapshot of one side's state.
func (c *Cache) Status(side Side) SideStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.states[side]
	return SideStatus{
		EdgeCount:       len(c.edges[side]),
		Buildup:         st.buildup,
		TimerArmed:      st.armed,
		TimerElapsed:    st.elapsed,
		ArmedEdgePos:    st.armedEdgePos,
		AllowPastScreen: st.allowPastScreen,
	}
}

// EdgesBySide returns a copy of one side's sorted edge collection.
func (c *Cache) EdgesBySide(side Side) []Edge {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Edge, len(c.edges[side]))
	copy(out, c.edges[side])
	return out
}
