package grab

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/edgegrab/internal/config"
	"github.com/1broseidon/edgegrab/internal/edges"
	"github.com/1broseidon/edgegrab/internal/geometry"
	"github.com/1broseidon/edgegrab/internal/x11"
)

var allSides = [4]edges.Side{edges.SideLeft, edges.SideRight, edges.SideTop, edges.SideBottom}

// nudgeCacheTTL is how long the edge cache of a one-shot nudge is kept
// for the next one. Long enough for repeated key presses, short enough
// that the frozen window stack does not go stale.
const nudgeCacheTTL = 2 * time.Second

// Manager turns button presses, pointer motion and nudge mode keys
// into resisted window moves and resizes. One session runs at a time;
// IPC requests share the same manager from other goroutines.
type Manager struct {
	mu   sync.Mutex
	conn *x11.Connection
	cfg  *config.Config

	snapMask uint16

	session *Session

	// Edge cache shared by closely spaced one-shot nudges, so their
	// keyboard buildup can accumulate across calls.
	nudgeCache      *edges.Cache
	nudgeCacheWin   xproto.Window
	nudgeCacheUntil time.Time

	// Keyboard nudge mode plumbing, see nudge.go.
	grabWindow         xproto.Window
	keyHandlerAttached bool
	nudgeTimer         *time.Timer
}

// NewManager creates a grab manager for the given connection.
func NewManager(conn *x11.Connection, cfg *config.Config) (*Manager, error) {
	snapMask, err := x11.ModifierMask(cfg.SnapModifier)
	if err != nil {
		return nil, err
	}

	return &Manager{
		conn:     conn,
		cfg:      cfg,
		snapMask: snapMask,
	}, nil
}

// UpdateConfig swaps the active configuration. The caller re-registers
// button and hotkey grabs.
func (m *Manager) UpdateConfig(cfg *config.Config) error {
	snapMask, err := x11.ModifierMask(cfg.SnapModifier)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	m.snapMask = snapMask
	// Resistance flags are baked into edge caches at build time.
	m.dropNudgeCacheLocked()
	return nil
}

// HandleButtonPress starts a move or resize drag when a grabbed
// modifier+button combination lands on a manageable window.
func (m *Manager) HandleButtonPress(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return
	}

	var kind Kind
	switch int(ev.Detail) {
	case m.cfg.MoveButton:
		kind = KindMove
	case m.cfg.ResizeButton:
		kind = KindResize
	default:
		return
	}

	rootX, rootY := int(ev.RootX), int(ev.RootY)
	win, ok := m.windowAt(rootX, rootY)
	if !ok {
		return
	}

	if err := m.beginPointerLocked(kind, win, int(ev.Detail), rootX, rootY); err != nil {
		log.Printf("Grab: failed to start %s: %v", kind, err)
	}
}

// HandleMotion applies one pointer motion step of the active drag.
func (m *Manager) HandleMotion(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.kind == KindNudge {
		return
	}

	snap := ev.State&m.snapMask != 0

	var rect geometry.Rect
	var changed bool
	if s.kind == KindMove {
		rect, changed = s.moveTo(int(ev.RootX), int(ev.RootY), snap)
	} else {
		rect, changed = s.resizeTo(int(ev.RootX), int(ev.RootY), snap)
	}
	if changed {
		m.applyLocked(rect)
	}
}

// HandleButtonRelease ends the active drag when its button is let go.
func (m *Manager) HandleButtonRelease(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.kind == KindNudge {
		return
	}
	if int(ev.Detail) != s.button {
		return
	}

	m.endSessionLocked()
}

// Shutdown ends any active session, releasing grabs and timers.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropNudgeCacheLocked()
	if s := m.session; s != nil && s.kind == KindNudge {
		m.exitNudgeLocked(false)
		return
	}
	m.endSessionLocked()
}

// ActiveGrabWindow reports the window held by the active session.
func (m *Manager) ActiveGrabWindow() (xproto.Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return 0, false
	}
	return m.session.window, true
}

// AbortSession force-ends the session holding win, releasing its
// grabs. Called when the window disappears mid-grab.
func (m *Manager) AbortSession(win xproto.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.window != win {
		return
	}

	log.Printf("Grab: aborting %s, window 0x%x is gone", s.kind, uint32(win))
	if s.kind == KindNudge {
		m.exitNudgeLocked(false)
		return
	}
	m.endSessionLocked()
}

func (m *Manager) beginPointerLocked(kind Kind, win xproto.Window, button, rootX, rootY int) error {
	m.dropNudgeCacheLocked()

	// A dragged window should not stay maximized.
	_ = m.conn.UnmaximizeWindow(win)
	_ = m.conn.FocusWindow(uint32(win))

	rect, err := m.conn.OuterRect(win)
	if err != nil {
		return fmt.Errorf("failed to get window geometry: %w", err)
	}

	cache, err := m.computeEdgesLocked(win, rect, rootY)
	if err != nil {
		return err
	}

	s := &Session{
		kind:    kind,
		window:  win,
		button:  button,
		cache:   cache,
		start:   rect,
		current: rect,
		anchorX: rootX,
		anchorY: rootY,
	}
	if kind == KindResize {
		s.gravity = resizeGravity(rect, rootX, rootY)
	}
	m.session = s

	log.Printf("Grab: %s started window=0x%x rect=%+v", kind, win, rect)
	return nil
}

func (m *Manager) endSessionLocked() {
	s := m.session
	if s == nil {
		return
	}
	s.end()
	m.session = nil
	log.Printf("Grab: %s finished window=0x%x rect=%+v", s.kind, s.window, s.current)
}

func (m *Manager) applyLocked(rect geometry.Rect) {
	s := m.session
	if err := m.conn.SetOuterRect(s.window, rect); err != nil {
		log.Printf("Grab: failed to apply geometry: %v", err)
	}
}

// computeEdgesLocked builds the edge cache for a grab of win: the
// other windows clipped to the root geometry, monitor boundaries, and
// the work area borders standing in for the screen.
func (m *Manager) computeEdgesLocked(win xproto.Window, rect geometry.Rect, anchorY int) (*edges.Cache, error) {
	stack, err := m.conn.BuildStack(win)
	if err != nil {
		return nil, fmt.Errorf("failed to build window stack: %w", err)
	}
	root, err := m.conn.RootRect()
	if err != nil {
		return nil, err
	}
	work, err := m.conn.WorkArea()
	if err != nil {
		return nil, err
	}
	monitors, err := m.conn.MonitorRects()
	if err != nil {
		// RandR may be unavailable; monitor edges just drop out.
		log.Printf("Grab: no monitor geometry: %v", err)
		monitors = nil
	}

	info := edges.GrabInfo{
		Window:                 edges.WindowID(win),
		WindowRect:             rect,
		ScreenRect:             root,
		AnchorRootY:            anchorY,
		RequireFullyOnscreen:   m.cfg.RequireFullyOnscreen,
		RequireOnSingleMonitor: m.cfg.RequireOnSingleMonitor,
	}
	return edges.ComputeEdges(info, stack, edges.MonitorEdges(monitors), edges.ScreenEdges(work), m.onResistTimeout), nil
}

// onResistTimeout runs when a resistance timeout elapses. The pending
// change is re-evaluated so the held window can now cross the edge.
func (m *Manager) onResistTimeout(window edges.WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || edges.WindowID(s.window) != window {
		return
	}

	log.Printf("Grab: resistance timeout elapsed window=0x%x", window)
	if rect, changed := s.reevaluate(); changed {
		m.applyLocked(rect)
	}
}

// windowAt finds the topmost manageable window under the given root
// coordinates, by outer frame geometry.
func (m *Manager) windowAt(x, y int) (xproto.Window, bool) {
	stack, err := m.conn.BuildStack(0)
	if err != nil {
		log.Printf("Grab: failed to list windows: %v", err)
		return 0, false
	}
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		if w.Dock {
			continue
		}
		if w.Rect.Contains(x, y) {
			return xproto.Window(w.ID), true
		}
	}
	return 0, false
}

// resizeGravity anchors the corner opposite the pressed quadrant, so
// dragging near a corner resizes that corner.
func resizeGravity(rect geometry.Rect, x, y int) geometry.Gravity {
	left := x < rect.X+rect.Width/2
	top := y < rect.Y+rect.Height/2
	switch {
	case left && top:
		return geometry.GravitySouthEast
	case !left && top:
		return geometry.GravitySouthWest
	case left && !top:
		return geometry.GravityNorthEast
	default:
		return geometry.GravityNorthWest
	}
}

// Snapshot describes the manager state for status reporting.
type Snapshot struct {
	Active   bool
	Kind     Kind
	Window   xproto.Window
	LastSnap bool
	Sides    map[string]edges.SideStatus
}

// Status returns a snapshot of the active session, if any.
func (m *Manager) Status() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil {
		return Snapshot{}
	}

	sides := make(map[string]edges.SideStatus, len(allSides))
	for _, side := range allSides {
		sides[side.String()] = s.cache.Status(side)
	}
	return Snapshot{
		Active:   true,
		Kind:     s.kind,
		Window:   s.window,
		LastSnap: s.lastSnap,
		Sides:    sides,
	}
}

// WindowSummary describes one window in stacking order for listings.
type WindowSummary struct {
	ID     xproto.Window
	Title  string
	Rect   geometry.Rect
	Dock   bool
	Active bool
}

// ListWindows returns the manageable windows bottom to top.
func (m *Manager) ListWindows() ([]WindowSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stack, err := m.conn.BuildStack(0)
	if err != nil {
		return nil, err
	}
	active, _ := m.conn.GetActiveWindow()

	out := make([]WindowSummary, 0, len(stack))
	for _, w := range stack {
		id := xproto.Window(w.ID)
		out = append(out, WindowSummary{
			ID:     id,
			Title:  m.conn.WindowTitle(id),
			Rect:   w.Rect,
			Dock:   w.Dock,
			Active: id == active,
		})
	}
	return out, nil
}

// EdgeMap computes the edges a grab of the window would resist
// against, without starting a session. Window 0 means the active
// window.
func (m *Manager) EdgeMap(window xproto.Window) (xproto.Window, string, []edges.Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, err := m.resolveWindowLocked(window)
	if err != nil {
		return 0, "", nil, err
	}
	rect, err := m.conn.OuterRect(win)
	if err != nil {
		return 0, "", nil, fmt.Errorf("failed to get window geometry: %w", err)
	}

	cache, err := m.computeEdgesLocked(win, rect, rect.Y)
	if err != nil {
		return 0, "", nil, err
	}
	defer cache.Cleanup()

	var all []edges.Edge
	for _, side := range allSides {
		all = append(all, cache.EdgesBySide(side)...)
	}
	return win, m.conn.WindowTitle(win), all, nil
}

// NudgeWindow applies a single keyboard-policy resisted move outside
// any interactive session. px 0 uses the configured step; with snap
// the window jumps to the nearest edge in the direction instead.
func (m *Manager) NudgeWindow(window xproto.Window, dir Direction, px int, snap bool) (xproto.Window, geometry.Rect, geometry.Rect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return 0, geometry.Rect{}, geometry.Rect{}, fmt.Errorf("a grab is in progress")
	}

	win, err := m.resolveWindowLocked(window)
	if err != nil {
		return 0, geometry.Rect{}, geometry.Rect{}, err
	}
	rect, err := m.conn.OuterRect(win)
	if err != nil {
		return 0, geometry.Rect{}, geometry.Rect{}, fmt.Errorf("failed to get window geometry: %w", err)
	}
	if px <= 0 {
		px = m.cfg.NudgeStep
	}

	cache, err := m.nudgeCacheLocked(win, rect)
	if err != nil {
		return 0, geometry.Rect{}, geometry.Rect{}, err
	}

	dx, dy := dir.Delta(px)
	x, y := cache.ResistMove(rect, rect.X+dx, rect.Y+dy, edges.ResistFlags{Keyboard: true, Snap: snap})
	moved := rect.MoveTo(x, y)
	if moved != rect {
		if err := m.conn.SetOuterRect(win, moved); err != nil {
			return 0, geometry.Rect{}, geometry.Rect{}, fmt.Errorf("failed to move window: %w", err)
		}
	}
	return win, rect, moved, nil
}

// nudgeCacheLocked returns the edge cache for a one-shot nudge of win.
// The previous nudge's cache is reused while fresh, so sub-threshold
// nudges accumulate buildup across calls like repeated arrow presses
// inside nudge mode do.
func (m *Manager) nudgeCacheLocked(win xproto.Window, rect geometry.Rect) (*edges.Cache, error) {
	now := time.Now()
	if m.nudgeCache != nil && m.nudgeCacheWin == win && now.Before(m.nudgeCacheUntil) {
		m.nudgeCacheUntil = now.Add(nudgeCacheTTL)
		return m.nudgeCache, nil
	}
	m.dropNudgeCacheLocked()

	cache, err := m.computeEdgesLocked(win, rect, rect.Y)
	if err != nil {
		return nil, err
	}
	m.nudgeCache = cache
	m.nudgeCacheWin = win
	m.nudgeCacheUntil = now.Add(nudgeCacheTTL)
	return cache, nil
}

func (m *Manager) dropNudgeCacheLocked() {
	if m.nudgeCache == nil {
		return
	}
	m.nudgeCache.Cleanup()
	m.nudgeCache = nil
	m.nudgeCacheWin = 0
}

// FindWindow finds a window whose title contains the given substring.
func (m *Manager) FindWindow(title string) (xproto.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.conn.FindWindowByTitle(title)
	if err != nil {
		return 0, err
	}
	return xproto.Window(id), nil
}

func (m *Manager) resolveWindowLocked(window xproto.Window) (xproto.Window, error) {
	if window != 0 {
		return window, nil
	}
	active, err := m.conn.GetActiveWindow()
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	if active == 0 {
		return 0, fmt.Errorf("no active window")
	}
	return active, nil
}
