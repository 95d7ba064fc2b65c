package grab

import (
	"fmt"
	"log"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/edgegrab/internal/geometry"
)

// Nudge mode auto-exits after this long without a key press.
const nudgeTimeout = 10 * time.Second

const (
	keysymUp      = 0xff52
	keysymDown    = 0xff54
	keysymLeft    = 0xff51
	keysymRight   = 0xff53
	keysymReturn  = 0xff0d
	keysymEscape  = 0xff1b
	keysymKPEnter = 0xff8d
	keysymR       = 0x0052
	keysymr       = 0x0072
)

// EnterNudgeMode grabs the keyboard and lets arrow keys move the
// active window through edge resistance. Holding the snap modifier
// snaps instead; r toggles resizing; Return confirms; Escape restores
// the original geometry.
func (m *Manager) EnterNudgeMode() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		// Already grabbing, do nothing.
		return nil
	}
	m.dropNudgeCacheLocked()

	win, err := m.resolveWindowLocked(0)
	if err != nil {
		return err
	}

	_ = m.conn.UnmaximizeWindow(win)

	rect, err := m.conn.OuterRect(win)
	if err != nil {
		return fmt.Errorf("failed to get window geometry: %w", err)
	}

	// Keyboard grabs still record the pointer position; it decides
	// whether the top screen edge is passable for this grab.
	anchorX, anchorY, err := m.conn.PointerPosition()
	if err != nil {
		anchorX, anchorY = rect.X, rect.Y
	}

	cache, err := m.computeEdgesLocked(win, rect, anchorY)
	if err != nil {
		return err
	}

	if err := m.grabKeyboard(); err != nil {
		cache.Cleanup()
		return fmt.Errorf("failed to grab keyboard: %w", err)
	}

	m.session = &Session{
		kind:    KindNudge,
		window:  win,
		cache:   cache,
		start:   rect,
		current: rect,
		anchorX: anchorX,
		anchorY: anchorY,
		gravity: geometry.GravityNorthWest,
	}
	m.startNudgeTimeout()

	log.Printf("Nudge mode: entered window=0x%x rect=%+v", win, rect)
	return nil
}

// handleNudgeKey processes key events while the keyboard is grabbed.
func (m *Manager) handleNudgeKey(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	keysym := keybind.KeysymGet(xu, ev.Detail, 0)

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.kind != KindNudge {
		return
	}

	snap := ev.State&m.snapMask != 0

	switch keysym {
	case keysymUp:
		m.nudgeLocked(DirUp, snap)
	case keysymDown:
		m.nudgeLocked(DirDown, snap)
	case keysymLeft:
		m.nudgeLocked(DirLeft, snap)
	case keysymRight:
		m.nudgeLocked(DirRight, snap)
	case keysymR, keysymr:
		s.resizeKeys = !s.resizeKeys
		m.startNudgeTimeout()
		log.Printf("Nudge mode: resize keys %v", s.resizeKeys)
	case keysymReturn, keysymKPEnter:
		m.exitNudgeLocked(false)
	case keysymEscape:
		m.exitNudgeLocked(true)
	}
}

func (m *Manager) nudgeLocked(dir Direction, snap bool) {
	// Reset timeout
	m.startNudgeTimeout()

	s := m.session
	dx, dy := dir.Delta(m.cfg.NudgeStep)

	var rect geometry.Rect
	var changed bool
	if s.resizeKeys {
		rect, changed = s.nudgeResize(dx, dy, snap)
	} else {
		rect, changed = s.nudgeMove(dx, dy, snap)
	}
	if changed {
		m.applyLocked(rect)
	}
}

// exitNudgeLocked leaves nudge mode; revert restores the geometry the
// window had when the mode was entered.
func (m *Manager) exitNudgeLocked(revert bool) {
	s := m.session
	if s == nil || s.kind != KindNudge {
		return
	}

	if m.nudgeTimer != nil {
		m.nudgeTimer.Stop()
		m.nudgeTimer = nil
	}
	m.ungrabKeyboard()

	if revert && s.current != s.start {
		if err := m.conn.SetOuterRect(s.window, s.start); err != nil {
			log.Printf("Nudge mode: failed to restore geometry: %v", err)
		}
	}

	m.endSessionLocked()
}

func (m *Manager) startNudgeTimeout() {
	if m.nudgeTimer != nil {
		m.nudgeTimer.Stop()
	}

	m.nudgeTimer = time.AfterFunc(nudgeTimeout, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if s := m.session; s != nil && s.kind == KindNudge {
			log.Println("Nudge mode: timeout - auto-exiting")
			m.exitNudgeLocked(false)
		}
	})
}

func (m *Manager) grabKeyboard() error {
	xu := m.conn.XUtil
	if err := m.ensureGrabWindow(); err != nil {
		return err
	}

	grab := func() (*xproto.GrabKeyboardReply, error) {
		cookie := xproto.GrabKeyboard(
			xu.Conn(),
			false,                  // owner_events (report events to grab_window)
			m.conn.Root,            // grab_window (must be viewable)
			xproto.TimeCurrentTime, // time
			xproto.GrabModeAsync,   // pointer_mode
			xproto.GrabModeAsync,   // keyboard_mode
		)
		return cookie.Reply()
	}

	reply, err := grab()
	if err != nil {
		return err
	}

	// When nudge mode is entered from a globally grabbed hotkey, the
	// keyboard may already be grabbed by this client. If so, ungrab
	// and retry.
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
		reply, err = grab()
		if err != nil {
			return err
		}
	}

	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
	}

	// Redirect all key events to our grab window while the mode is active.
	xevent.RedirectKeyEvents(xu, m.grabWindow)

	// Connect key press handler on our dedicated window (safe to detach later).
	if !m.keyHandlerAttached {
		xevent.KeyPressFun(m.handleNudgeKey).Connect(xu, m.grabWindow)
		m.keyHandlerAttached = true
	}

	log.Println("Nudge mode: keyboard grabbed")
	return nil
}

func (m *Manager) ungrabKeyboard() {
	xu := m.conn.XUtil

	xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)

	// Stop redirecting key events.
	xevent.RedirectKeyEvents(xu, 0)

	// Detach the key press handler from our dedicated grab window.
	if m.keyHandlerAttached && m.grabWindow != 0 {
		xevent.Detach(xu, m.grabWindow)
		m.keyHandlerAttached = false
	}

	log.Println("Nudge mode: keyboard released")
}

func (m *Manager) ensureGrabWindow() error {
	if m.grabWindow != 0 {
		return nil
	}

	conn := m.conn.XUtil.Conn()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	// InputOnly window that never draws anything; used solely as a safe
	// target for key event callbacks while the keyboard is grabbed.
	err = xproto.CreateWindowChecked(
		conn,
		0, // depth (must be 0 for InputOnly)
		wid,
		m.conn.Root,
		0, 0, // x, y
		1, 1, // width, height
		0, // border_width
		xproto.WindowClassInputOnly,
		xproto.Visualid(0), // CopyFromParent
		xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskKeyPress)},
	).Check()
	if err != nil {
		return err
	}

	xproto.MapWindow(conn, wid)

	m.grabWindow = wid
	return nil
}
