package nudgetui

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/edgegrab/internal/ipc"
)

// Loop is the interactive nudge session: a raw-mode terminal loop that
// drives resisted window moves through the daemon socket.
type Loop struct {
	client *ipc.Client
	window uint32 // 0 until resolved to the active window

	// Target state
	title   string
	winX    int
	winY    int
	winW    int
	winH    int
	sides   map[string]int
	windows []ipc.WindowInfo

	// UI state
	step        int
	defaultStep int
	snapMode    bool
	lastMsg     string
	lastErr     string

	// Terminal state
	oldState *term.State
	width    int
	height   int
}

// New creates an interactive nudge loop for the given window. Window 0
// targets the active window.
func New(client *ipc.Client, window uint32) *Loop {
	return &Loop{
		client: client,
		window: window,
	}
}

// Run starts the interactive loop. Blocks until the user quits.
func (l *Loop) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal (stdin/stdout must be TTYs)")
	}

	if err := l.client.Ping(); err != nil {
		return fmt.Errorf("daemon not reachable (is 'edgegrab daemon' running?): %w", err)
	}

	if err := l.refresh(); err != nil {
		return err
	}

	// Enter raw mode
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	l.oldState = oldState
	defer l.restore()

	l.updateSize()
	l.render()

	// Main event loop
	buf := make([]byte, 32)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}

		if l.handleInput(buf[:n]) {
			break
		}

		l.render()
	}

	return nil
}

func (l *Loop) restore() {
	if l.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), l.oldState)
	}
	// Clear screen and show cursor on exit
	fmt.Print("\x1b[0m")   // reset
	fmt.Print("\x1b[?25h") // show cursor
	fmt.Print("\x1b[2J")   // clear screen
	fmt.Print("\x1b[H")    // home cursor
}

func (l *Loop) updateSize() {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		l.width = 80
		l.height = 24
		return
	}
	l.width = w
	l.height = h
}

// refresh re-reads the target window, its geometry and its edge map
// from the daemon.
func (l *Loop) refresh() error {
	status, err := l.client.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get daemon status: %w", err)
	}
	if l.defaultStep == 0 {
		l.defaultStep = status.NudgeStep
		if l.defaultStep <= 0 {
			l.defaultStep = 10
		}
		l.step = l.defaultStep
	}

	windows, err := l.client.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}
	l.windows = l.windows[:0]
	for _, w := range windows.Windows {
		if w.Dock {
			continue
		}
		l.windows = append(l.windows, w)
	}

	ed, err := l.client.GetEdges(l.window, "")
	if err != nil {
		return fmt.Errorf("failed to get edges: %w", err)
	}
	l.window = ed.Window
	l.title = ed.Title

	l.sides = map[string]int{}
	for _, e := range ed.Edges {
		l.sides[e.Side]++
	}

	for _, w := range l.windows {
		if w.ID == l.window {
			l.winX, l.winY = w.X, w.Y
			l.winW, l.winH = w.Width, w.Height
			break
		}
	}

	return nil
}

func (l *Loop) handleInput(input []byte) bool {
	if len(input) == 0 {
		return false
	}

	for len(input) > 0 {
		// Shift+arrow sequences (ESC [ 1 ; 2 X) snap instead of nudge
		if len(input) >= 6 && input[0] == 0x1b && input[1] == '[' &&
			input[2] == '1' && input[3] == ';' && input[4] == '2' {
			switch input[5] {
			case 'A':
				l.snap("up")
			case 'B':
				l.snap("down")
			case 'C':
				l.snap("right")
			case 'D':
				l.snap("left")
			}
			input = input[6:]
			continue
		}

		// Plain arrow sequences
		if len(input) >= 3 && input[0] == 0x1b && input[1] == '[' {
			switch input[2] {
			case 'A':
				l.nudge("up")
			case 'B':
				l.nudge("down")
			case 'C':
				l.nudge("right")
			case 'D':
				l.nudge("left")
			}
			input = input[3:]
			continue
		}

		// Single character commands
		switch input[0] {
		case 'q', 0x1b: // q or Escape
			return true
		case 0x03: // Ctrl+C
			return true
		case 'h':
			l.nudge("left")
		case 'j':
			l.nudge("down")
		case 'k':
			l.nudge("up")
		case 'l':
			l.nudge("right")
		case 'H':
			l.snap("left")
		case 'J':
			l.snap("down")
		case 'K':
			l.snap("up")
		case 'L':
			l.snap("right")
		case 's':
			l.snapMode = !l.snapMode
		case '+', '=':
			l.bumpStep(1)
		case '-':
			l.bumpStep(-1)
		case '0':
			l.step = l.defaultStep
		case '\t':
			l.cycleWindow()
		case 'r':
			if err := l.refresh(); err != nil {
				l.lastErr = err.Error()
			} else {
				l.lastErr = ""
				l.lastMsg = "refreshed"
			}
		}

		input = input[1:]
	}

	return false
}

func (l *Loop) nudge(direction string) {
	res, err := l.client.Nudge(l.window, "", direction, l.step, l.snapMode)
	if err != nil {
		l.lastErr = err.Error()
		return
	}
	l.applyResult(direction, res)
}

func (l *Loop) snap(direction string) {
	res, err := l.client.Snap(l.window, "", direction)
	if err != nil {
		l.lastErr = err.Error()
		return
	}
	l.applyResult(direction, res)
}

func (l *Loop) applyResult(direction string, res *ipc.MoveResultData) {
	l.lastErr = ""
	l.window = res.Window
	l.winX, l.winY = res.ToX, res.ToY
	if res.Moved {
		l.lastMsg = fmt.Sprintf("moved %s to (%d, %d)", direction, res.ToX, res.ToY)
	} else {
		l.lastMsg = fmt.Sprintf("held %s at (%d, %d)", direction, res.ToX, res.ToY)
	}
}

func (l *Loop) bumpStep(delta int) {
	l.step += delta
	if l.step < 1 {
		l.step = 1
	}
	if l.step > 200 {
		l.step = 200
	}
}

// cycleWindow retargets the loop at the next window in stacking order.
func (l *Loop) cycleWindow() {
	if len(l.windows) == 0 {
		return
	}

	next := l.windows[0].ID
	for i, w := range l.windows {
		if w.ID == l.window {
			next = l.windows[(i+1)%len(l.windows)].ID
			break
		}
	}

	l.window = next
	if err := l.refresh(); err != nil {
		l.lastErr = err.Error()
	} else {
		l.lastErr = ""
		l.lastMsg = "switched window"
	}
}
