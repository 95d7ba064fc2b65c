package daemon

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

type fakeGrabs struct {
	win     xproto.Window
	grabbed bool
	aborted []xproto.Window
}

func (f *fakeGrabs) ActiveGrabWindow() (xproto.Window, bool) { return f.win, f.grabbed }

func (f *fakeGrabs) AbortSession(win xproto.Window) { f.aborted = append(f.aborted, win) }

func newTestWatchdog(grabs GrabSource, alive WindowAlive) *Watchdog {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWatchdog(WatchdogConfig{Logger: logger}, grabs, alive)
}

func TestCheckAbortsDeadWindow(t *testing.T) {
	grabs := &fakeGrabs{win: 0x1234, grabbed: true}
	w := newTestWatchdog(grabs, func(win xproto.Window) bool { return false })

	w.CheckNow()

	if len(grabs.aborted) != 1 || grabs.aborted[0] != 0x1234 {
		t.Errorf("aborted = %v, want [0x1234]", grabs.aborted)
	}
}

func TestCheckKeepsLiveWindow(t *testing.T) {
	grabs := &fakeGrabs{win: 0x1234, grabbed: true}
	w := newTestWatchdog(grabs, func(win xproto.Window) bool { return true })

	w.CheckNow()

	if len(grabs.aborted) != 0 {
		t.Errorf("aborted = %v, want none", grabs.aborted)
	}
}

func TestCheckSkipsAliveProbeWhenIdle(t *testing.T) {
	probed := false
	grabs := &fakeGrabs{}
	w := newTestWatchdog(grabs, func(win xproto.Window) bool {
		probed = true
		return true
	})

	w.CheckNow()

	if probed {
		t.Error("alive probe ran with no active grab")
	}
	if len(grabs.aborted) != 0 {
		t.Errorf("aborted = %v, want none", grabs.aborted)
	}
}

func TestWatchdogDefaultInterval(t *testing.T) {
	w := newTestWatchdog(&fakeGrabs{}, nil)
	if w.interval != 2*time.Second {
		t.Errorf("interval = %v, want 2s", w.interval)
	}
}
