package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// WindowAlive is a function that reports whether a window still exists
// on the X server.
type WindowAlive func(win xproto.Window) bool

// GrabSource exposes the slice of the grab manager the watchdog needs.
type GrabSource interface {
	ActiveGrabWindow() (xproto.Window, bool)
	AbortSession(win xproto.Window)
}

// WatchdogConfig holds configuration for the session watchdog.
type WatchdogConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Watchdog periodically verifies that the window under an active grab
// still exists, and aborts the grab when it has been destroyed. A
// window closing mid-drag otherwise leaves the session pointed at a
// dead window until the pointer is released.
type Watchdog struct {
	interval time.Duration
	manager  GrabSource
	alive    WindowAlive
	logger   *slog.Logger
}

// NewWatchdog creates a watchdog for the given grab manager. The alive
// function should check window existence against the X server.
func NewWatchdog(cfg WatchdogConfig, manager GrabSource, alive WindowAlive) *Watchdog {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return &Watchdog{
		interval: interval,
		manager:  manager,
		alive:    alive,
		logger:   cfg.Logger,
	}
}

// Run starts the liveness loop. Blocks until context is cancelled.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("watchdog started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watchdog stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check performs a single liveness pass.
func (w *Watchdog) check() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("watchdog panic recovered", "error", err)
		}
	}()

	win, ok := w.manager.ActiveGrabWindow()
	if !ok {
		return
	}

	if w.alive(win) {
		return
	}

	w.logger.Info("watchdog: grabbed window disappeared, aborting grab",
		"window_id", uint32(win))
	w.manager.AbortSession(win)
}

// CheckNow triggers an immediate liveness pass.
func (w *Watchdog) CheckNow() {
	w.check()
}
