package config

import (
	"fmt"
)

// LoggingConfig controls daemon log output.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level"`
}

// Config is the effective edgegrab configuration after defaults and
// file overrides have been applied.
type Config struct {
	// MoveButton is the pointer button that starts a move drag when
	// pressed together with Modifier (1 = left).
	MoveButton int `yaml:"move_button"`

	// ResizeButton is the pointer button that starts a resize drag
	// when pressed together with Modifier (3 = right).
	ResizeButton int `yaml:"resize_button"`

	// Modifier is the drag modifier: shift, control, mod1..mod5.
	Modifier string `yaml:"modifier"`

	// SnapModifier, held during a drag or nudge, switches from edge
	// resistance to edge snapping. Must differ from Modifier.
	SnapModifier string `yaml:"snap_modifier"`

	// NudgeKey enters keyboard nudge mode (keybind grammar, e.g. "mod4-n").
	NudgeKey string `yaml:"nudge_key"`

	// NudgeStep is how many pixels one arrow press moves or resizes
	// the window in nudge mode.
	NudgeStep int `yaml:"nudge_step"`

	// RequireFullyOnscreen arms the long screen-edge timeout so a
	// window dragged against the screen border stays onscreen until
	// the timeout expires.
	RequireFullyOnscreen bool `yaml:"require_fully_onscreen"`

	// RequireOnSingleMonitor arms the short monitor-edge timeout at
	// boundaries between monitors.
	RequireOnSingleMonitor bool `yaml:"require_on_single_monitor"`

	Logging LoggingConfig `yaml:"logging"`

	// SocketPath overrides the daemon control socket location.
	// Empty means the default under XDG_RUNTIME_DIR.
	SocketPath string `yaml:"socket_path"`
}

type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func DefaultConfig() *Config {
	return &Config{
		MoveButton:   1,
		ResizeButton: 3,
		Modifier:     "mod4", // Super
		SnapModifier: "shift",
		NudgeKey:     "mod4-n",
		NudgeStep:    10,
		// Keep windows onscreen by default; crossing the screen border
		// requires pushing through the long timeout.
		RequireFullyOnscreen:   true,
		RequireOnSingleMonitor: false,
		Logging: LoggingConfig{
			Level: "info",
		},
		SocketPath: "",
	}
}

var validModifiers = map[string]bool{
	"shift":   true,
	"control": true,
	"mod1":    true,
	"mod2":    true,
	"mod3":    true,
	"mod4":    true,
	"mod5":    true,
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func (c *Config) Validate() error {
	if c.MoveButton < 1 || c.MoveButton > 5 {
		return &ValidationError{Path: "move_button", Err: fmt.Errorf("move_button must be between 1 and 5")}
	}
	if c.ResizeButton < 1 || c.ResizeButton > 5 {
		return &ValidationError{Path: "resize_button", Err: fmt.Errorf("resize_button must be between 1 and 5")}
	}
	if c.ResizeButton == c.MoveButton {
		return &ValidationError{Path: "resize_button", Err: fmt.Errorf("resize_button must differ from move_button")}
	}
	if !validModifiers[c.Modifier] {
		return &ValidationError{Path: "modifier", Err: fmt.Errorf("modifier must be one of: shift, control, mod1, mod2, mod3, mod4, mod5")}
	}
	if !validModifiers[c.SnapModifier] {
		return &ValidationError{Path: "snap_modifier", Err: fmt.Errorf("snap_modifier must be one of: shift, control, mod1, mod2, mod3, mod4, mod5")}
	}
	if c.SnapModifier == c.Modifier {
		return &ValidationError{Path: "snap_modifier", Err: fmt.Errorf("snap_modifier must differ from modifier")}
	}
	if c.NudgeKey == "" {
		return &ValidationError{Path: "nudge_key", Err: fmt.Errorf("nudge_key is required")}
	}
	if c.NudgeStep < 1 {
		return &ValidationError{Path: "nudge_step", Err: fmt.Errorf("nudge_step must be >= 1")}
	}
	if !validLogLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	return nil
}
