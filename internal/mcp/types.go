package mcp

// GetStatusInput is empty; the tool takes no arguments.
type GetStatusInput struct{}

// SideResistance reports the resistance state of one cardinal side of
// an in-progress grab.
type SideResistance struct {
	Side            string `json:"side"`
	Edges           int    `json:"edges"`
	Buildup         int    `json:"buildup"`
	TimerArmed      bool   `json:"timer_armed,omitempty"`
	TimerElapsed    bool   `json:"timer_elapsed,omitempty"`
	ArmedEdge       int    `json:"armed_edge,omitempty"`
	AllowPastScreen bool   `json:"allow_past_screen,omitempty"`
}

// GrabInfo describes the drag or nudge session currently in progress.
type GrabInfo struct {
	Kind   string           `json:"kind"`
	Window uint32           `json:"window"`
	Snap   bool             `json:"snap"`
	Sides  []SideResistance `json:"sides,omitempty"`
}

type GetStatusOutput struct {
	Running       bool      `json:"running"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	NudgeStep     int       `json:"nudge_step"`
	Grab          *GrabInfo `json:"grab,omitempty"`
}

// ListWindowsInput is empty; the tool takes no arguments.
type ListWindowsInput struct{}

// WindowDescriptor is one visible window with its frame geometry.
type WindowDescriptor struct {
	ID     uint32 `json:"id"`
	Title  string `json:"title"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Dock   bool   `json:"dock,omitempty"`
	Active bool   `json:"active,omitempty"`
}

type ListWindowsOutput struct {
	Windows []WindowDescriptor `json:"windows"`
}

type WindowEdgesInput struct {
	Window uint32 `json:"window,omitempty" jsonschema:"X window ID to inspect (defaults to the active window)"`
	Title  string `json:"title,omitempty" jsonschema:"Pick the first window whose title contains this text (used when window is omitted)"`
}

// EdgeDescriptor is one edge a drag of the window would interact
// with. Position is the axis coordinate of the edge line; the rect
// fields give its span.
type EdgeDescriptor struct {
	Side     string `json:"side"`
	Kind     string `json:"kind"`
	Position int    `json:"position"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type WindowEdgesOutput struct {
	Window uint32           `json:"window"`
	Title  string           `json:"title,omitempty"`
	Edges  []EdgeDescriptor `json:"edges"`
}

type NudgeWindowInput struct {
	Direction string `json:"direction" jsonschema:"required,Direction to move: up, down, left, or right"`
	Px        int    `json:"px,omitempty" jsonschema:"Distance in pixels (defaults to the configured nudge step)"`
	Snap      bool   `json:"snap,omitempty" jsonschema:"Jump to the nearest edge in the direction instead of moving by px"`
	Window    uint32 `json:"window,omitempty" jsonschema:"X window ID to move (defaults to the active window)"`
	Title     string `json:"title,omitempty" jsonschema:"Pick the first window whose title contains this text (used when window is omitted)"`
}

// NudgeWindowOutput reports where the window was and where it ended
// up. Moved is false when resistance held the window in place.
type NudgeWindowOutput struct {
	Window uint32 `json:"window"`
	FromX  int    `json:"from_x"`
	FromY  int    `json:"from_y"`
	ToX    int    `json:"to_x"`
	ToY    int    `json:"to_y"`
	Moved  bool   `json:"moved"`
}

type SnapWindowInput struct {
	Direction string `json:"direction" jsonschema:"required,Direction to snap: up, down, left, or right"`
	Window    uint32 `json:"window,omitempty" jsonschema:"X window ID to snap (defaults to the active window)"`
	Title     string `json:"title,omitempty" jsonschema:"Pick the first window whose title contains this text (used when window is omitted)"`
}

type SnapWindowOutput struct {
	Window uint32 `json:"window"`
	FromX  int    `json:"from_x"`
	FromY  int    `json:"from_y"`
	ToX    int    `json:"to_x"`
	ToY    int    `json:"to_y"`
	Moved  bool   `json:"moved"`
}
