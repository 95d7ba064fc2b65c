package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/edgegrab/internal/edges"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetEdges    CommandType = "GET_EDGES"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandNudge       CommandType = "NUDGE"
	CommandSnap        CommandType = "SNAP"
	CommandReload      CommandType = "RELOAD"
	CommandStop        CommandType = "STOP"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning  bool   `json:"daemon_running"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	NudgeStep      int    `json:"nudge_step"`
	GrabActive     bool   `json:"grab_active"`
	GrabKind       string `json:"grab_kind,omitempty"` // "move", "resize" or "nudge"
	GrabWindow     uint32 `json:"grab_window,omitempty"`
	LastActionSnap bool   `json:"last_action_snap"`
	// Sides carries resistance state per side while a grab is active.
	Sides map[string]edges.SideStatus `json:"sides,omitempty"`
}

// EdgeInfo describes a single relevant edge segment.
type EdgeInfo struct {
	Side     string `json:"side"`
	Kind     string `json:"kind"`
	Position int    `json:"position"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// EdgesData represents the data returned by GET_EDGES: the edge map a
// grab of the given window would resist against, computed on demand.
type EdgesData struct {
	Window uint32     `json:"window"`
	Title  string     `json:"title,omitempty"`
	Edges  []EdgeInfo `json:"edges"`
}

// WindowInfo describes one window in the current stacking order.
type WindowInfo struct {
	ID     uint32 `json:"id"`
	Title  string `json:"title"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Dock   bool   `json:"dock,omitempty"`
	Active bool   `json:"active,omitempty"`
}

// WindowsData represents the data returned by LIST_WINDOWS
// (bottom-to-top stacking order).
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// EdgesPayload selects the window for GET_EDGES. An explicit ID wins,
// then a title substring lookup; neither means the active window.
type EdgesPayload struct {
	Window uint32 `json:"window,omitempty"`
	Title  string `json:"title,omitempty"`
}

// NudgePayload represents the payload for the NUDGE command.
type NudgePayload struct {
	Direction string `json:"direction"`        // left, right, up or down
	Px        int    `json:"px,omitempty"`     // 0 = configured nudge_step
	Snap      bool   `json:"snap,omitempty"`   // snap instead of resist
	Window    uint32 `json:"window,omitempty"` // 0 = active window
	Title     string `json:"title,omitempty"`  // title lookup when window is 0
}

// SnapPayload represents the payload for the SNAP command.
type SnapPayload struct {
	Direction string `json:"direction"`
	Window    uint32 `json:"window,omitempty"`
	Title     string `json:"title,omitempty"`
}

// MoveResultData reports where a NUDGE or SNAP left the window.
type MoveResultData struct {
	Window uint32 `json:"window"`
	FromX  int    `json:"from_x"`
	FromY  int    `json:"from_y"`
	ToX    int    `json:"to_x"`
	ToY    int    `json:"to_y"`
	Moved  bool   `json:"moved"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
