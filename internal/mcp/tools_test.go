package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/edgegrab/internal/edges"
	"github.com/1broseidon/edgegrab/internal/ipc"
)

type nudgeCall struct {
	window    uint32
	title     string
	direction string
	px        int
	snap      bool
}

// fakeDaemon implements daemonClient with canned responses.
type fakeDaemon struct {
	status  *ipc.StatusData
	edges   *ipc.EdgesData
	windows *ipc.WindowsData
	move    *ipc.MoveResultData
	err     error

	nudges []nudgeCall
}

func (f *fakeDaemon) GetStatus() (*ipc.StatusData, error) {
	return f.status, f.err
}

func (f *fakeDaemon) GetEdges(window uint32, title string) (*ipc.EdgesData, error) {
	return f.edges, f.err
}

func (f *fakeDaemon) ListWindows() (*ipc.WindowsData, error) {
	return f.windows, f.err
}

func (f *fakeDaemon) Nudge(window uint32, title, direction string, px int, snap bool) (*ipc.MoveResultData, error) {
	f.nudges = append(f.nudges, nudgeCall{window: window, title: title, direction: direction, px: px, snap: snap})
	return f.move, f.err
}

func (f *fakeDaemon) Snap(window uint32, title, direction string) (*ipc.MoveResultData, error) {
	f.nudges = append(f.nudges, nudgeCall{window: window, title: title, direction: direction, snap: true})
	return f.move, f.err
}

func TestHandleNudgeWindowRequiresDirection(t *testing.T) {
	fake := &fakeDaemon{}
	s := &Server{client: fake}

	_, _, err := s.handleNudgeWindow(context.Background(), nil, NudgeWindowInput{})
	if err == nil {
		t.Fatal("expected error for missing direction")
	}
	if len(fake.nudges) != 0 {
		t.Errorf("daemon called %d times, want 0", len(fake.nudges))
	}
}

func TestHandleNudgeWindowForwardsArgs(t *testing.T) {
	fake := &fakeDaemon{
		move: &ipc.MoveResultData{Window: 0x2a, FromX: 100, FromY: 50, ToX: 100, ToY: 50, Moved: false},
	}
	s := &Server{client: fake}

	_, out, err := s.handleNudgeWindow(context.Background(), nil, NudgeWindowInput{
		Direction: "left",
		Px:        25,
		Snap:      true,
		Window:    0x2a,
	})
	if err != nil {
		t.Fatalf("handleNudgeWindow: %v", err)
	}

	if len(fake.nudges) != 1 {
		t.Fatalf("daemon called %d times, want 1", len(fake.nudges))
	}
	call := fake.nudges[0]
	if call.window != 0x2a || call.direction != "left" || call.px != 25 || !call.snap {
		t.Errorf("daemon call = %+v, want {0x2a left 25 true}", call)
	}

	if out.Window != 0x2a || out.FromX != 100 || out.ToX != 100 || out.Moved {
		t.Errorf("output = %+v, want held at (100, 50)", out)
	}
}

func TestHandleNudgeWindowForwardsTitle(t *testing.T) {
	fake := &fakeDaemon{
		move: &ipc.MoveResultData{Window: 0x2a, FromX: 10, FromY: 10, ToX: 0, ToY: 10, Moved: true},
	}
	s := &Server{client: fake}

	_, _, err := s.handleNudgeWindow(context.Background(), nil, NudgeWindowInput{
		Direction: "left",
		Title:     "xterm",
	})
	if err != nil {
		t.Fatalf("handleNudgeWindow: %v", err)
	}

	if len(fake.nudges) != 1 {
		t.Fatalf("daemon called %d times, want 1", len(fake.nudges))
	}
	call := fake.nudges[0]
	if call.window != 0 || call.title != "xterm" {
		t.Errorf("daemon call = %+v, want title lookup for %q", call, "xterm")
	}
}

func TestHandleNudgeWindowWrapsDaemonError(t *testing.T) {
	fake := &fakeDaemon{err: errors.New("no active window")}
	s := &Server{client: fake}

	_, _, err := s.handleNudgeWindow(context.Background(), nil, NudgeWindowInput{Direction: "up"})
	if err == nil {
		t.Fatal("expected error from daemon")
	}
	if !strings.Contains(err.Error(), "no active window") {
		t.Errorf("error %q does not mention daemon failure", err)
	}
}

func TestHandleSnapWindowRequiresDirection(t *testing.T) {
	s := &Server{client: &fakeDaemon{}}

	_, _, err := s.handleSnapWindow(context.Background(), nil, SnapWindowInput{})
	if err == nil {
		t.Fatal("expected error for missing direction")
	}
}

func TestHandleGetStatusIdle(t *testing.T) {
	fake := &fakeDaemon{
		status: &ipc.StatusData{
			DaemonRunning: true,
			UptimeSeconds: 90,
			NudgeStep:     10,
		},
	}
	s := &Server{client: fake}

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("handleGetStatus: %v", err)
	}
	if !out.Running || out.UptimeSeconds != 90 || out.NudgeStep != 10 {
		t.Errorf("output = %+v", out)
	}
	if out.Grab != nil {
		t.Errorf("idle daemon reported grab %+v", out.Grab)
	}
}

func TestHandleGetStatusActiveGrabSideOrder(t *testing.T) {
	fake := &fakeDaemon{
		status: &ipc.StatusData{
			DaemonRunning: true,
			GrabActive:    true,
			GrabKind:      "move",
			GrabWindow:    0x1f,
			Sides: map[string]edges.SideStatus{
				"top":   {EdgeCount: 3, Buildup: 4, TimerArmed: true, ArmedEdgePos: 20},
				"left":  {EdgeCount: 1},
				"right": {EdgeCount: 2, Buildup: 7},
			},
		},
	}
	s := &Server{client: fake}

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("handleGetStatus: %v", err)
	}
	if out.Grab == nil {
		t.Fatal("expected grab info for active session")
	}
	if out.Grab.Kind != "move" || out.Grab.Window != 0x1f {
		t.Errorf("grab = %+v", out.Grab)
	}

	// Sides come out in fixed left/right/top/bottom order, regardless
	// of map iteration. Bottom is absent from the status and skipped.
	want := []string{"left", "right", "top"}
	if len(out.Grab.Sides) != len(want) {
		t.Fatalf("got %d sides, want %d", len(out.Grab.Sides), len(want))
	}
	for i, side := range want {
		if out.Grab.Sides[i].Side != side {
			t.Errorf("sides[%d] = %q, want %q", i, out.Grab.Sides[i].Side, side)
		}
	}

	top := out.Grab.Sides[2]
	if top.Edges != 3 || top.Buildup != 4 || !top.TimerArmed || top.ArmedEdge != 20 {
		t.Errorf("top side = %+v", top)
	}
}

func TestHandleWindowEdges(t *testing.T) {
	fake := &fakeDaemon{
		edges: &ipc.EdgesData{
			Window: 0x2a,
			Title:  "xterm",
			Edges: []ipc.EdgeInfo{
				{Side: "left", Kind: "window", Position: 640, X: 640, Y: 0, Width: 0, Height: 480},
			},
		},
	}
	s := &Server{client: fake}

	_, out, err := s.handleWindowEdges(context.Background(), nil, WindowEdgesInput{Window: 0x2a})
	if err != nil {
		t.Fatalf("handleWindowEdges: %v", err)
	}
	if out.Window != 0x2a || out.Title != "xterm" {
		t.Errorf("output header = %+v", out)
	}
	if len(out.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(out.Edges))
	}
	e := out.Edges[0]
	if e.Side != "left" || e.Kind != "window" || e.Position != 640 || e.Height != 480 {
		t.Errorf("edge = %+v", e)
	}
}

func TestHandleListWindows(t *testing.T) {
	fake := &fakeDaemon{
		windows: &ipc.WindowsData{
			Windows: []ipc.WindowInfo{
				{ID: 0x10, Title: "panel", X: 0, Y: 0, Width: 1920, Height: 24, Dock: true},
				{ID: 0x2a, Title: "xterm", X: 100, Y: 100, Width: 640, Height: 480, Active: true},
			},
		},
	}
	s := &Server{client: fake}

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("handleListWindows: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(out.Windows))
	}
	if !out.Windows[0].Dock || out.Windows[0].ID != 0x10 {
		t.Errorf("windows[0] = %+v, want dock 0x10", out.Windows[0])
	}
	if !out.Windows[1].Active || out.Windows[1].Width != 640 {
		t.Errorf("windows[1] = %+v, want active xterm", out.Windows[1])
	}
}
