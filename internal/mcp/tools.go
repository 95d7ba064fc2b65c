package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// sideOrder fixes the order sides appear in tool output.
var sideOrder = []string{"left", "right", "top", "bottom"}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("failed to get status: %w", err)
	}

	out := GetStatusOutput{
		Running:       status.DaemonRunning,
		UptimeSeconds: status.UptimeSeconds,
		NudgeStep:     status.NudgeStep,
	}

	if status.GrabActive {
		grab := &GrabInfo{
			Kind:   status.GrabKind,
			Window: status.GrabWindow,
			Snap:   status.LastActionSnap,
		}
		for _, side := range sideOrder {
			st, ok := status.Sides[side]
			if !ok {
				continue
			}
			grab.Sides = append(grab.Sides, SideResistance{
				Side:            side,
				Edges:           st.EdgeCount,
				Buildup:         st.Buildup,
				TimerArmed:      st.TimerArmed,
				TimerElapsed:    st.TimerElapsed,
				ArmedEdge:       st.ArmedEdgePos,
				AllowPastScreen: st.AllowPastScreen,
			})
		}
		out.Grab = grab
	}

	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}

	windows := make([]WindowDescriptor, 0, len(data.Windows))
	for _, w := range data.Windows {
		windows = append(windows, WindowDescriptor{
			ID:     w.ID,
			Title:  w.Title,
			X:      w.X,
			Y:      w.Y,
			Width:  w.Width,
			Height: w.Height,
			Dock:   w.Dock,
			Active: w.Active,
		})
	}

	return nil, ListWindowsOutput{Windows: windows}, nil
}

func (s *Server) handleWindowEdges(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowEdgesInput) (*mcpsdk.CallToolResult, WindowEdgesOutput, error) {
	data, err := s.client.GetEdges(args.Window, args.Title)
	if err != nil {
		return nil, WindowEdgesOutput{}, fmt.Errorf("failed to get edges: %w", err)
	}

	edges := make([]EdgeDescriptor, 0, len(data.Edges))
	for _, e := range data.Edges {
		edges = append(edges, EdgeDescriptor{
			Side:     e.Side,
			Kind:     e.Kind,
			Position: e.Position,
			X:        e.X,
			Y:        e.Y,
			Width:    e.Width,
			Height:   e.Height,
		})
	}

	return nil, WindowEdgesOutput{
		Window: data.Window,
		Title:  data.Title,
		Edges:  edges,
	}, nil
}

func (s *Server) handleNudgeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args NudgeWindowInput) (*mcpsdk.CallToolResult, NudgeWindowOutput, error) {
	if args.Direction == "" {
		return nil, NudgeWindowOutput{}, fmt.Errorf("direction is required")
	}

	result, err := s.client.Nudge(args.Window, args.Title, args.Direction, args.Px, args.Snap)
	if err != nil {
		return nil, NudgeWindowOutput{}, fmt.Errorf("nudge failed: %w", err)
	}

	return nil, NudgeWindowOutput{
		Window: result.Window,
		FromX:  result.FromX,
		FromY:  result.FromY,
		ToX:    result.ToX,
		ToY:    result.ToY,
		Moved:  result.Moved,
	}, nil
}

func (s *Server) handleSnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapWindowInput) (*mcpsdk.CallToolResult, SnapWindowOutput, error) {
	if args.Direction == "" {
		return nil, SnapWindowOutput{}, fmt.Errorf("direction is required")
	}

	result, err := s.client.Snap(args.Window, args.Title, args.Direction)
	if err != nil {
		return nil, SnapWindowOutput{}, fmt.Errorf("snap failed: %w", err)
	}

	return nil, SnapWindowOutput{
		Window: result.Window,
		FromX:  result.FromX,
		FromY:  result.FromY,
		ToX:    result.ToX,
		ToY:    result.ToY,
		Moved:  result.Moved,
	}, nil
}
