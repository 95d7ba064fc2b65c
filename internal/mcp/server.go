// Package mcp exposes the daemon's window and edge operations as MCP
// tools over stdio, so assistants can inspect edge maps and move
// windows with resistance applied.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/edgegrab/internal/ipc"
)

const (
	ServerName    = "edgegrab"
	ServerVersion = "0.1.0"
)

// daemonClient is the slice of the IPC client the tools need.
type daemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	GetEdges(window uint32, title string) (*ipc.EdgesData, error)
	ListWindows() (*ipc.WindowsData, error)
	Nudge(window uint32, title, direction string, px int, snap bool) (*ipc.MoveResultData, error)
	Snap(window uint32, title, direction string) (*ipc.MoveResultData, error)
}

// Server bridges MCP tool calls to the running daemon over its unix
// socket.
type Server struct {
	mcpServer *mcpsdk.Server
	client    daemonClient
}

// NewServer creates the MCP server and registers all tools. The
// daemon must already be running; every tool call goes through its
// socket.
func NewServer(client *ipc.Client) (*Server, error) {
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("daemon not reachable (is 'edgegrab daemon' running?): %w", err)
	}

	s := &Server{client: client}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()

	return s, nil
}

// Run starts the MCP server on stdio and blocks until the client
// disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get daemon status: uptime, configured nudge step, and details of any drag or nudge session currently in progress, including per-side resistance buildup.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List visible windows in stacking order with their geometry. Docks and panels are marked, as is the currently active window.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_edges",
		Description: "Show the edges a drag of the given window would resist against: onscreen edges of other windows, monitor boundaries, and the screen border, each with its side, kind, and span.",
	}, s.handleWindowEdges)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "nudge_window",
		Description: "Move a window one step in a direction with keyboard edge resistance applied. The window stops at window, monitor, and screen edges until pushed repeatedly, exactly like an arrow-key nudge.",
	}, s.handleNudgeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snap_window",
		Description: "Snap a window directly to the nearest edge in a direction, skipping the distance in between. Resistance does not apply to snaps.",
	}, s.handleSnapWindow)
}
