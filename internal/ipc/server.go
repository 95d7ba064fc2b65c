package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/edgegrab/internal/config"
	"github.com/1broseidon/edgegrab/internal/grab"
	"github.com/1broseidon/edgegrab/internal/runtimepath"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	manager      *grab.Manager
	startTime    time.Time
	reloadChan   chan struct{}
	stopChan     chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, manager *grab.Manager, reloadChan, stopChan chan struct{}) (*Server, error) {
	socketPath := cfg.SocketPath
	if socketPath == "" {
		var err error
		socketPath, err = runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		manager:    manager,
		startTime:  time.Now(),
		reloadChan: reloadChan,
		stopChan:   stopChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetEdges:
		return s.handleGetEdges(req.Payload)
	case CommandListWindows:
		return s.handleListWindows()
	case CommandNudge:
		return s.handleNudge(req.Payload)
	case CommandSnap:
		return s.handleSnap(req.Payload)
	case CommandReload:
		return s.handleReload()
	case CommandStop:
		return s.handleStop()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	snap := s.manager.Status()

	s.cfgMu.RLock()
	nudgeStep := s.cfg.NudgeStep
	s.cfgMu.RUnlock()

	status := StatusData{
		DaemonRunning:  true,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		NudgeStep:      nudgeStep,
		GrabActive:     snap.Active,
		LastActionSnap: snap.LastSnap,
	}
	if snap.Active {
		status.GrabKind = snap.Kind.String()
		status.GrabWindow = uint32(snap.Window)
		status.Sides = snap.Sides
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleGetEdges computes the edge map a grab of the requested window
// would resist against.
func (s *Server) handleGetEdges(payload json.RawMessage) *Response {
	var req EdgesPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid edges payload: %v", err))
		}
	}

	target, err := s.target(req.Window, req.Title)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to find window: %v", err))
	}

	win, title, edgeList, err := s.manager.EdgeMap(target)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to compute edges: %v", err))
	}

	infos := make([]EdgeInfo, len(edgeList))
	for i, e := range edgeList {
		infos[i] = EdgeInfo{
			Side:     e.Side.String(),
			Kind:     e.Kind.String(),
			Position: e.Position(),
			X:        e.Rect.X,
			Y:        e.Rect.Y,
			Width:    e.Rect.Width,
			Height:   e.Rect.Height,
		}
	}

	data := EdgesData{
		Window: uint32(win),
		Title:  title,
		Edges:  infos,
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// handleListWindows returns the manageable windows in stacking order
func (s *Server) handleListWindows() *Response {
	windows, err := s.manager.ListWindows()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list windows: %v", err))
	}

	infos := make([]WindowInfo, len(windows))
	for i, w := range windows {
		infos[i] = WindowInfo{
			ID:     uint32(w.ID),
			Title:  w.Title,
			X:      w.Rect.X,
			Y:      w.Rect.Y,
			Width:  w.Rect.Width,
			Height: w.Rect.Height,
			Dock:   w.Dock,
			Active: w.Active,
		}
	}

	data := WindowsData{Windows: infos}

	resp, _ := NewOKResponse(data)
	return resp
}

// handleNudge moves a window one resisted step in a direction
func (s *Server) handleNudge(payload json.RawMessage) *Response {
	var req NudgePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid nudge payload: %v", err))
	}

	dir, ok := grab.ParseDirection(req.Direction)
	if !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown direction: %q", req.Direction))
	}

	target, err := s.target(req.Window, req.Title)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to find window: %v", err))
	}

	win, from, to, err := s.manager.NudgeWindow(target, dir, req.Px, req.Snap)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to nudge window: %v", err))
	}

	data := MoveResultData{
		Window: uint32(win),
		FromX:  from.X,
		FromY:  from.Y,
		ToX:    to.X,
		ToY:    to.Y,
		Moved:  to != from,
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// handleSnap moves a window onto the nearest edge in a direction
func (s *Server) handleSnap(payload json.RawMessage) *Response {
	var req SnapPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snap payload: %v", err))
	}

	dir, ok := grab.ParseDirection(req.Direction)
	if !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown direction: %q", req.Direction))
	}

	target, err := s.target(req.Window, req.Title)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to find window: %v", err))
	}

	win, from, to, err := s.manager.NudgeWindow(target, dir, 0, true)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to snap window: %v", err))
	}

	data := MoveResultData{
		Window: uint32(win),
		FromX:  from.X,
		FromY:  from.Y,
		ToX:    to.X,
		ToY:    to.Y,
		Moved:  to != from,
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	// Load new config
	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	// Update config atomically
	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleStop asks the daemon to shut down
func (s *Server) handleStop() *Response {
	log.Println("IPC: Received STOP command")

	select {
	case s.stopChan <- struct{}{}:
	default:
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// target resolves the window a payload addresses: an explicit ID wins,
// then a title substring lookup, else zero for the active window.
func (s *Server) target(window uint32, title string) (xproto.Window, error) {
	if window != 0 || title == "" {
		return xproto.Window(window), nil
	}
	return s.manager.FindWindow(title)
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
