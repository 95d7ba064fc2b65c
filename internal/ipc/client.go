package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/edgegrab/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client talking to the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// NewClientWithSocket creates a client for a non-default socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetEdges retrieves the edge map for a window. An explicit ID wins,
// then a title substring lookup; zero and empty mean the active window.
func (c *Client) GetEdges(window uint32, title string) (*EdgesData, error) {
	payload, err := json.Marshal(EdgesPayload{Window: window, Title: title})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal edges payload: %w", err)
	}

	req := &Request{
		Command: CommandGetEdges,
		Payload: payload,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data EdgesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse edges data: %w", err)
	}

	return &data, nil
}

// ListWindows retrieves the current stacking order.
func (c *Client) ListWindows() (*WindowsData, error) {
	req := &Request{
		Command: CommandListWindows,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}

	return &data, nil
}

// Nudge moves a window by px pixels in direction through edge
// resistance (keyboard policy). The window is addressed by ID or title
// like GetEdges, px 0 uses the configured step.
func (c *Client) Nudge(window uint32, title, direction string, px int, snap bool) (*MoveResultData, error) {
	payload, err := json.Marshal(NudgePayload{
		Direction: direction,
		Px:        px,
		Snap:      snap,
		Window:    window,
		Title:     title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nudge payload: %w", err)
	}

	req := &Request{
		Command: CommandNudge,
		Payload: payload,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var result MoveResultData
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse nudge result: %w", err)
	}

	return &result, nil
}

// Snap moves a window to the nearest edge in direction.
func (c *Client) Snap(window uint32, title, direction string) (*MoveResultData, error) {
	payload, err := json.Marshal(SnapPayload{
		Direction: direction,
		Window:    window,
		Title:     title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snap payload: %w", err)
	}

	req := &Request{
		Command: CommandSnap,
		Payload: payload,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var result MoveResultData
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse snap result: %w", err)
	}

	return &result, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	req := &Request{
		Command: CommandReload,
	}

	_, err := c.sendRequest(req)
	return err
}

// Stop asks the daemon to shut down.
func (c *Client) Stop() error {
	req := &Request{
		Command: CommandStop,
	}

	_, err := c.sendRequest(req)
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
