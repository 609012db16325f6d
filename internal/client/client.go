package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/canvas-grid/internal/models"
)

const (
	DefaultSocketPath = "/tmp/grid-server.sock"
	DefaultTimeout    = 30 * time.Second
)

// Client talks to the window server over its Unix socket
type Client struct {
	conn *Connection
}

// NewClient creates a new window server client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// CallMethod sends a request and returns its result, connecting lazily.
// Server-side failures are returned as *models.ErrorInfo.
func (c *Client) CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := models.NewRequest(uuid.New().String(), method, params)
	resp, err := c.conn.SendRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// Dump retrieves the complete window server state
func (c *Client) Dump(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, "dump", nil)
}

// UpdateWindow updates a window's properties such as x, y, width and height
func (c *Client) UpdateWindow(ctx context.Context, windowID int, updates map[string]interface{}) (map[string]interface{}, error) {
	params := map[string]interface{}{
		"windowId": windowID,
	}
	for k, v := range updates {
		params[k] = v
	}
	return c.CallMethod(ctx, "updateWindow", params)
}

// windowCall invokes a window.* method that only needs the window id
func (c *Client) windowCall(ctx context.Context, method string, windowID int) (map[string]interface{}, error) {
	return c.CallMethod(ctx, method, map[string]interface{}{"windowId": windowID})
}

// FocusWindow focuses a window and raises it to the front
func (c *Client) FocusWindow(ctx context.Context, windowID int) error {
	_, err := c.windowCall(ctx, "window.focus", windowID)
	return err
}

// RaiseWindow brings a window to the front without focusing it
func (c *Client) RaiseWindow(ctx context.Context, windowID int) error {
	_, err := c.windowCall(ctx, "window.raise", windowID)
	return err
}

// MinimizeWindow minimizes a window
func (c *Client) MinimizeWindow(ctx context.Context, windowID int) error {
	_, err := c.windowCall(ctx, "window.minimize", windowID)
	return err
}

// UnminimizeWindow restores a minimized window
func (c *Client) UnminimizeWindow(ctx context.Context, windowID int) error {
	_, err := c.windowCall(ctx, "window.unminimize", windowID)
	return err
}

// WarpMouseToWindow moves the mouse cursor to the center of a window
func (c *Client) WarpMouseToWindow(ctx context.Context, windowID int) error {
	if _, err := c.windowCall(ctx, "mouse.warp", windowID); err != nil {
		return fmt.Errorf("mouse warp failed: %w", err)
	}
	return nil
}

// GetWindowFrame returns the raw frame result for a window
func (c *Client) GetWindowFrame(ctx context.Context, windowID int) (map[string]interface{}, error) {
	return c.windowCall(ctx, "window.getFrame", windowID)
}
