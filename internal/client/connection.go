package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/models"
)

// Connection manages the Unix domain socket connection to the window server.
// Requests are serialized; one request is in flight at a time.
type Connection struct {
	socketPath string
	timeout    time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewConnection creates a new connection instance
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect establishes the Unix domain socket connection
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected returns true if the connection is established
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SendRequest sends a request and waits for the matching response.
// Event envelopes received in between are logged and skipped.
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, fmt.Errorf("not connected to %s", c.socketPath)
	}

	// Apply timeout if not already set
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	deadline, _ := ctx.Deadline()

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send with newline delimiter
	data = append(data, '\n')
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	// Read response with context cancellation support
	respChan := make(chan *models.Response, 1)
	errChan := make(chan error, 1)

	go func() {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			errChan <- fmt.Errorf("failed to set read deadline: %w", err)
			return
		}

		for {
			line, err := c.reader.ReadBytes('\n')
			if err != nil {
				errChan <- fmt.Errorf("failed to read response: %w", err)
				return
			}

			var envelope models.MessageEnvelope
			if err := json.Unmarshal(line, &envelope); err != nil {
				errChan <- fmt.Errorf("failed to unmarshal response: %w", err)
				return
			}

			switch envelope.Type {
			case models.TypeEvent:
				if envelope.Event != nil {
					logging.Debug().Str("event", envelope.Event.EventType).Msg("skipping server event")
				}
				continue
			case models.TypeResponse:
			default:
				errChan <- fmt.Errorf("expected response, got %s", envelope.Type)
				return
			}

			if envelope.Response == nil {
				errChan <- fmt.Errorf("response envelope has nil response")
				return
			}
			if envelope.Response.ID != req.Request.ID {
				logging.Warn().
					Str("want", req.Request.ID).
					Str("got", envelope.Response.ID).
					Msg("skipping response with mismatched id")
				continue
			}

			respChan <- envelope.Response
			return
		}
	}()

	select {
	case <-ctx.Done():
		// Unblock the reader; the stream is no longer in a known position
		c.conn.SetReadDeadline(time.Now())
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case err := <-errChan:
		return nil, err
	case resp := <-respChan:
		return resp, nil
	}
}
