package window

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/server"
	"github.com/yourusername/canvas-grid/internal/types"
)

// ErrInvalidHandle is returned for window handles the server cannot address
var ErrInvalidHandle = errors.New("invalid window handle")

// Client is the subset of the window server client used for positioning
type Client interface {
	UpdateWindow(ctx context.Context, windowID int, updates map[string]interface{}) (map[string]interface{}, error)
	FocusWindow(ctx context.Context, windowID int) error
	RaiseWindow(ctx context.Context, windowID int) error
	WarpMouseToWindow(ctx context.Context, windowID int) error
	MinimizeWindow(ctx context.Context, windowID int) error
	UnminimizeWindow(ctx context.Context, windowID int) error
	GetWindowFrame(ctx context.Context, windowID int) (map[string]interface{}, error)
}

// ServerPositioner moves windows through the window server
type ServerPositioner struct {
	client Client
}

// NewServerPositioner creates a positioner backed by the window server
func NewServerPositioner(c Client) *ServerPositioner {
	return &ServerPositioner{client: c}
}

// parseHandle converts a window handle to the server's numeric id
func parseHandle(handle string) (int, error) {
	id, err := strconv.Atoi(handle)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}
	return id, nil
}

// PositionWindow restores the window if it is minimized, then moves and
// resizes it to rect in one updateWindow call.
func (p *ServerPositioner) PositionWindow(ctx context.Context, handle string, rect types.PixelRect) error {
	id, err := parseHandle(handle)
	if err != nil {
		return err
	}

	frame, err := p.client.GetWindowFrame(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to read window %d: %w", id, err)
	}
	if minimized, _ := frame["isMinimized"].(bool); minimized {
		logging.Debug().Int("windowId", id).Msg("restoring minimized window before move")
		if err := p.client.UnminimizeWindow(ctx, id); err != nil {
			return fmt.Errorf("failed to restore window %d: %w", id, err)
		}
	}

	_, err = p.client.UpdateWindow(ctx, id, map[string]interface{}{
		"x":      rect.X,
		"y":      rect.Y,
		"width":  rect.Width,
		"height": rect.Height,
	})
	if err != nil {
		return fmt.Errorf("failed to update window %d: %w", id, err)
	}

	logging.Info().
		Int("windowId", id).
		Int("x", rect.X).
		Int("y", rect.Y).
		Int("w", rect.Width).
		Int("h", rect.Height).
		Msg("window moved")
	return nil
}

// Focus focuses the window and brings it to the front
func (p *ServerPositioner) Focus(ctx context.Context, handle string) error {
	id, err := parseHandle(handle)
	if err != nil {
		return err
	}
	if err := p.client.FocusWindow(ctx, id); err != nil {
		return fmt.Errorf("failed to focus window %d: %w", id, err)
	}
	return nil
}

// Raise brings the window to the front without focusing it
func (p *ServerPositioner) Raise(ctx context.Context, handle string) error {
	id, err := parseHandle(handle)
	if err != nil {
		return err
	}
	if err := p.client.RaiseWindow(ctx, id); err != nil {
		return fmt.Errorf("failed to raise window %d: %w", id, err)
	}
	return nil
}

// WarpMouse centers the mouse cursor on the window
func (p *ServerPositioner) WarpMouse(ctx context.Context, handle string) error {
	id, err := parseHandle(handle)
	if err != nil {
		return err
	}
	return p.client.WarpMouseToWindow(ctx, id)
}

// Minimize minimizes the window
func (p *ServerPositioner) Minimize(ctx context.Context, handle string) error {
	id, err := parseHandle(handle)
	if err != nil {
		return err
	}
	if err := p.client.MinimizeWindow(ctx, id); err != nil {
		return fmt.Errorf("failed to minimize window %d: %w", id, err)
	}
	return nil
}

// Restore un-minimizes the window
func (p *ServerPositioner) Restore(ctx context.Context, handle string) error {
	id, err := parseHandle(handle)
	if err != nil {
		return err
	}
	if err := p.client.UnminimizeWindow(ctx, id); err != nil {
		return fmt.Errorf("failed to restore window %d: %w", id, err)
	}
	return nil
}

// Frame returns the window's current rect
func (p *ServerPositioner) Frame(ctx context.Context, handle string) (types.PixelRect, error) {
	id, err := parseHandle(handle)
	if err != nil {
		return types.PixelRect{}, err
	}

	result, err := p.client.GetWindowFrame(ctx, id)
	if err != nil {
		return types.PixelRect{}, fmt.Errorf("failed to read window %d: %w", id, err)
	}

	frame, ok := result["frame"]
	if !ok {
		frame = result
	}
	rect, ok := server.ParseFrame(frame)
	if !ok {
		return types.PixelRect{}, fmt.Errorf("window %d: unrecognized frame %v", id, frame)
	}
	return rect, nil
}
