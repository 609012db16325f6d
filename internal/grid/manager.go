package grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/monitor"
	"github.com/yourusername/canvas-grid/internal/types"
)

// MonitorService resolves a monitor index to its geometry. An index with
// no monitor is reported as monitor.ErrUnknownMonitor; any other error is
// a failure to reach the source.
type MonitorService interface {
	GetMonitor(ctx context.Context, index int) (types.MonitorInfo, error)
}

// WindowPositioner moves and resizes a window to an absolute rect,
// restoring it first if it is minimized.
type WindowPositioner interface {
	PositionWindow(ctx context.Context, handle string, rect types.PixelRect) error
}

// Manager runs the grid operations that need monitor geometry or window
// movement. Each call performs exactly one monitor lookup and, for
// PositionWindow, exactly one positioner call. Nothing is retried.
type Manager struct {
	monitors   MonitorService
	positioner WindowPositioner
}

// NewManager creates a Manager. positioner may be nil when only geometry
// queries are needed.
func NewManager(monitors MonitorService, positioner WindowPositioner) *Manager {
	return &Manager{
		monitors:   monitors,
		positioner: positioner,
	}
}

// monitor fetches the monitor for a config. Only an unknown index maps to
// ErrNotFound; source failures pass through.
func (m *Manager) monitor(ctx context.Context, cfg types.GridConfig) (types.MonitorInfo, error) {
	mon, err := m.monitors.GetMonitor(ctx, cfg.MonitorIndex)
	if errors.Is(err, monitor.ErrUnknownMonitor) {
		return types.MonitorInfo{}, fmt.Errorf("%w: monitor %d: %w", ErrNotFound, cfg.MonitorIndex, err)
	}
	if err != nil {
		return types.MonitorInfo{}, fmt.Errorf("failed to get monitor %d: %w", cfg.MonitorIndex, err)
	}
	return mon, nil
}

// CalculateWindowRect returns the pixel rect of a span on the config's monitor
func (m *Manager) CalculateWindowRect(ctx context.Context, span types.CellSpan, cfg types.GridConfig) (types.PixelRect, error) {
	mon, err := m.monitor(ctx, cfg)
	if err != nil {
		return types.PixelRect{}, err
	}
	return layout.CalculateCellRect(span, cfg, mon), nil
}

// GetCellDimensions returns cell size, gaps and leftover pixels for a config
func (m *Manager) GetCellDimensions(ctx context.Context, cfg types.GridConfig) (types.CellDimensions, error) {
	mon, err := m.monitor(ctx, cfg)
	if err != nil {
		return types.CellDimensions{}, err
	}
	return layout.CalculateCellDimensions(cfg, mon), nil
}

// GetGridLayoutInfo joins state, monitor geometry, per-window rects and the
// free cells into a single read view. windowKinds optionally labels windows.
func (m *Manager) GetGridLayoutInfo(ctx context.Context, state types.GridState, windowKinds map[string]string) (*types.GridLayoutInfo, error) {
	mon, err := m.monitor(ctx, state.Config)
	if err != nil {
		return nil, err
	}

	windows := make([]types.WindowLayout, 0, len(state.Assignments))
	for _, a := range state.Assignments {
		windows = append(windows, types.WindowLayout{
			WindowID: a.WindowID,
			Kind:     windowKinds[a.WindowID],
			CellSpan: a.CellSpan,
			Notation: layout.FormatCellSpan(a.CellSpan),
			Rect:     layout.CalculateCellRect(a.CellSpan, state.Config, mon),
		})
	}

	return &types.GridLayoutInfo{
		DesktopIndex:   state.DesktopIndex,
		Config:         state.Config,
		Monitor:        mon,
		CellSize:       layout.CalculateSingleCellSize(state.Config, mon),
		Remaining:      layout.CalculateRemainingSpace(state.Config, mon),
		Windows:        windows,
		AvailableCells: GetAvailableCells(state),
		LastUpdated:    state.LastUpdated,
	}, nil
}

// PositionWindow moves the window identified by handle onto span.
// Positioner failures are returned wrapped but otherwise unchanged.
func (m *Manager) PositionWindow(ctx context.Context, handle string, span types.CellSpan, cfg types.GridConfig) (types.PixelRect, error) {
	if m.positioner == nil {
		return types.PixelRect{}, fmt.Errorf("%w: no window positioner configured", ErrPrecondition)
	}

	rect, err := m.CalculateWindowRect(ctx, span, cfg)
	if err != nil {
		return types.PixelRect{}, err
	}

	logging.Info().
		Str("window", handle).
		Str("span", layout.FormatCellSpan(span)).
		Int("x", rect.X).
		Int("y", rect.Y).
		Int("w", rect.Width).
		Int("h", rect.Height).
		Msg("positioning window")

	if err := m.positioner.PositionWindow(ctx, handle, rect); err != nil {
		return types.PixelRect{}, fmt.Errorf("position window %s: %w", handle, err)
	}
	return rect, nil
}
