// Package monitor supplies monitor geometry to the grid manager.
//
// A Lister enumerates monitors; Static serves them from configuration,
// ServerSource reads them from the window server, and Cache wraps either
// with an explicit time-to-live.
package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/canvas-grid/internal/server"
	"github.com/yourusername/canvas-grid/internal/types"
)

// ErrUnknownMonitor is returned for an index with no connected monitor
var ErrUnknownMonitor = errors.New("unknown monitor")

// Lister enumerates connected monitors in index order
type Lister interface {
	ListMonitors(ctx context.Context) ([]types.MonitorInfo, error)
}

// find returns the monitor with the given index
func find(monitors []types.MonitorInfo, index int) (types.MonitorInfo, error) {
	for _, m := range monitors {
		if m.Index == index {
			return m, nil
		}
	}
	return types.MonitorInfo{}, fmt.Errorf("%w: index %d (%d connected)", ErrUnknownMonitor, index, len(monitors))
}

// Static serves a fixed monitor list, typically loaded from config
type Static struct {
	monitors []types.MonitorInfo
}

// NewStatic creates a Static source. Monitors keep their configured
// Index; a zero work area defaults to the full bounds.
func NewStatic(monitors []types.MonitorInfo) *Static {
	out := make([]types.MonitorInfo, len(monitors))
	for i, m := range monitors {
		if m.WorkAreaWidth == 0 && m.WorkAreaHeight == 0 {
			m.WorkAreaX, m.WorkAreaY = m.X, m.Y
			m.WorkAreaWidth, m.WorkAreaHeight = m.Width, m.Height
		}
		if m.DPIScale == 0 {
			m.DPIScale = 1
		}
		out[i] = m
	}
	return &Static{monitors: out}
}

// ListMonitors returns a copy of the configured monitors
func (s *Static) ListMonitors(_ context.Context) ([]types.MonitorInfo, error) {
	out := make([]types.MonitorInfo, len(s.monitors))
	copy(out, s.monitors)
	return out, nil
}

// GetMonitor returns the configured monitor with the given index
func (s *Static) GetMonitor(_ context.Context, index int) (types.MonitorInfo, error) {
	return find(s.monitors, index)
}

// ServerSource reads monitors from the window server's dump
type ServerSource struct {
	dumper server.Dumper
}

// NewServerSource creates a source backed by the window server
func NewServerSource(d server.Dumper) *ServerSource {
	return &ServerSource{dumper: d}
}

// ListMonitors fetches a fresh snapshot and converts its displays
func (s *ServerSource) ListMonitors(ctx context.Context) ([]types.MonitorInfo, error) {
	snap, err := server.Fetch(ctx, s.dumper)
	if err != nil {
		return nil, err
	}
	return FromDisplays(snap.Displays), nil
}

// GetMonitor fetches a fresh snapshot and returns one monitor
func (s *ServerSource) GetMonitor(ctx context.Context, index int) (types.MonitorInfo, error) {
	monitors, err := s.ListMonitors(ctx)
	if err != nil {
		return types.MonitorInfo{}, err
	}
	return find(monitors, index)
}

// FromDisplays converts server displays to monitors indexed by position.
// The visible frame becomes the work area.
func FromDisplays(displays []server.DisplayInfo) []types.MonitorInfo {
	monitors := make([]types.MonitorInfo, 0, len(displays))
	for i, d := range displays {
		work := d.WorkArea()
		name := d.Name
		if name == "" {
			name = d.UUID
		}
		monitors = append(monitors, types.MonitorInfo{
			Index:          i,
			Name:           name,
			X:              d.Frame.X,
			Y:              d.Frame.Y,
			Width:          d.Frame.Width,
			Height:         d.Frame.Height,
			WorkAreaX:      work.X,
			WorkAreaY:      work.Y,
			WorkAreaWidth:  work.Width,
			WorkAreaHeight: work.Height,
			DPIScale:       d.ScaleFactor,
			IsPrimary:      d.IsMain,
		})
	}
	return monitors
}
