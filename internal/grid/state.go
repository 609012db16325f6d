package grid

import (
	"fmt"
	"time"

	"github.com/yourusername/canvas-grid/internal/types"
)

// now is swapped in tests that need stable timestamps
var now = func() time.Time { return time.Now().UTC() }

// ConfigOption adjusts a GridConfig under construction
type ConfigOption func(*types.GridConfig)

// WithDimensions sets the number of rows and columns
func WithDimensions(rows, columns int) ConfigOption {
	return func(c *types.GridConfig) {
		c.Rows = rows
		c.Columns = columns
	}
}

// WithMonitor selects the monitor that hosts the grid
func WithMonitor(index int) ConfigOption {
	return func(c *types.GridConfig) { c.MonitorIndex = index }
}

// WithGaps sets the horizontal and vertical cell gaps in pixels
func WithGaps(horizontal, vertical int) ConfigOption {
	return func(c *types.GridConfig) {
		c.CellGapHorizontal = horizontal
		c.CellGapVertical = vertical
	}
}

// WithMargins sets the margins between the work area edges and the grid
func WithMargins(top, bottom, left, right int) ConfigOption {
	return func(c *types.GridConfig) {
		c.MarginTop = top
		c.MarginBottom = bottom
		c.MarginLeft = left
		c.MarginRight = right
	}
}

// WithOverrides applies a partial config such as one loaded from a file
func WithOverrides(o types.ConfigOverrides) ConfigOption {
	return func(c *types.GridConfig) { *c = o.Apply(*c) }
}

// NewGridConfig builds a config from the documented defaults plus options.
// The result is validated before it is returned.
func NewGridConfig(opts ...ConfigOption) (types.GridConfig, error) {
	cfg := types.DefaultGridConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return types.GridConfig{}, fmt.Errorf("invalid grid config: %w", err)
	}
	return cfg, nil
}

// InitializeGridState creates an empty layout for a virtual desktop.
// Fields set in overrides replace the defaults.
func InitializeGridState(desktopIndex int, overrides types.ConfigOverrides) (types.GridState, error) {
	cfg, err := NewGridConfig(WithOverrides(overrides))
	if err != nil {
		return types.GridState{}, err
	}

	return types.GridState{
		DesktopIndex: desktopIndex,
		Config:       cfg,
		Assignments:  []types.CellAssignment{},
		LastUpdated:  now(),
	}, nil
}
