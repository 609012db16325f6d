package types

import "fmt"

// Documented grid defaults
const (
	DefaultRows         = 3 // Grid rows
	DefaultColumns      = 3 // Grid columns
	DefaultMonitorIndex = 0 // Primary monitor
	DefaultCellGap      = 4 // Pixels between cells on both axes
	DefaultMargin       = 0 // Pixels between work area edge and grid
)

// DefaultGridConfig returns a config populated with the documented defaults
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Rows:              DefaultRows,
		Columns:           DefaultColumns,
		MonitorIndex:      DefaultMonitorIndex,
		CellGapHorizontal: DefaultCellGap,
		CellGapVertical:   DefaultCellGap,
		MarginTop:         DefaultMargin,
		MarginBottom:      DefaultMargin,
		MarginLeft:        DefaultMargin,
		MarginRight:       DefaultMargin,
	}
}

// Validate checks the config for values the calculator cannot handle
func (c GridConfig) Validate() error {
	if c.Rows < 1 {
		return fmt.Errorf("rows must be at least 1, got %d", c.Rows)
	}
	if c.Columns < 1 {
		return fmt.Errorf("columns must be at least 1, got %d", c.Columns)
	}
	if c.MonitorIndex < 0 {
		return fmt.Errorf("monitor index cannot be negative, got %d", c.MonitorIndex)
	}
	if c.CellGapHorizontal < 0 || c.CellGapVertical < 0 {
		return fmt.Errorf("cell gaps cannot be negative")
	}
	if c.MarginTop < 0 || c.MarginBottom < 0 || c.MarginLeft < 0 || c.MarginRight < 0 {
		return fmt.Errorf("margins cannot be negative")
	}
	return nil
}

// ConfigOverrides is a partial GridConfig; nil fields keep the base value.
// It is the shape used by config files and CLI flags.
type ConfigOverrides struct {
	Rows              *int `json:"rows,omitempty" yaml:"rows,omitempty"`
	Columns           *int `json:"columns,omitempty" yaml:"columns,omitempty"`
	MonitorIndex      *int `json:"monitorIndex,omitempty" yaml:"monitorIndex,omitempty"`
	CellGapHorizontal *int `json:"cellGapHorizontal,omitempty" yaml:"cellGapHorizontal,omitempty"`
	CellGapVertical   *int `json:"cellGapVertical,omitempty" yaml:"cellGapVertical,omitempty"`
	MarginTop         *int `json:"marginTop,omitempty" yaml:"marginTop,omitempty"`
	MarginBottom      *int `json:"marginBottom,omitempty" yaml:"marginBottom,omitempty"`
	MarginLeft        *int `json:"marginLeft,omitempty" yaml:"marginLeft,omitempty"`
	MarginRight       *int `json:"marginRight,omitempty" yaml:"marginRight,omitempty"`
}

// Apply merges the set fields of o onto base
func (o ConfigOverrides) Apply(base GridConfig) GridConfig {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.Rows, o.Rows)
	set(&base.Columns, o.Columns)
	set(&base.MonitorIndex, o.MonitorIndex)
	set(&base.CellGapHorizontal, o.CellGapHorizontal)
	set(&base.CellGapVertical, o.CellGapVertical)
	set(&base.MarginTop, o.MarginTop)
	set(&base.MarginBottom, o.MarginBottom)
	set(&base.MarginLeft, o.MarginLeft)
	set(&base.MarginRight, o.MarginRight)
	return base
}

// Merge returns o with any field set in other taking precedence
func (o ConfigOverrides) Merge(other ConfigOverrides) ConfigOverrides {
	pick := func(a, b *int) *int {
		if b != nil {
			return b
		}
		return a
	}
	return ConfigOverrides{
		Rows:              pick(o.Rows, other.Rows),
		Columns:           pick(o.Columns, other.Columns),
		MonitorIndex:      pick(o.MonitorIndex, other.MonitorIndex),
		CellGapHorizontal: pick(o.CellGapHorizontal, other.CellGapHorizontal),
		CellGapVertical:   pick(o.CellGapVertical, other.CellGapVertical),
		MarginTop:         pick(o.MarginTop, other.MarginTop),
		MarginBottom:      pick(o.MarginBottom, other.MarginBottom),
		MarginLeft:        pick(o.MarginLeft, other.MarginLeft),
		MarginRight:       pick(o.MarginRight, other.MarginRight),
	}
}
