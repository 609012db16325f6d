package types

import "time"

// CellAddress is a zero-indexed logical grid coordinate
type CellAddress struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// CellSpan is a contiguous rectangular run of cells.
// RowSpan and ColumnSpan are always >= 1 when built with NewCellSpan.
type CellSpan struct {
	StartRow    int `json:"startRow" yaml:"startRow"`
	StartColumn int `json:"startColumn" yaml:"startColumn"`
	RowSpan     int `json:"rowSpan" yaml:"rowSpan"`
	ColumnSpan  int `json:"columnSpan" yaml:"columnSpan"`
}

// PixelRect represents absolute pixel geometry on a monitor
type PixelRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the point lies inside the rect.
// The right and bottom edges are exclusive.
func (r PixelRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// MonitorInfo describes one physical display.
// Work area fields already exclude taskbars, docks and menu bars.
type MonitorInfo struct {
	Index          int     `json:"index" yaml:"index"`
	Name           string  `json:"name,omitempty" yaml:"name,omitempty"`
	X              int     `json:"x" yaml:"x"`
	Y              int     `json:"y" yaml:"y"`
	Width          int     `json:"width" yaml:"width"`
	Height         int     `json:"height" yaml:"height"`
	WorkAreaX      int     `json:"workAreaX" yaml:"workAreaX"`
	WorkAreaY      int     `json:"workAreaY" yaml:"workAreaY"`
	WorkAreaWidth  int     `json:"workAreaWidth" yaml:"workAreaWidth"`
	WorkAreaHeight int     `json:"workAreaHeight" yaml:"workAreaHeight"`
	DPIScale       float64 `json:"dpiScale" yaml:"dpiScale"`
	IsPrimary      bool    `json:"isPrimary" yaml:"isPrimary"`
}

// WorkArea returns the usable bounds of the monitor as a rect
func (m MonitorInfo) WorkArea() PixelRect {
	return PixelRect{
		X:      m.WorkAreaX,
		Y:      m.WorkAreaY,
		Width:  m.WorkAreaWidth,
		Height: m.WorkAreaHeight,
	}
}

// GridConfig holds the immutable parameters of one grid partition
type GridConfig struct {
	Rows              int `json:"rows" yaml:"rows"`
	Columns           int `json:"columns" yaml:"columns"`
	MonitorIndex      int `json:"monitorIndex" yaml:"monitorIndex"`
	CellGapHorizontal int `json:"cellGapHorizontal" yaml:"cellGapHorizontal"` // Pixels between adjacent columns
	CellGapVertical   int `json:"cellGapVertical" yaml:"cellGapVertical"`     // Pixels between adjacent rows
	MarginTop         int `json:"marginTop" yaml:"marginTop"`
	MarginBottom      int `json:"marginBottom" yaml:"marginBottom"`
	MarginLeft        int `json:"marginLeft" yaml:"marginLeft"`
	MarginRight       int `json:"marginRight" yaml:"marginRight"`
}

// CellAssignment binds one opaque window identifier to one span
type CellAssignment struct {
	WindowID string   `json:"windowId"`
	CellSpan CellSpan `json:"cellSpan"`
	ZIndex   *int     `json:"zIndex,omitempty"`
}

// GridState is the layout of one virtual desktop.
// Mutations produce new values; a GridState is never modified in place.
type GridState struct {
	DesktopIndex int              `json:"desktopIndex"`
	Config       GridConfig       `json:"config"`
	Assignments  []CellAssignment `json:"assignments"`
	LastUpdated  time.Time        `json:"lastUpdated"`
}

// Clone returns a deep copy of the state that shares no memory with s
func (s GridState) Clone() GridState {
	out := s
	out.Assignments = make([]CellAssignment, len(s.Assignments))
	for i, a := range s.Assignments {
		out.Assignments[i] = a
		if a.ZIndex != nil {
			z := *a.ZIndex
			out.Assignments[i].ZIndex = &z
		}
	}
	return out
}

// CellSize is the pixel size of a single unit cell
type CellSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RemainingSpace is the leftover pixels per axis after floor division
type RemainingSpace struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}

// CellDimensions is a derived projection of a config on a monitor
type CellDimensions struct {
	CellWidth     int            `json:"cellWidth"`
	CellHeight    int            `json:"cellHeight"`
	GapHorizontal int            `json:"gapHorizontal"`
	GapVertical   int            `json:"gapVertical"`
	Rows          int            `json:"rows"`
	Columns       int            `json:"columns"`
	Remaining     RemainingSpace `json:"remaining"`
}

// WindowLayout joins an assignment with its calculated geometry
type WindowLayout struct {
	WindowID string    `json:"windowId"`
	Kind     string    `json:"kind,omitempty"` // Caller-supplied window kind (e.g. canvas type)
	CellSpan CellSpan  `json:"cellSpan"`
	Notation string    `json:"notation"`
	Rect     PixelRect `json:"rect"`
}

// GridLayoutInfo is the composite read view a presentation layer needs
type GridLayoutInfo struct {
	DesktopIndex   int            `json:"desktopIndex"`
	Config         GridConfig     `json:"config"`
	Monitor        MonitorInfo    `json:"monitor"`
	CellSize       CellSize       `json:"cellSize"`
	Remaining      RemainingSpace `json:"remaining"`
	Windows        []WindowLayout `json:"windows"`
	AvailableCells []CellAddress  `json:"availableCells"`
	LastUpdated    time.Time      `json:"lastUpdated"`
}
