package layout

import (
	"github.com/yourusername/canvas-grid/internal/types"
)

// CalculateSingleCellSize computes the pixel size of one unit cell.
//
// Each axis uses floor division:
//
//	cell = floor((available - (count-1)*gap) / count)
//
// so cell*count + gaps never exceeds the available space. The leftover
// pixels are reported by CalculateRemainingSpace.
func CalculateSingleCellSize(cfg types.GridConfig, mon types.MonitorInfo) types.CellSize {
	return types.CellSize{
		Width:  axisCellSize(availableWidth(cfg, mon), cfg.Columns, cfg.CellGapHorizontal),
		Height: axisCellSize(availableHeight(cfg, mon), cfg.Rows, cfg.CellGapVertical),
	}
}

// CalculateCellRect computes the pixel rect for a span.
//
// Parameters:
//   - span: Cell span (0-indexed start, span >= 1)
//   - cfg: Grid partition parameters
//   - mon: Monitor whose work area hosts the grid
//
// Returns: Rect whose size includes the internal gaps between the span's own
// cells but no gap at its outer edges.
func CalculateCellRect(span types.CellSpan, cfg types.GridConfig, mon types.MonitorInfo) types.PixelRect {
	size := CalculateSingleCellSize(cfg, mon)

	x := mon.WorkAreaX + cfg.MarginLeft + span.StartColumn*(size.Width+cfg.CellGapHorizontal)
	y := mon.WorkAreaY + cfg.MarginTop + span.StartRow*(size.Height+cfg.CellGapVertical)

	return types.PixelRect{
		X:      x,
		Y:      y,
		Width:  span.ColumnSpan*size.Width + (span.ColumnSpan-1)*cfg.CellGapHorizontal,
		Height: span.RowSpan*size.Height + (span.RowSpan-1)*cfg.CellGapVertical,
	}
}

// CellRect pairs a cell address with its unit rect
type CellRect struct {
	Address types.CellAddress
	Rect    types.PixelRect
}

// CalculateAllCells returns the unit rect of every cell in row-major order
func CalculateAllCells(cfg types.GridConfig, mon types.MonitorInfo) []CellRect {
	if cfg.Rows <= 0 || cfg.Columns <= 0 {
		return nil
	}

	cells := make([]CellRect, 0, cfg.Rows*cfg.Columns)
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Columns; col++ {
			cells = append(cells, CellRect{
				Address: types.CellAddress{Row: row, Column: col},
				Rect:    CalculateCellRect(types.SingleCell(row, col), cfg, mon),
			})
		}
	}
	return cells
}

// GetCellAtPosition finds which cell contains the given pixel.
// Returns false when the point falls in a gap, a margin, or outside the work area.
func GetCellAtPosition(x, y int, cfg types.GridConfig, mon types.MonitorInfo) (types.CellAddress, bool) {
	// Grids are small, a linear scan is fine
	for _, cell := range CalculateAllCells(cfg, mon) {
		if cell.Rect.Contains(x, y) {
			return cell.Address, true
		}
	}
	return types.CellAddress{}, false
}

// GetCellCenter returns the center pixel of a single cell
func GetCellCenter(row, col int, cfg types.GridConfig, mon types.MonitorInfo) (x, y int) {
	rect := CalculateCellRect(types.SingleCell(row, col), cfg, mon)
	return rect.X + rect.Width/2, rect.Y + rect.Height/2
}

// CalculateRemainingSpace reports the pixels left over on each axis after
// laying out cells and gaps. For valid configs the value is in [0, count-1].
// Callers may redistribute it; nothing here does so automatically.
func CalculateRemainingSpace(cfg types.GridConfig, mon types.MonitorInfo) types.RemainingSpace {
	size := CalculateSingleCellSize(cfg, mon)

	usedWidth := size.Width*cfg.Columns + totalGap(cfg.Columns, cfg.CellGapHorizontal)
	usedHeight := size.Height*cfg.Rows + totalGap(cfg.Rows, cfg.CellGapVertical)

	return types.RemainingSpace{
		Horizontal: availableWidth(cfg, mon) - usedWidth,
		Vertical:   availableHeight(cfg, mon) - usedHeight,
	}
}

// CalculateCellDimensions bundles cell size, gaps and remainder for a config
func CalculateCellDimensions(cfg types.GridConfig, mon types.MonitorInfo) types.CellDimensions {
	size := CalculateSingleCellSize(cfg, mon)
	return types.CellDimensions{
		CellWidth:     size.Width,
		CellHeight:    size.Height,
		GapHorizontal: cfg.CellGapHorizontal,
		GapVertical:   cfg.CellGapVertical,
		Rows:          cfg.Rows,
		Columns:       cfg.Columns,
		Remaining:     CalculateRemainingSpace(cfg, mon),
	}
}

func availableWidth(cfg types.GridConfig, mon types.MonitorInfo) int {
	return mon.WorkAreaWidth - cfg.MarginLeft - cfg.MarginRight
}

func availableHeight(cfg types.GridConfig, mon types.MonitorInfo) int {
	return mon.WorkAreaHeight - cfg.MarginTop - cfg.MarginBottom
}

func totalGap(count, gap int) int {
	if count <= 1 {
		return 0
	}
	return (count - 1) * gap
}

// axisCellSize floors the per-cell size on one axis, never returning a negative size
func axisCellSize(available, count, gap int) int {
	if count <= 0 {
		return 0
	}
	usable := available - totalGap(count, gap)
	if usable <= 0 {
		return 0
	}
	return usable / count
}
