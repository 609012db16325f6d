package types

// SingleCell returns a 1x1 span at the given cell
func SingleCell(row, col int) CellSpan {
	return CellSpan{StartRow: row, StartColumn: col, RowSpan: 1, ColumnSpan: 1}
}

// NewCellSpan builds a span, clamping both span dimensions to a minimum of 1
func NewCellSpan(startRow, startCol, rowSpan, colSpan int) CellSpan {
	return CellSpan{
		StartRow:    startRow,
		StartColumn: startCol,
		RowSpan:     max(rowSpan, 1),
		ColumnSpan:  max(colSpan, 1),
	}
}

// EndRow returns the last covered row (inclusive)
func (s CellSpan) EndRow() int {
	return s.StartRow + s.RowSpan - 1
}

// EndColumn returns the last covered column (inclusive)
func (s CellSpan) EndColumn() int {
	return s.StartColumn + s.ColumnSpan - 1
}

// IsSingle reports whether the span covers exactly one cell
func (s CellSpan) IsSingle() bool {
	return s.RowSpan == 1 && s.ColumnSpan == 1
}

// SpansOverlap reports whether two spans share at least one cell.
// Two spans are disjoint only when one lies strictly above, below,
// left or right of the other.
func SpansOverlap(a, b CellSpan) bool {
	if a.EndRow() < b.StartRow || b.EndRow() < a.StartRow {
		return false
	}
	if a.EndColumn() < b.StartColumn || b.EndColumn() < a.StartColumn {
		return false
	}
	return true
}

// IsWithinGrid reports whether the span fits inside the grid extents.
// Extents are compared by subtraction so huge spans cannot wrap around.
func IsWithinGrid(span CellSpan, cfg GridConfig) bool {
	return span.StartRow >= 0 &&
		span.StartColumn >= 0 &&
		span.StartRow <= cfg.Rows &&
		span.StartColumn <= cfg.Columns &&
		span.RowSpan <= cfg.Rows-span.StartRow &&
		span.ColumnSpan <= cfg.Columns-span.StartColumn
}

// CellsInSpan enumerates every covered cell in row-major order
func CellsInSpan(span CellSpan) []CellAddress {
	if span.RowSpan <= 0 || span.ColumnSpan <= 0 {
		return nil
	}
	cells := make([]CellAddress, 0, span.RowSpan*span.ColumnSpan)
	for r := span.StartRow; r <= span.EndRow(); r++ {
		for c := span.StartColumn; c <= span.EndColumn(); c++ {
			cells = append(cells, CellAddress{Row: r, Column: c})
		}
	}
	return cells
}
