package grid

import (
	"fmt"

	"github.com/yourusername/canvas-grid/internal/types"
)

// ValidateCellSpan checks that span fits the grid and collides with no
// existing assignment. The assignment belonging to excludeWindowID (if not
// empty) is ignored, so "can W move to S" checks skip W's current placement.
//
// Returns nil, a *BoundsError, or an *OverlapError for the first conflict.
func ValidateCellSpan(span types.CellSpan, state types.GridState, excludeWindowID string) error {
	if span.RowSpan < 1 || span.ColumnSpan < 1 {
		return &ParseError{
			Spec:   fmt.Sprintf("%dx%d", span.RowSpan, span.ColumnSpan),
			Reason: "span dimensions must be at least 1",
		}
	}

	if !types.IsWithinGrid(span, state.Config) {
		return &BoundsError{Span: span, Rows: state.Config.Rows, Columns: state.Config.Columns}
	}

	for _, a := range state.Assignments {
		if excludeWindowID != "" && a.WindowID == excludeWindowID {
			continue
		}
		if types.SpansOverlap(span, a.CellSpan) {
			return &OverlapError{Span: span, WindowID: a.WindowID, WindowSpan: a.CellSpan}
		}
	}

	return nil
}

// GetAvailableCells returns every cell not covered by an assignment,
// in row-major order.
func GetAvailableCells(state types.GridState) []types.CellAddress {
	available := make([]types.CellAddress, 0, state.Config.Rows*state.Config.Columns)
	for row := 0; row < state.Config.Rows; row++ {
		for col := 0; col < state.Config.Columns; col++ {
			if !isOccupied(row, col, state.Assignments) {
				available = append(available, types.CellAddress{Row: row, Column: col})
			}
		}
	}
	return available
}

// isOccupied tests one cell against each span rather than enumerating
// spans, so a stored span larger than the grid costs nothing extra.
func isOccupied(row, col int, assignments []types.CellAssignment) bool {
	cell := types.SingleCell(row, col)
	for _, a := range assignments {
		if types.SpansOverlap(cell, a.CellSpan) {
			return true
		}
	}
	return false
}

// FindAvailableSpan returns the first free span of the requested size.
// Candidate origins are scanned row-major, so the result is deterministic.
// Returns ErrNoSpace when nothing fits, including sizes larger than the grid.
func FindAvailableSpan(rowSpan, colSpan int, state types.GridState) (types.CellSpan, error) {
	if rowSpan < 1 || colSpan < 1 {
		return types.CellSpan{}, &ParseError{
			Spec:   fmt.Sprintf("%dx%d", rowSpan, colSpan),
			Reason: "span dimensions must be at least 1",
		}
	}

	cfg := state.Config
	// Oversized requests leave both ranges empty
	for row := 0; row <= cfg.Rows-rowSpan; row++ {
		for col := 0; col <= cfg.Columns-colSpan; col++ {
			candidate := types.NewCellSpan(row, col, rowSpan, colSpan)
			if ValidateCellSpan(candidate, state, "") == nil {
				return candidate, nil
			}
		}
	}

	return types.CellSpan{}, fmt.Errorf("%w: %dx%d in %dx%d grid", ErrNoSpace, rowSpan, colSpan, cfg.Rows, cfg.Columns)
}
