package grid

import (
	"errors"
	"fmt"

	"github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/types"
)

// Error categories. Check with errors.Is.
var (
	ErrParse        = errors.New("invalid cell spec")
	ErrBounds       = errors.New("cell span out of bounds")
	ErrOverlap      = errors.New("cell span overlaps existing window")
	ErrNotFound     = errors.New("not found")
	ErrPrecondition = errors.New("precondition failed")
	ErrNoSpace      = errors.New("no available span")
)

// ParseError describes a malformed cell spec
type ParseError struct {
	Spec   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid cell spec %q: %s", e.Spec, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// BoundsError describes a span that does not fit the grid
type BoundsError struct {
	Span    types.CellSpan
	Rows    int
	Columns int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("cell span %s (rows %d-%d, columns %d-%d) exceeds %dx%d grid",
		layout.FormatCellSpan(e.Span),
		e.Span.StartRow, e.Span.EndRow(),
		e.Span.StartColumn, e.Span.EndColumn(),
		e.Rows, e.Columns)
}

func (e *BoundsError) Is(target error) bool { return target == ErrBounds }

// OverlapError names the window whose span collides with the requested one
type OverlapError struct {
	Span       types.CellSpan
	WindowID   string
	WindowSpan types.CellSpan
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("cell span %s overlaps window %s at %s",
		layout.FormatCellSpan(e.Span), e.WindowID, layout.FormatCellSpan(e.WindowSpan))
}

func (e *OverlapError) Is(target error) bool { return target == ErrOverlap }
