package grid

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/types"
)

var (
	// "row,col" or "row,col:RxC"
	coordPattern = regexp.MustCompile(`^(\d+)\s*,\s*(\d+)(?:\s*:\s*(\d+)\s*[xX]\s*(\d+))?$`)
	// "A1" or "A1:C2"
	excelRangePattern = regexp.MustCompile(`^([A-Za-z]+[0-9]+)(?:\s*:\s*([A-Za-z]+[0-9]+))?$`)
)

// ParseCellSpec parses a textual cell spec into a span.
//
// Supported formats:
//   - "1,2"         - single cell at row 1, column 2 (0-indexed)
//   - "1,2:2x3"     - 2 rows by 3 columns starting at row 1, column 2
//   - "B2"          - single cell in spreadsheet notation (1-indexed row)
//   - "A1:C2"       - spreadsheet range, corners in any order
//
// Whitespace around separators is ignored and letters are case-insensitive.
// Failures are returned as *ParseError.
func ParseCellSpec(spec string) (types.CellSpan, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "empty spec"}
	}

	if strings.Contains(trimmed, ",") {
		return parseCoordSpec(spec, trimmed)
	}
	return parseExcelSpec(spec, trimmed)
}

func parseCoordSpec(spec, trimmed string) (types.CellSpan, error) {
	m := coordPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: `expected "row,col" or "row,col:RxC"`}
	}

	row, err := strconv.Atoi(m[1])
	if err != nil {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "row out of range"}
	}
	col, err := strconv.Atoi(m[2])
	if err != nil {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "column out of range"}
	}

	if m[3] == "" {
		return types.SingleCell(row, col), nil
	}

	rowSpan, err := strconv.Atoi(m[3])
	if err != nil || rowSpan < 1 {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "row span must be at least 1"}
	}
	colSpan, err := strconv.Atoi(m[4])
	if err != nil || colSpan < 1 {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "column span must be at least 1"}
	}
	if rowSpan-1 > math.MaxInt-row || colSpan-1 > math.MaxInt-col {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "span extends past the largest index"}
	}

	return types.NewCellSpan(row, col, rowSpan, colSpan), nil
}

func parseExcelSpec(spec, trimmed string) (types.CellSpan, error) {
	m := excelRangePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: `expected "A1" or "A1:C2"`}
	}

	first, ok := layout.ExcelNotationToCell(m[1])
	if !ok {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "invalid cell " + m[1]}
	}

	if m[2] == "" {
		return types.SingleCell(first.Row, first.Column), nil
	}

	second, ok := layout.ExcelNotationToCell(m[2])
	if !ok {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "invalid cell " + m[2]}
	}

	// Normalize so the span always starts at the top-left corner
	top, bottom := min(first.Row, second.Row), max(first.Row, second.Row)
	left, right := min(first.Column, second.Column), max(first.Column, second.Column)
	if bottom-top == math.MaxInt || right-left == math.MaxInt {
		return types.CellSpan{}, &ParseError{Spec: spec, Reason: "range is too large"}
	}

	return types.NewCellSpan(top, left, bottom-top+1, right-left+1), nil
}
