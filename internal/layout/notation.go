package layout

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/canvas-grid/internal/types"
)

// maxOrdinal is the largest 1-based row number or column value that still
// maps to a 0-indexed int
const maxOrdinal = uint64(math.MaxInt) + 1

var excelPattern = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// CellToExcelNotation renders a cell as a spreadsheet address ("A1", "AB12").
// Columns use bijective base-26 (A..Z, AA..AZ, BA..), rows are 1-indexed.
func CellToExcelNotation(row, col int) string {
	return columnLetters(col) + rowNumber(row)
}

// rowNumber renders a 0-indexed row 1-indexed, without wrapping at MaxInt
func rowNumber(row int) string {
	if row < 0 {
		return strconv.Itoa(row + 1)
	}
	return strconv.FormatUint(uint64(row)+1, 10)
}

// columnLetters encodes a 0-indexed column in bijective base-26.
// Every letter position has a value 1..26; there is no zero digit.
func columnLetters(col int) string {
	if col < 0 {
		return ""
	}
	var buf []byte
	n := uint64(col) + 1
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ExcelNotationToCell parses a spreadsheet address case-insensitively.
// Returns false for empty input, missing letters or digits, or row 0.
func ExcelNotationToCell(notation string) (types.CellAddress, bool) {
	m := excelPattern.FindStringSubmatch(strings.TrimSpace(notation))
	if m == nil {
		return types.CellAddress{}, false
	}

	var col uint64
	for _, ch := range strings.ToUpper(m[1]) {
		digit := uint64(ch-'A') + 1
		if col > (maxOrdinal-digit)/26 {
			return types.CellAddress{}, false
		}
		col = col*26 + digit
	}

	row, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil || row < 1 || row > maxOrdinal {
		return types.CellAddress{}, false
	}

	return types.CellAddress{Row: int(row - 1), Column: int(col - 1)}, true
}

// FormatCellSpan renders a span in spreadsheet notation: "A1" or "A1:C2"
func FormatCellSpan(span types.CellSpan) string {
	start := CellToExcelNotation(span.StartRow, span.StartColumn)
	if span.IsSingle() {
		return start
	}
	return start + ":" + CellToExcelNotation(span.EndRow(), span.EndColumn())
}

// FormatCellSpanCoords renders a span in coordinate notation: "0,0" or "0,0:2x3"
func FormatCellSpanCoords(span types.CellSpan) string {
	start := fmt.Sprintf("%d,%d", span.StartRow, span.StartColumn)
	if span.IsSingle() {
		return start
	}
	return fmt.Sprintf("%s:%dx%d", start, span.RowSpan, span.ColumnSpan)
}
