package grid

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/types"
)

const (
	visualCellWidth    = 12    // Characters per cell, excluding borders
	maxIDLabel         = 10    // Window IDs without a display name are cut to this length
	continuationMarker = "..." // Printed in covered cells other than a span's top-left
)

// VisualizeGrid renders the grid as fixed-width ASCII for diagnostics.
// Each span shows its display name (from names, else the first ten
// characters of the window ID) in its top-left cell and a continuation
// marker in its other cells. Free cells show their address in brackets.
func VisualizeGrid(state types.GridState, names map[string]string) string {
	cfg := state.Config

	labels := make(map[types.CellAddress]string)
	for _, a := range state.Assignments {
		for i, cell := range types.CellsInSpan(a.CellSpan) {
			if i == 0 {
				labels[cell] = displayName(a.WindowID, names)
			} else {
				labels[cell] = continuationMarker
			}
		}
	}

	border := "+" + strings.Repeat(strings.Repeat("-", visualCellWidth)+"+", cfg.Columns)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Grid %dx%d (desktop %d)\n", cfg.Rows, cfg.Columns, state.DesktopIndex)
	sb.WriteString(border)
	sb.WriteByte('\n')

	for row := 0; row < cfg.Rows; row++ {
		sb.WriteByte('|')
		for col := 0; col < cfg.Columns; col++ {
			label, ok := labels[types.CellAddress{Row: row, Column: col}]
			if !ok {
				label = "[" + layout.CellToExcelNotation(row, col) + "]"
			}
			sb.WriteString(padCell(label))
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
		sb.WriteString(border)
		sb.WriteByte('\n')
	}

	return sb.String()
}

func displayName(windowID string, names map[string]string) string {
	if name, ok := names[windowID]; ok && name != "" {
		return name
	}
	r := []rune(windowID)
	if len(r) > maxIDLabel {
		r = r[:maxIDLabel]
	}
	return string(r)
}

// padCell left-aligns a label in a fixed-width cell, truncating long text
func padCell(label string) string {
	inner := visualCellWidth - 2
	label = runewidth.Truncate(label, inner, "")
	return " " + runewidth.FillRight(label, inner) + " "
}
