package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/types"
)

// PrintAssignmentsTable prints the placed windows of a layout
func PrintAssignmentsTable(w io.Writer, info *types.GridLayoutInfo, names map[string]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Window", "Name", "Kind", "Cells", "Span", "Rect")

	for _, win := range info.Windows {
		kind := win.Kind
		if kind == "" {
			kind = "-"
		}
		name := names[win.WindowID]
		if name == "" {
			name = "-"
		}

		table.Append(
			truncate(win.WindowID, 20),
			truncate(name, 25),
			kind,
			win.Notation,
			fmt.Sprintf("%dx%d", win.CellSpan.RowSpan, win.CellSpan.ColumnSpan),
			formatRect(win.Rect),
		)
	}

	return table.Render()
}

// PrintMonitorsTable prints monitors in a table format
func PrintMonitorsTable(w io.Writer, monitors []types.MonitorInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header("Index", "Name", "Bounds", "Work Area", "Scale", "Primary")

	sorted := make([]types.MonitorInfo, len(monitors))
	copy(sorted, monitors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	for _, m := range sorted {
		primary := ""
		if m.IsPrimary {
			primary = "yes"
		}
		bounds := types.PixelRect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}

		table.Append(
			fmt.Sprintf("%d", m.Index),
			truncate(m.Name, 25),
			formatRect(bounds),
			formatRect(m.WorkArea()),
			fmt.Sprintf("%.1fx", m.DPIScale),
			primary,
		)
	}

	return table.Render()
}

// PrintAvailableTable prints free cells in row-major order
func PrintAvailableTable(w io.Writer, cells []types.CellAddress) error {
	table := tablewriter.NewWriter(w)
	table.Header("Cell", "Row", "Column")

	for _, c := range cells {
		table.Append(
			layout.CellToExcelNotation(c.Row, c.Column),
			fmt.Sprintf("%d", c.Row),
			fmt.Sprintf("%d", c.Column),
		)
	}

	return table.Render()
}

// PrintDesktopsTable prints a summary row per desktop
func PrintDesktopsTable(w io.Writer, desktops []types.GridState) error {
	table := tablewriter.NewWriter(w)
	table.Header("Desktop", "Grid", "Monitor", "Windows", "Updated")

	sorted := make([]types.GridState, len(desktops))
	copy(sorted, desktops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DesktopIndex < sorted[j].DesktopIndex
	})

	for _, gs := range sorted {
		updated := "-"
		if !gs.LastUpdated.IsZero() {
			updated = gs.LastUpdated.Local().Format("2006-01-02 15:04:05")
		}

		table.Append(
			fmt.Sprintf("%d", gs.DesktopIndex),
			fmt.Sprintf("%dx%d", gs.Config.Rows, gs.Config.Columns),
			fmt.Sprintf("%d", gs.Config.MonitorIndex),
			fmt.Sprintf("%d", len(gs.Assignments)),
			updated,
		)
	}

	return table.Render()
}

// PrintCellDimensions prints the cell geometry of a grid
func PrintCellDimensions(w io.Writer, d types.CellDimensions) error {
	_, err := fmt.Fprintf(w,
		"Grid: %dx%d\nCell: %dx%d px\nGaps: %d horizontal, %d vertical\nRemaining: %d horizontal, %d vertical\n",
		d.Rows, d.Columns,
		d.CellWidth, d.CellHeight,
		d.GapHorizontal, d.GapVertical,
		d.Remaining.Horizontal, d.Remaining.Vertical)
	return err
}

// Helper functions

func formatRect(r types.PixelRect) string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}
