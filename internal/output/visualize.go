package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/types"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	MaxWidth   int
	MaxHeight  int
}

// previewChromeLines is the header plus footer around the canvas
const previewChromeLines = 2

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		MaxWidth:   width,
		MaxHeight:  height,
	}
}

// RenderLayoutPreview draws the desktop's work area scaled to the terminal,
// with a box per placed window and free cells filled in.
func RenderLayoutPreview(info *types.GridLayoutInfo, names map[string]string, opts VisualizationOptions) string {
	mon := info.Monitor
	sc := NewScalingContext(mon.WorkArea(), opts.MaxWidth, opts.MaxHeight-previewChromeLines)
	canvas := NewCanvas(sc.TermWidth, sc.TermHeight, opts.UseUnicode)

	// Work area outline
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	for _, cell := range info.AvailableCells {
		rect := layout.CalculateCellRect(types.SingleCell(cell.Row, cell.Column), info.Config, mon)
		x, y, w, h := sc.RectToTerminal(rect)
		canvas.FillFree(x+1, y+1, w-2, h-2)
	}

	for _, win := range info.Windows {
		x, y, w, h := sc.RectToTerminal(win.Rect)
		canvas.DrawBox(x, y, w, h)

		// No room for a label inside the border
		if w < 3 || h < 3 {
			continue
		}
		label := fmt.Sprintf("%s %s", windowLabel(win.WindowID, names), win.Notation)
		canvas.DrawTextCentered(x+1, y+h/2, w-2, label)
	}

	header := fmt.Sprintf("Desktop %d: %dx%d grid on monitor %d (%s) [%dx%d]\n",
		info.DesktopIndex,
		info.Config.Rows,
		info.Config.Columns,
		mon.Index,
		monitorName(mon),
		mon.WorkAreaWidth,
		mon.WorkAreaHeight)
	footer := fmt.Sprintf("\nWindows: %d, free cells: %d\n", len(info.Windows), len(info.AvailableCells))

	return header + canvas.String() + footer
}

// PrintPreview writes a colored layout preview
func PrintPreview(w io.Writer, info *types.GridLayoutInfo, names map[string]string, opts VisualizationOptions) error {
	return printColored(w, RenderLayoutPreview(info, names, opts))
}

// PrintGrid writes pre-rendered grid text in color
func PrintGrid(w io.Writer, rendered string) error {
	return printColored(w, rendered)
}

func printColored(w io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	// Apply color if enabled
	if color.NoColor {
		_, err := fmt.Fprint(w, s)
		return err
	}
	cyan := color.New(color.FgCyan)
	_, err := cyan.Fprint(w, s)
	return err
}

func windowLabel(windowID string, names map[string]string) string {
	if name := names[windowID]; name != "" {
		return name
	}
	return windowID
}

func monitorName(m types.MonitorInfo) string {
	if m.Name != "" {
		return truncate(m.Name, 25)
	}
	return "unnamed"
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80, 24
	}
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	// Check LANG and LC_ALL environment variables
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}
