package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/canvas-grid/internal/client"
	gridConfig "github.com/yourusername/canvas-grid/internal/config"
	gridFocus "github.com/yourusername/canvas-grid/internal/focus"
	"github.com/yourusername/canvas-grid/internal/grid"
	gridLayout "github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/monitor"
	"github.com/yourusername/canvas-grid/internal/output"
	gridServer "github.com/yourusername/canvas-grid/internal/server"
	gridState "github.com/yourusername/canvas-grid/internal/state"
	gridTypes "github.com/yourusername/canvas-grid/internal/types"
	gridWindow "github.com/yourusername/canvas-grid/internal/window"
)

var (
	socketPath  string
	timeout     time.Duration
	configPath  string
	desktopFlag int
	jsonOutput  bool
	noColor     bool
	debugMode   bool

	// Loaded once per invocation by the root pre-run hook
	appConfig *gridConfig.Config

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "grid",
	Short: "Canvas grid layout engine",
	Long: `Grid divides a monitor's work area into a uniform grid of cells and
places windows on rectangular spans of those cells.

Cells are addressed as "row,col", "row,col:RxC" or spreadsheet style
("A1", "A1:C2"). Layouts are kept per virtual desktop.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		cfg, err := gridConfig.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg

		logPath := cfg.Settings.LogFile
		if logPath == "" {
			logPath = logging.DefaultLogPath()
		}
		if err := logging.Init(logPath); err != nil {
			warnColor.Fprintf(os.Stderr, "! logging disabled: %v\n", err)
		}
		if debugMode {
			logging.SetDebug(true)
		}

		logging.Debug().Str("command", cmd.CommandPath()).Msg("starting")
		return nil
	},
}

// MARK: - Grid Commands

var (
	initRows         int
	initCols         int
	initGapH         int
	initGapV         int
	initMarginTop    int
	initMarginBottom int
	initMarginLeft   int
	initMarginRight  int
	initMonitor      int
	initForce        bool
)

// initCmd creates the grid for a desktop
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the grid for a desktop",
	Long: `Creates an empty grid for the desktop. Flags override the config file,
which overrides the defaults (3x3, 4px gaps, no margins, monitor 0).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		desktop := currentDesktop(cmd)

		overrides, err := appConfig.GridOverrides(desktop)
		if err != nil {
			return err
		}
		overrides = overrides.Merge(initFlagOverrides(cmd))

		rs, err := openState()
		if err != nil {
			return err
		}
		if _, exists := rs.Desktop(desktop); exists && !initForce {
			return fmt.Errorf("desktop %d already has a grid (use --force to replace it)", desktop)
		}

		gs, err := grid.InitializeGridState(desktop, overrides)
		if err != nil {
			return err
		}
		if err := rs.Store(gs); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}

		logging.Info().Int("desktop", desktop).Int("rows", gs.Config.Rows).Int("columns", gs.Config.Columns).Msg("grid initialized")

		if jsonOutput {
			return printJSON(gs)
		}
		successColor.Printf("✓ Desktop %d: %dx%d grid on monitor %d\n",
			desktop, gs.Config.Rows, gs.Config.Columns, gs.Config.MonitorIndex)
		return nil
	},
}

// initFlagOverrides collects only the flags the user actually set
func initFlagOverrides(cmd *cobra.Command) gridTypes.ConfigOverrides {
	var o gridTypes.ConfigOverrides
	pick := func(name string, v int) *int {
		if cmd.Flags().Changed(name) {
			return &v
		}
		return nil
	}
	o.Rows = pick("rows", initRows)
	o.Columns = pick("cols", initCols)
	o.MonitorIndex = pick("monitor", initMonitor)
	o.CellGapHorizontal = pick("gap-h", initGapH)
	o.CellGapVertical = pick("gap-v", initGapV)
	o.MarginTop = pick("margin-top", initMarginTop)
	o.MarginBottom = pick("margin-bottom", initMarginBottom)
	o.MarginLeft = pick("margin-left", initMarginLeft)
	o.MarginRight = pick("margin-right", initMarginRight)
	return o
}

// parseCmd parses a cell spec without touching state
var parseCmd = &cobra.Command{
	Use:   "parse <spec>",
	Short: "Parse a cell spec",
	Long:  `Parses a cell spec ("1,2", "0,0:2x3", "B2", "A1:C2") and prints the resulting span.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		span, err := grid.ParseCellSpec(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(span)
		}

		keyColor.Print("Cells: ")
		fmt.Println(gridLayout.FormatCellSpan(span))
		keyColor.Print("Coordinates: ")
		fmt.Println(gridLayout.FormatCellSpanCoords(span))
		keyColor.Print("Size: ")
		fmt.Printf("%d row(s) x %d column(s)\n", span.RowSpan, span.ColumnSpan)
		return nil
	},
}

var (
	assignForce bool
	assignMove  bool
)

// assignCmd places a window on a span
var assignCmd = &cobra.Command{
	Use:   "assign <window> [spec]",
	Short: "Assign a window to a cell span",
	Long: `Assigns a window to a cell span on the current desktop. The span must be
inside the grid. It must also be free of other windows unless --force is given.

When spec is omitted the window's preferredCell from the config is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		windowID := args[0]

		spec := ""
		if len(args) > 1 {
			spec = args[1]
		} else if rule, ok := appConfig.GetWindowRule(windowID); ok {
			spec = rule.PreferredCell
		}
		if spec == "" {
			return fmt.Errorf("no cell spec given and window %s has no preferredCell", windowID)
		}

		span, err := grid.ParseCellSpec(spec)
		if err != nil {
			return err
		}

		desktop := currentDesktop(cmd)
		rs, err := openState()
		if err != nil {
			return err
		}

		gs, err := rs.Update(desktop, func(gs gridTypes.GridState) (gridTypes.GridState, error) {
			err := grid.ValidateCellSpan(span, gs, windowID)
			if err != nil && !(assignForce && errors.Is(err, grid.ErrOverlap)) {
				return gs, err
			}
			return grid.AssignWindowToGrid(windowID, span, gs), nil
		})
		if err != nil {
			return describeGridError(err, desktop)
		}

		if !jsonOutput {
			successColor.Printf("✓ Window %s assigned to %s\n", windowID, gridLayout.FormatCellSpan(span))
		}
		if assignMove {
			return positionAssigned(cmd.Context(), windowID, span, gs.Config)
		}
		if jsonOutput {
			return printJSON(gs)
		}
		return nil
	},
}

// autoCmd places a window on the first free span of a size
var autoCmd = &cobra.Command{
	Use:   "auto <window> <RxC>",
	Short: "Assign a window to the first free span of a size",
	Long:  `Scans the grid row by row and assigns the window to the first free span of the given size, e.g. "1x2".`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		windowID := args[0]
		rows, cols, err := parseSize(args[1])
		if err != nil {
			return err
		}

		desktop := currentDesktop(cmd)
		rs, err := openState()
		if err != nil {
			return err
		}

		var placed gridTypes.CellSpan
		gs, err := rs.Update(desktop, func(gs gridTypes.GridState) (gridTypes.GridState, error) {
			next, span, err := grid.PlaceWindowAuto(windowID, rows, cols, gs)
			placed = span
			return next, err
		})
		if err != nil {
			return describeGridError(err, desktop)
		}

		if jsonOutput {
			return printJSON(gs)
		}
		successColor.Printf("✓ Window %s assigned to %s\n", windowID, gridLayout.FormatCellSpan(placed))
		return nil
	},
}

// removeCmd drops a window's assignment
var removeCmd = &cobra.Command{
	Use:   "remove <window>",
	Short: "Remove a window from the grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		windowID := args[0]
		desktop := currentDesktop(cmd)
		rs, err := openState()
		if err != nil {
			return err
		}

		found := false
		gs, err := rs.Update(desktop, func(gs gridTypes.GridState) (gridTypes.GridState, error) {
			_, found = grid.GetWindowCellSpan(windowID, gs)
			return grid.RemoveWindowFromGrid(windowID, gs), nil
		})
		if err != nil {
			return describeGridError(err, desktop)
		}

		if jsonOutput {
			return printJSON(gs)
		}
		if !found {
			warnColor.Printf("! Window %s was not assigned on desktop %d\n", windowID, desktop)
			return nil
		}
		successColor.Printf("✓ Window %s removed\n", windowID)
		return nil
	},
}

// swapCmd exchanges two windows' spans
var swapCmd = &cobra.Command{
	Use:   "swap <window> <window>",
	Short: "Swap the spans of two windows",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		desktop := currentDesktop(cmd)
		rs, err := openState()
		if err != nil {
			return err
		}

		gs, err := rs.Update(desktop, func(gs gridTypes.GridState) (gridTypes.GridState, error) {
			return grid.SwapWindowPositions(args[0], args[1], gs)
		})
		if err != nil {
			return describeGridError(err, desktop)
		}

		if jsonOutput {
			return printJSON(gs)
		}
		successColor.Printf("✓ Swapped %s and %s\n", args[0], args[1])
		return nil
	},
}

// zCmd sets a window's stacking hint
var zCmd = &cobra.Command{
	Use:   "z <window> <index>",
	Short: "Set a window's z-index",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		z, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid z-index %q: %w", args[1], err)
		}

		desktop := currentDesktop(cmd)
		rs, err := openState()
		if err != nil {
			return err
		}

		gs, err := rs.Update(desktop, func(gs gridTypes.GridState) (gridTypes.GridState, error) {
			return grid.SetWindowZIndex(args[0], z, gs)
		})
		if err != nil {
			return describeGridError(err, desktop)
		}

		if jsonOutput {
			return printJSON(gs)
		}
		successColor.Printf("✓ Window %s z-index set to %d\n", args[0], z)
		return nil
	},
}

// findCmd reports the first free span of a size
var findCmd = &cobra.Command{
	Use:   "find <RxC>",
	Short: "Find the first free span of a size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, cols, err := parseSize(args[0])
		if err != nil {
			return err
		}

		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}

		span, err := grid.FindAvailableSpan(rows, cols, gs)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(span)
		}
		fmt.Println(gridLayout.FormatCellSpan(span))
		return nil
	},
}

// availableCmd lists free cells
var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List free cells",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}

		cells := grid.GetAvailableCells(gs)
		if jsonOutput {
			return printJSON(cells)
		}
		if len(cells) == 0 {
			infoColor.Println("No free cells")
			return nil
		}
		return output.PrintAvailableTable(os.Stdout, cells)
	},
}

// Visualization flags
var (
	showPreview bool
	showASCII   bool
	showUnicode bool
	showWidth   int
	showHeight  int
)

// showCmd renders the grid
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the grid",
	Long: `Renders the desktop's grid as a table of cells. With --preview the
monitor's work area is drawn to scale with a box per window.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}
		names := appConfig.WindowNames()

		if !showPreview {
			return output.PrintGrid(os.Stdout, grid.VisualizeGrid(gs, names))
		}

		mgr, c := newManager()
		defer c.Close()

		info, err := mgr.GetGridLayoutInfo(cmd.Context(), gs, appConfig.WindowKinds())
		if err != nil {
			return err
		}
		return output.PrintPreview(os.Stdout, info, names, getVisualizationOptions())
	},
}

// infoCmd prints the layout with geometry
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show layout geometry",
	Long:  `Prints cell dimensions and the pixel rect of every assigned window.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}

		mgr, c := newManager()
		defer c.Close()

		info, err := mgr.GetGridLayoutInfo(cmd.Context(), gs, appConfig.WindowKinds())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(info)
		}

		keyColor.Print("Desktop: ")
		fmt.Println(info.DesktopIndex)
		keyColor.Print("Monitor: ")
		fmt.Printf("%d %s (%dx%d work area)\n", info.Monitor.Index, info.Monitor.Name,
			info.Monitor.WorkAreaWidth, info.Monitor.WorkAreaHeight)

		dims := gridLayout.CalculateCellDimensions(info.Config, info.Monitor)
		if err := output.PrintCellDimensions(os.Stdout, dims); err != nil {
			return err
		}
		fmt.Println()

		if len(info.Windows) == 0 {
			infoColor.Println("No windows assigned")
			return nil
		}
		return output.PrintAssignmentsTable(os.Stdout, info, appConfig.WindowNames())
	},
}

// dimsCmd prints the cell size for the desktop's grid
var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "Show cell dimensions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}

		mgr, c := newManager()
		defer c.Close()

		dims, err := mgr.GetCellDimensions(cmd.Context(), gs.Config)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(dims)
		}
		return output.PrintCellDimensions(os.Stdout, dims)
	},
}

// positionCmd moves a window onto its span
var positionCmd = &cobra.Command{
	Use:   "position <window> [spec]",
	Short: "Move a window onto its cell span",
	Long: `Moves and resizes a window to the pixel rect of its span. With a spec the
window is assigned to it first; without one its current assignment is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		windowID := args[0]
		desktop := currentDesktop(cmd)

		var (
			gs   gridTypes.GridState
			span gridTypes.CellSpan
			err  error
		)
		if len(args) > 1 {
			span, err = grid.ParseCellSpec(args[1])
			if err != nil {
				return err
			}
			rs, err := openState()
			if err != nil {
				return err
			}
			gs, err = rs.Update(desktop, func(gs gridTypes.GridState) (gridTypes.GridState, error) {
				return grid.PlaceWindow(windowID, span, gs)
			})
			if err != nil {
				return describeGridError(err, desktop)
			}
		} else {
			gs, err = loadDesktop(desktop)
			if err != nil {
				return err
			}
			var ok bool
			span, ok = grid.GetWindowCellSpan(windowID, gs)
			if !ok {
				return fmt.Errorf("%w: window %s is not assigned on desktop %d", grid.ErrNotFound, windowID, desktop)
			}
		}

		return positionAssigned(cmd.Context(), windowID, span, gs.Config)
	},
}

// applyCmd positions every assigned window
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Move every assigned window onto its span",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}

		mgr, c := newManager()
		defer c.Close()

		var failed []string
		for _, a := range gs.Assignments {
			rect, err := mgr.PositionWindow(cmd.Context(), a.WindowID, a.CellSpan, gs.Config)
			if err != nil {
				logging.Warn().Err(err).Str("window", a.WindowID).Msg("apply: position failed")
				printError(err.Error())
				failed = append(failed, a.WindowID)
				continue
			}
			if !jsonOutput {
				successColor.Printf("✓ %s → %s %s\n", a.WindowID, gridLayout.FormatCellSpan(a.CellSpan), formatRect(rect))
			}
		}

		if len(failed) > 0 {
			return fmt.Errorf("failed to position %d window(s): %s", len(failed), strings.Join(failed, ", "))
		}
		return nil
	},
}

// pruneCmd removes assignments for windows the server no longer reports
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove assignments for closed windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		snap, err := gridServer.Fetch(cmd.Context(), c)
		if err != nil {
			return err
		}

		desktop := currentDesktop(cmd)
		rs, err := openState()
		if err != nil {
			return err
		}

		var removed []string
		gs, err := rs.Update(desktop, func(gs gridTypes.GridState) (gridTypes.GridState, error) {
			next, gone := grid.PruneWindows(gs, func(id string) bool { return snap.WindowIDs[id] })
			removed = gone
			return next, nil
		})
		if err != nil {
			return describeGridError(err, desktop)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{"removed": removed, "state": gs})
		}
		if len(removed) == 0 {
			infoColor.Println("Nothing to prune")
			return nil
		}
		successColor.Printf("✓ Removed %d window(s): %s\n", len(removed), strings.Join(removed, ", "))
		return nil
	},
}

// checkCmd reports overlapping assignments
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report overlapping assignments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}

		overlaps := grid.FindOverlaps(gs)
		if jsonOutput {
			return printJSON(overlaps)
		}
		if len(overlaps) == 0 {
			successColor.Println("✓ No overlapping windows")
			return nil
		}
		for _, o := range overlaps {
			warnColor.Printf("! %s (%s) overlaps %s (%s)\n",
				o.First.WindowID, gridLayout.FormatCellSpan(o.First.CellSpan),
				o.Second.WindowID, gridLayout.FormatCellSpan(o.Second.CellSpan))
		}
		return fmt.Errorf("%d overlapping pair(s)", len(overlaps))
	},
}

// monitorsCmd lists monitors from the configured source
var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List monitors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		mons, err := newMonitorSource(c).ListMonitors(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(mons)
		}
		return output.PrintMonitorsTable(os.Stdout, mons)
	},
}

// MARK: - Window Commands

// windowCmd groups direct window actions
var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Act on a single window",
}

func windowAction(use, short, done string, act func(*gridWindow.ServerPositioner, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <window>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			defer c.Close()

			if err := act(gridWindow.NewServerPositioner(c), cmd.Context(), args[0]); err != nil {
				return err
			}
			successColor.Printf("✓ Window %s %s\n", args[0], done)
			return nil
		},
	}
}

var (
	windowFocusCmd = windowAction("focus", "Focus a window", "focused",
		(*gridWindow.ServerPositioner).Focus)
	windowRaiseCmd = windowAction("raise", "Raise a window without focusing it", "raised",
		(*gridWindow.ServerPositioner).Raise)
	windowMinimizeCmd = windowAction("minimize", "Minimize a window", "minimized",
		(*gridWindow.ServerPositioner).Minimize)
	windowRestoreCmd = windowAction("restore", "Restore a minimized window", "restored",
		(*gridWindow.ServerPositioner).Restore)
)

// windowFrameCmd prints a window's current frame
var windowFrameCmd = &cobra.Command{
	Use:   "frame <window>",
	Short: "Show a window's frame",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		rect, err := gridWindow.NewServerPositioner(c).Frame(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rect)
		}
		fmt.Println(formatRect(rect))
		return nil
	},
}

// MARK: - Focus Commands

var (
	focusWrap bool
	focusWarp bool
)

// focusCmd moves focus from one grid window to another
var focusCmd = &cobra.Command{
	Use:   "focus <left|right|up|down|next|prev> <window>",
	Short: "Focus the neighbouring grid window",
	Long: `Focuses the window next to <window> on the current desktop. Directions
pick the closest window whose span center lies that way; next and prev
cycle in reading order.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadDesktop(currentDesktop(cmd))
		if err != nil {
			return err
		}

		var (
			target string
			found  bool
		)
		switch args[0] {
		case "next", "prev":
			target, found = gridFocus.Cycle(gs, args[1], args[0] == "next")
		default:
			dir, ok := gridFocus.ParseDirection(args[0])
			if !ok {
				return fmt.Errorf("invalid direction %q (want left, right, up, down, next or prev)", args[0])
			}
			target, found = gridFocus.FindTargetWindow(gs, args[1], dir, focusWrap)
		}
		if !found {
			return fmt.Errorf("%w: no window %s of %s", grid.ErrNotFound, args[0], args[1])
		}

		c := newClient()
		defer c.Close()

		p := gridWindow.NewServerPositioner(c)
		if err := p.Focus(cmd.Context(), target); err != nil {
			return err
		}
		if focusWarp {
			if err := p.WarpMouse(cmd.Context(), target); err != nil {
				return err
			}
		}

		if jsonOutput {
			return printJSON(map[string]string{"focused": target})
		}
		successColor.Printf("✓ Focused %s\n", target)
		return nil
	},
}

// MARK: - Config Commands

// gridConfigCmd is the parent command for config subcommands
var gridConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for showing and validating grid configuration.`,
}

// configShowCmd shows current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(appConfig)
	},
}

// configValidateCmd validates config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if len(args) > 0 {
			loaded, err := gridConfig.LoadConfig(args[0])
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			cfg = loaded
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Desktops: %d\n", len(cfg.Desktops))
		fmt.Printf("  Monitors: %d\n", len(cfg.Monitors))
		fmt.Printf("  Window Rules: %d\n", len(cfg.Windows))

		return nil
	},
}

// configInitCmd creates default config
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := gridConfig.GetConfigPath()

		// Check if file exists
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		defaultConfig := `# Canvas Grid Configuration
settings:
  socketPath: /tmp/grid-server.sock
  timeout: 30s
  monitorSource: server
  monitorCacheTTL: 5s
  defaultDesktop: 0

# Applies to every desktop
grid:
  rows: 3
  columns: 3
  gap: 4
  margin: 0

# Per-desktop overrides
desktops:
  1:
    rows: 2
    columns: 4
    margin: "8 16"

windows:
  "101":
    name: Terminal
    kind: terminal
    preferredCell: A1:A2
`

		// Create directory
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		// Write file
		if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		successColor.Printf("✓ Created default config at: %s\n", path)
		return nil
	},
}

// MARK: - State Commands

// gridStateCmd is the parent command for state subcommands
var gridStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage runtime state",
	Long:  `Commands for showing and resetting grid runtime state.`,
}

// stateShowCmd shows runtime state
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show runtime state",
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := openState()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(rs)
		}

		keyColor.Print("State File: ")
		fmt.Println(rs.Path())
		keyColor.Print("State Version: ")
		fmt.Println(rs.Version)
		keyColor.Print("Last Updated: ")
		if rs.LastUpdated.IsZero() {
			fmt.Println("never")
		} else {
			fmt.Println(rs.LastUpdated.Local().Format(time.RFC3339))
		}
		fmt.Println()

		indexes := rs.DesktopIndexes()
		if len(indexes) == 0 {
			infoColor.Println("No desktops initialized")
			return nil
		}
		desktops := make([]gridTypes.GridState, 0, len(indexes))
		for _, idx := range indexes {
			if gs, ok := rs.Desktop(idx); ok {
				desktops = append(desktops, gs)
			}
		}
		return output.PrintDesktopsTable(os.Stdout, desktops)
	},
}

// stateResetCmd resets runtime state
var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all runtime state",
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := openState()
		if err != nil {
			return err
		}

		if err := rs.Reset(); err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}

		successColor.Println("✓ State has been reset")
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", client.DefaultSocketPath, "Unix socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/canvas-grid/config.yaml)")
	rootCmd.PersistentFlags().IntVarP(&desktopFlag, "desktop", "d", 0, "Virtual desktop index (default from config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Grid commands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(zCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(availableCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dimsCmd)
	rootCmd.AddCommand(positionCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(monitorsCmd)

	// Init flags
	initCmd.Flags().IntVar(&initRows, "rows", gridTypes.DefaultRows, "Grid rows")
	initCmd.Flags().IntVar(&initCols, "cols", gridTypes.DefaultColumns, "Grid columns")
	initCmd.Flags().IntVar(&initMonitor, "monitor", gridTypes.DefaultMonitorIndex, "Monitor index")
	initCmd.Flags().IntVar(&initGapH, "gap-h", gridTypes.DefaultCellGap, "Horizontal gap between cells")
	initCmd.Flags().IntVar(&initGapV, "gap-v", gridTypes.DefaultCellGap, "Vertical gap between cells")
	initCmd.Flags().IntVar(&initMarginTop, "margin-top", gridTypes.DefaultMargin, "Top margin")
	initCmd.Flags().IntVar(&initMarginBottom, "margin-bottom", gridTypes.DefaultMargin, "Bottom margin")
	initCmd.Flags().IntVar(&initMarginLeft, "margin-left", gridTypes.DefaultMargin, "Left margin")
	initCmd.Flags().IntVar(&initMarginRight, "margin-right", gridTypes.DefaultMargin, "Right margin")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing grid")

	// Assign flags
	assignCmd.Flags().BoolVar(&assignForce, "force", false, "Skip the overlap check")
	assignCmd.Flags().BoolVar(&assignMove, "move", false, "Also move the window onto the span")

	// Show flags
	showCmd.Flags().BoolVar(&showPreview, "preview", false, "Draw the work area to scale")
	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	// Window subcommands
	rootCmd.AddCommand(windowCmd)
	windowCmd.AddCommand(windowFocusCmd)
	windowCmd.AddCommand(windowRaiseCmd)
	windowCmd.AddCommand(windowMinimizeCmd)
	windowCmd.AddCommand(windowRestoreCmd)
	windowCmd.AddCommand(windowFrameCmd)

	// Focus command
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().BoolVar(&focusWrap, "wrap", true, "Wrap around to opposite edge")
	focusCmd.Flags().BoolVar(&focusWarp, "warp", false, "Move the mouse cursor to the focused window")

	// Config subcommands
	rootCmd.AddCommand(gridConfigCmd)
	gridConfigCmd.AddCommand(configShowCmd)
	gridConfigCmd.AddCommand(configValidateCmd)
	gridConfigCmd.AddCommand(configInitCmd)

	// State subcommands
	rootCmd.AddCommand(gridStateCmd)
	gridStateCmd.AddCommand(stateShowCmd)
	gridStateCmd.AddCommand(stateResetCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logging.Close()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err.Error())
		logging.Close()
		stop()
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func formatRect(r gridTypes.PixelRect) string {
	return fmt.Sprintf("(%d, %d) %dx%d", r.X, r.Y, r.Width, r.Height)
}

// currentDesktop prefers --desktop, then the config default
func currentDesktop(cmd *cobra.Command) int {
	if cmd.Flags().Changed("desktop") {
		return desktopFlag
	}
	return appConfig.Settings.DefaultDesktop
}

func openState() (*gridState.RuntimeState, error) {
	var (
		rs  *gridState.RuntimeState
		err error
	)
	if appConfig.Settings.StateFile != "" {
		rs, err = gridState.LoadStateFrom(appConfig.Settings.StateFile)
	} else {
		rs, err = gridState.LoadState()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return rs, nil
}

func loadDesktop(desktop int) (gridTypes.GridState, error) {
	rs, err := openState()
	if err != nil {
		return gridTypes.GridState{}, err
	}
	gs, ok := rs.Desktop(desktop)
	if !ok {
		return gridTypes.GridState{}, describeGridError(
			fmt.Errorf("%w: desktop %d", gridState.ErrDesktopNotInitialized, desktop), desktop)
	}
	return gs, nil
}

// describeGridError adds a hint to errors a user can act on
func describeGridError(err error, desktop int) error {
	switch {
	case errors.Is(err, gridState.ErrDesktopNotInitialized):
		return fmt.Errorf("%w (run 'grid init -d %d' first)", err, desktop)
	case errors.Is(err, grid.ErrOverlap):
		return fmt.Errorf("%w (use --force to assign anyway)", err)
	default:
		return err
	}
}

// socket and timeout flags win over the config file
func newClient() *client.Client {
	sock := appConfig.GetSocketPath()
	if rootCmd.PersistentFlags().Changed("socket") {
		sock = socketPath
	}
	t := appConfig.GetTimeout()
	if rootCmd.PersistentFlags().Changed("timeout") {
		t = timeout
	}
	return client.NewClient(sock, t)
}

// monitorSource is both a monitor listing and a single-monitor lookup
type monitorSource interface {
	monitor.Lister
	grid.MonitorService
}

func newMonitorSource(c *client.Client) monitorSource {
	if appConfig.GetMonitorSource() == gridConfig.MonitorSourceStatic {
		return monitor.NewStatic(appConfig.Monitors)
	}
	return monitor.NewCache(monitor.NewServerSource(c), appConfig.GetMonitorCacheTTL())
}

// newManager wires the grid manager to the server. The caller closes the client.
func newManager() (*grid.Manager, *client.Client) {
	c := newClient()
	return grid.NewManager(newMonitorSource(c), gridWindow.NewServerPositioner(c)), c
}

func positionAssigned(ctx context.Context, windowID string, span gridTypes.CellSpan, cfg gridTypes.GridConfig) error {
	mgr, c := newManager()
	defer c.Close()

	rect, err := mgr.PositionWindow(ctx, windowID, span, cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(rect)
	}
	successColor.Printf("✓ Window %s moved to %s %s\n", windowID, gridLayout.FormatCellSpan(span), formatRect(rect))
	return nil
}

// parseSize reads "RxC" as row and column counts
func parseSize(s string) (rows, cols int, err error) {
	r, c, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (want RxC, e.g. 2x1)", s)
	}
	rows, err = strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	cols, err = strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return rows, cols, nil
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	// Override with flags if set
	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}

	return opts
}
