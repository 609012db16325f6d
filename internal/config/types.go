package config

import "github.com/yourusername/canvas-grid/internal/types"

// Config is the root configuration structure
type Config struct {
	Settings Settings              `yaml:"settings" json:"settings"`
	Grid     GridSection           `yaml:"grid" json:"grid"`
	Desktops map[int]GridSection   `yaml:"desktops,omitempty" json:"desktops,omitempty"`
	Monitors []types.MonitorInfo   `yaml:"monitors,omitempty" json:"monitors,omitempty"`
	Windows  map[string]WindowRule `yaml:"windows,omitempty" json:"windows,omitempty"`
}

// Settings contains global application settings
type Settings struct {
	SocketPath      string `yaml:"socketPath,omitempty" json:"socketPath,omitempty"`
	Timeout         string `yaml:"timeout,omitempty" json:"timeout,omitempty"`                 // Go duration, e.g. "10s"
	StateFile       string `yaml:"stateFile,omitempty" json:"stateFile,omitempty"`
	LogFile         string `yaml:"logFile,omitempty" json:"logFile,omitempty"`
	MonitorSource   string `yaml:"monitorSource,omitempty" json:"monitorSource,omitempty"`     // "server" or "static"
	MonitorCacheTTL string `yaml:"monitorCacheTTL,omitempty" json:"monitorCacheTTL,omitempty"` // Go duration, "0" disables
	DefaultDesktop  int    `yaml:"defaultDesktop,omitempty" json:"defaultDesktop,omitempty"`
}

// GridSection is the configuration representation of grid overrides.
// Unset fields fall through to the next level (desktop, global, defaults).
//
// Gap accepts 4, "4", "4px" (both axes) or [horizontal, vertical].
// Margin accepts CSS shorthand: 10, "10 20", "10 20 30", "10 20 30 40",
// the same as an array, or {top, right, bottom, left}.
type GridSection struct {
	Rows    *int        `yaml:"rows,omitempty" json:"rows,omitempty"`
	Columns *int        `yaml:"columns,omitempty" json:"columns,omitempty"`
	Monitor *int        `yaml:"monitor,omitempty" json:"monitor,omitempty"`
	Gap     interface{} `yaml:"gap,omitempty" json:"gap,omitempty"`
	Margin  interface{} `yaml:"margin,omitempty" json:"margin,omitempty"`
}

// WindowRule names a window and optionally pins it to a cell
type WindowRule struct {
	Name          string `yaml:"name,omitempty" json:"name,omitempty"`
	Kind          string `yaml:"kind,omitempty" json:"kind,omitempty"`                   // Free-form label, e.g. "terminal"
	PreferredCell string `yaml:"preferredCell,omitempty" json:"preferredCell,omitempty"` // Cell spec used when none is given
}

// Margins holds per-edge margins in pixels
type Margins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}
