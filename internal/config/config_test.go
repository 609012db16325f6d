package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/canvas-grid/internal/client"
	"github.com/yourusername/canvas-grid/internal/monitor"
	"github.com/yourusername/canvas-grid/internal/types"
)

func TestParseMargin(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected Margins
		hasError bool
	}{
		{"nil", nil, Margins{}, false},
		{"int", 10, Margins{10, 10, 10, 10}, false},
		{"float rounds", 10.6, Margins{11, 11, 11, 11}, false},
		{"px string", "8px", Margins{8, 8, 8, 8}, false},
		{"two values", "10 20", Margins{Top: 10, Right: 20, Bottom: 10, Left: 20}, false},
		{"three values", "10 20 30", Margins{Top: 10, Right: 20, Bottom: 30, Left: 20}, false},
		{"four values", "1 2 3 4", Margins{Top: 1, Right: 2, Bottom: 3, Left: 4}, false},
		{"array", []interface{}{1, 2, 3, 4}, Margins{Top: 1, Right: 2, Bottom: 3, Left: 4}, false},
		{"object", map[string]interface{}{"top": 25, "left": 5.0}, Margins{Top: 25, Left: 5}, false},
		{"five values", "1 2 3 4 5", Margins{}, true},
		{"empty string", "  ", Margins{}, true},
		{"bad value", "ten", Margins{}, true},
		{"unknown key", map[string]interface{}{"middle": 1}, Margins{}, true},
		{"bool", true, Margins{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMargin(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseMargin(%v) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMargin(%v) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseMargin(%v) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseGap(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		wantH    int
		wantV    int
		hasError bool
	}{
		{"int", 4, 4, 4, false},
		{"string", "6px", 6, 6, false},
		{"pair string", "8 2", 8, 2, false},
		{"array", []interface{}{10.0, 0.0}, 10, 0, false},
		{"array too long", []interface{}{1, 2, 3}, 0, 0, true},
		{"garbage", "wide", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, v, err := ParseGap(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseGap(%v) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGap(%v) unexpected error: %v", tt.input, err)
			}
			if h != tt.wantH || v != tt.wantV {
				t.Errorf("ParseGap(%v) = %d, %d, want %d, %d", tt.input, h, v, tt.wantH, tt.wantV)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"5", 5 * time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"250ms", 250 * time.Millisecond, false},
		{"2m", 2 * time.Minute, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseDuration(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDuration(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

const sampleYAML = `
settings:
  socketPath: /tmp/test.sock
  timeout: 10s
  monitorCacheTTL: "0"
grid:
  rows: 2
  columns: 4
  gap: [8, 4]
  margin: "10 20"
desktops:
  1:
    rows: 3
    margin: 0
monitors:
  - index: 0
    name: laptop
    width: 1440
    height: 900
    workAreaY: 25
    workAreaWidth: 1440
    workAreaHeight: 875
windows:
  "101":
    name: Terminal
    kind: terminal
    preferredCell: A1:B2
  "202":
    kind: browser
`

func TestLoadConfigFromBytes_YAML(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(sampleYAML), "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes error: %v", err)
	}

	if cfg.GetSocketPath() != "/tmp/test.sock" {
		t.Errorf("GetSocketPath = %q", cfg.GetSocketPath())
	}
	if cfg.GetTimeout() != 10*time.Second {
		t.Errorf("GetTimeout = %v", cfg.GetTimeout())
	}
	if cfg.GetMonitorCacheTTL() != 0 {
		t.Errorf("GetMonitorCacheTTL = %v, want 0", cfg.GetMonitorCacheTTL())
	}
	if cfg.GetMonitorSource() != MonitorSourceStatic {
		t.Errorf("GetMonitorSource = %q, want static", cfg.GetMonitorSource())
	}
	if len(cfg.Monitors) != 1 || cfg.Monitors[0].WorkAreaHeight != 875 {
		t.Errorf("Monitors = %+v", cfg.Monitors)
	}

	if names := cfg.WindowNames(); names["101"] != "Terminal" || len(names) != 1 {
		t.Errorf("WindowNames = %v", names)
	}
	if kinds := cfg.WindowKinds(); kinds["202"] != "browser" || len(kinds) != 2 {
		t.Errorf("WindowKinds = %v", kinds)
	}
	if rule, ok := cfg.GetWindowRule("101"); !ok || rule.PreferredCell != "A1:B2" {
		t.Errorf("GetWindowRule(101) = %+v, %v", rule, ok)
	}
}

func TestGridOverrides(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(sampleYAML), "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes error: %v", err)
	}

	global, err := cfg.GridOverrides(0)
	if err != nil {
		t.Fatalf("GridOverrides(0) error: %v", err)
	}
	g := global.Apply(types.DefaultGridConfig())
	want := types.GridConfig{
		Rows: 2, Columns: 4, MonitorIndex: 0,
		CellGapHorizontal: 8, CellGapVertical: 4,
		MarginTop: 10, MarginBottom: 10, MarginLeft: 20, MarginRight: 20,
	}
	if g != want {
		t.Errorf("desktop 0 config = %+v, want %+v", g, want)
	}

	local, err := cfg.GridOverrides(1)
	if err != nil {
		t.Fatalf("GridOverrides(1) error: %v", err)
	}
	d1 := local.Apply(types.DefaultGridConfig())
	want.Rows = 3
	want.MarginTop, want.MarginBottom, want.MarginLeft, want.MarginRight = 0, 0, 0, 0
	if d1 != want {
		t.Errorf("desktop 1 config = %+v, want %+v", d1, want)
	}
}

func TestLoadConfigFromBytes_JSON(t *testing.T) {
	data := `{"grid":{"rows":5,"gap":2},"desktops":{"3":{"columns":6}}}`
	cfg, err := LoadConfigFromBytes([]byte(data), "json")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes error: %v", err)
	}

	o, err := cfg.GridOverrides(3)
	if err != nil {
		t.Fatalf("GridOverrides error: %v", err)
	}
	g := o.Apply(types.DefaultGridConfig())
	if g.Rows != 5 || g.Columns != 6 || g.CellGapHorizontal != 2 || g.CellGapVertical != 2 {
		t.Errorf("config = %+v", g)
	}
	if cfg.GetMonitorSource() != MonitorSourceServer {
		t.Errorf("GetMonitorSource = %q, want server", cfg.GetMonitorSource())
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetSocketPath() != client.DefaultSocketPath {
		t.Errorf("GetSocketPath = %q", cfg.GetSocketPath())
	}
	if cfg.GetTimeout() != client.DefaultTimeout {
		t.Errorf("GetTimeout = %v", cfg.GetTimeout())
	}
	if cfg.GetMonitorCacheTTL() != monitor.DefaultCacheTTL {
		t.Errorf("GetMonitorCacheTTL = %v", cfg.GetMonitorCacheTTL())
	}
	o, err := cfg.GridOverrides(0)
	if err != nil {
		t.Fatalf("GridOverrides error: %v", err)
	}
	if o.Apply(types.DefaultGridConfig()) != types.DefaultGridConfig() {
		t.Error("empty config should leave defaults untouched")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"zero rows", "grid:\n  rows: 0\n", "rows"},
		{"negative gap", "grid:\n  gap: -1\n", "gap"},
		{"bad margin", "grid:\n  margin: [1, 2, 3, 4, 5]\n", "margin"},
		{"desktop zero columns", "desktops:\n  2:\n    columns: 0\n", "desktop 2"},
		{"bad monitor source", "settings:\n  monitorSource: x11\n", "monitorSource"},
		{"bad timeout", "settings:\n  timeout: forever\n", "timeout"},
		{"monitor without size", "monitors:\n  - index: 0\n", "monitor 0"},
		{"duplicate monitor", "monitors:\n  - {index: 0, width: 10, height: 10}\n  - {index: 0, width: 10, height: 10}\n", "duplicate"},
		{"bad preferred cell", "windows:\n  \"1\":\n    preferredCell: ZZ\n", "window 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromBytes([]byte(tt.yaml), "yaml")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(yamlPath, []byte("grid:\n  columns: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(yamlPath)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Grid.Columns == nil || *cfg.Grid.Columns != 5 {
		t.Errorf("Grid.Columns = %v", cfg.Grid.Columns)
	}

	tomlPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(tomlPath, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(tomlPath); err == nil {
		t.Error("LoadConfig accepted .toml")
	}
}
