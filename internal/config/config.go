package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/canvas-grid/internal/client"
	"github.com/yourusername/canvas-grid/internal/monitor"
	"github.com/yourusername/canvas-grid/internal/types"
)

const (
	DefaultConfigDir  = ".config/canvas-grid"
	DefaultConfigFile = "config.yaml"
)

// Monitor sources
const (
	MonitorSourceServer = "server"
	MonitorSourceStatic = "static"
)

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/canvas-grid/config.yaml (or .json) and
// falls back to an empty config when neither exists.
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// ToOverrides converts a grid section to partial grid config
func (g GridSection) ToOverrides() (types.ConfigOverrides, error) {
	o := types.ConfigOverrides{
		Rows:         g.Rows,
		Columns:      g.Columns,
		MonitorIndex: g.Monitor,
	}

	if g.Gap != nil {
		h, v, err := ParseGap(g.Gap)
		if err != nil {
			return types.ConfigOverrides{}, fmt.Errorf("gap: %w", err)
		}
		o.CellGapHorizontal = &h
		o.CellGapVertical = &v
	}

	if g.Margin != nil {
		m, err := ParseMargin(g.Margin)
		if err != nil {
			return types.ConfigOverrides{}, fmt.Errorf("margin: %w", err)
		}
		o.MarginTop = &m.Top
		o.MarginBottom = &m.Bottom
		o.MarginLeft = &m.Left
		o.MarginRight = &m.Right
	}

	return o, nil
}

// GridOverrides returns the overrides for a desktop: desktop-specific
// values take precedence over the global grid section.
func (c *Config) GridOverrides(desktop int) (types.ConfigOverrides, error) {
	global, err := c.Grid.ToOverrides()
	if err != nil {
		return types.ConfigOverrides{}, fmt.Errorf("grid: %w", err)
	}

	section, ok := c.Desktops[desktop]
	if !ok {
		return global, nil
	}
	local, err := section.ToOverrides()
	if err != nil {
		return types.ConfigOverrides{}, fmt.Errorf("desktop %d: %w", desktop, err)
	}
	return global.Merge(local), nil
}

// GetSocketPath returns the window server socket path
func (c *Config) GetSocketPath() string {
	if c.Settings.SocketPath != "" {
		return c.Settings.SocketPath
	}
	return client.DefaultSocketPath
}

// GetTimeout returns the request timeout
func (c *Config) GetTimeout() time.Duration {
	if d, err := ParseDuration(c.Settings.Timeout); err == nil && d > 0 {
		return d
	}
	return client.DefaultTimeout
}

// GetMonitorCacheTTL returns how long monitor geometry is cached.
// An explicit "0" disables caching.
func (c *Config) GetMonitorCacheTTL() time.Duration {
	if c.Settings.MonitorCacheTTL == "" {
		return monitor.DefaultCacheTTL
	}
	d, err := ParseDuration(c.Settings.MonitorCacheTTL)
	if err != nil {
		return monitor.DefaultCacheTTL
	}
	return d
}

// GetMonitorSource returns "server" or "static". Static is the default
// when monitors are configured.
func (c *Config) GetMonitorSource() string {
	if c.Settings.MonitorSource != "" {
		return c.Settings.MonitorSource
	}
	if len(c.Monitors) > 0 {
		return MonitorSourceStatic
	}
	return MonitorSourceServer
}

// WindowNames returns display names keyed by window ID
func (c *Config) WindowNames() map[string]string {
	names := make(map[string]string)
	for id, rule := range c.Windows {
		if rule.Name != "" {
			names[id] = rule.Name
		}
	}
	return names
}

// WindowKinds returns kind labels keyed by window ID
func (c *Config) WindowKinds() map[string]string {
	kinds := make(map[string]string)
	for id, rule := range c.Windows {
		if rule.Kind != "" {
			kinds[id] = rule.Kind
		}
	}
	return kinds
}

// GetWindowRule returns the rule for a window, if any
func (c *Config) GetWindowRule(windowID string) (WindowRule, bool) {
	rule, ok := c.Windows[windowID]
	return rule, ok
}
