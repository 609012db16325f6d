package config

import (
	"fmt"
	"sort"

	"github.com/yourusername/canvas-grid/internal/grid"
	"github.com/yourusername/canvas-grid/internal/types"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	// Validate settings
	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	// Validate the global grid and every desktop override on top of it
	if err := validateGrid(c, c.Settings.DefaultDesktop); err != nil {
		return err
	}
	for _, desktop := range sortedDesktops(c.Desktops) {
		if desktop < 0 {
			return fmt.Errorf("desktop %d: index must be >= 0", desktop)
		}
		if err := validateGrid(c, desktop); err != nil {
			return err
		}
	}

	// Validate monitors
	seen := make(map[int]bool)
	for i, m := range c.Monitors {
		if err := validateMonitor(m); err != nil {
			return fmt.Errorf("monitor %d: %w", i, err)
		}
		if seen[m.Index] {
			return fmt.Errorf("duplicate monitor index: %d", m.Index)
		}
		seen[m.Index] = true
	}

	// Validate window rules
	for id, rule := range c.Windows {
		if id == "" {
			return fmt.Errorf("window rule with empty id")
		}
		if rule.PreferredCell != "" {
			if _, err := grid.ParseCellSpec(rule.PreferredCell); err != nil {
				return fmt.Errorf("window %s: %w", id, err)
			}
		}
	}

	return nil
}

func validateGrid(c *Config, desktop int) error {
	o, err := c.GridOverrides(desktop)
	if err != nil {
		return err
	}
	if _, err := grid.NewGridConfig(grid.WithOverrides(o)); err != nil {
		return fmt.Errorf("desktop %d: %w", desktop, err)
	}
	return nil
}

func validateSettings(s *Settings) error {
	switch s.MonitorSource {
	case "", MonitorSourceServer, MonitorSourceStatic:
	default:
		return fmt.Errorf("invalid monitorSource: %s (must be server or static)", s.MonitorSource)
	}

	if _, err := ParseDuration(s.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	d, err := ParseDuration(s.MonitorCacheTTL)
	if err != nil {
		return fmt.Errorf("monitorCacheTTL: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("monitorCacheTTL must be >= 0")
	}

	if s.DefaultDesktop < 0 {
		return fmt.Errorf("defaultDesktop must be >= 0")
	}
	return nil
}

func validateMonitor(m types.MonitorInfo) error {
	if m.Index < 0 {
		return fmt.Errorf("index must be >= 0")
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if m.WorkAreaWidth < 0 || m.WorkAreaHeight < 0 {
		return fmt.Errorf("work area size must be >= 0")
	}
	if m.DPIScale < 0 {
		return fmt.Errorf("dpiScale must be >= 0")
	}
	return nil
}

func sortedDesktops(m map[int]GridSection) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
