package types

import "testing"

func intPtr(v int) *int { return &v }

func TestDefaultGridConfig(t *testing.T) {
	cfg := DefaultGridConfig()

	if cfg.Rows != 3 || cfg.Columns != 3 {
		t.Errorf("default grid = %dx%d, want 3x3", cfg.Rows, cfg.Columns)
	}
	if cfg.CellGapHorizontal != 4 || cfg.CellGapVertical != 4 {
		t.Errorf("default gaps = %d/%d, want 4/4", cfg.CellGapHorizontal, cfg.CellGapVertical)
	}
	if cfg.MarginTop != 0 || cfg.MarginBottom != 0 || cfg.MarginLeft != 0 || cfg.MarginRight != 0 {
		t.Error("default margins should be 0")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGridConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GridConfig)
		wantErr bool
	}{
		{"valid", func(c *GridConfig) {}, false},
		{"zero rows", func(c *GridConfig) { c.Rows = 0 }, true},
		{"zero columns", func(c *GridConfig) { c.Columns = 0 }, true},
		{"negative monitor", func(c *GridConfig) { c.MonitorIndex = -1 }, true},
		{"negative gap", func(c *GridConfig) { c.CellGapVertical = -2 }, true},
		{"negative margin", func(c *GridConfig) { c.MarginLeft = -1 }, true},
		{"zero gap ok", func(c *GridConfig) { c.CellGapHorizontal = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGridConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigOverridesApply(t *testing.T) {
	o := ConfigOverrides{
		Rows:       intPtr(4),
		MarginLeft: intPtr(10),
	}

	cfg := o.Apply(DefaultGridConfig())

	if cfg.Rows != 4 {
		t.Errorf("Rows = %d, want 4", cfg.Rows)
	}
	if cfg.Columns != DefaultColumns {
		t.Errorf("Columns = %d, want default %d", cfg.Columns, DefaultColumns)
	}
	if cfg.MarginLeft != 10 {
		t.Errorf("MarginLeft = %d, want 10", cfg.MarginLeft)
	}
	if cfg.CellGapHorizontal != DefaultCellGap {
		t.Errorf("CellGapHorizontal = %d, want default", cfg.CellGapHorizontal)
	}
}

func TestConfigOverridesMerge(t *testing.T) {
	global := ConfigOverrides{Rows: intPtr(2), Columns: intPtr(2)}
	desktop := ConfigOverrides{Columns: intPtr(5)}

	merged := global.Merge(desktop)
	cfg := merged.Apply(DefaultGridConfig())

	if cfg.Rows != 2 {
		t.Errorf("Rows = %d, want 2 from global", cfg.Rows)
	}
	if cfg.Columns != 5 {
		t.Errorf("Columns = %d, want 5 from desktop", cfg.Columns)
	}
}
