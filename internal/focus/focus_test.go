package focus

import (
	"testing"

	"github.com/yourusername/canvas-grid/internal/types"
)

func layoutState(rows, cols int, assignments ...types.CellAssignment) types.GridState {
	return types.GridState{
		Config:      types.GridConfig{Rows: rows, Columns: cols},
		Assignments: assignments,
	}
}

func at(id string, row, col, rowSpan, colSpan int) types.CellAssignment {
	return types.CellAssignment{WindowID: id, CellSpan: types.NewCellSpan(row, col, rowSpan, colSpan)}
}

// +--------+--------+
// |  left  | right  |
// +--------+--------+
// |     bottom      |
// +--------+--------+
func makeTestGrid() types.GridState {
	return layoutState(2, 2,
		at("left", 0, 0, 1, 1),
		at("right", 0, 1, 1, 1),
		at("bottom", 1, 0, 1, 2),
	)
}

// +----+----+
// | tl | tr |
// +----+----+
// | bl | br |
// +----+----+
func make2x2Grid() types.GridState {
	return layoutState(2, 2,
		at("tl", 0, 0, 1, 1),
		at("tr", 0, 1, 1, 1),
		at("bl", 1, 0, 1, 1),
		at("br", 1, 1, 1, 1),
	)
}

func TestFindTargetWindow(t *testing.T) {
	tests := []struct {
		name    string
		state   types.GridState
		from    string
		dir     Direction
		wrap    bool
		want    string
		wantHit bool
	}{
		{"left to right", makeTestGrid(), "left", DirRight, false, "right", true},
		{"left down", makeTestGrid(), "left", DirDown, false, "bottom", true},
		{"right down", makeTestGrid(), "right", DirDown, false, "bottom", true},
		{"bottom up ties to first assigned", makeTestGrid(), "bottom", DirUp, false, "left", true},
		{"right edge no wrap", makeTestGrid(), "right", DirRight, false, "", false},
		{"right edge wraps", makeTestGrid(), "right", DirRight, true, "left", true},
		{"2x2 right", make2x2Grid(), "tl", DirRight, false, "tr", true},
		{"2x2 down", make2x2Grid(), "tr", DirDown, false, "br", true},
		{"2x2 left prefers aligned", make2x2Grid(), "br", DirLeft, false, "bl", true},
		{"2x2 up wraps to bottom", make2x2Grid(), "tl", DirUp, true, "bl", true},
		{"2x2 left wraps to right", make2x2Grid(), "bl", DirLeft, true, "br", true},
		{"unknown window", make2x2Grid(), "nope", DirLeft, true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindTargetWindow(tt.state, tt.from, tt.dir, tt.wrap)
			if ok != tt.wantHit || got != tt.want {
				t.Errorf("FindTargetWindow(%s, %s) = %q, %v, want %q, %v",
					tt.from, tt.dir, got, ok, tt.want, tt.wantHit)
			}
		})
	}
}

func TestFindTargetWindow_SingleWindow(t *testing.T) {
	state := layoutState(3, 3, at("only", 1, 1, 1, 1))

	if got, ok := FindTargetWindow(state, "only", DirRight, true); ok {
		t.Errorf("single window should have no target, got %q", got)
	}
}

func TestCycle(t *testing.T) {
	// Assigned out of reading order on purpose
	state := layoutState(2, 2,
		at("br", 1, 1, 1, 1),
		at("tl", 0, 0, 1, 1),
		at("tr", 0, 1, 1, 1),
	)

	tests := []struct {
		from    string
		forward bool
		want    string
	}{
		{"tl", true, "tr"},
		{"tr", true, "br"},
		{"br", true, "tl"},
		{"tl", false, "br"},
		{"unknown", true, "tl"},
		{"unknown", false, "br"},
	}

	for _, tt := range tests {
		got, ok := Cycle(state, tt.from, tt.forward)
		if !ok || got != tt.want {
			t.Errorf("Cycle(%q, forward=%v) = %q, %v, want %q", tt.from, tt.forward, got, ok, tt.want)
		}
	}
}

func TestCycle_Empty(t *testing.T) {
	if _, ok := Cycle(layoutState(2, 2), "a", true); ok {
		t.Error("Cycle on empty grid should report false")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("ParseDirection accepted an unknown direction")
	}
	if Direction(99).String() != "unknown" {
		t.Errorf("Direction(99).String() = %q", Direction(99).String())
	}
}
