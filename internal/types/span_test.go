package types

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func TestNewCellSpan_ClampsDimensions(t *testing.T) {
	tests := []struct {
		name     string
		rowSpan  int
		colSpan  int
		wantRows int
		wantCols int
	}{
		{"normal", 2, 3, 2, 3},
		{"zero rows", 0, 2, 1, 2},
		{"negative cols", 2, -4, 2, 1},
		{"both zero", 0, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := NewCellSpan(1, 1, tt.rowSpan, tt.colSpan)
			if span.RowSpan != tt.wantRows || span.ColumnSpan != tt.wantCols {
				t.Errorf("NewCellSpan spans = %dx%d, want %dx%d",
					span.RowSpan, span.ColumnSpan, tt.wantRows, tt.wantCols)
			}
		})
	}
}

func TestSingleCell(t *testing.T) {
	span := SingleCell(2, 5)
	want := CellSpan{StartRow: 2, StartColumn: 5, RowSpan: 1, ColumnSpan: 1}
	if span != want {
		t.Errorf("SingleCell(2, 5) = %+v, want %+v", span, want)
	}
	if !span.IsSingle() {
		t.Error("SingleCell should report IsSingle")
	}
}

func TestSpansOverlap(t *testing.T) {
	base := NewCellSpan(1, 1, 2, 2) // rows 1-2, cols 1-2

	tests := []struct {
		name  string
		other CellSpan
		want  bool
	}{
		{"identical", base, true},
		{"contained", NewCellSpan(1, 1, 1, 2), true},
		{"corner touch", SingleCell(2, 2), true},
		{"strictly above", NewCellSpan(0, 0, 1, 3), false},
		{"strictly below", SingleCell(3, 1), false},
		{"strictly left", NewCellSpan(0, 0, 4, 1), false},
		{"strictly right", SingleCell(1, 3), false},
		{"partial overlap", NewCellSpan(0, 0, 2, 2), true},
		{"covers all", NewCellSpan(0, 0, 5, 5), true},
		{"diagonal neighbour", SingleCell(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpansOverlap(base, tt.other); got != tt.want {
				t.Errorf("SpansOverlap(%+v, %+v) = %v, want %v", base, tt.other, got, tt.want)
			}
			if got := SpansOverlap(tt.other, base); got != tt.want {
				t.Errorf("SpansOverlap is not symmetric for %+v", tt.other)
			}
		})
	}
}

func TestIsWithinGrid(t *testing.T) {
	cfg := DefaultGridConfig()

	tests := []struct {
		name string
		span CellSpan
		want bool
	}{
		{"origin", SingleCell(0, 0), true},
		{"last cell", SingleCell(2, 2), true},
		{"full grid", NewCellSpan(0, 0, 3, 3), true},
		{"row overflow", NewCellSpan(2, 0, 2, 1), false},
		{"col overflow", NewCellSpan(0, 2, 1, 2), false},
		{"negative row", SingleCell(-1, 0), false},
		{"negative col", SingleCell(0, -1), false},
		{"outside", SingleCell(3, 3), false},
		{"start at max int", SingleCell(math.MaxInt, 0), false},
		{"row span wraps", NewCellSpan(1, 0, math.MaxInt, 1), false},
		{"col span wraps", NewCellSpan(0, 1, 1, math.MaxInt), false},
		{"both huge", NewCellSpan(math.MaxInt, math.MaxInt, math.MaxInt, math.MaxInt), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinGrid(tt.span, cfg); got != tt.want {
				t.Errorf("IsWithinGrid(%+v) = %v, want %v", tt.span, got, tt.want)
			}
		})
	}
}

func TestCellsInSpan_RowMajor(t *testing.T) {
	cells := CellsInSpan(NewCellSpan(1, 0, 2, 2))
	want := []CellAddress{{1, 0}, {1, 1}, {2, 0}, {2, 1}}

	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cells[%d] = %+v, want %+v", i, cells[i], want[i])
		}
	}
}

func TestGridStateClone_NoAliasing(t *testing.T) {
	z := 3
	state := GridState{
		Config: DefaultGridConfig(),
		Assignments: []CellAssignment{
			{WindowID: "a", CellSpan: SingleCell(0, 0), ZIndex: &z},
		},
	}

	clone := state.Clone()
	clone.Assignments[0].WindowID = "b"
	*clone.Assignments[0].ZIndex = 9

	if state.Assignments[0].WindowID != "a" {
		t.Error("clone shares assignment slice with original")
	}
	if *state.Assignments[0].ZIndex != 3 {
		t.Error("clone shares zIndex pointer with original")
	}
}

func TestGridState_JSONShape(t *testing.T) {
	state := GridState{
		DesktopIndex: 1,
		Config:       DefaultGridConfig(),
		Assignments: []CellAssignment{
			{WindowID: "w1", CellSpan: NewCellSpan(0, 0, 2, 1)},
		},
		LastUpdated: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`"desktopIndex":1`,
		`"windowId":"w1"`,
		`"startRow":0`,
		`"rowSpan":2`,
		`"cellGapHorizontal":4`,
		`"lastUpdated":"2024-05-01T12:30:00Z"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON %s missing %s", out, want)
		}
	}
	if strings.Contains(out, "zIndex") {
		t.Error("nil zIndex should be omitted")
	}
}
