// Package focus picks which grid window should receive focus next, either
// by direction or by cycling in reading order.
package focus

import (
	"sort"

	"github.com/yourusername/canvas-grid/internal/types"
)

// Direction represents navigation direction
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a string to Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	default:
		return 0, false
	}
}

// Cycle returns the window after (or before) windowID in reading order:
// top to bottom, then left to right by span origin. An unknown windowID
// starts from the first window going forward and the last going back.
func Cycle(state types.GridState, windowID string, forward bool) (string, bool) {
	if len(state.Assignments) == 0 {
		return "", false
	}

	ordered := make([]types.CellAssignment, len(state.Assignments))
	copy(ordered, state.Assignments)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].CellSpan, ordered[j].CellSpan
		if a.StartRow != b.StartRow {
			return a.StartRow < b.StartRow
		}
		if a.StartColumn != b.StartColumn {
			return a.StartColumn < b.StartColumn
		}
		return ordered[i].WindowID < ordered[j].WindowID
	})

	idx := -1
	for i, a := range ordered {
		if a.WindowID == windowID {
			idx = i
			break
		}
	}

	n := len(ordered)
	switch {
	case idx < 0 && forward:
		idx = 0
	case idx < 0:
		idx = n - 1
	case forward:
		idx = (idx + 1) % n
	default:
		idx = (idx - 1 + n) % n
	}
	return ordered[idx].WindowID, true
}
