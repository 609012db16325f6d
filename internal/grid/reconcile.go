package grid

import (
	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/types"
)

// PruneWindows drops assignments whose window no longer exists according
// to live. It returns the updated state and the removed window IDs in
// assignment order. LastUpdated only changes when something was removed.
func PruneWindows(state types.GridState, live func(windowID string) bool) (types.GridState, []string) {
	next := state.Clone()
	kept := next.Assignments[:0]

	var removed []string
	for _, a := range next.Assignments {
		if live(a.WindowID) {
			kept = append(kept, a)
			continue
		}
		removed = append(removed, a.WindowID)
	}
	next.Assignments = kept

	if len(removed) > 0 {
		next.LastUpdated = now()
		logging.Info().
			Int("desktop", state.DesktopIndex).
			Strs("windows", removed).
			Msg("pruned stale windows")
	}
	return next, removed
}

// OverlapPair names two assignments whose spans collide
type OverlapPair struct {
	First  types.CellAssignment
	Second types.CellAssignment
}

// FindOverlaps reports every colliding pair of assignments. A state built
// only through validated placement never has any; states edited by hand or
// loaded from disk may.
func FindOverlaps(state types.GridState) []OverlapPair {
	var pairs []OverlapPair
	for i := 0; i < len(state.Assignments); i++ {
		for j := i + 1; j < len(state.Assignments); j++ {
			a, b := state.Assignments[i], state.Assignments[j]
			if types.SpansOverlap(a.CellSpan, b.CellSpan) {
				pairs = append(pairs, OverlapPair{First: a, Second: b})
			}
		}
	}
	return pairs
}
