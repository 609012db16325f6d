package grid

import (
	"fmt"

	"github.com/yourusername/canvas-grid/internal/layout"
	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/types"
)

// AssignWindowToGrid places a window on a span, replacing any previous
// placement of the same window. It does not validate; callers that need the
// no-overlap guarantee call ValidateCellSpan first or use PlaceWindow.
func AssignWindowToGrid(windowID string, span types.CellSpan, state types.GridState) types.GridState {
	next := RemoveWindowFromGrid(windowID, state)
	next.Assignments = append(next.Assignments, types.CellAssignment{
		WindowID: windowID,
		CellSpan: span,
	})
	next.LastUpdated = now()

	logging.Debug().
		Int("desktop", state.DesktopIndex).
		Str("window", windowID).
		Str("span", layout.FormatCellSpan(span)).
		Msg("assigned window")

	return next
}

// PlaceWindow validates span for the window (ignoring its own current
// placement) and assigns it only when validation passes.
func PlaceWindow(windowID string, span types.CellSpan, state types.GridState) (types.GridState, error) {
	if err := ValidateCellSpan(span, state, windowID); err != nil {
		return state, err
	}
	return AssignWindowToGrid(windowID, span, state), nil
}

// PlaceWindowAuto assigns the window to the first free span of the given
// size. The window's current placement does not count as occupied.
func PlaceWindowAuto(windowID string, rowSpan, colSpan int, state types.GridState) (types.GridState, types.CellSpan, error) {
	span, err := FindAvailableSpan(rowSpan, colSpan, RemoveWindowFromGrid(windowID, state))
	if err != nil {
		return state, types.CellSpan{}, err
	}
	return AssignWindowToGrid(windowID, span, state), span, nil
}

// RemoveWindowFromGrid drops the window's assignment.
// Removing a window that has none is a no-op.
func RemoveWindowFromGrid(windowID string, state types.GridState) types.GridState {
	next := state.Clone()
	kept := next.Assignments[:0]

	removed := false
	for _, a := range next.Assignments {
		if a.WindowID == windowID {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	next.Assignments = kept

	if removed {
		next.LastUpdated = now()
	}
	return next
}

// GetWindowCellSpan looks up the span assigned to a window
func GetWindowCellSpan(windowID string, state types.GridState) (types.CellSpan, bool) {
	for _, a := range state.Assignments {
		if a.WindowID == windowID {
			return a.CellSpan, true
		}
	}
	return types.CellSpan{}, false
}

// SwapWindowPositions exchanges the spans of two assigned windows.
// Both windows must be assigned; otherwise nothing changes and an
// ErrPrecondition error is returned.
func SwapWindowPositions(windowID1, windowID2 string, state types.GridState) (types.GridState, error) {
	span1, ok1 := GetWindowCellSpan(windowID1, state)
	span2, ok2 := GetWindowCellSpan(windowID2, state)

	switch {
	case !ok1 && !ok2:
		return state, fmt.Errorf("%w: windows %s and %s are not assigned", ErrPrecondition, windowID1, windowID2)
	case !ok1:
		return state, fmt.Errorf("%w: window %s is not assigned", ErrPrecondition, windowID1)
	case !ok2:
		return state, fmt.Errorf("%w: window %s is not assigned", ErrPrecondition, windowID2)
	}

	next := state.Clone()
	for i := range next.Assignments {
		switch next.Assignments[i].WindowID {
		case windowID1:
			next.Assignments[i].CellSpan = span2
		case windowID2:
			next.Assignments[i].CellSpan = span1
		}
	}
	next.LastUpdated = now()

	logging.Debug().
		Str("first", windowID1).
		Str("second", windowID2).
		Msg("swapped windows")

	return next, nil
}

// SetWindowZIndex records a stacking hint for an assigned window
func SetWindowZIndex(windowID string, z int, state types.GridState) (types.GridState, error) {
	next := state.Clone()
	for i := range next.Assignments {
		if next.Assignments[i].WindowID == windowID {
			next.Assignments[i].ZIndex = &z
			next.LastUpdated = now()
			return next, nil
		}
	}
	return state, fmt.Errorf("%w: window %s is not assigned", ErrNotFound, windowID)
}
