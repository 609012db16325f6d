package state

import (
	"sort"

	"github.com/yourusername/canvas-grid/internal/types"
)

// WindowLocation identifies where a window is placed
type WindowLocation struct {
	Desktop  int
	CellSpan types.CellSpan
}

// GetAllWindowIDs returns all window IDs across all desktops, sorted
func (rs *RuntimeState) GetAllWindowIDs() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	var ids []string
	seen := make(map[string]bool)

	for _, gs := range rs.Desktops {
		for _, a := range gs.Assignments {
			if !seen[a.WindowID] {
				seen[a.WindowID] = true
				ids = append(ids, a.WindowID)
			}
		}
	}

	sort.Strings(ids)
	return ids
}

// FindWindow returns the desktop and span of a window. When a window is
// assigned on several desktops the lowest desktop index wins.
func (rs *RuntimeState) FindWindow(windowID string) (WindowLocation, bool) {
	for _, index := range rs.DesktopIndexes() {
		gs, ok := rs.Desktop(index)
		if !ok {
			continue
		}
		for _, a := range gs.Assignments {
			if a.WindowID == windowID {
				return WindowLocation{Desktop: index, CellSpan: a.CellSpan}, true
			}
		}
	}
	return WindowLocation{}, false
}

// CountAssignments returns the number of placed windows per desktop
func (rs *RuntimeState) CountAssignments() map[int]int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	counts := make(map[int]int, len(rs.Desktops))
	for index, gs := range rs.Desktops {
		counts[index] = len(gs.Assignments)
	}
	return counts
}
