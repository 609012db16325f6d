package state

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/canvas-grid/internal/types"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 2
)

// ErrDesktopNotInitialized is returned when a desktop has no grid yet
var ErrDesktopNotInitialized = errors.New("desktop grid not initialized")

// RuntimeState is the root state structure persisted to disk.
// It holds one grid layout per virtual desktop.
type RuntimeState struct {
	Version     int                      `json:"version"`
	Desktops    map[int]*types.GridState `json:"desktops"`
	LastUpdated time.Time                `json:"lastUpdated"`

	mu   sync.RWMutex // For thread-safe access (not serialized)
	path string       // File this state was loaded from
}

// NewRuntimeState creates a new empty runtime state
func NewRuntimeState() *RuntimeState {
	return &RuntimeState{
		Version:     StateVersion,
		Desktops:    make(map[int]*types.GridState),
		LastUpdated: time.Now().UTC(),
	}
}

// Desktop returns a copy of a desktop's grid
func (rs *RuntimeState) Desktop(index int) (types.GridState, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	gs, ok := rs.Desktops[index]
	if !ok {
		return types.GridState{}, false
	}
	return gs.Clone(), true
}

// SetDesktop stores a grid under its DesktopIndex, replacing any previous one
func (rs *RuntimeState) SetDesktop(gs types.GridState) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	stored := gs.Clone()
	rs.Desktops[gs.DesktopIndex] = &stored
	rs.LastUpdated = time.Now().UTC()
}

// RemoveDesktop drops a desktop's grid
func (rs *RuntimeState) RemoveDesktop(index int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	delete(rs.Desktops, index)
	rs.LastUpdated = time.Now().UTC()
}

// DesktopIndexes returns the initialized desktops in ascending order
func (rs *RuntimeState) DesktopIndexes() []int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	indexes := make([]int, 0, len(rs.Desktops))
	for i := range rs.Desktops {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// MarkUpdated updates the LastUpdated timestamp
func (rs *RuntimeState) MarkUpdated() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.LastUpdated = time.Now().UTC()
}
