package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/canvas-grid/internal/logging"
	"github.com/yourusername/canvas-grid/internal/types"
)

const (
	// DefaultStateDir is the directory under $HOME for state files
	DefaultStateDir = ".local/state/canvas-grid"
	// DefaultStateFile is the state file name
	DefaultStateFile = "state.json"
)

// GetStatePath returns the full path to the state file
func GetStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultStateFile)
}

// LoadState loads state from the default path, creating new state if file doesn't exist
func LoadState() (*RuntimeState, error) {
	return LoadStateFrom(GetStatePath())
}

// LoadStateFrom loads state from a specific path. Later Save calls write
// back to the same path.
func LoadStateFrom(path string) (*RuntimeState, error) {
	state, err := readState(path)
	if err != nil {
		return nil, err
	}
	state.path = path
	return state, nil
}

func readState(path string) (*RuntimeState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return new empty state if file doesn't exist
			return NewRuntimeState(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state := &RuntimeState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	// Handle version migration if needed
	if state.Version < StateVersion {
		state = migrateState(state)
	}

	// Initialize maps if nil (not persisted or old format)
	if state.Desktops == nil {
		state.Desktops = make(map[int]*types.GridState)
	}

	for index, gs := range state.Desktops {
		if gs == nil {
			delete(state.Desktops, index)
			continue
		}
		// The map key is authoritative
		gs.DesktopIndex = index
		if gs.Assignments == nil {
			gs.Assignments = []types.CellAssignment{}
		}
	}

	return state, nil
}

// Path returns the file Save writes to
func (rs *RuntimeState) Path() string {
	if rs.path != "" {
		return rs.path
	}
	return GetStatePath()
}

// Save persists state to the path it was loaded from
func (rs *RuntimeState) Save() error {
	return rs.SaveTo(rs.Path())
}

// SaveTo persists state to a specific path
func (rs *RuntimeState) SaveTo(path string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.saveLocked(path)
}

func (rs *RuntimeState) saveLocked(path string) error {
	// Update timestamp
	rs.LastUpdated = time.Now().UTC()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Marshal with indentation for readability
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up temp file on failure
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}

// Reset clears all state and saves to disk under the same file lock as Update
func (rs *RuntimeState) Reset() error {
	path := rs.Path()

	unlock, err := lockFile(path + ".lock")
	if err != nil {
		return err
	}
	defer unlock()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.Desktops = make(map[int]*types.GridState)
	return rs.saveLocked(path)
}

// Update runs a read-compute-store cycle on one desktop. It takes an
// exclusive lock on the state file, reloads the desktop from disk so that
// writes from other processes are seen, applies fn and saves the result.
// When fn fails nothing is written. The returned state is what was stored.
func (rs *RuntimeState) Update(desktop int, fn func(types.GridState) (types.GridState, error)) (types.GridState, error) {
	path := rs.Path()

	unlock, err := lockFile(path + ".lock")
	if err != nil {
		return types.GridState{}, err
	}
	defer unlock()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	onDisk, err := readState(path)
	if err != nil {
		return types.GridState{}, err
	}
	rs.Desktops = onDisk.Desktops

	current, ok := rs.Desktops[desktop]
	if !ok {
		return types.GridState{}, fmt.Errorf("%w: desktop %d", ErrDesktopNotInitialized, desktop)
	}

	next, err := fn(current.Clone())
	if err != nil {
		return types.GridState{}, err
	}
	next.DesktopIndex = desktop

	stored := next.Clone()
	rs.Desktops[desktop] = &stored
	if err := rs.saveLocked(path); err != nil {
		return types.GridState{}, err
	}

	logging.Debug().Int("desktop", desktop).Int("windows", len(next.Assignments)).Msg("state updated")
	return next, nil
}

// Store writes one desktop's grid under the file lock, keeping the other
// desktops as they are on disk. It is the creation path; Update is the
// modification path.
func (rs *RuntimeState) Store(gs types.GridState) error {
	path := rs.Path()

	unlock, err := lockFile(path + ".lock")
	if err != nil {
		return err
	}
	defer unlock()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	onDisk, err := readState(path)
	if err != nil {
		return err
	}
	rs.Desktops = onDisk.Desktops

	stored := gs.Clone()
	rs.Desktops[gs.DesktopIndex] = &stored
	return rs.saveLocked(path)
}

// migrateState handles migration from older state versions
func migrateState(old *RuntimeState) *RuntimeState {
	// Version 1 files stored named-cell layouts under "spaces", which has
	// no desktop grid equivalent and is dropped.
	migrated := NewRuntimeState()
	if old.Desktops != nil {
		migrated.Desktops = old.Desktops
	}
	migrated.LastUpdated = old.LastUpdated
	logging.Info().Int("from", old.Version).Int("to", StateVersion).Msg("migrated state file")
	return migrated
}
