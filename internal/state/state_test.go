package state

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yourusername/canvas-grid/internal/types"
)

func testGrid(desktop int, ids ...string) types.GridState {
	gs := types.GridState{
		DesktopIndex: desktop,
		Config:       types.DefaultGridConfig(),
		Assignments:  []types.CellAssignment{},
		LastUpdated:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, id := range ids {
		gs.Assignments = append(gs.Assignments, types.CellAssignment{
			WindowID: id,
			CellSpan: types.SingleCell(0, i),
		})
	}
	return gs
}

// === State Tests ===

func TestNewRuntimeState(t *testing.T) {
	state := NewRuntimeState()

	if state.Version != StateVersion {
		t.Errorf("Version = %d, want %d", state.Version, StateVersion)
	}
	if state.Desktops == nil {
		t.Error("Desktops should not be nil")
	}
	if len(state.Desktops) != 0 {
		t.Error("Desktops should be empty")
	}
}

func TestSetDesktop(t *testing.T) {
	state := NewRuntimeState()
	gs := testGrid(2, "a")
	state.SetDesktop(gs)

	got, ok := state.Desktop(2)
	if !ok {
		t.Fatal("Desktop(2) not found")
	}
	if len(got.Assignments) != 1 || got.Assignments[0].WindowID != "a" {
		t.Errorf("Assignments = %+v", got.Assignments)
	}

	// Neither the input nor the returned copy alias stored state
	gs.Assignments[0].WindowID = "changed"
	got.Assignments[0].WindowID = "changed"
	again, _ := state.Desktop(2)
	if again.Assignments[0].WindowID != "a" {
		t.Errorf("stored state was aliased: %+v", again.Assignments)
	}

	if _, ok := state.Desktop(5); ok {
		t.Error("Desktop(5) found, want missing")
	}
}

func TestRemoveDesktop(t *testing.T) {
	state := NewRuntimeState()
	state.SetDesktop(testGrid(0))
	state.SetDesktop(testGrid(1))

	state.RemoveDesktop(0)

	if _, ok := state.Desktop(0); ok {
		t.Error("Desktop 0 should be removed")
	}
	if _, ok := state.Desktop(1); !ok {
		t.Error("Desktop 1 should still exist")
	}
}

func TestDesktopIndexes(t *testing.T) {
	state := NewRuntimeState()
	for _, i := range []int{3, 0, 7, 1} {
		state.SetDesktop(testGrid(i))
	}

	got := state.DesktopIndexes()
	want := []int{0, 1, 3, 7}
	if len(got) != len(want) {
		t.Fatalf("DesktopIndexes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DesktopIndexes = %v, want %v", got, want)
			break
		}
	}
}

// === Persistence Tests ===

func TestLoadState_NoFile(t *testing.T) {
	state, err := LoadStateFrom(filepath.Join(t.TempDir(), "missing", "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Desktops) != 0 {
		t.Error("expected empty state for nonexistent file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")

	state, err := LoadStateFrom(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	gs := testGrid(1, "123", "456")
	z := 2
	gs.Assignments[1].ZIndex = &z
	state.SetDesktop(gs)

	if err := state.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadStateFrom(tmpFile)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := loaded.Desktop(1)
	if !ok {
		t.Fatal("desktop 1 not preserved")
	}
	if got.Config != types.DefaultGridConfig() {
		t.Errorf("config = %+v", got.Config)
	}
	if len(got.Assignments) != 2 || got.Assignments[0].WindowID != "123" {
		t.Errorf("assignments = %+v", got.Assignments)
	}
	if got.Assignments[1].ZIndex == nil || *got.Assignments[1].ZIndex != 2 {
		t.Error("zIndex not preserved")
	}
	if !got.LastUpdated.Equal(gs.LastUpdated) {
		t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, gs.LastUpdated)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "dirs", "state.json")

	state := NewRuntimeState()
	if err := state.SaveTo(nestedPath); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(nestedPath); os.IsNotExist(err) {
		t.Error("state file was not created")
	}
	if _, err := os.Stat(nestedPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestLoad_DesktopIndexFromKey(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")
	data := `{"version":2,"desktops":{"4":{"desktopIndex":0,"config":{"rows":2,"columns":2},"assignments":null,"lastUpdated":"2024-05-01T00:00:00Z"}}}`
	if err := os.WriteFile(tmpFile, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := LoadStateFrom(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	gs, ok := state.Desktop(4)
	if !ok {
		t.Fatal("desktop 4 missing")
	}
	if gs.DesktopIndex != 4 {
		t.Errorf("DesktopIndex = %d, want 4", gs.DesktopIndex)
	}
	if gs.Assignments == nil {
		t.Error("Assignments should be initialized")
	}
}

func TestLoad_MigratesVersion1(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")
	data := `{"version":1,"spaces":{"1":{"spaceId":"1","cells":{}}},"lastUpdated":"2024-01-01T00:00:00Z"}`
	if err := os.WriteFile(tmpFile, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := LoadStateFrom(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if state.Version != StateVersion {
		t.Errorf("Version = %d, want %d", state.Version, StateVersion)
	}
	if len(state.Desktops) != 0 {
		t.Errorf("Desktops = %d, want 0", len(state.Desktops))
	}
}

func TestLoad_Corrupt(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(tmpFile, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStateFrom(tmpFile); err == nil {
		t.Error("LoadStateFrom succeeded on corrupt file")
	}
}

func TestReset(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")

	state, _ := LoadStateFrom(tmpFile)
	state.SetDesktop(testGrid(0, "a"))
	if err := state.Save(); err != nil {
		t.Fatal(err)
	}

	if err := state.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(state.Desktops) != 0 {
		t.Error("Desktops should be empty after reset")
	}

	loaded, _ := LoadStateFrom(tmpFile)
	if len(loaded.Desktops) != 0 {
		t.Error("reset not persisted")
	}
}

func TestReset_WaitsForLock(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")
	state, _ := LoadStateFrom(tmpFile)
	if err := state.Store(testGrid(0, "a")); err != nil {
		t.Fatal(err)
	}

	unlock, err := lockFile(tmpFile + ".lock")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- state.Reset() }()

	select {
	case err := <-done:
		unlock()
		t.Fatalf("Reset finished while the state file was locked (err=%v)", err)
	case <-time.After(100 * time.Millisecond):
	}

	unlock()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Reset error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Reset did not finish after the lock was released")
	}

	loaded, _ := LoadStateFrom(tmpFile)
	if len(loaded.Desktops) != 0 {
		t.Error("reset not persisted")
	}
}

// === Update Tests ===

func TestUpdate(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")
	state, _ := LoadStateFrom(tmpFile)
	if err := state.Store(testGrid(0, "a")); err != nil {
		t.Fatal(err)
	}

	next, err := state.Update(0, func(gs types.GridState) (types.GridState, error) {
		gs.Assignments = append(gs.Assignments, types.CellAssignment{WindowID: "b", CellSpan: types.SingleCell(1, 1)})
		return gs, nil
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(next.Assignments) != 2 {
		t.Errorf("returned assignments = %d, want 2", len(next.Assignments))
	}

	loaded, _ := LoadStateFrom(tmpFile)
	gs, _ := loaded.Desktop(0)
	if len(gs.Assignments) != 2 {
		t.Errorf("persisted assignments = %d, want 2", len(gs.Assignments))
	}
}

func TestUpdate_Errors(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")
	state, _ := LoadStateFrom(tmpFile)

	_, err := state.Update(3, func(gs types.GridState) (types.GridState, error) { return gs, nil })
	if !errors.Is(err, ErrDesktopNotInitialized) {
		t.Errorf("Update on missing desktop error = %v, want ErrDesktopNotInitialized", err)
	}

	if err := state.Store(testGrid(0, "a")); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("overlap")
	_, err = state.Update(0, func(gs types.GridState) (types.GridState, error) {
		gs.Assignments = nil
		return gs, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Update error = %v, want %v", err, boom)
	}

	loaded, _ := LoadStateFrom(tmpFile)
	gs, _ := loaded.Desktop(0)
	if len(gs.Assignments) != 1 {
		t.Errorf("failed update was persisted: %+v", gs.Assignments)
	}
}

func TestUpdate_SeesOtherWriters(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")

	first, _ := LoadStateFrom(tmpFile)
	if err := first.Store(testGrid(0)); err != nil {
		t.Fatal(err)
	}
	second, _ := LoadStateFrom(tmpFile)

	add := func(id string, col int) func(types.GridState) (types.GridState, error) {
		return func(gs types.GridState) (types.GridState, error) {
			gs.Assignments = append(gs.Assignments, types.CellAssignment{WindowID: id, CellSpan: types.SingleCell(0, col)})
			return gs, nil
		}
	}

	if _, err := first.Update(0, add("a", 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := second.Update(0, add("b", 1)); err != nil {
		t.Fatal(err)
	}

	loaded, _ := LoadStateFrom(tmpFile)
	gs, _ := loaded.Desktop(0)
	if len(gs.Assignments) != 2 {
		t.Errorf("assignments = %+v, want both writers' windows", gs.Assignments)
	}
}

func TestUpdate_Concurrent(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "state.json")
	state, _ := LoadStateFrom(tmpFile)
	if err := state.Store(testGrid(0)); err != nil {
		t.Fatal(err)
	}

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := state.Update(0, func(gs types.GridState) (types.GridState, error) {
				gs.Assignments = append(gs.Assignments, types.CellAssignment{
					WindowID: string(rune('a' + i)),
					CellSpan: types.SingleCell(i/3, i%3),
				})
				return gs, nil
			})
			if err != nil {
				t.Errorf("Update error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	gs, _ := state.Desktop(0)
	if len(gs.Assignments) != writers {
		t.Errorf("assignments = %d, want %d", len(gs.Assignments), writers)
	}
}

// === Query Tests ===

func TestGetAllWindowIDs(t *testing.T) {
	state := NewRuntimeState()
	state.SetDesktop(testGrid(0, "b", "a"))
	state.SetDesktop(testGrid(1, "c", "a"))

	got := state.GetAllWindowIDs()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("GetAllWindowIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetAllWindowIDs = %v, want %v", got, want)
			break
		}
	}
}

func TestFindWindow(t *testing.T) {
	state := NewRuntimeState()
	state.SetDesktop(testGrid(2, "x"))
	state.SetDesktop(testGrid(1, "y", "x"))

	loc, ok := state.FindWindow("x")
	if !ok {
		t.Fatal("FindWindow(x) not found")
	}
	if loc.Desktop != 1 || loc.CellSpan != types.SingleCell(0, 1) {
		t.Errorf("FindWindow(x) = %+v, want desktop 1 at B1", loc)
	}

	if _, ok := state.FindWindow("missing"); ok {
		t.Error("FindWindow(missing) found")
	}
}

func TestCountAssignments(t *testing.T) {
	state := NewRuntimeState()
	state.SetDesktop(testGrid(0, "a", "b"))
	state.SetDesktop(testGrid(1))

	counts := state.CountAssignments()
	if counts[0] != 2 || counts[1] != 0 {
		t.Errorf("CountAssignments = %v", counts)
	}
}
