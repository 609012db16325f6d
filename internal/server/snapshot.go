package server

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/yourusername/canvas-grid/internal/types"
)

// Dumper fetches the raw window server state
type Dumper interface {
	Dump(ctx context.Context) (map[string]interface{}, error)
}

// DisplayInfo is one connected display as reported by the server
type DisplayInfo struct {
	UUID         string
	Name         string
	Frame        types.PixelRect // Full screen bounds
	VisibleFrame types.PixelRect // Excludes menu bar/dock
	ScaleFactor  float64
	IsMain       bool
}

// WorkArea returns the visible frame, falling back to the full frame
func (d DisplayInfo) WorkArea() types.PixelRect {
	if d.VisibleFrame.Width > 0 && d.VisibleFrame.Height > 0 {
		return d.VisibleFrame
	}
	return d.Frame
}

// WindowInfo contains the window data needed for reconciliation
type WindowInfo struct {
	ID          string
	AppName     string
	Title       string
	Frame       types.PixelRect
	Level       int
	IsMinimized bool
	IsHidden    bool
}

// IsTileable returns true if the window can hold a grid placement
func (w WindowInfo) IsTileable() bool {
	return !w.IsHidden && w.Level == 0
}

// Snapshot is a parsed, read-only view of server state at a point in time
type Snapshot struct {
	Displays  []DisplayInfo   // In server order; index is the monitor index
	Windows   []WindowInfo    // All application windows
	WindowIDs map[string]bool // Quick lookup: does a tileable window exist?
}

// Window looks up a window by id
func (s *Snapshot) Window(id string) (WindowInfo, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return WindowInfo{}, false
}

// Fetch calls dump ONCE and parses into a Snapshot.
func Fetch(ctx context.Context, d Dumper) (*Snapshot, error) {
	raw, err := d.Dump(ctx)
	if err != nil {
		return nil, fmt.Errorf("dump failed: %w", err)
	}
	return ParseSnapshot(raw)
}

// ParseSnapshot converts a raw dump result into a Snapshot
func ParseSnapshot(raw map[string]interface{}) (*Snapshot, error) {
	displays, err := parseDisplays(raw)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Displays:  displays,
		Windows:   parseWindows(raw),
		WindowIDs: make(map[string]bool),
	}
	for _, w := range snap.Windows {
		if w.IsTileable() {
			snap.WindowIDs[w.ID] = true
		}
	}
	return snap, nil
}

func parseDisplays(raw map[string]interface{}) ([]DisplayInfo, error) {
	rawDisplays, ok := raw["displays"].([]interface{})
	if !ok || len(rawDisplays) == 0 {
		return nil, fmt.Errorf("no displays in server state")
	}

	var displays []DisplayInfo
	for _, d := range rawDisplays {
		display, ok := d.(map[string]interface{})
		if !ok {
			continue
		}

		info := DisplayInfo{
			UUID:        toString(display["uuid"]),
			Name:        toString(display["name"]),
			ScaleFactor: toFloat64(display["backingScaleFactor"]),
			IsMain:      toBool(display["isMain"]),
		}
		if info.ScaleFactor <= 0 {
			info.ScaleFactor = 1
		}

		// Parse frame (full screen bounds)
		frame, ok := parseFrame(display["frame"])
		if !ok {
			continue
		}
		info.Frame = frame

		// Parse visibleFrame (excludes menu bar/dock)
		if rect, ok := parseFrame(display["visibleFrame"]); ok {
			info.VisibleFrame = rect
		}

		displays = append(displays, info)
	}

	if len(displays) == 0 {
		return nil, fmt.Errorf("no display in server state has frame data")
	}
	return displays, nil
}

func parseWindows(raw map[string]interface{}) []WindowInfo {
	var windows []WindowInfo

	rawWindows, ok := raw["windows"].(map[string]interface{})
	if !ok {
		// Try as array
		if rawArr, ok := raw["windows"].([]interface{}); ok {
			for _, w := range rawArr {
				if win := parseWindow(w); win != nil {
					windows = append(windows, *win)
				}
			}
		}
		return windows
	}

	for _, w := range rawWindows {
		if win := parseWindow(w); win != nil {
			windows = append(windows, *win)
		}
	}
	return windows
}

func parseWindow(w interface{}) *WindowInfo {
	win, ok := w.(map[string]interface{})
	if !ok {
		return nil
	}

	// Skip windows with no app name (system UI elements)
	appName := toString(win["appName"])
	if appName == "" {
		return nil
	}

	window := WindowInfo{
		ID:          strconv.FormatInt(toInt64(win["id"]), 10),
		Title:       toString(win["title"]),
		AppName:     appName,
		IsMinimized: toBool(win["isMinimized"]),
		IsHidden:    toBool(win["isHidden"]),
		Level:       int(toInt64(win["level"])),
	}

	if rect, ok := parseFrame(win["frame"]); ok {
		window.Frame = rect
	}
	return &window
}

// ParseFrame converts a frame value from any server reply into a rect
func ParseFrame(frame interface{}) (types.PixelRect, bool) {
	return parseFrame(frame)
}

// parseFrame handles both object format {x,y,width,height} and array format [[x,y],[w,h]]
func parseFrame(frame interface{}) (types.PixelRect, bool) {
	if frame == nil {
		return types.PixelRect{}, false
	}

	// Try object format: {x, y, width, height}
	if obj, ok := frame.(map[string]interface{}); ok {
		return types.PixelRect{
			X:      toPixel(obj["x"]),
			Y:      toPixel(obj["y"]),
			Width:  toPixel(obj["width"]),
			Height: toPixel(obj["height"]),
		}, true
	}

	// Try array format: [[x, y], [width, height]]
	if arr, ok := frame.([]interface{}); ok && len(arr) == 2 {
		origin, okOrigin := arr[0].([]interface{})
		size, okSize := arr[1].([]interface{})

		if okOrigin && okSize && len(origin) >= 2 && len(size) >= 2 {
			return types.PixelRect{
				X:      toPixel(origin[0]),
				Y:      toPixel(origin[1]),
				Width:  toPixel(size[0]),
				Height: toPixel(size[1]),
			}, true
		}
	}

	return types.PixelRect{}, false
}

// Type conversion helpers

// toPixel rounds a point value to whole pixels
func toPixel(v interface{}) int {
	return int(math.Round(toFloat64(v)))
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	default:
		return 0
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case int32:
		return int64(n)
	default:
		return 0
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func toBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
