package focus

import (
	"math"

	"github.com/yourusername/canvas-grid/internal/types"
)

// point is a span center in cell units
type point struct {
	X, Y float64
}

func center(span types.CellSpan) point {
	return point{
		X: float64(span.StartColumn) + float64(span.ColumnSpan)/2,
		Y: float64(span.StartRow) + float64(span.RowSpan)/2,
	}
}

// edgeThreshold is how far, in cells, a center may sit from the extreme
// and still count as being on that edge when wrapping
const edgeThreshold = 0.5

// FindTargetWindow finds the best window to navigate to in the given direction.
// Returns the target window ID and true if found, or empty string and false if no window in that direction.
// If wrapAround is true and no window is found, it will wrap to the opposite edge.
// Ties go to the window assigned first.
func FindTargetWindow(state types.GridState, windowID string, direction Direction, wrapAround bool) (string, bool) {
	currentCenter, ok := windowCenter(state, windowID)
	if !ok {
		return "", false
	}

	var best string
	bestDistance := math.MaxFloat64

	// Find all windows in the direction and pick the closest one
	for _, a := range state.Assignments {
		if a.WindowID == windowID {
			continue
		}

		targetCenter := center(a.CellSpan)
		if !isInDirection(currentCenter, targetCenter, direction) {
			continue
		}

		distance := distanceInDirection(currentCenter, targetCenter, direction)
		if distance < bestDistance {
			bestDistance = distance
			best = a.WindowID
		}
	}

	if best != "" {
		return best, true
	}

	// Nothing in that direction, try the opposite edge
	if wrapAround {
		return findWrapAroundWindow(state, windowID, currentCenter, direction)
	}

	return "", false
}

func windowCenter(state types.GridState, windowID string) (point, bool) {
	for _, a := range state.Assignments {
		if a.WindowID == windowID {
			return center(a.CellSpan), true
		}
	}
	return point{}, false
}

// isInDirection checks if target is in the specified direction from source.
// Uses center points for comparison.
func isInDirection(source, target point, direction Direction) bool {
	switch direction {
	case DirLeft:
		return target.X < source.X
	case DirRight:
		return target.X > source.X
	case DirUp:
		return target.Y < source.Y
	case DirDown:
		return target.Y > source.Y
	default:
		return false
	}
}

// distanceInDirection weights movement off the primary axis double so
// windows that are more in line with the direction win.
func distanceInDirection(source, target point, direction Direction) float64 {
	dx := math.Abs(target.X - source.X)
	dy := math.Abs(target.Y - source.Y)

	switch direction {
	case DirLeft, DirRight:
		return dx + dy*2
	case DirUp, DirDown:
		return dy + dx*2
	default:
		return math.Sqrt(dx*dx + dy*dy)
	}
}

// findWrapAroundWindow picks the window on the opposite edge that is most
// aligned with the current one. Going right wraps to the leftmost window.
func findWrapAroundWindow(state types.GridState, windowID string, current point, direction Direction) (string, bool) {
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for _, a := range state.Assignments {
		c := center(a.CellSpan)
		minX = math.Min(minX, c.X)
		maxX = math.Max(maxX, c.X)
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
	}

	var best string
	bestDistance := math.MaxFloat64

	for _, a := range state.Assignments {
		if a.WindowID == windowID {
			continue
		}

		target := center(a.CellSpan)
		var onEdge bool
		switch direction {
		case DirLeft:
			onEdge = target.X >= maxX-edgeThreshold
		case DirRight:
			onEdge = target.X <= minX+edgeThreshold
		case DirUp:
			onEdge = target.Y >= maxY-edgeThreshold
		case DirDown:
			onEdge = target.Y <= minY+edgeThreshold
		}
		if !onEdge {
			continue
		}

		distance := perpendicularDistance(current, target, direction)
		if distance < bestDistance {
			bestDistance = distance
			best = a.WindowID
		}
	}

	return best, best != ""
}

// perpendicularDistance returns the distance along the perpendicular axis.
func perpendicularDistance(source, target point, direction Direction) float64 {
	switch direction {
	case DirLeft, DirRight:
		return math.Abs(target.Y - source.Y)
	case DirUp, DirDown:
		return math.Abs(target.X - source.X)
	default:
		return math.Hypot(target.X-source.X, target.Y-source.Y)
	}
}
