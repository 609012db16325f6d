package output

import (
	"github.com/yourusername/canvas-grid/internal/types"
)

// ScalingContext handles coordinate transformation from pixel space to terminal character space
type ScalingContext struct {
	// Pixel area being drawn, usually a monitor work area
	Area types.PixelRect

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64
}

// NewScalingContext fits area into a terminal of the given size. The area
// edges land on the first and last canvas column and row. Rows are scaled
// half as much as columns since terminal characters are roughly twice as
// tall as they are wide.
func NewScalingContext(area types.PixelRect, termWidth, termHeight int) *ScalingContext {
	if area.Width <= 0 || area.Height <= 0 {
		area = types.PixelRect{Width: 1920, Height: 1080}
	}

	availWidth := termWidth - 1
	availHeight := termHeight - 1
	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}

	scaleX := float64(availWidth) / float64(area.Width)
	scaleY := float64(availHeight) / float64(area.Height)

	// Keep the on-screen aspect ratio: one row ~ two columns
	if scaleY*2 > scaleX {
		scaleY = scaleX / 2
	} else {
		scaleX = scaleY * 2
	}

	return &ScalingContext{
		Area:       area,
		TermWidth:  int(float64(area.Width)*scaleX) + 1,
		TermHeight: int(float64(area.Height)*scaleY) + 1,
		ScaleX:     scaleX,
		ScaleY:     scaleY,
	}
}

// PixelToTerminal converts pixel coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(x, y int) (int, int) {
	relX := float64(x - sc.Area.X)
	relY := float64(y - sc.Area.Y)
	return int(relX * sc.ScaleX), int(relY * sc.ScaleY)
}

// RectToTerminal converts a pixel rect to a terminal box. Edges are
// mapped independently so adjacent rects share a border.
func (sc *ScalingContext) RectToTerminal(r types.PixelRect) (x, y, w, h int) {
	x0, y0 := sc.PixelToTerminal(r.X, r.Y)
	x1, y1 := sc.PixelToTerminal(r.X+r.Width, r.Y+r.Height)
	return sc.ClampToCanvas(x0, y0, x1-x0+1, y1-y0+1)
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	// Clamp position
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	// Clamp size
	if x+w > sc.TermWidth {
		w = sc.TermWidth - x
	}
	if y+h > sc.TermHeight {
		h = sc.TermHeight - y
	}

	// Ensure minimum size
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}

	return x, y, w, h
}
