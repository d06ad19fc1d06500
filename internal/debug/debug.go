package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce
	// allocations.
	updateInterval = 30
)

// Debug holds the runtime overlays: FPS, heap allocation, and the active drag
// session's state line. All overlays are off by default.
type Debug struct {
	ShowFPS       bool
	ShowMemAlloc  bool
	ShowDragState bool

	frameCount  uint32
	lastFpsText string
	lastMemText string
	dragState   string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) { d.ShowFPS = show }

// SetShowMemAlloc sets whether the heap counter is drawn under FPS.
func (d *Debug) SetShowMemAlloc(show bool) { d.ShowMemAlloc = show }

// SetShowDragState sets whether the drag status line is drawn.
func (d *Debug) SetShowDragState(show bool) { d.ShowDragState = show }

// SetDragState sets the drag status line (mode, snap target, live
// dimensions). Empty string hides the line for the frame.
func (d *Debug) SetDragState(s string) { d.dragState = s }

// Draw renders enabled overlays at the top-right. Call after the 3D scene in
// the draw loop. FPS/Mem text is recomputed every updateInterval frames only.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}
	if update {
		d.lastFpsText = fmt.Sprintf("%d FPS", rl.GetFPS())
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		d.lastMemText = fmt.Sprintf("heap %.1f MB", float64(ms.HeapAlloc)/(1024*1024))
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(overlayPadding)
	if d.ShowFPS {
		drawRightAligned(d.lastFpsText, screenW, y, rl.Green)
		y += overlayLineHeight
	}
	if d.ShowMemAlloc {
		drawRightAligned(d.lastMemText, screenW, y, rl.Green)
		y += overlayLineHeight
	}
	if d.ShowDragState && d.dragState != "" {
		drawRightAligned(d.dragState, screenW, y, rl.Yellow)
	}
}

func drawRightAligned(text string, screenW, y int32, color rl.Color) {
	w := rl.MeasureText(text, overlayFontSize)
	rl.DrawText(text, screenW-w-overlayPadding, y, overlayFontSize, color)
}
