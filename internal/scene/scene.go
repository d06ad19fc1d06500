// Package scene owns the 3D camera and the editor grid. Camera input can be
// suspended while a drag session is open so orbit/pan never competes with a
// manipulation gesture.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Scene holds the perspective camera and draws the world backdrop (grid and
// axis lines). Solids and markers are drawn by their own packages between the
// scene's BeginMode3D/EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	// inputEnabled gates orbit camera updates. Cleared for the duration of a
	// drag session and unconditionally restored on pointer-up or Escape.
	inputEnabled bool
}

// New returns a scene with a perspective camera looking at the origin.
// Camera: position (10,10,10), target (0,0,0), up (0,1,0), fovy 45°. Grid is
// visible and camera input enabled by default.
func New() *Scene {
	s := &Scene{GridVisible: true, inputEnabled: true}
	s.Camera.Position = rl.NewVector3(10, 10, 10)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// SetInputEnabled enables or disables camera orbit/pan input. The editor
// disables it when a drag session opens and re-enables it when the session
// ends, no matter how it ends.
func (s *Scene) SetInputEnabled(enabled bool) {
	s.inputEnabled = enabled
}

// InputEnabled reports whether camera input is active.
func (s *Scene) InputEnabled() bool { return s.inputEnabled }

// Update runs once per frame. When input is enabled the right mouse button
// orbits and the wheel zooms (raylib third-person camera); while a drag is
// open the camera holds still.
func (s *Scene) Update() {
	if !s.inputEnabled {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.GetMouseWheelMove() != 0 {
		rl.UpdateCamera(&s.Camera, rl.CameraThirdPerson)
	}
}

// Draw renders the grid and axis lines. Call between BeginMode3D and
// EndMode3D, before solids so they draw over the grid.
func (s *Scene) Draw() {
	if s.GridVisible {
		drawEditorGrid()
	}
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and
// colored axis lines through the origin. Reuses start/end vectors to avoid
// per-frame allocations.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
