// Package view converts between screen-space input (pixels) and world-space
// quantities using the current camera. It owns the screen-invariant hit
// tolerance and the pointer-to-world delta projection.
package view

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HitRadiusPx is the default on-screen grab radius for corners and edges.
const HitRadiusPx = float32(24)

// WorldRadius converts a desired on-screen pixel radius into the equivalent
// world-space radius at a given point, so hit zones and markers read the same
// size regardless of camera distance. Must be recomputed per point: the
// camera-to-point distance changes with pan/zoom and with which feature is
// being tested.
func WorldRadius(cam rl.Camera3D, point rl.Vector3, pixels, viewportHeightPx float32) float32 {
	if viewportHeightPx <= 0 {
		return 0
	}
	dist := rl.Vector3Distance(cam.Position, point)
	halfFov := cam.Fovy * math32.Pi / 360
	return pixels / viewportHeightPx * dist * math32.Tan(halfFov)
}
