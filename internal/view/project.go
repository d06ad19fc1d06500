package view

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/geometry"
)

// ConstrainedSensitivity is how many world units one pixel of pointer travel
// moves a face-constrained target.
const ConstrainedSensitivity = float32(0.01)

// Basis returns the camera's right and up vectors in world space. ok is false
// when the view direction is degenerate (camera on top of its target, or view
// parallel to the up vector); callers treat that as "no movement this frame".
func Basis(cam rl.Camera3D) (right, up rl.Vector3, ok bool) {
	forward, ok := geometry.SafeNormalize(rl.Vector3Subtract(cam.Target, cam.Position))
	if !ok {
		return rl.Vector3{}, rl.Vector3{}, false
	}
	right, ok = geometry.SafeNormalize(rl.Vector3CrossProduct(forward, cam.Up))
	if !ok {
		return rl.Vector3{}, rl.Vector3{}, false
	}
	up = rl.Vector3CrossProduct(right, forward)
	return right, up, true
}

// Unconstrained converts a pointer displacement (dx, dy in pixels since drag
// start) into a world displacement on the camera's right/up plane, scaled so
// the dragged geometry tracks the pointer. ref is the world point being
// dragged (the grab point); pixel-to-world scale uses the camera's distance to
// it, so off-center objects move at pointer speed too. The vertical world
// component is suppressed so ground-plane objects do not rise during a planar
// drag. Screen Y grows downward, hence the negated dy.
func Unconstrained(cam rl.Camera3D, dx, dy float32, ref rl.Vector3, viewportHeightPx float32) rl.Vector3 {
	right, up, ok := Basis(cam)
	if !ok || viewportHeightPx <= 0 {
		return rl.Vector3{}
	}
	halfFov := cam.Fovy * math32.Pi / 360
	dist := rl.Vector3Distance(cam.Position, ref)
	pixelToWorld := 2 * math32.Tan(halfFov) * dist / viewportHeightPx
	delta := rl.Vector3Add(
		rl.Vector3Scale(right, dx*pixelToWorld),
		rl.Vector3Scale(up, -dy*pixelToWorld),
	)
	delta.Y = 0
	return delta
}

// ConstrainedScalar converts a pointer displacement into a signed scalar along
// a world-space face normal. The normal is projected onto the camera's
// right/up plane; whichever screen axis carries more of it decides whether dx
// or dy drives the motion, so the user can drag in any screen direction that
// "reads" as the constrained axis. Returns 0 when the normal is degenerate or
// projects to (near) nothing (normal pointing straight at the camera).
func ConstrainedScalar(cam rl.Camera3D, normal rl.Vector3, dx, dy float32) float32 {
	n, ok := geometry.SafeNormalize(normal)
	if !ok {
		return 0
	}
	right, up, ok := Basis(cam)
	if !ok {
		return 0
	}
	sx := rl.Vector3DotProduct(n, right)
	sy := -rl.Vector3DotProduct(n, up) // screen Y grows downward
	if math32.Abs(sx) < 1e-6 && math32.Abs(sy) < 1e-6 {
		return 0
	}
	if math32.Abs(sx) >= math32.Abs(sy) {
		if sx < 0 {
			dx = -dx
		}
		return dx * ConstrainedSensitivity
	}
	if sy < 0 {
		dy = -dy
	}
	return dy * ConstrainedSensitivity
}

// Constrained converts a pointer displacement into a world displacement along
// the given face normal (see ConstrainedScalar).
func Constrained(cam rl.Camera3D, normal rl.Vector3, dx, dy float32) rl.Vector3 {
	n, ok := geometry.SafeNormalize(normal)
	if !ok {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(n, ConstrainedScalar(cam, normal, dx, dy))
}
