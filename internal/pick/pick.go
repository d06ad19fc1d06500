// Package pick answers "what is under the pointer": it casts a ray through the
// scene's solids and reports the nearest hit with its world point and face
// normal. This is the sole pick source feeding hit classification and the
// extrusion/constrained-move math.
package pick

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/geometry"
	"cad-engine/internal/primitives"
)

// Pick is a ray-intersection result against one solid.
type Pick struct {
	Solid     *primitives.Solid
	Point     rl.Vector3 // world-space hit point
	Normal    rl.Vector3 // outward normal of the hit face
	FaceIndex int        // cardinal face index, 0..5 = +X,-X,+Y,-Y,+Z,-Z
	Distance  float32    // along the ray, for nearest-hit ordering
}

// flatPickHalf inflates zero-thickness bounds (plane, disc) so their box is
// hittable from both sides.
const flatPickHalf = primitives.MinDimension / 2

// AtPointer casts a ray from the pointer position through the camera and
// returns the nearest solid hit. Requires a window (uses the live projection).
func AtPointer(cam rl.Camera3D, pointer rl.Vector2, solids []*primitives.Solid) (Pick, bool) {
	ray := rl.GetScreenToWorldRay(pointer, cam)
	return Ray(ray.Position, ray.Direction, solids)
}

// Ray intersects origin+t*dir against every manipulable solid's bounding box
// and returns the nearest hit. dir need not be normalized. Solids whose kind
// is not manipulable are skipped entirely so no drag can start on them.
func Ray(origin, dir rl.Vector3, solids []*primitives.Solid) (Pick, bool) {
	d, ok := geometry.SafeNormalize(dir)
	if !ok {
		return Pick{}, false
	}
	best := Pick{Distance: -1}
	for _, s := range solids {
		if s == nil || !primitives.Manipulable(s.Kind) {
			continue
		}
		h := s.HalfExtents()
		if h.X < flatPickHalf {
			h.X = flatPickHalf
		}
		if h.Y < flatPickHalf {
			h.Y = flatPickHalf
		}
		if h.Z < flatPickHalf {
			h.Z = flatPickHalf
		}
		bmin := rl.Vector3Subtract(s.Position, h)
		bmax := rl.Vector3Add(s.Position, h)
		t, normal, hit := rayBox(origin, d, bmin, bmax)
		if !hit {
			continue
		}
		if best.Distance >= 0 && t >= best.Distance {
			continue
		}
		best = Pick{
			Solid:     s,
			Point:     rl.Vector3Add(origin, rl.Vector3Scale(d, t)),
			Normal:    normal,
			FaceIndex: faceIndex(normal),
			Distance:  t,
		}
	}
	return best, best.Distance >= 0
}

// rayBox is the slab intersection test against an axis-aligned box. Returns
// the entry distance and the outward normal of the entered face. A ray
// starting inside the box reports the exit face instead.
func rayBox(origin, dir, bmin, bmax rl.Vector3) (float32, rl.Vector3, bool) {
	tmin := float32(-3.4e38)
	tmax := float32(3.4e38)
	axis := 0
	sign := float32(-1)
	for a := 0; a < 3; a++ {
		o := geometry.Component(origin, a)
		d := geometry.Component(dir, a)
		lo := geometry.Component(bmin, a)
		hi := geometry.Component(bmax, a)
		if d == 0 {
			if o < lo || o > hi {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		s := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin = t1
			axis = a
			sign = s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}
	if tmax < 0 {
		return 0, rl.Vector3{}, false
	}
	if tmin < 0 {
		// Inside the box: report the exit face.
		exit := rl.Vector3Add(origin, rl.Vector3Scale(dir, tmax))
		n, _ := geometry.SafeNormalize(rl.Vector3Subtract(exit, rl.Vector3Scale(rl.Vector3Add(bmin, bmax), 0.5)))
		return tmax, faceDirFor(n), true
	}
	return tmin, geometry.AxisVector(axis, sign), true
}

// faceDirFor snaps an arbitrary direction onto the nearest cardinal face
// normal.
func faceDirFor(v rl.Vector3) rl.Vector3 {
	axis, sign := geometry.DominantAxis(v)
	return geometry.AxisVector(axis, sign)
}

// faceIndex maps a face normal onto the cardinal index used by geometry.Face.
func faceIndex(normal rl.Vector3) int {
	axis, sign := geometry.DominantAxis(normal)
	idx := axis * 2
	if sign < 0 {
		idx++
	}
	return idx
}
