package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// zeroLengthSq is the squared-length floor below which a vector is treated as
// zero for normalization and segment math.
const zeroLengthSq = float32(1e-12)

// SafeNormalize returns v scaled to unit length. ok is false for a (near)
// zero-length input, in which case the zero vector is returned; callers treat
// that as "no movement this frame" instead of propagating NaN.
func SafeNormalize(v rl.Vector3) (rl.Vector3, bool) {
	lsq := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if lsq < zeroLengthSq {
		return rl.Vector3{}, false
	}
	inv := 1 / math32.Sqrt(lsq)
	return rl.NewVector3(v.X*inv, v.Y*inv, v.Z*inv), true
}

// DominantAxis returns the world axis (0=X, 1=Y, 2=Z) with the largest
// magnitude in v, and the sign of that component. Used to resolve which
// dimension a grabbed face drives.
func DominantAxis(v rl.Vector3) (axis int, sign float32) {
	ax, ay, az := math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)
	axis = 0
	mag := ax
	comp := v.X
	if ay > mag {
		axis, mag, comp = 1, ay, v.Y
	}
	if az > mag {
		axis, comp = 2, v.Z
	}
	if comp < 0 {
		return axis, -1
	}
	return axis, 1
}

// Component returns the axis component of v (0=X, 1=Y, 2=Z).
func Component(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with the axis component replaced.
func WithComponent(v rl.Vector3, axis int, value float32) rl.Vector3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// AxisVector returns the unit vector for a world axis scaled by sign.
func AxisVector(axis int, sign float32) rl.Vector3 {
	return WithComponent(rl.Vector3{}, axis, sign)
}

// DistanceToSegment returns the distance from p to segment [a,b] and the
// closest point on the segment. The parametric projection is clamped to [0,1],
// so points past either endpoint measure to that endpoint. A zero-length
// segment measures to a.
func DistanceToSegment(p, a, b rl.Vector3) (float32, rl.Vector3) {
	d := rl.Vector3Subtract(b, a)
	lsq := d.X*d.X + d.Y*d.Y + d.Z*d.Z
	if lsq < zeroLengthSq {
		return rl.Vector3Distance(p, a), a
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, a), d) / lsq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := rl.Vector3Add(a, rl.Vector3Scale(d, t))
	return rl.Vector3Distance(p, closest), closest
}
