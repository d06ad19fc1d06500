package geometry

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/primitives"
)

// Corner is a grabbable point feature of a solid.
type Corner struct {
	Position rl.Vector3
}

// Edge is a straight segment feature. Normal points outward from the solid's
// center at the edge midpoint; it is used for marker orientation only.
type Edge struct {
	Start  rl.Vector3
	End    rl.Vector3
	Normal rl.Vector3
}

// Face is a planar feature. Anchor is a point on the face plane (the face
// center). Index identifies the cardinal side for box-bound solids:
// 0..5 = +X, -X, +Y, -Y, +Z, -Z.
type Face struct {
	Normal rl.Vector3
	Anchor rl.Vector3
	Solid  *primitives.Solid
	Index  int
}

// faceDirs are the local outward normals for the six cardinal faces, in Index
// order.
var faceDirs = [6]rl.Vector3{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

// Corners derives the solid's world-space corner points from its current
// bounds. 8 for a box, none for plane/cylinder/disc (no discrete corners).
// Pure: re-derives on every call so results always match geometry that may
// have just changed mid-drag.
func Corners(s *primitives.Solid) []Corner {
	if !primitives.KindCaps(s.Kind).HasDiscreteCorners {
		return nil
	}
	h := s.HalfExtents()
	rot := rl.MatrixRotateXYZ(s.Rotation)
	out := make([]Corner, 0, 8)
	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			for _, sz := range []float32{-1, 1} {
				local := rl.NewVector3(sx*h.X, sy*h.Y, sz*h.Z)
				out = append(out, Corner{Position: rl.Vector3Add(s.Position, rl.Vector3Transform(local, rot))})
			}
		}
	}
	return out
}

// Edges derives the solid's world-space edges: 12 for a box (4 bottom, 4 top,
// 4 vertical), the 4 border edges for a plane, none for cylinder/disc.
func Edges(s *primitives.Solid) []Edge {
	if !primitives.KindCaps(s.Kind).HasDiscreteEdges {
		return nil
	}
	h := s.HalfExtents()
	rot := rl.MatrixRotateXYZ(s.Rotation)
	at := func(sx, sy, sz float32) rl.Vector3 {
		local := rl.NewVector3(sx*h.X, sy*h.Y, sz*h.Z)
		return rl.Vector3Add(s.Position, rl.Vector3Transform(local, rot))
	}
	edge := func(a, b rl.Vector3) Edge {
		mid := rl.Vector3Scale(rl.Vector3Add(a, b), 0.5)
		n, ok := SafeNormalize(rl.Vector3Subtract(mid, s.Position))
		if !ok {
			n = rl.NewVector3(0, 1, 0)
		}
		return Edge{Start: a, End: b, Normal: n}
	}

	if s.Kind == primitives.KindPlane {
		return []Edge{
			edge(at(-1, 0, -1), at(1, 0, -1)),
			edge(at(1, 0, -1), at(1, 0, 1)),
			edge(at(1, 0, 1), at(-1, 0, 1)),
			edge(at(-1, 0, 1), at(-1, 0, -1)),
		}
	}

	out := make([]Edge, 0, 12)
	// Bottom and top rings.
	for _, sy := range []float32{-1, 1} {
		out = append(out,
			edge(at(-1, sy, -1), at(1, sy, -1)),
			edge(at(1, sy, -1), at(1, sy, 1)),
			edge(at(1, sy, 1), at(-1, sy, 1)),
			edge(at(-1, sy, 1), at(-1, sy, -1)),
		)
	}
	// Verticals.
	for _, sx := range []float32{-1, 1} {
		for _, sz := range []float32{-1, 1} {
			out = append(out, edge(at(sx, -1, sz), at(sx, 1, sz)))
		}
	}
	return out
}

// Faces derives the solid's planar faces: 6 cardinal faces for a box, the
// single top face for a plane, top and bottom for cylinder/disc.
func Faces(s *primitives.Solid) []Face {
	h := s.HalfExtents()
	rot := rl.MatrixRotateXYZ(s.Rotation)
	face := func(idx int) Face {
		dir := faceDirs[idx]
		offset := rl.NewVector3(dir.X*h.X, dir.Y*h.Y, dir.Z*h.Z)
		return Face{
			Normal: rl.Vector3Transform(dir, rot),
			Anchor: rl.Vector3Add(s.Position, rl.Vector3Transform(offset, rot)),
			Solid:  s,
			Index:  idx,
		}
	}
	switch s.Kind {
	case primitives.KindBox:
		return []Face{face(0), face(1), face(2), face(3), face(4), face(5)}
	case primitives.KindPlane:
		return []Face{face(2)}
	case primitives.KindCylinder, primitives.KindDisc:
		return []Face{face(2), face(3)}
	}
	return nil
}

// FaceByNormal returns the solid's face whose outward normal best matches dir
// (largest dot product). ok is false when the solid exposes no faces.
func FaceByNormal(s *primitives.Solid, dir rl.Vector3) (Face, bool) {
	faces := Faces(s)
	if len(faces) == 0 {
		return Face{}, false
	}
	best := faces[0]
	bestDot := rl.Vector3DotProduct(dir, best.Normal)
	for _, f := range faces[1:] {
		if d := rl.Vector3DotProduct(dir, f.Normal); d > bestDot {
			best, bestDot = f, d
		}
	}
	return best, true
}
