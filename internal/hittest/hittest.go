// Package hittest classifies a pick result as a grab on a corner, an edge, or
// a face of the picked solid, with strict corner > edge > face precedence.
// Near a corner all three tests would pass at once; the corner is the most
// specific target, so it wins and the others are never evaluated.
package hittest

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/geometry"
	"cad-engine/internal/pick"
	"cad-engine/internal/primitives"
	"cad-engine/internal/view"
)

// Tool is the active manipulation tool. It decides what a grabbed face means:
// push/pull extrudes, move translates along the face normal.
type Tool int

const (
	ToolMove Tool = iota
	ToolPushPull
)

func (t Tool) String() string {
	if t == ToolPushPull {
		return "pushpull"
	}
	return "move"
}

// Kind is the feature class a pointer position resolved to. Exactly one class
// is reported per classification.
type Kind int

const (
	Miss Kind = iota
	HitCorner
	HitEdge
	HitFace
)

// Hit is the classification result. Corner is set for HitCorner; Edge and
// EdgePoint (the clamped closest point on the segment) for HitEdge; Face for
// HitFace.
type Hit struct {
	Kind      Kind
	Solid     *primitives.Solid
	Corner    geometry.Corner
	Edge      geometry.Edge
	EdgePoint rl.Vector3
	Face      geometry.Face
}

// Classify resolves a pick against the picked solid's derived features. The
// hit zone is screen-space-invariant: hitRadiusPx is converted to a world
// radius at the hit point, so grabbing feels the same at any zoom. Corners are
// tested first; if any is within tolerance, edges and faces are skipped.
// Edges use clamped point-to-segment distance; zero-length edges are skipped.
// A face is reported only when the solid's kind is manipulable with the active
// tool; otherwise the result is a Miss and no drag starts.
func Classify(cam rl.Camera3D, p pick.Pick, tool Tool, hitRadiusPx, viewportHeightPx float32) Hit {
	if p.Solid == nil || !primitives.Manipulable(p.Solid.Kind) {
		return Hit{Kind: Miss}
	}
	tol := view.WorldRadius(cam, p.Point, hitRadiusPx, viewportHeightPx)

	if c, ok := nearestCorner(p.Solid, p.Point, tol); ok {
		return Hit{Kind: HitCorner, Solid: p.Solid, Corner: c}
	}
	if e, pt, ok := nearestEdge(p.Solid, p.Point, tol); ok {
		return Hit{Kind: HitEdge, Solid: p.Solid, Edge: e, EdgePoint: pt}
	}
	if tool == ToolPushPull && !primitives.KindCaps(p.Solid.Kind).Extrudable {
		return Hit{Kind: Miss}
	}
	face, ok := faceForPick(p)
	if !ok {
		return Hit{Kind: Miss}
	}
	return Hit{Kind: HitFace, Solid: p.Solid, Face: face}
}

// nearestCorner returns the corner closest to point if it is within tol.
func nearestCorner(s *primitives.Solid, point rl.Vector3, tol float32) (geometry.Corner, bool) {
	var best geometry.Corner
	bestDist := tol
	found := false
	for _, c := range geometry.Corners(s) {
		if d := rl.Vector3Distance(point, c.Position); d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// nearestEdge returns the edge closest to point if it is within tol, plus the
// clamped closest point on that edge.
func nearestEdge(s *primitives.Solid, point rl.Vector3, tol float32) (geometry.Edge, rl.Vector3, bool) {
	var best geometry.Edge
	var bestPoint rl.Vector3
	bestDist := tol
	found := false
	for _, e := range geometry.Edges(s) {
		if rl.Vector3Distance(e.Start, e.End) == 0 {
			continue
		}
		d, pt := geometry.DistanceToSegment(point, e.Start, e.End)
		if d < bestDist {
			best, bestPoint, bestDist, found = e, pt, d, true
		}
	}
	return best, bestPoint, found
}

// faceForPick resolves the picked face from the pick's face index, falling
// back to the face whose normal best matches the pick normal.
func faceForPick(p pick.Pick) (geometry.Face, bool) {
	for _, f := range geometry.Faces(p.Solid) {
		if f.Index == p.FaceIndex {
			return f, true
		}
	}
	return geometry.FaceByNormal(p.Solid, p.Normal)
}
