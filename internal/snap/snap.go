// Package snap proposes alignment targets during a drag: the lowest-error
// corner, edge, or face of a sibling solid within the snap tolerance of the
// dragged reference point. Candidates are transient and recomputed on every
// pointer move; only the winner survives as the session's snap target.
package snap

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/geometry"
	"cad-engine/internal/primitives"
)

// DefaultThreshold is the snap acceptance distance in world units. It is
// deliberately independent of the pixel-based hit-test tolerance.
const DefaultThreshold = float32(0.5)

// cardinalDot is cos(15°): a face candidate is offered only when its normal is
// within 15° of a world axis. Oblique face-to-face snapping is not offered.
var cardinalDot = math32.Cos(15 * math32.Pi / 180)

// Kind is the feature class of a snap candidate.
type Kind int

const (
	CornerSnap Kind = iota
	EdgeSnap
	FaceSnap
)

func (k Kind) String() string {
	switch k {
	case CornerSnap:
		return "corner"
	case EdgeSnap:
		return "edge"
	default:
		return "face"
	}
}

// Candidate is a proposed alignment: move the dragged reference point onto
// Point. Error is the world distance between them and is always below the
// resolver's threshold.
type Candidate struct {
	Kind  Kind
	Point rl.Vector3
	Solid *primitives.Solid
	Error float32
}

// Resolver scans sibling solids for snap candidates.
type Resolver struct {
	// Threshold is the world-space acceptance distance. Zero means
	// DefaultThreshold.
	Threshold float32
}

func (r Resolver) threshold() float32 {
	if r.Threshold > 0 {
		return r.Threshold
	}
	return DefaultThreshold
}

// Resolve scans every solid except the dragged ones and returns the candidate
// whose point lies closest to ref (the dragged feature's projected position).
// Ties on error are broken deterministically: nearest to dragStart first, then
// lowest solid ID, so the result does not depend on traversal order.
func (r Resolver) Resolve(solids []*primitives.Solid, dragged map[string]bool, ref, dragStart rl.Vector3) (Candidate, bool) {
	limit := r.threshold()
	var best Candidate
	found := false

	consider := func(c Candidate) {
		if c.Error >= limit {
			return
		}
		if !found || better(c, best, dragStart) {
			best = c
			found = true
		}
	}

	for _, s := range solids {
		if s == nil || dragged[s.ID] || !primitives.Manipulable(s.Kind) {
			continue
		}
		for _, corner := range geometry.Corners(s) {
			consider(Candidate{
				Kind:  CornerSnap,
				Point: corner.Position,
				Solid: s,
				Error: rl.Vector3Distance(ref, corner.Position),
			})
		}
		for _, e := range geometry.Edges(s) {
			d, pt := geometry.DistanceToSegment(ref, e.Start, e.End)
			consider(Candidate{Kind: EdgeSnap, Point: pt, Solid: s, Error: d})
		}
		for _, f := range geometry.Faces(s) {
			if !cardinal(f.Normal) {
				continue
			}
			consider(Candidate{
				Kind:  FaceSnap,
				Point: f.Anchor,
				Solid: s,
				Error: rl.Vector3Distance(ref, f.Anchor),
			})
		}
	}
	return best, found
}

// better reports whether a beats b: smaller error, then nearer to the drag
// start point, then lower solid ID.
func better(a, b Candidate, dragStart rl.Vector3) bool {
	if a.Error != b.Error {
		return a.Error < b.Error
	}
	da := rl.Vector3Distance(a.Point, dragStart)
	db := rl.Vector3Distance(b.Point, dragStart)
	if da != db {
		return da < db
	}
	return a.Solid.ID < b.Solid.ID
}

// cardinal reports whether n is within 15° of a world axis.
func cardinal(n rl.Vector3) bool {
	u, ok := geometry.SafeNormalize(n)
	if !ok {
		return false
	}
	return math32.Abs(u.X) > cardinalDot || math32.Abs(u.Y) > cardinalDot || math32.Abs(u.Z) > cardinalDot
}
