// Package highlight builds and draws the transient manipulation visuals:
// corner/edge/face markers for the hovered feature and the snap preview.
// Markers live in lockstep with hover and snap state: they are rebuilt every
// frame and vanish the frame their feature stops qualifying.
package highlight

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/drag"
	"cad-engine/internal/hittest"
	"cad-engine/internal/view"
)

// markerRadiusPx is the on-screen size of corner markers; converted per point
// to world units so markers read the same at any zoom.
const markerRadiusPx = float32(6)

var (
	hoverColor = rl.NewColor(255, 200, 60, 255)
	snapColor  = rl.NewColor(80, 230, 120, 255)
	faceColor  = rl.NewColor(255, 200, 60, 90)
)

// MarkerKind selects how a marker is drawn.
type MarkerKind int

const (
	PointMarker MarkerKind = iota
	SegmentMarker
	FaceMarker
)

// Marker is one transient visual. Radius is in world units, already scaled
// from markerRadiusPx at the marker's position.
type Marker struct {
	Kind   MarkerKind
	Point  rl.Vector3
	End    rl.Vector3 // SegmentMarker only
	Normal rl.Vector3 // FaceMarker only
	Radius float32
	Color  rl.Color
}

// Build derives this frame's markers from the hovered feature and the open
// session's snap target. Pure: no GPU state is touched.
func Build(cam rl.Camera3D, hover hittest.Hit, session *drag.Session, viewportHeightPx float32) []Marker {
	var out []Marker
	scale := func(p rl.Vector3) float32 {
		return view.WorldRadius(cam, p, markerRadiusPx, viewportHeightPx)
	}

	switch hover.Kind {
	case hittest.HitCorner:
		out = append(out, Marker{
			Kind:   PointMarker,
			Point:  hover.Corner.Position,
			Radius: scale(hover.Corner.Position),
			Color:  hoverColor,
		})
	case hittest.HitEdge:
		out = append(out, Marker{
			Kind:   SegmentMarker,
			Point:  hover.Edge.Start,
			End:    hover.Edge.End,
			Radius: scale(hover.EdgePoint),
			Color:  hoverColor,
		})
	case hittest.HitFace:
		out = append(out, Marker{
			Kind:   FaceMarker,
			Point:  hover.Face.Anchor,
			Normal: hover.Face.Normal,
			Radius: scale(hover.Face.Anchor) * 4,
			Color:  faceColor,
		})
	}

	if session != nil && session.SnapTarget != nil {
		c := session.SnapTarget
		out = append(out, Marker{
			Kind:   PointMarker,
			Point:  c.Point,
			Radius: scale(c.Point) * 1.5,
			Color:  snapColor,
		})
	}
	return out
}

// Draw renders markers. Must be called between BeginMode3D and EndMode3D.
func Draw(markers []Marker) {
	for _, m := range markers {
		switch m.Kind {
		case PointMarker:
			rl.DrawSphere(m.Point, m.Radius, m.Color)
		case SegmentMarker:
			rl.DrawCylinderEx(m.Point, m.End, m.Radius/2, m.Radius/2, 6, m.Color)
		case FaceMarker:
			rl.DrawCircle3D(m.Point, m.Radius, faceRotationAxis(m.Normal), 90, m.Color)
		}
	}
}

// faceRotationAxis gives DrawCircle3D an axis that tilts the circle into the
// face plane (the circle is drawn in XY by default).
func faceRotationAxis(normal rl.Vector3) rl.Vector3 {
	axis := rl.Vector3CrossProduct(rl.NewVector3(0, 0, 1), normal)
	if axis.X == 0 && axis.Y == 0 && axis.Z == 0 {
		return rl.NewVector3(1, 0, 0)
	}
	return axis
}
