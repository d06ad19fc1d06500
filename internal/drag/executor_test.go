package drag

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cad-engine/internal/geometry"
	"cad-engine/internal/primitives"
	"cad-engine/internal/snap"
	"cad-engine/internal/view"
)

// frontCam looks down -Z: screen X maps to world +X, screen Y to world -Y.
func frontCam() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(0, 0, 20),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

func boxAt(id string, pos rl.Vector3) *primitives.Solid {
	return &primitives.Solid{
		ID:         id,
		Kind:       primitives.KindBox,
		Dimensions: primitives.Dimensions{Width: 2, Height: 2, Depth: 2},
		Position:   pos,
	}
}

func faceOf(t *testing.T, s *primitives.Solid, dir rl.Vector3) geometry.Face {
	t.Helper()
	f, ok := geometry.FaceByNormal(s, dir)
	require.True(t, ok)
	return f
}

// pixelsFor returns the dx that produces the given world scalar in
// constrained mode.
func pixelsFor(world float32) float32 {
	return world / view.ConstrainedSensitivity
}

func newExecutor(solids ...*primitives.Solid) *Executor {
	e := &Executor{}
	e.Solids = func() []*primitives.Solid { return solids }
	return e
}

func TestPushPullAnchorsOppositeFace(t *testing.T) {
	target := boxAt("t", rl.Vector3{})
	e := newExecutor(target)

	// Grab the right (+X) face and pull it +1 along +X.
	require.True(t, e.BeginPushPull(target, faceOf(t, target, rl.NewVector3(1, 0, 0)), rl.Vector2{}))
	e.Update(frontCam(), rl.NewVector2(pixelsFor(1), 0), 900)
	e.Commit()

	assert.InDelta(t, 3, target.Dimensions.Width, 1e-4)
	// Left face stays fixed; right face moves by +1.
	assert.InDelta(t, -1, target.Position.X-target.Dimensions.Width/2, 1e-4)
	assert.InDelta(t, 2, target.Position.X+target.Dimensions.Width/2, 1e-4)
	// Other dimensions untouched.
	assert.InDelta(t, 2, target.Dimensions.Height, 1e-6)
	assert.InDelta(t, 2, target.Dimensions.Depth, 1e-6)
}

func TestPushPullShrinkFromNegativeSide(t *testing.T) {
	target := boxAt("t", rl.Vector3{})
	e := newExecutor(target)

	// Grab the left (-X) face and push it inward (screen-right shrinks,
	// because the face normal points screen-left).
	require.True(t, e.BeginPushPull(target, faceOf(t, target, rl.NewVector3(-1, 0, 0)), rl.Vector2{}))
	e.Update(frontCam(), rl.NewVector2(pixelsFor(0.5), 0), 900)
	e.Commit()

	assert.InDelta(t, 1.5, target.Dimensions.Width, 1e-4)
	// Right face stays fixed at +1.
	assert.InDelta(t, 1, target.Position.X+target.Dimensions.Width/2, 1e-4)
}

func TestPushPullClampsAtMinimumDimension(t *testing.T) {
	target := boxAt("t", rl.Vector3{})
	e := newExecutor(target)

	require.True(t, e.BeginPushPull(target, faceOf(t, target, rl.NewVector3(1, 0, 0)), rl.Vector2{}))
	e.Update(frontCam(), rl.NewVector2(pixelsFor(-50), 0), 900)

	assert.InDelta(t, primitives.MinDimension, target.Dimensions.Width, 1e-6)
	// The opposite face still has not moved.
	assert.InDelta(t, -1, target.Position.X-target.Dimensions.Width/2, 1e-4)
	e.Cancel()
}

func TestCancelRestoresSnapshotExactly(t *testing.T) {
	target := boxAt("t", rl.NewVector3(2, 1, -3))
	wantDims := target.Dimensions
	wantPos := target.Position
	e := newExecutor(target)

	require.True(t, e.BeginPushPull(target, faceOf(t, target, rl.NewVector3(0, 1, 0)), rl.Vector2{}))
	// Any sequence of pointer moves.
	for _, dy := range []float32{40, -300, 1200, 7} {
		e.Update(frontCam(), rl.NewVector2(0, dy), 900)
	}
	e.Cancel()

	assert.Equal(t, wantDims, target.Dimensions)
	assert.Equal(t, wantPos, target.Position)
	assert.Equal(t, StateIdle, e.State())
}

func TestPushPullPromotesPlaneAndCancelRestoresKind(t *testing.T) {
	target := &primitives.Solid{
		ID:         "sheet",
		Kind:       primitives.KindPlane,
		Dimensions: primitives.Dimensions{Width: 2, Depth: 2},
		Position:   rl.NewVector3(0, 0, 0),
	}
	e := newExecutor(target)

	f, ok := geometry.FaceByNormal(target, rl.NewVector3(0, 1, 0))
	require.True(t, ok)
	require.True(t, e.BeginPushPull(target, f, rl.Vector2{}))
	assert.Equal(t, primitives.KindBox, target.Kind)

	e.Cancel()
	assert.Equal(t, primitives.KindPlane, target.Kind)
	assert.Equal(t, primitives.Dimensions{Width: 2, Depth: 2}, target.Dimensions)
}

func TestPushPullPromotesDiscToCylinder(t *testing.T) {
	target := &primitives.Solid{
		ID:         "coin",
		Kind:       primitives.KindDisc,
		Dimensions: primitives.Dimensions{Radius: 1},
	}
	e := newExecutor(target)

	f, ok := geometry.FaceByNormal(target, rl.NewVector3(0, 1, 0))
	require.True(t, ok)
	require.True(t, e.BeginPushPull(target, f, rl.Vector2{}))
	assert.Equal(t, primitives.KindCylinder, target.Kind)

	// Pull the top up by 1: height grows from the clamped minimum.
	e.Update(frontCam(), rl.NewVector2(0, -pixelsFor(1)), 900)
	e.Commit()
	assert.InDelta(t, 1+primitives.MinDimension, target.Dimensions.Height, 1e-3)
}

func TestCylinderRejectsSideExtrusion(t *testing.T) {
	target := &primitives.Solid{
		ID:         "cyl",
		Kind:       primitives.KindCylinder,
		Dimensions: primitives.Dimensions{Radius: 1, Height: 2},
	}
	e := newExecutor(target)

	// A sideways face normal has no extrudable axis on a cylinder.
	sideways := geometry.Face{Normal: rl.NewVector3(1, 0, 0), Anchor: rl.NewVector3(1, 0, 0), Solid: target}
	assert.False(t, e.BeginPushPull(target, sideways, rl.Vector2{}))
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, primitives.KindCylinder, target.Kind)
}

func TestMoveFreeAppliesUniformDeltaAndSuppressesVertical(t *testing.T) {
	a := boxAt("a", rl.NewVector3(0, 1, 0))
	b := boxAt("b", rl.NewVector3(3, 1, 0))
	e := newExecutor(a, b)

	require.True(t, e.BeginMoveFree([]*primitives.Solid{a, b}, nil, rl.Vector2{}, a.Position))
	e.Update(frontCam(), rl.NewVector2(120, 80), 900)

	// Same delta for both targets.
	assert.InDelta(t, a.Position.X, b.Position.X-3, 1e-5)
	assert.Positive(t, a.Position.X)
	// Ground-plane objects do not rise.
	assert.InDelta(t, 1, a.Position.Y, 1e-6)
	assert.InDelta(t, 1, b.Position.Y, 1e-6)
	e.Cancel()

	assert.Equal(t, rl.NewVector3(0, 1, 0), a.Position)
	assert.Equal(t, rl.NewVector3(3, 1, 0), b.Position)
}

func TestCornerGrabSnapAlignsGrabbedCorner(t *testing.T) {
	// A centered at origin: grabbed corner (1,1,1). Sibling B has a corner at
	// exactly (5,1,1).
	a := boxAt("a", rl.Vector3{})
	b := boxAt("b", rl.NewVector3(6, 2, 2))
	e := newExecutor(a, b)

	grab := rl.NewVector3(1, 1, 1)
	require.True(t, e.BeginMoveFree([]*primitives.Solid{a}, &grab, rl.Vector2{}, grab))

	// Move right so the grabbed corner lands within snap range of (5,1,1).
	cam := frontCam()
	dist := rl.Vector3Distance(cam.Position, grab)
	pixelToWorld := 2 * math32.Tan(cam.Fovy*math32.Pi/360) * dist / 900
	dx := 3.8 / pixelToWorld
	e.Update(cam, rl.NewVector2(dx, 0), 900)

	s := e.Session()
	require.NotNil(t, s)
	require.NotNil(t, s.SnapTarget)
	assert.Less(t, s.SnapTarget.Error, float32(0.5))

	e.Commit()

	// The grabbed corner, not A's center, coincides with B's corner.
	foundCorner := false
	for _, c := range geometry.Corners(a) {
		if rl.Vector3Distance(c.Position, rl.NewVector3(5, 1, 1)) < 1e-4 {
			foundCorner = true
		}
	}
	assert.True(t, foundCorner, "grabbed corner did not land on (5,1,1); a at %v", a.Position)
	assert.InDelta(t, 4, a.Position.X, 1e-4)
	assert.InDelta(t, 0, a.Position.Y, 1e-4)
	assert.InDelta(t, 0, a.Position.Z, 1e-4)
}

func TestMoveAxisConstrainsToFaceNormal(t *testing.T) {
	a := boxAt("a", rl.NewVector3(0, 1, 0))
	e := newExecutor(a)

	require.True(t, e.BeginMoveAxis([]*primitives.Solid{a}, faceOf(t, a, rl.NewVector3(1, 0, 0)), rl.Vector2{}))
	// Drag diagonally; motion must stay on the X axis.
	e.Update(frontCam(), rl.NewVector2(pixelsFor(2), 500), 900)

	assert.InDelta(t, 2, a.Position.X, 1e-4)
	assert.InDelta(t, 1, a.Position.Y, 1e-6)
	assert.InDelta(t, 0, a.Position.Z, 1e-6)
	e.Commit()
}

func TestSnapTargetAlwaysUnderThreshold(t *testing.T) {
	a := boxAt("a", rl.Vector3{})
	b := boxAt("b", rl.NewVector3(40, 0, 0))
	e := newExecutor(a, b)

	require.True(t, e.BeginMoveFree([]*primitives.Solid{a}, nil, rl.Vector2{}, a.Position))
	e.Update(frontCam(), rl.NewVector2(30, 0), 900)

	s := e.Session()
	require.NotNil(t, s)
	if s.SnapTarget != nil {
		assert.Less(t, s.SnapTarget.Error, snap.DefaultThreshold)
	} else {
		// Far from every sibling feature: no target may be proposed.
		assert.Nil(t, s.SnapTarget)
	}
	e.Cancel()
}

func TestTargetRemovedMidDragDiscardsSession(t *testing.T) {
	a := boxAt("a", rl.Vector3{})
	solids := []*primitives.Solid{a}
	e := &Executor{}
	e.Solids = func() []*primitives.Solid { return solids }

	require.True(t, e.BeginMoveFree([]*primitives.Solid{a}, nil, rl.Vector2{}, a.Position))
	solids = nil // removed from the scene while the session is open
	e.Update(frontCam(), rl.NewVector2(100, 0), 900)

	assert.Equal(t, StateIdle, e.State())
	// No further mutation was attempted.
	assert.Equal(t, rl.Vector3{}, a.Position)
}

func TestCommitNotifiesGeometryChanged(t *testing.T) {
	a := boxAt("a", rl.Vector3{})
	e := newExecutor(a)
	var notified []*primitives.Solid
	e.OnGeometryChanged = func(targets []*primitives.Solid) { notified = targets }

	require.True(t, e.BeginMoveFree([]*primitives.Solid{a}, nil, rl.Vector2{}, a.Position))
	e.Update(frontCam(), rl.NewVector2(50, 0), 900)
	e.Commit()

	require.Len(t, notified, 1)
	assert.Equal(t, "a", notified[0].ID)
	assert.Equal(t, StateIdle, e.State())
}

func TestCancelWhenIdleIsNoOp(t *testing.T) {
	e := newExecutor()
	e.Cancel()
	e.Commit()
	assert.Equal(t, StateIdle, e.State())
	assert.Nil(t, e.Session())
}

func TestOnlyOneSessionAtATime(t *testing.T) {
	a := boxAt("a", rl.Vector3{})
	b := boxAt("b", rl.NewVector3(5, 0, 0))
	e := newExecutor(a, b)

	require.True(t, e.BeginMoveFree([]*primitives.Solid{a}, nil, rl.Vector2{}, a.Position))
	assert.False(t, e.BeginPushPull(b, faceOf(t, b, rl.NewVector3(1, 0, 0)), rl.Vector2{}))
	assert.False(t, e.BeginMoveFree([]*primitives.Solid{b}, nil, rl.Vector2{}, b.Position))
	e.Cancel()
}
