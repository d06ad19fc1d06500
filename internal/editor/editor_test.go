package editor

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cad-engine/internal/hittest"
	"cad-engine/internal/pick"
	"cad-engine/internal/primitives"
	"cad-engine/internal/view"
)

const viewportH = float32(900)

func frontCam() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(0, 0, 20),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

func newEditor() *Editor {
	return New(nil, 0.5, view.HitRadiusPx)
}

// pickSolid installs a pick source that always resolves to the given hit,
// regardless of pointer position.
func pickSolid(e *Editor, s *primitives.Solid, point, normal rl.Vector3, faceIndex int) {
	e.SetPickFunc(func(rl.Camera3D, rl.Vector2, []*primitives.Solid) (pick.Pick, bool) {
		return pick.Pick{Solid: s, Point: point, Normal: normal, FaceIndex: faceIndex}, true
	})
}

func pickNothing(e *Editor) {
	e.SetPickFunc(func(rl.Camera3D, rl.Vector2, []*primitives.Solid) (pick.Pick, bool) {
		return pick.Pick{}, false
	})
}

func addBox(e *Editor, pos rl.Vector3) *primitives.Solid {
	return e.AddSolid(primitives.KindBox, pos)
}

func TestPointerDownOnFaceOpensAxisMove(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)

	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	assert.True(t, e.Dragging())
	assert.True(t, e.Selection.Contains(a))

	// Diagonal motion stays on the face's axis.
	e.PointerMove(frontCam(), rl.NewVector2(100, 300), viewportH)
	assert.InDelta(t, 1, a.Position.X, 1e-4)
	assert.InDelta(t, 0, a.Position.Y, 1e-6)

	e.PointerUp()
	assert.False(t, e.Dragging())
}

func TestPointerDownOnCornerOpensFreeMove(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	// Pick lands just inside the corner's on-screen hit zone.
	pickSolid(e, a, rl.NewVector3(0.95, 0.95, 1), rl.NewVector3(0, 0, 1), 4)

	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	s := e.Executor.Session()
	require.NotNil(t, s)
	assert.True(t, s.HasGrab)
	assert.Equal(t, rl.NewVector3(1, 1, 1), s.GrabPoint)
	e.CancelDrag()
}

func TestMissClearsSelectionAndStartsNoDrag(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	e.Selection.Select(a)
	pickNothing(e)

	assert.False(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	assert.False(t, e.Dragging())
	assert.Zero(t, e.Selection.Len())
}

func TestMissKeepsSelectionWhenAdditive(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	e.Selection.Select(a)
	pickNothing(e)

	e.PointerDown(frontCam(), rl.Vector2{}, viewportH, true)
	assert.Equal(t, 1, e.Selection.Len())
}

func TestPushPullToolExtrudesFace(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	e.SetTool(hittest.ToolPushPull)
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)

	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	e.PointerMove(frontCam(), rl.NewVector2(100, 0), viewportH)
	e.PointerUp()

	assert.InDelta(t, 3, a.Dimensions.Width, 1e-4)
	assert.InDelta(t, -1, a.Position.X-a.Dimensions.Width/2, 1e-4)
}

func TestToolSwitchCancelsAndRollsBack(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)

	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	e.PointerMove(frontCam(), rl.NewVector2(250, 0), viewportH)
	require.NotEqual(t, float32(0), a.Position.X)

	e.SetTool(hittest.ToolPushPull)
	assert.False(t, e.Dragging())
	assert.Equal(t, rl.Vector3{}, a.Position)
	assert.Equal(t, hittest.ToolPushPull, e.Tool())
}

func TestSettingSameToolKeepsSession(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)

	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	e.SetTool(hittest.ToolMove)
	assert.True(t, e.Dragging())
	e.CancelDrag()
}

func TestMultiSelectDragMovesWholeGroup(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	b := addBox(e, rl.NewVector3(5, 0, 0))

	// Additive clicks build the selection {a, b}; the second one also opens the
	// drag since b's face qualifies.
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)
	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, true))
	e.PointerUp()

	pickSolid(e, b, rl.NewVector3(6, 0, 0), rl.NewVector3(1, 0, 0), 0)
	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, true))
	require.Equal(t, 2, e.Selection.Len())

	e.PointerMove(frontCam(), rl.NewVector2(100, 0), viewportH)
	assert.InDelta(t, 1, a.Position.X, 1e-4)
	assert.InDelta(t, 6, b.Position.X, 1e-4)
	e.PointerUp()
}

func TestPlainClickOnGroupMemberKeepsGroup(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	b := addBox(e, rl.NewVector3(5, 0, 0))
	e.Selection.Toggle(a)
	e.Selection.Toggle(b)

	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)
	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	assert.Equal(t, 2, e.Selection.Len())
	s := e.Executor.Session()
	require.NotNil(t, s)
	assert.Len(t, s.Targets, 2)
	e.CancelDrag()
}

func TestHoverClassifiesWhileIdle(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)

	e.PointerMove(frontCam(), rl.Vector2{}, viewportH)
	assert.Equal(t, hittest.HitFace, e.Hover().Kind)

	pickNothing(e)
	e.PointerMove(frontCam(), rl.Vector2{}, viewportH)
	assert.Equal(t, hittest.Miss, e.Hover().Kind)
}

func TestRemoveSolidPrunesSelectionAndDiscardsDrag(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)
	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))

	e.RemoveSolid(a.ID)
	assert.Empty(t, e.Solids)
	assert.Zero(t, e.Selection.Len())

	// The removal surfaces as an implicit cancel on the next pointer move.
	e.PointerMove(frontCam(), rl.NewVector2(100, 0), viewportH)
	assert.False(t, e.Dragging())
	assert.Equal(t, rl.Vector3{}, a.Position)
}

func TestCommitForwardsGeometryChanged(t *testing.T) {
	e := newEditor()
	a := addBox(e, rl.Vector3{})
	var notified []*primitives.Solid
	e.OnGeometryChanged = func(targets []*primitives.Solid) { notified = targets }
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)

	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	e.PointerMove(frontCam(), rl.NewVector2(50, 0), viewportH)
	e.PointerUp()

	require.Len(t, notified, 1)
	assert.Equal(t, a.ID, notified[0].ID)
}

func TestDragStateLine(t *testing.T) {
	e := newEditor()
	assert.Empty(t, e.DragStateLine())

	a := addBox(e, rl.Vector3{})
	pickSolid(e, a, rl.NewVector3(1, 0, 0), rl.NewVector3(1, 0, 0), 0)
	require.True(t, e.PointerDown(frontCam(), rl.Vector2{}, viewportH, false))
	assert.Contains(t, e.DragStateLine(), "move-axis")
	e.CancelDrag()
}
