package drag

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"

	"cad-engine/internal/primitives"
	"cad-engine/internal/snap"
)

// Mode selects which manipulation a session performs. Modes are mutually
// exclusive; at most one session is open at a time.
type Mode int

const (
	// ModePushPull extrudes the grabbed face: one dimension grows or shrinks
	// while the opposite face stays fixed.
	ModePushPull Mode = iota
	// ModeMoveFree translates every target on the camera plane, anchored at
	// the grabbed corner/edge point when one was grabbed.
	ModeMoveFree
	// ModeMoveAxis translates every target along the grabbed face's normal.
	ModeMoveAxis
)

func (m Mode) String() string {
	switch m {
	case ModePushPull:
		return "pushpull"
	case ModeMoveFree:
		return "move"
	default:
		return "move-axis"
	}
}

// State is the executor's explicit lifecycle: Idle until a qualifying
// pointer-down opens a session, Dragging until release (commit) or Escape
// (cancel) returns it to Idle.
type State int

const (
	StateIdle State = iota
	StateDragging
)

// solidSnapshot is the pre-drag copy of one target, taken at session start and
// used verbatim by rollback. Kind is included because extrusion may promote a
// flat solid (plane to box, disc to cylinder) and cancel must undo that too.
type solidSnapshot struct {
	ID         string
	Kind       primitives.Kind
	Dimensions primitives.Dimensions
	Position   rl.Vector3
}

// Session is the transient state of one pointer-down-to-release gesture.
type Session struct {
	Mode    Mode
	Targets []*primitives.Solid

	snapshot []solidSnapshot

	// StartPointer is the screen position at pointer-down; per-move deltas are
	// measured from it.
	StartPointer rl.Vector2
	// StartWorld is the world point under the pointer at drag start. Snap
	// tie-breaking prefers candidates near it.
	StartWorld rl.Vector3

	// GrabPoint is the world point of the grabbed corner/edge feature, when
	// one was grabbed. On commit with a snap target, that exact point is
	// aligned to the candidate rather than the object center.
	GrabPoint rl.Vector3
	HasGrab   bool

	// refStart is the reference point deltas are anchored to: the grab point
	// when set, the primary target's center otherwise.
	refStart rl.Vector3
	// curRef is refStart plus the currently applied delta (the projected face
	// anchor for push/pull); it is what the snap resolver measures against.
	curRef rl.Vector3

	// Push/pull only: the grabbed face's world normal, its dominant axis and
	// side sign, and the target's pre-drag size/center along that axis.
	normal      rl.Vector3
	axis        int
	sign        float32
	initAxisDim float32
	initAxisPos float32

	// SnapTarget is the live minimal-error candidate, nil when nothing is
	// within threshold. Refreshed on every pointer move.
	SnapTarget *snap.Candidate
}

// takeSnapshot deep-copies the rollback state of every target.
func takeSnapshot(targets []*primitives.Solid) []solidSnapshot {
	out := make([]solidSnapshot, 0, len(targets))
	for _, t := range targets {
		var ss solidSnapshot
		_ = copier.CopyWithOption(&ss, t, copier.Option{DeepCopy: true})
		out = append(out, ss)
	}
	return out
}

// restoreSnapshot writes the snapshot back onto the targets. It is a pure
// function of the snapshot: any sequence of moves followed by restore yields
// exactly the pre-drag kind, dimensions, and position.
func restoreSnapshot(targets []*primitives.Solid, snapshot []solidSnapshot) {
	for i, t := range targets {
		if i >= len(snapshot) || t == nil {
			break
		}
		t.Kind = snapshot[i].Kind
		t.Dimensions = snapshot[i].Dimensions
		t.Position = snapshot[i].Position
	}
}
