// Package drag owns the manipulation state machines: face extrusion
// (push/pull), unconstrained whole-object move anchored at a grabbed feature,
// and single-axis face-constrained move. A session opens on a qualifying
// pointer-down, applies pointer deltas and snap previews per move, commits on
// release, and rolls back to its pre-drag snapshot on cancel.
package drag

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/geometry"
	"cad-engine/internal/primitives"
	"cad-engine/internal/snap"
	"cad-engine/internal/view"
)

// Executor runs at most one drag session at a time and mutates target
// geometry in place. The scene observes mutated dimensions/positions and
// rebuilds display geometry on its own.
type Executor struct {
	// Resolver proposes snap candidates while a session is open.
	Resolver snap.Resolver
	// Solids returns the scene's current solids. Used to scan snap siblings
	// and to detect a target removed mid-drag (treated as implicit cancel).
	Solids func() []*primitives.Solid
	// OnGeometryChanged, when set, is called after a commit so the layout
	// collaborator can repropagate. Not called on cancel.
	OnGeometryChanged func(targets []*primitives.Solid)

	state   State
	session *Session
}

// State returns the executor's lifecycle state.
func (e *Executor) State() State { return e.state }

// Active reports whether a session is open.
func (e *Executor) Active() bool { return e.state == StateDragging }

// Session returns the open session, nil when idle.
func (e *Executor) Session() *Session {
	if e.state != StateDragging {
		return nil
	}
	return e.session
}

// BeginPushPull opens an extrusion session on the given face of target. Flat
// kinds are promoted once (plane to box, disc to cylinder) before extrusion,
// since extrusion needs a depth axis; the snapshot is taken first so cancel
// undoes the promotion. Returns false when the kind cannot extrude along the
// face's dominant axis; no session opens and nothing is mutated.
func (e *Executor) BeginPushPull(target *primitives.Solid, face geometry.Face, pointer rl.Vector2) bool {
	if e.state != StateIdle || target == nil {
		return false
	}
	caps := primitives.KindCaps(target.Kind)
	if !caps.Extrudable {
		return false
	}
	axis, sign := geometry.DominantAxis(face.Normal)

	snapshot := takeSnapshot([]*primitives.Solid{target})
	if caps.PromotesTo != "" {
		target.Kind = caps.PromotesTo
		target.ClampDimensions()
		caps = primitives.KindCaps(target.Kind)
	}
	if !caps.ExtrudeAxes[axis] {
		restoreSnapshot([]*primitives.Solid{target}, snapshot)
		return false
	}

	e.session = &Session{
		Mode:         ModePushPull,
		Targets:      []*primitives.Solid{target},
		snapshot:     snapshot,
		StartPointer: pointer,
		StartWorld:   face.Anchor,
		refStart:     face.Anchor,
		curRef:       face.Anchor,
		normal:       face.Normal,
		axis:         axis,
		sign:         sign,
		initAxisDim:  target.Dimension(axis),
		initAxisPos:  geometry.Component(target.Position, axis),
	}
	e.state = StateDragging
	return true
}

// BeginMoveFree opens an unconstrained move on the targets. grabPoint, when
// non-nil, is the world point of the grabbed corner/edge: deltas anchor to it
// and a snap commit aligns that exact point to the candidate, so dragging a
// corner feels like dragging that corner rather than recentering the object.
func (e *Executor) BeginMoveFree(targets []*primitives.Solid, grabPoint *rl.Vector3, pointer rl.Vector2, startWorld rl.Vector3) bool {
	if e.state != StateIdle || len(targets) == 0 {
		return false
	}
	s := &Session{
		Mode:         ModeMoveFree,
		Targets:      targets,
		snapshot:     takeSnapshot(targets),
		StartPointer: pointer,
		StartWorld:   startWorld,
	}
	if grabPoint != nil {
		s.GrabPoint = *grabPoint
		s.HasGrab = true
		s.refStart = *grabPoint
	} else {
		s.refStart = targets[0].Position
	}
	s.curRef = s.refStart
	e.session = s
	e.state = StateDragging
	return true
}

// BeginMoveAxis opens a face-constrained move: every target translates along
// the grabbed face's world normal only.
func (e *Executor) BeginMoveAxis(targets []*primitives.Solid, face geometry.Face, pointer rl.Vector2) bool {
	if e.state != StateIdle || len(targets) == 0 {
		return false
	}
	e.session = &Session{
		Mode:         ModeMoveAxis,
		Targets:      targets,
		snapshot:     takeSnapshot(targets),
		StartPointer: pointer,
		StartWorld:   face.Anchor,
		refStart:     face.Anchor,
		curRef:       face.Anchor,
		normal:       face.Normal,
	}
	e.state = StateDragging
	return true
}

// Update applies the pointer position to the open session: project the
// displacement, mutate geometry, and refresh the snap preview. A target
// removed from the scene mid-drag discards the session without further
// mutation. No-op when idle.
func (e *Executor) Update(cam rl.Camera3D, pointer rl.Vector2, viewportHeightPx float32) {
	if e.state != StateDragging {
		return
	}
	s := e.session
	if !e.targetsAlive(s) {
		e.discard()
		return
	}
	dx := pointer.X - s.StartPointer.X
	dy := pointer.Y - s.StartPointer.Y

	switch s.Mode {
	case ModePushPull:
		scalar := view.ConstrainedScalar(cam, s.normal, dx, dy)
		e.applyExtrusion(s, s.initAxisDim+scalar)
	case ModeMoveFree:
		delta := view.Unconstrained(cam, dx, dy, s.refStart, viewportHeightPx)
		e.applyTranslation(s, delta)
	case ModeMoveAxis:
		delta := view.Constrained(cam, s.normal, dx, dy)
		e.applyTranslation(s, delta)
	}

	e.refreshSnap(s)
}

// applyExtrusion resizes the target along the session axis so the grabbed
// face moves and the opposite face stays fixed. dim is clamped to the minimum
// dimension before the coupled position update, so the anchor never drifts.
func (e *Executor) applyExtrusion(s *Session, dim float32) {
	if dim < primitives.MinDimension {
		dim = primitives.MinDimension
	}
	t := s.Targets[0]
	t.SetDimension(s.axis, dim)
	newPos := s.initAxisPos + s.sign*(dim-s.initAxisDim)/2
	t.Position = geometry.WithComponent(t.Position, s.axis, newPos)
	if f, ok := geometry.FaceByNormal(t, s.normal); ok {
		s.curRef = f.Anchor
	}
}

// applyTranslation adds delta to every target's snapshot position.
func (e *Executor) applyTranslation(s *Session, delta rl.Vector3) {
	for i, t := range s.Targets {
		t.Position = rl.Vector3Add(s.snapshot[i].Position, delta)
	}
	s.curRef = rl.Vector3Add(s.refStart, delta)
}

// refreshSnap recomputes the session's snap target from the current reference
// point. The previous candidate is discarded every move; only a fresh
// under-threshold winner survives.
func (e *Executor) refreshSnap(s *Session) {
	s.SnapTarget = nil
	if e.Solids == nil {
		return
	}
	dragged := make(map[string]bool, len(s.Targets))
	for _, t := range s.Targets {
		dragged[t.ID] = true
	}
	if c, ok := e.Resolver.Resolve(e.Solids(), dragged, s.curRef, s.StartWorld); ok {
		s.SnapTarget = &c
	}
}

// Commit closes the session, applying the active snap target if one exists:
// move modes offset every target so the reference point (grab point or
// center) lands exactly on the candidate; push/pull re-extrudes so the
// grabbed face lands on the candidate's plane. Fires the geometry-changed
// notification. No-op when idle.
func (e *Executor) Commit() {
	if e.state != StateDragging {
		return
	}
	s := e.session
	if s.SnapTarget != nil {
		switch s.Mode {
		case ModePushPull:
			e.snapExtrusion(s, *s.SnapTarget)
		default:
			offset := rl.Vector3Subtract(s.SnapTarget.Point, s.curRef)
			for _, t := range s.Targets {
				t.Position = rl.Vector3Add(t.Position, offset)
			}
		}
	}
	targets := s.Targets
	e.discard()
	if e.OnGeometryChanged != nil {
		e.OnGeometryChanged(targets)
	}
}

// snapExtrusion recomputes the extrusion so the grabbed face's plane passes
// through the candidate point, keeping the opposite face fixed. A candidate
// that would shrink the solid below the minimum dimension is ignored.
func (e *Executor) snapExtrusion(s *Session, c snap.Candidate) {
	opposite := s.initAxisPos - s.sign*s.initAxisDim/2
	dim := s.sign * (geometry.Component(c.Point, s.axis) - opposite)
	if dim < primitives.MinDimension {
		return
	}
	e.applyExtrusion(s, dim)
}

// Cancel rolls the targets back to the pre-drag snapshot exactly and closes
// the session. This is the only rollback mechanism; there is no deeper undo.
// No-op when idle.
func (e *Executor) Cancel() {
	if e.state != StateDragging {
		return
	}
	restoreSnapshot(e.session.Targets, e.session.snapshot)
	e.discard()
}

// targetsAlive reports whether every session target is still in the scene.
// Always true when no scene source is wired.
func (e *Executor) targetsAlive(s *Session) bool {
	if e.Solids == nil {
		return true
	}
	alive := make(map[string]bool)
	for _, sc := range e.Solids() {
		if sc != nil {
			alive[sc.ID] = true
		}
	}
	for _, t := range s.Targets {
		if !alive[t.ID] {
			return false
		}
	}
	return true
}

// discard drops the session without touching geometry.
func (e *Executor) discard() {
	e.session = nil
	e.state = StateIdle
}
