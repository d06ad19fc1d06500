// Package editor glues input to the manipulation engine: it picks, classifies,
// opens drag sessions per the active tool, and forwards pointer motion to the
// executor. It also owns the scene's solid list and the selection set.
package editor

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/drag"
	"cad-engine/internal/hittest"
	"cad-engine/internal/logger"
	"cad-engine/internal/pick"
	"cad-engine/internal/primitives"
	"cad-engine/internal/selection"
	"cad-engine/internal/snap"
	"cad-engine/internal/view"
)

// PickFunc resolves what is under the pointer. Replaceable so headless tests
// can pick without a window.
type PickFunc func(cam rl.Camera3D, pointer rl.Vector2, solids []*primitives.Solid) (pick.Pick, bool)

// Editor owns the manipulable solids and routes pointer events into drag
// sessions. One Editor per viewport; all state is explicit, nothing ambient.
type Editor struct {
	Solids    []*primitives.Solid
	Selection selection.Set
	Executor  drag.Executor

	tool        hittest.Tool
	hover       hittest.Hit
	hitRadiusPx float32
	pickFn      PickFunc
	log         *logger.Logger

	// OnGeometryChanged is forwarded from the executor on commit; the layout
	// collaborator subscribes here.
	OnGeometryChanged func(targets []*primitives.Solid)
}

// New returns an editor with the move tool active.
func New(log *logger.Logger, snapThreshold, hitRadiusPx float32) *Editor {
	e := &Editor{
		hitRadiusPx: hitRadiusPx,
		pickFn:      pick.AtPointer,
		log:         log,
	}
	if e.hitRadiusPx <= 0 {
		e.hitRadiusPx = view.HitRadiusPx
	}
	e.Executor.Resolver = snap.Resolver{Threshold: snapThreshold}
	e.Executor.Solids = func() []*primitives.Solid { return e.Solids }
	e.Executor.OnGeometryChanged = e.geometryChanged
	return e
}

// SetPickFunc replaces the pick source (tests).
func (e *Editor) SetPickFunc(fn PickFunc) { e.pickFn = fn }

// SetHitRadius updates the on-screen grab radius in pixels.
func (e *Editor) SetHitRadius(px float32) {
	if px > 0 {
		e.hitRadiusPx = px
	}
}

// SetSnapThreshold updates the snap acceptance distance in world units.
func (e *Editor) SetSnapThreshold(dist float32) {
	if dist > 0 {
		e.Executor.Resolver.Threshold = dist
	}
}

// Tool returns the active tool.
func (e *Editor) Tool() hittest.Tool { return e.tool }

// SetTool switches the active tool. Switching implicitly cancels and rolls
// back any open drag session.
func (e *Editor) SetTool(t hittest.Tool) {
	if t != e.tool {
		e.Executor.Cancel()
	}
	e.tool = t
}

// Dragging reports whether a drag session is open; the scene suspends camera
// input while it is.
func (e *Editor) Dragging() bool { return e.Executor.Active() }

// Hover returns the feature currently under the pointer (valid while idle).
func (e *Editor) Hover() hittest.Hit { return e.hover }

// AddSolid creates a solid of the given kind at position and returns it.
func (e *Editor) AddSolid(kind primitives.Kind, position rl.Vector3) *primitives.Solid {
	s := primitives.NewSolid(kind, position)
	e.Solids = append(e.Solids, s)
	return s
}

// RemoveSolid deletes a solid from the scene by ID. An open session on it is
// discarded by the executor on its next update.
func (e *Editor) RemoveSolid(id string) {
	for i, s := range e.Solids {
		if s != nil && s.ID == id {
			e.Solids = append(e.Solids[:i], e.Solids[i+1:]...)
			break
		}
	}
	e.Selection.Prune(e.Solids)
}

// PointerMove updates the hover classification while idle, or forwards the
// pointer to the open session.
func (e *Editor) PointerMove(cam rl.Camera3D, pointer rl.Vector2, viewportHeightPx float32) {
	if e.Executor.Active() {
		e.Executor.Update(cam, pointer, viewportHeightPx)
		return
	}
	e.hover = hittest.Hit{}
	if p, ok := e.pickFn(cam, pointer, e.Solids); ok {
		e.hover = hittest.Classify(cam, p, e.tool, e.hitRadiusPx, viewportHeightPx)
	}
}

// PointerDown classifies the pointer position and opens a drag session when a
// qualifying feature was grabbed. A miss (or an unsupported kind) starts no
// drag and leaves camera controls enabled; a plain hit still updates the
// selection.
func (e *Editor) PointerDown(cam rl.Camera3D, pointer rl.Vector2, viewportHeightPx float32, additive bool) bool {
	p, ok := e.pickFn(cam, pointer, e.Solids)
	if !ok {
		if !additive {
			e.Selection.Clear()
		}
		return false
	}
	hit := hittest.Classify(cam, p, e.tool, e.hitRadiusPx, viewportHeightPx)
	if hit.Kind == hittest.Miss {
		return false
	}
	e.updateSelection(hit.Solid, additive)

	switch {
	case e.tool == hittest.ToolPushPull && hit.Kind == hittest.HitFace:
		return e.Executor.BeginPushPull(hit.Solid, hit.Face, pointer)
	case e.tool == hittest.ToolMove && hit.Kind == hittest.HitCorner:
		grab := hit.Corner.Position
		return e.Executor.BeginMoveFree(e.moveTargets(hit.Solid), &grab, pointer, p.Point)
	case e.tool == hittest.ToolMove && hit.Kind == hittest.HitEdge:
		grab := hit.EdgePoint
		return e.Executor.BeginMoveFree(e.moveTargets(hit.Solid), &grab, pointer, p.Point)
	case e.tool == hittest.ToolMove && hit.Kind == hittest.HitFace:
		return e.Executor.BeginMoveAxis(e.moveTargets(hit.Solid), hit.Face, pointer)
	}
	return false
}

// PointerUp commits the open session, applying any active snap target.
func (e *Editor) PointerUp() {
	e.Executor.Commit()
}

// CancelDrag rolls back and closes the open session (Escape).
func (e *Editor) CancelDrag() {
	e.Executor.Cancel()
}

// updateSelection applies click-selection semantics: additive toggles, plain
// click selects unless the solid is already part of a multi-selection (so a
// drag can move the whole group).
func (e *Editor) updateSelection(target *primitives.Solid, additive bool) {
	if additive {
		e.Selection.Toggle(target)
		return
	}
	if !e.Selection.Contains(target) {
		e.Selection.Select(target)
	}
}

// moveTargets returns the solids a move session drags: the whole selection
// when the grabbed solid belongs to it, the grabbed solid alone otherwise.
// The grab anchor always comes from the grabbed feature; for a multi-select
// that is the feature on the clicked member.
func (e *Editor) moveTargets(hit *primitives.Solid) []*primitives.Solid {
	if e.Selection.Contains(hit) && e.Selection.Len() > 1 {
		members := e.Selection.Members()
		out := make([]*primitives.Solid, len(members))
		copy(out, members)
		return out
	}
	return []*primitives.Solid{hit}
}

// geometryChanged logs the commit and forwards to the layout subscriber.
func (e *Editor) geometryChanged(targets []*primitives.Solid) {
	if e.log != nil {
		for _, t := range targets {
			e.log.Logf("geometry changed: %s %s at (%.2f, %.2f, %.2f)", t.Kind, t.ID[:8], t.Position.X, t.Position.Y, t.Position.Z)
		}
	}
	if e.OnGeometryChanged != nil {
		e.OnGeometryChanged(targets)
	}
}

// DragStateLine formats the open session for the debug overlay; empty when
// idle.
func (e *Editor) DragStateLine() string {
	s := e.Executor.Session()
	if s == nil {
		return ""
	}
	line := s.Mode.String()
	if len(s.Targets) > 0 {
		t := s.Targets[0]
		d := t.Dimensions
		switch t.Kind {
		case primitives.KindCylinder, primitives.KindDisc:
			line += fmt.Sprintf(" r=%.2f h=%.2f", d.Radius, d.Height)
		default:
			line += fmt.Sprintf(" %.2f x %.2f x %.2f", d.Width, d.Height, d.Depth)
		}
	}
	if s.SnapTarget != nil {
		line += fmt.Sprintf(" snap:%s(%.3f)", s.SnapTarget.Kind, s.SnapTarget.Error)
	}
	return line
}
