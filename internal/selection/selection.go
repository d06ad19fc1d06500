// Package selection holds the ordered set of selected solids. The
// manipulation engine consumes it: multi-select moves apply the same delta to
// every member, and the first member supplies the grab anchor.
package selection

import "cad-engine/internal/primitives"

// Set is an ordered selection. Order is insertion order; the first member is
// the primary (anchor) target.
type Set struct {
	members []*primitives.Solid
}

// Members returns the selected solids in order. The returned slice is shared;
// callers must not mutate it.
func (s *Set) Members() []*primitives.Solid { return s.members }

// Primary returns the first selected solid, nil when empty.
func (s *Set) Primary() *primitives.Solid {
	if len(s.members) == 0 {
		return nil
	}
	return s.members[0]
}

// Len returns the number of selected solids.
func (s *Set) Len() int { return len(s.members) }

// Contains reports whether the solid is selected.
func (s *Set) Contains(target *primitives.Solid) bool {
	if target == nil {
		return false
	}
	for _, m := range s.members {
		if m.ID == target.ID {
			return true
		}
	}
	return false
}

// Select makes target the only selection. A nil target clears.
func (s *Set) Select(target *primitives.Solid) {
	s.members = s.members[:0]
	if target != nil {
		s.members = append(s.members, target)
	}
}

// Toggle adds target to the selection, or removes it if already present.
// Insertion order is preserved for the remaining members.
func (s *Set) Toggle(target *primitives.Solid) {
	if target == nil {
		return
	}
	for i, m := range s.members {
		if m.ID == target.ID {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return
		}
	}
	s.members = append(s.members, target)
}

// Clear empties the selection.
func (s *Set) Clear() { s.members = s.members[:0] }

// Prune drops members no longer present in solids (deleted from the scene).
func (s *Set) Prune(solids []*primitives.Solid) {
	alive := make(map[string]bool, len(solids))
	for _, sc := range solids {
		if sc != nil {
			alive[sc.ID] = true
		}
	}
	kept := s.members[:0]
	for _, m := range s.members {
		if alive[m.ID] {
			kept = append(kept, m)
		}
	}
	s.members = kept
}
