package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cad-engine/internal/primitives"
)

func solid(id string) *primitives.Solid {
	return &primitives.Solid{ID: id, Kind: primitives.KindBox}
}

func ids(s *Set) []string {
	out := make([]string, 0, s.Len())
	for _, m := range s.Members() {
		out = append(out, m.ID)
	}
	return out
}

func TestSelectReplacesSelection(t *testing.T) {
	var s Set
	a, b := solid("a"), solid("b")

	s.Select(a)
	assert.Equal(t, []string{"a"}, ids(&s))
	assert.Equal(t, a, s.Primary())

	s.Select(b)
	assert.Equal(t, []string{"b"}, ids(&s))

	s.Select(nil)
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Primary())
}

func TestTogglePreservesInsertionOrder(t *testing.T) {
	var s Set
	a, b, c := solid("a"), solid("b"), solid("c")

	s.Toggle(a)
	s.Toggle(b)
	s.Toggle(c)
	assert.Equal(t, []string{"a", "b", "c"}, ids(&s))
	assert.Equal(t, a, s.Primary())

	// Removing the middle member keeps the others in order.
	s.Toggle(b)
	assert.Equal(t, []string{"a", "c"}, ids(&s))
	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))

	// Removing the primary promotes the next member.
	s.Toggle(a)
	assert.Equal(t, c, s.Primary())
}

func TestPruneDropsDeletedSolids(t *testing.T) {
	var s Set
	a, b, c := solid("a"), solid("b"), solid("c")
	s.Toggle(a)
	s.Toggle(b)
	s.Toggle(c)

	s.Prune([]*primitives.Solid{a, c})
	assert.Equal(t, []string{"a", "c"}, ids(&s))

	s.Prune(nil)
	assert.Zero(t, s.Len())
}

func TestContainsNil(t *testing.T) {
	var s Set
	s.Toggle(solid("a"))
	assert.False(t, s.Contains(nil))
}
