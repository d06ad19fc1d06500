package pick

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cad-engine/internal/primitives"
)

func boxAt(id string, pos rl.Vector3) *primitives.Solid {
	return &primitives.Solid{
		ID:         id,
		Kind:       primitives.KindBox,
		Dimensions: primitives.Dimensions{Width: 2, Height: 2, Depth: 2},
		Position:   pos,
	}
}

func TestRayHitsNearestSolid(t *testing.T) {
	near := boxAt("near", rl.NewVector3(5, 0, 0))
	far := boxAt("far", rl.NewVector3(0, 0, 0))
	origin := rl.NewVector3(10, 0, 0)
	dir := rl.NewVector3(-1, 0, 0)

	p, ok := Ray(origin, dir, []*primitives.Solid{far, near})
	require.True(t, ok)
	assert.Equal(t, "near", p.Solid.ID)
	assert.InDelta(t, 6, p.Point.X, 1e-4)
	assert.InDelta(t, 1, p.Normal.X, 1e-6)
	assert.Equal(t, 0, p.FaceIndex)
	assert.InDelta(t, 4, p.Distance, 1e-4)
}

func TestRayMiss(t *testing.T) {
	s := boxAt("s", rl.Vector3{})
	_, ok := Ray(rl.NewVector3(10, 10, 10), rl.NewVector3(1, 0, 0), []*primitives.Solid{s})
	assert.False(t, ok)
}

func TestRayZeroDirection(t *testing.T) {
	s := boxAt("s", rl.Vector3{})
	_, ok := Ray(rl.NewVector3(10, 0, 0), rl.Vector3{}, []*primitives.Solid{s})
	assert.False(t, ok)
}

func TestRaySkipsUnmanipulableKinds(t *testing.T) {
	mystery := &primitives.Solid{ID: "mystery", Kind: primitives.Kind("sphere")}
	_, ok := Ray(rl.NewVector3(10, 0, 0), rl.NewVector3(-1, 0, 0), []*primitives.Solid{mystery})
	assert.False(t, ok)
}

func TestRayHitsFlatPlaneFromAbove(t *testing.T) {
	plane := &primitives.Solid{
		ID:         "floor",
		Kind:       primitives.KindPlane,
		Dimensions: primitives.Dimensions{Width: 4, Depth: 4},
		Position:   rl.NewVector3(0, 0, 0),
	}
	p, ok := Ray(rl.NewVector3(0.5, 5, 0.5), rl.NewVector3(0, -1, 0), []*primitives.Solid{plane})
	require.True(t, ok)
	assert.Equal(t, "floor", p.Solid.ID)
	assert.InDelta(t, 1, p.Normal.Y, 1e-6)
	assert.Equal(t, 2, p.FaceIndex)
	assert.InDelta(t, 0.5, p.Point.X, 1e-5)
}

func TestRayFaceIndexPerSide(t *testing.T) {
	s := boxAt("s", rl.Vector3{})
	cases := []struct {
		origin, dir rl.Vector3
		faceIndex   int
	}{
		{rl.NewVector3(5, 0, 0), rl.NewVector3(-1, 0, 0), 0},
		{rl.NewVector3(-5, 0, 0), rl.NewVector3(1, 0, 0), 1},
		{rl.NewVector3(0, 5, 0), rl.NewVector3(0, -1, 0), 2},
		{rl.NewVector3(0, -5, 0), rl.NewVector3(0, 1, 0), 3},
		{rl.NewVector3(0, 0, 5), rl.NewVector3(0, 0, -1), 4},
		{rl.NewVector3(0, 0, -5), rl.NewVector3(0, 0, 1), 5},
	}
	for _, tc := range cases {
		p, ok := Ray(tc.origin, tc.dir, []*primitives.Solid{s})
		require.True(t, ok)
		assert.Equal(t, tc.faceIndex, p.FaceIndex, "from %v", tc.origin)
	}
}
