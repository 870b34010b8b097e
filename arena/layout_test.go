package arena

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lizard-arena/navigation"
)

func TestGenerateLayoutDisabled(t *testing.T) {
	assert.Nil(t, GenerateLayout(10, LayoutOptions{Tile: 2}))
	assert.Nil(t, GenerateLayout(10, LayoutOptions{Density: 1}))
}

func TestGenerateLayoutDeterministic(t *testing.T) {
	opts := LayoutOptions{Seed: 42, Tile: 2, Braiding: 0.3, Density: 0.8}
	a := GenerateLayout(10, opts)
	b := GenerateLayout(10, opts)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)

	opts.Seed = 43
	assert.NotEqual(t, a, GenerateLayout(10, opts))
}

func TestGenerateLayoutInsideGround(t *testing.T) {
	for _, b := range GenerateLayout(10, LayoutOptions{Seed: 1, Tile: 2, Density: 1}) {
		assert.GreaterOrEqual(t, b.Min().X(), -10.0)
		assert.LessOrEqual(t, b.Max().X(), 10.0)
		assert.GreaterOrEqual(t, b.Min().Z(), -10.0)
		assert.LessOrEqual(t, b.Max().Z(), 10.0)
		assert.InDelta(t, 0.0, b.Min().Y(), 1e-9, "crates rest on the ground")
	}
}

func TestGenerateLayoutKeepsPointsClear(t *testing.T) {
	keep := []mgl64.Vec3{{0, 0, 0}, {6, 0, 6}, {-3, 3, 0}}
	crates := GenerateLayout(10, LayoutOptions{Seed: 5, Tile: 2, Density: 1, Keep: keep, KeepRadius: 1})
	require.NotEmpty(t, crates)
	for _, b := range crates {
		for _, k := range keep {
			inside := k.X() > b.Min().X() && k.X() < b.Max().X() && k.Z() > b.Min().Z() && k.Z() < b.Max().Z()
			assert.False(t, inside, "crate %v covers %v", b.Center, k)
		}
	}
}

func TestGeneratedArenaStaysConnected(t *testing.T) {
	keep := []mgl64.Vec3{{-3, 0, 0}, {6, 0, 6}, {6, 0, -6}}
	opts := DefaultOptions()
	opts.Obstacles = GenerateLayout(opts.GroundHalfExtent, LayoutOptions{
		Seed: 11, Tile: 2, Braiding: 0.5, Density: 1, Keep: keep, KeepRadius: 1,
	})
	w, err := New(opts)
	require.NoError(t, err)

	// Every kept point has a navigable spot and a route to the first one
	for _, k := range keep {
		_, ok := w.NearestNavigable(k, 2)
		assert.True(t, ok, "no navigable point near %v", k)
	}
	start, ok := w.NearestNavigable(keep[0], 2)
	require.True(t, ok)
	field := navigation.NewFlowField(w.grid, w.clearance)
	require.True(t, field.Compute(start))

	for _, k := range keep[1:] {
		p, ok := w.NearestNavigable(k, 2)
		require.True(t, ok)
		_, routed := field.Cost(p)
		assert.True(t, routed, "no route from %v", k)
	}
}
