package arena

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
)

var characterHalf = mgl64.Vec3{0.5, 1, 0.5}

// wallOptions places a 2x2x2 block centered on (3,1,0)
func wallOptions() Options {
	opts := DefaultOptions()
	opts.Obstacles = []Box{{Center: mgl64.Vec3{3, 1, 0}, Half: mgl64.Vec3{1, 1, 1}}}
	return opts
}

func newWorld(t *testing.T, opts Options) *World {
	t.Helper()
	w, err := New(opts)
	require.NoError(t, err)
	return w
}

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.GroundHalfExtent = 0
	_, err := New(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.CellSize = -1
	_, err = New(opts)
	assert.Error(t, err)
}

func TestBoxIntersects(t *testing.T) {
	a := Box{Center: mgl64.Vec3{0, 0, 0}, Half: mgl64.Vec3{1, 1, 1}}

	assert.True(t, a.Intersects(Box{Center: mgl64.Vec3{1.5, 0, 0}, Half: mgl64.Vec3{1, 1, 1}}))
	assert.False(t, a.Intersects(Box{Center: mgl64.Vec3{2, 0, 0}, Half: mgl64.Vec3{1, 1, 1}}), "touching faces")
	assert.False(t, a.Intersects(Box{Center: mgl64.Vec3{0, 3, 0}, Half: mgl64.Vec3{1, 1, 1}}))
}

func TestOrientedHalfFollowsYaw(t *testing.T) {
	half := mgl64.Vec3{0.125, 0.125, 0.25}
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	got := orientedHalf(q, half)
	assert.InDelta(t, 0.25, got.X(), 1e-9)
	assert.InDelta(t, 0.125, got.Y(), 1e-9)
	assert.InDelta(t, 0.125, got.Z(), 1e-9)

	assert.Equal(t, half, orientedHalf(mgl64.Quat{}, half))
}

func TestVolumesIntersectAndDisable(t *testing.T) {
	w := newWorld(t, DefaultOptions())
	a := w.CreateVolume(core.NewTransform(mgl64.Vec3{0, 1, 0}), characterHalf)
	b := w.CreateVolume(core.NewTransform(mgl64.Vec3{0.5, 1, 0}), characterHalf)

	assert.True(t, w.Intersects(a, b))

	w.SetEnabled(b, false)
	assert.False(t, w.Intersects(a, b))
	w.SetEnabled(b, true)

	w.SetVolumeTransform(b, core.NewTransform(mgl64.Vec3{5, 1, 0}))
	assert.False(t, w.Intersects(a, b))

	before := w.VolumeCount()
	w.DisposeVolume(b)
	w.DisposeVolume(b)
	assert.Equal(t, before-1, w.VolumeCount())
	assert.False(t, w.Intersects(a, b))
}

func TestStaticGeometryIsNotDisposable(t *testing.T) {
	w := newWorld(t, wallOptions())
	before := w.VolumeCount()
	for id := core.VolumeID(1); id <= core.VolumeID(before); id++ {
		w.DisposeVolume(id)
	}
	assert.Equal(t, before, w.VolumeCount())
	assert.Len(t, w.Obstacles(), 1)
}

func TestMoveWithCollisions(t *testing.T) {
	tests := []struct {
		name  string
		start mgl64.Vec3
		move  mgl64.Vec3
		want  mgl64.Vec3
	}{
		{"free fall", mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0.1, -0.1, 0}, mgl64.Vec3{0.1, 2.9, 0}},
		{"standing walks on ground", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.1, -0.1, 0}, mgl64.Vec3{0.1, 1, 0}},
		{"standing against wall stops", mgl64.Vec3{1.45, 1, 0}, mgl64.Vec3{0.1, -0.1, 0}, mgl64.Vec3{1.45, 1, 0}},
		{"airborne against wall keeps height", mgl64.Vec3{1.45, 2, 0}, mgl64.Vec3{0.1, -0.1, 0}, mgl64.Vec3{1.45, 2, 0}},
		{"corner clip drops horizontal", mgl64.Vec3{1.45, 3.05, 0}, mgl64.Vec3{0.1, -0.1, 0}, mgl64.Vec3{1.45, 2.95, 0}},
		{"lands on obstacle top", mgl64.Vec3{3, 3.05, 0}, mgl64.Vec3{0, -0.1, 0}, mgl64.Vec3{3, 3.05, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t, wallOptions())
			id := w.CreateVolume(core.NewTransform(tt.start), characterHalf)

			got := w.MoveWithCollisions(id, tt.move)
			assertVec(t, tt.want, got)

			box, ok := w.Volume(id)
			require.True(t, ok)
			assertVec(t, tt.want, box.Center)
		})
	}
}

func TestMoveUnknownVolume(t *testing.T) {
	w := newWorld(t, DefaultOptions())
	assert.Equal(t, mgl64.Vec3{}, w.MoveWithCollisions(99, mgl64.Vec3{1, 0, 0}))
}

func TestNearestNavigable(t *testing.T) {
	opts := DefaultOptions()
	opts.Obstacles = []Box{{Center: mgl64.Vec3{0, 1, 0}, Half: mgl64.Vec3{1, 1, 3}}}
	w := newWorld(t, opts)

	// Free point projects to the surface
	p, ok := w.NearestNavigable(mgl64.Vec3{-6, 1, 4}, 2)
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{-6, 0, 4}, p)

	// Inside the block: nearest cell with agent clearance
	p, ok = w.NearestNavigable(mgl64.Vec3{0.1, 0, 0.25}, 2)
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{1.75, 0, 0.25}, p)

	_, ok = w.NearestNavigable(mgl64.Vec3{0.1, 0, 0.25}, 0.5)
	assert.False(t, ok)

	_, ok = w.NearestNavigable(mgl64.Vec3{40, 0, 40}, 2)
	assert.False(t, ok)
}

func TestPlatformOscillates(t *testing.T) {
	opts := DefaultOptions()
	opts.Platforms = []PlatformSpec{{
		Box:       Box{Center: mgl64.Vec3{-5, 0.5, 5}, Half: mgl64.Vec3{1.5, 0.25, 1.5}},
		Amplitude: 1,
		Period:    4 * time.Second,
	}}
	w := newWorld(t, opts)

	w.Advance(2 * time.Second)
	require.Len(t, w.Obstacles(), 1)
	assert.InDelta(t, 1.5, w.Obstacles()[0].Center.Y(), 1e-9)

	w.Advance(time.Second)
	assert.InDelta(t, 1.0, w.Obstacles()[0].Center.Y(), 1e-9)

	w.Advance(-time.Second)
	assert.InDelta(t, 1.0, w.Obstacles()[0].Center.Y(), 1e-9)

	// Platform footprint blocks navigation regardless of height
	x, z, ok := w.Grid().CellOf(mgl64.Vec3{-5, 0, 5})
	require.True(t, ok)
	assert.True(t, w.Grid().Blocked(x, z))
}

func TestRisingPlatformLiftsCharacter(t *testing.T) {
	opts := DefaultOptions()
	opts.Platforms = []PlatformSpec{{
		Box:       Box{Center: mgl64.Vec3{0, -1, 0}, Half: mgl64.Vec3{1, 1, 1}},
		Amplitude: 2,
		Period:    2 * time.Second,
	}}
	w := newWorld(t, opts)
	id := w.CreateVolume(core.NewTransform(mgl64.Vec3{0, 1, 0}), characterHalf)

	// Top face rises to 0.6 under the character's feet
	w.Advance(300 * time.Millisecond)
	got := w.MoveWithCollisions(id, mgl64.Vec3{0.05, -0.1, 0})
	assertVec(t, mgl64.Vec3{0.05, 1.6, 0}, got)

	w.Advance(100 * time.Millisecond)
	got = w.MoveWithCollisions(id, mgl64.Vec3{0.05, -0.1, 0})
	assertVec(t, mgl64.Vec3{0.1, 1.8, 0}, got)

	for i := 0; i < 30; i++ {
		w.Advance(10 * time.Millisecond)
		got = w.MoveWithCollisions(id, mgl64.Vec3{0.05, -0.1, 0})
	}
	assert.InDelta(t, 1.6, got.X(), 1e-9, "character keeps walking while carried")
}

func TestDepenetrateUsesShallowestAxis(t *testing.T) {
	w := newWorld(t, wallOptions())
	// Sinks 0.05 into the wall's near face and far deeper vertically
	id := w.CreateVolume(core.NewTransform(mgl64.Vec3{1.55, 1.5, 0}), characterHalf)

	got := w.MoveWithCollisions(id, mgl64.Vec3{})
	assertVec(t, mgl64.Vec3{1.5, 1.5, 0}, got)
}

func TestCrowdRoutesAroundObstacle(t *testing.T) {
	opts := DefaultOptions()
	wall := Box{Center: mgl64.Vec3{0, 1, 0}, Half: mgl64.Vec3{1, 1, 3}}
	opts.Obstacles = []Box{wall}
	w := newWorld(t, opts)

	params := engine.AgentParams{Radius: 0.6, MaxSpeed: 1.5}
	id := w.AddAgent(mgl64.Vec3{-5, 1, 0}, params)
	goal := mgl64.Vec3{5, 1, 0}
	w.SetGoal(id, goal)

	for i := 0; i < 200; i++ {
		w.Advance(100 * time.Millisecond)
		pos, ok := w.AgentPosition(id)
		require.True(t, ok)
		assert.Equal(t, 1.0, pos.Y(), "agents keep their height")
		inside := math.Abs(pos.X()-wall.Center.X()) < wall.Half.X() && math.Abs(pos.Z()-wall.Center.Z()) < wall.Half.Z()
		require.False(t, inside, "agent entered obstacle at %v", pos)
	}

	pos, _ := w.AgentPosition(id)
	assert.Less(t, core.Horizontal(goal.Sub(pos)).Len(), 1.0)
}

func TestCrowdSeparatesCoincidentAgents(t *testing.T) {
	w := newWorld(t, DefaultOptions())
	params := engine.AgentParams{Radius: 0.6, MaxSpeed: 1.5}
	a := w.AddAgent(mgl64.Vec3{0, 1, 5}, params)
	b := w.AddAgent(mgl64.Vec3{0, 1, 5}, params)

	for i := 0; i < 10; i++ {
		w.Advance(100 * time.Millisecond)
	}

	pa, _ := w.AgentPosition(a)
	pb, _ := w.AgentPosition(b)
	assert.Greater(t, pa.Sub(pb).Len(), 1.0)
	assert.Less(t, pa.X(), pb.X())
}

func TestRemoveAgent(t *testing.T) {
	w := newWorld(t, DefaultOptions())
	params := engine.AgentParams{Radius: 0.6, MaxSpeed: 1.5}
	a := w.AddAgent(mgl64.Vec3{0, 1, 0}, params)
	b := w.AddAgent(mgl64.Vec3{2, 1, 0}, params)

	w.RemoveAgent(a)
	w.RemoveAgent(a)
	w.RemoveAgent(42)
	assert.Equal(t, 1, w.AgentCount())

	_, ok := w.AgentPosition(a)
	assert.False(t, ok)
	_, ok = w.AgentPosition(b)
	assert.True(t, ok)

	// Goals for dead agents are ignored
	w.SetGoal(a, mgl64.Vec3{1, 1, 1})
	w.Advance(time.Second)
}
