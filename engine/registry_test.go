package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lizard-arena/component"
	"github.com/lixenwraith/lizard-arena/core"
)

func newTestRegistry() (*Registry, *FakeWorld) {
	w := NewFakeWorld()
	return NewRegistry(w, w), w
}

func TestSpawnRegistersVolume(t *testing.T) {
	r, w := newTestRegistry()

	enemy, err := r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{1, 1, 1}))
	require.NoError(t, err)
	assert.NotZero(t, enemy.ID)
	assert.Equal(t, core.VisualIdle, enemy.Visual)
	assert.Equal(t, mgl64.Vec3{0.5, 1, 0.5}, enemy.HalfExtents)
	assert.Contains(t, w.Volumes, enemy.Volume)

	shot, err := r.Spawn(core.KindProjectile, core.NewTransform(mgl64.Vec3{}))
	require.NoError(t, err)
	assert.Equal(t, core.VisualNone, shot.Visual)
	assert.NotEqual(t, enemy.ID, shot.ID)

	assert.Equal(t, 1, r.Count(core.KindEnemy))
	assert.Equal(t, 1, r.Count(core.KindProjectile))
	assert.Equal(t, 2, r.Len())
}

func TestSpawnSinglePlayer(t *testing.T) {
	r, _ := newTestRegistry()

	p, err := r.Spawn(core.KindPlayer, core.NewTransform(mgl64.Vec3{}))
	require.NoError(t, err)

	_, err = r.Spawn(core.KindPlayer, core.NewTransform(mgl64.Vec3{}))
	assert.ErrorIs(t, err, ErrPlayerExists)

	got, ok := r.Player()
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)

	r.Destroy(p.ID)
	_, ok = r.Player()
	assert.False(t, ok)
	_, err = r.Spawn(core.KindPlayer, core.NewTransform(mgl64.Vec3{}))
	assert.NoError(t, err)
}

func TestSpawnUnknownKind(t *testing.T) {
	r, _ := newTestRegistry()
	_, err := r.Spawn(core.Kind(99), core.NewTransform(mgl64.Vec3{}))
	assert.Error(t, err)
}

func TestDestroyIsIdempotent(t *testing.T) {
	r, w := newTestRegistry()
	enemy, err := r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{}))
	require.NoError(t, err)
	agent := w.AddAgent(mgl64.Vec3{}, AgentParams{})
	require.NoError(t, r.AttachAgent(enemy.ID, agent))

	assert.True(t, r.Destroy(enemy.ID))
	assert.False(t, r.Destroy(enemy.ID))

	assert.Equal(t, 1, w.Disposals, "volume disposed exactly once")
	assert.Equal(t, 1, w.Removals, "agent removed exactly once")
	assert.Empty(t, w.Volumes)
	assert.Empty(t, w.Agents)
	assert.Equal(t, 0, r.Len())

	_, ok := r.Get(enemy.ID)
	assert.False(t, ok)
	assert.False(t, r.Destroy(12345))
}

func TestIDReuseLowestFirst(t *testing.T) {
	r, _ := newTestRegistry()
	var ids []core.Entity
	for i := 0; i < 4; i++ {
		a, err := r.Spawn(core.KindProjectile, core.NewTransform(mgl64.Vec3{}))
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []core.Entity{1, 2, 3, 4}, ids)

	r.Destroy(3)
	r.Destroy(2)

	a, _ := r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{}))
	b, _ := r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{}))
	c, _ := r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{}))
	assert.Equal(t, core.Entity(2), a.ID)
	assert.Equal(t, core.Entity(3), b.ID)
	assert.Equal(t, core.Entity(5), c.ID)
}

func TestSetVisualStateMutualExclusion(t *testing.T) {
	r, _ := newTestRegistry()
	p, _ := r.Spawn(core.KindPlayer, core.NewTransform(mgl64.Vec3{}))

	for _, s := range []core.VisualState{core.VisualWalk, core.VisualAttack, core.VisualIdle} {
		require.NoError(t, r.SetVisualState(p.ID, s))
		got, _ := r.Get(p.ID)
		assert.Equal(t, s, got.Visual)
	}

	shot, _ := r.Spawn(core.KindProjectile, core.NewTransform(mgl64.Vec3{}))
	require.NoError(t, r.SetVisualState(shot.ID, core.VisualWalk))
	got, _ := r.Get(shot.ID)
	assert.Equal(t, core.VisualNone, got.Visual)

	assert.ErrorIs(t, r.SetVisualState(999, core.VisualIdle), ErrNotFound)
}

func TestSetTransformSyncsVolume(t *testing.T) {
	r, w := newTestRegistry()
	e, _ := r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{}))

	require.NoError(t, r.SetPosition(e.ID, mgl64.Vec3{2, 1, 3}))
	assert.Equal(t, mgl64.Vec3{2, 1, 3}, w.Volumes[e.Volume].Transform.Position)

	tr := core.NewTransform(mgl64.Vec3{4, 1, 4})
	tr.LookAlong(mgl64.Vec3{1, 0, 0})
	require.NoError(t, r.SetTransform(e.ID, tr))
	got, _ := r.Get(e.ID)
	assert.Equal(t, tr, got.Transform)
	assert.Equal(t, tr, w.Volumes[e.Volume].Transform)

	assert.ErrorIs(t, r.SetPosition(999, mgl64.Vec3{}), ErrNotFound)
	assert.ErrorIs(t, r.SetTransform(999, tr), ErrNotFound)
	assert.ErrorIs(t, r.AttachAgent(999, 1), ErrNotFound)
	assert.ErrorIs(t, r.SetProjectile(e.ID, component.ProjectileComponent{}), ErrNotFound)
}

func TestClearDestroysEverything(t *testing.T) {
	r, w := newTestRegistry()
	r.Spawn(core.KindPlayer, core.NewTransform(mgl64.Vec3{}))
	for i := 0; i < 3; i++ {
		r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{}))
	}

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, w.Volumes)
	assert.Empty(t, r.Enemies())
	_, ok := r.Player()
	assert.False(t, ok)
}

func TestCustomHalfExtents(t *testing.T) {
	r, w := newTestRegistry()
	r.SetHalfExtents(core.KindEnemy, mgl64.Vec3{1, 1, 1})
	e, _ := r.Spawn(core.KindEnemy, core.NewTransform(mgl64.Vec3{}))

	assert.Equal(t, mgl64.Vec3{1, 1, 1}, r.HalfExtents(core.KindEnemy))
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, w.Volumes[e.Volume].Half)
}
