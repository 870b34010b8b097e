package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lizard-arena/config"
	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/input"
)

type recorderStub struct {
	frames []int64
	err    error
}

func (r *recorderStub) RecordFrame(state *engine.GameState) error {
	r.frames = append(r.frames, state.Frame)
	return r.err
}

type expirerStub struct {
	pending []input.Event
}

func (e *expirerStub) Expire(time.Time) []input.Event {
	out := e.pending
	e.pending = nil
	return out
}

func newTestLoop(t *testing.T, extra func(*LoopConfig)) (*Loop, *Game, *engine.MockTimeProvider) {
	t.Helper()
	g, err := New(config.Default())
	require.NoError(t, err)
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	cfg := LoopConfig{Game: g, Time: clock, MaxDelta: 250 * time.Millisecond}
	if extra != nil {
		extra(&cfg)
	}
	return NewLoop(cfg), g, clock
}

func TestNewSeedsArena(t *testing.T) {
	g, err := New(config.Default())
	require.NoError(t, err)

	pos, ok := g.PlayerPosition()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{-3, 3, 0}, pos)
	assert.Equal(t, 5, g.State.Registry.Count(core.KindEnemy))
	assert.Len(t, g.State.SpawnPoints, 2)
	assert.Equal(t, 5, g.World.AgentCount())
	assert.NotEmpty(t, g.Session.String())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Tuning.ProjectileSpeed = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestFrameMeasuresElapsedTime(t *testing.T) {
	loop, g, clock := newTestLoop(t, nil)

	clock.Advance(16 * time.Millisecond)
	loop.Frame()
	clock.Advance(20 * time.Millisecond)
	loop.Frame()

	assert.Equal(t, int64(2), g.State.Frame)
	assert.Equal(t, 36*time.Millisecond, g.State.Now)
}

func TestFrameClampsStall(t *testing.T) {
	loop, g, clock := newTestLoop(t, nil)

	clock.Advance(5 * time.Second)
	loop.Frame()

	assert.Equal(t, 250*time.Millisecond, g.State.Now)
}

func TestPauseSkipsSimulationButRenders(t *testing.T) {
	var views []View
	loop, g, clock := newTestLoop(t, func(c *LoopConfig) {
		c.Render = func(v View) { views = append(views, v) }
	})

	require.True(t, loop.Handle(input.Event{Kind: input.EventPause}))
	clock.Advance(100 * time.Millisecond)
	loop.Frame()

	assert.Equal(t, int64(0), g.State.Frame)
	require.Len(t, views, 1)
	assert.True(t, views[0].Paused)

	// Resuming does not replay the paused interval
	require.True(t, loop.Handle(input.Event{Kind: input.EventPause}))
	clock.Advance(16 * time.Millisecond)
	loop.Frame()
	assert.Equal(t, int64(1), g.State.Frame)
	assert.Equal(t, 16*time.Millisecond, g.State.Now)
	assert.False(t, views[1].Paused)
}

func TestQuitStopsLoop(t *testing.T) {
	loop, _, _ := newTestLoop(t, nil)
	assert.False(t, loop.Handle(input.Event{Kind: input.EventQuit}))
}

func TestResizeReachesView(t *testing.T) {
	var last View
	loop, _, _ := newTestLoop(t, func(c *LoopConfig) {
		c.Render = func(v View) { last = v }
	})
	loop.Handle(input.Event{Kind: input.EventResize, Width: 120, Height: 40})
	loop.Frame()
	assert.Equal(t, 120, last.Width)
	assert.Equal(t, 40, last.Height)
}

func TestKeyEventsDriveIntent(t *testing.T) {
	loop, g, clock := newTestLoop(t, nil)

	loop.Handle(input.Event{Kind: input.EventKeyDown, Key: "w"})
	clock.Advance(16 * time.Millisecond)
	loop.Frame()
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, g.State.Intent.Movement)

	loop.Handle(input.Event{Kind: input.EventKeyUp, Key: "w"})
	clock.Advance(16 * time.Millisecond)
	loop.Frame()
	assert.True(t, core.IsZero(g.State.Intent.Movement))
}

func TestExpirerReleasesKeys(t *testing.T) {
	exp := &expirerStub{}
	loop, g, clock := newTestLoop(t, func(c *LoopConfig) { c.Expirer = exp })

	loop.Handle(input.Event{Kind: input.EventKeyDown, Key: "d"})
	exp.pending = []input.Event{{Kind: input.EventKeyUp, Key: "d"}}
	clock.Advance(16 * time.Millisecond)
	loop.Frame()

	assert.True(t, core.IsZero(g.State.Intent.Movement))
	assert.Empty(t, g.State.Latch.Held())
}

func TestListenersReceiveEvents(t *testing.T) {
	var got []event.GameEvent
	loop, g, clock := newTestLoop(t, func(c *LoopConfig) {
		c.Listeners = []Listener{ListenerFunc(func(ev event.GameEvent) { got = append(got, ev) })}
	})

	clock.Advance(16 * time.Millisecond)
	loop.Frame()

	spawned := 0
	for _, ev := range got {
		if ev.Type == event.EventEnemySpawned {
			spawned++
		}
	}
	// Opening wave plus the first spawn point firing on its first tick
	assert.Equal(t, 6, spawned)
	assert.Zero(t, g.State.Events.Len())
}

func TestRecorderStopsAfterError(t *testing.T) {
	rec := &recorderStub{}
	loop, _, clock := newTestLoop(t, func(c *LoopConfig) { c.Recorder = rec })

	clock.Advance(16 * time.Millisecond)
	loop.Frame()
	rec.err = errors.New("disk full")
	clock.Advance(16 * time.Millisecond)
	loop.Frame()
	clock.Advance(16 * time.Millisecond)
	loop.Frame()

	assert.Equal(t, []int64{1, 2}, rec.frames)
}

func TestRunStopsOnClosedInput(t *testing.T) {
	ch := make(chan input.Event)
	loop, _, _ := newTestLoop(t, func(c *LoopConfig) { c.Input = ch })
	close(ch)
	assert.NoError(t, loop.Run(context.Background()))
}

func TestRunStopsOnCancel(t *testing.T) {
	loop, _, _ := newTestLoop(t, func(c *LoopConfig) { c.Input = make(chan input.Event) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, loop.Run(ctx))
}
