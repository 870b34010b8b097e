package game

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/input"
	"github.com/lixenwraith/lizard-arena/parameter"
	"github.com/lixenwraith/lizard-arena/status"
)

// Listener receives every drained game event, in emission order, on the loop goroutine
type Listener interface {
	HandleEvent(ev event.GameEvent)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(ev event.GameEvent)

func (f ListenerFunc) HandleEvent(ev event.GameEvent) { f(ev) }

// FrameRecorder persists the post-step state of every simulated frame
type FrameRecorder interface {
	RecordFrame(state *engine.GameState) error
}

// Expirer synthesizes releases for keys whose frontend never reports key-up
type Expirer interface {
	Expire(now time.Time) []input.Event
}

// View is what a frontend draws after each frame
type View struct {
	Game   *Game
	Paused bool
	Delta  time.Duration
	Width  int
	Height int
}

// LoopConfig wires a Loop to its collaborators; only Game is required
type LoopConfig struct {
	Game      *Game
	Time      engine.TimeProvider
	Interval  time.Duration
	MaxDelta  time.Duration
	Input     <-chan input.Event
	Expirer   Expirer
	Render    func(View)
	Listeners []Listener
	Recorder  FrameRecorder
	Logger    *slog.Logger
}

// Loop drives a Game from real elapsed time
// All state mutation happens on the goroutine running Run
type Loop struct {
	game      *Game
	time      engine.TimeProvider
	interval  time.Duration
	maxDelta  time.Duration
	input     <-chan input.Event
	expirer   Expirer
	render    func(View)
	listeners []Listener
	recorder  FrameRecorder
	logger    *slog.Logger

	last          time.Time
	width, height int

	statPaused  *atomic.Bool
	statFrameMs *status.AtomicFloat
	statDropped *atomic.Int64
}

// NewLoop creates a loop; the first frame measures elapsed time from this call
func NewLoop(cfg LoopConfig) *Loop {
	l := &Loop{
		game:      cfg.Game,
		time:      cfg.Time,
		interval:  cfg.Interval,
		maxDelta:  cfg.MaxDelta,
		input:     cfg.Input,
		expirer:   cfg.Expirer,
		render:    cfg.Render,
		listeners: cfg.Listeners,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
	}
	if l.time == nil {
		l.time = engine.NewMonotonicTimeProvider()
	}
	if l.interval <= 0 {
		l.interval = parameter.FrameUpdateInterval
	}
	if l.maxDelta <= 0 {
		l.maxDelta = parameter.MaxFrameDelta
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}

	reg := cfg.Game.State.Status
	l.statPaused = reg.Bools.Get(status.KeyPaused)
	l.statFrameMs = reg.Floats.Get(status.KeyFrameMillis)
	l.statDropped = reg.Ints.Get(status.KeyEventsDropped)

	l.last = l.time.Now()
	return l
}

// Paused reports whether simulation is suspended
func (l *Loop) Paused() bool {
	return l.statPaused.Load()
}

// SetPaused suspends or resumes simulation; rendering continues while paused
func (l *Loop) SetPaused(paused bool) {
	l.statPaused.Store(paused)
}

// Run ticks frames until ctx is done, the input channel closes or a quit event arrives
// Quitting is not an error
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-l.input:
			if !ok {
				return nil
			}
			if !l.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			l.Frame()
		}
	}
}

// Handle applies one input event; returns false when the loop should stop
func (l *Loop) Handle(ev input.Event) bool {
	switch ev.Kind {
	case input.EventQuit:
		l.logger.Info("quit requested", "frame", l.game.State.Frame)
		return false
	case input.EventPause:
		l.SetPaused(!l.Paused())
		if !l.Paused() {
			// Time spent paused is not simulated
			l.last = l.time.Now()
		}
		l.logger.Debug("pause toggled", "paused", l.Paused())
	case input.EventResize:
		l.width, l.height = ev.Width, ev.Height
	default:
		l.game.State.Latch.Apply(ev)
	}
	return true
}

// Frame measures elapsed time, steps the game unless paused, dispatches events and renders
func (l *Loop) Frame() {
	now := l.time.Now()
	if l.expirer != nil {
		for _, ev := range l.expirer.Expire(now) {
			l.Handle(ev)
		}
	}

	dt := now.Sub(l.last)
	l.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > l.maxDelta {
		l.logger.Debug("frame delta clamped", "elapsed", dt, "max", l.maxDelta)
		dt = l.maxDelta
	}

	paused := l.Paused()
	if !paused {
		l.game.Tick(dt)
		l.statFrameMs.Set(float64(dt) / float64(time.Millisecond))

		if l.recorder != nil {
			if err := l.recorder.RecordFrame(l.game.State); err != nil {
				l.logger.Warn("recording stopped", "error", err)
				l.recorder = nil
			}
		}
	}

	l.dispatch()

	if l.render != nil {
		l.render(View{
			Game:   l.game,
			Paused: paused,
			Delta:  dt,
			Width:  l.width,
			Height: l.height,
		})
	}
}

func (l *Loop) dispatch() {
	q := l.game.State.Events
	q.Drain(func(ev event.GameEvent) {
		l.logger.Debug("event", "type", ev.Type.String(), "frame", ev.Frame)
		for _, listener := range l.listeners {
			listener.HandleEvent(ev)
		}
	})
	l.statDropped.Store(int64(q.Dropped()))
}
