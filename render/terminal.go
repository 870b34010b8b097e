package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/input"
)

// Terminal is the tcell frontend: it draws frames and feeds key events to the loop
type Terminal struct {
	screen    tcell.Screen
	keys      *KeySource
	clock     engine.TimeProvider
	closeOnce sync.Once
}

// NewTerminal opens the controlling terminal
func NewTerminal(clock engine.TimeProvider) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return NewTerminalWithScreen(screen, clock), nil
}

// NewTerminalWithScreen wraps an initialized screen
func NewTerminalWithScreen(screen tcell.Screen, clock engine.TimeProvider) *Terminal {
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(RgbBackground))
	return &Terminal{
		screen: screen,
		keys:   NewKeySource(),
		clock:  clock,
	}
}

// Keys returns the key source, which also releases held keys for the loop
func (t *Terminal) Keys() *KeySource {
	return t.keys
}

// Size returns the terminal dimensions
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// Close restores the terminal; safe to call more than once
func (t *Terminal) Close() {
	t.closeOnce.Do(t.screen.Fini)
}

// Pump forwards translated terminal events to out until the screen closes or ctx ends
func (t *Terminal) Pump(ctx context.Context, out chan<- input.Event) error {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		for _, e := range t.keys.Translate(ev, t.clock.Now()) {
			select {
			case out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
