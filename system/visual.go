package system

import (
	"time"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// VisualSystem picks the player's single active representation:
// Attack inside the post-fire window, else Walk while moving, else Idle
type VisualSystem struct{}

// NewVisualSystem creates the visual phase
func NewVisualSystem() engine.System {
	return &VisualSystem{}
}

// Name returns system's name
func (s *VisualSystem) Name() string {
	return "visual"
}

func (s *VisualSystem) Priority() int {
	return parameter.PriorityVisual
}

func (s *VisualSystem) Update(state *engine.GameState, dt time.Duration) {
	player, ok := state.Registry.Player()
	if !ok {
		return
	}

	want := core.VisualIdle
	switch {
	case state.Now < state.AttackUntil:
		want = core.VisualAttack
	case !core.IsZero(state.Intent.Movement):
		want = core.VisualWalk
	}
	if player.Visual != want {
		_ = state.Registry.SetVisualState(player.ID, want)
	}
}
