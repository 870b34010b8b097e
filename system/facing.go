package system

import (
	"time"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// FacingSystem remembers the last non-zero movement direction and turns the player to it
type FacingSystem struct{}

// NewFacingSystem creates the facing phase
func NewFacingSystem() engine.System {
	return &FacingSystem{}
}

// Name returns system's name
func (s *FacingSystem) Name() string {
	return "facing"
}

func (s *FacingSystem) Priority() int {
	return parameter.PriorityFacing
}

// Update keeps Facing across frames without movement
func (s *FacingSystem) Update(state *engine.GameState, dt time.Duration) {
	if move := core.Horizontal(state.Intent.Movement); !core.IsZero(move) {
		state.Facing = core.Normalize(move)
	}

	player, ok := state.Registry.Player()
	if !ok {
		return
	}
	t := player.Transform
	t.LookAlong(state.Facing)
	_ = state.Registry.SetTransform(player.ID, t)
}
