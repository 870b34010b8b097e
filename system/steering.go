package system

import (
	"time"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// SteeringSystem aims every enemy's crowd agent at the player and copies agent positions back
type SteeringSystem struct{}

// NewSteeringSystem creates the steering phase
func NewSteeringSystem() engine.System {
	return &SteeringSystem{}
}

// Name returns system's name
func (s *SteeringSystem) Name() string {
	return "steering"
}

func (s *SteeringSystem) Priority() int {
	return parameter.PrioritySteering
}

// Update retargets agents and syncs enemy transforms
// Without a player, agents keep their last goal
func (s *SteeringSystem) Update(state *engine.GameState, dt time.Duration) {
	player, hasPlayer := state.Registry.Player()

	for _, id := range state.Registry.Enemies() {
		enemy, ok := state.Registry.Enemy(id)
		if !ok || enemy.Agent == 0 {
			continue
		}
		if hasPlayer {
			state.World.SetGoal(enemy.Agent, player.Transform.Position)
		}

		pos, ok := state.World.AgentPosition(enemy.Agent)
		if !ok {
			continue
		}
		actor, _ := state.Registry.Get(id)
		t := actor.Transform
		t.LookAlong(core.Horizontal(pos.Sub(t.Position)))
		t.Position = pos
		_ = state.Registry.SetTransform(id, t)
	}
}
