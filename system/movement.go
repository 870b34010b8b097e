package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// MovementSystem integrates the player's latched movement plus the gravity bias,
// resolved against static geometry by the world engine
type MovementSystem struct{}

// NewMovementSystem creates the movement phase
func NewMovementSystem() engine.System {
	return &MovementSystem{}
}

// Name returns system's name
func (s *MovementSystem) Name() string {
	return "movement"
}

func (s *MovementSystem) Priority() int {
	return parameter.PriorityMovement
}

// Update moves the player by (direction * speed + down * gravity) * dt
func (s *MovementSystem) Update(state *engine.GameState, dt time.Duration) {
	player, ok := state.Registry.Player()
	if !ok || dt <= 0 {
		return
	}
	secs := dt.Seconds()

	displacement := state.Intent.Movement.Mul(state.Tuning.PlayerSpeed * secs).
		Add(mgl64.Vec3{0, -state.Tuning.Gravity * secs, 0})

	pos := state.World.MoveWithCollisions(player.Volume, displacement)
	_ = state.Registry.SetPosition(player.ID, pos)
}
