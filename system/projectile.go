package system

import (
	"time"

	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// ProjectileSystem advances projectiles along the direction fixed at spawn
type ProjectileSystem struct{}

// NewProjectileSystem creates the projectile phase
func NewProjectileSystem() engine.System {
	return &ProjectileSystem{}
}

// Name returns system's name
func (s *ProjectileSystem) Name() string {
	return "projectile"
}

func (s *ProjectileSystem) Priority() int {
	return parameter.PriorityProjectile
}

// Update integrates position by direction * speed * dt
func (s *ProjectileSystem) Update(state *engine.GameState, dt time.Duration) {
	step := state.Tuning.ProjectileSpeed * dt.Seconds()

	for _, id := range state.Registry.Projectiles() {
		p, ok := state.Registry.Projectile(id)
		if !ok {
			continue
		}
		actor, ok := state.Registry.Get(id)
		if !ok {
			continue
		}
		p.Age += dt
		_ = state.Registry.SetProjectile(id, p)
		_ = state.Registry.SetPosition(id, actor.Transform.Position.Add(p.Direction.Mul(step)))
	}
}
