package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/parameter"
	"github.com/lixenwraith/lizard-arena/status"
)

// CollisionSystem pairs projectiles with the enemies they hit
// Each projectile kills at most one enemy per frame and each enemy dies to at most one projectile;
// a projectile whose only overlaps are already-claimed enemies flies on
type CollisionSystem struct {
	statKilled *atomic.Int64
}

// NewCollisionSystem creates the collision phase
func NewCollisionSystem(reg *status.Registry) engine.System {
	return &CollisionSystem{
		statKilled: reg.Ints.Get(status.KeyEnemiesKilled),
	}
}

// Name returns system's name
func (s *CollisionSystem) Name() string {
	return "collision"
}

func (s *CollisionSystem) Priority() int {
	return parameter.PriorityCollision
}

// Update marks hit pairs for the sweep; O(projectiles x enemies)
func (s *CollisionSystem) Update(state *engine.GameState, dt time.Duration) {
	enemies := state.Registry.Enemies()
	if len(enemies) == 0 {
		return
	}

	for _, pid := range state.Registry.Projectiles() {
		if state.IsMarked(pid) {
			continue
		}
		shot, ok := state.Registry.Get(pid)
		if !ok {
			continue
		}

		for _, eid := range enemies {
			if state.IsMarked(eid) {
				continue
			}
			enemy, ok := state.Registry.Get(eid)
			if !ok {
				continue
			}
			if !state.World.Intersects(shot.Volume, enemy.Volume) {
				continue
			}

			state.MarkForRemoval(pid)
			state.MarkForRemoval(eid)
			s.statKilled.Add(1)
			state.Emit(event.EventEnemyKilled, event.EnemyKilledPayload{
				Enemy:      eid,
				Projectile: pid,
				Position:   enemy.Transform.Position,
			})
			break
		}
	}
}
