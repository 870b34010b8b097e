package system

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/parameter"
	"github.com/lixenwraith/lizard-arena/status"
)

// CullSystem marks projectiles that left the arena on either horizontal axis
type CullSystem struct {
	statCulled *atomic.Int64
}

// NewCullSystem creates the out-of-bounds phase
func NewCullSystem(reg *status.Registry) engine.System {
	return &CullSystem{
		statCulled: reg.Ints.Get(status.KeyShotsCulled),
	}
}

// Name returns system's name
func (s *CullSystem) Name() string {
	return "cull"
}

func (s *CullSystem) Priority() int {
	return parameter.PriorityCull
}

// Update marks every projectile beyond the arena half extent
func (s *CullSystem) Update(state *engine.GameState, dt time.Duration) {
	limit := state.Tuning.ArenaHalfExtent

	for _, id := range state.Registry.Projectiles() {
		if state.IsMarked(id) {
			continue
		}
		actor, ok := state.Registry.Get(id)
		if !ok {
			continue
		}
		pos := actor.Transform.Position
		if math.Abs(pos.X()) <= limit && math.Abs(pos.Z()) <= limit {
			continue
		}

		state.MarkForRemoval(id)
		s.statCulled.Add(1)
		state.Emit(event.EventProjectileCulled, event.ProjectileCulledPayload{
			Projectile: id,
			Position:   pos,
		})
	}
}
