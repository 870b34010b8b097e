package system

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/parameter"
	"github.com/lixenwraith/lizard-arena/status"
)

// InitialWave marks enemies spawned outside any spawn point
const InitialWave = -1

// SpawnSystem counts down every spawn point and produces enemies when a cooldown runs out
// A spawn at capacity is dropped, not queued: the point waits a full period before trying again
type SpawnSystem struct {
	statSpawned     *atomic.Int64
	statDropped     *atomic.Int64
	statUnreachable *atomic.Int64
}

// NewSpawnSystem creates the spawn phase
func NewSpawnSystem(reg *status.Registry) *SpawnSystem {
	return &SpawnSystem{
		statSpawned:     reg.Ints.Get(status.KeyEnemiesSpawned),
		statDropped:     reg.Ints.Get(status.KeySpawnsDropped),
		statUnreachable: reg.Ints.Get(status.KeySpawnsBlocked),
	}
}

// Name returns system's name
func (s *SpawnSystem) Name() string {
	return "spawn"
}

func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

// Update ticks every spawn point by dt
func (s *SpawnSystem) Update(state *engine.GameState, dt time.Duration) {
	for i := range state.SpawnPoints {
		sp := &state.SpawnPoints[i]
		sp.CooldownRemaining -= dt
		if sp.CooldownRemaining > 0 {
			continue
		}
		sp.CooldownRemaining = sp.Period

		// Failures are absorbed; the events carry the detail
		_, _ = s.Spawn(state, sp.Location, i)
	}
}

// Spawn registers one enemy at the navigable point nearest location and hands it to the crowd
// Returns engine.ErrCapacity at the population cap and engine.ErrUnreachable when no navigable
// point lies within the search radius; neither leaves any trace in the registry
func (s *SpawnSystem) Spawn(state *engine.GameState, location mgl64.Vec3, spawnPoint int) (core.Entity, error) {
	population := state.Registry.Count(core.KindEnemy)
	if population >= state.Tuning.MaximumEnemies {
		s.statDropped.Add(1)
		state.Emit(event.EventSpawnDropped, event.SpawnDroppedPayload{
			SpawnPoint: spawnPoint,
			Population: population,
		})
		return 0, engine.ErrCapacity
	}

	ground, ok := state.World.NearestNavigable(location, state.Tuning.SpawnSearchRadius)
	if !ok {
		s.statUnreachable.Add(1)
		state.Emit(event.EventSpawnUnreachable, event.SpawnUnreachablePayload{
			SpawnPoint: spawnPoint,
			Location:   location,
		})
		return 0, engine.ErrUnreachable
	}

	// Navigable points lie on the walking surface; actors are centered on their volume
	half := state.Registry.HalfExtents(core.KindEnemy)
	pos := ground.Add(mgl64.Vec3{0, half.Y(), 0})

	actor, err := state.Registry.Spawn(core.KindEnemy, core.NewTransform(pos))
	if err != nil {
		return 0, fmt.Errorf("spawn enemy: %w", err)
	}
	agent := state.World.AddAgent(pos, state.Tuning.Agent)
	if err := state.Registry.AttachAgent(actor.ID, agent); err != nil {
		state.World.RemoveAgent(agent)
		state.Registry.Destroy(actor.ID)
		return 0, fmt.Errorf("attach agent: %w", err)
	}
	_ = state.Registry.SetVisualState(actor.ID, core.VisualWalk)

	s.statSpawned.Add(1)
	state.Emit(event.EventEnemySpawned, event.EnemySpawnedPayload{
		Enemy:      actor.ID,
		SpawnPoint: spawnPoint,
		Position:   pos,
	})
	return actor.ID, nil
}
