package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/status"
)

// System is one ordered phase of the per-frame simulation
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update(state *GameState, dt time.Duration)
}

// Simulation runs the registered phases once per frame in priority order
// Not re-entrant: a step runs to completion before the next begins
type Simulation struct {
	state   *GameState
	systems []System

	statFrames  *atomic.Int64
	statEnemies *atomic.Int64
}

// NewSimulation creates a simulation over state with no phases
func NewSimulation(state *GameState) *Simulation {
	return &Simulation{
		state:       state,
		systems:     make([]System, 0, 12),
		statFrames:  state.Status.Ints.Get(status.KeyFrames),
		statEnemies: state.Status.Ints.Get(status.KeyEnemiesAlive),
	}
}

// AddSystem registers a phase and keeps phases sorted by priority
func (sim *Simulation) AddSystem(system System) {
	sim.systems = append(sim.systems, system)

	// Bubble sort, small N; stable for equal priorities
	for i := 0; i < len(sim.systems)-1; i++ {
		for j := 0; j < len(sim.systems)-i-1; j++ {
			if sim.systems[j].Priority() > sim.systems[j+1].Priority() {
				sim.systems[j], sim.systems[j+1] = sim.systems[j+1], sim.systems[j]
			}
		}
	}
}

// Systems returns the phases in execution order
func (sim *Simulation) Systems() []System {
	out := make([]System, len(sim.systems))
	copy(out, sim.systems)
	return out
}

// State returns the aggregate the simulation mutates
func (sim *Simulation) State() *GameState {
	return sim.state
}

// Step advances the game by dt of real elapsed time
// Negative deltas are treated as zero
func (sim *Simulation) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s := sim.state
	s.Frame++
	s.Now += dt
	s.Intent = s.Latch.EffectiveIntent()

	for _, system := range sim.systems {
		system.Update(s, dt)
	}

	sim.statFrames.Store(s.Frame)
	sim.statEnemies.Store(int64(s.Registry.Count(core.KindEnemy)))
}
