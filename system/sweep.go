package system

import (
	"time"

	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// SweepSystem destroys every actor marked earlier in the frame
// Runs after all marking phases so no phase sees an actor vanish mid-iteration
type SweepSystem struct{}

// NewSweepSystem creates the removal phase
func NewSweepSystem() engine.System {
	return &SweepSystem{}
}

// Name returns system's name
func (s *SweepSystem) Name() string {
	return "sweep"
}

func (s *SweepSystem) Priority() int {
	return parameter.PrioritySweep
}

// Update applies and clears the marks; ids already gone are skipped by the registry
func (s *SweepSystem) Update(state *engine.GameState, dt time.Duration) {
	for _, id := range state.Marked() {
		state.Registry.Destroy(id)
	}
	state.ClearMarks()
}
