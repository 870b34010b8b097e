package system

import (
	"github.com/lixenwraith/lizard-arena/engine"
)

// RegisterAll adds every simulation phase; AddSystem sorts them into frame order
// The spawn phase is returned so callers can seed an initial wave through it
func RegisterAll(sim *engine.Simulation) *SpawnSystem {
	reg := sim.State().Status
	spawner := NewSpawnSystem(reg)
	sim.AddSystem(spawner)
	sim.AddSystem(NewSteeringSystem())
	sim.AddSystem(NewProjectileSystem())
	sim.AddSystem(NewCollisionSystem(reg))
	sim.AddSystem(NewCullSystem(reg))
	sim.AddSystem(NewSweepSystem())
	sim.AddSystem(NewFacingSystem())
	sim.AddSystem(NewMovementSystem())
	sim.AddSystem(NewWeaponSystem(reg))
	sim.AddSystem(NewVisualSystem())
	return spawner
}
