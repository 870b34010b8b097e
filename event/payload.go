package event

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
)

// EnemySpawnedPayload carries the new enemy and the spawn point that produced it
// SpawnPoint is -1 for the initial wave
type EnemySpawnedPayload struct {
	Enemy      core.Entity
	SpawnPoint int
	Position   mgl64.Vec3
}

// EnemyKilledPayload pairs the enemy with the projectile credited for the kill
type EnemyKilledPayload struct {
	Enemy      core.Entity
	Projectile core.Entity
	Position   mgl64.Vec3
}

// ProjectileFiredPayload describes a freshly spawned projectile
type ProjectileFiredPayload struct {
	Projectile core.Entity
	Origin     mgl64.Vec3
	Direction  mgl64.Vec3
}

// ProjectileCulledPayload reports where a projectile left the arena
type ProjectileCulledPayload struct {
	Projectile core.Entity
	Position   mgl64.Vec3
}

// FireRejectedPayload reports how long the weapon still needs to cool down
type FireRejectedPayload struct {
	Remaining time.Duration
}

// SpawnDroppedPayload reports a capacity drop
type SpawnDroppedPayload struct {
	SpawnPoint int
	Population int
}

// SpawnUnreachablePayload reports a spawn location with no navigable point in range
type SpawnUnreachablePayload struct {
	SpawnPoint int
	Location   mgl64.Vec3
}
