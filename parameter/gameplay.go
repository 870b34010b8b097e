package parameter

import "time"

// Player
const (
	// PlayerSpeed in world units per second (0.05 per frame at 60 FPS)
	PlayerSpeed = 3.0

	// Gravity is the constant downward bias applied to every player move, units per second
	Gravity = 6.0

	// PlayerStartX, PlayerStartY, PlayerStartZ is where the player drops in
	PlayerStartX = -3.0
	PlayerStartY = 3.0
	PlayerStartZ = 0.0
)

// Character collision volume, shared by player and enemies (1 x 2 x 1 box)
const (
	CharacterHalfWidth  = 0.5
	CharacterHalfHeight = 1.0
	CharacterHalfDepth  = 0.5
)

// Projectiles
const (
	// ProjectileSpeed in world units per second (0.25 per frame at 60 FPS)
	ProjectileSpeed = 15.0

	// ProjectileHalfWidth, ProjectileHalfHeight, ProjectileHalfDepth describe the 0.25 x 0.25 x 0.5 bolt
	ProjectileHalfWidth  = 0.125
	ProjectileHalfHeight = 0.125
	ProjectileHalfDepth  = 0.25

	// MuzzleHeight is the offset above the player's center where projectiles appear
	MuzzleHeight = 0.75

	// FireCooldown is the minimum interval between two honored fire requests
	FireCooldown = 250 * time.Millisecond

	// ArenaHalfExtent bounds projectile travel on both horizontal axes
	ArenaHalfExtent = 12.0
)

// Enemies and spawning
const (
	// MaximumEnemies caps the live enemy population
	MaximumEnemies = 10

	// SpawnPeriod is the default interval between spawns at one spawn point
	SpawnPeriod = 2 * time.Second

	// SpawnSearchRadius bounds the nearest-navigable-point search around a spawn location
	SpawnSearchRadius = 2.0

	// EnemySpeed is the crowd agent maximum speed, units per second
	EnemySpeed = 1.5

	// EnemyRadius is the crowd agent separation radius
	EnemyRadius = 0.6
)
