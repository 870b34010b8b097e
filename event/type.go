package event

// EventType represents the type of game event
type EventType int

const (
	// EventEnemySpawned reports a new enemy registered with the crowd
	// Trigger: SpawnSystem | Payload: EnemySpawnedPayload
	EventEnemySpawned EventType = iota

	// EventEnemyKilled reports an enemy removed by a projectile hit
	// Trigger: CollisionSystem | Payload: EnemyKilledPayload
	EventEnemyKilled

	// EventProjectileFired reports an honored fire request
	// Trigger: WeaponSystem | Payload: ProjectileFiredPayload
	EventProjectileFired

	// EventProjectileCulled reports a projectile that left the arena
	// Trigger: CullSystem | Payload: ProjectileCulledPayload
	EventProjectileCulled

	// EventFireRejected reports a fire request ignored during cooldown
	// Trigger: WeaponSystem | Payload: FireRejectedPayload
	EventFireRejected

	// EventSpawnDropped reports a spawn skipped because the population is at cap
	// Trigger: SpawnSystem | Payload: SpawnDroppedPayload
	EventSpawnDropped

	// EventSpawnUnreachable reports a spawn abandoned for lack of a navigable point
	// Trigger: SpawnSystem | Payload: SpawnUnreachablePayload
	EventSpawnUnreachable
)

var typeNames = map[EventType]string{
	EventEnemySpawned:     "enemy_spawned",
	EventEnemyKilled:      "enemy_killed",
	EventProjectileFired:  "projectile_fired",
	EventProjectileCulled: "projectile_culled",
	EventFireRejected:     "fire_rejected",
	EventSpawnDropped:     "spawn_dropped",
	EventSpawnUnreachable: "spawn_unreachable",
}

func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is one queued notification, stamped with the frame that produced it
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
