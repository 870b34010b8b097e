package engine

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/input"
	"github.com/lixenwraith/lizard-arena/parameter"
	"github.com/lixenwraith/lizard-arena/status"
)

// SpawnPoint periodically produces enemies at Location
// Mutated only by the spawn phase; spawn points are never removed
type SpawnPoint struct {
	Location          mgl64.Vec3
	CooldownRemaining time.Duration
	Period            time.Duration
}

// Tuning holds the gameplay constants the phases read every frame
type Tuning struct {
	PlayerSpeed       float64 // units/s
	Gravity           float64 // units/s, constant downward bias on player moves
	ProjectileSpeed   float64 // units/s
	MuzzleHeight      float64
	ArenaHalfExtent   float64
	SpawnSearchRadius float64
	FireCooldown      time.Duration
	MaximumEnemies    int
	Agent             AgentParams
}

// DefaultTuning returns the stock gameplay constants
func DefaultTuning() Tuning {
	return Tuning{
		PlayerSpeed:       parameter.PlayerSpeed,
		Gravity:           parameter.Gravity,
		ProjectileSpeed:   parameter.ProjectileSpeed,
		MuzzleHeight:      parameter.MuzzleHeight,
		ArenaHalfExtent:   parameter.ArenaHalfExtent,
		SpawnSearchRadius: parameter.SpawnSearchRadius,
		FireCooldown:      parameter.FireCooldown,
		MaximumEnemies:    parameter.MaximumEnemies,
		Agent: AgentParams{
			Radius:   parameter.EnemyRadius,
			MaxSpeed: parameter.EnemySpeed,
		},
	}
}

// GameState is the single owned aggregate the simulation phases operate on
type GameState struct {
	World    WorldEngine
	Registry *Registry
	Latch    *input.Latch
	Events   *event.Queue
	Status   *status.Registry
	Tuning   Tuning
	Rand     *rand.Rand

	SpawnPoints []SpawnPoint

	// Rebuilt from the latch at the start of every frame
	Intent input.Intent

	// Facing persists across frames with no movement
	Facing mgl64.Vec3

	// Game time, accumulated from real frame deltas
	Now   time.Duration
	Frame int64

	// Weapon timestamps in game time
	FireReadyAt time.Duration
	AttackUntil time.Duration

	// Removal marks for the current frame, applied by the sweep phase
	doomed     map[core.Entity]struct{}
	doomedList []core.Entity
}

// NewGameState wires an empty state around the world engine
func NewGameState(world WorldEngine, latch *input.Latch, tuning Tuning) *GameState {
	return &GameState{
		World:    world,
		Registry: NewRegistry(world, world),
		Latch:    latch,
		Events:   event.NewQueue(),
		Status:   status.NewRegistry(),
		Tuning:   tuning,
		Rand:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x11a2d)),
		Facing:   core.AxisForward,
		doomed:   make(map[core.Entity]struct{}),
	}
}

// AddSpawnPoint registers a spawn point; the first spawn happens once its cooldown runs out
func (s *GameState) AddSpawnPoint(location mgl64.Vec3, period, initialCooldown time.Duration) {
	s.SpawnPoints = append(s.SpawnPoints, SpawnPoint{
		Location:          location,
		CooldownRemaining: initialCooldown,
		Period:            period,
	})
}

// MarkForRemoval queues id for the sweep phase; marking twice is harmless
// The actor's volume is disabled at once so later phases of the frame cannot hit it
func (s *GameState) MarkForRemoval(id core.Entity) {
	if _, ok := s.doomed[id]; ok {
		return
	}
	s.doomed[id] = struct{}{}
	s.doomedList = append(s.doomedList, id)
	if actor, ok := s.Registry.Get(id); ok {
		s.World.SetEnabled(actor.Volume, false)
	}
}

// IsMarked reports whether id is queued for removal this frame
func (s *GameState) IsMarked(id core.Entity) bool {
	_, ok := s.doomed[id]
	return ok
}

// Marked returns the queued ids in marking order
func (s *GameState) Marked() []core.Entity {
	return s.doomedList
}

// ClearMarks empties the removal queue
func (s *GameState) ClearMarks() {
	clear(s.doomed)
	s.doomedList = s.doomedList[:0]
}

// Emit pushes an event stamped with the current frame
func (s *GameState) Emit(t event.EventType, payload any) {
	s.Events.Push(event.GameEvent{Type: t, Payload: payload, Frame: s.Frame})
}
