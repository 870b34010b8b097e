package engine

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/component"
	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// Registry owns the live actors: one player, enemies and projectiles
// Every mutation is mirrored to the world engine so collision volumes follow transforms
type Registry struct {
	collider Collider
	crowd    Crowd

	actors      *Store[component.ActorComponent]
	enemies     *Store[component.EnemyComponent]
	projectiles *Store[component.ProjectileComponent]

	player core.Entity
	nextID core.Entity
	free   []core.Entity // Released ids, ascending

	halfExtents map[core.Kind]mgl64.Vec3
}

// NewRegistry creates an empty registry bound to the world engine's collider and crowd
func NewRegistry(collider Collider, crowd Crowd) *Registry {
	return &Registry{
		collider:    collider,
		crowd:       crowd,
		actors:      NewStore[component.ActorComponent](),
		enemies:     NewStore[component.EnemyComponent](),
		projectiles: NewStore[component.ProjectileComponent](),
		nextID:      1,
		halfExtents: map[core.Kind]mgl64.Vec3{
			core.KindPlayer:     {parameter.CharacterHalfWidth, parameter.CharacterHalfHeight, parameter.CharacterHalfDepth},
			core.KindEnemy:      {parameter.CharacterHalfWidth, parameter.CharacterHalfHeight, parameter.CharacterHalfDepth},
			core.KindProjectile: {parameter.ProjectileHalfWidth, parameter.ProjectileHalfHeight, parameter.ProjectileHalfDepth},
		},
	}
}

// SetHalfExtents overrides the collision volume size for actors of kind spawned afterwards
func (r *Registry) SetHalfExtents(kind core.Kind, half mgl64.Vec3) {
	r.halfExtents[kind] = half
}

// HalfExtents returns the collision volume size used for kind
func (r *Registry) HalfExtents(kind core.Kind) mgl64.Vec3 {
	return r.halfExtents[kind]
}

// Spawn allocates an actor with a fresh id, registers its collision volume and returns it
// Characters start Idle; projectiles have no visual state
func (r *Registry) Spawn(kind core.Kind, t core.Transform) (component.ActorComponent, error) {
	if kind == core.KindPlayer && r.player != 0 {
		return component.ActorComponent{}, ErrPlayerExists
	}
	if kind > core.KindProjectile {
		return component.ActorComponent{}, fmt.Errorf("spawn: unknown kind %d", kind)
	}

	half := r.halfExtents[kind]
	actor := component.ActorComponent{
		ID:          r.allocID(),
		Kind:        kind,
		Transform:   t,
		Visual:      core.VisualIdle,
		Volume:      r.collider.CreateVolume(t, half),
		HalfExtents: half,
	}

	switch kind {
	case core.KindPlayer:
		r.player = actor.ID
	case core.KindEnemy:
		r.enemies.Set(actor.ID, component.EnemyComponent{})
	case core.KindProjectile:
		actor.Visual = core.VisualNone
		r.projectiles.Set(actor.ID, component.ProjectileComponent{})
	}

	r.actors.Set(actor.ID, actor)
	return actor, nil
}

// Destroy releases the actor's volume and agent and removes it
// Absent ids are a no-op so a frame may queue the same actor twice
func (r *Registry) Destroy(id core.Entity) bool {
	actor, ok := r.actors.Get(id)
	if !ok {
		return false
	}

	if enemy, ok := r.enemies.Get(id); ok {
		if enemy.Agent != 0 {
			r.crowd.RemoveAgent(enemy.Agent)
		}
		r.enemies.Remove(id)
	}
	r.projectiles.Remove(id)
	r.collider.DisposeVolume(actor.Volume)
	r.actors.Remove(id)

	if r.player == id {
		r.player = 0
	}
	r.releaseID(id)
	return true
}

// SetVisualState switches the single active representation of a character
// Projectiles carry no visual state and are left untouched
func (r *Registry) SetVisualState(id core.Entity, state core.VisualState) error {
	actor := r.actors.Ptr(id)
	if actor == nil {
		return ErrNotFound
	}
	if actor.Kind == core.KindProjectile {
		return nil
	}
	actor.Visual = state
	return nil
}

// SetTransform replaces the actor's transform and moves its collision volume with it
func (r *Registry) SetTransform(id core.Entity, t core.Transform) error {
	actor := r.actors.Ptr(id)
	if actor == nil {
		return ErrNotFound
	}
	actor.Transform = t
	r.collider.SetVolumeTransform(actor.Volume, t)
	return nil
}

// SetPosition moves the actor keeping its orientation
func (r *Registry) SetPosition(id core.Entity, pos mgl64.Vec3) error {
	actor, ok := r.actors.Get(id)
	if !ok {
		return ErrNotFound
	}
	actor.Transform.Position = pos
	return r.SetTransform(id, actor.Transform)
}

// AttachAgent records the crowd agent steering an enemy
func (r *Registry) AttachAgent(id core.Entity, agent core.AgentID) error {
	enemy := r.enemies.Ptr(id)
	if enemy == nil {
		return ErrNotFound
	}
	enemy.Agent = agent
	return nil
}

// SetProjectile replaces the projectile data for id
func (r *Registry) SetProjectile(id core.Entity, p component.ProjectileComponent) error {
	if !r.projectiles.Has(id) {
		return ErrNotFound
	}
	r.projectiles.Set(id, p)
	return nil
}

// Get returns a copy of the actor record
func (r *Registry) Get(id core.Entity) (component.ActorComponent, bool) {
	return r.actors.Get(id)
}

// Enemy returns the enemy data for id
func (r *Registry) Enemy(id core.Entity) (component.EnemyComponent, bool) {
	return r.enemies.Get(id)
}

// Projectile returns the projectile data for id
func (r *Registry) Projectile(id core.Entity) (component.ProjectileComponent, bool) {
	return r.projectiles.Get(id)
}

// Player returns the live player
func (r *Registry) Player() (component.ActorComponent, bool) {
	if r.player == 0 {
		return component.ActorComponent{}, false
	}
	return r.actors.Get(r.player)
}

// Enemies returns a snapshot of live enemy ids
func (r *Registry) Enemies() []core.Entity {
	return r.enemies.Entities()
}

// Projectiles returns a snapshot of live projectile ids
func (r *Registry) Projectiles() []core.Entity {
	return r.projectiles.Entities()
}

// Count returns the number of live actors of kind
func (r *Registry) Count(kind core.Kind) int {
	switch kind {
	case core.KindPlayer:
		if r.player != 0 {
			return 1
		}
		return 0
	case core.KindEnemy:
		return r.enemies.Len()
	case core.KindProjectile:
		return r.projectiles.Len()
	}
	return 0
}

// Len returns the number of live actors
func (r *Registry) Len() int {
	return r.actors.Len()
}

// Clear destroys every actor, player included
func (r *Registry) Clear() {
	for _, id := range r.actors.Entities() {
		r.Destroy(id)
	}
}

// allocID hands out the lowest released id, or the next unused one
func (r *Registry) allocID() core.Entity {
	if len(r.free) > 0 {
		id := r.free[0]
		r.free = r.free[1:]
		return id
	}
	id := r.nextID
	r.nextID++
	return id
}

func (r *Registry) releaseID(id core.Entity) {
	i, found := slices.BinarySearch(r.free, id)
	if found {
		return
	}
	r.free = slices.Insert(r.free, i, id)
}
