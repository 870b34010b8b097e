package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
)

// Collider owns collision volumes and answers intersection queries
type Collider interface {
	// CreateVolume registers an axis-aligned box of the given half extents centered on t
	CreateVolume(t core.Transform, half mgl64.Vec3) core.VolumeID
	// DisposeVolume releases a volume; unknown ids are ignored
	DisposeVolume(id core.VolumeID)
	// SetVolumeTransform moves a volume to follow its actor
	SetVolumeTransform(id core.VolumeID, t core.Transform)
	// SetEnabled toggles visibility; disabled volumes never intersect
	SetEnabled(id core.VolumeID, enabled bool)
	// Intersects tests two volumes
	Intersects(a, b core.VolumeID) bool
}

// Navigator answers queries against the navigation surface
type Navigator interface {
	// NearestNavigable returns the closest walkable point within radius of p
	NearestNavigable(p mgl64.Vec3, radius float64) (mgl64.Vec3, bool)
}

// AgentParams configures a crowd agent
type AgentParams struct {
	Radius   float64
	MaxSpeed float64
}

// Crowd steers agents toward individually assigned goals
type Crowd interface {
	AddAgent(start mgl64.Vec3, params AgentParams) core.AgentID
	// RemoveAgent releases an agent; unknown ids are ignored
	RemoveAgent(id core.AgentID)
	SetGoal(id core.AgentID, goal mgl64.Vec3)
	AgentPosition(id core.AgentID) (mgl64.Vec3, bool)
}

// Mover resolves a desired displacement against static geometry
type Mover interface {
	// MoveWithCollisions moves the volume and returns its corrected center
	MoveWithCollisions(id core.VolumeID, displacement mgl64.Vec3) mgl64.Vec3
}

// WorldEngine is the full collaborator consumed by the simulation and the frame loop
type WorldEngine interface {
	Collider
	Navigator
	Crowd
	Mover
	// Advance runs the engine's own per-frame work (crowd integration, animated geometry)
	Advance(dt time.Duration)
}
