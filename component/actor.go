package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
)

// ActorComponent is the shared record of every live actor
// Volume follows Transform: the registry pushes every transform change to the world engine
type ActorComponent struct {
	ID          core.Entity
	Kind        core.Kind
	Transform   core.Transform
	Visual      core.VisualState // VisualNone for projectiles
	Volume      core.VolumeID
	HalfExtents mgl64.Vec3
}
