package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ProjectileComponent marks a straight-line bolt
// Direction is fixed at spawn; projectiles do not turn
type ProjectileComponent struct {
	Direction mgl64.Vec3
	Age       time.Duration
	Color     uint32 // 0xRRGGBB, picked at spawn
}
