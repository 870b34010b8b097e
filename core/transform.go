package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axes in world space: Y is up, X/Z is the ground plane, +Z is the model forward axis
var (
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
)

// directionEpsilon is the length below which a direction counts as zero
const directionEpsilon = 0.001

// Transform is position plus orientation in world space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform returns a transform at pos facing the forward axis
func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

// Forward returns the unit vector the transform is looking along
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(AxisForward)
}

// LookAlong orients the transform to face dir projected onto the ground plane
// A zero horizontal direction leaves the rotation unchanged
func (t *Transform) LookAlong(dir mgl64.Vec3) {
	flat := Horizontal(dir)
	if IsZero(flat) {
		return
	}
	yaw := math.Atan2(flat.X(), flat.Z())
	t.Rotation = mgl64.QuatRotate(yaw, AxisUp)
}

// Horizontal drops the vertical component
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// IsZero reports whether v is shorter than the direction epsilon
func IsZero(v mgl64.Vec3) bool {
	return v.Len() < directionEpsilon
}

// Normalize returns v scaled to unit length, or the zero vector when v is zero
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	if IsZero(v) {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}
