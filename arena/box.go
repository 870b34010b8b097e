package arena

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box given by center and half extents
type Box struct {
	Center mgl64.Vec3
	Half   mgl64.Vec3
}

// Min returns the lower corner
func (b Box) Min() mgl64.Vec3 {
	return b.Center.Sub(b.Half)
}

// Max returns the upper corner
func (b Box) Max() mgl64.Vec3 {
	return b.Center.Add(b.Half)
}

// Intersects reports whether two boxes overlap with positive volume
// Touching faces do not intersect, so an actor resting on a surface is not penetrating it
func (b Box) Intersects(o Box) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(b.Center[i]-o.Center[i]) >= b.Half[i]+o.Half[i]-contactEpsilon {
			return false
		}
	}
	return true
}

// Moved returns the box displaced by d
func (b Box) Moved(d mgl64.Vec3) Box {
	return Box{Center: b.Center.Add(d), Half: b.Half}
}

// contactEpsilon absorbs float drift so resting contact stays non-penetrating
const contactEpsilon = 1e-9

// orientedHalf returns the half extents of the axis-aligned box enclosing a box of half rotated by q
func orientedHalf(q mgl64.Quat, half mgl64.Vec3) mgl64.Vec3 {
	if q.Len() == 0 {
		return half
	}
	m := q.Normalize().Mat4().Mat3()
	var out mgl64.Vec3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row] += math.Abs(m.At(row, col)) * half[col]
		}
	}
	return out
}
