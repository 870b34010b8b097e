package arena

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
)

// PlatformSpec describes a box that oscillates vertically above its base position
type PlatformSpec struct {
	Box       Box
	Amplitude float64       // Peak rise above the base center
	Period    time.Duration // Full up-and-down cycle
}

type platform struct {
	spec   PlatformSpec
	volume core.VolumeID
}

// offset returns the rise at time t: a triangle wave from 0 to Amplitude and back
func (p *platform) offset(t time.Duration) float64 {
	if p.spec.Period <= 0 || p.spec.Amplitude == 0 {
		return 0
	}
	u := math.Mod(t.Seconds()/p.spec.Period.Seconds(), 1)
	return p.spec.Amplitude * (1 - math.Abs(2*u-1))
}

func (p *platform) boxAt(t time.Duration) Box {
	b := p.spec.Box
	b.Center = b.Center.Add(mgl64.Vec3{0, p.offset(t), 0})
	return b
}
