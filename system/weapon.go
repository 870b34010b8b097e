package system

import (
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/component"
	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/event"
	"github.com/lixenwraith/lizard-arena/parameter"
	"github.com/lixenwraith/lizard-arena/status"
)

// WeaponSystem honors fire requests outside the cooldown window
// Cooldown is an expiry timestamp in game time, so no timer runs beside the frame loop
type WeaponSystem struct {
	statFired    *atomic.Int64
	statRejected *atomic.Int64
}

// NewWeaponSystem creates the weapon phase
func NewWeaponSystem(reg *status.Registry) engine.System {
	return &WeaponSystem{
		statFired:    reg.Ints.Get(status.KeyShotsFired),
		statRejected: reg.Ints.Get(status.KeyShotsRejected),
	}
}

// Name returns system's name
func (s *WeaponSystem) Name() string {
	return "weapon"
}

func (s *WeaponSystem) Priority() int {
	return parameter.PriorityWeapon
}

// Update spawns one projectile along Facing when fire is requested and the weapon is ready
func (s *WeaponSystem) Update(state *engine.GameState, dt time.Duration) {
	if !state.Intent.Fire {
		return
	}
	player, ok := state.Registry.Player()
	if !ok {
		return
	}

	if state.Now < state.FireReadyAt {
		s.statRejected.Add(1)
		state.Emit(event.EventFireRejected, event.FireRejectedPayload{
			Remaining: state.FireReadyAt - state.Now,
		})
		return
	}

	dir := core.Normalize(core.Horizontal(state.Facing))
	if core.IsZero(dir) {
		dir = core.AxisForward
	}
	origin := player.Transform.Position.Add(mgl64.Vec3{0, state.Tuning.MuzzleHeight, 0})

	t := core.NewTransform(origin)
	t.LookAlong(dir)
	shot, err := state.Registry.Spawn(core.KindProjectile, t)
	if err != nil {
		return
	}
	_ = state.Registry.SetProjectile(shot.ID, component.ProjectileComponent{
		Direction: dir,
		Color:     randomColor(state),
	})

	state.FireReadyAt = state.Now + state.Tuning.FireCooldown
	state.AttackUntil = state.Now + state.Tuning.FireCooldown

	s.statFired.Add(1)
	state.Emit(event.EventProjectileFired, event.ProjectileFiredPayload{
		Projectile: shot.ID,
		Origin:     origin,
		Direction:  dir,
	})
}

// randomColor returns a bright 0xRRGGBB color; each channel stays above a floor so bolts read on dark terminals
func randomColor(state *engine.GameState) uint32 {
	channel := func() uint32 { return 0x60 + uint32(state.Rand.IntN(0xa0)) }
	return channel()<<16 | channel()<<8 | channel()
}
