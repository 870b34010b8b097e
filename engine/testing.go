package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
)

// FakeWorld is an in-memory WorldEngine for tests
// Volumes are spheres of their largest half extent; agents stay where placed unless moved with Place
type FakeWorld struct {
	Volumes map[core.VolumeID]FakeVolume
	Agents  map[core.AgentID]FakeAgent

	// Unreachable makes every NearestNavigable query fail
	Unreachable bool
	// Floor is the lowest center height MoveWithCollisions allows
	Floor float64

	Advanced   time.Duration
	nextVolume core.VolumeID
	nextAgent  core.AgentID
	Disposals  int
	Removals   int
}

// FakeVolume is a registered test volume
type FakeVolume struct {
	Transform core.Transform
	Half      mgl64.Vec3
	Enabled   bool
}

// FakeAgent is a registered test agent
type FakeAgent struct {
	Position mgl64.Vec3
	Params   AgentParams
	Goal     mgl64.Vec3
	HasGoal  bool
}

var _ WorldEngine = (*FakeWorld)(nil)

// NewFakeWorld creates an empty fake world with the floor at height 1
func NewFakeWorld() *FakeWorld {
	return &FakeWorld{
		Volumes:    make(map[core.VolumeID]FakeVolume),
		Agents:     make(map[core.AgentID]FakeAgent),
		Floor:      1,
		nextVolume: 1,
		nextAgent:  1,
	}
}

func (f *FakeWorld) CreateVolume(t core.Transform, half mgl64.Vec3) core.VolumeID {
	id := f.nextVolume
	f.nextVolume++
	f.Volumes[id] = FakeVolume{Transform: t, Half: half, Enabled: true}
	return id
}

func (f *FakeWorld) DisposeVolume(id core.VolumeID) {
	if _, ok := f.Volumes[id]; ok {
		delete(f.Volumes, id)
		f.Disposals++
	}
}

func (f *FakeWorld) SetVolumeTransform(id core.VolumeID, t core.Transform) {
	if v, ok := f.Volumes[id]; ok {
		v.Transform = t
		f.Volumes[id] = v
	}
}

func (f *FakeWorld) SetEnabled(id core.VolumeID, enabled bool) {
	if v, ok := f.Volumes[id]; ok {
		v.Enabled = enabled
		f.Volumes[id] = v
	}
}

func (f *FakeWorld) Intersects(a, b core.VolumeID) bool {
	va, ok := f.Volumes[a]
	if !ok || !va.Enabled {
		return false
	}
	vb, ok := f.Volumes[b]
	if !ok || !vb.Enabled {
		return false
	}
	reach := maxComponent(va.Half) + maxComponent(vb.Half)
	return va.Transform.Position.Sub(vb.Transform.Position).Len() < reach
}

func (f *FakeWorld) NearestNavigable(p mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	if f.Unreachable {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{p.X(), 0, p.Z()}, true
}

func (f *FakeWorld) AddAgent(start mgl64.Vec3, params AgentParams) core.AgentID {
	id := f.nextAgent
	f.nextAgent++
	f.Agents[id] = FakeAgent{Position: start, Params: params}
	return id
}

func (f *FakeWorld) RemoveAgent(id core.AgentID) {
	if _, ok := f.Agents[id]; ok {
		delete(f.Agents, id)
		f.Removals++
	}
}

func (f *FakeWorld) SetGoal(id core.AgentID, goal mgl64.Vec3) {
	if a, ok := f.Agents[id]; ok {
		a.Goal = goal
		a.HasGoal = true
		f.Agents[id] = a
	}
}

func (f *FakeWorld) AgentPosition(id core.AgentID) (mgl64.Vec3, bool) {
	a, ok := f.Agents[id]
	return a.Position, ok
}

// Place teleports an agent
func (f *FakeWorld) Place(id core.AgentID, p mgl64.Vec3) {
	if a, ok := f.Agents[id]; ok {
		a.Position = p
		f.Agents[id] = a
	}
}

// MoveWithCollisions applies the displacement, clamping the center to Floor
func (f *FakeWorld) MoveWithCollisions(id core.VolumeID, d mgl64.Vec3) mgl64.Vec3 {
	v, ok := f.Volumes[id]
	if !ok {
		return mgl64.Vec3{}
	}
	p := v.Transform.Position.Add(d)
	if p.Y() < f.Floor {
		p[1] = f.Floor
	}
	v.Transform.Position = p
	f.Volumes[id] = v
	return p
}

func (f *FakeWorld) Advance(dt time.Duration) {
	f.Advanced += dt
}

func maxComponent(v mgl64.Vec3) float64 {
	return max(v.X(), v.Y(), v.Z())
}
