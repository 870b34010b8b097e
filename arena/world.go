// Package arena is the reference world engine: AABB collision volumes, a ground plane with
// static obstacles and oscillating platforms, a navigation grid and a flow-field crowd
package arena

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/navigation"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// Options configures the arena geometry and navigation
type Options struct {
	GroundHalfExtent float64
	CellSize         float64
	AgentRadius      float64 // Clearance kept between agent centers and blocked cells
	Obstacles        []Box
	Platforms        []PlatformSpec
	MaxFlowFields    int
	RecomputeTicks   int
}

// DefaultOptions returns an empty ground of the stock size
func DefaultOptions() Options {
	return Options{
		GroundHalfExtent: parameter.GroundHalfExtent,
		CellSize:         parameter.NavCellSize,
		AgentRadius:      parameter.EnemyRadius,
		MaxFlowFields:    parameter.NavMaxFields,
		RecomputeTicks:   parameter.NavRecomputeTicks,
	}
}

type volume struct {
	box     Box
	half    mgl64.Vec3 // Unrotated half extents
	enabled bool
	static  bool
}

// World implements engine.WorldEngine on a single goroutine; callers must not share it across goroutines
type World struct {
	opts Options

	volumes    map[core.VolumeID]*volume
	nextVolume core.VolumeID
	statics    []core.VolumeID // Ground, obstacles and platforms in creation order
	ground     core.VolumeID
	platforms  []*platform

	grid      *navigation.Grid
	clearance *navigation.Clearance
	flows     *navigation.FlowFieldCache

	agents    map[core.AgentID]*agent
	agentList []core.AgentID // Ascending; fixes integration order
	nextAgent core.AgentID

	elapsed time.Duration
}

var _ engine.WorldEngine = (*World)(nil)

// New builds the arena and its navigation grid from static geometry
func New(opts Options) (*World, error) {
	if opts.GroundHalfExtent <= 0 {
		return nil, fmt.Errorf("arena: ground half extent must be positive, got %v", opts.GroundHalfExtent)
	}
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("arena: navigation cell size must be positive, got %v", opts.CellSize)
	}
	for i, p := range opts.Platforms {
		if p.Period < 0 {
			return nil, fmt.Errorf("arena: platform %d: negative period %v", i, p.Period)
		}
	}

	w := &World{
		opts:       opts,
		volumes:    make(map[core.VolumeID]*volume),
		nextVolume: 1,
		agents:     make(map[core.AgentID]*agent),
		nextAgent:  1,
	}

	g := opts.GroundHalfExtent
	w.ground = w.addStatic(Box{Center: mgl64.Vec3{0, -0.5, 0}, Half: mgl64.Vec3{g, 0.5, g}})
	for _, o := range opts.Obstacles {
		w.addStatic(o)
	}
	for _, spec := range opts.Platforms {
		p := &platform{spec: spec}
		p.volume = w.addStatic(spec.Box)
		w.platforms = append(w.platforms, p)
	}

	w.buildNavigation()
	return w, nil
}

func (w *World) addStatic(b Box) core.VolumeID {
	id := w.nextVolume
	w.nextVolume++
	w.volumes[id] = &volume{box: b, half: b.Half, enabled: true, static: true}
	w.statics = append(w.statics, id)
	return id
}

// buildNavigation rasterizes every static footprint except the ground into the grid
// Platforms block their full footprint regardless of height
func (w *World) buildNavigation() {
	w.grid = navigation.GridCovering(w.opts.GroundHalfExtent, w.opts.CellSize, 0)
	for _, id := range w.statics {
		if id == w.ground {
			continue
		}
		b := w.volumes[id].box
		lo, hi := b.Min(), b.Max()
		w.grid.BlockRect(lo.X(), lo.Z(), hi.X(), hi.Z(), 0)
	}

	reach := int(math.Ceil(w.opts.AgentRadius/w.opts.CellSize)) - 1
	w.clearance = navigation.NewClearance(w.grid.Width, w.grid.Depth, max(reach, 0))
	w.clearance.Compute(w.grid.Blocked)

	w.flows = navigation.NewFlowFieldCache(w.grid, w.clearance, w.opts.MaxFlowFields, w.opts.RecomputeTicks)
}

// CreateVolume registers a dynamic box centered on t
func (w *World) CreateVolume(t core.Transform, half mgl64.Vec3) core.VolumeID {
	id := w.nextVolume
	w.nextVolume++
	w.volumes[id] = &volume{
		box:     Box{Center: t.Position, Half: orientedHalf(t.Rotation, half)},
		half:    half,
		enabled: true,
	}
	return id
}

// DisposeVolume releases a dynamic volume; static geometry and unknown ids are ignored
func (w *World) DisposeVolume(id core.VolumeID) {
	if v, ok := w.volumes[id]; ok && !v.static {
		delete(w.volumes, id)
	}
}

// SetVolumeTransform moves a volume to t
func (w *World) SetVolumeTransform(id core.VolumeID, t core.Transform) {
	v, ok := w.volumes[id]
	if !ok || v.static {
		return
	}
	v.box = Box{Center: t.Position, Half: orientedHalf(t.Rotation, v.half)}
}

// SetEnabled toggles a volume; disabled volumes neither intersect nor block movement
func (w *World) SetEnabled(id core.VolumeID, enabled bool) {
	if v, ok := w.volumes[id]; ok {
		v.enabled = enabled
	}
}

// Intersects reports whether two live, enabled volumes overlap
func (w *World) Intersects(a, b core.VolumeID) bool {
	va, ok := w.volumes[a]
	if !ok || !va.enabled {
		return false
	}
	vb, ok := w.volumes[b]
	if !ok || !vb.enabled {
		return false
	}
	return va.box.Intersects(vb.box)
}

// Volume returns the current box of a volume
func (w *World) Volume(id core.VolumeID) (Box, bool) {
	v, ok := w.volumes[id]
	if !ok {
		return Box{}, false
	}
	return v.box, true
}

// VolumeCount returns the number of registered volumes, static geometry included
func (w *World) VolumeCount() int {
	return len(w.volumes)
}

// Obstacles returns the current boxes of all static geometry except the ground
func (w *World) Obstacles() []Box {
	out := make([]Box, 0, len(w.statics)-1)
	for _, id := range w.statics {
		if id == w.ground {
			continue
		}
		out = append(out, w.volumes[id].box)
	}
	return out
}

// GroundHalfExtent returns half the side of the ground plane
func (w *World) GroundHalfExtent() float64 {
	return w.opts.GroundHalfExtent
}

// Grid exposes the navigation grid for debugging views
func (w *World) Grid() *navigation.Grid {
	return w.grid
}

// NearestNavigable returns the closest point within radius where an agent fits
func (w *World) NearestNavigable(p mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	return w.grid.Nearest(p, radius, w.clearance.IsBlocked)
}

// blocked reports whether b would penetrate any enabled static volume
func (w *World) blocked(b Box) bool {
	for _, id := range w.statics {
		v := w.volumes[id]
		if v.enabled && v.box.Intersects(b) {
			return true
		}
	}
	return false
}

// maxPushPasses bounds depenetration when a box is wedged between several statics
const maxPushPasses = 4

// depenetrate pushes b out of every enabled static it overlaps, each time along the axis of least overlap
// A character standing on a rising platform is lifted onto its top face
func (w *World) depenetrate(b Box) Box {
	for range maxPushPasses {
		pushed := false
		for _, id := range w.statics {
			v := w.volumes[id]
			if v.enabled && v.box.Intersects(b) {
				b = b.Moved(pushOut(b, v.box))
				pushed = true
			}
		}
		if !pushed {
			break
		}
	}
	return b
}

// pushOut returns the shortest axis-aligned displacement separating b from o
func pushOut(b, o Box) mgl64.Vec3 {
	axis, depth := 0, math.Inf(1)
	for i := 0; i < 3; i++ {
		d := b.Half[i] + o.Half[i] - math.Abs(b.Center[i]-o.Center[i])
		if d < depth {
			axis, depth = i, d
		}
	}
	var push mgl64.Vec3
	if b.Center[axis] < o.Center[axis] {
		push[axis] = -depth
	} else {
		push[axis] = depth
	}
	return push
}

// MoveWithCollisions applies displacement to a dynamic volume, resolving against static geometry
//
// A start box already penetrating static geometry is pushed out first.
// The full move is kept when free. Otherwise:
//   - vertical move blocked (standing on something): vertical is rolled back, then horizontal if still blocked
//   - airborne with horizontal move blocked: vertical is rolled back, then horizontal if still blocked
//   - otherwise horizontal is rolled back
func (w *World) MoveWithCollisions(id core.VolumeID, displacement mgl64.Vec3) mgl64.Vec3 {
	v, ok := w.volumes[id]
	if !ok {
		return mgl64.Vec3{}
	}
	start := w.depenetrate(v.box)
	v.box = start

	full := start.Moved(displacement)
	if !w.blocked(full) {
		v.box = full
		return v.box.Center
	}

	vertical := mgl64.Vec3{0, displacement.Y(), 0}
	horizontal := mgl64.Vec3{displacement.X(), 0, displacement.Z()}

	grounded := displacement.Y() != 0 && w.blocked(start.Moved(vertical))
	airborneBlocked := !grounded && w.blocked(start.Moved(horizontal))

	var next Box
	switch {
	case grounded, airborneBlocked:
		next = start.Moved(horizontal)
		if w.blocked(next) {
			next = start
		}
	default:
		next = start.Moved(vertical)
		if w.blocked(next) {
			next = start
		}
	}
	v.box = next
	return v.box.Center
}

// Advance animates platforms and integrates the crowd
func (w *World) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	w.elapsed += dt
	for _, p := range w.platforms {
		w.volumes[p.volume].box = p.boxAt(w.elapsed)
	}
	w.advanceCrowd(dt)
}
