package navigation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wall builds a 10x10 grid with a vertical wall at x=5 leaving a gap at z=9
func wall() *Grid {
	g := NewGrid(10, 10, 1, mgl64.Vec2{0, 0}, 0)
	for z := 0; z < 9; z++ {
		g.SetBlocked(5, z, true)
	}
	return g
}

// routing wraps g in a clearance map for point-sized agents
func routing(g *Grid) *Clearance {
	c := NewClearance(g.Width, g.Depth, 0)
	c.Compute(g.Blocked)
	return c
}

func assertNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, 0, want.Sub(got).Len(), 1e-9, "want %v got %v", want, got)
}

func TestFlowFieldRoutesAroundWall(t *testing.T) {
	g := wall()
	f := NewFlowField(g, routing(g))
	goal := g.Center(8, 0)
	require.True(t, f.Compute(goal))

	gx, gz, ok := f.Goal()
	require.True(t, ok)
	assert.Equal(t, [2]int{8, 0}, [2]int{gx, gz})
	_, ok = f.Cost(g.Center(5, 0))
	assert.False(t, ok, "wall cell has no route")

	// Follow waypoints from the far side; the route must pass the gap
	p := g.Center(2, 0)
	sawGap := false
	for i := 0; i < 100; i++ {
		wp, ok := f.Waypoint(p)
		require.True(t, ok)
		if wp == p {
			break
		}
		p = wp
		x, z, _ := g.CellOf(p)
		require.False(t, g.Blocked(x, z), "stepped into wall at (%d,%d)", x, z)
		if x == 5 {
			sawGap = true
		}
	}
	assertNear(t, goal, p)
	assert.True(t, sawGap)
}

func TestFlowFieldCostsInWorldUnits(t *testing.T) {
	g := NewGrid(10, 10, 0.5, mgl64.Vec2{0, 0}, 0)
	f := NewFlowField(g, routing(g))
	require.True(t, f.Compute(g.Center(5, 5)))

	c, ok := f.Cost(g.Center(5, 5))
	require.True(t, ok)
	assert.Equal(t, 0.0, c)
	c, _ = f.Cost(g.Center(5, 3))
	assert.InDelta(t, 1.0, c, 1e-9)
	c, _ = f.Cost(g.Center(4, 4))
	assert.InDelta(t, 0.5*math.Sqrt2, c, 1e-9)
}

func TestFlowFieldKeepsOffWalls(t *testing.T) {
	g := NewGrid(9, 9, 1, mgl64.Vec2{0, 0}, 0)
	g.SetBlocked(6, 6, true)
	c := routing(g)
	require.True(t, c.Snug(5, 5))
	require.False(t, c.Snug(5, 4))

	f := NewFlowField(g, c)
	require.True(t, f.Compute(g.Center(4, 4)))

	// Cutting through the snug cell would tie the open route without the surcharge
	wp, ok := f.Waypoint(g.Center(6, 5))
	require.True(t, ok)
	assertNear(t, g.Center(5, 4), wp)

	viaSnug, _ := f.Cost(g.Center(5, 5))
	direct, _ := f.Cost(g.Center(6, 5))
	assert.Greater(t, viaSnug+1+wallPenalty, direct)
}

func TestFlowFieldStepHeading(t *testing.T) {
	g := NewGrid(10, 10, 1, mgl64.Vec2{0, 0}, 0)
	f := NewFlowField(g, routing(g))
	goal := g.Center(5, 5)
	require.True(t, f.Compute(goal))

	dir, ok := f.Step(g.Center(5, 2))
	require.True(t, ok)
	assertNear(t, mgl64.Vec3{0, 0, 1}, dir)

	dir, ok = f.Step(goal.Add(mgl64.Vec3{0, 2, 0}))
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{}, dir, "height does not count")
}

func TestFlowFieldUnreachable(t *testing.T) {
	g := NewGrid(6, 6, 1, mgl64.Vec2{0, 0}, 0)
	for z := 0; z < 6; z++ {
		g.SetBlocked(3, z, true)
	}
	f := NewFlowField(g, routing(g))
	require.True(t, f.Compute(g.Center(5, 5)))

	_, ok := f.Cost(g.Center(0, 0))
	assert.False(t, ok)
	_, ok = f.Step(g.Center(0, 0))
	assert.False(t, ok)
	_, ok = f.Cost(g.Center(4, 4))
	assert.True(t, ok)
}

func TestFlowFieldRejectsBadGoal(t *testing.T) {
	g := wall()
	f := NewFlowField(g, routing(g))

	assert.False(t, f.Compute(mgl64.Vec3{10.5, 0, 0}))
	_, _, ok := f.Goal()
	assert.False(t, ok)

	assert.False(t, f.Compute(g.Center(5, 0)), "goal inside the wall")
	_, ok = f.Cost(g.Center(0, 0))
	assert.False(t, ok)
}

func TestGridCellMapping(t *testing.T) {
	g := GridCovering(10, 0.5, 0)
	assert.Equal(t, 40, g.Width)

	x, z, ok := g.CellOf(mgl64.Vec3{0.1, 3, -0.1})
	require.True(t, ok)
	assert.Equal(t, 20, x)
	assert.Equal(t, 19, z)

	c := g.Center(x, z)
	assert.InDelta(t, 0.25, c.X(), 1e-9)
	assert.InDelta(t, -0.25, c.Z(), 1e-9)
	assert.Equal(t, 0.0, c.Y())

	_, _, ok = g.CellOf(mgl64.Vec3{10.5, 0, 0})
	assert.False(t, ok)
}

func TestGridNearest(t *testing.T) {
	g := NewGrid(10, 10, 1, mgl64.Vec2{0, 0}, 0)
	g.BlockRect(3, 3, 6, 6, 0)

	// Walkable point projects onto the surface unchanged in X/Z
	p, ok := g.Nearest(mgl64.Vec3{1.2, 4, 1.7}, 2, nil)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1.2, 0, 1.7}, p)

	// Inside the block: nearest free cell center within radius
	p, ok = g.Nearest(mgl64.Vec3{3.6, 0, 4.5}, 2, g.Blocked)
	require.True(t, ok)
	assert.InDelta(t, 2.5, p.X(), 1e-9)
	assert.InDelta(t, 4.5, p.Z(), 1e-9)

	// Center of the block is farther than the radius from any free cell
	_, ok = g.Nearest(mgl64.Vec3{5, 0, 5}, 1, nil)
	assert.False(t, ok)
}

func TestClearanceShrinksWalkableArea(t *testing.T) {
	g := NewGrid(8, 8, 1, mgl64.Vec2{0, 0}, 0)
	g.SetBlocked(4, 4, true)

	c := NewClearance(8, 8, 1)
	c.Compute(g.Blocked)

	assert.True(t, c.IsBlocked(0, 0), "footprint leaves the grid")
	assert.True(t, c.IsBlocked(3, 3), "footprint touches the blocked cell")
	assert.False(t, c.IsBlocked(1, 1))
	assert.False(t, c.IsBlocked(6, 1))
	assert.True(t, c.IsBlocked(-1, 2))
}

func TestFlowFieldCacheReuseAndEviction(t *testing.T) {
	g := NewGrid(8, 8, 1, mgl64.Vec2{0, 0}, 0)
	c := NewFlowFieldCache(g, routing(g), 2, 0)

	a, fresh := c.Field(g.Center(1, 1))
	require.True(t, fresh)
	b, _ := c.Field(mgl64.Vec3{1.2, 0, 1.9})
	assert.Same(t, a, b, "same goal cell shares a field")

	c.Tick()
	c.Field(g.Center(2, 2))
	c.Tick()
	c.Field(g.Center(1, 1)) // touch (1,1) so (2,2) is oldest
	c.Tick()
	f, _ := c.Field(g.Center(3, 3))
	assert.Equal(t, 2, c.Len())
	x, _, ok := f.Goal()
	require.True(t, ok)
	assert.Equal(t, 3, x)

	f, fresh = c.Field(mgl64.Vec3{-1, 0, 0})
	assert.Nil(t, f)
	assert.False(t, fresh)
}

func TestFlowFieldCacheThrottle(t *testing.T) {
	g := NewGrid(8, 8, 1, mgl64.Vec2{0, 0}, 0)
	c := NewFlowFieldCache(g, routing(g), 4, 3)

	first, fresh := c.Field(g.Center(1, 1))
	require.True(t, fresh)

	// New goal inside the throttle window falls back to the newest field
	f, fresh := c.Field(g.Center(5, 5))
	assert.False(t, fresh)
	assert.Same(t, first, f)

	for i := 0; i < 3; i++ {
		c.Tick()
	}
	f, fresh = c.Field(g.Center(5, 5))
	assert.True(t, fresh)
	x, _, _ := f.Goal()
	assert.Equal(t, 5, x)
}
