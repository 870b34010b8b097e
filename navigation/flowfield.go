package navigation

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// wallPenalty is the surcharge, in cells, for entering a cell that borders unusable space
// Routes keep off walls unless hugging one is the only way through
const wallPenalty = 0.5

// Cardinal neighbors first so equal-cost ties prefer straight moves
var neighbors = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FlowField is a shortest-path tree over a clearance map, rooted at one goal cell
// Each reachable cell stores its route cost in world units and the neighbor one step closer to the goal
type FlowField struct {
	grid  *Grid
	clear *Clearance

	cost []float64 // +Inf when unreachable
	next []int32   // Downhill neighbor as a flat index, -1 at the goal or when unreachable

	goalX, goalZ int
	valid        bool
	open         frontier
}

// NewFlowField allocates a field sized to g; c decides which cells an agent can be centered on
func NewFlowField(g *Grid, c *Clearance) *FlowField {
	n := g.Width * g.Depth
	return &FlowField{
		grid:  g,
		clear: c,
		cost:  make([]float64, n),
		next:  make([]int32, n),
		goalX: -1,
		goalZ: -1,
	}
}

// Goal returns the cell the field routes toward; ok is false until a compute succeeds
func (f *FlowField) Goal() (x, z int, ok bool) {
	return f.goalX, f.goalZ, f.valid
}

// Compute routes every cell toward the cell holding goal
// It fails when goal is off the grid or an agent cannot stand there
func (f *FlowField) Compute(goal mgl64.Vec3) bool {
	x, z, ok := f.grid.CellOf(goal)
	if !ok {
		f.valid = false
		return false
	}
	return f.computeCell(x, z)
}

func (f *FlowField) computeCell(gx, gz int) bool {
	f.goalX, f.goalZ = gx, gz
	f.valid = false
	if f.clear.IsBlocked(gx, gz) {
		return false
	}

	for i := range f.cost {
		f.cost[i] = math.Inf(1)
		f.next[i] = -1
	}

	w := f.grid.Width
	size := f.grid.CellSize
	root := int32(gz*w + gx)
	f.cost[root] = 0
	f.open = f.open[:0]
	heap.Push(&f.open, node{idx: root})

	// Search runs outward from the goal; an agent later walks each recorded edge in reverse
	for f.open.Len() > 0 {
		cur := heap.Pop(&f.open).(node)
		if cur.cost > f.cost[cur.idx] {
			continue
		}
		cx, cz := int(cur.idx)%w, int(cur.idx)/w

		enter := 0.0
		if f.clear.Snug(cx, cz) {
			enter = wallPenalty * size
		}

		for _, d := range neighbors {
			nx, nz := cx+d[0], cz+d[1]
			if f.clear.IsBlocked(nx, nz) {
				continue
			}
			step := size
			if d[0] != 0 && d[1] != 0 {
				// Diagonals may not clip a corner
				if f.clear.IsBlocked(cx+d[0], cz) || f.clear.IsBlocked(cx, cz+d[1]) {
					continue
				}
				step *= math.Sqrt2
			}

			idx := int32(nz*w + nx)
			if c := cur.cost + step + enter; c < f.cost[idx] {
				f.cost[idx] = c
				f.next[idx] = cur.idx
				heap.Push(&f.open, node{idx: idx, cost: c})
			}
		}
	}

	f.valid = true
	return true
}

// Cost returns the route length from the cell holding p to the goal, walls surcharged
func (f *FlowField) Cost(p mgl64.Vec3) (float64, bool) {
	i, ok := f.reachable(p)
	if !ok {
		return 0, false
	}
	return f.cost[i], true
}

// Waypoint returns the center of the next cell on the route from p
// Inside the goal cell it is the goal cell's own center
func (f *FlowField) Waypoint(p mgl64.Vec3) (mgl64.Vec3, bool) {
	i, ok := f.reachable(p)
	if !ok {
		return mgl64.Vec3{}, false
	}
	if n := f.next[i]; n >= 0 {
		i = int(n)
	}
	return f.grid.Center(i%f.grid.Width, i/f.grid.Width), true
}

// Step returns the unit horizontal heading from p toward its waypoint
// The heading is zero once p sits on the goal cell center
func (f *FlowField) Step(p mgl64.Vec3) (mgl64.Vec3, bool) {
	wp, ok := f.Waypoint(p)
	if !ok {
		return mgl64.Vec3{}, false
	}
	d := mgl64.Vec3{wp.X() - p.X(), 0, wp.Z() - p.Z()}
	if l := d.Len(); l > 1e-9 {
		return d.Mul(1 / l), true
	}
	return mgl64.Vec3{}, true
}

func (f *FlowField) reachable(p mgl64.Vec3) (int, bool) {
	if !f.valid {
		return 0, false
	}
	x, z, ok := f.grid.CellOf(p)
	if !ok {
		return 0, false
	}
	i := z*f.grid.Width + x
	return i, !math.IsInf(f.cost[i], 1)
}

type node struct {
	idx  int32
	cost float64
}

// frontier is the Dijkstra open set ordered by route cost
type frontier []node

func (q frontier) Len() int           { return len(q) }
func (q frontier) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q frontier) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(node)) }

func (q *frontier) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}
