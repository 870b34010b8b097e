package arena

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// LayoutOptions describes a generated crate field
// The ground is tiled into square cells; a braided maze is carved over the tiles
// and a Density share of its walls become crates. Tiles under Keep points stay open.
type LayoutOptions struct {
	Seed       uint64 // 0 picks a time-based seed
	Tile       float64
	Braiding   float64 // 0 keeps every dead end, 1 opens them all
	Density    float64 // Share of maze walls turned into crates
	Keep       []mgl64.Vec3
	KeepRadius float64
}

type tile struct{ x, z int }

var (
	steps = []tile{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumps = []tile{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

// GenerateLayout returns unit-height crates on the ground of the given half extent
// Open tiles stay 4-connected: crates only ever replace maze walls, and the maze border is open
func GenerateLayout(groundHalf float64, opts LayoutOptions) []Box {
	if opts.Tile <= 0 || groundHalf <= 0 || opts.Density <= 0 {
		return nil
	}
	n := oddFloor(int(2 * groundHalf / opts.Tile))
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	solid := make([][]bool, n)
	for z := range solid {
		solid[z] = make([]bool, n)
		for x := range solid[z] {
			solid[z][x] = true
		}
	}

	carve(solid, tile{n/2 | 1, n/2 | 1}, rng)
	openBorder(solid)
	if opts.Braiding > 0 {
		braid(solid, opts.Braiding, rng)
	}

	origin := -float64(n) * opts.Tile / 2
	center := func(t tile) mgl64.Vec3 {
		return mgl64.Vec3{
			origin + (float64(t.x)+0.5)*opts.Tile,
			0,
			origin + (float64(t.z)+0.5)*opts.Tile,
		}
	}

	half := opts.Tile / 2
	var crates []Box
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			if !solid[z][x] || rng.Float64() >= opts.Density {
				continue
			}
			c := center(tile{x, z})
			if nearAny(c, opts.Keep, opts.KeepRadius+half*math.Sqrt2) {
				continue
			}
			crates = append(crates, Box{
				Center: mgl64.Vec3{c.X(), 1, c.Z()},
				Half:   mgl64.Vec3{half, 1, half},
			})
		}
	}
	return crates
}

func nearAny(p mgl64.Vec3, points []mgl64.Vec3, r float64) bool {
	for _, q := range points {
		dx, dz := p.X()-q.X(), p.Z()-q.Z()
		if dx*dx+dz*dz <= r*r {
			return true
		}
	}
	return false
}

// carve runs a randomized depth-first backtracker over the odd tiles
func carve(solid [][]bool, start tile, rng *rand.Rand) {
	n := len(solid)
	solid[start.z][start.x] = false
	stack := []tile{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		next := make([]tile, 0, 4)
		for _, j := range jumps {
			nx, nz := cur.x+j.x, cur.z+j.z
			if nx > 0 && nx < n-1 && nz > 0 && nz < n-1 && solid[nz][nx] {
				next = append(next, j)
			}
		}
		if len(next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		j := next[rng.IntN(len(next))]
		solid[cur.z+j.z/2][cur.x+j.x/2] = false
		solid[cur.z+j.z][cur.x+j.x] = false
		stack = append(stack, tile{cur.x + j.x, cur.z + j.z})
	}
}

func openBorder(solid [][]bool) {
	n := len(solid)
	for i := 0; i < n; i++ {
		solid[0][i], solid[n-1][i] = false, false
		solid[i][0], solid[i][n-1] = false, false
	}
}

// braid opens a wall next to dead ends with the given probability, adding loops
func braid(solid [][]bool, probability float64, rng *rand.Rand) {
	n := len(solid)
	for z := 1; z < n-1; z += 2 {
		for x := 1; x < n-1; x += 2 {
			if solid[z][x] || exits(solid, tile{x, z}) != 1 || rng.Float64() >= probability {
				continue
			}
			var walls []tile
			for _, j := range jumps {
				nx, nz := x+j.x, z+j.z
				wx, wz := x+j.x/2, z+j.z/2
				if !isOpen(solid, nx, nz) || !solid[wz][wx] {
					continue
				}
				if canOpen(solid, wx, wz) {
					walls = append(walls, tile{wx, wz})
				}
			}
			if len(walls) > 0 {
				w := walls[rng.IntN(len(walls))]
				solid[w.z][w.x] = false
			}
		}
	}
}

func exits(solid [][]bool, t tile) int {
	count := 0
	for _, s := range steps {
		if isOpen(solid, t.x+s.x, t.z+s.z) {
			count++
		}
	}
	return count
}

// isOpen treats out-of-bounds as solid
func isOpen(solid [][]bool, x, z int) bool {
	n := len(solid)
	return x >= 0 && x < n && z >= 0 && z < n && !solid[z][x]
}

// canOpen rejects openings that would create a 2x2 open square or leave a wall with no solid neighbor
func canOpen(solid [][]bool, x, z int) bool {
	for _, q := range [][3]tile{
		{{x - 1, z - 1}, {x, z - 1}, {x - 1, z}},
		{{x, z - 1}, {x + 1, z - 1}, {x + 1, z}},
		{{x - 1, z}, {x - 1, z + 1}, {x, z + 1}},
		{{x + 1, z}, {x, z + 1}, {x + 1, z + 1}},
	} {
		if isOpen(solid, q[0].x, q[0].z) && isOpen(solid, q[1].x, q[1].z) && isOpen(solid, q[2].x, q[2].z) {
			return false
		}
	}

	n := len(solid)
	for _, s := range steps {
		nx, nz := x+s.x, z+s.z
		if nx < 0 || nx >= n || nz < 0 || nz >= n || !solid[nz][nx] {
			continue
		}
		linked := false
		for _, s2 := range steps {
			mx, mz := nx+s2.x, nz+s2.z
			if mx == x && mz == z {
				continue
			}
			if mx >= 0 && mx < n && mz >= 0 && mz < n && solid[mz][mx] {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	return true
}

func oddFloor(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
