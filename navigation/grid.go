package navigation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WallChecker reports whether cell (x,z) blocks navigation
type WallChecker func(x, z int) bool

// Grid is the walkable surface of the arena sampled on the X/Z plane
// Column x runs along +X, row z along +Z; cell (0,0) starts at Origin
type Grid struct {
	Width, Depth int
	CellSize     float64
	Origin       mgl64.Vec2 // World X/Z of the cell (0,0) corner
	SurfaceY     float64    // Height of the walkable surface

	blocked []bool
}

// NewGrid creates a fully walkable grid covering [minX, minX+width*cell] x [minZ, minZ+depth*cell]
func NewGrid(width, depth int, cellSize float64, origin mgl64.Vec2, surfaceY float64) *Grid {
	return &Grid{
		Width:    width,
		Depth:    depth,
		CellSize: cellSize,
		Origin:   origin,
		SurfaceY: surfaceY,
		blocked:  make([]bool, width*depth),
	}
}

// GridCovering returns a grid covering a square of halfExtent around the origin
func GridCovering(halfExtent, cellSize, surfaceY float64) *Grid {
	n := int(math.Ceil(2 * halfExtent / cellSize))
	return NewGrid(n, n, cellSize, mgl64.Vec2{-halfExtent, -halfExtent}, surfaceY)
}

// InBounds reports whether the cell exists
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && z >= 0 && x < g.Width && z < g.Depth
}

// Blocked reports whether a cell is not walkable; out of bounds counts as blocked
// Usable directly as a WallChecker
func (g *Grid) Blocked(x, z int) bool {
	if !g.InBounds(x, z) {
		return true
	}
	return g.blocked[z*g.Width+x]
}

// SetBlocked marks a single cell
func (g *Grid) SetBlocked(x, z int, blocked bool) {
	if g.InBounds(x, z) {
		g.blocked[z*g.Width+x] = blocked
	}
}

// BlockRect marks every cell whose center lies inside the world rectangle, grown by margin
func (g *Grid) BlockRect(minX, minZ, maxX, maxZ, margin float64) {
	minX -= margin
	minZ -= margin
	maxX += margin
	maxZ += margin
	for z := 0; z < g.Depth; z++ {
		for x := 0; x < g.Width; x++ {
			c := g.Center(x, z)
			if c.X() >= minX && c.X() <= maxX && c.Z() >= minZ && c.Z() <= maxZ {
				g.blocked[z*g.Width+x] = true
			}
		}
	}
}

// Walkable returns the number of walkable cells
func (g *Grid) Walkable() int {
	n := 0
	for _, b := range g.blocked {
		if !b {
			n++
		}
	}
	return n
}

// CellOf returns the cell containing p; ok is false outside the grid
func (g *Grid) CellOf(p mgl64.Vec3) (x, z int, ok bool) {
	x = int(math.Floor((p.X() - g.Origin.X()) / g.CellSize))
	z = int(math.Floor((p.Z() - g.Origin.Y()) / g.CellSize))
	return x, z, g.InBounds(x, z)
}

// Center returns the world position of a cell center on the walkable surface
func (g *Grid) Center(x, z int) mgl64.Vec3 {
	return mgl64.Vec3{
		g.Origin.X() + (float64(x)+0.5)*g.CellSize,
		g.SurfaceY,
		g.Origin.Y() + (float64(z)+0.5)*g.CellSize,
	}
}

// Nearest returns the point closest to p within radius whose cell isBlocked rejects
// p itself (projected onto the surface) is returned when its cell is free;
// otherwise the search widens ring by ring over cell centers
func (g *Grid) Nearest(p mgl64.Vec3, radius float64, isBlocked WallChecker) (mgl64.Vec3, bool) {
	if isBlocked == nil {
		isBlocked = g.Blocked
	}
	cx, cz, _ := g.CellOf(p)
	if !isBlocked(cx, cz) {
		return mgl64.Vec3{p.X(), g.SurfaceY, p.Z()}, true
	}

	rings := int(math.Ceil(radius/g.CellSize)) + 1
	best := mgl64.Vec3{}
	bestDist := math.Inf(1)
	flat := mgl64.Vec3{p.X(), g.SurfaceY, p.Z()}

	for r := 1; r <= rings; r++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				// Ring perimeter only
				if max(abs(dx), abs(dz)) != r {
					continue
				}
				x, z := cx+dx, cz+dz
				if isBlocked(x, z) {
					continue
				}
				c := g.Center(x, z)
				d := c.Sub(flat).Len()
				if d <= radius && d < bestDist {
					best, bestDist = c, d
				}
			}
		}
	}

	if math.IsInf(bestDist, 1) {
		return mgl64.Vec3{}, false
	}
	return best, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
