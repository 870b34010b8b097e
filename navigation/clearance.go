package navigation

// Clearance pre-computes which cells can hold the center of an agent with a square footprint
// A cell is valid iff every cell within Reach (Chebyshev) is in bounds and walkable
// A valid cell is snug when one of its eight neighbors is not valid
type Clearance struct {
	Width, Depth int
	Reach        int
	Valid        []bool

	snug []bool
}

// NewClearance creates a clearance map for agents reaching the given number of cells from their center
func NewClearance(width, depth, reach int) *Clearance {
	return &Clearance{
		Width: width,
		Depth: depth,
		Reach: reach,
		Valid: make([]bool, width*depth),
		snug:  make([]bool, width*depth),
	}
}

// Compute rebuilds the map from wall state
func (c *Clearance) Compute(isWall WallChecker) {
	for z := 0; z < c.Depth; z++ {
		for x := 0; x < c.Width; x++ {
			c.Valid[z*c.Width+x] = c.canOccupy(x, z, isWall)
		}
	}
	for z := 0; z < c.Depth; z++ {
		for x := 0; x < c.Width; x++ {
			i := z*c.Width + x
			c.snug[i] = c.Valid[i] && c.bordersBlocked(x, z)
		}
	}
}

func (c *Clearance) canOccupy(cx, cz int, isWall WallChecker) bool {
	if cx-c.Reach < 0 || cz-c.Reach < 0 || cx+c.Reach >= c.Width || cz+c.Reach >= c.Depth {
		return false
	}
	for dz := -c.Reach; dz <= c.Reach; dz++ {
		for dx := -c.Reach; dx <= c.Reach; dx++ {
			if isWall(cx+dx, cz+dz) {
				return false
			}
		}
	}
	return true
}

func (c *Clearance) bordersBlocked(x, z int) bool {
	for _, d := range neighbors {
		if c.IsBlocked(x+d[0], z+d[1]) {
			return true
		}
	}
	return false
}

// IsBlocked returns true if an agent cannot be centered on (x,z)
func (c *Clearance) IsBlocked(x, z int) bool {
	if x < 0 || z < 0 || x >= c.Width || z >= c.Depth {
		return true
	}
	return !c.Valid[z*c.Width+x]
}

// Snug reports whether an agent centered on (x,z) brushes unusable space
func (c *Clearance) Snug(x, z int) bool {
	if x < 0 || z < 0 || x >= c.Width || z >= c.Depth {
		return false
	}
	return c.snug[z*c.Width+x]
}
