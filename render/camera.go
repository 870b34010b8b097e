package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Terminal cells are roughly twice as tall as wide
const cellAspect = 0.5

// statusRows is reserved at the bottom for the status bar
const statusRows = 1

// Camera maps the arena onto the terminal, looking straight down with +X to the left
// and +Z toward the bottom of the screen, so moving forward (-Z) goes up
type Camera struct {
	Width  int
	Height int
	Scale  float64 // Columns per world unit
}

// NewCamera fits a square ground of the given half extent into a width x height terminal
func NewCamera(width, height int, groundHalf float64) Camera {
	c := Camera{Width: width, Height: height, Scale: 1}
	if groundHalf <= 0 {
		return c
	}
	rows := max(height-statusRows, 1)
	byWidth := float64(width) / (2 * groundHalf)
	byHeight := float64(rows) / (2 * groundHalf * cellAspect)
	c.Scale = math.Max(math.Min(byWidth, byHeight), 0.1)
	return c
}

// Project returns the cell under a world position
func (c Camera) Project(p mgl64.Vec3) (x, y int) {
	cx := float64(c.Width) / 2
	cy := float64(c.Height-statusRows) / 2
	x = int(math.Floor(cx - p.X()*c.Scale))
	y = int(math.Floor(cy + p.Z()*c.Scale*cellAspect))
	return x, y
}

// Rect returns the inclusive cell rectangle covering the X/Z footprint between lo and hi
func (c Camera) Rect(lo, hi mgl64.Vec3) (x0, y0, x1, y1 int) {
	ax, ay := c.Project(lo)
	bx, by := c.Project(hi)
	if ax > bx {
		ax, bx = bx, ax
	}
	if ay > by {
		ay, by = by, ay
	}
	// Max edges land on the first cell past the box
	if bx > ax {
		bx--
	}
	if by > ay {
		by--
	}
	return ax, ay, bx, by
}

// Visible reports whether a cell is inside the arena view
func (c Camera) Visible(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height-statusRows
}
