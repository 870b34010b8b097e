package navigation

import "github.com/go-gl/mathgl/mgl64"

// cellKey identifies a goal cell
type cellKey struct {
	x, z int
}

type cacheEntry struct {
	field    *FlowField
	lastUsed uint64
}

// FlowFieldCache keeps one flow field per goal cell over a fixed grid and clearance map
// Fields are bounded and evicted least-recently-used. Goals that stay within one cell reuse the
// same field; a goal cell change is throttled so a goal jittering across a cell border does not
// recompute every tick
type FlowFieldCache struct {
	grid  *Grid
	clear *Clearance

	maxFields int
	minTicks  int // Minimum ticks between computations of new fields

	fields    map[cellKey]*cacheEntry
	clock     uint64
	sinceLast int
}

// NewFlowFieldCache creates a cache routing over g with agents constrained by c
func NewFlowFieldCache(g *Grid, c *Clearance, maxFields, minTicks int) *FlowFieldCache {
	maxFields = max(maxFields, 1)
	return &FlowFieldCache{
		grid:      g,
		clear:     c,
		maxFields: maxFields,
		minTicks:  minTicks,
		fields:    make(map[cellKey]*cacheEntry, maxFields),
		sinceLast: minTicks, // First compute is never throttled
	}
}

// Tick advances the throttle clock; call once per frame
func (c *FlowFieldCache) Tick() {
	c.sinceLast++
}

// Field returns the field toward the cell holding goal, computing it if absent
// When throttled, the most recently used field stands in and fresh reports false
// A goal off the grid yields nil
func (c *FlowFieldCache) Field(goal mgl64.Vec3) (field *FlowField, fresh bool) {
	x, z, ok := c.grid.CellOf(goal)
	if !ok {
		return nil, false
	}

	c.clock++
	key := cellKey{x, z}
	if e, ok := c.fields[key]; ok {
		e.lastUsed = c.clock
		return e.field, true
	}

	if c.sinceLast < c.minTicks {
		if e := c.newest(); e != nil {
			return e.field, false
		}
	}

	var f *FlowField
	if len(c.fields) >= c.maxFields {
		f = c.evict()
	} else {
		f = NewFlowField(c.grid, c.clear)
	}
	f.computeCell(x, z)
	c.fields[key] = &cacheEntry{field: f, lastUsed: c.clock}
	c.sinceLast = 0
	return f, true
}

// Len returns the number of cached fields
func (c *FlowFieldCache) Len() int {
	return len(c.fields)
}

func (c *FlowFieldCache) newest() *cacheEntry {
	var best *cacheEntry
	for _, e := range c.fields {
		if best == nil || e.lastUsed > best.lastUsed {
			best = e
		}
	}
	return best
}

// evict removes the least recently used entry and returns its field for reuse
func (c *FlowFieldCache) evict() *FlowField {
	var oldKey cellKey
	var old *cacheEntry
	for k, e := range c.fields {
		if old == nil || e.lastUsed < old.lastUsed {
			oldKey, old = k, e
		}
	}
	delete(c.fields, oldKey)
	return old.field
}
