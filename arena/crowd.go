package arena

import (
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
)

type agent struct {
	pos     mgl64.Vec3
	params  engine.AgentParams
	goal    mgl64.Vec3
	hasGoal bool
}

// separationWeight scales the push away from neighbors relative to goal seeking
const separationWeight = 1.5

// AddAgent registers a crowd agent at start; Y is held constant while it moves
func (w *World) AddAgent(start mgl64.Vec3, params engine.AgentParams) core.AgentID {
	id := w.nextAgent
	w.nextAgent++
	w.agents[id] = &agent{pos: start, params: params}
	w.agentList = append(w.agentList, id)
	return id
}

// RemoveAgent releases an agent; unknown ids are ignored
func (w *World) RemoveAgent(id core.AgentID) {
	if _, ok := w.agents[id]; !ok {
		return
	}
	delete(w.agents, id)
	if i, found := slices.BinarySearch(w.agentList, id); found {
		w.agentList = slices.Delete(w.agentList, i, i+1)
	}
}

// SetGoal points an agent at a world position
func (w *World) SetGoal(id core.AgentID, goal mgl64.Vec3) {
	if a, ok := w.agents[id]; ok {
		a.goal = goal
		a.hasGoal = true
	}
}

// AgentPosition returns the agent's current position
func (w *World) AgentPosition(id core.AgentID) (mgl64.Vec3, bool) {
	a, ok := w.agents[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return a.pos, true
}

// AgentCount returns the number of live agents
func (w *World) AgentCount() int {
	return len(w.agents)
}

// advanceCrowd moves every agent one step along the flow field toward its goal,
// pushed apart from neighbors that come closer than their combined radii
func (w *World) advanceCrowd(dt time.Duration) {
	w.flows.Tick()
	if dt == 0 {
		return
	}
	secs := dt.Seconds()

	// Velocities are computed from a consistent snapshot, then applied
	velocities := make([]mgl64.Vec3, len(w.agentList))
	for i, id := range w.agentList {
		a := w.agents[id]
		v := w.seek(a).Mul(a.params.MaxSpeed)
		v = v.Add(w.separation(id, a).Mul(a.params.MaxSpeed * separationWeight))
		if l := v.Len(); l > a.params.MaxSpeed && l > 0 {
			v = v.Mul(a.params.MaxSpeed / l)
		}
		velocities[i] = v
	}

	for i, id := range w.agentList {
		a := w.agents[id]
		step := velocities[i].Mul(secs)
		a.pos = w.slide(a.pos, step)
	}
}

// seek returns the unit horizontal direction an agent should travel, zero when arrived or unreachable
func (w *World) seek(a *agent) mgl64.Vec3 {
	if !a.hasGoal {
		return mgl64.Vec3{}
	}
	toGoal := core.Horizontal(a.goal.Sub(a.pos))
	if toGoal.Len() <= a.params.Radius {
		return mgl64.Vec3{}
	}

	// Goals inside geometry resolve to the nearest cell an agent fits in
	goal, ok := w.grid.Nearest(a.goal, w.opts.GroundHalfExtent, w.clearance.IsBlocked)
	if !ok {
		return mgl64.Vec3{}
	}
	gx, gz, _ := w.grid.CellOf(goal)
	ax, az, inside := w.grid.CellOf(a.pos)
	if !inside || (ax == gx && az == gz) {
		return core.Normalize(toGoal)
	}

	field, _ := w.flows.Field(goal)
	if field == nil {
		return mgl64.Vec3{}
	}
	// A throttled stand-in field may already be satisfied here
	if fx, fz, ok := field.Goal(); ok && fx == ax && fz == az {
		return core.Normalize(toGoal)
	}
	dir, ok := field.Step(a.pos)
	if !ok {
		return mgl64.Vec3{}
	}
	return dir
}

// separation sums pushes away from neighbors closer than the combined radii
func (w *World) separation(self core.AgentID, a *agent) mgl64.Vec3 {
	var push mgl64.Vec3
	for _, id := range w.agentList {
		if id == self {
			continue
		}
		o := w.agents[id]
		reach := a.params.Radius + o.params.Radius
		d := core.Horizontal(a.pos.Sub(o.pos))
		dist := d.Len()
		if dist >= reach {
			continue
		}
		var dir mgl64.Vec3
		switch {
		case dist > 1e-6:
			dir = d.Mul(1 / dist)
		case self < id:
			// Coincident agents split along X by id order
			dir = mgl64.Vec3{-1, 0, 0}
		default:
			dir = mgl64.Vec3{1, 0, 0}
		}
		push = push.Add(dir.Mul((reach - dist) / reach))
	}
	return push
}

// slide applies step, dropping the axis that would carry the agent into a blocked cell
func (w *World) slide(pos, step mgl64.Vec3) mgl64.Vec3 {
	if w.walkable(pos.Add(step)) {
		return pos.Add(step)
	}
	if xs := pos.Add(mgl64.Vec3{step.X(), 0, 0}); w.walkable(xs) {
		return xs
	}
	if zs := pos.Add(mgl64.Vec3{0, 0, step.Z()}); w.walkable(zs) {
		return zs
	}
	return pos
}

func (w *World) walkable(p mgl64.Vec3) bool {
	x, z, ok := w.grid.CellOf(p)
	return ok && !w.clearance.IsBlocked(x, z)
}
