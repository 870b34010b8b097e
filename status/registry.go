package status

import "sync/atomic"

// Metric keys written by the simulation and read by the HUD
const (
	KeyFrames         = "engine.frames"
	KeyFrameMillis    = "engine.frame_ms"
	KeyEnemiesAlive   = "enemies.alive"
	KeyEnemiesSpawned = "enemies.spawned"
	KeyEnemiesKilled  = "enemies.killed"
	KeySpawnsDropped  = "spawns.dropped"
	KeySpawnsBlocked  = "spawns.unreachable"
	KeyShotsFired     = "shots.fired"
	KeyShotsRejected  = "shots.rejected"
	KeyShotsCulled    = "shots.culled"
	KeyEventsDropped  = "events.dropped"
	KeyPaused         = "engine.paused"
)

// Registry is the central metrics facade
// Systems cache pointers during construction; frame code writes directly to atomics
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Int returns the current value of an integer metric, zero if never written
func (r *Registry) Int(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}

// Attrs flattens every integer metric into slog key/value pairs
func (r *Registry) Attrs() []any {
	attrs := make([]any, 0, 2*r.Ints.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		attrs = append(attrs, key, v.Load())
	})
	return attrs
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}
