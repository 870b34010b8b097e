package input

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Intent is the per-frame result of the latch
type Intent struct {
	Movement mgl64.Vec3 // Unit vector or zero
	Fire     bool
}

// Latch keeps the currently held bound keys, most recent first
// Releasing the front key falls back to the next held key instead of stopping
// Fire is edge-triggered: one report per press, issued when the fire key is at the front
type Latch struct {
	bindings  Bindings
	stack     []Key
	fireArmed bool
}

// NewLatch creates an empty latch using bindings
func NewLatch(bindings Bindings) *Latch {
	return &Latch{
		bindings: bindings,
		stack:    make([]Key, 0, 8),
	}
}

// KeyDown pushes a bound key to the front of the stack
// A key already held keeps its place, so auto-repeat neither reorders nor re-arms fire
// Returns false for unbound keys
func (l *Latch) KeyDown(k Key) bool {
	action, ok := l.bindings[k]
	if !ok || action == ActionNone {
		return false
	}
	if slices.Contains(l.stack, k) {
		return true
	}

	l.stack = slices.Insert(l.stack, 0, k)
	if action == ActionFire {
		l.fireArmed = true
	}
	return true
}

// KeyUp removes k wherever it sits in the stack
func (l *Latch) KeyUp(k Key) {
	i := slices.Index(l.stack, k)
	if i < 0 {
		return
	}
	l.stack = slices.Delete(l.stack, i, i+1)

	if l.bindings[k] == ActionFire && !l.fireHeld() {
		l.fireArmed = false
	}
}

// EffectiveIntent resolves the stack into one movement direction and at most one fire report per press
func (l *Latch) EffectiveIntent() Intent {
	var intent Intent
	if len(l.stack) == 0 {
		return intent
	}

	for _, k := range l.stack {
		if action := l.bindings[k]; action.IsMovement() {
			intent.Movement = action.Direction()
			break
		}
	}

	if l.fireArmed && l.bindings[l.stack[0]] == ActionFire {
		intent.Fire = true
		l.fireArmed = false
	}
	return intent
}

// Held returns the held keys, most recent first
func (l *Latch) Held() []Key {
	return slices.Clone(l.stack)
}

// Reset releases every key
func (l *Latch) Reset() {
	l.stack = l.stack[:0]
	l.fireArmed = false
}

func (l *Latch) fireHeld() bool {
	for _, k := range l.stack {
		if l.bindings[k] == ActionFire {
			return true
		}
	}
	return false
}
