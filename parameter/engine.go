package parameter

import "time"

// Frame loop timing
const (
	// FrameUpdateInterval is the target frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta clamps elapsed time after a stall (debugger, suspended terminal)
	MaxFrameDelta = 250 * time.Millisecond
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Arena and navigation defaults
const (
	// GroundHalfExtent is half the side of the square ground plane
	GroundHalfExtent = 10.0

	// NavCellSize is the side of one navigation grid cell in world units
	NavCellSize = 0.5

	// NavRecomputeTicks throttles flow field recomputation when the goal moves within one cell
	NavRecomputeTicks = 6

	// NavMaxFields bounds the number of cached flow fields (one per distinct goal cell)
	NavMaxFields = 8
)

// Terminal input
const (
	// KeyReleaseInitial synthesizes a key-up when a freshly pressed key sees no auto-repeat
	// Should exceed the terminal's initial auto-repeat delay
	KeyReleaseInitial = 500 * time.Millisecond

	// KeyReleaseTap is the initial release timeout for tap keys such as fire
	// Shorter than the fire cooldown so two deliberate taps read as two presses; a held
	// tap key re-presses on its first auto-repeat
	KeyReleaseTap = 150 * time.Millisecond

	// KeyReleaseRepeat synthesizes a key-up once an auto-repeating key stops repeating
	KeyReleaseRepeat = 100 * time.Millisecond
)
