package input

// EventKind classifies frontend input delivered to the frame loop
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventPause  // Toggle pause
	EventQuit   // Leave the game
	EventResize // Terminal geometry changed
)

// Event is one frontend input; Key is set for key events, Width/Height for resize
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int
	Height int
}

// Apply feeds a key event to the latch; other kinds are ignored
func (l *Latch) Apply(ev Event) {
	switch ev.Kind {
	case EventKeyDown:
		l.KeyDown(ev.Key)
	case EventKeyUp:
		l.KeyUp(ev.Key)
	}
}
