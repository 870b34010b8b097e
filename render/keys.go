package render

import (
	"maps"
	"slices"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lizard-arena/input"
	"github.com/lixenwraith/lizard-arena/parameter"
)

// KeySource turns terminal key presses into down/up pairs
// Terminals report presses and auto-repeats but no releases, so a held key is
// released once it stops repeating: after Initial for a key that never repeated,
// after Repeat once it has. Tap keys use the shorter Tap in place of Initial
type KeySource struct {
	mu      sync.Mutex
	held    map[input.Key]heldKey
	taps    map[input.Key]bool
	Initial time.Duration
	Tap     time.Duration
	Repeat  time.Duration
}

type heldKey struct {
	last     time.Time
	repeated bool
}

// NewKeySource creates a key source with the stock release timeouts
func NewKeySource() *KeySource {
	return &KeySource{
		held:    make(map[input.Key]heldKey),
		taps:    make(map[input.Key]bool),
		Initial: parameter.KeyReleaseInitial,
		Tap:     parameter.KeyReleaseTap,
		Repeat:  parameter.KeyReleaseRepeat,
	}
}

// SetTapKeys replaces the set of keys released on the Tap timeout
func (k *KeySource) SetTapKeys(keys ...input.Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.taps)
	for _, key := range keys {
		k.taps[key] = true
	}
}

// Translate converts one terminal event; auto-repeats of a held key produce nothing
func (k *KeySource) Translate(ev tcell.Event, now time.Time) []input.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return []input.Event{{Kind: input.EventQuit}}
		}
		if ev.Key() == tcell.KeyRune && unicode.ToLower(ev.Rune()) == 'p' {
			return []input.Event{{Kind: input.EventPause}}
		}
		key, ok := keyName(ev)
		if !ok {
			return nil
		}

		k.mu.Lock()
		defer k.mu.Unlock()
		if h, held := k.held[key]; held {
			h.last = now
			h.repeated = true
			k.held[key] = h
			return nil
		}
		k.held[key] = heldKey{last: now}
		return []input.Event{{Kind: input.EventKeyDown, Key: key}}

	case *tcell.EventResize:
		w, h := ev.Size()
		return []input.Event{{Kind: input.EventResize, Width: w, Height: h}}
	}
	return nil
}

// Expire releases every held key whose timeout has passed, in key order
func (k *KeySource) Expire(now time.Time) []input.Event {
	k.mu.Lock()
	defer k.mu.Unlock()

	var out []input.Event
	for _, key := range slices.Sorted(maps.Keys(k.held)) {
		h := k.held[key]
		timeout := k.Initial
		switch {
		case h.repeated:
			timeout = k.Repeat
		case k.taps[key]:
			timeout = k.Tap
		}
		if now.Sub(h.last) >= timeout {
			delete(k.held, key)
			out = append(out, input.Event{Kind: input.EventKeyUp, Key: key})
		}
	}
	return out
}

// Held returns the keys currently considered down
func (k *KeySource) Held() []input.Key {
	k.mu.Lock()
	defer k.mu.Unlock()
	return slices.Sorted(maps.Keys(k.held))
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return unicode.ToLower(ev.Rune()) == 'q'
	}
	return false
}

func keyName(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return input.KeySpace, true
		}
		return input.Key(string(unicode.ToLower(r))), true
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEnter:
		return input.KeyEnter, true
	}
	return "", false
}
