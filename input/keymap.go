package input

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Key names a physical key as the frontend reports it
// Printable keys use their lowercase character; others use a name ("space", "up")
type Key string

const (
	KeySpace Key = "space"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyLeft  Key = "left"
	KeyRight Key = "right"
	KeyEnter Key = "enter"
)

// Action is what a bound key means to the game
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionFire
)

var actionNames = map[string]Action{
	"none":         ActionNone,
	"move_forward": ActionMoveForward,
	"move_back":    ActionMoveBack,
	"move_left":    ActionMoveLeft,
	"move_right":   ActionMoveRight,
	"fire":         ActionFire,
}

// Movement directions in world space, top-down with the camera on +Z looking at the origin
var actionDirections = map[Action]mgl64.Vec3{
	ActionMoveForward: {0, 0, -1},
	ActionMoveBack:    {0, 0, 1},
	ActionMoveLeft:    {1, 0, 0},
	ActionMoveRight:   {-1, 0, 0},
}

// IsMovement reports whether the action steers the player
func (a Action) IsMovement() bool {
	_, ok := actionDirections[a]
	return ok
}

// Direction returns the unit movement vector for a movement action, zero otherwise
func (a Action) Direction() mgl64.Vec3 {
	return actionDirections[a]
}

// Bindings maps keys to actions
type Bindings map[Key]Action

// DefaultBindings returns WASD plus arrows for movement and space for fire
func DefaultBindings() Bindings {
	return Bindings{
		"w":      ActionMoveForward,
		"s":      ActionMoveBack,
		"a":      ActionMoveLeft,
		"d":      ActionMoveRight,
		KeyUp:    ActionMoveForward,
		KeyDown:  ActionMoveBack,
		KeyLeft:  ActionMoveLeft,
		KeyRight: ActionMoveRight,
		KeySpace: ActionFire,
	}
}

// ParseBindings converts key name → action name pairs into sparse override bindings
// The action "none" marks a key for removal when merged
func ParseBindings(raw map[string]string) (Bindings, error) {
	out := make(Bindings, len(raw))
	for keyStr, actionStr := range raw {
		k, err := resolveKey(keyStr)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}
		a, ok := actionNames[strings.ToLower(strings.TrimSpace(actionStr))]
		if !ok {
			return nil, fmt.Errorf("key %q: unknown action: %q", keyStr, actionStr)
		}
		out[k] = a
	}
	return out, nil
}

// MergeBindings returns base with override applied; ActionNone entries delete the key
func MergeBindings(base, override Bindings) Bindings {
	result := maps.Clone(base)
	for k, a := range override {
		if a == ActionNone {
			delete(result, k)
			continue
		}
		result[k] = a
	}
	return result
}

// KeysFor returns every key bound to a, sorted
func (b Bindings) KeysFor(a Action) []Key {
	var keys []Key
	for k, bound := range b {
		if bound == a {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

var namedKeys = map[string]Key{
	"space": KeySpace,
	" ":     KeySpace,
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
	"enter": KeyEnter,
}

// resolveKey accepts a single character or a key name
func resolveKey(s string) (Key, error) {
	if k, ok := namedKeys[strings.ToLower(s)]; ok {
		return k, nil
	}
	if r := []rune(s); len(r) == 1 {
		return Key(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("invalid key: %q (expected single character or key name)", s)
}
