// Package input holds the decoded input events scripts receive and the
// key bindings that turn host key names into thrust directions.
package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/validation"
)

// ErrInvalidBinding is returned for bindings that cannot be used
var ErrInvalidBinding = errors.New("invalid key binding")

// Kind tells which fields of an Event are set
type Kind int

const (
	KeyEvent Kind = iota
	MouseMotion
)

func (k Kind) String() string {
	switch k {
	case KeyEvent:
		return "key"
	case MouseMotion:
		return "mouse_motion"
	default:
		return "unknown"
	}
}

// Event is a discrete input event
type Event struct {
	Kind      Kind
	Direction physics.Direction
	Pressed   bool
	DX, DY    float64
}

// Key returns a key transition event
func Key(d physics.Direction, pressed bool) Event {
	return Event{Kind: KeyEvent, Direction: d, Pressed: pressed}
}

// Mouse returns a relative mouse motion event
func Mouse(dx, dy float64) Event {
	return Event{Kind: MouseMotion, DX: dx, DY: dy}
}

// Bindings maps normalized key names to thrust directions
type Bindings map[string]physics.Direction

// DefaultBindings returns W/S/A/D for the horizontal plane, left shift
// for up and left control for down.
func DefaultBindings() Bindings {
	return Bindings{
		"W":        physics.Forward,
		"S":        physics.Back,
		"A":        physics.Left,
		"D":        physics.Right,
		"LSHIFT":   physics.Up,
		"LCONTROL": physics.Down,
	}
}

// DefaultBindingNames returns DefaultBindings as key name -> direction name
func DefaultBindingNames() map[string]string {
	names := make(map[string]string)
	for key, d := range DefaultBindings() {
		names[key] = d.String()
	}
	return names
}

// NormalizeKey upper-cases and trims a key name
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// ParseBindings builds bindings from key name -> direction name pairs
func ParseBindings(names map[string]string) (Bindings, error) {
	b := make(Bindings, len(names))
	for key, dir := range names {
		if err := validation.ValidateKeyName(key); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBinding, err)
		}
		d, err := physics.ParseDirection(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrInvalidBinding, key, err)
		}
		b[NormalizeKey(key)] = d
	}
	return b, nil
}

// Lookup returns the direction bound to key
func (b Bindings) Lookup(key string) (physics.Direction, bool) {
	d, ok := b[NormalizeKey(key)]
	return d, ok
}

// KeysFor returns the keys bound to d, sorted
func (b Bindings) KeysFor(d physics.Direction) []string {
	var keys []string
	for key, bound := range b {
		if bound == d {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Decode turns a host key transition into an event. ok is false for keys
// that are not bound.
func (b Bindings) Decode(key string, pressed bool) (Event, bool) {
	d, ok := b.Lookup(key)
	if !ok {
		return Event{}, false
	}
	return Key(d, pressed), true
}
