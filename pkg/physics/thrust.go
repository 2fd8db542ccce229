// pkg/physics/thrust.go
package physics

import (
	"fmt"
	"strings"
)

// Direction is one of the six body-space thrust directions
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
	Up
	Down
)

// Directions lists every direction in declaration order
var Directions = []Direction{Forward, Back, Left, Right, Up, Down}

var directionNames = [...]string{
	Forward: "forward",
	Back:    "back",
	Left:    "left",
	Right:   "right",
	Up:      "up",
	Down:    "down",
}

// String returns the lower-case name of the direction
func (d Direction) String() string {
	if d < Forward || d > Down {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a direction name (case-insensitive) to a Direction
func ParseDirection(name string) (Direction, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for d, n := range directionNames {
		if n == lower {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}

// ThrustState holds one pressed flag per direction. Opposing flags may both
// be set; they cancel out in LocalVector.
type ThrustState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
}

// SetDirection records the latest pressed/released state for d
func (t *ThrustState) SetDirection(d Direction, active bool) {
	switch d {
	case Forward:
		t.Forward = active
	case Back:
		t.Back = active
	case Left:
		t.Left = active
	case Right:
		t.Right = active
	case Up:
		t.Up = active
	case Down:
		t.Down = active
	}
}

// Pressed reports the stored state of d
func (t ThrustState) Pressed(d Direction) bool {
	switch d {
	case Forward:
		return t.Forward
	case Back:
		return t.Back
	case Left:
		return t.Left
	case Right:
		return t.Right
	case Up:
		return t.Up
	case Down:
		return t.Down
	}
	return false
}

// Active reports whether any direction is held
func (t ThrustState) Active() bool {
	return t.Forward || t.Back || t.Left || t.Right || t.Up || t.Down
}

// LocalVector projects the flags onto the body axes as
// (left−right, up−down, forward−back). The result is not normalized, so a
// diagonal thrust has length √2.
func (t ThrustState) LocalVector() Vec3 {
	return Vec3{
		flag(t.Left) - flag(t.Right),
		flag(t.Up) - flag(t.Down),
		flag(t.Forward) - flag(t.Back),
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
