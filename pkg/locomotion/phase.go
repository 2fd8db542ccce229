// pkg/locomotion/phase.go
package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/physics"
)

// Phase is the behavioural state of the controller after a tick
type Phase int

const (
	// Idle no thrust and at or below the rest speed
	Idle Phase = iota
	// Thrusting at least one thrust key is held, even if opposing keys cancel
	Thrusting
	// Coasting no thrust, still above the rest speed
	Coasting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Thrusting:
		return "thrusting"
	case Coasting:
		return "coasting"
	default:
		return "unknown"
	}
}

// phaseOf classifies a tick's outcome
func phaseOf(thrust physics.ThrustState, momentum mgl64.Vec3, restSpeed float64) Phase {
	if thrust.Active() {
		return Thrusting
	}
	if momentum.Len() > restSpeed {
		return Coasting
	}
	return Idle
}
