// pkg/physics/integrate.go
package physics

import "math"

// IntegrationMode tells the caller what the integrated momentum means
type IntegrationMode int

const (
	// PositionDelta momentum is added to the body position every tick.
	PositionDelta IntegrationMode = iota
	// LinearVelocity momentum is handed to a rigid body as its velocity.
	LinearVelocity
)

func (m IntegrationMode) String() string {
	switch m {
	case PositionDelta:
		return "direct"
	case LinearVelocity:
		return "velocity"
	default:
		return "unknown"
	}
}

// Reference constants for the integration strategies
const (
	DefaultDirectScale = 0.25
	DefaultAccel       = 150.0
	DefaultMaxSpeed    = 150.0
	DefaultFloorSpeed  = 25.0
	DefaultDrag        = 4.0
)

// Integrator advances momentum by one tick given a world-space thrust
type Integrator interface {
	Integrate(momentum, thrust Vec3, dt float64) Vec3
	Mode() IntegrationMode
	// RestSpeed is the speed at or below which an unthrusted body counts
	// as resting.
	RestSpeed() float64
}

// DirectIntegrator accumulates thrust into a per-tick position delta.
// There is no drag and no upper bound.
type DirectIntegrator struct {
	Scale float64
}

// NewDirectIntegrator returns a DirectIntegrator with the reference scale
func NewDirectIntegrator() *DirectIntegrator {
	return &DirectIntegrator{Scale: DefaultDirectScale}
}

// Integrate returns momentum + thrust*dt*Scale
func (d *DirectIntegrator) Integrate(momentum, thrust Vec3, dt float64) Vec3 {
	return momentum.Add(thrust.Mul(dt * d.Scale))
}

// Mode implements Integrator
func (d *DirectIntegrator) Mode() IntegrationMode {
	return PositionDelta
}

// RestSpeed implements Integrator. Direct momentum never decays, so only
// zero momentum rests.
func (d *DirectIntegrator) RestSpeed() float64 {
	return 0
}

// VelocityIntegrator produces a linear velocity for a physics-owned body:
// accelerate and clamp while thrusting, damp exponentially while coasting
// above FloorSpeed, and leave slower velocities untouched.
type VelocityIntegrator struct {
	Accel      float64
	MaxSpeed   float64
	FloorSpeed float64
	Drag       float64
}

// NewVelocityIntegrator returns a VelocityIntegrator with reference constants
func NewVelocityIntegrator() *VelocityIntegrator {
	return &VelocityIntegrator{
		Accel:      DefaultAccel,
		MaxSpeed:   DefaultMaxSpeed,
		FloorSpeed: DefaultFloorSpeed,
		Drag:       DefaultDrag,
	}
}

// Integrate implements Integrator
func (v *VelocityIntegrator) Integrate(velocity, thrust Vec3, dt float64) Vec3 {
	scaled := thrust.Mul(dt)
	if !IsZero(scaled) {
		return ClampLength(velocity.Add(scaled.Mul(v.Accel)), v.MaxSpeed)
	}

	if velocity.Len() > v.FloorSpeed {
		// Large steps would flip the velocity; stop at zero instead.
		return velocity.Mul(math.Max(0, 1-v.Drag*dt))
	}

	return velocity
}

// Mode implements Integrator
func (v *VelocityIntegrator) Mode() IntegrationMode {
	return LinearVelocity
}

// RestSpeed implements Integrator
func (v *VelocityIntegrator) RestSpeed() float64 {
	return v.FloorSpeed
}
