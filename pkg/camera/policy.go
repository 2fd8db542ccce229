// pkg/camera/policy.go
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/physics"
)

// Angles accumulates the rig's Euler angles in radians
type Angles struct {
	Yaw   float64 `json:"yaw" cbor:"yaw"`
	Pitch float64 `json:"pitch" cbor:"pitch"`
	Roll  float64 `json:"roll" cbor:"roll"`
}

// RotationPolicy decides how mouse deltas update the angles and how the
// angles compose into an orientation.
type RotationPolicy interface {
	// Apply adds a mouse delta. Positive dx turns the rig left (yaw
	// decreases), positive dy pitches it down.
	Apply(a Angles, dx, dy, sensitivity float64) Angles
	// Normalize forces a into the range the policy can represent.
	Normalize(a Angles) Angles
	// Compose builds the unit quaternion for a.
	Compose(a Angles) mgl64.Quat
	Name() string
}

// ClampedPivot keeps pitch within ±Limit and composes yaw then pitch.
// Roll is not represented.
type ClampedPivot struct {
	Limit float64
}

// NewClampedPivot returns the policy with the ±90° hinge limit
func NewClampedPivot() ClampedPivot {
	return ClampedPivot{Limit: math.Pi / 2}
}

// Apply implements RotationPolicy
func (c ClampedPivot) Apply(a Angles, dx, dy, sensitivity float64) Angles {
	a.Yaw -= dx * sensitivity
	a.Pitch += dy * sensitivity
	return c.Normalize(a)
}

// Normalize clamps pitch and drops roll
func (c ClampedPivot) Normalize(a Angles) Angles {
	a.Pitch = c.clampPitch(a.Pitch)
	a.Roll = 0
	return a
}

// clampPitch ensures pitch is within the hinge limits
func (c ClampedPivot) clampPitch(pitch float64) float64 {
	if pitch < -c.Limit {
		return -c.Limit
	}
	if pitch > c.Limit {
		return c.Limit
	}
	return pitch
}

// Compose implements RotationPolicy
func (c ClampedPivot) Compose(a Angles) mgl64.Quat {
	return physics.AxisAngle(physics.AxisY, a.Yaw).
		Mul(physics.AxisAngle(physics.AxisX, a.Pitch))
}

// Name implements RotationPolicy
func (c ClampedPivot) Name() string {
	return "clamped"
}

// FreeQuaternion sums yaw and pitch without limits and composes
// yaw, pitch and roll. Roll is carried in the angles but input never
// changes it.
type FreeQuaternion struct{}

// Apply implements RotationPolicy
func (FreeQuaternion) Apply(a Angles, dx, dy, sensitivity float64) Angles {
	a.Yaw -= dx * sensitivity
	a.Pitch += dy * sensitivity
	return a
}

// Normalize implements RotationPolicy
func (FreeQuaternion) Normalize(a Angles) Angles {
	return a
}

// Compose implements RotationPolicy
func (FreeQuaternion) Compose(a Angles) mgl64.Quat {
	return physics.AxisAngle(physics.AxisY, a.Yaw).
		Mul(physics.AxisAngle(physics.AxisX, a.Pitch)).
		Mul(physics.AxisAngle(physics.AxisZ, a.Roll))
}

// Name implements RotationPolicy
func (FreeQuaternion) Name() string {
	return "free"
}

// PolicyByName returns the policy registered under name
func PolicyByName(name string) (RotationPolicy, bool) {
	switch name {
	case "clamped", "":
		return NewClampedPivot(), true
	case "free":
		return FreeQuaternion{}, true
	default:
		return nil, false
	}
}

// AnglesFromQuat decomposes q into yaw (Y), pitch (X) and roll (Z) for the
// yaw·pitch·roll composition order.
func AnglesFromQuat(q mgl64.Quat) Angles {
	m := q.Normalize().Mat4()
	m12 := m.At(1, 2)

	var a Angles
	a.Pitch = math.Asin(-mgl64.Clamp(m12, -1, 1))
	if math.Abs(m12) < 0.9999999 {
		a.Yaw = math.Atan2(m.At(0, 2), m.At(2, 2))
		a.Roll = math.Atan2(m.At(1, 0), m.At(1, 1))
	} else {
		// Gimbal lock: fold roll into yaw.
		a.Yaw = math.Atan2(-m.At(2, 0), m.At(0, 0))
	}
	return a
}
