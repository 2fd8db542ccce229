// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the 3D vector type used throughout the simulation.
type Vec3 = mgl64.Vec3

// Quat is the unit quaternion type used for orientations.
type Quat = mgl64.Quat

// Axis vectors in the right-handed, Y-up body frame.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// IsZero reports whether every component of v is exactly zero
func IsZero(v Vec3) bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// ClampLength returns v scaled down so its length does not exceed max.
// Vectors already within the limit are returned untouched.
func ClampLength(v Vec3, max float64) Vec3 {
	lengthSquared := v.LenSqr()
	if lengthSquared <= max*max || lengthSquared == 0 {
		return v
	}
	return v.Mul(max / math.Sqrt(lengthSquared))
}

// FromArray converts a configuration triple into a vector
func FromArray(a [3]float64) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

// IsFinite reports whether all components are neither NaN nor infinite
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// AxisAngle builds the unit quaternion rotating by angle (radians) around
// the given unit axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	return mgl64.QuatRotate(angle, axis)
}

// Identity returns the identity rotation
func Identity() Quat {
	return mgl64.QuatIdent()
}
