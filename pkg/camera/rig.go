// Package camera implements the player's camera rig: a pivot node whose
// orientation is driven by accumulated mouse motion and whose position can
// be kept coincident with the player body.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/scene"
)

// Reference values for the original pivot camera
const (
	DefaultSensitivity = 0.0025
	DefaultZFar        = 48.0
)

// DefaultOffset is the camera's local position relative to its pivot
var DefaultOffset = mgl64.Vec3{0, 0, -2}

// Transformer is the part of the scene the rig writes to
type Transformer interface {
	SetRotation(h scene.Handle, rotation mgl64.Quat)
	SetPosition(h scene.Handle, position mgl64.Vec3)
}

// Rig owns the yaw/pitch/roll accumulator and the pivot handle
type Rig struct {
	policy      RotationPolicy
	sensitivity float64
	angles      Angles

	pivot  scene.Handle
	camera scene.Handle
}

// NewRig creates a rig driving pivot with the given policy
func NewRig(pivot, camera scene.Handle, policy RotationPolicy, sensitivity float64) *Rig {
	if policy == nil {
		policy = NewClampedPivot()
	}
	return &Rig{
		policy:      policy,
		sensitivity: sensitivity,
		pivot:       pivot,
		camera:      camera,
	}
}

// ApplyMouseDelta accumulates a relative mouse motion
func (r *Rig) ApplyMouseDelta(dx, dy float64) {
	r.angles = r.policy.Apply(r.angles, dx, dy, r.sensitivity)
}

// Commit writes the composed orientation into the pivot's rotation
func (r *Rig) Commit(t Transformer) {
	t.SetRotation(r.pivot, r.Orientation())
}

// SetPosition moves the pivot, keeping it on the body when the camera is
// not parented to it.
func (r *Rig) SetPosition(t Transformer, position mgl64.Vec3) {
	t.SetPosition(r.pivot, position)
}

// Orientation returns the current facing as a unit quaternion
func (r *Rig) Orientation() mgl64.Quat {
	return r.policy.Compose(r.angles)
}

// SetOrientation forces an absolute facing. The quaternion is decomposed
// into angles, so later mouse input continues from it.
func (r *Rig) SetOrientation(q mgl64.Quat) {
	r.angles = r.policy.Normalize(AnglesFromQuat(q))
}

// Angles returns the raw accumulator
func (r *Rig) Angles() Angles {
	return r.angles
}

// SetAngles replaces the accumulator, subject to the policy's limits
func (r *Rig) SetAngles(a Angles) {
	r.angles = r.policy.Normalize(a)
}

// SetSensitivity sets the radians-per-unit mouse scale
func (r *Rig) SetSensitivity(sensitivity float64) {
	r.sensitivity = sensitivity
}

// Sensitivity returns the mouse scale
func (r *Rig) Sensitivity() float64 {
	return r.sensitivity
}

// Policy returns the rotation policy
func (r *Rig) Policy() RotationPolicy {
	return r.policy
}

// Pivot returns the pivot handle
func (r *Rig) Pivot() scene.Handle {
	return r.pivot
}

// Camera returns the camera node handle
func (r *Rig) Camera() scene.Handle {
	return r.camera
}
