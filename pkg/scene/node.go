// pkg/scene/node.go
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind is the type of a scene node
type Kind int

const (
	KindPivot Kind = iota
	KindCamera
	KindRigidBody
	KindCollider
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindPivot:
		return "pivot"
	case KindCamera:
		return "camera"
	case KindRigidBody:
		return "rigid_body"
	case KindCollider:
		return "collider"
	case KindMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// Transform is a node's transform relative to its parent
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityTransform returns a transform at the origin with no rotation
func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// At returns an unrotated transform at position
func At(position mgl64.Vec3) Transform {
	return Transform{Position: position, Rotation: mgl64.QuatIdent()}
}

// BodyType controls how Step treats a rigid body
type BodyType int

const (
	Dynamic BodyType = iota
	Kinematic
	Static
)

// Body is the rigid-body state of a node
type Body struct {
	Type         BodyType
	Velocity     mgl64.Vec3
	GravityScale float64
	CanSleep     bool
	CCD          bool
}

// ShapeKind selects the collision shape
type ShapeKind int

const (
	// Ball is a solid sphere.
	Ball ShapeKind = iota
	// Capsule is a Y-aligned capsule; contacts use its bounding sphere.
	Capsule
	// Shell is a hollow sphere that contains other shapes, used for the
	// edge of the playable volume.
	Shell
)

// Shape describes a collider's geometry
type Shape struct {
	Kind       ShapeKind
	Radius     float64
	HalfHeight float64
}

// BallShape returns a solid sphere of radius r
func BallShape(r float64) Shape {
	return Shape{Kind: Ball, Radius: r}
}

// CapsuleY returns a Y-aligned capsule
func CapsuleY(halfHeight, radius float64) Shape {
	return Shape{Kind: Capsule, Radius: radius, HalfHeight: halfHeight}
}

// ShellShape returns a hollow boundary sphere of radius r
func ShellShape(r float64) Shape {
	return Shape{Kind: Shell, Radius: r}
}

// BoundingRadius is the radius of the sphere used for contact tests
func (s Shape) BoundingRadius() float64 {
	if s.Kind == Capsule {
		return s.HalfHeight + s.Radius
	}
	return s.Radius
}

// Collider is the collision state of a node
type Collider struct {
	Shape    Shape
	Friction float64
	Tag      Tag
}

// Camera holds projection parameters of a camera node
type Camera struct {
	ZNear float64
	ZFar  float64
	FOV   float64
}

// Node is an entry in the graph pool
type Node struct {
	Kind      Kind
	Name      string
	Local     Transform
	Parent    Handle
	Children  []Handle
	Body      *Body
	Collider  *Collider
	Camera    *Camera
	MeshScale mgl64.Vec3
}
