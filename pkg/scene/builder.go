// pkg/scene/builder.go
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// AddPivot adds an empty transform node
func (g *Graph) AddPivot(name string, local Transform, parent Handle) Handle {
	return g.Add(Node{Kind: KindPivot, Name: name, Local: local}, parent)
}

// AddCamera adds a camera node at offset from parent
func (g *Graph) AddCamera(name string, parent Handle, offset mgl64.Vec3, zFar float64) Handle {
	return g.Add(Node{
		Kind:   KindCamera,
		Name:   name,
		Local:  At(offset),
		Camera: &Camera{ZNear: 0.025, ZFar: zFar, FOV: 75},
	}, parent)
}

// RigidBodyDesc describes a rigid body to create
type RigidBodyDesc struct {
	Local        Transform
	Type         BodyType
	GravityScale float64
	CanSleep     bool
	CCD          bool
}

// AddRigidBody adds a root-level rigid body
func (g *Graph) AddRigidBody(name string, desc RigidBodyDesc) Handle {
	return g.Add(Node{
		Kind:  KindRigidBody,
		Name:  name,
		Local: desc.Local,
		Body: &Body{
			Type:         desc.Type,
			GravityScale: desc.GravityScale,
			CanSleep:     desc.CanSleep,
			CCD:          desc.CCD,
		},
	}, None)
}

// AddCollider attaches a collider to parent. The collider's tag is derived
// from its name.
func (g *Graph) AddCollider(name string, parent Handle, shape Shape, friction float64) Handle {
	return g.Add(Node{
		Kind:  KindCollider,
		Name:  name,
		Local: IdentityTransform(),
		Collider: &Collider{
			Shape:    shape,
			Friction: friction,
			Tag:      TagOf(name),
		},
	}, parent)
}

// AddMesh adds a decorative mesh node scaled by scale
func (g *Graph) AddMesh(name string, parent Handle, local Transform, scale mgl64.Vec3) Handle {
	return g.Add(Node{Kind: KindMesh, Name: name, Local: local, MeshScale: scale}, parent)
}
