// pkg/scene/step_test.go
package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_IntegratesDynamicBodies(t *testing.T) {
	g := NewGraph(WithGravity(mgl64.Vec3{0, -10, 0}))
	falling := g.AddRigidBody("falling", RigidBodyDesc{Local: IdentityTransform(), GravityScale: 1})
	floating := g.AddRigidBody("floating", RigidBodyDesc{Local: IdentityTransform(), GravityScale: 0})
	fixed := g.AddRigidBody("fixed", RigidBodyDesc{Local: IdentityTransform(), Type: Static, GravityScale: 1})

	g.SetVelocity(floating, mgl64.Vec3{2, 0, 0})
	g.Step(0.5)

	assert.Equal(t, mgl64.Vec3{0, -5, 0}, g.Velocity(falling))
	assert.Equal(t, mgl64.Vec3{0, -2.5, 0}, g.Position(falling))
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, g.Position(floating))
	assert.Equal(t, mgl64.Vec3{}, g.Position(fixed))
}

func TestStep_ZeroDeltaLeavesBodies(t *testing.T) {
	g := NewGraph(WithGravity(mgl64.Vec3{0, -10, 0}))
	body := g.AddRigidBody("body", RigidBodyDesc{Local: At(mgl64.Vec3{1, 2, 3}), GravityScale: 1})
	g.SetVelocity(body, mgl64.Vec3{4, 0, 0})

	g.Step(0)

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, g.Position(body))
	assert.Equal(t, mgl64.Vec3{4, 0, 0}, g.Velocity(body))
}

func TestStep_BallContacts(t *testing.T) {
	g := NewGraph()
	a := g.AddRigidBody("a", RigidBodyDesc{Local: At(mgl64.Vec3{0, 0, 0})})
	ca := g.AddCollider("ball-a", a, BallShape(5), 0)
	b := g.AddRigidBody("b", RigidBodyDesc{Local: At(mgl64.Vec3{8, 0, 0})})
	cb := g.AddCollider("ball-b", b, BallShape(5), 0)
	c := g.AddRigidBody("c", RigidBodyDesc{Local: At(mgl64.Vec3{0, 0, 200})})
	cc := g.AddCollider("ball-c", c, BallShape(5), 0)

	g.Step(0)

	contacts := g.Contacts(ca)
	require.Len(t, contacts, 1)
	assert.True(t, contacts[0].Involves(cb))
	assert.True(t, contacts[0].Active)
	assert.Equal(t, cb, contacts[0].Other(ca))
	assert.Empty(t, g.Contacts(cc))
}

func TestStep_SameBodyCollidersDoNotPair(t *testing.T) {
	g := NewGraph()
	body := g.AddRigidBody("body", RigidBodyDesc{Local: IdentityTransform()})
	first := g.AddCollider("first", body, BallShape(1), 0)
	g.AddCollider("second", body, BallShape(1), 0)

	g.Step(0)

	assert.Empty(t, g.Contacts(first))
}

func TestStep_ShellContacts(t *testing.T) {
	g := NewGraph()
	boundaryBody := g.AddRigidBody("boundary", RigidBodyDesc{Local: IdentityTransform(), Type: Static})
	shell := g.AddCollider("WorldBoundary", boundaryBody, ShellShape(100), 0)

	player := g.AddRigidBody("player", RigidBodyDesc{Local: At(mgl64.Vec3{10, 0, 0})})
	collider := g.AddCollider("PlayerCollider", player, CapsuleY(0.55, 0.15), 0)

	g.Step(0)
	contacts := g.Contacts(collider)
	require.Len(t, contacts, 1)
	assert.Equal(t, shell, contacts[0].Other(collider))
	assert.False(t, contacts[0].Active, "body well inside the shell is not touching it")

	g.SetPosition(player, mgl64.Vec3{99.5, 0, 0})
	g.Step(0)
	contacts = g.Contacts(collider)
	require.Len(t, contacts, 1)
	assert.True(t, contacts[0].Active, "capsule reaching the shell surface touches it")
}

func TestRemove_DropsContacts(t *testing.T) {
	g := NewGraph()
	a := g.AddRigidBody("a", RigidBodyDesc{Local: IdentityTransform()})
	ca := g.AddCollider("a", a, BallShape(1), 0)
	b := g.AddRigidBody("b", RigidBodyDesc{Local: At(mgl64.Vec3{1, 0, 0})})
	g.AddCollider("b", b, BallShape(1), 0)

	g.Step(0)
	require.Len(t, g.Contacts(ca), 1)

	g.Remove(b)
	assert.Empty(t, g.Contacts(ca))
	assert.Empty(t, g.AllContacts())
}
