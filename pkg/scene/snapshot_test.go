// pkg/scene/snapshot_test.go
package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestoreRoundTrip(t *testing.T) {
	g := NewGraph(WithGravity(mgl64.Vec3{0, -1, 0}))
	body := g.AddRigidBody("body", RigidBodyDesc{Local: At(mgl64.Vec3{1, 2, 3}), GravityScale: 1})
	collider := g.AddCollider("collider", body, BallShape(2), 0.5)
	removed := g.AddPivot("removed", IdentityTransform(), None)
	g.Remove(removed)
	g.SetVelocity(body, mgl64.Vec3{4, 5, 6})

	restored := Restore(g.Snapshot())

	require.True(t, restored.Contains(body))
	require.True(t, restored.Contains(collider))
	assert.False(t, restored.Contains(removed), "stale handles stay stale after restore")
	assert.Equal(t, g.Len(), restored.Len())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, restored.Position(body))
	assert.Equal(t, mgl64.Vec3{4, 5, 6}, restored.Velocity(body))
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, restored.Gravity())
	assert.Equal(t, TagOf("collider"), restored.Tag(collider))
	assert.Equal(t, []Handle{collider}, restored.Children(body))
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	g := NewGraph()
	body := g.AddRigidBody("body", RigidBodyDesc{Local: IdentityTransform()})

	snap := g.Snapshot()
	g.SetVelocity(body, mgl64.Vec3{9, 9, 9})
	g.AddCollider("late", body, BallShape(1), 0)

	restored := Restore(snap)
	assert.Equal(t, mgl64.Vec3{}, restored.Velocity(body))
	assert.Empty(t, restored.Children(body))
}
