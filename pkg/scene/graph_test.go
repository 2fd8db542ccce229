// pkg/scene/graph_test.go
package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGraph_AddAndContains(t *testing.T) {
	g := NewGraph()
	pivot := g.AddPivot("pivot", IdentityTransform(), None)

	if !g.Contains(pivot) {
		t.Fatal("Expected graph to contain new pivot")
	}
	if g.Kind(pivot) != KindPivot {
		t.Errorf("Expected kind pivot, got %s", g.Kind(pivot))
	}
	if g.Name(pivot) != "pivot" {
		t.Errorf("Expected name 'pivot', got %q", g.Name(pivot))
	}
	if g.Len() != 1 {
		t.Errorf("Expected 1 node, got %d", g.Len())
	}
	if g.Contains(None) {
		t.Error("Graph must never contain the None handle")
	}
}

func TestGraph_RemoveInvalidatesHandles(t *testing.T) {
	g := NewGraph()
	body := g.AddRigidBody("body", RigidBodyDesc{Local: IdentityTransform()})
	collider := g.AddCollider("collider", body, BallShape(1), 0)

	g.Remove(body)

	if g.Contains(body) || g.Contains(collider) {
		t.Fatal("Expected body and its collider to be removed")
	}
	if g.Len() != 0 {
		t.Errorf("Expected empty graph, got %d nodes", g.Len())
	}

	reused := g.AddPivot("reused", IdentityTransform(), None)
	if reused.Index != body.Index && reused.Index != collider.Index {
		t.Fatalf("Expected slot reuse, got index %d", reused.Index)
	}
	if g.Contains(body) || g.Contains(collider) {
		t.Error("Stale handle must not resolve to the node reusing its slot")
	}
}

func TestGraph_InvalidHandlePanics(t *testing.T) {
	g := NewGraph()
	pivot := g.AddPivot("pivot", IdentityTransform(), None)
	g.Remove(pivot)

	tests := []struct {
		name string
		fn   func()
	}{
		{"position_of_removed", func() { g.Position(pivot) }},
		{"unknown_index", func() { g.SetPosition(Handle{Index: 99, Generation: 1}, mgl64.Vec3{}) }},
		{"none_handle", func() { g.Rotation(None) }},
		{"velocity_of_non_body", func() {
			p := g.AddPivot("p", IdentityTransform(), None)
			g.Velocity(p)
		}},
		{"tag_of_non_collider", func() {
			p := g.AddPivot("q", IdentityTransform(), None)
			g.Tag(p)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic for invalid dereference")
				}
			}()
			tt.fn()
		})
	}
}

func TestGraph_ParentChildLinks(t *testing.T) {
	g := NewGraph()
	pivot := g.AddPivot("pivot", IdentityTransform(), None)
	camera := g.AddCamera("camera", pivot, mgl64.Vec3{0, 0, -2}, 48)

	if g.Parent(camera) != pivot {
		t.Errorf("Expected camera parent %v, got %v", pivot, g.Parent(camera))
	}
	children := g.Children(pivot)
	if len(children) != 1 || children[0] != camera {
		t.Errorf("Expected pivot children [%v], got %v", camera, children)
	}
	if n := g.Node(camera); n.Camera == nil || n.Camera.ZFar != 48 {
		t.Errorf("Expected camera z-far 48, got %+v", n.Camera)
	}

	g.Remove(camera)
	if len(g.Children(pivot)) != 0 {
		t.Error("Expected child link to be dropped on removal")
	}
}

func TestGraph_WorldPosition(t *testing.T) {
	g := NewGraph()
	pivot := g.AddPivot("pivot", Transform{
		Position: mgl64.Vec3{10, 0, 0},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}),
	}, None)
	camera := g.AddCamera("camera", pivot, mgl64.Vec3{0, 0, -2}, 48)

	got := g.WorldPosition(camera)
	expected := mgl64.Vec3{8, 0, 0}
	if !got.ApproxEqualThreshold(expected, 1e-9) {
		t.Errorf("WorldPosition() = %v, expected %v", got, expected)
	}

	rot := g.WorldRotation(camera)
	if !rot.ApproxEqualThreshold(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}), 1e-9) {
		t.Errorf("WorldRotation() = %v", rot)
	}
}

func TestGraph_FindByNameAndEach(t *testing.T) {
	g := NewGraph()
	g.AddPivot("a", IdentityTransform(), None)
	b := g.AddRigidBody("b", RigidBodyDesc{Local: IdentityTransform()})
	g.AddRigidBody("c", RigidBodyDesc{Local: IdentityTransform()})

	found, ok := g.FindByName("b")
	if !ok || found != b {
		t.Errorf("FindByName(b) = %v, %v", found, ok)
	}
	if _, ok := g.FindByName("missing"); ok {
		t.Error("Expected FindByName to miss unknown name")
	}

	var names []string
	g.Each(KindRigidBody, func(h Handle, n Node) {
		names = append(names, n.Name)
	})
	if len(names) != 2 || names[0] != "b" || names[1] != "c" {
		t.Errorf("Each(KindRigidBody) visited %v", names)
	}
}

func TestTagOf(t *testing.T) {
	if TagOf("") != NoTag {
		t.Error("Expected empty name to carry NoTag")
	}
	if TagOf("WorldBoundary") != TagOf("WorldBoundary") {
		t.Error("Expected tags to be stable")
	}
	if TagOf("WorldBoundary") == TagOf("PlayerCollider") {
		t.Error("Expected distinct names to hash differently")
	}

	g := NewGraph()
	body := g.AddRigidBody("body", RigidBodyDesc{Local: IdentityTransform()})
	c := g.AddCollider("WorldBoundary", body, ShellShape(10), 0)
	if g.Tag(c) != TagOf("WorldBoundary") {
		t.Error("Expected collider tag derived from its name")
	}
}

func TestHandle_String(t *testing.T) {
	if None.String() != "none" {
		t.Errorf("Expected 'none', got %q", None.String())
	}
	if (Handle{Index: 3, Generation: 2}).String() != "3:2" {
		t.Errorf("Unexpected handle string %q", Handle{Index: 3, Generation: 2}.String())
	}
}
