// Package scene provides the in-memory scene graph the player scripts run
// against: a pool of nodes addressed by generational handles, rigid bodies
// with velocities, colliders with contact tracking, and a minimal physics
// step. Dereferencing a stale or unknown handle panics; callers are expected
// to only hold handles to live nodes.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type slot struct {
	generation uint32
	alive      bool
	node       Node
}

// Graph owns every node of a scene
type Graph struct {
	slots    []slot
	free     []uint32
	gravity  mgl64.Vec3
	contacts []Contact
}

// Option configures a Graph at construction
type Option func(*Graph)

// WithGravity sets the world gravity vector
func WithGravity(gravity mgl64.Vec3) Option {
	return func(g *Graph) {
		g.gravity = gravity
	}
}

// NewGraph creates an empty graph. Gravity defaults to zero.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Gravity returns the world gravity vector
func (g *Graph) Gravity() mgl64.Vec3 {
	return g.gravity
}

// Add inserts node under parent (or at the root when parent is None) and
// returns its handle.
func (g *Graph) Add(node Node, parent Handle) Handle {
	if parent.IsSome() {
		g.mustGet(parent)
	}
	node.Parent = parent
	node.Children = nil

	var h Handle
	if n := len(g.free); n > 0 {
		index := g.free[n-1]
		g.free = g.free[:n-1]
		s := &g.slots[index]
		s.generation++
		s.alive = true
		s.node = node
		h = Handle{Index: index, Generation: s.generation}
	} else {
		g.slots = append(g.slots, slot{generation: 1, alive: true, node: node})
		h = Handle{Index: uint32(len(g.slots) - 1), Generation: 1}
	}

	if parent.IsSome() {
		p := g.mustGet(parent)
		p.Children = append(p.Children, h)
	}
	return h
}

// Remove deletes h and its whole subtree
func (g *Graph) Remove(h Handle) {
	n := g.mustGet(h)
	children := append([]Handle(nil), n.Children...)
	for _, child := range children {
		g.Remove(child)
	}

	if n.Parent.IsSome() && g.Contains(n.Parent) {
		p := g.mustGet(n.Parent)
		for i, c := range p.Children {
			if c == h {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}

	s := &g.slots[h.Index]
	s.alive = false
	s.node = Node{}
	g.free = append(g.free, h.Index)
	g.dropContacts(h)
}

// Contains reports whether h refers to a live node
func (g *Graph) Contains(h Handle) bool {
	if h.IsNone() || int(h.Index) >= len(g.slots) {
		return false
	}
	s := g.slots[h.Index]
	return s.alive && s.generation == h.Generation
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	return len(g.slots) - len(g.free)
}

func (g *Graph) mustGet(h Handle) *Node {
	if !g.Contains(h) {
		panic(fmt.Sprintf("scene: invalid handle %v", h))
	}
	return &g.slots[h.Index].node
}

// Node returns a copy of the node behind h
func (g *Graph) Node(h Handle) Node {
	return *g.mustGet(h)
}

// Kind returns the node kind
func (g *Graph) Kind(h Handle) Kind {
	return g.mustGet(h).Kind
}

// Name returns the node name
func (g *Graph) Name(h Handle) string {
	return g.mustGet(h).Name
}

// Parent returns the parent handle, or None for root nodes
func (g *Graph) Parent(h Handle) Handle {
	return g.mustGet(h).Parent
}

// Children returns a copy of the child handles
func (g *Graph) Children(h Handle) []Handle {
	return append([]Handle(nil), g.mustGet(h).Children...)
}

// FindByName returns the first live node (in pool order) with the name
func (g *Graph) FindByName(name string) (Handle, bool) {
	for i, s := range g.slots {
		if s.alive && s.node.Name == name {
			return Handle{Index: uint32(i), Generation: s.generation}, true
		}
	}
	return None, false
}

// Each calls fn for every live node of the given kind, in pool order
func (g *Graph) Each(kind Kind, fn func(h Handle, n Node)) {
	for i, s := range g.slots {
		if s.alive && s.node.Kind == kind {
			fn(Handle{Index: uint32(i), Generation: s.generation}, s.node)
		}
	}
}

// Position returns the local position of h
func (g *Graph) Position(h Handle) mgl64.Vec3 {
	return g.mustGet(h).Local.Position
}

// SetPosition sets the local position of h
func (g *Graph) SetPosition(h Handle, position mgl64.Vec3) {
	g.mustGet(h).Local.Position = position
}

// Rotation returns the local rotation of h
func (g *Graph) Rotation(h Handle) mgl64.Quat {
	return g.mustGet(h).Local.Rotation
}

// SetRotation sets the local rotation of h
func (g *Graph) SetRotation(h Handle, rotation mgl64.Quat) {
	g.mustGet(h).Local.Rotation = rotation
}

// WorldPosition walks the parent chain to place h in world space
func (g *Graph) WorldPosition(h Handle) mgl64.Vec3 {
	n := g.mustGet(h)
	position := n.Local.Position
	for parent := n.Parent; parent.IsSome(); {
		p := g.mustGet(parent)
		position = rotation(p.Local).Rotate(position).Add(p.Local.Position)
		parent = p.Parent
	}
	return position
}

// WorldRotation composes the rotations along the parent chain
func (g *Graph) WorldRotation(h Handle) mgl64.Quat {
	n := g.mustGet(h)
	result := rotation(n.Local)
	for parent := n.Parent; parent.IsSome(); {
		p := g.mustGet(parent)
		result = rotation(p.Local).Mul(result)
		parent = p.Parent
	}
	return result
}

// rotation treats a zero quaternion as identity so hand-built transforms
// behave.
func rotation(t Transform) mgl64.Quat {
	if t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

func (g *Graph) mustBody(h Handle) *Body {
	n := g.mustGet(h)
	if n.Body == nil {
		panic(fmt.Sprintf("scene: node %v (%s) is not a rigid body", h, n.Kind))
	}
	return n.Body
}

// Body returns a copy of the rigid-body state of h
func (g *Graph) Body(h Handle) Body {
	return *g.mustBody(h)
}

// Velocity returns the linear velocity of body h
func (g *Graph) Velocity(h Handle) mgl64.Vec3 {
	return g.mustBody(h).Velocity
}

// SetVelocity sets the linear velocity of body h
func (g *Graph) SetVelocity(h Handle, velocity mgl64.Vec3) {
	g.mustBody(h).Velocity = velocity
}

// GravityScale returns how strongly gravity acts on body h
func (g *Graph) GravityScale(h Handle) float64 {
	return g.mustBody(h).GravityScale
}

func (g *Graph) mustCollider(h Handle) *Collider {
	n := g.mustGet(h)
	if n.Collider == nil {
		panic(fmt.Sprintf("scene: node %v (%s) is not a collider", h, n.Kind))
	}
	return n.Collider
}

// Collider returns a copy of the collider state of h
func (g *Graph) Collider(h Handle) Collider {
	return *g.mustCollider(h)
}

// Tag returns the name tag of collider h
func (g *Graph) Tag(h Handle) Tag {
	return g.mustCollider(h).Tag
}

// OwningBody returns the closest rigid-body ancestor of h (h itself if it
// is a body), or None.
func (g *Graph) OwningBody(h Handle) Handle {
	for current := h; current.IsSome(); {
		n := g.mustGet(current)
		if n.Body != nil {
			return current
		}
		current = n.Parent
	}
	return None
}
