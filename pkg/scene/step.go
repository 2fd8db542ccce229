// pkg/scene/step.go
package scene

import (
	"math"

	"github.com/opd-ai/mason/pkg/physics"
)

// octreeCapacity is the number of colliders per octant before subdividing
const octreeCapacity = 8

// Step advances dynamic bodies by dt and refreshes the contact set
func (g *Graph) Step(dt float64) {
	if dt > 0 {
		g.integrateBodies(dt)
	}
	g.updateContacts()
}

// integrateBodies applies gravity and moves every dynamic root body
func (g *Graph) integrateBodies(dt float64) {
	for i := range g.slots {
		s := &g.slots[i]
		if !s.alive || s.node.Body == nil || s.node.Body.Type != Dynamic {
			continue
		}
		body := s.node.Body
		body.Velocity = body.Velocity.Add(g.gravity.Mul(body.GravityScale * dt))
		s.node.Local.Position = s.node.Local.Position.Add(body.Velocity.Mul(dt))
	}
}

type colliderEntry struct {
	handle Handle
	body   Handle
	sphere physics.Sphere
	shell  bool
	order  int
}

// Contacts returns the current contact pairs involving collider h, in the
// order they were generated.
func (g *Graph) Contacts(h Handle) []Contact {
	g.mustCollider(h)
	result := make([]Contact, 0)
	for _, c := range g.contacts {
		if c.Involves(h) {
			result = append(result, c)
		}
	}
	return result
}

// AllContacts returns every contact pair
func (g *Graph) AllContacts() []Contact {
	return append([]Contact(nil), g.contacts...)
}

// updateContacts rebuilds the contact set: solid shapes are paired through
// an octree broad phase; every solid shape is paired with every shell.
func (g *Graph) updateContacts() {
	g.contacts = g.contacts[:0]

	var solids, shells []colliderEntry
	extent, maxRadius := 1.0, 0.0
	g.Each(KindCollider, func(h Handle, n Node) {
		entry := colliderEntry{
			handle: h,
			body:   g.OwningBody(h),
			sphere: physics.Sphere{Center: g.WorldPosition(h), Radius: n.Collider.Shape.BoundingRadius()},
			shell:  n.Collider.Shape.Kind == Shell,
		}
		if entry.shell {
			shells = append(shells, entry)
			return
		}
		entry.order = len(solids)
		solids = append(solids, entry)
		maxRadius = math.Max(maxRadius, entry.sphere.Radius)
		for _, c := range entry.sphere.Center {
			extent = math.Max(extent, math.Abs(c)+entry.sphere.Radius)
		}
	})

	index := physics.NewOctree(physics.BoxAround(physics.Vec3{}, extent+1), octreeCapacity)
	for i := range solids {
		index.Insert(solids[i].sphere.Center, &solids[i])
	}

	for i := range solids {
		a := &solids[i]
		for _, candidate := range index.Query(physics.BoxAround(a.sphere.Center, a.sphere.Radius+maxRadius)) {
			b := candidate.(*colliderEntry)
			if b.order <= a.order || (a.body.IsSome() && a.body == b.body) {
				continue
			}
			g.contacts = append(g.contacts, Contact{
				Collider1: a.handle,
				Collider2: b.handle,
				Active:    physics.CheckCollision(a.sphere, b.sphere).Collided,
			})
		}
		for _, shell := range shells {
			g.contacts = append(g.contacts, Contact{
				Collider1: a.handle,
				Collider2: shell.handle,
				Active:    physics.CheckContainment(shell.sphere, a.sphere).Collided,
			})
		}
	}
}

func (g *Graph) dropContacts(h Handle) {
	kept := g.contacts[:0]
	for _, c := range g.contacts {
		if !c.Involves(h) {
			kept = append(kept, c)
		}
	}
	g.contacts = kept
}
