// pkg/scene/snapshot.go
package scene

// Snapshot is a self-contained copy of a Graph, suitable for encoding
type Snapshot struct {
	Slots    []SlotSnapshot `json:"slots" cbor:"slots"`
	Free     []uint32       `json:"free" cbor:"free"`
	Gravity  [3]float64     `json:"gravity" cbor:"gravity"`
	Contacts []Contact      `json:"contacts" cbor:"contacts"`
}

// SlotSnapshot is one pool slot. Dead slots keep their generation so
// restored graphs still reject stale handles.
type SlotSnapshot struct {
	Generation uint32 `json:"generation" cbor:"generation"`
	Alive      bool   `json:"alive" cbor:"alive"`
	Node       Node   `json:"node" cbor:"node"`
}

// Snapshot returns a deep copy of the graph
func (g *Graph) Snapshot() Snapshot {
	s := Snapshot{
		Slots:    make([]SlotSnapshot, len(g.slots)),
		Free:     append([]uint32(nil), g.free...),
		Gravity:  g.gravity,
		Contacts: append([]Contact(nil), g.contacts...),
	}
	for i, slot := range g.slots {
		s.Slots[i] = SlotSnapshot{
			Generation: slot.generation,
			Alive:      slot.alive,
			Node:       cloneNode(slot.node),
		}
	}
	return s
}

// Restore builds a graph from a snapshot
func Restore(s Snapshot) *Graph {
	g := &Graph{
		slots:    make([]slot, len(s.Slots)),
		free:     append([]uint32(nil), s.Free...),
		gravity:  s.Gravity,
		contacts: append([]Contact(nil), s.Contacts...),
	}
	for i, ss := range s.Slots {
		g.slots[i] = slot{
			generation: ss.Generation,
			alive:      ss.Alive,
			node:       cloneNode(ss.Node),
		}
	}
	return g
}

func cloneNode(n Node) Node {
	n.Children = append([]Handle(nil), n.Children...)
	if n.Body != nil {
		b := *n.Body
		n.Body = &b
	}
	if n.Collider != nil {
		c := *n.Collider
		n.Collider = &c
	}
	if n.Camera != nil {
		c := *n.Camera
		n.Camera = &c
	}
	return n
}
