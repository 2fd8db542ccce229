// pkg/scene/handle.go
package scene

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Handle identifies a node in a Graph. A handle is an index into the
// graph's pool plus the generation of the slot when the node was created,
// so handles to removed nodes are detected instead of aliasing new ones.
type Handle struct {
	Index      uint32 `json:"index" cbor:"index"`
	Generation uint32 `json:"generation" cbor:"generation"`
}

// None is the handle that refers to nothing
var None = Handle{}

// IsNone reports whether h refers to nothing
func (h Handle) IsNone() bool {
	return h.Generation == 0
}

// IsSome reports whether h refers to a node
func (h Handle) IsSome() bool {
	return h.Generation != 0
}

func (h Handle) String() string {
	if h.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", h.Index, h.Generation)
}

// Tag is the hashed name of a collider, used for cheap "is this the world
// boundary" checks.
type Tag uint64

// NoTag is carried by colliders without a name
const NoTag Tag = 0

// TagOf hashes a collider name into its Tag
func TagOf(name string) Tag {
	if name == "" {
		return NoTag
	}
	return Tag(xxhash.Sum64String(name))
}

// Contact is a broad-phase pair of colliders. Active is set while the
// shapes actually touch.
type Contact struct {
	Collider1 Handle
	Collider2 Handle
	Active    bool
}

// Other returns the collider in the pair that is not self
func (c Contact) Other(self Handle) Handle {
	if c.Collider1 == self {
		return c.Collider2
	}
	return c.Collider1
}

// Involves reports whether h is one of the two colliders
func (c Contact) Involves(h Handle) bool {
	return c.Collider1 == h || c.Collider2 == h
}
