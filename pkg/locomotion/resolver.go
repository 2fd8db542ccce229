// pkg/locomotion/resolver.go
package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/scene"
)

// BoundaryName is the collider name carried by the world boundary
const BoundaryName = "WorldBoundary"

// TagLookup resolves a collider's tag
type TagLookup interface {
	Tag(collider scene.Handle) scene.Tag
}

// Resolver turns boundary contacts into bounces
type Resolver struct {
	Boundary scene.Tag
}

// NewResolver returns a resolver for the collider named BoundaryName
func NewResolver() Resolver {
	return Resolver{Boundary: scene.TagOf(BoundaryName)}
}

// IsBoundary reports whether collider carries the boundary tag
func (r Resolver) IsBoundary(collider scene.Handle, tags TagLookup) bool {
	return tags.Tag(collider) == r.Boundary
}

// Resolve scans contacts of self in order. The first active contact with a
// boundary collider bounces the body if momentum points away from the
// origin along position, and the negated momentum is returned with true.
// Position is never changed here; the caller applies the bounced momentum
// in its next position write.
//
// The outward test uses the raw position, so it is only meaningful for a
// boundary centered on the origin.
func (r Resolver) Resolve(position, momentum mgl64.Vec3, self scene.Handle, contacts []scene.Contact, tags TagLookup) (mgl64.Vec3, bool) {
	for _, c := range contacts {
		if !c.Active || !c.Involves(self) {
			continue
		}
		if !r.IsBoundary(c.Other(self), tags) {
			continue
		}
		if momentum.Dot(position) > 0 {
			return momentum.Mul(-1), true
		}
		return momentum, false
	}
	return momentum, false
}
