// pkg/script/boundary.go
package script

import (
	"github.com/opd-ai/mason/pkg/scene"
)

// Boundary adds the static shell that keeps the player near the origin
type Boundary struct {
	Base

	Body     scene.Handle `cbor:"body"`
	Collider scene.Handle `cbor:"collider"`
}

// Construct implements Script
func (b *Boundary) Construct(ctx *Context) error {
	cfg := ctx.Config.Physics
	b.Body = ctx.Scene.AddRigidBody(cfg.BoundaryName, scene.RigidBodyDesc{
		Local: scene.IdentityTransform(),
		Type:  scene.Static,
	})
	b.Collider = ctx.Scene.AddCollider(cfg.BoundaryName, b.Body, scene.ShellShape(cfg.BoundaryRadius), 0)
	return nil
}

// Deinit implements Deiniter
func (b *Boundary) Deinit(ctx *Context) {
	if ctx.Scene.Contains(b.Body) {
		ctx.Scene.Remove(b.Body)
	}
}
