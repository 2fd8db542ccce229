// pkg/script/balls.go
package script

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/scene"
)

// Node names created by Balls
const (
	BallName     = "Ball"
	BallMeshName = "BallMesh"
)

// Balls spawns decorative dynamic balls around the origin
type Balls struct {
	Base

	Bodies []scene.Handle `cbor:"bodies"`
}

// Construct implements Script
func (b *Balls) Construct(ctx *Context) error {
	cfg := ctx.Config.Balls
	g := ctx.Scene
	b.Bodies = b.Bodies[:0]

	for _, position := range cfg.Positions {
		body := g.AddRigidBody(BallName, scene.RigidBodyDesc{
			Local:        scene.At(physics.FromArray(position)),
			Type:         scene.Dynamic,
			GravityScale: cfg.GravityScale,
			CanSleep:     true,
			CCD:          cfg.CCD,
		})
		g.AddCollider(BallName, body, scene.BallShape(cfg.Radius), 0.5)
		g.AddMesh(BallMeshName, body, scene.IdentityTransform(),
			mgl64.Vec3{cfg.Radius, cfg.Radius, cfg.Radius})
		b.Bodies = append(b.Bodies, body)
	}

	ctx.Logger.Debug(ctx.Ctx, "balls spawned", "count", len(b.Bodies), "radius", cfg.Radius)
	return nil
}

// Deinit implements Deiniter
func (b *Balls) Deinit(ctx *Context) {
	for _, h := range b.Bodies {
		if ctx.Scene.Contains(h) {
			ctx.Scene.Remove(h)
		}
	}
	b.Bodies = nil
}
