// pkg/script/player.go
package script

import (
	"fmt"

	"github.com/opd-ai/mason/pkg/camera"
	"github.com/opd-ai/mason/pkg/input"
	"github.com/opd-ai/mason/pkg/locomotion"
	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/scene"
)

// Node names created by Player
const (
	PlayerBodyName     = "Player"
	PlayerColliderName = "PlayerCollider"
	CameraPivotName    = "CameraPivot"
	CameraName         = "Camera"
)

// Player builds the player body and camera rig and drives them with a
// locomotion controller
type Player struct {
	Base

	Body     scene.Handle  `cbor:"body"`
	Collider scene.Handle  `cbor:"collider"`
	Pivot    scene.Handle  `cbor:"pivot"`
	Camera   scene.Handle  `cbor:"camera"`
	Angles   camera.Angles `cbor:"angles"`
	Momentum [3]float64    `cbor:"momentum"`

	controller *locomotion.Controller
}

// Construct implements Script
func (p *Player) Construct(ctx *Context) error {
	cfg := ctx.Config.Player
	start := scene.At(physics.FromArray(cfg.Start))
	g := ctx.Scene

	p.Body = g.AddRigidBody(PlayerBodyName, scene.RigidBodyDesc{
		Local:        start,
		Type:         scene.Dynamic,
		GravityScale: cfg.GravityScale,
		CanSleep:     cfg.CanSleep,
	})
	p.Collider = g.AddCollider(PlayerColliderName, p.Body,
		scene.CapsuleY(cfg.CapsuleHalfHeight, cfg.CapsuleRadius), cfg.Friction)

	if ctx.Config.Camera.PivotSync {
		p.Pivot = g.AddPivot(CameraPivotName, start, scene.None)
	} else {
		p.Pivot = g.AddPivot(CameraPivotName, scene.IdentityTransform(), p.Body)
	}
	p.Camera = g.AddCamera(CameraName, p.Pivot, ctx.Config.Camera.Offset, ctx.Config.Camera.ZFar)

	return p.Restore(ctx)
}

// Restore implements Restorer
func (p *Player) Restore(ctx *Context) error {
	cfg := ctx.Config
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	integrator, err := cfg.Integrator()
	if err != nil {
		return err
	}
	for _, h := range []scene.Handle{p.Body, p.Collider, p.Pivot} {
		if !ctx.Scene.Contains(h) {
			return fmt.Errorf("player node %v is not in the scene", h)
		}
	}

	rig := camera.NewRig(p.Pivot, p.Camera, policy, cfg.Camera.Sensitivity)
	rig.SetAngles(p.Angles)

	p.controller = locomotion.New(ctx.Scene,
		locomotion.Handles{Body: p.Body, Collider: p.Collider},
		rig,
		locomotion.WithIntegrator(integrator),
		locomotion.WithResolver(locomotion.Resolver{Boundary: scene.TagOf(cfg.Physics.BoundaryName)}),
		locomotion.WithPivotSync(cfg.Camera.PivotSync),
		locomotion.WithEventBus(ctx.Bus),
		locomotion.WithLogger(ctx.Logger),
		locomotion.WithContext(ctx.Ctx),
	)
	if integrator.Mode() == physics.PositionDelta {
		p.controller.SetMomentum(physics.FromArray(p.Momentum))
	}

	ctx.Logger.Debug(ctx.Ctx, "player ready",
		"integration", integrator.Mode().String(),
		"policy", policy.Name(),
		"body", p.Body.String())
	return nil
}

// HandleInput implements Script
func (p *Player) HandleInput(ctx *Context, ev input.Event) {
	switch ev.Kind {
	case input.KeyEvent:
		p.controller.HandleKeyEvent(ev.Direction, ev.Pressed)
	case input.MouseMotion:
		p.controller.HandleMouseDelta(ev.DX, ev.DY)
		p.Angles = p.controller.Rig().Angles()
	}
}

// Tick implements Script
func (p *Player) Tick(ctx *Context, dt float64) {
	p.controller.Tick(dt)
	p.Angles = p.controller.Rig().Angles()
	p.Momentum = p.controller.Momentum()
}

// PostStep implements PostStepper. The velocity strategy moves the body in
// the scene step, after Tick has placed the pivot.
func (p *Player) PostStep(ctx *Context) {
	p.controller.SyncPivot()
}

// Deinit implements Deiniter
func (p *Player) Deinit(ctx *Context) {
	for _, h := range []scene.Handle{p.Pivot, p.Body} {
		if ctx.Scene.Contains(h) {
			ctx.Scene.Remove(h)
		}
	}
}

// Controller returns the locomotion controller
func (p *Player) Controller() *locomotion.Controller {
	return p.controller
}
