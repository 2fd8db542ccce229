// pkg/script/camera.go
package script

import (
	"github.com/opd-ai/mason/pkg/camera"
	"github.com/opd-ai/mason/pkg/input"
	"github.com/opd-ai/mason/pkg/scene"
)

// Node names created by FreeCamera
const (
	FreeCameraPivotName = "FreeCameraPivot"
	FreeCameraName      = "FreeCamera"
)

// freeSensitivityScale converts the configured free-camera sensitivity
// into radians per unit
const freeSensitivityScale = 0.001

// FreeCamera is a standalone look-around camera: unclamped yaw and pitch,
// composed with roll every tick.
type FreeCamera struct {
	Base

	Pivot            scene.Handle  `cbor:"pivot"`
	Camera           scene.Handle  `cbor:"camera"`
	MouseSensitivity float64       `cbor:"mouseSensitivity"`
	Angles           camera.Angles `cbor:"angles"`

	rig *camera.Rig
}

// Construct implements Script
func (c *FreeCamera) Construct(ctx *Context) error {
	if c.MouseSensitivity == 0 {
		c.MouseSensitivity = ctx.Config.Camera.FreeSensitivity
	}
	c.Pivot = ctx.Scene.AddPivot(FreeCameraPivotName, scene.IdentityTransform(), scene.None)
	c.Camera = ctx.Scene.AddCamera(FreeCameraName, c.Pivot, ctx.Config.Camera.Offset, ctx.Config.Camera.ZFar)
	return c.Restore(ctx)
}

// Restore implements Restorer
func (c *FreeCamera) Restore(ctx *Context) error {
	c.rig = camera.NewRig(c.Pivot, c.Camera, camera.FreeQuaternion{}, c.MouseSensitivity*freeSensitivityScale)
	c.rig.SetAngles(c.Angles)
	return nil
}

// HandleInput implements Script
func (c *FreeCamera) HandleInput(ctx *Context, ev input.Event) {
	if ev.Kind != input.MouseMotion {
		return
	}
	c.rig.ApplyMouseDelta(ev.DX, ev.DY)
	c.Angles = c.rig.Angles()
}

// Tick implements Script
func (c *FreeCamera) Tick(ctx *Context, dt float64) {
	c.rig.Commit(ctx.Scene)
}

// Deinit implements Deiniter
func (c *FreeCamera) Deinit(ctx *Context) {
	if ctx.Scene.Contains(c.Pivot) {
		ctx.Scene.Remove(c.Pivot)
	}
}

// Rig returns the camera rig
func (c *FreeCamera) Rig() *camera.Rig {
	return c.rig
}
