// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/engine"
)

// CameraSystem manages the top-down view, following the player body.
// World X maps to screen left and world Z to screen up.
type CameraSystem struct {
	// Target to follow
	target    mgl64.Vec3
	targetSet bool

	// Camera properties
	zoom    float32 // pixels per world unit
	minZoom float32
	maxZoom float32

	// Smooth following
	followSpeed float32
	smoothing   bool

	// Current camera state
	currentPos mgl64.Vec3
	width      float32
	height     float32
}

// NewCameraSystem creates a new camera system for a view of the given size
func NewCameraSystem(width, height float32) *CameraSystem {
	return &CameraSystem{
		zoom:        3.0,
		minZoom:     0.5,
		maxZoom:     20.0,
		followSpeed: 4.0,
		smoothing:   true,
		width:       width,
		height:      height,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Priority runs the camera after the scripts and before drawing
func (cs *CameraSystem) Priority() int {
	return engine.ScriptSystemPriority - 5
}

// Update updates the camera position and zoom
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// handleZoomInput processes the mouse wheel
func (cs *CameraSystem) handleZoomInput() {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
}

// updateCameraPosition moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	step := float64(cs.followSpeed * dt)
	if step > 1 {
		step = 1
	}
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Mul(step))
}

// SetTarget sets the target position for the camera to follow
func (cs *CameraSystem) SetTarget(target mgl64.Vec3) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true
	if first || !cs.smoothing {
		cs.currentPos = target
	}
}

// ClearTarget clears the camera target
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// clampZoom ensures zoom is within valid bounds
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// SetViewSize changes the size of the view in pixels
func (cs *CameraSystem) SetViewSize(width, height float32) {
	cs.width, cs.height = width, height
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() mgl64.Vec3 {
	return cs.currentPos
}

// WorldToScreen converts world coordinates to screen coordinates
func (cs *CameraSystem) WorldToScreen(worldPos mgl64.Vec3) engo.Point {
	relativeX := float32(worldPos.X() - cs.currentPos.X())
	relativeZ := float32(worldPos.Z() - cs.currentPos.Z())
	return engo.Point{
		X: -relativeX*cs.zoom + cs.width/2,
		Y: -relativeZ*cs.zoom + cs.height/2,
	}
}

// ScreenToWorld converts screen coordinates to a point on the y=0 plane
func (cs *CameraSystem) ScreenToWorld(p engo.Point) mgl64.Vec3 {
	relativeX := -(p.X - cs.width/2) / cs.zoom
	relativeZ := -(p.Y - cs.height/2) / cs.zoom
	return mgl64.Vec3{
		float64(relativeX) + cs.currentPos.X(),
		0,
		float64(relativeZ) + cs.currentPos.Z(),
	}
}
