// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/mason/pkg/engine"
	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/scene"
)

// playerHandle keys the player sprite, which is not a body sprite
var playerHandle = scene.None

var (
	colorBoundary   = color.RGBA{64, 96, 255, 255}
	colorBall       = color.RGBA{255, 255, 0, 255}
	colorPlayer     = color.RGBA{0, 255, 0, 255}
	colorOther      = color.RGBA{255, 255, 255, 255}
	colorBackground = color.RGBA{8, 8, 24, 255}
)

// sprite is one drawable entity owned by the renderer
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements render.Renderer with engo sprites positioned by
// a CameraSystem
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	camera       *CameraSystem
	sprites      map[scene.Handle]*sprite
	hud          []string
}

// NewEngoRenderer creates a renderer. renderSystem may be nil, in which
// case sprites are tracked but not drawn.
func NewEngoRenderer(renderSystem *common.RenderSystem, camera *CameraSystem) *EngoRenderer {
	return &EngoRenderer{
		renderSystem: renderSystem,
		camera:       camera,
		sprites:      make(map[scene.Handle]*sprite),
	}
}

// Clear implements render.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// RenderBody implements render.Renderer
func (r *EngoRenderer) RenderBody(body engine.BodyState) {
	s := r.getOrCreateSprite(body.Handle, body.Shape)
	size := float32(2 * body.Radius) * r.camera.GetZoom()
	r.place(s, body.Position, size)
}

// RenderPlayer implements render.Renderer
func (r *EngoRenderer) RenderPlayer(player engine.PlayerState) {
	s, ok := r.sprites[playerHandle]
	if !ok {
		s = r.newSprite(playerHandle, common.Triangle{}, colorPlayer)
	}
	r.place(s, player.Position, 4*r.camera.GetZoom())
	s.Rotation = headingDegrees(player.Facing)
}

// RenderHUD implements render.Renderer
func (r *EngoRenderer) RenderHUD(lines []string) {
	r.hud = append(r.hud[:0], lines...)
}

// Present implements render.Renderer. Sprites not rendered since the last
// Clear are removed.
func (r *EngoRenderer) Present() {
	r.cleanupInactiveEntities()
}

// HUD returns the HUD lines of the last frame
func (r *EngoRenderer) HUD() []string {
	return r.hud
}

// Len returns the number of live sprites
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// Position returns the screen position of the sprite for h
func (r *EngoRenderer) Position(h scene.Handle) (engo.Point, bool) {
	s, ok := r.sprites[h]
	if !ok {
		return engo.Point{}, false
	}
	return s.Position, true
}

// getOrCreateSprite gets an existing body sprite or creates a new one
func (r *EngoRenderer) getOrCreateSprite(h scene.Handle, shape scene.ShapeKind) *sprite {
	if s, exists := r.sprites[h]; exists {
		return s
	}
	switch shape {
	case scene.Shell:
		return r.newSprite(h, common.Circle{BorderWidth: 2, BorderColor: colorBoundary}, color.Transparent)
	case scene.Ball:
		return r.newSprite(h, common.Circle{}, colorBall)
	default:
		return r.newSprite(h, common.Rectangle{}, colorOther)
	}
}

func (r *EngoRenderer) newSprite(h scene.Handle, drawable common.Drawable, c color.Color) *sprite {
	s := &sprite{
		BasicEntity:     ecs.NewBasic(),
		RenderComponent: common.RenderComponent{Drawable: drawable, Color: c},
	}
	r.sprites[h] = s
	if r.renderSystem != nil {
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

// place centers s on a world position
func (r *EngoRenderer) place(s *sprite, position physics.Vec3, size float32) {
	center := r.camera.WorldToScreen(position)
	s.Width, s.Height = size, size
	s.Position = engo.Point{X: center.X - size/2, Y: center.Y - size/2}
	s.seen = true
}

// headingDegrees is the screen rotation of the facing's horizontal part;
// zero points up the screen
func headingDegrees(facing physics.Quat) float32 {
	forward := physics.Rotate(physics.Vec3{0, 0, 1}, facing)
	return float32(math.Atan2(forward.X(), forward.Z()) * -180 / math.Pi)
}

// cleanupInactiveEntities removes sprites that were not rendered this frame
func (r *EngoRenderer) cleanupInactiveEntities() {
	for h, s := range r.sprites {
		if s.seen {
			continue
		}
		if r.renderSystem != nil {
			r.renderSystem.Remove(s.BasicEntity)
		}
		delete(r.sprites, h)
	}
}
