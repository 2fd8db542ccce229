// pkg/engine/state.go
package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/camera"
	"github.com/opd-ai/mason/pkg/scene"
	"github.com/opd-ai/mason/pkg/validation"
)

// GameState represents a snapshot of the game for renderers
type GameState struct {
	Tick    uint64
	Status  GameStatus
	Bodies  []BodyState
	Player  *PlayerState
	Camera  *CameraState
	HUD     []string
	Elapsed float64
}

// BodyState represents a snapshot of a rigid body and its first collider
type BodyState struct {
	Handle   scene.Handle
	Name     string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Shape    scene.ShapeKind
	Radius   float64
}

// PlayerState represents a snapshot of the locomotion controller
type PlayerState struct {
	Body     scene.Handle
	Position mgl64.Vec3
	Momentum mgl64.Vec3
	Phase    string
	Angles   camera.Angles
	Facing   mgl64.Quat
}

// CameraState represents the world transform of the first camera node
type CameraState struct {
	Handle   scene.Handle
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	g.lock.RLock()
	defer g.lock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds and returns the complete game state.
func (g *Game) createGameStateSnapshot() *GameState {
	return &GameState{
		Tick:    g.CurrentTick,
		Status:  g.Status,
		Bodies:  g.getBodyStates(),
		Player:  g.getPlayerState(),
		Camera:  g.getCameraState(),
		HUD:     g.getHUDLines(),
		Elapsed: g.ElapsedTime,
	}
}

// getBodyStates creates a snapshot of every rigid body in pool order.
func (g *Game) getBodyStates() []BodyState {
	states := make([]BodyState, 0)
	g.Scene.Each(scene.KindRigidBody, func(h scene.Handle, n scene.Node) {
		state := BodyState{
			Handle:   h,
			Name:     n.Name,
			Position: g.Scene.WorldPosition(h),
			Velocity: n.Body.Velocity,
		}
		for _, child := range n.Children {
			if g.Scene.Kind(child) == scene.KindCollider {
				shape := g.Scene.Collider(child).Shape
				state.Shape = shape.Kind
				state.Radius = shape.BoundingRadius()
				break
			}
		}
		states = append(states, state)
	})
	return states
}

// getPlayerState creates a snapshot of the player, or nil without one.
func (g *Game) getPlayerState() *PlayerState {
	p, ok := g.player()
	if !ok || p.Controller() == nil {
		return nil
	}
	c := p.Controller()
	return &PlayerState{
		Body:     p.Body,
		Position: g.Scene.Position(p.Body),
		Momentum: c.Momentum(),
		Phase:    c.Phase().String(),
		Angles:   c.Rig().Angles(),
		Facing:   c.Rig().Orientation(),
	}
}

// getCameraState creates a snapshot of the first camera, or nil.
func (g *Game) getCameraState() *CameraState {
	var state *CameraState
	g.Scene.Each(scene.KindCamera, func(h scene.Handle, _ scene.Node) {
		if state != nil {
			return
		}
		state = &CameraState{
			Handle:   h,
			Position: g.Scene.WorldPosition(h),
			Rotation: g.Scene.WorldRotation(h),
		}
	})
	return state
}

// getHUDLines returns the sanitized HUD text lines sorted by key.
func (g *Game) getHUDLines() []string {
	keys := g.sctx.TextKeys()
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, validation.SanitizeHUDText(g.sctx.Text(key)))
	}
	return lines
}
