// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/mason/pkg/engine"
	"github.com/opd-ai/mason/pkg/logging"
	"github.com/opd-ai/mason/pkg/render"
)

// Window defaults
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// GameScene runs a Game in an engo window
type GameScene struct {
	game   *engine.Game
	logger *logging.Logger
	world  *ecs.World

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	scripts  *engine.ScriptSystem
}

// NewGameScene creates a new game scene
func NewGameScene(game *engine.Game, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		game:   game,
		logger: logger,
		world:  &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(context.Background(), "unexpected updater", nil)
		return
	}
	scene.world = world
	common.SetBackground(colorBackground)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	keys := SetupInputBindings(scene.game.Bindings())
	scene.input = NewInputSystem(scene.game, keys, scene.logger)
	scene.camera = NewCameraSystem(engo.GameWidth(), engo.GameHeight())
	scene.renderer = NewEngoRenderer(renderSystem, scene.camera)
	scene.scripts = &engine.ScriptSystem{Game: scene.game}

	scene.addSystems(world)
}

// addSystems wires the game systems into world: input, scripts, camera,
// then drawing
func (scene *GameScene) addSystems(world *ecs.World) {
	if scene.input != nil {
		world.AddSystem(scene.input)
	}
	world.AddSystem(scene.scripts)
	world.AddSystem(scene.camera)
	world.AddSystem(&DrawSystem{Game: scene.game, Renderer: scene.renderer, Camera: scene.camera})
}

// Exit stops the game when the window closes
func (scene *GameScene) Exit() {
	scene.game.Stop()
}

// DrawSystem draws the game state after the scripts have ticked
type DrawSystem struct {
	Game     *engine.Game
	Renderer render.Renderer
	Camera   *CameraSystem
}

// Update satisfies the ecs.System interface
func (d *DrawSystem) Update(dt float32) {
	state := d.Game.GetGameState()
	if state.Player != nil && d.Camera != nil {
		d.Camera.SetTarget(state.Player.Position)
	}
	render.Draw(d.Renderer, state)
}

// Remove satisfies the ecs.System interface
func (d *DrawSystem) Remove(ecs.BasicEntity) {}

// Priority draws after the scripts and camera
func (d *DrawSystem) Priority() int {
	return DrawPriority()
}

// DrawPriority is the ecs priority of DrawSystem
func DrawPriority() int {
	return engine.ScriptSystemPriority - 10
}

// Run opens a window and runs game in it until the window closes
func Run(game *engine.Game, title string, logger *logging.Logger) {
	engo.Run(engo.RunOptions{
		Title:    title,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPSLimit: game.Config.Loop.TickRate,
	}, NewGameScene(game, logger))
}
