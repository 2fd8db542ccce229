// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameScene(t *testing.T) {
	game := startedGame(t)
	scene := NewGameScene(game, nil)

	if scene.game != game {
		t.Error("Expected game to be set correctly")
	}
	if scene.world == nil {
		t.Error("Expected world to be initialized")
	}
	if scene.Type() != "GameScene" {
		t.Errorf("Expected Type() to return %q, got %q", "GameScene", scene.Type())
	}
}

func TestDrawSystem_FollowsPlayer(t *testing.T) {
	game := startedGame(t)
	game.HandleKey("A", true)
	require.NoError(t, game.Update(0.1))

	camera := NewCameraSystem(800, 600)
	renderer := NewEngoRenderer(nil, camera)
	draw := &DrawSystem{Game: game, Renderer: renderer, Camera: camera}

	draw.Update(0.1)

	player, ok := game.Player()
	require.True(t, ok)
	position := game.Scene.Position(player.Body)
	assert.Greater(t, position.X(), 0.0)
	assert.Equal(t, position, camera.GetCurrentPosition())
	assert.Equal(t, 5, renderer.Len())
	assert.NotEqual(t, mgl64.Vec3{}, camera.GetCurrentPosition())
}

func TestSystemPriorities(t *testing.T) {
	input := NewInputSystem(nil, nil, nil)
	camera := NewCameraSystem(800, 600)
	draw := &DrawSystem{}

	assert.Greater(t, input.Priority(), camera.Priority())
	assert.Greater(t, camera.Priority(), draw.Priority())
	assert.Equal(t, DrawPriority(), draw.Priority())
}
