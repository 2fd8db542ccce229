// Package engine provides unit tests for game.go
package engine

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/mason/pkg/config"
	"github.com/opd-ai/mason/pkg/event"
	"github.com/opd-ai/mason/pkg/scene"
	"github.com/opd-ai/mason/pkg/script"
)

func startedGame(t *testing.T, modify func(*config.Config), opts ...Option) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	if modify != nil {
		modify(cfg)
	}
	game, err := NewGame(cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, game.Start())
	return game
}

func TestNewGame_InitializesState(t *testing.T) {
	game, err := NewGame(nil)
	require.NoError(t, err)

	if game.Status != GameStatusWaiting {
		t.Errorf("Expected status waiting, got %s", game.Status)
	}
	if game.Scene == nil || game.EventBus == nil || game.Registry == nil {
		t.Fatal("NewGame left a collaborator nil")
	}
	if game.Scene.Len() != 0 {
		t.Errorf("Expected empty scene before Start, got %d nodes", game.Scene.Len())
	}
}

func TestNewGame_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Loop.MaxDelta = 0

	_, err := NewGame(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGame_StartStop_Transitions(t *testing.T) {
	bus := event.NewEventBus()
	var seen []event.Type
	for _, typ := range []event.Type{event.ScriptConstructed, event.GameStarted, event.GameEnded} {
		bus.Subscribe(typ, func(e event.Event) { seen = append(seen, e.GetType()) })
	}

	game := startedGame(t, nil, WithEventBus(bus))
	if !game.Running() {
		t.Error("Game did not start correctly")
	}
	assert.ErrorIs(t, game.Start(), ErrAlreadyStarted)
	assert.Len(t, game.Scripts(), 4)
	assert.NotZero(t, game.Scene.Len())

	game.Stop()
	if game.Running() {
		t.Error("Game did not stop correctly")
	}
	assert.Zero(t, game.Scene.Len(), "deinit removes every script node")
	assert.Equal(t, []event.Type{
		event.ScriptConstructed, event.ScriptConstructed, event.ScriptConstructed, event.ScriptConstructed,
		event.GameStarted, event.GameEnded,
	}, seen)
}

type starterScript struct {
	script.Base
	started int
}

func (s *starterScript) Start(*script.Context) error {
	s.started++
	return nil
}

type failingScript struct {
	script.Base
}

func (failingScript) Construct(*script.Context) error {
	return errors.New("no room")
}

type failingStarter struct {
	script.Base
}

func (failingStarter) Start(*script.Context) error {
	return errors.New("not ready")
}

func TestGame_Start_FailureLeavesGameRetryable(t *testing.T) {
	tests := []struct {
		name    string
		failing string
	}{
		{"construct error", "failing"},
		{"start error", "failingstarter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := script.DefaultRegistry()
			registry.MustRegister(uuid.New(), "failing", func() script.Script { return failingScript{} })
			registry.MustRegister(uuid.New(), "failingstarter", func() script.Script { return failingStarter{} })

			cfg := config.DefaultConfig()
			cfg.Loop.Scripts = []string{"boundary", "player", tt.failing}
			game, err := NewGame(cfg, WithRegistry(registry))
			require.NoError(t, err)

			require.Error(t, game.Start())
			if game.Status != GameStatusWaiting {
				t.Errorf("Expected status waiting, got %s", game.Status)
			}
			assert.Empty(t, game.Scripts())
			assert.Zero(t, game.Scene.Len(), "partially built nodes are removed")

			game.Config.Loop.Scripts = []string{"boundary", "player"}
			require.NoError(t, game.Start())
			assert.Len(t, game.Scripts(), 2)

			players := 0
			game.Scene.Each(scene.KindRigidBody, func(_ scene.Handle, n scene.Node) {
				if n.Name == script.PlayerBodyName {
					players++
				}
			})
			if players != 1 {
				t.Errorf("Expected 1 player body after retry, got %d", players)
			}
		})
	}
}

func TestGame_AddScript(t *testing.T) {
	registry := script.DefaultRegistry()
	registry.MustRegister(uuid.New(), "starter", func() script.Script { return &starterScript{} })
	registry.MustRegister(uuid.New(), "failing", func() script.Script { return failingScript{} })

	game := startedGame(t, func(c *config.Config) { c.Loop.Scripts = nil }, WithRegistry(registry))

	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{"starter runs start hook", "Starter", nil},
		{"unknown script", "missing", script.ErrUnknownScript},
		{"invalid name", "9lives", nil},
		{"construct error", "failing", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inst, err := game.AddScript(tc.script)
			switch {
			case tc.name == "starter runs start hook":
				require.NoError(t, err)
				assert.Equal(t, "starter", inst.Name)
				assert.Equal(t, 1, inst.Script.(*starterScript).started)
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
	assert.Len(t, game.Scripts(), 1)
}

func TestGame_HandleKey(t *testing.T) {
	game := startedGame(t, nil)

	if !game.HandleKey("w", true) {
		t.Error("Expected W to be bound")
	}
	if game.HandleKey("Q", true) {
		t.Error("Expected Q to be unbound")
	}

	player, ok := game.Player()
	require.True(t, ok)
	assert.True(t, player.Controller().Thrust().Forward)
}

func TestGame_HandleMouse(t *testing.T) {
	game := startedGame(t, func(c *config.Config) { c.Input.MouseScale = 2 })

	require.NoError(t, game.HandleMouse(10, 0))
	player, _ := game.Player()
	assert.InDelta(t, -20*0.0025, player.Angles.Yaw, 1e-12)

	assert.Error(t, game.HandleMouse(1e9, 0))
}

func TestGame_Update_TicksScriptsThenScene(t *testing.T) {
	game := startedGame(t, nil)
	game.HandleKey("W", true)

	require.NoError(t, game.Update(0.1))

	player, _ := game.Player()
	velocity := game.Scene.Velocity(player.Body)
	assert.InDelta(t, 15, velocity.Z(), 1e-9)
	assert.InDelta(t, 1.5, game.Scene.Position(player.Body).Z(), 1e-9)
	assert.Equal(t, uint64(1), game.CurrentTick)
	assert.Equal(t, "10.0 fps", game.FPS())
}

func TestGame_Update_PivotMatchesBodyAfterStep(t *testing.T) {
	tests := []struct {
		name        string
		integration string
	}{
		{"velocity", "velocity"},
		{"direct", "direct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := startedGame(t, func(c *config.Config) { c.Player.Integration = tt.integration })
			game.HandleKey("W", true)
			player, _ := game.Player()

			for i := 0; i < 3; i++ {
				require.NoError(t, game.Update(1.0/60))
				body := game.Scene.Position(player.Body)
				pivot := game.Scene.Position(player.Pivot)
				if !pivot.ApproxEqualThreshold(body, 1e-12) {
					t.Errorf("tick %d: Expected pivot at body %v, got %v", i, body, pivot)
				}
			}
			assert.Greater(t, game.Scene.Position(player.Body).Z(), 0.0)
		})
	}
}

func TestGame_Update_CapsDeltaTime(t *testing.T) {
	game := startedGame(t, nil)
	game.HandleKey("W", true)

	require.NoError(t, game.Update(5))

	player, _ := game.Player()
	assert.InDelta(t, 15, game.Scene.Velocity(player.Body).Len(), 1e-9)
	assert.InDelta(t, 0.1, game.ElapsedTime, 1e-12)
}

func TestGame_Update_Errors(t *testing.T) {
	game, err := NewGame(nil)
	require.NoError(t, err)

	assert.ErrorIs(t, game.Update(0.016), ErrNotRunning)

	require.NoError(t, game.Start())
	assert.Error(t, game.Update(-1))
	assert.NoError(t, game.Update(0))
}

func TestGame_GetGameState_ReflectsScene(t *testing.T) {
	game := startedGame(t, nil)
	game.HandleKey("D", true)
	require.NoError(t, game.Update(0.05))

	state := game.GetGameState()
	assert.Equal(t, uint64(1), state.Tick)
	assert.Equal(t, GameStatusActive, state.Status)
	// boundary, player and three balls
	assert.Len(t, state.Bodies, 5)

	require.NotNil(t, state.Player)
	assert.Equal(t, "thrusting", state.Player.Phase)
	// D thrusts along -X in body space.
	assert.Less(t, state.Player.Momentum.X(), 0.0)

	// The camera sits 2 units behind the body after the scene step.
	require.NotNil(t, state.Camera)
	assert.True(t, state.Camera.Position.ApproxEqualThreshold(mgl64.Vec3{-0.375, 0, -2}, 1e-9),
		"Expected camera at (-0.375, 0, -2), got %v", state.Camera.Position)
	assert.Equal(t, []string{"20.0 fps"}, state.HUD)
}

func TestGameStatus_String(t *testing.T) {
	assert.Equal(t, "waiting", GameStatusWaiting.String())
	assert.Equal(t, "active", GameStatusActive.String())
	assert.Equal(t, "ended", GameStatusEnded.String())
	assert.Equal(t, "unknown", GameStatus(9).String())
}
