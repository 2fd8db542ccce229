// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sasha-s/go-deadlock"

	"github.com/opd-ai/mason/pkg/config"
	"github.com/opd-ai/mason/pkg/event"
	"github.com/opd-ai/mason/pkg/input"
	"github.com/opd-ai/mason/pkg/logging"
	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/scene"
	"github.com/opd-ai/mason/pkg/script"
	"github.com/opd-ai/mason/pkg/validation"
)

// GameStatus is the lifecycle state of a Game
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	// ErrNotRunning is returned by operations that need a started game
	ErrNotRunning = errors.New("game is not running")
	// ErrAlreadyStarted is returned when Start is called twice
	ErrAlreadyStarted = errors.New("game already started")
)

// Game owns the scene, the event bus and the running scripts. It is the
// host side of the player scripts: input is decoded and fanned out to every
// script, and each update ticks the scripts before stepping the scene.
//
// Game methods are safe for concurrent use. Event handlers run while the
// game lock is held and must not call back into the Game.
type Game struct {
	Config      *config.Config
	Scene       *scene.Graph
	EventBus    *event.Bus
	Registry    *script.Registry
	Status      GameStatus
	CurrentTick uint64
	ElapsedTime float64 // seconds of simulated time
	LastUpdate  time.Time

	lock      deadlock.RWMutex
	instances []script.Instance
	sctx      *script.Context
	bindings  input.Bindings
	logger    *logging.Logger
	ctx       context.Context
}

// Option configures a Game
type Option func(*Game)

// WithRegistry replaces the built-in script registry
func WithRegistry(r *script.Registry) Option {
	return func(g *Game) {
		g.Registry = r
	}
}

// WithLogger sets the logger handed to scripts
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithEventBus publishes game and locomotion events on bus
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) {
		g.EventBus = bus
	}
}

// WithContext sets the context carried into scripts and log calls
func WithContext(ctx context.Context) Option {
	return func(g *Game) {
		g.ctx = ctx
	}
}

// NewGame creates a game for cfg. Scripts are constructed by Start.
func NewGame(cfg *config.Config, opts ...Option) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}

	g := &Game{
		Config:   cfg,
		Status:   GameStatusWaiting,
		bindings: bindings,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Registry == nil {
		g.Registry = script.DefaultRegistry()
	}
	if g.EventBus == nil {
		g.EventBus = event.NewEventBus()
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	if g.ctx == nil {
		g.ctx = logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())
	}

	g.resetScene()
	return g, nil
}

func (g *Game) resetScene() {
	g.Scene = scene.NewGraph(scene.WithGravity(physics.FromArray(g.Config.Physics.Gravity)))
	g.sctx = script.NewContext(g.ctx, g.Scene, g.Config, g.EventBus, g.logger)
}

// Start constructs the configured scripts, runs their start hooks and
// activates the game. If any script fails, the scripts built so far are
// deinitialized, the scene is emptied and the game stays waiting.
func (g *Game) Start() error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.Status != GameStatusWaiting {
		return ErrAlreadyStarted
	}
	for _, name := range g.Config.Loop.Scripts {
		if _, err := g.addScript(name); err != nil {
			g.abortStart(err)
			return err
		}
	}
	for _, inst := range g.instances {
		if err := g.start(inst); err != nil {
			g.abortStart(err)
			return err
		}
	}

	g.Status = GameStatusActive
	g.LastUpdate = time.Now()
	g.logger.Info(g.ctx, "game started", "scripts", len(g.instances))
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
	return nil
}

// Stop deinitializes every script in reverse construction order and ends
// the game
func (g *Game) Stop() {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.Status != GameStatusActive {
		return
	}
	g.deinitAll()
	g.Status = GameStatusEnded
	g.logger.Info(g.ctx, "game stopped", "ticks", g.CurrentTick, "elapsed", g.ElapsedTime)
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
}

// abortStart undoes a partial Start so that it can be retried
func (g *Game) abortStart(err error) {
	g.logger.Warn(g.ctx, "start aborted", "error", err.Error(), "constructed", len(g.instances))
	g.deinitAll()
	g.resetScene()
}

// deinitAll deinitializes every script in reverse construction order
func (g *Game) deinitAll() {
	for i := len(g.instances) - 1; i >= 0; i-- {
		if d, ok := g.instances[i].Script.(script.Deiniter); ok {
			d.Deinit(g.sctx)
		}
	}
	g.instances = nil
}

// Running reports whether the game is active
func (g *Game) Running() bool {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.Status == GameStatusActive
}

// AddScript constructs the script registered under name. On a running game
// the script's start hook runs immediately.
func (g *Game) AddScript(name string) (script.Instance, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	inst, err := g.addScript(name)
	if err != nil {
		return script.Instance{}, err
	}
	if g.Status == GameStatusActive {
		if err := g.start(inst); err != nil {
			return script.Instance{}, err
		}
	}
	return inst, nil
}

func (g *Game) addScript(name string) (script.Instance, error) {
	normalized, err := validation.ValidateScriptName(name)
	if err != nil {
		return script.Instance{}, err
	}
	inst, err := g.Registry.New(normalized)
	if err != nil {
		return script.Instance{}, err
	}
	if err := inst.Script.Construct(g.sctx); err != nil {
		return script.Instance{}, logging.WrapError(err, "construct script %q", inst.Name)
	}

	g.instances = append(g.instances, inst)
	g.logger.Debug(g.ctx, "script constructed", "script", inst.Name, "id", inst.ID.String())
	g.EventBus.Publish(event.NewScriptEvent(event.ScriptConstructed, g, inst.Name))
	return inst, nil
}

func (g *Game) start(inst script.Instance) error {
	s, ok := inst.Script.(script.Starter)
	if !ok {
		return nil
	}
	if err := s.Start(g.sctx); err != nil {
		return logging.WrapError(err, "start script %q", inst.Name)
	}
	return nil
}

// Scripts returns the running script instances in construction order
func (g *Game) Scripts() []script.Instance {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return append([]script.Instance(nil), g.instances...)
}

// HandleKey decodes a key transition through the bindings and delivers it
// to every script. It reports whether the key is bound.
func (g *Game) HandleKey(key string, pressed bool) bool {
	ev, ok := g.bindings.Decode(key, pressed)
	if !ok {
		return false
	}
	g.dispatch(ev)
	return true
}

// HandleMouse delivers a relative mouse motion, scaled by the configured
// mouse scale, to every script
func (g *Game) HandleMouse(dx, dy float64) error {
	if err := validation.ValidateMouseDelta(dx, dy); err != nil {
		return err
	}
	scale := g.Config.Input.MouseScale
	g.dispatch(input.Mouse(dx*scale, dy*scale))
	return nil
}

func (g *Game) dispatch(ev input.Event) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.Status != GameStatusActive {
		return
	}
	for _, inst := range g.instances {
		inst.Script.HandleInput(g.sctx, ev)
	}
}

// Update advances the game by dt seconds: every script ticks, the scene
// steps, then post-step hooks run. dt is capped at the configured maximum.
func (g *Game) Update(dt float64) error {
	if err := validation.ValidateDeltaTime(dt); err != nil {
		return err
	}
	dt = math.Min(dt, g.Config.Loop.MaxDelta)

	g.lock.Lock()
	defer g.lock.Unlock()

	if g.Status != GameStatusActive {
		return ErrNotRunning
	}
	for _, inst := range g.instances {
		inst.Script.Tick(g.sctx, dt)
	}
	g.Scene.Step(dt)
	for _, inst := range g.instances {
		if p, ok := inst.Script.(script.PostStepper); ok {
			p.PostStep(g.sctx)
		}
	}

	g.CurrentTick++
	g.ElapsedTime += dt
	g.LastUpdate = time.Now()
	return nil
}

// Advance updates the game by the wall-clock time since the last update
func (g *Game) Advance() error {
	return g.Update(g.calculateDeltaTime())
}

// calculateDeltaTime calculates the time since the last update
func (g *Game) calculateDeltaTime() float64 {
	g.lock.RLock()
	last := g.LastUpdate
	g.lock.RUnlock()

	if last.IsZero() {
		return 0
	}
	return time.Since(last).Seconds()
}

// TickInterval is the fixed update period for the configured tick rate
func (g *Game) TickInterval() time.Duration {
	return time.Second / time.Duration(g.Config.Loop.TickRate)
}

// FPS returns the frame-rate line written by the HUD script
func (g *Game) FPS() string {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.sctx.Text(script.FPSKey)
}

// Bindings returns the active key bindings
func (g *Game) Bindings() input.Bindings {
	return g.bindings
}

// Player returns the first running player script
func (g *Game) Player() (*script.Player, bool) {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.player()
}

func (g *Game) player() (*script.Player, bool) {
	for _, inst := range g.instances {
		if p, ok := inst.Script.(*script.Player); ok {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) String() string {
	return fmt.Sprintf("game(%s, tick %d)", g.Status, g.CurrentTick)
}
