// Package script defines the scripts a Game runs against its scene: a
// small interface with construction, input and per-tick hooks, a registry
// keyed by type id, and CBOR encoding of script state.
package script

import (
	"context"
	"sort"

	"github.com/opd-ai/mason/pkg/config"
	"github.com/opd-ai/mason/pkg/event"
	"github.com/opd-ai/mason/pkg/input"
	"github.com/opd-ai/mason/pkg/logging"
	"github.com/opd-ai/mason/pkg/scene"
)

// Script is the behaviour attached to a game
type Script interface {
	// Construct builds the script's scene nodes
	Construct(ctx *Context) error
	HandleInput(ctx *Context, ev input.Event)
	Tick(ctx *Context, dt float64)
}

// Starter is implemented by scripts that need every script constructed
// before they run
type Starter interface {
	Start(ctx *Context) error
}

// Deiniter is implemented by scripts that clean up their scene nodes
type Deiniter interface {
	Deinit(ctx *Context)
}

// Restorer is implemented by scripts whose runtime state must be rebuilt
// from decoded fields
type Restorer interface {
	Restore(ctx *Context) error
}

// PostStepper is implemented by scripts that read back the scene after the
// physics step of a frame
type PostStepper interface {
	PostStep(ctx *Context)
}

// Base supplies no-op hooks
type Base struct{}

// Construct implements Script
func (Base) Construct(*Context) error { return nil }

// HandleInput implements Script
func (Base) HandleInput(*Context, input.Event) {}

// Tick implements Script
func (Base) Tick(*Context, float64) {}

// Context is what a script sees of the game during a callback
type Context struct {
	Ctx    context.Context
	Scene  *scene.Graph
	Config *config.Config
	Bus    *event.Bus
	Logger *logging.Logger

	texts map[string]string
}

// NewContext creates a script context
func NewContext(ctx context.Context, g *scene.Graph, cfg *config.Config, bus *event.Bus, logger *logging.Logger) *Context {
	if logger == nil {
		logger = logging.Discard()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	return &Context{
		Ctx:    ctx,
		Scene:  g,
		Config: cfg,
		Bus:    bus,
		Logger: logger,
		texts:  make(map[string]string),
	}
}

// SetText sets a named HUD line
func (c *Context) SetText(key, value string) {
	c.texts[key] = value
}

// Text returns a named HUD line
func (c *Context) Text(key string) string {
	return c.texts[key]
}

// TextKeys returns the HUD line names, sorted
func (c *Context) TextKeys() []string {
	keys := make([]string, 0, len(c.texts))
	for k := range c.texts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
