// Package render draws game state snapshots. The terminal renderer and host
// run the game in a text screen; NullRenderer only logs.
package render

import (
	"context"

	"github.com/opd-ai/mason/pkg/engine"
	"github.com/opd-ai/mason/pkg/logging"
)

// Renderer draws one frame of a game state
type Renderer interface {
	Clear()
	RenderBody(body engine.BodyState)
	RenderPlayer(player engine.PlayerState)
	RenderHUD(lines []string)
	Present()
}

// Draw renders a complete frame: bodies in pool order, the player on top,
// then the HUD
func Draw(r Renderer, state *engine.GameState) {
	r.Clear()
	for _, body := range state.Bodies {
		if state.Player != nil && body.Handle == state.Player.Body {
			continue
		}
		r.RenderBody(body)
	}
	if state.Player != nil {
		r.RenderPlayer(*state.Player)
	}
	r.RenderHUD(state.HUD)
	r.Present()
}

// NullRenderer is a Renderer that only logs.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	frames int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called")
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(d.ctx, "Present called", "frame", d.frames)
}

// RenderBody implements Renderer.
func (d *NullRenderer) RenderBody(body engine.BodyState) {
	d.logger.Debug(d.ctx, "RenderBody called",
		"body", body.Handle.String(),
		"name", body.Name,
		"position", body.Position,
	)
}

// RenderPlayer implements Renderer.
func (d *NullRenderer) RenderPlayer(player engine.PlayerState) {
	d.logger.Debug(d.ctx, "RenderPlayer called",
		"position", player.Position,
		"momentum", player.Momentum,
		"phase", player.Phase,
	)
}

// RenderHUD implements Renderer.
func (d *NullRenderer) RenderHUD(lines []string) {
	d.logger.Debug(d.ctx, "RenderHUD called", "lines", lines)
}

// Frames returns the number of presented frames
func (d *NullRenderer) Frames() int {
	return d.frames
}
