// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/engine"
	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/scene"
)

// cellAspect is the height of a terminal cell in widths
const cellAspect = 2.0

var (
	styleBoundary = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleBall     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

type cell struct {
	r     rune
	style tcell.Style
}

// TerminalRenderer draws a top-down view of the XZ plane: +Z is up the
// screen and +X, the player's left, is to the left.
type TerminalRenderer struct {
	screen    tcell.Screen
	width     int
	height    int
	buffer    [][]cell
	scale     float64 // world units per cell column
	centerPos mgl64.Vec3
	follow    bool
	hud       []string
	status    string
}

// NewTerminalRenderer creates a renderer sized to screen. The view follows
// the player until SetCenter is called.
func NewTerminalRenderer(screen tcell.Screen, scale float64) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		scale:  scale,
		follow: true,
	}
	r.Resize()
	return r
}

// Resize reallocates the buffer to the current screen size
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.buffer = make([][]cell, r.height)
	for i := range r.buffer {
		r.buffer[i] = make([]cell, r.width)
	}
	r.Clear()
}

// SetCenter fixes the center position of the view
func (r *TerminalRenderer) SetCenter(pos mgl64.Vec3) {
	r.centerPos = pos
	r.follow = false
}

// Follow re-centers the view on the player every frame
func (r *TerminalRenderer) Follow() {
	r.follow = true
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos mgl64.Vec3) (int, int) {
	screenX := -(pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2
	screenY := -(pos.Z()-r.centerPos.Z())/(r.scale*cellAspect) + float64(r.height)/2
	return int(math.Floor(screenX)), int(math.Floor(screenY))
}

func (r *TerminalRenderer) plot(pos mgl64.Vec3, ch rune, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	r.set(x, y, ch, style)
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = cell{r: ch, style: style}
	}
}

// ring plots a circle of radius in the XZ plane
func (r *TerminalRenderer) ring(center mgl64.Vec3, radius float64, ch rune, style tcell.Style) {
	steps := int(2*math.Pi*radius/r.scale) + 8
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		r.plot(center.Add(mgl64.Vec3{radius * math.Cos(angle), 0, radius * math.Sin(angle)}), ch, style)
	}
}

// Cell returns the rune buffered at x, y
func (r *TerminalRenderer) Cell(x, y int) rune {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0
	}
	return r.buffer[y][x].r
}

// Clear implements Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: tcell.StyleDefault}
		}
	}
	r.hud = nil
	r.status = ""
}

// RenderBody implements Renderer
func (r *TerminalRenderer) RenderBody(body engine.BodyState) {
	switch body.Shape {
	case scene.Shell:
		r.ring(body.Position, body.Radius, '.', styleBoundary)
	case scene.Ball:
		if body.Radius/r.scale >= 2 {
			r.ring(body.Position, body.Radius, '*', styleBall)
		}
		r.plot(body.Position, 'O', styleBall)
	default:
		r.plot(body.Position, 'I', styleBall)
	}
}

// RenderPlayer implements Renderer
func (r *TerminalRenderer) RenderPlayer(player engine.PlayerState) {
	if r.follow {
		r.centerPos = player.Position
	}
	x, y := r.worldToScreen(player.Position)
	r.set(x, y, '@', stylePlayer)

	if arrow, dx, dy, ok := facingArrow(player.Facing); ok {
		r.set(x+dx, y+dy, arrow, stylePlayer)
	}

	r.status = fmt.Sprintf("%s  speed %.1f  pos (%.1f, %.1f, %.1f)",
		player.Phase, player.Momentum.Len(),
		player.Position.X(), player.Position.Y(), player.Position.Z())
}

// facingArrow picks the arrow for the horizontal part of the facing and the
// cell offset to draw it at. ok is false when looking straight up or down.
func facingArrow(facing mgl64.Quat) (rune, int, int, bool) {
	forward := physics.Rotate(mgl64.Vec3{0, 0, 1}, facing)
	dx, dy := -forward.X(), -forward.Z()
	if math.Hypot(dx, dy) < 1e-6 {
		return 0, 0, 0, false
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return '>', 1, 0, true
		}
		return '<', -1, 0, true
	}
	if dy > 0 {
		return 'v', 0, 1, true
	}
	return '^', 0, -1, true
}

// RenderHUD implements Renderer
func (r *TerminalRenderer) RenderHUD(lines []string) {
	r.hud = append(r.hud[:0], lines...)
}

// text writes s starting at x, y, clipped to the screen width
func (r *TerminalRenderer) text(x, y int, s string) {
	for _, ch := range s {
		r.set(x, y, ch, styleText)
		x++
	}
}

// Present implements Renderer
func (r *TerminalRenderer) Present() {
	for i, line := range r.hud {
		r.text(0, i, line)
	}
	if r.status != "" {
		r.text(0, r.height-1, r.status)
	}

	for y := range r.buffer {
		for x, c := range r.buffer[y] {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	r.screen.Show()
}
