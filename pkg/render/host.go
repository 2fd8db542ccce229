// pkg/render/host.go
package render

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/mason/pkg/engine"
	"github.com/opd-ai/mason/pkg/input"
	"github.com/opd-ai/mason/pkg/logging"
)

// DefaultKeyHold is how long a key counts as held after its last press.
// Terminals report no releases, so auto-repeat keeps a held key alive; the
// window covers the usual initial repeat delay.
const DefaultKeyHold = 550 * time.Millisecond

// DefaultMouseCell is the mouse motion, in pixels, of one terminal cell
const DefaultMouseCell = 8.0

// DefaultAliases stand in for the bare modifier keys a terminal cannot
// report
func DefaultAliases() map[string]string {
	return map[string]string{
		"SPACE": "LSHIFT",
		"C":     "LCONTROL",
	}
}

// TerminalHost runs a Game against a tcell screen
type TerminalHost struct {
	Game      *engine.Game
	Screen    tcell.Screen
	Renderer  *TerminalRenderer
	KeyHold   time.Duration
	MouseCell float64
	Aliases   map[string]string

	logger    *logging.Logger
	held      map[string]time.Time
	lastX     int
	lastY     int
	haveMouse bool
}

// NewTerminalHost creates a host drawing game on an initialized screen
func NewTerminalHost(game *engine.Game, screen tcell.Screen, scale float64, logger *logging.Logger) *TerminalHost {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TerminalHost{
		Game:      game,
		Screen:    screen,
		Renderer:  NewTerminalRenderer(screen, scale),
		KeyHold:   DefaultKeyHold,
		MouseCell: DefaultMouseCell,
		Aliases:   DefaultAliases(),
		logger:    logger,
		held:      make(map[string]time.Time),
	}
}

// Run updates and draws the game at its tick rate until ctx is done, the
// user quits, or maxTicks updates have run (0 means no limit).
func (h *TerminalHost) Run(ctx context.Context, maxTicks int) error {
	h.Screen.EnableMouse(tcell.MouseMotionEvents)
	defer h.Screen.DisableMouse()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.Game.TickInterval())
	defer ticker.Stop()

	for ticks := 0; maxTicks <= 0 || ticks < maxTicks; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.HandleEvent(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			h.ReleaseExpired(now)
			if err := h.Frame(); err != nil {
				return err
			}
			ticks++
		}
	}
	return nil
}

// Frame advances the game by the elapsed wall-clock time and draws it
func (h *TerminalHost) Frame() error {
	if err := h.Game.Advance(); err != nil {
		return err
	}
	Draw(h.Renderer, h.Game.GetGameState())
	return nil
}

// HandleEvent feeds one terminal event to the game. It returns false when
// the user asked to quit.
func (h *TerminalHost) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		h.press(h.keyName(ev), now)

	case *tcell.EventMouse:
		x, y := ev.Position()
		if h.haveMouse && (x != h.lastX || y != h.lastY) {
			dx := float64(x-h.lastX) * h.MouseCell
			dy := float64(y-h.lastY) * h.MouseCell
			if err := h.Game.HandleMouse(dx, dy); err != nil {
				h.logger.Warn(context.Background(), "mouse motion dropped", "error", err.Error())
			}
		}
		h.lastX, h.lastY, h.haveMouse = x, y, true

	case *tcell.EventResize:
		h.Renderer.Resize()
		h.Screen.Sync()
	}
	return true
}

// keyName maps a terminal key to a binding name
func (h *TerminalHost) keyName(ev *tcell.EventKey) string {
	var name string
	switch {
	case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
		name = "SPACE"
	case ev.Key() == tcell.KeyRune:
		name = input.NormalizeKey(string(ev.Rune()))
	default:
		name = strings.ToUpper(tcell.KeyNames[ev.Key()])
	}
	if alias, ok := h.Aliases[name]; ok {
		return alias
	}
	return name
}

// press starts or refreshes a held key
func (h *TerminalHost) press(name string, now time.Time) {
	if name == "" {
		return
	}
	if _, held := h.held[name]; !held {
		if !h.Game.HandleKey(name, true) {
			return
		}
	}
	h.held[name] = now
}

// ReleaseExpired releases keys whose last press is older than KeyHold
func (h *TerminalHost) ReleaseExpired(now time.Time) {
	for name, last := range h.held {
		if now.Sub(last) > h.KeyHold {
			h.Game.HandleKey(name, false)
			delete(h.held, name)
		}
	}
}

// Held returns whether a binding name is currently held
func (h *TerminalHost) Held(name string) bool {
	_, ok := h.held[name]
	return ok
}
