// pkg/render/engo/input.go
package engo

import (
	"context"
	"sort"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/mason/pkg/engine"
	"github.com/opd-ai/mason/pkg/input"
	"github.com/opd-ai/mason/pkg/logging"
)

// keyCodes maps binding names to engo keys
var keyCodes = map[string]engo.Key{
	"A": engo.KeyA, "B": engo.KeyB, "C": engo.KeyC, "D": engo.KeyD,
	"E": engo.KeyE, "F": engo.KeyF, "G": engo.KeyG, "H": engo.KeyH,
	"I": engo.KeyI, "J": engo.KeyJ, "K": engo.KeyK, "L": engo.KeyL,
	"M": engo.KeyM, "N": engo.KeyN, "O": engo.KeyO, "P": engo.KeyP,
	"Q": engo.KeyQ, "R": engo.KeyR, "S": engo.KeyS, "T": engo.KeyT,
	"U": engo.KeyU, "V": engo.KeyV, "W": engo.KeyW, "X": engo.KeyX,
	"Y": engo.KeyY, "Z": engo.KeyZ,
	"SPACE":    engo.KeySpace,
	"LSHIFT":   engo.KeyLeftShift,
	"RSHIFT":   engo.KeyRightShift,
	"LCONTROL": engo.KeyLeftControl,
	"RCONTROL": engo.KeyRightControl,
	"UP":       engo.KeyArrowUp,
	"DOWN":     engo.KeyArrowDown,
	"LEFT":     engo.KeyArrowLeft,
	"RIGHT":    engo.KeyArrowRight,
}

// KeyCode returns the engo key for a binding name
func KeyCode(name string) (engo.Key, bool) {
	key, ok := keyCodes[input.NormalizeKey(name)]
	return key, ok
}

// BoundKeys returns the binding names engo can deliver, sorted. Names
// without an engo key are skipped.
func BoundKeys(bindings input.Bindings) []string {
	keys := make([]string, 0, len(bindings))
	for name := range bindings {
		if _, ok := keyCodes[name]; ok {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

// SetupInputBindings registers one engo button per bound key, named after
// the binding, and the mouse motion axes
func SetupInputBindings(bindings input.Bindings) []string {
	keys := BoundKeys(bindings)
	for _, name := range keys {
		engo.Input.RegisterButton(name, keyCodes[name])
	}
	engo.Input.RegisterAxis(engo.DefaultMouseXAxis, engo.NewAxisMouse(engo.AxisMouseHori))
	engo.Input.RegisterAxis(engo.DefaultMouseYAxis, engo.NewAxisMouse(engo.AxisMouseVert))
	return keys
}

// InputSystem forwards button transitions and mouse motion to the game
type InputSystem struct {
	game   *engine.Game
	keys   []string
	logger *logging.Logger
}

// NewInputSystem creates an input system for the registered keys
func NewInputSystem(game *engine.Game, keys []string, logger *logging.Logger) *InputSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	return &InputSystem{game: game, keys: keys, logger: logger}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Priority runs input before the scripts tick
func (is *InputSystem) Priority() int {
	return engine.ScriptSystemPriority + 10
}

// Update polls the buttons and mouse axes
func (is *InputSystem) Update(dt float32) {
	for _, name := range is.keys {
		button := engo.Input.Button(name)
		if button.JustPressed() {
			is.game.HandleKey(name, true)
		}
		if button.JustReleased() {
			is.game.HandleKey(name, false)
		}
	}

	dx := engo.Input.Axis(engo.DefaultMouseXAxis).Value()
	dy := engo.Input.Axis(engo.DefaultMouseYAxis).Value()
	if dx != 0 || dy != 0 {
		if err := is.game.HandleMouse(float64(dx), float64(dy)); err != nil {
			is.logger.Warn(context.Background(), "mouse motion dropped", "error", err.Error())
		}
	}
}

// Keys returns the polled binding names
func (is *InputSystem) Keys() []string {
	return is.keys
}
