// pkg/engine/system.go
package engine

import (
	"errors"

	"github.com/EngoEngine/ecs"
)

// ScriptSystemPriority runs the scripts before render systems
const ScriptSystemPriority = 100

// ScriptSystem runs a Game inside an ecs.World. The game owns its scene, so
// the system has no entities of its own.
type ScriptSystem struct {
	Game *Game
	// OnError receives update errors other than ErrNotRunning
	OnError func(error)
}

// New implements ecs.Initializer by starting a game that is still waiting
func (s *ScriptSystem) New(*ecs.World) {
	if err := s.Game.Start(); err != nil && !errors.Is(err, ErrAlreadyStarted) {
		s.report(err)
	}
}

// Update satisfies the ecs.System interface
func (s *ScriptSystem) Update(dt float32) {
	err := s.Game.Update(float64(dt))
	if err != nil && !errors.Is(err, ErrNotRunning) {
		s.report(err)
	}
}

// Remove satisfies the ecs.System interface
func (s *ScriptSystem) Remove(ecs.BasicEntity) {}

// Priority implements ecs.Prioritizer
func (s *ScriptSystem) Priority() int {
	return ScriptSystemPriority
}

func (s *ScriptSystem) report(err error) {
	if s.OnError != nil {
		s.OnError(err)
		return
	}
	s.Game.logger.Error(s.Game.ctx, "script system", err)
}
