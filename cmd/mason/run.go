// cmd/mason/run.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/mason/pkg/config"
	"github.com/opd-ai/mason/pkg/engine"
	"github.com/opd-ai/mason/pkg/event"
	"github.com/opd-ai/mason/pkg/logging"
	"github.com/opd-ai/mason/pkg/render"
	engorender "github.com/opd-ai/mason/pkg/render/engo"
)

// terminalScale is the world units per terminal column
const terminalScale = 2.0

type runOptions struct {
	ConfigPath string
	Renderer   string
	Ticks      int
	LogFile    string
	LoadPath   string
	SavePath   string
	Level      slog.Level
}

// loadConfig reads path when it exists and falls back to the defaults
// otherwise. MASON_* overrides apply in both cases.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.DefaultConfig()
	} else if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeConfig writes the default configuration to path, or to w when path
// is empty
func writeConfig(w io.Writer, path string, yaml bool) error {
	cfg := config.DefaultConfig()
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}
	if path != "" {
		return config.SaveConfig(cfg, path)
	}
	data, err := config.Marshal(cfg, yaml)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newLogger(opts runOptions) (*logging.Logger, func(), error) {
	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewLoggerWithLevel(f, opts.Level), func() { f.Close() }, nil
	case opts.Renderer == "terminal":
		// Logs on stdout would draw over the screen.
		return logging.NewLoggerWithLevel(io.Discard, opts.Level), func() {}, nil
	default:
		return logging.NewLoggerWithLevel(os.Stdout, opts.Level), func() {}, nil
	}
}

func run(ctx context.Context, opts runOptions) error {
	logger, closeLog, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	bus := event.NewEventBus()
	bus.Subscribe(event.Bounced, func(e event.Event) {
		if b, ok := e.(*event.BounceEvent); ok {
			logger.Info(ctx, "player bounced off the boundary", "position", b.Position, "momentum", b.Momentum)
		}
	})

	game, err := engine.NewGame(cfg,
		engine.WithLogger(logger),
		engine.WithEventBus(bus),
		engine.WithContext(ctx))
	if err != nil {
		return err
	}
	if err := game.Start(); err != nil {
		return err
	}
	defer game.Stop()

	if opts.LoadPath != "" {
		if err := loadGame(game, opts.LoadPath); err != nil {
			return err
		}
	}

	switch opts.Renderer {
	case "engo":
		engorender.Run(game, "mason", logger)
	case "null":
		err = runHeadless(game, render.NewNullRenderer(logger), opts.Ticks)
	default:
		err = runTerminal(ctx, game, opts.Ticks, logger)
	}
	if err != nil {
		return err
	}

	if opts.SavePath != "" {
		return saveGame(game, opts.SavePath)
	}
	return nil
}

// runHeadless updates the game at its fixed tick interval without waiting
// for the wall clock
func runHeadless(game *engine.Game, r render.Renderer, ticks int) error {
	if ticks <= 0 {
		ticks = 60 * game.Config.Loop.TickRate
	}
	dt := game.TickInterval().Seconds()
	for i := 0; i < ticks; i++ {
		if err := game.Update(dt); err != nil {
			return err
		}
		render.Draw(r, game.GetGameState())
	}
	return nil
}

func runTerminal(ctx context.Context, game *engine.Game, ticks int, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	host := render.NewTerminalHost(game, screen, terminalScale, logger)
	err = host.Run(ctx, ticks)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func loadGame(game *engine.Game, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return game.Load(f)
}

func saveGame(game *engine.Game, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := game.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
