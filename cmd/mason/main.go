// cmd/mason/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/opd-ai/mason/pkg/logging"
)

var CLI struct {
	Debug bool `help:"Enable debug logging."`

	Run struct {
		Config   string `help:"Configuration file (.json, .yaml or .yml). Defaults apply when it is missing." default:"mason.yaml"`
		Renderer string `help:"Host to run the game in." enum:"terminal,engo,null" default:"terminal"`
		Ticks    int    `help:"Stop after this many updates (0 runs until quit; the null host defaults to one minute)." default:"0"`
		LogFile  string `help:"Write logs to this file instead of standard output." name:"log-file" type:"path"`
		Load     string `help:"Load a saved game after starting." type:"existingfile"`
		Save     string `help:"Save the game to this file on exit." type:"path"`
	} `cmd:"" default:"withargs" help:"Run the player locomotion demo."`

	Config struct {
		Format string `help:"Output format." enum:"yaml,json" default:"yaml"`
		Output string `help:"Write to this file instead of standard output." short:"o" type:"path"`
	} `cmd:"" help:"Write the default configuration, with MASON_* overrides applied."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("mason"),
		kong.Description("first-person locomotion and camera rig demo"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	level := logging.ParseLevel(os.Getenv(logging.LevelEnv))
	if CLI.Debug {
		level = slog.LevelDebug
	}

	switch kctx.Command() {
	case "run":
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := runOptions{
			ConfigPath: CLI.Run.Config,
			Renderer:   CLI.Run.Renderer,
			Ticks:      CLI.Run.Ticks,
			LogFile:    CLI.Run.LogFile,
			LoadPath:   CLI.Run.Load,
			SavePath:   CLI.Run.Save,
			Level:      level,
		}
		if err := run(ctx, opts); err != nil {
			stop()
			writeError(err)
		}
	case "config":
		if err := writeConfig(os.Stdout, CLI.Config.Output, CLI.Config.Format == "yaml"); err != nil {
			writeError(err)
		}
	}
}
