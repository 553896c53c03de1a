package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/libforge/internal/config"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"component.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Resolve struct {
		Format string `short:"f" help:"Output format (table or yaml)" default:"table" enum:"table,yaml"`
		Watch  bool   `short:"w" help:"Re-resolve whenever the configuration file changes"`
	} `cmd:"" help:"Expand the component into its variant matrix and print the publication"`

	Build struct {
		DryRun bool `help:"Plan tasks without invoking any tool"`
	} `cmd:"" help:"Run a full build of every buildable variant under the exclusive lease"`

	Configure struct{} `cmd:"" help:"Run the configuration phase only and print the planned task graph"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new component configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	if ctx.Command() == "init" {
		if err := runInit(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Failed to initialize configuration", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch ctx.Command() {
	case "resolve":
		err = runResolve(sigCtx, cfg, CLI.Config, CLI.Resolve.Format, CLI.Resolve.Watch)
	case "build":
		err = runBuild(sigCtx, cfg, CLI.Build.DryRun)
	case "configure":
		err = runConfigure(sigCtx, cfg)
	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

// setupLogging installs the slog handler described by the config, with -v
// forcing debug level.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
