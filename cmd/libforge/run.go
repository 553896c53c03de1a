package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/libforge/internal/build"
	"git.home.luguber.info/inful/libforge/internal/config"
	"git.home.luguber.info/inful/libforge/internal/controller"
	"git.home.luguber.info/inful/libforge/internal/dimension"
	"git.home.luguber.info/inful/libforge/internal/lease"
	"git.home.luguber.info/inful/libforge/internal/logfields"
	"git.home.luguber.info/inful/libforge/internal/metrics"
	"git.home.luguber.info/inful/libforge/internal/toolchain"
	"git.home.luguber.info/inful/libforge/internal/variant"
)

const starterConfig = `component:
  base_name: mylib
  group: org.example
  version: 0.1.0
  linkages: [shared, static]
  os_families: [linux, windows, macos]

logging:
  level: info
  format: text

metrics:
  enabled: false
`

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	slog.Info("Wrote starter configuration", "config_path", path)
	return nil
}

// recorderFor picks the metrics backend configured for this invocation.
func recorderFor(cfg *config.Config) metrics.Recorder {
	if cfg.Metrics.Enabled {
		return metrics.NewPrometheusRecorder(prom.NewRegistry())
	}
	return metrics.NoopRecorder{}
}

func newResolver(cfg *config.Config) *variant.Resolver {
	sel := toolchain.NewHostSelector()
	return variant.NewResolver(sel, sel.Host(), recorderFor(cfg))
}

func runResolve(ctx context.Context, cfg *config.Config, configPath, format string, watch bool) error {
	resolveOnce := func(c *config.Config) error {
		pub, err := newResolver(c).Resolve(c.ComponentSpec())
		if err != nil {
			return err
		}
		return renderPublication(pub, format)
	}

	if err := resolveOnce(cfg); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	watcher, err := config.NewWatcher(configPath, func(c *config.Config) {
		if err := resolveOnce(c); err != nil {
			slog.Error("Resolution failed", logfields.Error(err))
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// publicationView is the YAML shape of a rendered publication.
type publicationView struct {
	BaseName          string        `yaml:"base_name"`
	Group             string        `yaml:"group"`
	Version           string        `yaml:"version"`
	DevelopmentBinary string        `yaml:"development_binary,omitempty"`
	Variants          []variantView `yaml:"variants"`
}

type variantView struct {
	Name       string `yaml:"name"`
	OsFamily   string `yaml:"os_family"`
	Linkage    string `yaml:"linkage,omitempty"`
	Debuggable bool   `yaml:"debuggable"`
	Optimized  bool   `yaml:"optimized"`
	Buildable  bool   `yaml:"buildable"`
	Artifact   string `yaml:"artifact,omitempty"`
}

func renderPublication(pub *variant.Publication, format string) error {
	view := publicationView{BaseName: pub.BaseName}
	if len(pub.Variants) > 0 {
		view.Group = pub.Variants[0].Identity.Group()
		view.Version = pub.Variants[0].Identity.Version()
	}
	if pub.DevelopmentBinary != nil {
		view.DevelopmentBinary = pub.DevelopmentBinary.Identity.Name
	}
	for _, v := range pub.Variants {
		vv := variantView{
			Name:       v.Identity.Name,
			OsFamily:   v.Identity.OS.String(),
			Debuggable: v.Identity.Debuggable,
			Optimized:  v.Identity.Optimized,
			Buildable:  v.Buildable(),
		}
		if v.Binary != nil {
			vv.Linkage = string(v.Binary.Linkage)
			vv.Artifact = v.Binary.ArtifactFileName()
		} else {
			vv.Linkage = string(v.Identity.LinkAttributes.Linkage)
		}
		view.Variants = append(view.Variants, vv)
	}

	if format == "yaml" {
		out, err := yaml.Marshal(view)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	fmt.Printf("%-28s %-10s %-8s %-6s %-6s %s\n", "VARIANT", "OS", "LINKAGE", "DEBUG", "OPT", "BUILDABLE")
	for _, v := range view.Variants {
		marker := ""
		if v.Name == view.DevelopmentBinary {
			marker = " (development binary)"
		}
		fmt.Printf("%-28s %-10s %-8s %-6t %-6t %t%s\n", v.Name, v.OsFamily, v.Linkage, v.Debuggable, v.Optimized, v.Buildable, marker)
	}
	return nil
}

// graphFor plans one task per buildable binary. Real compilation is the
// toolchain's business; the task materializes the output layout and reports
// the tools that would produce the artifact.
func graphFor(pub *variant.Publication, buildID string, dryRun bool) *build.Graph {
	graph := build.NewGraph(buildID)
	for _, v := range pub.BuildableVariants() {
		bin := v.Binary
		graph.AddTask(taskName(bin), func(ctx context.Context) error {
			outDir := filepath.Join("build", "lib", bin.Identity.Name)
			artifact := filepath.Join(outDir, bin.ArtifactFileName())
			slog.Info("Producing library",
				logfields.BuildID(buildID),
				logfields.Variant(bin.Identity.Name),
				logfields.Linkage(string(bin.Linkage)),
				logfields.Toolchain(bin.Selection.Toolchain.Name),
				slog.String("artifact", artifact))
			if dryRun {
				return nil
			}
			return os.MkdirAll(outDir, 0o755)
		})
	}
	return graph
}

func taskName(bin *variant.Binary) string {
	verb := "create"
	if bin.Linkage == dimension.Shared {
		verb = "link"
	}
	name := bin.Identity.Name
	return verb + strings.ToUpper(name[:1]) + name[1:]
}

func newController(graph *build.Graph, rec metrics.Recorder) *controller.BuildController {
	launcher := build.NewGraphLauncher(graph, nil, rec)
	return controller.NewBuildController(graph.BuildID, launcher, lease.NewCoordinator(rec), lease.NewProjectRegistry())
}

func runBuild(ctx context.Context, cfg *config.Config, dryRun bool) error {
	pub, err := newResolver(cfg).Resolve(cfg.ComponentSpec())
	if err != nil {
		return err
	}

	buildID := uuid.NewString()
	rec := recorderFor(cfg)
	ctrl := newController(graphFor(pub, buildID, dryRun), rec)

	graph, err := ctrl.Run(ctx)
	if err != nil {
		rec.IncBuildOutcome(metrics.OutcomeFailed)
		return err
	}
	rec.IncBuildOutcome(metrics.OutcomeSuccess)
	slog.Info("Build succeeded",
		logfields.BuildID(buildID),
		logfields.Component(pub.BaseName),
		slog.Int("tasks", graph.ExecutedTasks()))
	return nil
}

func runConfigure(ctx context.Context, cfg *config.Config) error {
	pub, err := newResolver(cfg).Resolve(cfg.ComponentSpec())
	if err != nil {
		return err
	}

	buildID := uuid.NewString()
	rec := recorderFor(cfg)
	ctrl := newController(graphFor(pub, buildID, true), rec)

	graph, err := ctrl.Configure(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Configured build %s with %d planned tasks:\n", buildID, len(graph.Tasks()))
	for _, t := range graph.Tasks() {
		fmt.Printf("  %s\n", t.Name)
	}
	return nil
}
