package build

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/libforge/internal/logfields"
	"git.home.luguber.info/inful/libforge/internal/metrics"
)

// ConfigureHook prepares the graph without executing tasks, e.g. wiring task
// actions from a resolved publication.
type ConfigureHook func(ctx context.Context, g *Graph) error

// GraphLauncher drives one Graph through the launcher contract the
// controller expects: execute everything, or configure only, then finish.
type GraphLauncher struct {
	graph     *Graph
	configure ConfigureHook
	recorder  metrics.Recorder

	mu         sync.Mutex
	cancel     context.CancelFunc
	configured bool
	started    time.Time
	finished   bool
}

// NewGraphLauncher creates a launcher for one build invocation. configure
// may be nil when the graph is already fully wired.
func NewGraphLauncher(g *Graph, configure ConfigureHook, rec metrics.Recorder) *GraphLauncher {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &GraphLauncher{graph: g, configure: configure, recorder: rec}
}

// ExecuteTasks configures the graph if needed, then runs every task. The
// returned graph is the handle the caller keeps.
func (l *GraphLauncher) ExecuteTasks(ctx context.Context) (*Graph, error) {
	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.cancel = cancel
	l.started = time.Now()
	l.mu.Unlock()
	defer cancel()

	if err := l.ensureConfigured(ctx); err != nil {
		return nil, err
	}
	if err := l.graph.Execute(ctx, l.recorder); err != nil {
		return nil, err
	}
	return l.graph, nil
}

// ConfiguredBuild runs the configuration phase only and returns the graph
// without executing any task.
func (l *GraphLauncher) ConfiguredBuild(ctx context.Context) (*Graph, error) {
	l.mu.Lock()
	if l.started.IsZero() {
		l.started = time.Now()
	}
	l.mu.Unlock()

	if err := l.ensureConfigured(ctx); err != nil {
		return nil, err
	}
	return l.graph, nil
}

// FinishBuild logs the invocation summary. Safe to call once per invocation
// on any phase path.
func (l *GraphLauncher) FinishBuild() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.finished {
		return nil
	}
	l.finished = true
	var elapsed time.Duration
	if !l.started.IsZero() {
		elapsed = time.Since(l.started)
	}
	l.recorder.ObserveBuildDuration(elapsed)
	slog.Info("Build finished",
		logfields.BuildID(l.graph.BuildID),
		slog.Int("tasks_executed", l.graph.ExecutedTasks()),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}

// Stop cancels an in-flight execution. Idempotent; callable from any
// goroutine at any time.
func (l *GraphLauncher) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (l *GraphLauncher) ensureConfigured(ctx context.Context) error {
	l.mu.Lock()
	done := l.configured
	l.configured = true
	l.mu.Unlock()
	if done || l.configure == nil {
		return nil
	}
	return l.configure(ctx, l.graph)
}
