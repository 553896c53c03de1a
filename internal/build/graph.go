// Package build provides the build graph handle returned from a controlled
// build, and a launcher that drives it. Task scheduling stays deliberately
// sequential; this is the reference launcher, not a task executor.
package build

import (
	"context"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
	"git.home.luguber.info/inful/libforge/internal/logfields"
	"git.home.luguber.info/inful/libforge/internal/metrics"
)

// TaskAction is the work of one task. A nil action is a no-op placeholder.
type TaskAction func(ctx context.Context) error

// Task is one named unit of build work.
type Task struct {
	Name   string
	Action TaskAction

	Executed bool
	Err      error
}

// Graph is the build-graph handle handed back by Run/Configure. After the
// controller returns it, the caller owns it; the controller never touches it
// again.
type Graph struct {
	BuildID string
	tasks   []*Task
}

// NewGraph creates an empty graph for one build invocation.
func NewGraph(buildID string) *Graph {
	return &Graph{BuildID: buildID}
}

// AddTask appends a task. Execution order is insertion order.
func (g *Graph) AddTask(name string, action TaskAction) *Task {
	t := &Task{Name: name, Action: action}
	g.tasks = append(g.tasks, t)
	return t
}

// Tasks returns the tasks in execution order.
func (g *Graph) Tasks() []*Task { return g.tasks }

// Execute runs every task in order, stopping at the first failure or when
// ctx is canceled.
func (g *Graph) Execute(ctx context.Context, rec metrics.Recorder) error {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	for _, t := range g.tasks {
		if err := ctx.Err(); err != nil {
			return ferrors.WrapRetryable(err, ferrors.CategoryBuild, ferrors.SeverityWarning, "build canceled").
				WithContext("task", t.Name)
		}
		start := time.Now()
		if t.Action != nil {
			t.Err = t.Action(ctx)
		}
		t.Executed = true
		rec.ObserveTaskDuration(t.Name, time.Since(start))
		if t.Err != nil {
			slog.Error("Task failed",
				logfields.BuildID(g.BuildID),
				logfields.Task(t.Name),
				logfields.Error(t.Err))
			return ferrors.TaskFailed(t.Name, t.Err)
		}
		slog.Debug("Task completed",
			logfields.BuildID(g.BuildID),
			logfields.Task(t.Name),
			logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	}
	return nil
}

// ExecutedTasks returns how many tasks ran (successfully or not).
func (g *Graph) ExecutedTasks() int {
	n := 0
	for _, t := range g.tasks {
		if t.Executed {
			n++
		}
	}
	return n
}
