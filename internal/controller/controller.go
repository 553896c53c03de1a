// Package controller implements the top-level execution controller that
// gates access to a single build invocation. One controller per invocation;
// a controller is never reused after it completes.
package controller

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/libforge/internal/build"
	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
	"git.home.luguber.info/inful/libforge/internal/lease"
	"git.home.luguber.info/inful/libforge/internal/logfields"
)

// Launcher is the collaborator that does the actual build work. Implemented
// outside this package; build.GraphLauncher is the reference implementation.
type Launcher interface {
	ExecuteTasks(ctx context.Context) (*build.Graph, error)
	ConfiguredBuild(ctx context.Context) (*build.Graph, error)
	FinishBuild() error
	Stop()
}

// State is the controller lifecycle state.
type State int

const (
	StateCreated State = iota
	StateCompleted
)

func (s State) String() string {
	if s == StateCompleted {
		return "completed"
	}
	return "created"
}

// BuildController runs the configure and/or execute phase of one build under
// the exclusive lease. Not safe for concurrent use by multiple goroutines,
// except for Stop; cross-invocation exclusion comes from the shared
// coordinator, not from the controller.
type BuildController struct {
	buildID   string
	state     State
	hasResult bool
	result    any
	launcher  Launcher
	leases    lease.Coordinator
	projects  lease.StateRegistry
}

// NewBuildController creates a controller in the Created state.
func NewBuildController(buildID string, launcher Launcher, leases lease.Coordinator, projects lease.StateRegistry) *BuildController {
	return &BuildController{
		buildID:  buildID,
		launcher: launcher,
		leases:   leases,
		projects: projects,
	}
}

// BuildID identifies the invocation this controller owns.
func (c *BuildController) BuildID() string { return c.buildID }

// State returns the current lifecycle state.
func (c *BuildController) State() State { return c.state }

// Launcher returns the bound launcher. Using the launcher after the build
// has completed is a programming error.
func (c *BuildController) Launcher() (Launcher, error) {
	if c.state == StateCompleted {
		return nil, ferrors.IllegalState("cannot use launcher after build has completed")
	}
	return c.launcher, nil
}

// HasResult reports whether SetResult has ever been called.
func (c *BuildController) HasResult() bool { return c.hasResult }

// Result returns the value most recently passed to SetResult.
func (c *BuildController) Result() (any, error) {
	if !c.hasResult {
		return nil, ferrors.IllegalState("no result has been provided for this build action")
	}
	return c.result, nil
}

// SetResult stores the build action result. Last write wins; unlike the
// Created→Completed transition there is deliberately no set-once guard here.
func (c *BuildController) SetResult(result any) {
	c.hasResult = true
	c.result = result
}

// Run executes all tasks and finishes the build under the exclusive lease.
// Whatever happens inside, the lease is released and the controller
// completes before Run returns.
func (c *BuildController) Run(ctx context.Context) (*build.Graph, error) {
	return c.doBuild(ctx, func() (*build.Graph, error) {
		launcher, err := c.Launcher()
		if err != nil {
			return nil, err
		}
		graph, err := launcher.ExecuteTasks(ctx)
		if err != nil {
			return nil, err
		}
		if err := launcher.FinishBuild(); err != nil {
			return nil, err
		}
		return graph, nil
	})
}

// Configure runs the configuration phase only, under the exclusive lease and
// with lenient project state in effect for the duration of configuration.
func (c *BuildController) Configure(ctx context.Context) (*build.Graph, error) {
	return c.doBuild(ctx, func() (graph *build.Graph, err error) {
		lerr := c.projects.WithLenientState(func() error {
			launcher, err := c.Launcher()
			if err != nil {
				return err
			}
			graph, err = launcher.ConfiguredBuild(ctx)
			if err != nil {
				return err
			}
			return launcher.FinishBuild()
		})
		if lerr != nil {
			return nil, lerr
		}
		return graph, nil
	})
}

// doBuild wraps one phase body in the lease and guarantees the state
// transition on every exit path, panics included.
func (c *BuildController) doBuild(ctx context.Context, body func() (*build.Graph, error)) (graph *build.Graph, err error) {
	defer func() {
		c.state = StateCompleted
		slog.Debug("Build controller completed",
			logfields.BuildID(c.buildID),
			logfields.State(c.state.String()))
	}()
	lockErr := c.leases.WithExclusiveLock(ctx, func() error {
		graph, err = body()
		return err
	})
	if err == nil {
		err = lockErr
	}
	return graph, err
}

// Stop asks the launcher to cancel whatever is in flight. It never touches
// controller state; cancellation idempotency is the launcher's job.
func (c *BuildController) Stop() {
	c.launcher.Stop()
}
