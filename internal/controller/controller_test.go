package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/libforge/internal/build"
	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
	"git.home.luguber.info/inful/libforge/internal/lease"
)

// fakeLauncher is a scripted Launcher recording which phases ran.
type fakeLauncher struct {
	mu           sync.Mutex
	graph        *build.Graph
	executeErr   error
	configureErr error
	executed     bool
	configured   bool
	finished     int
	stopped      int
	onExecute    func()
	onConfigured func()
}

func newFakeLauncher(buildID string) *fakeLauncher {
	return &fakeLauncher{graph: build.NewGraph(buildID)}
}

func (f *fakeLauncher) ExecuteTasks(ctx context.Context) (*build.Graph, error) {
	f.mu.Lock()
	f.executed = true
	f.mu.Unlock()
	if f.onExecute != nil {
		f.onExecute()
	}
	if f.executeErr != nil {
		return nil, f.executeErr
	}
	return f.graph, nil
}

func (f *fakeLauncher) ConfiguredBuild(ctx context.Context) (*build.Graph, error) {
	f.mu.Lock()
	f.configured = true
	f.mu.Unlock()
	if f.onConfigured != nil {
		f.onConfigured()
	}
	if f.configureErr != nil {
		return nil, f.configureErr
	}
	return f.graph, nil
}

func (f *fakeLauncher) FinishBuild() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished++
	return nil
}

func (f *fakeLauncher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
}

func newTestController(launcher Launcher) *BuildController {
	return NewBuildController("build-1", launcher, lease.NewCoordinator(nil), lease.NewProjectRegistry())
}

func TestResultSlot(t *testing.T) {
	c := newTestController(newFakeLauncher("build-1"))

	require.False(t, c.HasResult())
	_, err := c.Result()
	require.Error(t, err)
	require.True(t, ferrors.IsIllegalState(err))

	c.SetResult("first")
	require.True(t, c.HasResult())
	got, err := c.Result()
	require.NoError(t, err)
	require.Equal(t, "first", got)

	// Last write wins; there is intentionally no set-once guard.
	c.SetResult("second")
	got, err = c.Result()
	require.NoError(t, err)
	require.Equal(t, "second", got)
}

func TestRun_ExecutesAndFinishes(t *testing.T) {
	launcher := newFakeLauncher("build-1")
	c := newTestController(launcher)

	graph, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Same(t, launcher.graph, graph)
	require.True(t, launcher.executed)
	require.Equal(t, 1, launcher.finished)
	require.Equal(t, StateCompleted, c.State())
}

func TestRun_CompletesOnFailure(t *testing.T) {
	launcher := newFakeLauncher("build-1")
	launcher.executeErr = errors.New("compiler exploded")
	c := newTestController(launcher)

	_, err := c.Run(context.Background())
	require.ErrorContains(t, err, "compiler exploded")
	require.Equal(t, StateCompleted, c.State())
	require.Equal(t, 0, launcher.finished)
}

func TestLauncherUnavailableAfterRun(t *testing.T) {
	launcher := newFakeLauncher("build-1")
	c := newTestController(launcher)

	got, err := c.Launcher()
	require.NoError(t, err)
	require.Same(t, launcher, got)

	_, err = c.Run(context.Background())
	require.NoError(t, err)

	_, err = c.Launcher()
	require.Error(t, err)
	require.True(t, ferrors.IsIllegalState(err))
}

func TestLauncherUnavailableAfterFailedRun(t *testing.T) {
	launcher := newFakeLauncher("build-1")
	launcher.executeErr = errors.New("boom")
	c := newTestController(launcher)

	_, _ = c.Run(context.Background())

	_, err := c.Launcher()
	require.True(t, ferrors.IsIllegalState(err))
}

func TestConfigure_RunsUnderLenientState(t *testing.T) {
	launcher := newFakeLauncher("build-1")
	registry := lease.NewProjectRegistry()
	c := NewBuildController("build-1", launcher, lease.NewCoordinator(nil), registry)

	var lenientDuringConfigure bool
	launcher.onConfigured = func() { lenientDuringConfigure = registry.Lenient() }

	graph, err := c.Configure(context.Background())
	require.NoError(t, err)
	require.Same(t, launcher.graph, graph)
	require.True(t, launcher.configured)
	require.False(t, launcher.executed)
	require.True(t, lenientDuringConfigure, "configuration must run with lenient project state")
	require.False(t, registry.Lenient(), "strict mode must resume after configuration")
	require.Equal(t, 1, launcher.finished)
	require.Equal(t, StateCompleted, c.State())
}

func TestConfigure_CompletesOnFailure(t *testing.T) {
	launcher := newFakeLauncher("build-1")
	launcher.configureErr = errors.New("bad project state")
	c := newTestController(launcher)

	_, err := c.Configure(context.Background())
	require.ErrorContains(t, err, "bad project state")
	require.Equal(t, StateCompleted, c.State())
}

func TestStop_DelegatesRegardlessOfState(t *testing.T) {
	launcher := newFakeLauncher("build-1")
	c := newTestController(launcher)

	c.Stop()
	require.Equal(t, 1, launcher.stopped)

	_, err := c.Run(context.Background())
	require.NoError(t, err)

	// Stop after completion still reaches the launcher and never errors.
	c.Stop()
	require.Equal(t, 2, launcher.stopped)
	require.Equal(t, StateCompleted, c.State())
}

func TestRun_MutualExclusionAcrossControllers(t *testing.T) {
	coordinator := lease.NewCoordinator(nil)
	registry := lease.NewProjectRegistry()

	type window struct{ start, end time.Time }
	var mu sync.Mutex
	var windows []window

	mkLauncher := func(id string) *fakeLauncher {
		l := newFakeLauncher(id)
		l.onExecute = func() {
			start := time.Now()
			time.Sleep(30 * time.Millisecond)
			mu.Lock()
			windows = append(windows, window{start: start, end: time.Now()})
			mu.Unlock()
		}
		return l
	}

	a := NewBuildController("build-a", mkLauncher("build-a"), coordinator, registry)
	b := NewBuildController("build-b", mkLauncher("build-b"), coordinator, registry)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, c := range []*BuildController{a, b} {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Run(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, windows, 2)
	first, second := windows[0], windows[1]
	if second.start.Before(first.start) {
		first, second = second, first
	}
	require.False(t, second.start.Before(first.end),
		"critical sections overlap: first ended %v, second started %v", first.end, second.start)
}

func TestRun_LeaseReleasedAfterFailure(t *testing.T) {
	coordinator := lease.NewCoordinator(nil)
	registry := lease.NewProjectRegistry()

	failing := newFakeLauncher("build-a")
	failing.executeErr = errors.New("first build fails")
	a := NewBuildController("build-a", failing, coordinator, registry)
	_, err := a.Run(context.Background())
	require.Error(t, err)

	// A failed run must not leak the lease.
	b := NewBuildController("build-b", newFakeLauncher("build-b"), coordinator, registry)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = b.Run(ctx)
	require.NoError(t, err)
}
