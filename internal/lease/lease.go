// Package lease provides the process-wide mutual exclusion primitive that
// serializes build executions, plus the project state registry whose lenient
// mode relaxes exclusive-access assumptions during configuration.
package lease

import (
	"context"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
	"git.home.luguber.info/inful/libforge/internal/logfields"
	"git.home.luguber.info/inful/libforge/internal/metrics"
)

// Coordinator hands out the exclusive build lease. At most one critical
// section runs at a time across every controller sharing a coordinator; no
// fairness among waiters is promised.
type Coordinator interface {
	// WithExclusiveLock blocks until the lease is available, runs fn while
	// holding it, and releases it on every exit path, panics included.
	WithExclusiveLock(ctx context.Context, fn func() error) error
}

// MutexCoordinator is the in-process Coordinator. The lease is a 1-slot
// channel so acquisition can be abandoned when the context is canceled.
type MutexCoordinator struct {
	slot     chan struct{}
	recorder metrics.Recorder
}

// NewCoordinator creates a coordinator with a free lease.
func NewCoordinator(rec metrics.Recorder) *MutexCoordinator {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &MutexCoordinator{slot: make(chan struct{}, 1), recorder: rec}
}

// WithExclusiveLock implements Coordinator.
func (c *MutexCoordinator) WithExclusiveLock(ctx context.Context, fn func() error) error {
	start := time.Now()
	select {
	case c.slot <- struct{}{}:
	case <-ctx.Done():
		return ferrors.LeaseInterrupted(ctx.Err())
	}
	waited := time.Since(start)
	c.recorder.ObserveLeaseWait(waited)
	if waited > time.Second {
		slog.Info("Acquired build lease after waiting", logfields.DurationMS(float64(waited.Milliseconds())))
	}
	defer func() { <-c.slot }()
	return fn()
}
