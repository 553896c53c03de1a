package lease

import "sync/atomic"

// StateRegistry guards access to shared project state. Configuration-only
// build phases run under lenient state, which temporarily relaxes the
// exclusive-access assumption for the duration of the wrapped section.
type StateRegistry interface {
	WithLenientState(fn func() error) error
}

// ProjectRegistry is the in-process StateRegistry.
type ProjectRegistry struct {
	lenient atomic.Int32
}

// NewProjectRegistry returns a registry in strict mode.
func NewProjectRegistry() *ProjectRegistry { return &ProjectRegistry{} }

// WithLenientState runs fn with lenient access in effect. Nesting is
// permitted; strict mode resumes when the outermost section exits.
func (r *ProjectRegistry) WithLenientState(fn func() error) error {
	r.lenient.Add(1)
	defer r.lenient.Add(-1)
	return fn()
}

// Lenient reports whether a lenient section is currently in effect.
func (r *ProjectRegistry) Lenient() bool { return r.lenient.Load() > 0 }
