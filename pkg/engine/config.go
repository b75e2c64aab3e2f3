package engine

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config bundles the tunables the CLI surface exposes per spec.md §6:
// sample count, repair threshold, iteration cap, solver timeout, and an
// optional seed.
type Config struct {
	SampleCount     int
	RepairThreshold int
	IterationCap    int
	SolverTimeout   time.Duration
	Seed            int64
}

// DefaultConfig mirrors the defaults named in spec.md (§4.8: T=50).
func DefaultConfig() Config {
	return Config{
		SampleCount:     256,
		RepairThreshold: 50,
		IterationCap:    1000,
		SolverTimeout:   30 * time.Second,
		Seed:            1,
	}
}

// Option configures an Engine at construction time, mirroring the
// teacher's functional-options pattern (solver.Option in the
// SAT-resolver package this module is grounded on).
type Option func(*Engine) error

// WithConfig overrides the Engine's Config.
func WithConfig(cfg Config) Option {
	return func(e *Engine) error {
		e.cfg = cfg
		return nil
	}
}

// WithLogger overrides the Engine's logger. The default discards output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) error {
		e.log = log
		return nil
	}
}

// WithMaxSATSolver overrides the Engine's MaxSAT collaborator.
func WithMaxSATSolver(m MaxSATSolver) Option {
	return func(e *Engine) error {
		e.maxsat = m
		return nil
	}
}

// WithSampler overrides the Engine's Sampler collaborator.
func WithSampler(s Sampler) Option {
	return func(e *Engine) error {
		e.sampler = s
		return nil
	}
}

// WithLearner overrides the Engine's TreeLearner collaborator.
func WithLearner(l TreeLearner) Option {
	return func(e *Engine) error {
		e.learner = l
		return nil
	}
}

// WithTracer overrides the Engine's Tracer. The default is a no-op.
func WithTracer(t Tracer) Option {
	return func(e *Engine) error {
		e.tracer = t
		return nil
	}
}
