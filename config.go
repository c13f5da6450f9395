package rwsem

import (
	"log/slog"
)

// Config defines the configurable options of a Sem.
type Config struct {
	// name identifies the semaphore in trace records.
	name string

	// sched provides the execution contexts of blocked goroutines.
	// If nil, Goroutines is used.
	sched Scheduler

	// logger receives Debug records about slow-path activity: queueing,
	// grants, steals and batched reader wakes. Records are never emitted
	// while the queue lock is held. If nil, nothing is logged.
	logger *slog.Logger
}

// WithName names the semaphore in trace records.
func WithName(name string) func(*Config) {
	return func(c *Config) {
		c.name = name
	}
}

// WithScheduler replaces the Goroutines scheduler. It is mostly useful for
// tests that need to observe or control how waiters park and wake.
func WithScheduler(sched Scheduler) func(*Config) {
	return func(c *Config) {
		c.sched = sched
	}
}

// WithLogger enables slow-path tracing at slog.LevelDebug.
func WithLogger(logger *slog.Logger) func(*Config) {
	return func(c *Config) {
		c.logger = logger
	}
}

// New returns an unlocked Sem configured with opts.
func New(opts ...func(*Config)) *Sem {
	s := &Sem{}
	s.init(newConfig(opts))
	return s
}

func newConfig(opts []func(*Config)) *Config {
	var cfg Config
	for _, apply := range opts {
		apply(&cfg)
	}
	return &cfg
}

func (s *Sem) init(cfg *Config) {
	s.name = cfg.name
	s.sched = cfg.sched
	s.log = cfg.logger
}
