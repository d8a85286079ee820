package fmm

import "github.com/xuyanwen2012/fmm2d/pkg/opt"

// config collects the construction-time parameters of a Tree. It is
// built from the defaults below, then mutated by the variadic Option
// list passed to New.
type config struct {
	sink     opt.Option[Sink]
	parallel bool
}

func defaultConfig() config {
	return config{
		sink:     opt.None[Sink](),
		parallel: true,
	}
}

// Option configures a Tree at construction time.
type Option func(*config)

// WithSink installs a Sink to observe phase-start and phase-end events.
// If never called, the tree uses defaultSink.
func WithSink(s Sink) Option {
	return func(c *config) {
		c.sink = opt.Some(s)
	}
}

// WithParallel toggles whether M2L and direct summation run their
// per-level and per-leaf work across a worker pool (the default) or
// sequentially on the calling goroutine.
func WithParallel(enabled bool) Option {
	return func(c *config) {
		c.parallel = enabled
	}
}
