package types

import (
	"github.com/rs/zerolog"
)

// RunContext carries everything a resolver, planner or executor call needs.
// It is passed explicitly; nothing in the core reads process-wide state.
type RunContext struct {
	// FS is the filesystem all reads and mutations go through
	FS FS

	// Logger receives structured diagnostics; secret values are never logged
	Logger zerolog.Logger

	// Ignore holds global ignore patterns applied to every package walk
	Ignore []string
}

// NewRunContext returns a RunContext over fs with a disabled logger.
func NewRunContext(fs FS) *RunContext {
	return &RunContext{
		FS:     fs,
		Logger: zerolog.Nop(),
	}
}

// WithLogger returns a copy of the context using logger.
func (rc *RunContext) WithLogger(logger zerolog.Logger) *RunContext {
	c := *rc
	c.Logger = logger
	return &c
}

// WithIgnore returns a copy of the context with additional global ignore patterns.
func (rc *RunContext) WithIgnore(patterns ...string) *RunContext {
	c := *rc
	c.Ignore = append(append([]string{}, rc.Ignore...), patterns...)
	return &c
}
