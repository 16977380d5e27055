// SPDX-License-Identifier: MIT

package batch

import (
	"log/slog"

	"github.com/katalvlaran/ldematrix/store"
)

// DefaultWorkers is the worker limit when none is configured; one per case.
const DefaultWorkers = 8

// Option configures the drivers.
type Option func(*options)

type options struct {
	workers       int
	logger        *slog.Logger
	metrics       *Metrics
	store         *store.Store
	runID         string
	extraBrackets bool
	single        bool
}

func newOptions(opts []Option) options {
	o := options{
		workers: DefaultWorkers,
		logger:  slog.Default(),
		single:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithWorkers bounds concurrent workers; values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics reports progress to m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithStore persists unique patterns found by Dedupe.
func WithStore(s *store.Store) Option {
	return func(o *options) { o.store = s }
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithExtraBrackets makes Read accept the "[[a b],[c d]]" line form.
func WithExtraBrackets() Option {
	return func(o *options) { o.extraBrackets = true }
}

// WithAllSolutions makes Classify collect every rearrangement instead of
// stopping at the first.
func WithAllSolutions() Option {
	return func(o *options) { o.single = false }
}
