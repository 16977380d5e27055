// SPDX-License-Identifier: MIT

package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/ldematrix/dedupe"
)

const (
	stageRead     = "read"
	stageClassify = "classify"
	stageDedupe   = "dedupe"
	stageStore    = "store"

	outcomeOK        = "ok"
	outcomeRejected  = "rejected"
	outcomeUnmatched = "unmatched"
	outcomeFailed    = "failed"
	outcomeDuplicate = "duplicate"
	outcomeUnique    = "unique"
)

// Metrics bundles batch progress counters with the dedupe collectors.
type Metrics struct {
	patterns *prometheus.CounterVec
	runs     *prometheus.CounterVec
	Dedupe   *dedupe.Metrics
}

// NewMetrics registers the batch and dedupe collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		patterns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ldematrix",
			Subsystem: "batch",
			Name:      "patterns_total",
			Help:      "Patterns processed by stage and outcome",
		}, []string{"stage", "outcome"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ldematrix",
			Subsystem: "batch",
			Name:      "runs_total",
			Help:      "Driver runs by kind",
		}, []string{"kind"}),
		Dedupe: dedupe.NewMetrics(reg),
	}
}

func (m *Metrics) pattern(stage, outcome string) {
	if m == nil {
		return
	}
	m.patterns.WithLabelValues(stage, outcome).Inc()
}

func (m *Metrics) run(kind string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(kind).Inc()
}

func (m *Metrics) dedupeMetrics() *dedupe.Metrics {
	if m == nil {
		return nil
	}

	return m.Dedupe
}
