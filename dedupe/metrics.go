// SPDX-License-Identifier: MIT

package dedupe

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "ldematrix"
	metricsSubsystem = "dedupe"

	resultDuplicate = "duplicate"
	resultUnique    = "unique"
)

// Metrics are shared by every Deduper of a run. Collectors are safe for
// concurrent use, so one Metrics can serve per-case workers.
type Metrics struct {
	checks *prometheus.CounterVec
	size   *prometheus.GaugeVec
}

// NewMetrics registers the dedupe collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// handler, or a fresh prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		checks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "checks_total",
			Help:      "Pattern dedupe checks by case and result",
		}, []string{"case", "result"}),
		size: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "index_size",
			Help:      "Stored patterns per case",
		}, []string{"case"}),
	}
}

func (m *Metrics) check(caseID int, result string) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(strconv.Itoa(caseID), result).Inc()
}

func (m *Metrics) indexSize(caseID, n int) {
	if m == nil {
		return
	}
	m.size.WithLabelValues(strconv.Itoa(caseID)).Set(float64(n))
}
