package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics of the verification pipeline. A nil *Metrics is valid and records nothing
type Metrics struct {
	// Verifications by decision
	Verifications *prometheus.CounterVec
	// Reasons attached to verification results
	Reasons *prometheus.CounterVec
	// VerifyLatency of the whole verification, including external calls
	VerifyLatency prometheus.Histogram
	// ExternalOutcomes by provider and outcome kind
	ExternalOutcomes *prometheus.CounterVec
	// ExternalLatency by provider
	ExternalLatency *prometheus.HistogramVec
	// DisposableDomains loaded into the checker
	DisposableDomains prometheus.Gauge
}

// New creates and registers metrics in the registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emailscore_verifications_total",
			Help: "Total verifications by decision",
		}, []string{"decision"}), // decision: "accepted", "rejected"

		Reasons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emailscore_reasons_total",
			Help: "Total reasons attached to verification results",
		}, []string{"reason"}),

		VerifyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "emailscore_verify_duration_seconds",
			Help:    "Duration of a full verification",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		ExternalOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emailscore_external_outcomes_total",
			Help: "Total external provider outcomes by provider and kind",
		}, []string{"provider", "kind"}),

		ExternalLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emailscore_external_duration_seconds",
			Help:    "Duration of external provider calls, retries included",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),

		DisposableDomains: factory.NewGauge(prometheus.GaugeOpts{
			Name: "emailscore_disposable_domains",
			Help: "Number of disposable domains loaded from the blocklist file",
		}),
	}
}

// ObserveVerification records a verification decision with its reasons
func (m *Metrics) ObserveVerification(accepted bool, reasons []string, d time.Duration) {
	if m == nil {
		return
	}
	decision := "rejected"
	if accepted {
		decision = "accepted"
	}
	m.Verifications.WithLabelValues(decision).Inc()
	for _, reason := range reasons {
		m.Reasons.WithLabelValues(reasonLabel(reason)).Inc()
	}
	m.VerifyLatency.Observe(d.Seconds())
}

// ObserveExternal records an external provider call
func (m *Metrics) ObserveExternal(provider, kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.ExternalOutcomes.WithLabelValues(provider, kind).Inc()
	m.ExternalLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// SetDisposableDomains records the blocklist size
func (m *Metrics) SetDisposableDomains(count int) {
	if m == nil {
		return
	}
	m.DisposableDomains.Set(float64(count))
}

// reasonLabel keeps label cardinality bounded: external_rejected:<detail> becomes external_rejected
func reasonLabel(reason string) string {
	label, _, _ := strings.Cut(reason, ":")
	return label
}
