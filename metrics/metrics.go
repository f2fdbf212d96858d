// SPDX-License-Identifier: EPL-2.0

// Package metrics provides Prometheus metrics for the mixing engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// mixesTotal counts finished mix requests.
	// Labels:
	//   - mode: "mixed" or "speech-only"
	//   - status: "success" or the failing stage ("decode", "configure", "render", "encode", "busy")
	mixesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audmix_mixes_total",
			Help: "Total number of mix requests by mode and outcome",
		},
		[]string{"mode", "status"},
	)

	// renderDuration records wall time spent rendering, per mode.
	// Buckets: 10ms up to 1 minute.
	renderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audmix_render_duration_seconds",
			Help:    "Duration of offline renders in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60},
		},
		[]string{"mode"},
	)

	// breakMarkersTotal counts located break markers.
	// Labels:
	//   - method: "aligned" or "estimated"
	breakMarkersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audmix_break_markers_total",
			Help: "Total number of break markers placed, by placement method",
		},
		[]string{"method"},
	)

	alignmentFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audmix_alignment_fallbacks_total",
			Help: "Total number of times silence alignment fell back to the word-rate estimate",
		},
	)
)

func init() {
	prometheus.MustRegister(mixesTotal)
	prometheus.MustRegister(renderDuration)
	prometheus.MustRegister(breakMarkersTotal)
	prometheus.MustRegister(alignmentFallbacksTotal)
}

func RecordMix(mode, status string) {
	mixesTotal.WithLabelValues(mode, status).Inc()
}

func RecordRenderDuration(mode string, seconds float64) {
	renderDuration.WithLabelValues(mode).Observe(seconds)
}

// RecordBreakMarkers adds count markers placed with method.
func RecordBreakMarkers(method string, count int) {
	if count <= 0 {
		return
	}
	breakMarkersTotal.WithLabelValues(method).Add(float64(count))
}

func RecordAlignmentFallback() {
	alignmentFallbacksTotal.Inc()
}
