package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Timecode operation metrics
	parsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_parses_total",
		Help: "Total timecode parse attempts",
	}, []string{"rate", "outcome"})

	conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_conversions_total",
		Help: "Total rate conversions performed",
	}, []string{"source_rate", "target_rate", "mode"})

	conversionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "timecode_conversion_duration_seconds",
		Help:    "Duration of conversion requests in seconds",
		Buckets: prometheus.ExponentialBuckets(0.000001, 10, 8), // 1µs to 10s
	})

	// Anchor store metrics
	anchorOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anchor_store_operations_total",
		Help: "Total anchor store operations",
	}, []string{"operation", "outcome"})
)

// Conversion modes recorded on timecode_conversions_total.
const (
	ModeAbsolute = "absolute"
	ModeAnchored = "anchored"
)

// RecordParse counts a parse attempt and its outcome.
func RecordParse(rate string, err error) {
	parsesTotal.WithLabelValues(rate, outcome(err)).Inc()
}

// RecordConversion counts a completed conversion.
func RecordConversion(sourceRate, targetRate, mode string) {
	conversionsTotal.WithLabelValues(sourceRate, targetRate, mode).Inc()
}

// ObserveConversionDuration records how long a conversion request took.
func ObserveConversionDuration(seconds float64) {
	conversionDuration.Observe(seconds)
}

// RecordAnchorOp counts an anchor store operation and its outcome.
func RecordAnchorOp(operation string, err error) {
	anchorOpsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
