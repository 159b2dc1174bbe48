package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activityPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activitytracker",
		Subsystem: "persistence",
		Name:      "last_activity_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent activity persisted to Postgres.",
	})
	parseConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "activitytracker",
		Subsystem: "parser",
		Name:      "confidence",
		Help:      "Distribution of confidence scores for accepted parses.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})
	parseOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activitytracker",
		Subsystem: "parser",
		Name:      "messages_total",
		Help:      "Parsed messages by resulting activity type.",
	}, []string{"activity_type"})
	parseRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activitytracker",
		Subsystem: "parser",
		Name:      "rejections_total",
		Help:      "Messages rejected as empty after normalization.",
	})
)

func init() {
	prometheus.MustRegister(activityPersistGauge, parseConfidence, parseOutcomes, parseRejections)
}

// RecordActivityPersisted updates the persistence watermark gauge.
func RecordActivityPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	activityPersistGauge.Set(float64(ts.Unix()))
}

// RecordParse tracks the outcome of one accepted parse.
func RecordParse(activityType string, confidence float64) {
	parseOutcomes.WithLabelValues(activityType).Inc()
	parseConfidence.Observe(confidence)
}

// RecordParseRejected counts a validation rejection.
func RecordParseRejected() {
	parseRejections.Inc()
}
