package outbox

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activitytracker",
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Number of outbox events successfully published to Kafka.",
	})

	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activitytracker",
		Subsystem: "outbox",
		Name:      "events_failed_total",
		Help:      "Number of outbox delivery attempts that failed and will be retried.",
	})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "activitytracker",
		Subsystem: "outbox",
		Name:      "batch_duration_seconds",
		Help:      "Time spent fetching, delivering, and marking outbox batches.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})

	markedSyncedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activitytracker",
		Subsystem: "outbox",
		Name:      "activities_marked_synced_total",
		Help:      "Count of activities transitioned to synced after outbox publish.",
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, batchDuration, markedSyncedCounter)
}
