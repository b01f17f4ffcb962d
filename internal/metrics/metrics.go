package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BotUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "drivebot", Name: "updates_total", Help: "Processed telegram updates",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "drivebot", Name: "handler_errors_total", Help: "Handler errors",
	})
	APIRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "drivebot", Name: "api_request_seconds", Help: "Scheduling API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	APIErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivebot", Name: "api_errors_total", Help: "Scheduling API errors",
	}, []string{"endpoint"})
	StaleSlotResponses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "drivebot", Name: "stale_slot_responses_total", Help: "Slot responses discarded as stale",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "drivebot", Name: "db_ping_seconds", Help: "Session store ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(BotUpdates, HandlerErrors, APIRequests, APIErrors, StaleSlotResponses, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveAPIRequest(endpoint string, d time.Duration) {
	APIRequests.WithLabelValues(endpoint).Observe(d.Seconds())
}

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
