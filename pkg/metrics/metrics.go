package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "coastprep",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	fetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "upstream_fetch_latency",
			Subsystem: "coastprep",
			Help:      "Latencies of catalog and buoy fetches in seconds.",
			Buckets:   []float64{0.1, 0.5, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0, 64.0},
		},
		[]string{"source"},
	)

	fetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "upstream_fetch_errors_total",
			Subsystem: "coastprep",
			Help:      "Failed catalog and buoy fetches.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		fetchLatency,
		fetchErrors,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveFetch records one upstream fetch. Source is "catalog" or "ndbc".
func ObserveFetch(source string, latency time.Duration, err error) {
	fetchLatency.With(prometheus.Labels{"source": source}).Observe(latency.Seconds())
	if err != nil {
		fetchErrors.With(prometheus.Labels{"source": source}).Inc()
	}
}

func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			code := getStatusCode(w)
			ObserveRequestLatency(verb, path, code, time.Since(t).Seconds())
		}()

		next.ServeHTTP(w, r)
	})
}

func getStatusCode(w http.ResponseWriter) string {
	statusFields, ok := w.Header()["Status-Code"]
	if !ok {
		// Unset, will be set to 200 by stdlib.
		return "200"
	}
	if len(statusFields) < 1 {
		// Not normal behavior.
		return "0"
	}
	return statusFields[0]
}
