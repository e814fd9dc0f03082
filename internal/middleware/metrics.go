package middleware

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Metrics stores application counters
type Metrics struct {
	RequestsTotal  uint64
	RequestsFailed uint64
	AnalysesTotal  uint64
	StartTime      time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementAnalyses increments the analyses counter
func IncrementAnalyses() {
	atomic.AddUint64(&globalMetrics.AnalysesTotal, 1)
}

// MetricsMiddleware counts requests and failures
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint64(&globalMetrics.RequestsTotal, 1)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 500 {
			atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
		}
	})
}

// MetricsHandler exposes counters as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"requests_total":  atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_failed": atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"analyses_total":  atomic.LoadUint64(&globalMetrics.AnalysesTotal),
		"uptime_seconds":  int64(time.Since(globalMetrics.StartTime).Seconds()),
	})
}
