package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "probimport",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "probimport",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	markdownParses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "probimport",
		Name:      "markdown_parses_total",
		Help:      "Markdown documents handled by the parse endpoint, by outcome",
	}, []string{"outcome"})

	parsedTestCases = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "probimport",
		Name:      "parsed_test_cases",
		Help:      "Number of test cases found per parsed document",
		Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
	})

	importSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "probimport",
		Name:      "import_sessions_total",
		Help:      "Import session steps by step and outcome",
	}, []string{"step", "outcome"})

	syncedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "probimport",
		Name:      "synced_rows_total",
		Help:      "Test case rows handled by the row synchronizer, by result",
	}, []string{"result"})
)

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// ObserveParse records one parse endpoint outcome ("ok", "invalid", "error").
func ObserveParse(outcome string, testCases int) {
	markdownParses.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		parsedTestCases.Observe(float64(testCases))
	}
}

// ObserveSync records the row counts of one synchronizer run.
func ObserveSync(filled, dropped, ambiguous int) {
	syncedRows.WithLabelValues("filled").Add(float64(filled))
	syncedRows.WithLabelValues("dropped").Add(float64(dropped))
	syncedRows.WithLabelValues("ambiguous").Add(float64(ambiguous))
}

// ObserveImport records one import controller step ("parse", "apply") and its
// outcome.
func ObserveImport(step, outcome string) {
	importSessions.WithLabelValues(step, outcome).Inc()
}
