package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	engineRequestsTotal  *prometheus.CounterVec
	engineDuration       *prometheus.HistogramVec
	relevanceScore       *prometheus.HistogramVec
	extractedChars       *prometheus.HistogramVec
	recommendationsCount *prometheus.HistogramVec
	downloadsTotal       *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lrhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lrhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lrhub",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	engineRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lrhub",
			Subsystem: "engine",
			Name:      "requests_total",
			Help:      "Total document engine operations by outcome.",
		},
		[]string{"service", "operation", "status"},
	)
	engineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lrhub",
			Subsystem: "engine",
			Name:      "duration_seconds",
			Help:      "Document engine operation duration in seconds, fetch included.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"service", "operation"},
	)
	relevanceScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lrhub",
			Subsystem: "engine",
			Name:      "relevance_score",
			Help:      "Distribution of relevance scores returned by analyze.",
			Buckets:   []float64{0, 5, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"service"},
	)
	extractedChars := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lrhub",
			Subsystem: "engine",
			Name:      "extracted_chars",
			Help:      "Characters of plain text extracted per fetched document.",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
		},
		[]string{"service", "operation"},
	)
	recommendationsCount := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lrhub",
			Subsystem: "engine",
			Name:      "recommendations",
			Help:      "Catalog items returned per recommendation query.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10, 20},
		},
		[]string{"service"},
	)
	downloadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lrhub",
			Subsystem: "catalog",
			Name:      "downloads_total",
			Help:      "Total tracked downloads by document kind.",
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		engineRequestsTotal,
		engineDuration,
		relevanceScore,
		extractedChars,
		recommendationsCount,
		downloadsTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		engineRequestsTotal:  engineRequestsTotal,
		engineDuration:       engineDuration,
		relevanceScore:       relevanceScore,
		extractedChars:       extractedChars,
		recommendationsCount: recommendationsCount,
		downloadsTotal:       downloadsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses document ids so label cardinality stays bounded.
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) >= 3 && (parts[0] == "analyze" || parts[0] == "download"):
		return "/" + parts[0] + "/" + parts[1] + "/{id}/"
	case len(parts) >= 4 && parts[0] == "pdf" && parts[3] == "summarize":
		return "/pdf/" + parts[1] + "/{id}/summarize/"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordEngineOperation(service, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.engineRequestsTotal.WithLabelValues(service, operation, status).Inc()
	m.engineDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordRelevanceScore(service string, score float64) {
	m.relevanceScore.WithLabelValues(service).Observe(score)
}

func (m *HTTPServerMetrics) RecordExtractedChars(service, operation string, chars int) {
	if chars < 0 {
		return
	}
	m.extractedChars.WithLabelValues(service, operation).Observe(float64(chars))
}

func (m *HTTPServerMetrics) RecordRecommendations(service string, count int) {
	m.recommendationsCount.WithLabelValues(service).Observe(float64(count))
}

func (m *HTTPServerMetrics) RecordDownload(service, kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.downloadsTotal.WithLabelValues(service, kind).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
