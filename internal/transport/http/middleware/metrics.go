package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetricsOptions configures the HTTP metrics middleware.
type HTTPMetricsOptions struct {
	Registerer prometheus.Registerer
	Namespace  string
	Buckets    []float64
}

// HTTPMetrics exposes Prometheus collectors for request instrumentation.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics constructs the request counter, latency histogram, and
// in-flight gauge and registers them with the provided registerer.
// Re-registration of an identical collector is tolerated so multiple
// engines in one process (tests, mostly) can share collectors.
func NewHTTPMetrics(opts HTTPMetricsOptions) (*HTTPMetrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "reviews"
	}
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	labels := []string{"method", "route", "status"}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests partitioned by method, route, and status code.",
	}, labels)

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latencies in seconds.",
		Buckets:   buckets,
	}, labels)

	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})

	registered, err := registerCollector(reg, requests)
	if err != nil {
		return nil, err
	}
	requests, ok := registered.(*prometheus.CounterVec)
	if !ok {
		return nil, fmt.Errorf("existing requests collector has unexpected type %T", registered)
	}

	registered, err = registerCollector(reg, duration)
	if err != nil {
		return nil, err
	}
	duration, ok = registered.(*prometheus.HistogramVec)
	if !ok {
		return nil, fmt.Errorf("existing duration collector has unexpected type %T", registered)
	}

	registered, err = registerCollector(reg, inFlight)
	if err != nil {
		return nil, err
	}
	inFlight, ok = registered.(prometheus.Gauge)
	if !ok {
		return nil, fmt.Errorf("existing inflight collector has unexpected type %T", registered)
	}

	return &HTTPMetrics{requests: requests, duration: duration, inFlight: inFlight}, nil
}

func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) (prometheus.Collector, error) {
	if err := reg.Register(collector); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register collector: %w", err)
		}
		return already.ExistingCollector, nil
	}
	return collector, nil
}

// Handler returns a Gin middleware that records the HTTP metrics.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.requests.With(labels).Inc()
		m.duration.With(labels).Observe(time.Since(start).Seconds())
	}
}
