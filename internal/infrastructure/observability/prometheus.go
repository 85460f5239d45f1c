package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the salon's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "salon",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	appointmentsBooked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "appointments",
			Name:      "booked_total",
			Help:      "Appointments created, by specialist.",
		},
		[]string{"specialist"},
	)

	appointmentsApproved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "appointments",
			Name:      "approved_total",
			Help:      "Appointments approved by an admin.",
		},
	)

	ordersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Orders checked out, by whether a payment session was opened.",
		},
		[]string{"payment_session"},
	)

	orderRevenue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "orders",
			Name:      "total_amount",
			Help:      "Sum of order totals including tax.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		appointmentsBooked,
		appointmentsApproved,
		ordersCreated,
		orderRevenue,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// PrometheusHandler exposes the registry for scraping
func PrometheusHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// CountAppointmentBooked increments the booking counter for a specialist
func CountAppointmentBooked(specialist string) {
	appointmentsBooked.WithLabelValues(specialist).Inc()
}

// CountAppointmentApproved increments the approval counter
func CountAppointmentApproved() {
	appointmentsApproved.Inc()
}

// CountOrderCreated records a checkout and its total
func CountOrderCreated(total float64, withPayment bool) {
	ordersCreated.WithLabelValues(strconv.FormatBool(withPayment)).Inc()
	if total > 0 {
		orderRevenue.Add(total)
	}
}

// InstrumentHandler wraps next with HTTP request metrics.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := RouteLabel(r.URL.Path)
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RouteLabel keeps the resource segment of a path so ids do not explode label cardinality.
// "/Product/42" and "/Product" both map to "/Product"; "/auth/login" stays whole.
func RouteLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "/"
	}
	if parts[0] == "auth" && len(parts) > 1 {
		return "/auth/" + parts[1]
	}
	return "/" + parts[0]
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
