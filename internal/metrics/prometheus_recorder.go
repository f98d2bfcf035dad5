package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookmarker"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	httpRequests *prom.CounterVec
	httpDuration *prom.HistogramVec
	rateLimited  *prom.CounterVec
	pollDuration prom.Histogram
	pollResults  *prom.CounterVec
	apiConnected prom.Gauge
	transitions  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "route"}),
		rateLimited: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"}),
		pollDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "health_poll_duration_seconds",
			Help:      "Duration of health endpoint polls",
			Buckets:   prom.DefBuckets,
		}),
		pollResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "health_poll_results_total",
			Help:      "Health poll outcomes",
		}, []string{"result"}),
		apiConnected: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "api_connected",
			Help:      "1 when the last health poll succeeded, 0 otherwise",
		}),
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "api_connection_transitions_total",
			Help:      "Connection state changes observed by the poller",
		}, []string{"state"}),
	}
	reg.MustRegister(pr.httpRequests, pr.httpDuration, pr.rateLimited,
		pr.pollDuration, pr.pollResults, pr.apiConnected, pr.transitions)
	return pr
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRateLimited(route string) {
	if p == nil {
		return
	}
	p.rateLimited.WithLabelValues(route).Inc()
}

func (p *PrometheusRecorder) ObservePollDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.pollDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPollResult(result PollLabel) {
	if p == nil {
		return
	}
	p.pollResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetAPIConnected(connected bool) {
	if p == nil {
		return
	}
	p.apiConnected.Set(boolGauge(connected))
}

func (p *PrometheusRecorder) IncTransition(connected bool) {
	if p == nil {
		return
	}
	state := "disconnected"
	if connected {
		state = "connected"
	}
	p.transitions.WithLabelValues(state).Inc()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
