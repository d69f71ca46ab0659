package fetch

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// Metrics counts requests and transferred bytes. A nil *Metrics records
// nothing.
type Metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	bytes        prometheus.Counter
	breakerState *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpget_requests_total",
				Help: "HTTP GET requests by result",
			},
			[]string{"host", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "httpget_request_duration_seconds",
				Help:    "Time until the reply headers were received, retries included",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"host"},
		),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpget_body_bytes_total",
			Help: "Response body bytes written to the output",
		}),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "httpget_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"host"},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.bytes, m.breakerState} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordRequest(host string, statusCode int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(host).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(host, resultLabel(statusCode, err)).Inc()
}

func (m *Metrics) recordBytes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytes.Add(float64(n))
}

func (m *Metrics) recordBreakerState(host string, state gobreaker.State) {
	if m == nil {
		return
	}
	var v float64
	switch state {
	case gobreaker.StateClosed:
		v = 0
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	m.breakerState.WithLabelValues(host).Set(v)
}

// resultLabel is the status code when a reply arrived, otherwise a short
// error class.
func resultLabel(statusCode int, err error) string {
	switch {
	case statusCode > 0:
		return strconv.Itoa(statusCode)
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case err != nil:
		return "error"
	default:
		return "unknown"
	}
}
