package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jongio/httpget/logutil"
	"github.com/sony/gobreaker"
)

// errServerReply marks a 5xx reply as a failure for the circuit breaker.
var errServerReply = errors.New("server error reply")

// breakerSet holds one circuit breaker per host.
type breakerSet struct {
	failures uint32
	timeout  time.Duration
	metrics  *Metrics
	log      *logutil.ComponentLogger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func newBreakerSet(failures int, timeout time.Duration, metrics *Metrics, log *logutil.ComponentLogger) *breakerSet {
	if timeout <= 0 {
		timeout = DefaultBreakerTimeout
	}
	return &breakerSet{
		failures: uint32(failures),
		timeout:  timeout,
		metrics:  metrics,
		log:      log,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (s *breakerSet) get(host string) *gobreaker.CircuitBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if breaker, ok := s.breakers[host]; ok {
		return breaker
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     s.timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn("circuit breaker state changed", "host", name, "from", from.String(), "to", to.String())
			s.metrics.recordBreakerState(name, to)
		},
	})
	s.breakers[host] = breaker
	return breaker
}

// breakerTransport runs every attempt, retries included, through the
// breaker of the request's host. Transport errors and 5xx replies count as
// failures.
type breakerTransport struct {
	next     http.RoundTripper
	breakers *breakerSet
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	host := req.URL.Host
	out, err := t.breakers.get(host).Execute(func() (interface{}, error) {
		resp, err := t.next.RoundTrip(req)
		if err == nil && resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerReply
		}
		return resp, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w for %s", ErrCircuitOpen, host)
	}
	resp, _ := out.(*http.Response)
	if errors.Is(err, errServerReply) {
		err = nil
	}
	return resp, err
}

// retryPolicy is retryablehttp's default policy, except that an open
// breaker ends the retries.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if errors.Is(err, ErrCircuitOpen) {
		return false, err
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}
