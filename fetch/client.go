package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jongio/httpget/logutil"
)

const (
	// DefaultTimeout bounds a whole request including the body transfer.
	DefaultTimeout = 5 * time.Minute
	// DefaultRetries is the number of retries after the first attempt.
	DefaultRetries = 2
	// DefaultBreakerTimeout is how long an open breaker waits before letting
	// a trial request through.
	DefaultBreakerTimeout = 30 * time.Second

	httpDialTimeout           = 10 * time.Second
	httpKeepAlive             = 30 * time.Second
	httpResponseHeaderTimeout = 30 * time.Second
	httpIdleConnTimeout       = 90 * time.Second
)

// Options configures a Client.
type Options struct {
	// Timeout bounds each attempt, body included. Zero means no limit.
	Timeout time.Duration
	// Retries is how many times a failed attempt is repeated. Connection
	// errors and 5xx replies are retried; other replies are not.
	Retries int
	// RetryWaitMin and RetryWaitMax bound the backoff between attempts.
	// Zero keeps the retryablehttp defaults.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit caps the body transfer in bytes per second. Zero is unlimited.
	RateLimit int
	// FollowRedirects follows 3xx replies instead of failing on them.
	FollowRedirects bool
	// BreakerFailures opens a per-host circuit breaker after this many
	// consecutive failed attempts, retries included. Zero disables the
	// breaker.
	BreakerFailures int
	// BreakerTimeout is how long the breaker stays open. Zero means
	// DefaultBreakerTimeout.
	BreakerTimeout time.Duration
	// Metrics receives request and transfer counts. Nil records nothing.
	Metrics *Metrics
	// Logger receives request diagnostics. Nil uses a "fetch" component logger.
	Logger *logutil.ComponentLogger
}

// Client performs HTTP GET requests.
type Client struct {
	http      *http.Client
	rateLimit int
	metrics   *Metrics
	log       *logutil.ComponentLogger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logutil.NewLogger("fetch")
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   httpDialTimeout,
			KeepAlive: httpKeepAlive,
		}).DialContext,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		IdleConnTimeout:       httpIdleConnTimeout,
	}

	var roundTripper http.RoundTripper = transport
	if opts.BreakerFailures > 0 {
		roundTripper = &breakerTransport{
			next:     transport,
			breakers: newBreakerSet(opts.BreakerFailures, opts.BreakerTimeout, opts.Metrics, log),
		}
	}

	httpClient := &http.Client{
		Timeout:   opts.Timeout,
		Transport: roundTripper,
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = opts.Retries
	if opts.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = opts.RetryWaitMax
	}
	retryClient.Logger = log
	retryClient.CheckRetry = retryPolicy
	// Hand back the last reply after retries run out so its status is reported.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	// StandardClient wraps retryClient in a fresh http.Client, so the redirect
	// policy has to be set on both layers.
	standard := retryClient.StandardClient()
	if !opts.FollowRedirects {
		httpClient.CheckRedirect = stopRedirects
		standard.CheckRedirect = stopRedirects
	}

	return &Client{
		http:      standard,
		rateLimit: opts.RateLimit,
		metrics:   opts.Metrics,
		log:       log,
	}
}

func stopRedirects(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}

// Get sends a GET request for target and returns the reply when its status
// is 200. Any other status yields an error wrapping ErrStatus.
func (c *Client) Get(ctx context.Context, target string) (*Response, error) {
	log := c.log.WithOperation("get").WithFields("target", target)

	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			log.Info("connected", "remote", info.Conn.RemoteAddr().String(), "reused", info.Reused)
		},
	}
	ctx = httptrace.WithClientTrace(ctx, trace)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request target %s: %w", target, err)
	}

	log.Debug("sending request")
	start := time.Now()
	resp, err := c.http.Do(req)
	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	c.metrics.recordRequest(req.URL.Host, statusCode, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}

	statusLine := resp.Proto + " " + resp.Status
	log.Info("reply received", "status", statusLine)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	return &Response{
		StatusLine:    statusLine,
		StatusCode:    resp.StatusCode,
		ContentLength: resp.ContentLength,
		Header:        resp.Header,
		body:          resp.Body,
		rateLimit:     c.rateLimit,
		metrics:       c.metrics,
		log:           log,
	}, nil
}
