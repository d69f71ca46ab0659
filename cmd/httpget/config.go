package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jongio/httpget/fetch"
	"github.com/jongio/httpget/logutil"
	"github.com/spf13/pflag"
)

// Environment variables read before flags. Explicit flags take precedence.
const (
	EnvTimeout = "HTTPGET_TIMEOUT"
	EnvRetries = "HTTPGET_RETRIES"
)

// Config holds the settings shared by all httpget commands.
type Config struct {
	Debug           bool
	StructuredLogs  bool
	Format          string
	Timeout         time.Duration
	Retries         int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration
	RateLimit       int
	FollowRedirects bool
	MetricsFile     string
	Notify          bool
	Progress        bool
}

func defaultConfig() *Config {
	return &Config{
		Format:  "default",
		Timeout: fetch.DefaultTimeout,
		Retries: fetch.DefaultRetries,
	}
}

// applyEnv overrides defaults from the environment. HTTPGET_DEBUG is handled
// by logutil itself.
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRetries, v, err)
		}
		c.Retries = n
	}
	return nil
}

func (c *Config) bindPersistentFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging (also "+logutil.EnvDebug+"=true)")
	fs.BoolVar(&c.StructuredLogs, "structured-logs", c.StructuredLogs, "Write logs as JSON")
	fs.StringVar(&c.Format, "format", c.Format, "Output format for reports: default, json or yaml")
}

func (c *Config) bindFetchFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum time for each request attempt (env "+EnvTimeout+")")
	fs.IntVar(&c.Retries, "retries", c.Retries, "Retries after a connection error or 5xx reply (env "+EnvRetries+")")
	fs.DurationVar(&c.RetryWaitMin, "retry-wait-min", c.RetryWaitMin, "Shortest wait between retries (0 = 1s)")
	fs.DurationVar(&c.RetryWaitMax, "retry-wait-max", c.RetryWaitMax, "Longest wait between retries (0 = 30s)")
	fs.IntVar(&c.BreakerFailures, "breaker-failures", c.BreakerFailures, "Stop retrying a host after this many consecutive failed attempts (0 = off)")
	fs.DurationVar(&c.BreakerTimeout, "breaker-timeout", c.BreakerTimeout, "How long a tripped host stays blocked (0 = 30s)")
	fs.IntVar(&c.RateLimit, "limit-rate", c.RateLimit, "Limit the download to this many bytes per second (0 = unlimited)")
	fs.BoolVarP(&c.FollowRedirects, "location", "L", c.FollowRedirects, "Follow redirects")
	fs.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "Write Prometheus metrics in text format to this file when done")
	fs.BoolVar(&c.Notify, "notify", c.Notify, "Show a desktop notification when the download finishes")
	fs.BoolVar(&c.Progress, "progress", c.Progress, "Show a progress bar on stderr (default when saving to a file on a terminal)")
}

// Validate rejects settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", c.Retries))
	}
	if c.RetryWaitMin < 0 || c.RetryWaitMax < 0 {
		errs = append(errs, fmt.Errorf("retry waits must not be negative, got %s and %s", c.RetryWaitMin, c.RetryWaitMax))
	}
	if c.RetryWaitMin > 0 && c.RetryWaitMax > 0 && c.RetryWaitMin > c.RetryWaitMax {
		errs = append(errs, fmt.Errorf("retry-wait-min %s exceeds retry-wait-max %s", c.RetryWaitMin, c.RetryWaitMax))
	}
	if c.BreakerFailures < 0 {
		errs = append(errs, fmt.Errorf("breaker-failures must not be negative, got %d", c.BreakerFailures))
	}
	if c.BreakerTimeout < 0 {
		errs = append(errs, fmt.Errorf("breaker-timeout must not be negative, got %s", c.BreakerTimeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("limit-rate must not be negative, got %d", c.RateLimit))
	}
	return errors.Join(errs...)
}

func (c *Config) fetchOptions(metrics *fetch.Metrics, log *logutil.ComponentLogger) fetch.Options {
	return fetch.Options{
		Timeout:         c.Timeout,
		Retries:         c.Retries,
		RetryWaitMin:    c.RetryWaitMin,
		RetryWaitMax:    c.RetryWaitMax,
		BreakerFailures: c.BreakerFailures,
		BreakerTimeout:  c.BreakerTimeout,
		RateLimit:       c.RateLimit,
		FollowRedirects: c.FollowRedirects,
		Metrics:         metrics,
		Logger:          log,
	}
}
