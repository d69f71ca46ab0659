package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jongio/httpget/cliout"
	"github.com/jongio/httpget/fetch"
	"github.com/jongio/httpget/logutil"
	"github.com/jongio/httpget/notify"
	"github.com/jongio/httpget/progress"
	"github.com/jongio/httpget/urlparse"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

// Replaced in tests.
var (
	newNotifier              = notify.New
	progressOutput io.Writer = os.Stderr
)

// runGet downloads rawURL into outputPath, or into stdout when outputPath is
// empty. The output file is only created once the server has replied 200.
func runGet(ctx context.Context, cfg *Config, rawURL, outputPath string, stdout io.Writer) (err error) {
	parser, err := urlparse.NewParser()
	if err != nil {
		return fmt.Errorf("could not initialize URL parser: %w", err)
	}
	defer parser.Close()

	u, err := parser.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("could not parse URL '%s': %w", rawURL, err)
	}
	defer u.Release()

	target, err := fetch.Target(u)
	if err != nil {
		return err
	}

	var metrics *fetch.Metrics
	if cfg.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		if metrics, err = fetch.NewMetrics(reg); err != nil {
			return fmt.Errorf("could not register metrics: %w", err)
		}
		defer func() {
			if writeErr := prometheus.WriteToTextfile(cfg.MetricsFile, reg); writeErr != nil {
				err = errors.Join(err, fmt.Errorf("could not write metrics: %w", writeErr))
			}
		}()
	}

	log := logutil.NewLogger("httpget").WithFields("host", *u.Host)
	client := fetch.NewClient(cfg.fetchOptions(metrics, log))

	resp, err := client.Get(ctx, target)
	if err != nil {
		return err
	}
	defer resp.Close()

	out, closeOut, err := openOutput(outputPath, stdout)
	if err != nil {
		return err
	}

	var bar *progress.Bar
	if cfg.Progress || (outputPath != "" && isTerminal(progressOutput)) {
		desc := filepath.Base(outputPath)
		if outputPath == "" {
			desc = *u.Host
		}
		bar = progress.NewBar(progressOutput, desc, resp.ContentLength)
		out = io.MultiWriter(out, bar)
		bar.Start()
	}

	result, err := resp.Save(ctx, out)
	if closeErr := closeOut(); err == nil {
		err = closeErr
	}
	if bar != nil {
		if err != nil {
			bar.Fail(err.Error())
		} else {
			bar.Complete()
		}
	}
	if err != nil {
		return err
	}

	log.Info("download complete", "bytes", result.Bytes, "contentType", result.ContentType)
	if outputPath != "" {
		cliout.Success("Saved %d bytes to %s", result.Bytes, outputPath)
	}

	if cfg.Notify {
		n := notify.Notification{
			Title:   "Download complete",
			Message: fmt.Sprintf("%s (%d bytes)", rawURL, result.Bytes),
		}
		if notifyErr := newNotifier(notify.DefaultConfig()).Send(ctx, n); notifyErr != nil {
			log.Warn("notification failed", "error", notifyErr)
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open output file: %w", err)
	}
	return f, f.Close, nil
}
