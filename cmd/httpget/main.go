// Command httpget downloads the contents of an HTTP URL to stdout or a file.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jongio/httpget/cliout"
	"github.com/jongio/httpget/version"
)

// Set via -ldflags at build time.
var (
	buildVersion = "0.0.0-dev"
	buildDate    = "unknown"
	gitCommit    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := version.New("httpget")
	info.Version = buildVersion
	info.BuildDate = buildDate
	info.GitCommit = gitCommit

	if err := newRootCommand(info).ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			cliout.Error("Terminated by signal")
		} else {
			cliout.Error("%v", err)
		}
		stop()
		os.Exit(1)
	}
}
