package main

import (
	"fmt"

	"github.com/jongio/httpget/cliout"
	"github.com/jongio/httpget/urlparse"
	"github.com/spf13/cobra"
)

// parseReport is the structured form of one parse result.
type parseReport struct {
	Input string        `json:"input" yaml:"input"`
	URL   *urlparse.URL `json:"url,omitempty" yaml:"url,omitempty"`
	Error string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse URL...",
		Short: "Print the components of each URL without fetching it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args)
		},
	}
}

func runParse(inputs []string) error {
	parser, err := urlparse.NewParser()
	if err != nil {
		return fmt.Errorf("could not initialize URL parser: %w", err)
	}
	defer parser.Close()

	reports := make([]parseReport, 0, len(inputs))
	failed := 0
	for _, input := range inputs {
		report := parseReport{Input: input}
		if u, err := parser.Parse(input); err != nil {
			report.Error = err.Error()
			failed++
		} else {
			report.URL = u
		}
		reports = append(reports, report)
	}

	if err := cliout.Print(reports, func() { printReports(reports) }); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs could not be parsed", failed, len(inputs))
	}
	return nil
}

func printReports(reports []parseReport) {
	for _, r := range reports {
		cliout.Header(r.Input)
		if r.URL == nil {
			cliout.Error("Could not parse URL '%s': %s", r.Input, r.Error)
			continue
		}
		for _, c := range urlparse.Components() {
			cliout.Label(c.String(), r.URL.Get(c, "(absent)"))
		}
	}
}
