package main

import (
	"github.com/jongio/httpget/cliout"
	"github.com/jongio/httpget/logutil"
	"github.com/jongio/httpget/version"
	"github.com/spf13/cobra"
)

func newRootCommand(info *version.Info) *cobra.Command {
	cfg := defaultConfig()
	envErr := cfg.applyEnv()

	cmd := &cobra.Command{
		Use:   "httpget URL [output file]",
		Short: "Simple HTTP client to download URL contents",
		Long: `httpget - simple HTTP client to download URL contents

URL - HTTP urls are accepted as targets. Proxy is not supported.
output file - Optional file name to store URL contents in. Will use stdout if not specified.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceErrors: true,
		Version:       info.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid by now; later failures are not usage errors.
			cmd.SilenceUsage = true
			if envErr != nil {
				return envErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logutil.SetupLogger(cfg.Debug, cfg.StructuredLogs)
			return cliout.SetFormat(cfg.Format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var output string
			if len(args) == 2 {
				output = args[1]
			}
			return runGet(cmd.Context(), cfg, args[0], output, cmd.OutOrStdout())
		},
	}

	cfg.bindPersistentFlags(cmd.PersistentFlags())
	cfg.bindFetchFlags(cmd.Flags())

	cmd.AddCommand(
		newParseCommand(),
		version.NewCommand(info),
	)
	return cmd
}
