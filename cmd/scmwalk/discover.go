package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"scmkit/internal/app"
)

func newDiscoverCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Run one discovery pass and print the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			runner, err := app.NewRunner(cfg, opts.logger, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer func() { _ = runner.Close() }()

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report, opts.jsonOutput)
		},
	}
}
