package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"scmkit/internal/app"
)

func newWatchCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run discovery continuously, re-walking on directory changes",
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

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = runner.Watch(ctx, func(report *app.Report) {
				_ = printReport(cmd.OutOrStdout(), report, opts.jsonOutput)
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}
