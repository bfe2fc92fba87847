package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"plp-bookstore/internal/script"
)

func newRunCmd(connected func(envFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the query battery once and print its report",
		Long: `Run executes the sixteen battery steps in order against the books
collection, stopping at the first failure. The JSON report on stdout holds
every completed step and, if the run stopped early, the failing one.`,
		Args: cobra.NoArgs,
		RunE: connected(runBattery),
	}
}

func runBattery(ctx context.Context, cmd *cobra.Command, e *env) error {
	params, err := script.ParamsFromConfig(e.cfg)
	if err != nil {
		return err
	}

	runner := script.NewRunner(e.books, &e.audit, e.logger, params)
	runner.Timeout = e.cfg.QueryTimeout

	report, runErr := runner.Run(ctx)
	if err := script.WriteReport(cmd.OutOrStdout(), report); err != nil {
		e.logger.Error("writing report failed", slog.Any("error", err))
	}
	return runErr
}
