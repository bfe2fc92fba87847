package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"plp-bookstore/internal/constants"
	"plp-bookstore/internal/models"
)

func newSeedCmd(connected func(envFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample catalogue into an empty books collection",
		Long: `Seed inserts the sample books the battery expects. A collection that
already holds documents is left untouched.`,
		Args: cobra.NoArgs,
		RunE: connected(seed),
	}
}

func seed(ctx context.Context, _ *cobra.Command, e *env) error {
	n, err := e.books.Seed(ctx, models.SampleBooks())
	if err != nil {
		return err
	}
	if n == 0 {
		e.logger.Info("collection already populated, nothing seeded")
		return nil
	}
	if err := e.audit.Log(ctx, models.BookEntity, constants.Seed, constants.PerformedBySystem, map[string]int{"inserted": n}); err != nil {
		e.logger.Warn("audit log failed", slog.Any("error", err))
	}
	e.logger.Info("seeded books", slog.Int("inserted", n))
	return nil
}
