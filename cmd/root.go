package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"plp-bookstore/configs"
	"plp-bookstore/internal/db"
	"plp-bookstore/internal/queries"
	"plp-bookstore/internal/utils"
)

// env is what a subcommand works with once the connection is up.
type env struct {
	cfg    configs.Config
	logger *slog.Logger
	books  *queries.BookQueries
	audit  utils.Logger
}

type envFunc func(ctx context.Context, cmd *cobra.Command, e *env) error

func newRootCmd() *cobra.Command {
	var (
		cfg    configs.Config
		logger *slog.Logger
	)

	// connected opens the client for the lifetime of one subcommand.
	connected := func(run envFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := db.Connect(ctx, cfg.MongoURI)
			if err != nil {
				logger.Error("database connection failed", slog.Any("error", err))
				return err
			}
			defer func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Warn("disconnect failed", slog.Any("error", err))
				}
			}()

			e := &env{
				cfg:    cfg,
				logger: logger,
				books:  queries.NewBookQueries(db.GetCollection(client, cfg.DBName, cfg.BooksCollection)),
			}
			if cfg.AuditCollection != "" {
				e.audit.Collection = db.GetCollection(client, cfg.DBName, cfg.AuditCollection)
			}

			if err := run(ctx, cmd, e); err != nil {
				logger.Error(cmd.Name()+" failed", slog.Any("error", err), slog.String("kind", string(queries.Classify(err))))
				return err
			}
			return nil
		}
	}

	rootCmd := &cobra.Command{
		Use:   "bookstore",
		Short: "Query battery and HTTP surface over the books collection",
		Long: `bookstore drives a MongoDB books collection through a fixed battery of
finds, writes, aggregations, index builds and a query plan inspection.

Connection, database, collections, pagination window and literal preset are
read from the environment, optionally seeded from a .env file. Without a
subcommand the battery runs once and its report is printed to stdout.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = configs.LoadConfig(); err != nil {
				return err
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
			slog.SetDefault(logger)
			return nil
		},
	}

	runCmd := newRunCmd(connected)
	rootCmd.RunE = runCmd.RunE
	rootCmd.AddCommand(runCmd, newSeedCmd(connected), newServeCmd(connected))
	return rootCmd
}
