package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"plp-bookstore/internal/daemon"
	"plp-bookstore/internal/handlers"
	"plp-bookstore/internal/utils"
)

func newServeCmd(connected func(envFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the book queries and reports over HTTP",
		Long: `Serve exposes the battery operations as HTTP routes on $PORT. Price
updates, deletes and index builds need a bearer token from POST /login.
Pending audit entries are exported in the background until shutdown.`,
		Args: cobra.NoArgs,
		RunE: connected(serve),
	}
}

func serve(ctx context.Context, _ *cobra.Command, e *env) error {
	cfg, logger := e.cfg, e.logger
	utils.InitJwtSecret(cfg.JWTSecret)

	authHandler := &handlers.AuthHandler{
		ConfigCreds: handlers.Credentials{
			UserId:       cfg.UserId,
			Username:     cfg.UserName,
			UserPassword: cfg.UserPassword,
		},
		AuditLogger: e.audit,
		Logger:      logger,
	}
	router := handlers.NewRouter(authHandler,
		handlers.NewBookHandler(e.books, e.audit, logger, cfg.ExplainVerbosity),
		&handlers.ReportsHandler{Queries: e.books},
	)

	var exported <-chan struct{}
	if e.audit.Collection != nil {
		exporter := &daemon.LogExporter{Coll: e.audit.Collection, Logger: logger}
		exported = exporter.Start(ctx)
	}

	server := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if exported != nil {
		<-exported
	}
	logger.Info("Server shut down.")
	return nil
}
