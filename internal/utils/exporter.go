package utils

import (
	"context"
	"log/slog"

	"plp-bookstore/internal/models"
)

// ExportData ships audit entries to the structured log. The log handler owns
// delivery, so there is nothing to report back.
func ExportData(ctx context.Context, logger *slog.Logger, logs []models.AuditLog) {
	for _, entry := range logs {
		logger.InfoContext(ctx, "audit",
			slog.String("id", entry.ID.Hex()),
			slog.Time("timestamp", entry.Timestamp),
			slog.String("entity", entry.Entity),
			slog.String("action", entry.Action),
			slog.String("run_id", entry.RunID),
			slog.String("performed_by", entry.PerformedBy),
			slog.Any("data", entry.Data),
		)
	}
}
