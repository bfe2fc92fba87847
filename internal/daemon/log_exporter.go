package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"plp-bookstore/internal/models"
	"plp-bookstore/internal/utils"
)

const DefaultExportInterval = 30 * time.Second

// LogExporter periodically ships audit entries that have not been exported yet.
type LogExporter struct {
	Coll     *mongo.Collection
	Logger   *slog.Logger
	Interval time.Duration
}

// Start runs the export loop in the background until ctx is cancelled.
// The returned channel is closed once the loop has exited.
func (l *LogExporter) Start(ctx context.Context) <-chan struct{} {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultExportInterval
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if _, err := l.ExportOnce(ctx); err != nil && ctx.Err() == nil {
				l.Logger.ErrorContext(ctx, "audit export failed", slog.Any("error", err))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return done
}

// ExportOnce exports the pending entries and marks them exported.
func (l *LogExporter) ExportOnce(ctx context.Context) (int, error) {
	cursor, err := l.Coll.Find(ctx, bson.M{"exported": false})
	if err != nil {
		return 0, fmt.Errorf("find pending audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []models.AuditLog
	if err = cursor.All(ctx, &logs); err != nil {
		return 0, fmt.Errorf("decode audit logs: %w", err)
	}
	if len(logs) == 0 {
		return 0, nil
	}

	utils.ExportData(ctx, l.Logger, logs)

	ids := make([]primitive.ObjectID, 0, len(logs))
	for _, entry := range logs {
		ids = append(ids, entry.ID)
	}
	_, err = l.Coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"exported": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark audit logs exported: %w", err)
	}
	return len(logs), nil
}
