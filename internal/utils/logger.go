package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"plp-bookstore/internal/models"
)

// Logger appends audit entries. A Logger without a collection discards them.
type Logger struct {
	Collection *mongo.Collection
}

func (l *Logger) Log(ctx context.Context, entity, action, performedBy string, data any) error {
	if l == nil || l.Collection == nil {
		return nil
	}
	entry := models.AuditLog{
		Timestamp:   time.Now().UTC(),
		Entity:      entity,
		Action:      action,
		RunID:       RunIDFromContext(ctx),
		PerformedBy: performedBy,
		Data:        data,
	}
	_, err := l.Collection.InsertOne(ctx, entry)
	return err
}
