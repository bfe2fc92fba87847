package queries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTitleIndex asks for an ascending index on title. Creating an
// equivalent index again is a no-op on the server and returns the same name.
func (q *BookQueries) CreateTitleIndex(ctx context.Context) (string, error) {
	return q.createIndex(ctx, bson.D{{Key: "title", Value: 1}})
}

func (q *BookQueries) CreateAuthorYearIndex(ctx context.Context) (string, error) {
	return q.createIndex(ctx, bson.D{
		{Key: "author", Value: 1},
		{Key: "published_year", Value: 1},
	})
}

func (q *BookQueries) createIndex(ctx context.Context, keys bson.D) (string, error) {
	name, err := q.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
	if err != nil {
		return "", fmt.Errorf("create index %v: %w", keys, err)
	}
	return name, nil
}

// ExplainByTitle returns the server's plan document for find({title}).
// verbosity is one of queryPlanner, executionStats or allPlansExecution.
func (q *BookQueries) ExplainByTitle(ctx context.Context, title, verbosity string) (bson.M, error) {
	command := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: q.Collection.Name()},
			{Key: "filter", Value: Filter{Title: title}.BSON()},
		}},
		{Key: "verbosity", Value: verbosity},
	}

	var plan bson.M
	if err := q.Collection.Database().RunCommand(ctx, command).Decode(&plan); err != nil {
		return nil, fmt.Errorf("explain find by title %q: %w", title, err)
	}
	return plan, nil
}
