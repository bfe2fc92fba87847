package queries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"plp-bookstore/internal/models"
)

// AvgPriceByGenrePipeline groups by genre and averages price. Groups come back sorted by genre.
func AvgPriceByGenrePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$genre"},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// TopAuthorPipeline counts books per author and keeps the largest group.
// Authors sharing the top count are ordered by name so the result is deterministic.
func TopAuthorPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "totalBooks", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "totalBooks", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: 1}},
	}
}

// DecadePipeline labels each book with year - year%10 followed by "s" (1987 -> "1980s")
// and counts books per label.
func DecadePipeline() mongo.Pipeline {
	decadeStart := bson.D{{Key: "$subtract", Value: bson.A{
		"$published_year",
		bson.D{{Key: "$mod", Value: bson.A{"$published_year", 10}}},
	}}}
	label := bson.D{{Key: "$concat", Value: bson.A{
		bson.D{{Key: "$toString", Value: decadeStart}},
		"s",
	}}}

	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: label},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func (q *BookQueries) AveragePriceByGenre(ctx context.Context) ([]models.GenreAvgPrice, error) {
	results := []models.GenreAvgPrice{}
	if err := q.aggregate(ctx, AvgPriceByGenrePipeline(), &results); err != nil {
		return nil, fmt.Errorf("average price by genre: %w", err)
	}
	return results, nil
}

// TopAuthor returns nil when the collection holds no books.
func (q *BookQueries) TopAuthor(ctx context.Context) (*models.AuthorCount, error) {
	var results []models.AuthorCount
	if err := q.aggregate(ctx, TopAuthorPipeline(), &results); err != nil {
		return nil, fmt.Errorf("top author: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (q *BookQueries) CountByDecade(ctx context.Context) ([]models.DecadeCount, error) {
	results := []models.DecadeCount{}
	if err := q.aggregate(ctx, DecadePipeline(), &results); err != nil {
		return nil, fmt.Errorf("count by decade: %w", err)
	}
	return results, nil
}

func (q *BookQueries) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := q.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}
