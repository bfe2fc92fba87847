// Package queries holds every read, write, aggregation and index operation
// run against the books collection. Each operation returns its own result
// type; a write that matches nothing is reported through its counts, never
// as an error.
package queries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"plp-bookstore/internal/models"
)

type BookQueries struct {
	Collection *mongo.Collection
}

func NewBookQueries(coll *mongo.Collection) *BookQueries {
	return &BookQueries{Collection: coll}
}

type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Deleted int64 `json:"deletedCount"`
}

// Find returns every book matching filter within page. No match yields an empty slice.
func (q *BookQueries) Find(ctx context.Context, filter Filter, page Page) ([]models.Book, error) {
	cursor, err := q.Collection.Find(ctx, filter.BSON(), page.findOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err = cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (q *BookQueries) ByGenre(ctx context.Context, genre string) ([]models.Book, error) {
	books, err := q.Find(ctx, Filter{Genre: genre}, Page{})
	if err != nil {
		return nil, fmt.Errorf("find by genre %q: %w", genre, err)
	}
	return books, nil
}

// PublishedAfter excludes books published in year itself.
func (q *BookQueries) PublishedAfter(ctx context.Context, year int) ([]models.Book, error) {
	books, err := q.Find(ctx, Filter{PublishedAfter: &year}, Page{})
	if err != nil {
		return nil, fmt.Errorf("find published after %d: %w", year, err)
	}
	return books, nil
}

func (q *BookQueries) ByAuthor(ctx context.Context, author string) ([]models.Book, error) {
	books, err := q.Find(ctx, Filter{Author: author}, Page{})
	if err != nil {
		return nil, fmt.Errorf("find by author %q: %w", author, err)
	}
	return books, nil
}

func (q *BookQueries) InStockPublishedAfter(ctx context.Context, year int) ([]models.Book, error) {
	inStock := true
	books, err := q.Find(ctx, Filter{InStock: &inStock, PublishedAfter: &year}, Page{})
	if err != nil {
		return nil, fmt.Errorf("find in stock published after %d: %w", year, err)
	}
	return books, nil
}

// Summaries projects every book onto {title, author, price} without _id.
func (q *BookQueries) Summaries(ctx context.Context) ([]models.BookSummary, error) {
	projection := bson.D{
		{Key: "title", Value: 1},
		{Key: "author", Value: 1},
		{Key: "price", Value: 1},
		{Key: "_id", Value: 0},
	}
	cursor, err := q.Collection.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("find summaries: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []models.BookSummary{}
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode summaries: %w", err)
	}
	return summaries, nil
}

func (q *BookQueries) SortedByPrice(ctx context.Context, dir Direction) ([]models.Book, error) {
	books, err := q.Find(ctx, Filter{}, Page{Sort: SortBy("price", dir)})
	if err != nil {
		return nil, fmt.Errorf("find sorted by price: %w", err)
	}
	return books, nil
}

// Paginate returns at most page.Limit books after skipping page.Skip.
// Without page.Sort the window follows the store's natural order.
func (q *BookQueries) Paginate(ctx context.Context, page Page) ([]models.Book, error) {
	books, err := q.Find(ctx, Filter{}, page)
	if err != nil {
		return nil, fmt.Errorf("paginate skip=%d limit=%d: %w", page.Skip, page.Limit, err)
	}
	return books, nil
}

func (q *BookQueries) UpdatePrice(ctx context.Context, title string, price float64) (UpdateResult, error) {
	result, err := q.Collection.UpdateOne(ctx,
		bson.M{"title": title},
		bson.M{"$set": bson.M{"price": price}},
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update price of %q: %w", title, err)
	}
	return UpdateResult{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

func (q *BookQueries) DeleteByTitle(ctx context.Context, title string) (DeleteResult, error) {
	result, err := q.Collection.DeleteOne(ctx, bson.M{"title": title})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete %q: %w", title, err)
	}
	return DeleteResult{Deleted: result.DeletedCount}, nil
}

// Seed inserts books only when the collection is empty and reports how many were written.
func (q *BookQueries) Seed(ctx context.Context, books []models.Book) (int, error) {
	count, err := q.Collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	if count > 0 || len(books) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(books))
	for i := range books {
		docs[i] = books[i]
	}
	result, err := q.Collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert books: %w", err)
	}
	return len(result.InsertedIDs), nil
}
