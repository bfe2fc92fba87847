package queries

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter selects books. Set fields are AND-combined; the zero value matches everything.
type Filter struct {
	Genre          string
	Author         string
	Title          string
	PublishedAfter *int
	InStock        *bool
}

// BSON renders the filter with keys in a fixed order.
func (f Filter) BSON() bson.D {
	filter := bson.D{}
	if f.Title != "" {
		filter = append(filter, bson.E{Key: "title", Value: f.Title})
	}
	if f.Genre != "" {
		filter = append(filter, bson.E{Key: "genre", Value: f.Genre})
	}
	if f.Author != "" {
		filter = append(filter, bson.E{Key: "author", Value: f.Author})
	}
	if f.InStock != nil {
		filter = append(filter, bson.E{Key: "in_stock", Value: *f.InStock})
	}
	if f.PublishedAfter != nil {
		filter = append(filter, bson.E{Key: "published_year", Value: bson.D{{Key: "$gt", Value: *f.PublishedAfter}}})
	}
	return filter
}

type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// SortSpec is an ordered list of sort keys. An empty spec keeps the store's natural order.
type SortSpec bson.D

var sortFieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseSort reads "price", "-price" or "author,-published_year".
func ParseSort(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var spec SortSpec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		dir := Ascending
		switch {
		case strings.HasPrefix(part, "-"):
			dir = Descending
			part = part[1:]
		case strings.HasPrefix(part, "+"):
			part = part[1:]
		}
		if !sortFieldPattern.MatchString(part) {
			return nil, fmt.Errorf("invalid sort field %q", part)
		}
		spec = append(spec, bson.E{Key: part, Value: int(dir)})
	}
	return spec, nil
}

func SortBy(field string, dir Direction) SortSpec {
	return SortSpec{{Key: field, Value: int(dir)}}
}

// Page restricts a find to a window of its results.
// Skip and Limit of zero mean no skip and no limit.
type Page struct {
	Sort  SortSpec
	Skip  int64
	Limit int64
}

func (p Page) findOptions() *options.FindOptions {
	opts := options.Find()
	if len(p.Sort) > 0 {
		opts.SetSort(bson.D(p.Sort))
	}
	if p.Skip > 0 {
		opts.SetSkip(p.Skip)
	}
	if p.Limit > 0 {
		opts.SetLimit(p.Limit)
	}
	return opts
}
