package models

// Book is one catalogue document. ID holds whatever _id the collection
// carries: a primitive.ObjectID for driver-inserted books, but imported data
// may use strings or numbers. A nil ID lets the server generate one.
type Book struct {
	ID            any     `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string  `json:"title" bson:"title"`
	Author        string  `json:"author" bson:"author"`
	Genre         string  `json:"genre" bson:"genre"`
	PublishedYear int     `json:"published_year" bson:"published_year"`
	Price         float64 `json:"price" bson:"price"`
	InStock       bool    `json:"in_stock" bson:"in_stock"`
}

// BookSummary is the projected shape {title, author, price} with _id excluded.
type BookSummary struct {
	Title  string  `json:"title" bson:"title"`
	Author string  `json:"author" bson:"author"`
	Price  float64 `json:"price" bson:"price"`
}

// GenreAvgPrice is nil-priced when every book of the genre lacks a numeric price.
type GenreAvgPrice struct {
	Genre    string   `json:"genre" bson:"_id"`
	AvgPrice *float64 `json:"avgPrice" bson:"avgPrice"`
}

type AuthorCount struct {
	Author     string `json:"author" bson:"_id"`
	TotalBooks int64  `json:"totalBooks" bson:"totalBooks"`
}

// DecadeCount groups books under labels such as "1980s".
type DecadeCount struct {
	Decade string `json:"decade" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

const (
	BookEntity    = "book"
	IndexEntity   = "index"
	SessionEntity = "session"
)

// SampleBooks is the catalogue inserted by the seed command.
func SampleBooks() []Book {
	return []Book{
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction", PublishedYear: 1960, Price: 12.99, InStock: true},
		{Title: "1984", Author: "George Orwell", Genre: "Dystopian", PublishedYear: 1949, Price: 10.99, InStock: true},
		{Title: "Animal Farm", Author: "George Orwell", Genre: "Political Satire", PublishedYear: 1945, Price: 8.5, InStock: false},
		{Title: "Things Fall Apart", Author: "Chinua Achebe", Genre: "Fiction", PublishedYear: 1958, Price: 11.5, InStock: true},
		{Title: "The Alchemist", Author: "Paulo Coelho", Genre: "Fiction", PublishedYear: 1988, Price: 10.5, InStock: true},
		{Title: "Brida", Author: "Paulo Coelho", Genre: "Fiction", PublishedYear: 1990, Price: 9.99, InStock: false},
		{Title: "Clean Code", Author: "Robert C. Martin", Genre: "Programming", PublishedYear: 2008, Price: 35, InStock: true},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Genre: "Programming", PublishedYear: 1999, Price: 42, InStock: true},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Genre: "Programming", PublishedYear: 2017, Price: 45, InStock: true},
		{Title: "The Go Programming Language", Author: "Alan Donovan", Genre: "Programming", PublishedYear: 2015, Price: 38, InStock: false},
		{Title: "Americanah", Author: "Chimamanda Ngozi Adichie", Genre: "Fiction", PublishedYear: 2013, Price: 14.99, InStock: true},
		{Title: "Sapiens", Author: "Yuval Noah Harari", Genre: "History", PublishedYear: 2011, Price: 18.99, InStock: true},
	}
}
