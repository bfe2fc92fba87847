package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"plp-bookstore/internal/middleware"
)

// NewRouter wires every bookstore route. Mutating routes require a bearer token.
func NewRouter(auth *AuthHandler, books *BookHandler, reports *ReportsHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `"OK"`)
	}).Methods(http.MethodGet)

	r.HandleFunc("/login", auth.Login).Methods(http.MethodPost)

	r.HandleFunc("/books", books.GetBooks).Methods(http.MethodGet)
	r.HandleFunc("/books/summary", books.GetSummaries).Methods(http.MethodGet)
	r.HandleFunc("/books/{title}/explain", books.ExplainBook).Methods(http.MethodGet)

	r.HandleFunc("/reports/genres/avg-price", reports.AvgPriceByGenre).Methods(http.MethodGet)
	r.HandleFunc("/reports/authors/top", reports.TopAuthor).Methods(http.MethodGet)
	r.HandleFunc("/reports/decades", reports.BooksByDecade).Methods(http.MethodGet)

	admin := r.NewRoute().Subrouter()
	admin.Use(middleware.JWTAuthMiddleware)
	admin.HandleFunc("/books/{title}/price", books.UpdatePrice).Methods(http.MethodPut)
	admin.HandleFunc("/books/{title}", books.DeleteBook).Methods(http.MethodDelete)
	admin.HandleFunc("/indexes", books.CreateIndexes).Methods(http.MethodPost)

	return r
}
