package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"plp-bookstore/internal/queries"
	"plp-bookstore/internal/utils"
)

// ReportsHandler serves the aggregation reports.
type ReportsHandler struct {
	Queries *queries.BookQueries
}

// GET /reports/genres/avg-price
func (h *ReportsHandler) AvgPriceByGenre(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	results, err := h.Queries.AveragePriceByGenre(ctx)
	if err != nil {
		utils.JSONError(w, "Aggregation failed", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(results)
}

// GET /reports/authors/top
func (h *ReportsHandler) TopAuthor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	top, err := h.Queries.TopAuthor(ctx)
	if err != nil {
		utils.JSONError(w, "Aggregation failed", http.StatusInternalServerError)
		return
	}
	if top == nil {
		utils.JSONError(w, "No books found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(top)
}

// GET /reports/decades
func (h *ReportsHandler) BooksByDecade(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	results, err := h.Queries.CountByDecade(ctx)
	if err != nil {
		utils.JSONError(w, "Aggregation failed", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(results)
}
