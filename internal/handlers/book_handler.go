package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"plp-bookstore/configs"
	"plp-bookstore/internal/constants"
	"plp-bookstore/internal/middleware"
	"plp-bookstore/internal/models"
	"plp-bookstore/internal/queries"
	"plp-bookstore/internal/utils"
)

const requestTimeout = 5 * time.Second

type BookHandler struct {
	Queries          *queries.BookQueries
	AuditLogger      utils.Logger
	Logger           *slog.Logger
	ExplainVerbosity string
}

func NewBookHandler(q *queries.BookQueries, audit utils.Logger, logger *slog.Logger, verbosity string) *BookHandler {
	return &BookHandler{
		Queries:          q,
		AuditLogger:      audit,
		Logger:           logger,
		ExplainVerbosity: verbosity,
	}
}

// audit records a successful mutation. The response never depends on it.
func (h *BookHandler) audit(ctx context.Context, entity, action string, data any) {
	err := h.AuditLogger.Log(ctx, entity, action, middleware.UserID(ctx), data)
	if err == nil {
		return
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "audit log failed",
		slog.String("entity", entity),
		slog.String("action", action),
		slog.Any("error", err),
	)
}

// GET /books?genre=&author=&published_after=&in_stock=&sort=&skip=&limit=
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseBookQuery(r)
	if err != nil {
		utils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	books, err := h.Queries.Find(ctx, filter, page)
	if err != nil {
		utils.JSONError(w, "Failed to fetch books: "+err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(books)
}

// GET /books/summary
func (h *BookHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summaries, err := h.Queries.Summaries(ctx)
	if err != nil {
		utils.JSONError(w, "Failed to fetch books", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(summaries)
}

type priceUpdate struct {
	Price *float64 `json:"price"`
}

// PUT /books/{title}/price
func (h *BookHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]

	var body priceUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if body.Price == nil || *body.Price < 0 {
		utils.JSONError(w, "A non-negative price is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.Queries.UpdatePrice(ctx, title, *body.Price)
	if err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if result.Matched == 0 {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}

	h.audit(ctx, models.BookEntity, constants.Update, map[string]any{"title": title, "price": *body.Price})

	json.NewEncoder(w).Encode(result)
}

// DELETE /books/{title}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.Queries.DeleteByTitle(ctx, title)
	if err != nil {
		utils.JSONError(w, "Delete failed", http.StatusInternalServerError)
		return
	}
	if result.Deleted == 0 {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}

	h.audit(ctx, models.BookEntity, constants.Delete, title)

	w.WriteHeader(http.StatusNoContent)
}

// GET /books/{title}/explain?verbosity=
func (h *BookHandler) ExplainBook(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]
	verbosity := r.URL.Query().Get("verbosity")
	if verbosity == "" {
		verbosity = h.ExplainVerbosity
	}
	if !configs.ValidVerbosity(verbosity) {
		utils.JSONError(w, errInvalidParam("verbosity").Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	plan, err := h.Queries.ExplainByTitle(ctx, title, verbosity)
	if err != nil {
		utils.JSONError(w, "Explain failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(plan)
}

// POST /indexes
func (h *BookHandler) CreateIndexes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	names := []string{}
	for _, create := range []func(context.Context) (string, error){
		h.Queries.CreateTitleIndex,
		h.Queries.CreateAuthorYearIndex,
	} {
		name, err := create(ctx)
		if err != nil {
			utils.JSONError(w, "Index creation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		names = append(names, name)
	}

	h.audit(ctx, models.IndexEntity, constants.CreateIndex, names)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"indexes": names})
}

func parseBookQuery(r *http.Request) (queries.Filter, queries.Page, error) {
	q := r.URL.Query()
	filter := queries.Filter{
		Genre:  q.Get("genre"),
		Author: q.Get("author"),
		Title:  q.Get("title"),
	}
	var page queries.Page

	if val := q.Get("published_after"); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return filter, page, errInvalidParam("published_after")
		}
		filter.PublishedAfter = &year
	}
	if val := q.Get("in_stock"); val != "" {
		inStock, err := strconv.ParseBool(val)
		if err != nil {
			return filter, page, errInvalidParam("in_stock")
		}
		filter.InStock = &inStock
	}

	sort, err := queries.ParseSort(q.Get("sort"))
	if err != nil {
		return filter, page, errInvalidParam("sort")
	}
	page.Sort = sort

	if page.Skip, err = parseCount(q.Get("skip")); err != nil {
		return filter, page, errInvalidParam("skip")
	}
	if page.Limit, err = parseCount(q.Get("limit")); err != nil {
		return filter, page, errInvalidParam("limit")
	}
	return filter, page, nil
}

func parseCount(val string) (int64, error) {
	if val == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

type invalidParamError string

func (e invalidParamError) Error() string { return "Invalid query parameter: " + string(e) }

func errInvalidParam(name string) error { return invalidParamError(name) }
