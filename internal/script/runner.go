// Package script runs the bookstore query battery: sixteen reads, writes,
// aggregations and index requests executed strictly in order against one
// collection. The first failing step ends the run; its error and every
// result gathered before it stay available in the Report.
package script

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"plp-bookstore/internal/constants"
	"plp-bookstore/internal/models"
	"plp-bookstore/internal/queries"
	"plp-bookstore/internal/utils"
)

const tracerName = "plp-bookstore/script"

type StepResult struct {
	Index    int               `json:"index"`
	Name     string            `json:"name"`
	Value    any               `json:"value,omitempty"`
	Err      error             `json:"-"`
	Error    string            `json:"error,omitempty"`
	Kind     queries.ErrorKind `json:"kind"`
	Duration time.Duration     `json:"duration_ns"`
}

type Report struct {
	RunID     string       `json:"run_id"`
	Preset    string       `json:"preset"`
	Steps     []StepResult `json:"steps"`
	Completed bool         `json:"completed"`
}

// Failed returns the step that ended the run, if any.
func (r Report) Failed() *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Err != nil {
			return &r.Steps[i]
		}
	}
	return nil
}

type Runner struct {
	Queries *queries.BookQueries
	Audit   *utils.Logger
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Params  Params
	// Timeout bounds each step; zero leaves the driver defaults in charge.
	Timeout time.Duration
}

func NewRunner(q *queries.BookQueries, audit *utils.Logger, logger *slog.Logger, params Params) *Runner {
	return &Runner{
		Queries: q,
		Audit:   audit,
		Logger:  logger,
		Tracer:  otel.Tracer(tracerName),
		Params:  params,
	}
}

type step struct {
	name string
	run  func(ctx context.Context) (any, error)
}

func (r *Runner) steps() []step {
	p := r.Params
	q := r.Queries
	return []step{
		{"books_by_genre", func(ctx context.Context) (any, error) { return q.ByGenre(ctx, p.Genre) }},
		{"books_published_after", func(ctx context.Context) (any, error) { return q.PublishedAfter(ctx, p.PublishedAfter) }},
		{"books_by_author", func(ctx context.Context) (any, error) { return q.ByAuthor(ctx, p.Author) }},
		{"update_price", r.updatePrice},
		{"delete_by_title", r.deleteByTitle},
		{"in_stock_published_after", func(ctx context.Context) (any, error) { return q.InStockPublishedAfter(ctx, p.InStockAfter) }},
		{"summaries", func(ctx context.Context) (any, error) { return q.Summaries(ctx) }},
		{"sort_price_asc", func(ctx context.Context) (any, error) { return q.SortedByPrice(ctx, queries.Ascending) }},
		{"sort_price_desc", func(ctx context.Context) (any, error) { return q.SortedByPrice(ctx, queries.Descending) }},
		{"paginate", func(ctx context.Context) (any, error) { return q.Paginate(ctx, p.Page) }},
		{"avg_price_by_genre", func(ctx context.Context) (any, error) { return q.AveragePriceByGenre(ctx) }},
		{"top_author", func(ctx context.Context) (any, error) { return q.TopAuthor(ctx) }},
		{"count_by_decade", func(ctx context.Context) (any, error) { return q.CountByDecade(ctx) }},
		{"index_title", func(ctx context.Context) (any, error) { return r.createIndex(ctx, q.CreateTitleIndex) }},
		{"index_author_published_year", func(ctx context.Context) (any, error) { return r.createIndex(ctx, q.CreateAuthorYearIndex) }},
		{"explain_by_title", func(ctx context.Context) (any, error) {
			return q.ExplainByTitle(ctx, p.ExplainTitle, p.ExplainVerbosity)
		}},
	}
}

// StepNames lists the battery in execution order.
func (r *Runner) StepNames() []string {
	steps := r.steps()
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}

// Run executes the battery once. The error, when not nil, wraps the failing step's error.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	ctx, runID := utils.WithRunID(ctx)
	logger := r.Logger.With(slog.String("run_id", runID), slog.String("preset", r.Params.Preset))

	ctx, span := r.Tracer.Start(ctx, "battery", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("preset", r.Params.Preset),
	))
	defer span.End()

	report := Report{RunID: runID, Preset: r.Params.Preset}
	for i, s := range r.steps() {
		res := r.runStep(ctx, logger, i+1, s)
		report.Steps = append(report.Steps, res)
		if res.Err != nil {
			span.SetStatus(codes.Error, res.Name)
			logger.ErrorContext(ctx, "battery aborted",
				slog.String("step", res.Name),
				slog.Int("completed_steps", i),
				slog.Any("error", res.Err))
			return report, fmt.Errorf("step %d %s: %w", res.Index, res.Name, res.Err)
		}
	}

	report.Completed = true
	logger.InfoContext(ctx, "battery completed", slog.Int("steps", len(report.Steps)))
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, logger *slog.Logger, index int, s step) StepResult {
	ctx, span := r.Tracer.Start(ctx, s.name, trace.WithAttributes(attribute.Int("step", index)))
	defer span.End()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	value, err := s.run(ctx)
	res := StepResult{
		Index:    index,
		Name:     s.name,
		Value:    value,
		Err:      err,
		Kind:     queries.Classify(err),
		Duration: time.Since(start),
	}

	if err != nil {
		res.Value = nil
		res.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, string(res.Kind))
		return res
	}

	logger.InfoContext(ctx, "step done",
		slog.Int("step", index),
		slog.String("name", s.name),
		slog.Duration("took", res.Duration))
	return res
}

func (r *Runner) updatePrice(ctx context.Context) (any, error) {
	p := r.Params
	res, err := r.Queries.UpdatePrice(ctx, p.UpdateTitle, p.UpdatePrice)
	if err != nil {
		return nil, err
	}
	if res.Matched > 0 {
		r.audit(ctx, models.BookEntity, constants.Update, map[string]any{"title": p.UpdateTitle, "price": p.UpdatePrice})
	}
	return res, nil
}

func (r *Runner) deleteByTitle(ctx context.Context) (any, error) {
	res, err := r.Queries.DeleteByTitle(ctx, r.Params.DeleteTitle)
	if err != nil {
		return nil, err
	}
	if res.Deleted > 0 {
		r.audit(ctx, models.BookEntity, constants.Delete, map[string]any{"title": r.Params.DeleteTitle})
	}
	return res, nil
}

func (r *Runner) createIndex(ctx context.Context, create func(context.Context) (string, error)) (any, error) {
	name, err := create(ctx)
	if err != nil {
		return nil, err
	}
	r.audit(ctx, models.IndexEntity, constants.CreateIndex, map[string]any{"name": name})
	return name, nil
}

// audit failures are logged, never fatal to the battery.
func (r *Runner) audit(ctx context.Context, entity, action string, data any) {
	if err := r.Audit.Log(ctx, entity, action, constants.PerformedByScript, data); err != nil {
		r.Logger.WarnContext(ctx, "audit log failed",
			slog.String("entity", entity),
			slog.String("action", action),
			slog.Any("error", err))
	}
}
