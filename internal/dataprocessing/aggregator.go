package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

// ExtractionStatus summarizes a batch.
type ExtractionStatus string

const (
	StatusComplete ExtractionStatus = "complete"
	StatusPartial  ExtractionStatus = "partial"
	StatusEmpty    ExtractionStatus = "empty"
)

// SpeciesResult is the outcome of extracting one species. Err is nil on
// success, in which case Records may still be empty.
type SpeciesResult struct {
	Species  string
	Source   string
	Records  []domain.CodonRecord
	Err      error
	Duration time.Duration
}

// OK reports whether the species was extracted.
func (r SpeciesResult) OK() bool {
	return r.Err == nil
}

// ExtractionReport collects per-species results in source order.
type ExtractionReport struct {
	Results []SpeciesResult
}

// Records concatenates the records of every successful species in order.
func (r *ExtractionReport) Records() []domain.CodonRecord {
	total := 0
	for _, res := range r.Results {
		total += len(res.Records)
	}
	out := make([]domain.CodonRecord, 0, total)
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res.Records...)
		}
	}
	return out
}

// Succeeded returns the species extracted without error.
func (r *ExtractionReport) Succeeded() []string {
	var names []string
	for _, res := range r.Results {
		if res.OK() {
			names = append(names, res.Species)
		}
	}
	return names
}

// Failed returns the results that carry an error.
func (r *ExtractionReport) Failed() []SpeciesResult {
	var failed []SpeciesResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Status is empty when no species succeeded, partial when some failed.
func (r *ExtractionReport) Status() ExtractionStatus {
	ok := len(r.Succeeded())
	switch {
	case ok == 0:
		return StatusEmpty
	case ok < len(r.Results):
		return StatusPartial
	default:
		return StatusComplete
	}
}

// Aggregator extracts codon records for several species one after another.
type Aggregator struct {
	inputDir string
	logger   *slog.Logger
	tracer   trace.Tracer

	// OnStart and OnDone, when set, are called around each species.
	OnStart func(species string)
	OnDone  func(ctx context.Context, result SpeciesResult)
}

// NewAggregator creates an aggregator resolving relative source files
// against inputDir.
func NewAggregator(inputDir string, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		inputDir: inputDir,
		logger:   logger.With(slog.String("component", "aggregator")),
		tracer:   otel.Tracer("codonusage/dataprocessing"),
	}
}

// Extract processes sources sequentially. A failing species is recorded in
// the report and never stops the batch.
func (a *Aggregator) Extract(ctx context.Context, sources []domain.SpeciesSource) *ExtractionReport {
	report := &ExtractionReport{Results: make([]SpeciesResult, 0, len(sources))}

	for _, src := range sources {
		if a.OnStart != nil {
			a.OnStart(src.Name)
		}

		result := a.extractOne(ctx, src)
		report.Results = append(report.Results, result)

		if a.OnDone != nil {
			a.OnDone(ctx, result)
		}
	}

	a.logger.InfoContext(ctx, "Extraction finished",
		slog.String("status", string(report.Status())),
		slog.Int("species_ok", len(report.Succeeded())),
		slog.Int("species_failed", len(report.Failed())),
		slog.Int("records", len(report.Records())))

	return report
}

func (a *Aggregator) extractOne(ctx context.Context, src domain.SpeciesSource) SpeciesResult {
	start := time.Now()
	path := a.resolve(src.File)

	ctx, span := a.tracer.Start(ctx, "extract_species", trace.WithAttributes(
		attribute.String("species", src.Name),
		attribute.String("source", path),
	))
	defer span.End()

	result := SpeciesResult{Species: src.Name, Source: path}

	text, err := FlattenWorkbook(path)
	if err != nil {
		result.Err = apperrors.NewExtractionError(src.Name, err).WithContext("path", path)
		result.Duration = time.Since(start)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.ErrorContext(ctx, "Species extraction failed",
			slog.String("species", src.Name),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return result
	}

	result.Records = ParseCodonText(text, src.Name)
	result.Duration = time.Since(start)
	span.SetAttributes(attribute.Int("records", len(result.Records)))

	if len(result.Records) == 0 {
		a.logger.WarnContext(ctx, "No codon records found in workbook",
			slog.String("species", src.Name),
			slog.String("path", path))
	} else {
		a.logger.InfoContext(ctx, "Species extracted",
			slog.String("species", src.Name),
			slog.Int("records", len(result.Records)),
			slog.Duration("duration", result.Duration))
	}

	return result
}

func (a *Aggregator) resolve(file string) string {
	if filepath.IsAbs(file) || a.inputDir == "" {
		return file
	}
	return filepath.Join(a.inputDir, file)
}
