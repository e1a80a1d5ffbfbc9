package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"codonusage/internal/config"
	"codonusage/internal/dataprocessing"
	apperrors "codonusage/internal/errors"
	"codonusage/internal/exporter"
	"codonusage/internal/infrastructure"
	"codonusage/internal/validation"
	"codonusage/pkg/contracts/domain"
)

// Stage names used for metrics and spans.
const (
	StageExtraction = "extraction"
	StageAnalysis   = "analysis"
)

// ExtractionService runs the extractor stage: every configured species
// workbook is parsed and the concatenated records are written to the
// combined workbook.
type ExtractionService struct {
	config    *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	metrics   *infrastructure.CodonMetrics
	validator *validation.FileValidator

	// Progress receives the human-readable progress lines.
	Progress io.Writer
}

// NewExtractionServiceWithLogger creates an extraction service with a
// specific logger. metrics may be nil.
func NewExtractionServiceWithLogger(cfg *config.Config, paths *config.Paths, metrics *infrastructure.CodonMetrics, logger *slog.Logger) *ExtractionService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "extraction"))

	return &ExtractionService{
		config:    cfg,
		paths:     paths,
		logger:    logger,
		metrics:   metrics,
		validator: validation.NewFileValidator(logger),
		Progress:  os.Stdout,
	}
}

// Run extracts all species and writes the combined workbook. It returns the
// report together with an EMPTY_RESULT error when no species produced data,
// in which case nothing is written.
func (s *ExtractionService) Run(ctx context.Context) (*dataprocessing.ExtractionReport, error) {
	start := time.Now()
	ctx, span := infrastructure.StartSpan(ctx, "extract")
	defer span.End()

	s.logger.InfoContext(ctx, "Starting extraction",
		slog.String("input_dir", s.paths.InputDir),
		slog.Int("species", len(s.config.Species)),
		slog.String("combined_workbook", s.paths.CombinedWorkbook))

	sources := make([]domain.SpeciesSource, len(s.config.Species))
	for i, src := range s.config.Species {
		sources[i] = domain.SpeciesSource{Name: src.Name, File: s.paths.GetInputPath(src.File)}
	}

	if unusable := s.validator.CheckSpeciesSources(s.paths.InputDir, sources); len(unusable) > 0 {
		s.logger.WarnContext(ctx, "Some species workbooks are unavailable",
			slog.Int("count", len(unusable)))
	}

	agg := dataprocessing.NewAggregator(s.paths.InputDir, s.logger)
	agg.OnStart = func(species string) {
		fmt.Fprintf(s.Progress, "Processing %s...\n", species)
	}
	agg.OnDone = func(ctx context.Context, res dataprocessing.SpeciesResult) {
		s.metrics.RecordSpecies(ctx, res.Species, len(res.Records), res.Err)
		if res.OK() {
			fmt.Fprintf(s.Progress, "Successfully processed %s data (%d codons)\n", res.Species, len(res.Records))
			return
		}
		fmt.Fprintf(s.Progress, "Error processing %s: %v\n", res.Species, res.Err)
	}

	report := agg.Extract(ctx, sources)

	if report.Status() == dataprocessing.StatusEmpty {
		fmt.Fprintln(s.Progress, "No valid data was extracted from the files.")
		err := apperrors.NewEmptyResultError("no species produced codon data").
			WithContext("species", len(s.config.Species))
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordStage(ctx, StageExtraction, time.Since(start), false)
		return report, err
	}

	records := report.Records()
	if dups := dataprocessing.AuditDuplicates(ctx, s.logger, records); dups > 0 {
		s.logger.WarnContext(ctx, "Combined data contains duplicate triplet/species keys",
			slog.Int("duplicate_keys", dups))
	}

	if err := exporter.WriteCombinedWorkbook(s.paths.CombinedWorkbook, records); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write combined workbook",
			slog.String("path", s.paths.CombinedWorkbook),
			slog.String("error", err.Error()))
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordStage(ctx, StageExtraction, time.Since(start), false)
		return report, err
	}

	fmt.Fprintf(s.Progress, "Combined data saved to %s\n", s.paths.CombinedWorkbook)
	if failed := report.Failed(); len(failed) > 0 {
		fmt.Fprintf(s.Progress, "%d species failed to process\n", len(failed))
	}

	s.logger.InfoContext(ctx, "Extraction completed",
		slog.String("status", string(report.Status())),
		slog.Int("records", len(records)),
		slog.Duration("duration", time.Since(start)))
	s.metrics.RecordStage(ctx, StageExtraction, time.Since(start), true)

	return report, nil
}
