package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"codonusage/internal/charts"
	"codonusage/internal/config"
	"codonusage/internal/dataprocessing"
	apperrors "codonusage/internal/errors"
	"codonusage/internal/exporter"
	"codonusage/internal/infrastructure"
	"codonusage/pkg/contracts/domain"
)

// AnalysisReport lists what one analyzer run produced.
type AnalysisReport struct {
	Rendered map[string]string // chart name -> PNG path
	Skipped  map[string]error  // chart name -> reason
	CSVPath  string
}

// AnalysisService runs the analyzer stage over a loaded codon table.
type AnalysisService struct {
	config   *config.Config
	paths    *config.Paths
	logger   *slog.Logger
	metrics  *infrastructure.CodonMetrics
	renderer *charts.Renderer
	csv      *exporter.CSVWriter

	// Progress receives the human-readable progress lines.
	Progress io.Writer
}

// NewAnalysisServiceWithLogger creates an analysis service with a specific
// logger. metrics may be nil.
func NewAnalysisServiceWithLogger(cfg *config.Config, paths *config.Paths, metrics *infrastructure.CodonMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "analysis"))

	return &AnalysisService{
		config:   cfg,
		paths:    paths,
		logger:   logger,
		metrics:  metrics,
		renderer: charts.NewRenderer(paths, charts.OptionsFromConfig(cfg), logger),
		csv:      exporter.NewCSVWriter(nil),
		Progress: os.Stdout,
	}
}

// LoadTable reads and validates the combined workbook. A missing workbook
// yields MISSING_INPUT and absent columns yield SCHEMA.
func (s *AnalysisService) LoadTable(ctx context.Context) ([]domain.CodonRecord, error) {
	ctx, span := infrastructure.StartSpan(ctx, "load_table",
		attribute.String("path", s.paths.CombinedWorkbook))
	defer span.End()

	table, err := exporter.ReadCombinedWorkbook(s.paths.CombinedWorkbook)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Failed to load combined workbook",
			slog.String("path", s.paths.CombinedWorkbook),
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Combined workbook loaded",
		slog.String("path", s.paths.CombinedWorkbook),
		slog.Int("records", len(table)))
	return table, nil
}

type chartJob struct {
	name   string
	render func(ctx context.Context) (string, error)
}

// Run renders every chart independently and then exports the table to CSV.
// Chart failures are recorded in the report and never stop the run; only a
// failed CSV export is returned as an error.
func (s *AnalysisService) Run(ctx context.Context, table []domain.CodonRecord) (*AnalysisReport, error) {
	start := time.Now()
	ctx, span := infrastructure.StartSpan(ctx, "analyze",
		attribute.Int("records", len(table)))
	defer span.End()

	report := &AnalysisReport{
		Rendered: make(map[string]string),
		Skipped:  make(map[string]error),
	}

	for _, job := range s.chartJobs(table) {
		path, err := job.render(ctx)
		if err != nil {
			s.skipChart(ctx, report, job.name, err)
			continue
		}
		report.Rendered[job.name] = path
		s.metrics.RecordChart(ctx, job.name, true)
		fmt.Fprintf(s.Progress, "Saved %s\n", path)
	}

	if err := s.csv.WriteCodonCSV(s.paths.ProcessedCSV, table); err != nil {
		s.logger.ErrorContext(ctx, "Failed to export processed data",
			slog.String("path", s.paths.ProcessedCSV),
			slog.String("error", err.Error()))
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordStage(ctx, StageAnalysis, time.Since(start), false)
		return report, err
	}
	report.CSVPath = s.paths.ProcessedCSV
	fmt.Fprintf(s.Progress, "Processed data saved to %s\n", report.CSVPath)

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.Int("charts_rendered", len(report.Rendered)),
		slog.Int("charts_skipped", len(report.Skipped)),
		slog.Duration("duration", time.Since(start)))
	s.metrics.RecordStage(ctx, StageAnalysis, time.Since(start), true)

	return report, nil
}

func (s *AnalysisService) chartJobs(table []domain.CodonRecord) []chartJob {
	analysis := s.config.Analysis
	return []chartJob{
		{
			name: charts.ChartCodonUsageBar,
			render: func(context.Context) (string, error) {
				return s.renderer.RenderCodonUsageBar(table, analysis.BarAminoAcid)
			},
		},
		{
			name: charts.ChartCorrelation,
			render: func(ctx context.Context) (string, error) {
				result, err := dataprocessing.Correlate(table, analysis.CorrelationX, analysis.CorrelationY)
				if err != nil {
					return "", err
				}
				s.logger.InfoContext(ctx, "Frequency correlation",
					slog.String("species_x", result.SpeciesX),
					slog.String("species_y", result.SpeciesY),
					slog.Float64("r", result.R),
					slog.Int("pairs", len(result.Pairs)))
				fmt.Fprintf(s.Progress, "Correlation %s vs %s: r = %.3f\n", result.SpeciesX, result.SpeciesY, result.R)
				return s.renderer.RenderCorrelation(result)
			},
		},
		{
			name: charts.ChartEntropyHeatmap,
			render: func(context.Context) (string, error) {
				matrix := dataprocessing.PivotEntropy(dataprocessing.EntropyTable(table))
				return s.renderer.RenderEntropyHeatmap(matrix)
			},
		},
		{
			name: charts.ChartFrequencyDistribution,
			render: func(context.Context) (string, error) {
				return s.renderer.RenderFrequencyDistribution(table, analysis.SpeciesOrder)
			},
		},
	}
}

func (s *AnalysisService) skipChart(ctx context.Context, report *AnalysisReport, chart string, err error) {
	report.Skipped[chart] = err
	s.metrics.RecordChart(ctx, chart, false)

	if apperrors.IsType(err, apperrors.ErrTypeEmptySubset) {
		s.logger.WarnContext(ctx, "Chart skipped, no data to plot",
			slog.String("chart", chart),
			slog.String("reason", err.Error()))
	} else {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Chart rendering failed",
			slog.String("chart", chart),
			slog.String("error", err.Error()))
	}
	fmt.Fprintf(s.Progress, "Skipped %s: %v\n", chart, err)
}
