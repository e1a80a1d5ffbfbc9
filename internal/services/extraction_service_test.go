package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codonusage/internal/config"
	"codonusage/internal/dataprocessing"
	apperrors "codonusage/internal/errors"
	"codonusage/internal/exporter"
	"codonusage/internal/infrastructure"
	"codonusage/internal/shared/testutil"
)

var leucineEntries = [][]string{
	{"TTA", "L", "0.07", "7.7", "(1 032)"},
	{"CTG", "L", "0.40", "39.6", "(5 334)"},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEnv returns a default config whose paths live under a temp dir and
// whose charts render small.
func newTestEnv(t *testing.T) (*config.Config, *config.Paths) {
	t.Helper()

	cfg := config.Default()
	cfg.Charts = config.ChartsConfig{WidthInches: 4, HeightInches: 3, DPI: 72}
	cfg.Paths.InputDir = "input"
	cfg.Paths.OutputDir = "output"

	paths := config.ResolvePaths(t.TempDir(), cfg.Paths)
	require.NoError(t, paths.EnsureDirectories())
	require.NoError(t, os.MkdirAll(paths.InputDir, 0755))
	return cfg, paths
}

func TestExtractionService_Run_OneSpeciesMissing(t *testing.T) {
	cfg, paths := newTestEnv(t)
	testutil.WriteSpeciesWorkbook(t, paths.InputDir, "human_raw.xlsx", leucineEntries)
	testutil.WriteSpeciesWorkbook(t, paths.InputDir, "mouse_raw.xlsx", leucineEntries[:1])

	logger, handler := testutil.NewTestLogger(t)
	svc := NewExtractionServiceWithLogger(cfg, paths, nil, logger)
	var progress bytes.Buffer
	svc.Progress = &progress

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataprocessing.StatusPartial, report.Status())
	assert.Equal(t, []string{"Human", "Mouse"}, report.Succeeded())
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "Yeast", report.Failed()[0].Species)
	assert.True(t, apperrors.IsType(report.Failed()[0].Err, apperrors.ErrTypeExtraction))
	assert.Equal(t, paths.GetInputPath("human_raw.xlsx"), report.Results[0].Source)

	out := progress.String()
	assert.Contains(t, out, "Processing Human...")
	assert.Contains(t, out, "Successfully processed Mouse data (1 codons)")
	assert.Contains(t, out, "Error processing Yeast")
	assert.Contains(t, out, "1 species failed to process")

	records, err := exporter.ReadCombinedWorkbook(paths.CombinedWorkbook)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Human", records[0].Species)
	assert.Equal(t, int64(5334), records[1].Number)
	assert.Equal(t, "Mouse", records[2].Species)

	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Species workbook unavailable")
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Extraction completed")
}

func TestExtractionService_Run_NoValidData(t *testing.T) {
	cfg, paths := newTestEnv(t)

	svc := NewExtractionServiceWithLogger(cfg, paths, nil, discardLogger())
	var progress bytes.Buffer
	svc.Progress = &progress

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptyResult))
	assert.Equal(t, dataprocessing.StatusEmpty, report.Status())
	assert.Len(t, report.Failed(), 3)

	assert.Contains(t, progress.String(), "No valid data was extracted")
	assert.NoFileExists(t, paths.CombinedWorkbook)
}

func TestExtractionService_Run_FlagsDuplicates(t *testing.T) {
	cfg, paths := newTestEnv(t)
	cfg.Species = cfg.Species[:1]
	testutil.WriteSpeciesWorkbook(t, paths.InputDir, "human_raw.xlsx",
		append(leucineEntries, leucineEntries[0]))

	logger, handler := testutil.NewTestLogger(t)
	svc := NewExtractionServiceWithLogger(cfg, paths, nil, logger)
	svc.Progress = io.Discard

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dataprocessing.StatusComplete, report.Status())

	records, err := exporter.ReadCombinedWorkbook(paths.CombinedWorkbook)
	require.NoError(t, err)
	assert.Len(t, records, 3, "duplicates are kept")
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Duplicate codon entry")
}

func TestExtractionService_Run_RecordsMetrics(t *testing.T) {
	cfg, paths := newTestEnv(t)
	testutil.WriteSpeciesWorkbook(t, paths.InputDir, "human_raw.xlsx", leucineEntries)

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	svc := NewExtractionServiceWithLogger(cfg, paths, providers.Metrics, discardLogger())
	svc.Progress = io.Discard

	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	metricsPath := filepath.Join(paths.LogsDir, "run.prom")
	require.NoError(t, providers.WriteMetricsFile(metricsPath))
	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "codon_records_parsed_total")
	assert.Contains(t, text, `species="Human"`)
	assert.Contains(t, text, "codon_species_failed_total")
	assert.Contains(t, text, `species="Yeast"`)
	assert.Contains(t, text, `stage="extraction"`)
}
