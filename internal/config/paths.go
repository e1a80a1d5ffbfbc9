package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"codonusage/pkg/contracts/domain"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	WorkDir   string
	InputDir  string
	OutputDir string
	LogsDir   string

	// Well-known files
	CombinedWorkbook string
	ProcessedCSV     string
	MetricsFile      string
	TraceFile        string
}

// GetPaths resolves the configured locations against the current working
// directory.
func GetPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(wd, cfg), nil
}

// ResolvePaths resolves cfg against base. Absolute entries are kept as-is.
// The combined workbook and CSV live in the output directory, metrics and
// traces in the logs directory.
func ResolvePaths(base string, cfg PathsConfig) *Paths {
	inputDir := resolve(base, cfg.InputDir)
	outputDir := resolve(base, cfg.OutputDir)
	logsDir := resolve(base, cfg.LogsDir)

	p := &Paths{
		WorkDir:          base,
		InputDir:         inputDir,
		OutputDir:        outputDir,
		LogsDir:          logsDir,
		CombinedWorkbook: resolve(outputDir, cfg.CombinedWorkbook),
		ProcessedCSV:     resolve(outputDir, cfg.ProcessedCSV),
	}
	if cfg.MetricsFile != "" {
		p.MetricsFile = resolve(logsDir, cfg.MetricsFile)
	}
	if cfg.TraceFile != "" {
		p.TraceFile = resolve(logsDir, cfg.TraceFile)
	}
	return p
}

func resolve(base, path string) string {
	if path == "" {
		return base
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// EnsureDirectories creates the output and logs directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetInputPath returns the path of a species workbook
func (p *Paths) GetInputPath(filename string) string {
	return resolve(p.InputDir, filename)
}

// GetOutputPath returns the path for a generated artifact
func (p *Paths) GetOutputPath(filename string) string {
	return resolve(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return resolve(p.LogsDir, filename)
}

// CodonUsageChartPath returns the bar chart path for an amino acid. The stop
// marker is spelled out so the name stays portable.
func (p *Paths) CodonUsageChartPath(aminoAcid string) string {
	name := aminoAcid
	if name == domain.StopCodon {
		name = "stop"
	}
	return p.GetOutputPath(name + CodonUsageChartSuffix)
}

// CorrelationChartPath returns e.g. human_mouse_correlation.png
func (p *Paths) CorrelationChartPath(speciesX, speciesY string) string {
	name := fmt.Sprintf("%s_%s", chartToken(speciesX), chartToken(speciesY))
	return p.GetOutputPath(name + CorrelationChartSuffix)
}

// EntropyHeatmapPath returns the heatmap path
func (p *Paths) EntropyHeatmapPath() string {
	return p.GetOutputPath(EntropyHeatmapChart)
}

// FrequencyDistributionPath returns the box plot path
func (p *Paths) FrequencyDistributionPath() string {
	return p.GetOutputPath(FrequencyDistributionPlot)
}

func chartToken(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("work", p.WorkDir),
			slog.String("input", p.InputDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("combined_workbook", p.CombinedWorkbook),
			slog.String("processed_csv", p.ProcessedCSV),
			slog.String("metrics", p.MetricsFile),
		))
}
