package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"codonusage/internal/config"
	apperrors "codonusage/internal/errors"
	"codonusage/internal/infrastructure"
	"codonusage/internal/validation"
	"codonusage/pkg/contracts"
)

// shutdownTimeout bounds the final trace flush.
const shutdownTimeout = 5 * time.Second

// Application holds what a batch program needs for one run
type Application struct {
	Tool          string
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
}

// NewApplication loads configuration from configFile, or from the default
// location when configFile is empty, resolves paths against the working
// directory and initializes logging and telemetry.
func NewApplication(tool, configFile string) (*Application, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(configFile)
	}
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to get paths", err)
	}

	return New(tool, cfg, paths)
}

// New wires an application from an already loaded configuration
func New(tool string, cfg *config.Config, paths *config.Paths) (*Application, error) {
	if err := paths.EnsureDirectories(); err != nil {
		return nil, apperrors.NewStorageError("failed to ensure directories", err)
	}

	logCfg := cfg.Logging
	if logCfg.FilePath != "" && !filepath.IsAbs(logCfg.FilePath) {
		logCfg.FilePath = paths.GetLogPath(logCfg.FilePath)
	}

	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize logger", err)
	}
	logger = logger.With(slog.String("tool", tool))

	logger.Info("Application starting",
		slog.String("version", contracts.GetFullVersionString(tool)),
		slog.Int("species", len(cfg.Species)))
	paths.LogPathResolution(logger)

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(paths.OutputDir); err != nil {
		return nil, err
	}

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceVersion = contracts.Version
	otelCfg.Environment = cfg.Telemetry.Environment
	otelCfg.TraceExporter = cfg.Telemetry.TraceExporter
	otelCfg.TraceFile = paths.TraceFile
	otelCfg.EnableMetrics = cfg.Telemetry.MetricsEnabled

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize OpenTelemetry", err)
	}

	return &Application{
		Tool:          tool,
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
	}, nil
}

// Metrics returns the run's instruments, nil when metrics are disabled
func (a *Application) Metrics() *infrastructure.CodonMetrics {
	if a.OTelProviders == nil {
		return nil
	}
	return a.OTelProviders.Metrics
}

// Close writes the metrics file, flushes telemetry and closes the log file.
func (a *Application) Close(ctx context.Context) {
	if err := a.OTelProviders.WriteMetricsFile(a.Paths.MetricsFile); err != nil {
		a.Logger.ErrorContext(ctx, "Failed to write metrics file",
			slog.String("path", a.Paths.MetricsFile),
			slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	_ = infrastructure.CloseLogFile()
}

// ExitCode maps a run error to the process exit status. Schema problems and
// empty extractions are reported outcomes, not crashes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeSchema, apperrors.ErrTypeEmptyResult:
		return 0
	default:
		return 1
	}
}

// Describe renders err as the single line printed to the operator.
func Describe(err error) string {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeSchema:
		return fmt.Sprintf("Missing required columns in data: %v", err)
	case apperrors.ErrTypeMissingInput:
		return fmt.Sprintf("Input file not found: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
