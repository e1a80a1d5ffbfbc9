package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"codonusage/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig          `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig            `yaml:"paths" envconfig:"PATHS"`
	Species   []domain.SpeciesSource `yaml:"species" ignored:"true" validate:"required,min=1,dive"`
	Analysis  AnalysisConfig         `yaml:"analysis" envconfig:"ANALYSIS"`
	Charts    ChartsConfig           `yaml:"charts" envconfig:"CHARTS"`
	Telemetry TelemetryConfig        `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains file system locations. Relative paths are resolved
// against the working directory.
type PathsConfig struct {
	InputDir         string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir        string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir          string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	CombinedWorkbook string `yaml:"combined_workbook" envconfig:"COMBINED_WORKBOOK" validate:"required"`
	ProcessedCSV     string `yaml:"processed_csv" envconfig:"PROCESSED_CSV" validate:"required"`
	MetricsFile      string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	TraceFile        string `yaml:"trace_file" envconfig:"TRACE_FILE"`
}

// AnalysisConfig selects what the analyzer compares.
type AnalysisConfig struct {
	BarAminoAcid string            `yaml:"bar_amino_acid" envconfig:"BAR_AMINO_ACID" validate:"required,len=1"`
	CorrelationX string            `yaml:"correlation_x" envconfig:"CORRELATION_X" validate:"required"`
	CorrelationY string            `yaml:"correlation_y" envconfig:"CORRELATION_Y" validate:"required,nefield=CorrelationX"`
	SpeciesOrder []string          `yaml:"species_order" envconfig:"SPECIES_ORDER"`
	Palette      map[string]string `yaml:"palette" envconfig:"PALETTE" validate:"dive,keys,required,endkeys,hexcolor"`
}

// ChartsConfig controls image rendering.
type ChartsConfig struct {
	WidthInches  float64 `yaml:"width_inches" envconfig:"WIDTH_INCHES" validate:"gt=0"`
	HeightInches float64 `yaml:"height_inches" envconfig:"HEIGHT_INCHES" validate:"gt=0"`
	DPI          int     `yaml:"dpi" envconfig:"DPI" validate:"min=36,max=600"`
}

// TelemetryConfig controls tracing and metrics export.
type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout file"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	Environment    string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load loads configuration from the default config file location and the
// environment.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom loads configuration with precedence environment > file > defaults.
// A missing file is not an error.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// No envconfig defaults are declared, so unset variables leave the
	// file/default values untouched.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration struct tags and cross-field rules.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Species))
	for _, s := range c.Species {
		if seen[s.Name] {
			return fmt.Errorf("species %q configured more than once", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}
	return DefaultConfigFile
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "codon.log",
		},
		Paths: PathsConfig{
			InputDir:         ".",
			OutputDir:        ".",
			LogsDir:          "logs",
			CombinedWorkbook: DefaultCombinedWorkbook,
			ProcessedCSV:     DefaultProcessedCSV,
			MetricsFile:      "codon_metrics.prom",
			TraceFile:        "traces.json",
		},
		Species: []domain.SpeciesSource{
			{Name: "Human", File: "human_raw.xlsx"},
			{Name: "Mouse", File: "mouse_raw.xlsx"},
			{Name: "Yeast", File: "yeast_raw.xlsx"},
		},
		Analysis: AnalysisConfig{
			BarAminoAcid: "L",
			CorrelationX: "Human",
			CorrelationY: "Mouse",
			SpeciesOrder: []string{"Human", "Mouse", "Yeast"},
			Palette: map[string]string{
				"Human": "#4C72B0",
				"Mouse": "#55A868",
				"Yeast": "#C44E52",
			},
		},
		Charts: ChartsConfig{
			WidthInches:  10,
			HeightInches: 6,
			DPI:          300,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricsEnabled: true,
			Environment:    "development",
		},
	}
}
