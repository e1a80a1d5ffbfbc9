package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"codonusage/internal/config"
	apperrors "codonusage/internal/errors"
)

// Chart identifiers used in logs and metrics.
const (
	ChartCodonUsageBar         = "codon_usage_bar"
	ChartCorrelation           = "species_correlation"
	ChartEntropyHeatmap        = "entropy_heatmap"
	ChartFrequencyDistribution = "frequency_distribution"
)

// Options controls image size and species styling.
type Options struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
	// Palette maps species to "#RRGGBB" colours. Species without an entry
	// get a colour from the plotutil default palette.
	Palette      map[string]string
	SpeciesOrder []string
}

// OptionsFromConfig builds Options from the analyzer configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		WidthInches:  cfg.Charts.WidthInches,
		HeightInches: cfg.Charts.HeightInches,
		DPI:          cfg.Charts.DPI,
		Palette:      cfg.Analysis.Palette,
		SpeciesOrder: cfg.Analysis.SpeciesOrder,
	}
}

// Renderer draws the analyzer's fixed charts to PNG files.
type Renderer struct {
	paths  *config.Paths
	opts   Options
	logger *slog.Logger
}

// NewRenderer creates a renderer writing into paths.OutputDir.
func NewRenderer(paths *config.Paths, opts Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.WidthInches <= 0 {
		opts.WidthInches = 10
	}
	if opts.HeightInches <= 0 {
		opts.HeightInches = 6
	}
	if opts.DPI <= 0 {
		opts.DPI = 96
	}
	return &Renderer{
		paths:  paths,
		opts:   opts,
		logger: logger.With(slog.String("component", "charts")),
	}
}

func (r *Renderer) size() (vg.Length, vg.Length) {
	return vg.Length(r.opts.WidthInches) * vg.Inch, vg.Length(r.opts.HeightInches) * vg.Inch
}

// speciesColor returns the configured colour for species, falling back to
// the i-th default colour.
func (r *Renderer) speciesColor(species string, i int) color.Color {
	if hex, ok := r.opts.Palette[species]; ok {
		if c, err := parseHexColor(hex); err == nil {
			return c
		}
		r.logger.Warn("Invalid palette colour, using default",
			slog.String("species", species),
			slog.String("colour", hex))
	}
	return plotutil.Color(i)
}

// savePlot renders a single plot to path.
func (r *Renderer) savePlot(p *plot.Plot, path string) error {
	return r.saveCanvas(path, func(dc draw.Canvas) {
		p.Draw(dc)
	})
}

// saveCanvas creates a PNG canvas of the configured size, lets draw fill it
// and writes it to path.
func (r *Renderer) saveCanvas(path string, drawFn func(draw.Canvas)) error {
	w, h := r.size()
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.opts.DPI))
	drawFn(draw.New(c))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create chart directory", err).WithContext("path", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create chart file", err).WithContext("path", path)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return apperrors.NewStorageError("failed to encode chart", err).WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewStorageError("failed to close chart file", err).WithContext("path", path)
	}

	r.logger.Info("Chart saved", slog.String("path", path))
	return nil
}

func renderError(chart string, err error) error {
	return fmt.Errorf("render %s: %w", chart, err)
}
