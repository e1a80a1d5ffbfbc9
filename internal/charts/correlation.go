package charts

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

// RenderCorrelation draws the joined frequencies of two species as a
// scatter plot with the regression line and Pearson r.
func (r *Renderer) RenderCorrelation(result domain.CorrelationResult) (string, error) {
	if len(result.Pairs) < 2 {
		return "", apperrors.NewEmptySubsetError("not enough shared triplets for correlation").
			WithContext("chart", ChartCorrelation).
			WithContext("pairs", len(result.Pairs))
	}

	xys := make(plotter.XYs, len(result.Pairs))
	minX, maxX := math.Inf(1), math.Inf(-1)
	maxY := math.Inf(-1)
	for i, pair := range result.Pairs {
		xys[i] = plotter.XY{X: pair.X, Y: pair.Y}
		minX = math.Min(minX, pair.X)
		maxX = math.Max(maxX, pair.X)
		maxY = math.Max(maxY, pair.Y)
	}

	p := newPlot(
		fmt.Sprintf("%s vs %s codon usage frequency", result.SpeciesX, result.SpeciesY),
		fmt.Sprintf("%s codon usage frequency (%%)", result.SpeciesX),
		fmt.Sprintf("%s codon usage frequency (%%)", result.SpeciesY),
	)
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return "", renderError(ChartCorrelation, err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Color = scatterColor
	p.Add(scatter)

	if !math.IsNaN(result.Slope) && !math.IsNaN(result.Intercept) && maxX > minX {
		line, err := plotter.NewLine(plotter.XYs{
			{X: minX, Y: result.Intercept + result.Slope*minX},
			{X: maxX, Y: result.Intercept + result.Slope*maxX},
		})
		if err != nil {
			return "", renderError(ChartCorrelation, err)
		}
		line.LineStyle.Color = regressionColor
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("least squares fit", line)
		p.Legend.Top = true
	}

	annotation, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: minX, Y: maxY}},
		Labels: []string{fmt.Sprintf("r = %.3f", result.R)},
	})
	if err != nil {
		return "", renderError(ChartCorrelation, err)
	}
	annotation.TextStyle[0].Font.Size = vg.Points(14)
	annotation.TextStyle[0].YAlign = text.YTop
	p.Add(annotation)

	path := r.paths.CorrelationChartPath(result.SpeciesX, result.SpeciesY)
	if err := r.savePlot(p, path); err != nil {
		return "", err
	}

	r.logger.Info("Correlation chart rendered",
		slog.String("species_x", result.SpeciesX),
		slog.String("species_y", result.SpeciesY),
		slog.Float64("r", result.R),
		slog.Int("pairs", len(result.Pairs)))
	return path, nil
}
