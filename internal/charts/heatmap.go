package charts

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

const heatmapColors = 255

// entropyGrid adapts an EntropyMatrix to plotter.GridXYZ with species on the
// x axis and amino acids on the y axis.
type entropyGrid struct {
	m domain.EntropyMatrix
}

func (g entropyGrid) Dims() (c, r int)   { return len(g.m.Species), len(g.m.AminoAcids) }
func (g entropyGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g entropyGrid) X(c int) float64    { return float64(c) }
func (g entropyGrid) Y(r int) float64    { return float64(r) }

// RenderEntropyHeatmap draws the amino acid by species entropy grid with a
// diverging blue-red colour map, annotated cell values and a colour bar.
func (r *Renderer) RenderEntropyHeatmap(matrix domain.EntropyMatrix) (string, error) {
	if matrix.Empty() {
		return "", apperrors.NewEmptySubsetError("no amino acid has more than one codon").
			WithContext("chart", ChartEntropyHeatmap)
	}

	lo, hi := valueRange(matrix)
	if math.IsInf(lo, 0) {
		return "", apperrors.NewEmptySubsetError("entropy matrix has no values").
			WithContext("chart", ChartEntropyHeatmap)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	heat := plotter.NewHeatMap(entropyGrid{m: matrix}, cmap.Palette(heatmapColors))
	heat.Min = lo
	heat.Max = hi

	p := newPlot("Synonymous codon entropy by species", "Species", "Amino acid")
	p.Add(heat)
	p.NominalX(matrix.Species...)
	p.NominalY(matrix.AminoAcids...)

	annotations, err := cellLabels(matrix)
	if err != nil {
		return "", renderError(ChartEntropyHeatmap, err)
	}
	p.Add(annotations)

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = "Entropy (bits)"
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})

	path := r.paths.EntropyHeatmapPath()
	w, _ := r.size()
	err = r.saveCanvas(path, func(dc draw.Canvas) {
		p.Draw(draw.Crop(dc, 0, -0.15*w, 0, 0))
		bar.Draw(draw.Crop(dc, 0.87*w, 0, vg.Points(40), -vg.Points(40)))
	})
	if err != nil {
		return "", err
	}

	r.logger.Info("Entropy heatmap rendered",
		slog.Int("amino_acids", len(matrix.AminoAcids)),
		slog.Int("species", len(matrix.Species)))
	return path, nil
}

func valueRange(m domain.EntropyMatrix) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range m.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

func cellLabels(m domain.EntropyMatrix) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	for r, row := range m.Values {
		for c, v := range row {
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			texts = append(texts, fmt.Sprintf("%.2f", v))
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	centerLabels(labels.TextStyle, text.YCenter)
	return labels, nil
}
