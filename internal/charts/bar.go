package charts

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"codonusage/internal/dataprocessing"
	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

// RenderCodonUsageBar draws grouped bars of Fraction per synonymous codon of
// aminoAcid, one bar per species, and returns the image path.
func (r *Renderer) RenderCodonUsageBar(records []domain.CodonRecord, aminoAcid string) (string, error) {
	subset := dataprocessing.FilterAminoAcid(records, aminoAcid)
	if len(subset) == 0 {
		return "", apperrors.NewEmptySubsetError(fmt.Sprintf("no records for amino acid %q", aminoAcid)).
			WithContext("chart", ChartCodonUsageBar)
	}

	triplets := dataprocessing.Triplets(subset)
	species := dataprocessing.SpeciesOrder(subset, r.opts.SpeciesOrder)

	p := newPlot(fmt.Sprintf("Synonymous codon usage of %s", aminoAcid), "Codon", "Fraction")
	p.Y.Min = 0
	p.Y.Max = 1.05
	p.Legend.Top = true
	p.Legend.Left = false

	w, _ := r.size()
	groupWidth := 0.8 * w / vg.Length(len(triplets)+1)
	barWidth := groupWidth / vg.Length(len(species))

	for i, sp := range species {
		values := meanFractions(subset, sp, triplets)

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return "", renderError(ChartCodonUsageBar, err)
		}
		offset := (vg.Length(i) - vg.Length(len(species)-1)/2) * barWidth
		bars.Offset = offset
		bars.Color = r.speciesColor(sp, i)
		bars.LineStyle.Width = vg.Points(0.5)
		p.Add(bars)
		p.Legend.Add(sp, bars)

		labels, err := valueLabels(values)
		if err != nil {
			return "", renderError(ChartCodonUsageBar, err)
		}
		if labels != nil {
			labels.Offset = vg.Point{X: offset, Y: vg.Points(3)}
			p.Add(labels)
		}
	}
	p.NominalX(triplets...)

	path := r.paths.CodonUsageChartPath(aminoAcid)
	if err := r.savePlot(p, path); err != nil {
		return "", err
	}

	r.logger.Info("Codon usage chart rendered",
		slog.String("amino_acid", aminoAcid),
		slog.Int("codons", len(triplets)),
		slog.Int("species", len(species)))
	return path, nil
}

// meanFractions returns one value per triplet for species. Repeated entries
// are averaged; absent triplets are zero.
func meanFractions(records []domain.CodonRecord, species string, triplets []string) plotter.Values {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.Species == species {
			sums[rec.Triplet] += rec.Fraction
			counts[rec.Triplet]++
		}
	}

	values := make(plotter.Values, len(triplets))
	for i, t := range triplets {
		if counts[t] > 0 {
			values[i] = sums[t] / float64(counts[t])
		}
	}
	return values
}

// valueLabels annotates each positive bar with its value. It returns nil
// when nothing needs a label.
func valueLabels(values plotter.Values) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	for i, v := range values {
		if v > 0 {
			xys = append(xys, plotter.XY{X: float64(i), Y: v})
			texts = append(texts, fmt.Sprintf("%.2f", v))
		}
	}
	if len(xys) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	centerLabels(labels.TextStyle, text.YBottom)
	return labels, nil
}
