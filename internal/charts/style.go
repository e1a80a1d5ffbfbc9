package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

var (
	scatterColor    = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xcc}
	regressionColor = color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	stripColor      = color.NRGBA{A: 0x4d}
)

// parseHexColor accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA. The alpha
// channel is straight, not premultiplied.
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, ch := range hex {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		hex = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// newPlot creates a plot with the shared title and axis styling.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(10)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	return p
}

// centerLabels aligns every label of a plotter.Labels on its point.
func centerLabels(styles []text.Style, yAlign text.YAlignment) {
	for i := range styles {
		styles[i].XAlign = text.XCenter
		styles[i].YAlign = yAlign
	}
}
