package charts

import (
	"bytes"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codonusage/internal/config"
	"codonusage/internal/dataprocessing"
	apperrors "codonusage/internal/errors"
	"codonusage/internal/shared/testutil"
	"codonusage/pkg/contracts/domain"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newTestRenderer(t *testing.T) (*Renderer, *config.Paths) {
	t.Helper()
	paths := config.ResolvePaths(t.TempDir(), config.PathsConfig{
		OutputDir:        "charts",
		CombinedWorkbook: "c.xlsx",
		ProcessedCSV:     "p.csv",
	})
	opts := Options{
		WidthInches:  4,
		HeightInches: 3,
		DPI:          72,
		Palette:      map[string]string{"Human": "#4C72B0", "Mouse": "#55A868", "Yeast": "#C44E52"},
		SpeciesOrder: []string{"Human", "Mouse", "Yeast"},
	}
	return NewRenderer(paths, opts, slog.New(slog.NewTextHandler(io.Discard, nil))), paths
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature), "%s is not a PNG", path)
}

func assertEmptySubset(t *testing.T, path string, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptySubset))
	assert.Empty(t, path)
}

func TestRenderCodonUsageBar(t *testing.T) {
	r, paths := newTestRenderer(t)

	path, err := r.RenderCodonUsageBar(testutil.SampleRecords(), "L")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.OutputDir, "L_codon_usage.png"), path)
	assertPNG(t, path)

	t.Run("single codon amino acid", func(t *testing.T) {
		path, err := r.RenderCodonUsageBar(testutil.SampleRecords(), "W")
		require.NoError(t, err)
		assertPNG(t, path)
	})

	t.Run("amino acid absent", func(t *testing.T) {
		path, err := r.RenderCodonUsageBar(testutil.SampleRecords(), "Q")
		assertEmptySubset(t, path, err)
		assert.NoFileExists(t, paths.CodonUsageChartPath("Q"))
	})
}

func TestRenderCorrelation(t *testing.T) {
	r, paths := newTestRenderer(t)

	result, err := dataprocessing.Correlate(testutil.SampleRecords(), "Human", "Mouse")
	require.NoError(t, err)

	path, err := r.RenderCorrelation(result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.OutputDir, "human_mouse_correlation.png"), path)
	assertPNG(t, path)

	t.Run("constant frequencies have no regression line", func(t *testing.T) {
		flat := domain.CorrelationResult{
			SpeciesX:  "Human",
			SpeciesY:  "Yeast",
			R:         math.NaN(),
			Slope:     math.NaN(),
			Intercept: math.NaN(),
			Pairs:     []domain.TripletPair{{Triplet: "AAA", X: 1, Y: 2}, {Triplet: "AAG", X: 1, Y: 3}},
		}
		path, err := r.RenderCorrelation(flat)
		require.NoError(t, err)
		assertPNG(t, path)
	})

	t.Run("too few pairs", func(t *testing.T) {
		path, err := r.RenderCorrelation(domain.CorrelationResult{SpeciesX: "Human", SpeciesY: "Fly"})
		assertEmptySubset(t, path, err)
	})
}

func TestRenderEntropyHeatmap(t *testing.T) {
	r, paths := newTestRenderer(t)

	matrix := dataprocessing.PivotEntropy(dataprocessing.EntropyTable(testutil.SampleRecords()))
	path, err := r.RenderEntropyHeatmap(matrix)
	require.NoError(t, err)
	assert.Equal(t, paths.EntropyHeatmapPath(), path)
	assertPNG(t, path)

	t.Run("sparse matrix", func(t *testing.T) {
		sparse := dataprocessing.PivotEntropy([]domain.EntropyRecord{
			{AminoAcid: "L", Species: "Human", Entropy: 2.3},
			{AminoAcid: "S", Species: "Yeast", Entropy: 2.4},
		})
		path, err := r.RenderEntropyHeatmap(sparse)
		require.NoError(t, err)
		assertPNG(t, path)
	})

	t.Run("empty matrix", func(t *testing.T) {
		path, err := r.RenderEntropyHeatmap(domain.EntropyMatrix{})
		assertEmptySubset(t, path, err)
	})
}

func TestRenderFrequencyDistribution(t *testing.T) {
	r, paths := newTestRenderer(t)

	path, err := r.RenderFrequencyDistribution(testutil.SampleRecords(), []string{"Human", "Mouse", "Yeast"})
	require.NoError(t, err)
	assert.Equal(t, paths.FrequencyDistributionPath(), path)
	assertPNG(t, path)

	t.Run("same input gives identical image", func(t *testing.T) {
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = r.RenderFrequencyDistribution(testutil.SampleRecords(), []string{"Human", "Mouse", "Yeast"})
		require.NoError(t, err)
		second, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("no records", func(t *testing.T) {
		path, err := r.RenderFrequencyDistribution(nil, nil)
		assertEmptySubset(t, path, err)
	})
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{input: "#4C72B0", want: color.NRGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}},
		{input: "#fff", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{input: "#00000080", want: color.NRGBA{A: 0x80}},
		{input: "C44E52", want: color.NRGBA{R: 0xc4, G: 0x4e, B: 0x52, A: 0xff}},
		{input: "#12345", wantErr: true},
		{input: "#gggggg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexColor_TranslucentStaysValid(t *testing.T) {
	c, err := parseHexColor("#ffffff80")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}, c)

	r, g, b, a := c.RGBA()
	assert.LessOrEqual(t, r, a)
	assert.LessOrEqual(t, g, a)
	assert.LessOrEqual(t, b, a)
	assert.Equal(t, uint32(0x8080), a)
}

func TestSpeciesColor_FallsBackToDefaults(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.opts.Palette["Fly"] = "not-a-colour"

	assert.Equal(t, color.NRGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}, r.speciesColor("Human", 0))
	assert.NotNil(t, r.speciesColor("Fly", 3))
	assert.NotNil(t, r.speciesColor("Worm", 4))
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.Default())

	assert.Equal(t, 300, opts.DPI)
	assert.Equal(t, 10.0, opts.WidthInches)
	assert.Equal(t, []string{"Human", "Mouse", "Yeast"}, opts.SpeciesOrder)
}
