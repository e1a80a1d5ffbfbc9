package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codonusage/internal/config"
	apperrors "codonusage/internal/errors"
	"codonusage/internal/shared/testutil"
	"codonusage/pkg/contracts/domain"
)

func TestCSVWriter_WriteCSV(t *testing.T) {
	tempDir := t.TempDir()
	writer := NewCSVWriter(config.ResolvePaths(tempDir, config.PathsConfig{
		OutputDir:        "out",
		CombinedWorkbook: "c.xlsx",
		ProcessedCSV:     "p.csv",
	}))

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		validate func(t *testing.T, content []byte)
	}{
		{
			name:     "basic write with headers",
			filePath: "basic.csv",
			options: WriteOptions{
				Headers: []string{"Triplet", "Species"},
				Records: [][]string{{"TTT", "Human"}, {"TTC", "Mouse"}},
			},
			validate: func(t *testing.T, content []byte) {
				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Equal(t, []string{"Triplet,Species", "TTT,Human", "TTC,Mouse"}, lines)
			},
		},
		{
			name:     "write with BOM prefix",
			filePath: "bom.csv",
			options: WriteOptions{
				Headers:   []string{"Triplet"},
				Records:   [][]string{{"TTT"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, content []byte) {
				assert.True(t, bytes.HasPrefix(content, utf8BOM))
			},
		},
		{
			name:     "values needing quotes",
			filePath: "quoted.csv",
			options: WriteOptions{
				Headers: []string{"Amino Acid", "Note"},
				Records: [][]string{{"*", "stop, opal"}},
			},
			validate: func(t *testing.T, content []byte) {
				assert.Contains(t, string(content), `*,"stop, opal"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, writer.WriteCSV(tt.filePath, tt.options))

			content, err := os.ReadFile(filepath.Join(tempDir, "out", tt.filePath))
			require.NoError(t, err)
			tt.validate(t, content)
		})
	}
}

func TestCSVWriter_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append.csv")
	writer := NewCSVWriter(nil)

	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"A"}, Records: [][]string{{"1"}}, BOMPrefix: true}))
	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"A"}, Records: [][]string{{"2"}}, Append: true, BOMPrefix: true}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(utf8BOM)+"A\n1\n2\n", string(content))
}

func TestWriteCodonCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_codon_data.csv")
	records := testutil.SampleRecords()

	require.NoError(t, WriteCodonCSV(path, records))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(content, utf8BOM), "processed CSV carries no BOM")
	firstLine := strings.SplitN(string(content), "\n", 2)[0]
	assert.Equal(t, "Triplet,Amino Acid,Fraction,Frequency,Number,Species", firstLine)

	got, err := ReadCodonCSV(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteCodonCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCodonCSV(path, nil))

	got, err := ReadCodonCSV(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadCodonCSV(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("without BOM and with reordered columns", func(t *testing.T) {
		path := write("reordered.csv", "Species,Triplet,Amino Acid,Frequency,Fraction\nHuman,TTT,F,17.6,0.45\n")

		got, err := ReadCodonCSV(path)
		require.NoError(t, err)
		assert.Equal(t, []domain.CodonRecord{
			{Triplet: "TTT", AminoAcid: "F", Fraction: 0.45, Frequency: 17.6, Species: "Human"},
		}, got)
	})

	t.Run("leading BOM is stripped", func(t *testing.T) {
		path := filepath.Join(dir, "bom.csv")
		require.NoError(t, NewCSVWriter(nil).WriteCSV(path, WriteOptions{
			Headers:   domain.ColumnOrder,
			Records:   [][]string{{"TTT", "F", "0.45", "17.6", "800", "Human"}},
			BOMPrefix: true,
		}))

		got, err := ReadCodonCSV(path)
		require.NoError(t, err)
		assert.Equal(t, []domain.CodonRecord{
			{Triplet: "TTT", AminoAcid: "F", Fraction: 0.45, Frequency: 17.6, Number: 800, Species: "Human"},
		}, got)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		path := write("blank.csv", "Triplet,Amino Acid,Fraction,Frequency,Number,Species\n,,,,,\nTTT,F,0.45,17.6,800,Human\n")

		got, err := ReadCodonCSV(path)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("missing columns", func(t *testing.T) {
		path := write("schema.csv", "Triplet,Fraction\nTTT,0.45\n")

		_, err := ReadCodonCSV(path)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, []string{"Amino Acid", "Frequency", "Species"}, appErr.Context["missing_columns"])
		assert.Equal(t, path, appErr.Context["path"])
	})

	t.Run("bad number", func(t *testing.T) {
		path := write("bad.csv", "Triplet,Amino Acid,Fraction,Frequency,Species\nTTT,F,lots,17.6,Human\n")

		_, err := ReadCodonCSV(path)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadCodonCSV(filepath.Join(dir, "absent.csv"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingInput))
	})
}

func TestMissingColumns(t *testing.T) {
	assert.Empty(t, MissingColumns(domain.ColumnOrder))
	assert.Empty(t, MissingColumns([]string{" Triplet ", "Amino Acid", "Fraction", "Frequency", "Species"}))
	assert.Equal(t, domain.RequiredColumns, MissingColumns(nil))
}
