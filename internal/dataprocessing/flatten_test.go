package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "codonusage/internal/errors"
	"codonusage/internal/shared/testutil"
)

func TestFlattenWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkbook(t, dir, "human_raw.xlsx", [][]interface{}{
		{"TTT", "F", "0.45", "17.6", 800},
		{"GCT", nil, "A"},
	})

	text, err := FlattenWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, "TTT F 0.45 17.6 800 GCT None A None None", text)
}

func TestFlattenWorkbook_RoundTripsThroughParser(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSpeciesWorkbook(t, dir, "mouse_raw.xlsx", [][]string{
		{"TTT F 0.45 17.6 (800)", "TTC F 0.55 20.3 (1 020)"},
		{"GCT A 0.26 27.7 (1 234)"},
	})

	text, err := FlattenWorkbook(path)
	require.NoError(t, err)

	records := ParseCodonText(text, "Mouse")
	require.Len(t, records, 3)
	assert.Equal(t, "TTC", records[1].Triplet)
	assert.Equal(t, int64(1020), records[1].Number)
	assert.Equal(t, int64(1234), records[2].Number)
}

func TestFlattenWorkbook_UsesActiveSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two_sheets.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "ignored"))
	idx, err := f.NewSheet("Codons")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Codons", "A1", "ATG M 1.00 22.0 (10)"))
	f.SetActiveSheet(idx)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	text, err := FlattenWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, "ATG M 1.00 22.0 (10)", text)
}

func TestFlattenWorkbook_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := FlattenWorkbook(filepath.Join(dir, "absent.xlsx"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingInput))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

		_, err := FlattenWorkbook(path)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDataAccess))
	})
}

func TestFlattenRows(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{name: "no rows", rows: nil, want: ""},
		{name: "blank rows inside range", rows: [][]string{{"A", "B"}, {}, {"C"}}, want: "A B None None C None"},
		{name: "blank cells become placeholders", rows: [][]string{{"", "X", ""}}, want: "None X None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flattenRows(tt.rows))
		})
	}
}
