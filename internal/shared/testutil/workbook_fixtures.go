package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"codonusage/pkg/contracts/domain"
)

// HumanLeucineText is a flattened-cell snippet in the layout of the codon
// usage exports, covering the six leucine codons.
const HumanLeucineText = "TTA L 0.07 7.7 (1 032) TTG L 0.13 12.9 (1 740) " +
	"CTT L 0.13 13.2 (1 780) CTC L 0.20 19.6 (2 640) CTA L 0.07 7.2 (969) CTG L 0.40 39.6 (5 334)"

// WriteWorkbook writes rows to Sheet1 of a new workbook at dir/name and
// returns the path. Nil cells are left empty.
func WriteWorkbook(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteSpeciesWorkbook writes a raw export whose cells split each codon entry
// across columns, the way scraped tables arrive.
func WriteSpeciesWorkbook(t *testing.T, dir, name string, entries [][]string) string {
	t.Helper()

	rows := make([][]interface{}, 0, len(entries)+1)
	rows = append(rows, []interface{}{"Codon usage table"})
	for _, e := range entries {
		row := make([]interface{}, len(e))
		for i, c := range e {
			row[i] = c
		}
		rows = append(rows, row)
	}
	return WriteWorkbook(t, dir, name, rows)
}

// SampleRecords returns a small multi-species table with two amino acids.
func SampleRecords() []domain.CodonRecord {
	return []domain.CodonRecord{
		{Triplet: "TTA", AminoAcid: "L", Fraction: 0.07, Frequency: 7.7, Number: 1032, Species: "Human"},
		{Triplet: "CTG", AminoAcid: "L", Fraction: 0.40, Frequency: 39.6, Number: 5334, Species: "Human"},
		{Triplet: "TGG", AminoAcid: "W", Fraction: 1.00, Frequency: 13.2, Number: 1780, Species: "Human"},
		{Triplet: "TTA", AminoAcid: "L", Fraction: 0.06, Frequency: 6.7, Number: 880, Species: "Mouse"},
		{Triplet: "CTG", AminoAcid: "L", Fraction: 0.39, Frequency: 39.5, Number: 5120, Species: "Mouse"},
		{Triplet: "TGG", AminoAcid: "W", Fraction: 1.00, Frequency: 12.5, Number: 1610, Species: "Mouse"},
		{Triplet: "TTA", AminoAcid: "L", Fraction: 0.28, Frequency: 26.2, Number: 3400, Species: "Yeast"},
		{Triplet: "CTG", AminoAcid: "L", Fraction: 0.11, Frequency: 10.5, Number: 1360, Species: "Yeast"},
	}
}
