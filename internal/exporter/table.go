package exporter

import (
	"fmt"
	"strings"

	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

// MissingColumns returns the required columns absent from header, in the
// order of domain.RequiredColumns.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range domain.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func encodeRecord(r domain.CodonRecord) []string {
	return []string{
		r.Triplet,
		r.AminoAcid,
		formatFloat(r.Fraction),
		formatFloat(r.Frequency),
		formatInt(r.Number),
		r.Species,
	}
}

// decodeTable maps a header row plus data rows onto codon records. Columns
// are located by name so extra or reordered columns are tolerated.
func decodeTable(rows [][]string) ([]domain.CodonRecord, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewSchemaError(domain.RequiredColumns)
	}

	header := rows[0]
	if missing := MissingColumns(header); len(missing) > 0 {
		return nil, apperrors.NewSchemaError(missing)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]domain.CodonRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		line := n + 2

		fraction, err := parseFloat(cell(row, domain.ColumnFraction))
		if err != nil {
			return nil, rowError(line, domain.ColumnFraction, err)
		}
		frequency, err := parseFloat(cell(row, domain.ColumnFrequency))
		if err != nil {
			return nil, rowError(line, domain.ColumnFrequency, err)
		}
		number, err := parseInt(cell(row, domain.ColumnNumber))
		if err != nil {
			return nil, rowError(line, domain.ColumnNumber, err)
		}

		records = append(records, domain.CodonRecord{
			Triplet:   cell(row, domain.ColumnTriplet),
			AminoAcid: cell(row, domain.ColumnAminoAcid),
			Fraction:  fraction,
			Frequency: frequency,
			Number:    number,
			Species:   cell(row, domain.ColumnSpecies),
		})
	}
	return records, nil
}

func rowError(line int, column string, err error) error {
	return apperrors.NewParsingError(fmt.Sprintf("row %d: invalid %s", line, column), err).
		WithContext("row", line).
		WithContext("column", column)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
