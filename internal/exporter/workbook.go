package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"codonusage/internal/config"
	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

// WriteCombinedWorkbook writes records to a single-sheet workbook with the
// codon table header. An existing file is replaced.
func WriteCombinedWorkbook(path string, records []domain.CodonRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(config.DefaultCombinedSheet)
	if err != nil {
		return apperrors.NewStorageError("failed to create sheet writer", err)
	}

	header := make([]interface{}, len(domain.ColumnOrder))
	for i, col := range domain.ColumnOrder {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		return apperrors.NewStorageError("failed to write header", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("failed to address row", err)
		}
		row := []interface{}{r.Triplet, r.AminoAcid, r.Fraction, r.Frequency, r.Number, r.Species}
		if err := sw.SetRow(cell, row); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write row %d", i+2), err)
		}
	}

	if err := sw.Flush(); err != nil {
		return apperrors.NewStorageError("failed to flush sheet", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	slog.Info("Combined workbook written",
		slog.String("path", path),
		slog.Int("record_count", len(records)))
	return nil
}

// ReadCombinedWorkbook loads the codon table from the combined workbook.
// Required columns are checked before any row is read; Number is optional.
func ReadCombinedWorkbook(path string) ([]domain.CodonRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewMissingInputError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	// Raw values keep every digit; formatted values round to 15 significant digits.
	rows, err := f.GetRows(config.DefaultCombinedSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", config.DefaultCombinedSheet)
	}

	records, err := decodeTable(rows)
	if err != nil {
		return nil, err
	}

	slog.Debug("Combined workbook loaded",
		slog.String("path", path),
		slog.Int("record_count", len(records)))
	return records, nil
}
