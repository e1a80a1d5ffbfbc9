package dataprocessing

import (
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "codonusage/internal/errors"
)

// EmptyCellPlaceholder stands in for blank cells in flattened text so token
// positions stay stable across ragged rows.
const EmptyCellPlaceholder = "None"

// FlattenWorkbook reads every cell of the workbook's active sheet row-major
// over the used range and joins their string forms with single spaces.
func FlattenWorkbook(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", apperrors.NewMissingInputError(filePath, err)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", apperrors.NewDataAccessError("failed to open workbook", err).
			WithContext("path", filePath)
	}
	defer f.Close()

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	if sheetName == "" {
		return "", apperrors.NewDataAccessError("workbook has no active sheet", nil).
			WithContext("path", filePath)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", apperrors.NewDataAccessError("failed to read sheet", err).
			WithContext("path", filePath).
			WithContext("sheet", sheetName)
	}

	return flattenRows(rows), nil
}

// flattenRows pads ragged rows to the widest row, so trailing blanks inside
// the used range are emitted as placeholders too.
func flattenRows(rows [][]string) string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var b strings.Builder
	first := true
	for _, row := range rows {
		for col := 0; col < width; col++ {
			value := EmptyCellPlaceholder
			if col < len(row) && row[col] != "" {
				value = row[col]
			}
			if !first {
				b.WriteByte(' ')
			}
			b.WriteString(value)
			first = false
		}
	}
	return b.String()
}
