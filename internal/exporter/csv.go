package exporter

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"codonusage/internal/config"
	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance. Relative file paths are
// placed in the output directory of paths; a nil paths keeps them as given.
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// WriteCodonCSV writes records with the codon table header. The file starts
// directly with the header row, without a BOM.
func (w *CSVWriter) WriteCodonCSV(filePath string, records []domain.CodonRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = encodeRecord(r)
	}

	err := w.WriteCSV(filePath, WriteOptions{
		Headers: domain.ColumnOrder,
		Records: rows,
	})
	if err != nil {
		return apperrors.NewStorageError("failed to write codon CSV", err).
			WithContext("path", w.resolvePath(filePath))
	}
	return nil
}

// WriteCodonCSV writes records to path with the codon table header.
func WriteCodonCSV(path string, records []domain.CodonRecord) error {
	return NewCSVWriter(nil).WriteCodonCSV(path, records)
}

// ReadCodonCSV reads a codon table written by WriteCodonCSV. A leading BOM
// is ignored and the Number column is optional.
func ReadCodonCSV(path string) ([]domain.CodonRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewMissingInputError(path, err)
		}
		return nil, apperrors.NewDataAccessError("failed to open CSV", err).WithContext("path", path)
	}
	defer file.Close()

	rows, err := readCSVRows(file)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err).WithContext("path", path)
	}

	records, err := decodeTable(rows)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}
	return records, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// resolvePath resolves a relative path against the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetOutputPath(filePath)
}
