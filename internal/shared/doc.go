// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a buffered slog handler for asserting
// log output and excelize-backed workbook fixtures for the extractor and
// analyzer tests:
//
//	logger, handler := testutil.NewTestLogger(t)
//	path := testutil.WriteSpeciesWorkbook(t, t.TempDir(), "human_raw.xlsx", entries)
//
// Nothing in this package is imported by production code paths.
package shared
