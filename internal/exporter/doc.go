// Package exporter reads and writes the combined codon table.
//
// The same six-column layout is used everywhere:
//
//	Triplet, Amino Acid, Fraction, Frequency, Number, Species
//
// WriteCombinedWorkbook and ReadCombinedWorkbook hand the table from the
// extractor to the analyzer through Sheet1 of an xlsx file. WriteCodonCSV
// writes the analyzer's processed copy as plain UTF-8 without a BOM;
// ReadCodonCSV also accepts files that start with one.
//
// Readers locate columns by header name, report absent required columns as
// a SCHEMA error and treat a missing Number column as zero counts.
package exporter
