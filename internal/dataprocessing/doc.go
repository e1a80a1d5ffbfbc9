// Package dataprocessing turns raw codon usage workbooks into codon records
// and computes the statistics the analyzer charts.
//
// # Extraction
//
// A species workbook is flattened to text (FlattenWorkbook) and scanned with
// a single record grammar (ParseCodonText):
//
//	TTT F 0.45 17.6 (800)
//	GCT A 0.26 27.7 (1 234)
//
// Each match becomes one domain.CodonRecord tagged with the species name.
// The Aggregator runs this for every configured species in order and reports
// per-species success or failure without stopping the batch:
//
//	agg := dataprocessing.NewAggregator(paths.InputDir, logger)
//	report := agg.Extract(ctx, cfg.Species)
//	if report.Status() == dataprocessing.StatusEmpty {
//	    // nothing to write
//	}
//
// # Statistics
//
// ShannonEntropy, EntropyTable and PivotEntropy measure synonymous codon
// bias. Correlate joins two species on triplet and computes Pearson r with
// a least-squares line using gonum/stat.
//
// Repeated (Triplet, Species) keys are reported by FindDuplicateKeys and
// AuditDuplicates but left in the data.
package dataprocessing
