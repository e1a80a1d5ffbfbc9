// Package services orchestrates the two batch stages of the codon usage
// pipeline.
//
// # Services
//
//	- ExtractionService: species workbooks -> combined workbook
//	- AnalysisService: combined workbook -> charts and processed CSV
//
// Both follow the same construction pattern:
//
//	svc := services.NewAnalysisServiceWithLogger(cfg, paths, providers.Metrics, logger)
//	table, err := svc.LoadTable(ctx)
//	if err != nil {
//	    return err
//	}
//	report, err := svc.Run(ctx, table)
//
// Progress lines for the operator are written to the Progress writer
// (stdout by default) while structured events go to the injected logger.
//
// # Error Handling
//
// Per-species and per-chart failures are collected in the returned reports.
// Only conditions that leave nothing to hand to the next stage are returned
// as errors:
//
//	- EMPTY_RESULT when no species produced data
//	- MISSING_INPUT or SCHEMA when the combined workbook is unusable
//	- STORAGE when an output file cannot be written
package services
