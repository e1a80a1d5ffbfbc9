// Package config provides centralized configuration management for the codon
// usage extractor and analyzer.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. The YAML file codon.yaml, or the file named by CODON_CONFIG_FILE
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CODON_<SECTION>_<FIELD>:
//
//	CODON_LOGGING_LEVEL=debug
//	CODON_PATHS_OUTPUT_DIR=out
//	CODON_ANALYSIS_BAR_AMINO_ACID=S
//	CODON_ANALYSIS_PALETTE=Human:#4C72B0,Mouse:#55A868
//
// The species list is ordered and therefore only configurable in YAML:
//
//	species:
//	  - name: Human
//	    file: human_raw.xlsx
//	  - name: Mouse
//	    file: mouse_raw.xlsx
//
// # Paths
//
// Paths resolves every configured location once; other packages receive a
// *Paths and never join file names themselves.
package config
