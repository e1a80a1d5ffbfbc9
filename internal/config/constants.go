package config

// Application constants
const (
	// EnvPrefix namespaces every environment variable, e.g. CODON_LOGGING_LEVEL.
	EnvPrefix = "CODON"

	DefaultConfigFile       = "codon.yaml"
	DefaultCombinedWorkbook = "combined_codon_data.xlsx"
	DefaultCombinedSheet    = "Sheet1"
	DefaultProcessedCSV     = "processed_codon_data.csv"

	// Chart file names. The bar chart name is built from the amino acid.
	CodonUsageChartSuffix     = "_codon_usage.png"
	CorrelationChartSuffix    = "_correlation.png"
	EntropyHeatmapChart       = "codon_entropy_heatmap.png"
	FrequencyDistributionPlot = "frequency_distribution.png"
)
