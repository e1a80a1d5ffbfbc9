// Package charts renders the analyzer's four PNG charts with gonum/plot:
//
//   - <aa>_codon_usage.png: grouped bars of synonymous codon Fraction per species
//   - <x>_<y>_correlation.png: frequency scatter of two species with regression line
//   - codon_entropy_heatmap.png: amino acid by species entropy grid
//   - frequency_distribution.png: per-species box plot with a jittered strip
//
// Every Render method returns the written path, or an EMPTY_SUBSET error
// without touching the filesystem when its input has nothing to draw.
package charts
