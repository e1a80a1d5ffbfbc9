package domain

// EntropyRecord holds the Shannon entropy of synonymous codon usage for one
// amino acid within one species.
type EntropyRecord struct {
	AminoAcid string  `json:"amino_acid"`
	Species   string  `json:"species"`
	Entropy   float64 `json:"entropy"`
	Codons    int     `json:"codons"`
}

// EntropyMatrix is an entropy table pivoted to amino acid rows and species
// columns. Missing cells hold NaN.
type EntropyMatrix struct {
	AminoAcids []string    `json:"amino_acids"`
	Species    []string    `json:"species"`
	Values     [][]float64 `json:"values"`
}

// Empty reports whether the matrix has no cells.
func (m EntropyMatrix) Empty() bool {
	return len(m.AminoAcids) == 0 || len(m.Species) == 0
}

// TripletPair joins the frequency of one triplet in two species.
type TripletPair struct {
	Triplet string  `json:"triplet"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// CorrelationResult is the Pearson correlation of codon frequencies between
// two species plus the least-squares line Y = Intercept + Slope*X.
type CorrelationResult struct {
	SpeciesX  string        `json:"species_x"`
	SpeciesY  string        `json:"species_y"`
	R         float64       `json:"r"`
	Slope     float64       `json:"slope"`
	Intercept float64       `json:"intercept"`
	Pairs     []TripletPair `json:"pairs"`
}
