package domain

// Column names of the combined codon table. The order of ColumnOrder is the
// order used by every tabular export.
const (
	ColumnTriplet   = "Triplet"
	ColumnAminoAcid = "Amino Acid"
	ColumnFraction  = "Fraction"
	ColumnFrequency = "Frequency"
	ColumnNumber    = "Number"
	ColumnSpecies   = "Species"
)

// ColumnOrder is the exact header of the combined workbook and the CSV export.
var ColumnOrder = []string{
	ColumnTriplet,
	ColumnAminoAcid,
	ColumnFraction,
	ColumnFrequency,
	ColumnNumber,
	ColumnSpecies,
}

// RequiredColumns must be present for the analyzer to run. Number is optional.
var RequiredColumns = []string{
	ColumnTriplet,
	ColumnAminoAcid,
	ColumnFraction,
	ColumnFrequency,
	ColumnSpecies,
}

// StopCodon is the amino acid marker used for stop codons.
const StopCodon = "*"

// CodonRecord is one row of codon usage for a single species.
type CodonRecord struct {
	Triplet   string  `json:"triplet" yaml:"triplet"`
	AminoAcid string  `json:"amino_acid" yaml:"amino_acid"`
	Fraction  float64 `json:"fraction" yaml:"fraction"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Number    int64   `json:"number" yaml:"number"`
	Species   string  `json:"species" yaml:"species"`
}

// Key identifies a record within a dataset.
func (r CodonRecord) Key() CodonKey {
	return CodonKey{Triplet: r.Triplet, Species: r.Species}
}

// CodonKey is the (Triplet, Species) pair that should be unique in a
// well-formed dataset.
type CodonKey struct {
	Triplet string
	Species string
}

// SpeciesSource maps a species label to the workbook holding its raw table.
type SpeciesSource struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	File string `yaml:"file" json:"file" validate:"required"`
}
