package dataprocessing

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	apperrors "codonusage/internal/errors"
	"codonusage/pkg/contracts/domain"
)

// FilterAminoAcid returns the records of one amino acid in table order.
func FilterAminoAcid(records []domain.CodonRecord, aminoAcid string) []domain.CodonRecord {
	var out []domain.CodonRecord
	for _, r := range records {
		if r.AminoAcid == aminoAcid {
			out = append(out, r)
		}
	}
	return out
}

// JoinOnTriplet inner-joins the records of speciesX and speciesY on Triplet.
// Pairs follow the order of speciesX's records; a triplet repeated in either
// species produces one pair per combination.
func JoinOnTriplet(records []domain.CodonRecord, speciesX, speciesY string) []domain.TripletPair {
	yByTriplet := make(map[string][]float64)
	for _, r := range records {
		if r.Species == speciesY {
			yByTriplet[r.Triplet] = append(yByTriplet[r.Triplet], r.Frequency)
		}
	}

	var pairs []domain.TripletPair
	for _, r := range records {
		if r.Species != speciesX {
			continue
		}
		for _, y := range yByTriplet[r.Triplet] {
			pairs = append(pairs, domain.TripletPair{Triplet: r.Triplet, X: r.Frequency, Y: y})
		}
	}
	return pairs
}

// Correlate computes the Pearson correlation of codon frequencies between two
// species and the least-squares line through the joined pairs. R is NaN when
// either side has zero variance.
func Correlate(records []domain.CodonRecord, speciesX, speciesY string) (domain.CorrelationResult, error) {
	pairs := JoinOnTriplet(records, speciesX, speciesY)
	result := domain.CorrelationResult{SpeciesX: speciesX, SpeciesY: speciesY, Pairs: pairs}

	if len(pairs) < 2 {
		return result, apperrors.NewEmptySubsetError("not enough shared triplets for correlation").
			WithContext("species_x", speciesX).
			WithContext("species_y", speciesY).
			WithContext("pairs", len(pairs))
	}

	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i] = p.X
		ys[i] = p.Y
	}

	result.R = stat.Correlation(xs, ys, nil)
	result.Intercept, result.Slope = stat.LinearRegression(xs, ys, nil, false)
	return result, nil
}

// EntropyTable computes the entropy of Fraction for every (amino acid,
// species) group with more than one codon, sorted by amino acid then species.
func EntropyTable(records []domain.CodonRecord) []domain.EntropyRecord {
	type groupKey struct{ aminoAcid, species string }

	groups := make(map[groupKey][]float64)
	for _, r := range records {
		k := groupKey{r.AminoAcid, r.Species}
		groups[k] = append(groups[k], r.Fraction)
	}

	out := make([]domain.EntropyRecord, 0, len(groups))
	for k, fractions := range groups {
		if len(fractions) < 2 {
			continue
		}
		out = append(out, domain.EntropyRecord{
			AminoAcid: k.aminoAcid,
			Species:   k.species,
			Entropy:   ShannonEntropy(fractions),
			Codons:    len(fractions),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AminoAcid != out[j].AminoAcid {
			return out[i].AminoAcid < out[j].AminoAcid
		}
		return out[i].Species < out[j].Species
	})
	return out
}

// PivotEntropy lays entropy records out as a sorted amino acid by species
// grid. Cells without a record are NaN.
func PivotEntropy(entries []domain.EntropyRecord) domain.EntropyMatrix {
	aaIndex := make(map[string]int)
	spIndex := make(map[string]int)
	var aminoAcids, species []string

	for _, e := range entries {
		if _, ok := aaIndex[e.AminoAcid]; !ok {
			aaIndex[e.AminoAcid] = 0
			aminoAcids = append(aminoAcids, e.AminoAcid)
		}
		if _, ok := spIndex[e.Species]; !ok {
			spIndex[e.Species] = 0
			species = append(species, e.Species)
		}
	}
	sort.Strings(aminoAcids)
	sort.Strings(species)
	for i, aa := range aminoAcids {
		aaIndex[aa] = i
	}
	for i, sp := range species {
		spIndex[sp] = i
	}

	values := make([][]float64, len(aminoAcids))
	for i := range values {
		row := make([]float64, len(species))
		for j := range row {
			row[j] = math.NaN()
		}
		values[i] = row
	}
	for _, e := range entries {
		values[aaIndex[e.AminoAcid]][spIndex[e.Species]] = e.Entropy
	}

	return domain.EntropyMatrix{AminoAcids: aminoAcids, Species: species, Values: values}
}

// SpeciesOrder returns the species present in records, listing those named in
// preferred first and in that order, then the rest in first-seen order.
func SpeciesOrder(records []domain.CodonRecord, preferred []string) []string {
	present := make(map[string]bool)
	var seen []string
	for _, r := range records {
		if !present[r.Species] {
			present[r.Species] = true
			seen = append(seen, r.Species)
		}
	}

	order := make([]string, 0, len(seen))
	placed := make(map[string]bool)
	for _, sp := range preferred {
		if present[sp] && !placed[sp] {
			order = append(order, sp)
			placed[sp] = true
		}
	}
	for _, sp := range seen {
		if !placed[sp] {
			order = append(order, sp)
		}
	}
	return order
}

// FrequenciesBySpecies groups Frequency values by species in table order.
func FrequenciesBySpecies(records []domain.CodonRecord) map[string][]float64 {
	out := make(map[string][]float64)
	for _, r := range records {
		out[r.Species] = append(out[r.Species], r.Frequency)
	}
	return out
}

// Triplets returns the distinct triplets of records in first-seen order.
func Triplets(records []domain.CodonRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if !seen[r.Triplet] {
			seen[r.Triplet] = true
			out = append(out, r.Triplet)
		}
	}
	return out
}
