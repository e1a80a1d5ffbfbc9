package dataprocessing

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"codonusage/pkg/contracts/domain"
)

// codonPattern is the whole record grammar:
//
//	TRIPLET AMINOACID FRACTION FREQUENCY (NUMBER)
//
// Fields are separated by any whitespace. NUMBER may contain spaces used as
// thousands separators, e.g. "(1 234)".
const codonPattern = `([A-Z]{3})\s+([A-Z*])\s+(\d+(?:\.\d*)?|\.\d+)\s+(\d+(?:\.\d*)?|\.\d+)\s+\((\d[\d ]*)\)`

var codonRegexp = regexp.MustCompile(codonPattern)

// CodonGrammar returns the record pattern used by ParseCodonText.
func CodonGrammar() string {
	return codonPattern
}

// ParseCodonText extracts every codon record from flattened cell text and
// tags it with species. Matches are non-overlapping and kept in text order.
// Text without any match yields an empty, non-nil slice.
func ParseCodonText(text, species string) []domain.CodonRecord {
	matches := codonRegexp.FindAllStringSubmatch(text, -1)
	records := make([]domain.CodonRecord, 0, len(matches))

	for _, m := range matches {
		record, err := toCodonRecord(m, species)
		if err != nil {
			slog.Warn("Skipping codon entry with out-of-range value",
				slog.String("species", species),
				slog.String("entry", m[0]),
				slog.String("error", err.Error()))
			continue
		}
		records = append(records, record)
	}

	return records
}

func toCodonRecord(m []string, species string) (domain.CodonRecord, error) {
	fraction, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return domain.CodonRecord{}, err
	}
	frequency, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return domain.CodonRecord{}, err
	}
	number, err := strconv.ParseInt(strings.ReplaceAll(m[5], " ", ""), 10, 64)
	if err != nil {
		return domain.CodonRecord{}, err
	}

	return domain.CodonRecord{
		Triplet:   m[1],
		AminoAcid: m[2],
		Fraction:  fraction,
		Frequency: frequency,
		Number:    number,
		Species:   species,
	}, nil
}
