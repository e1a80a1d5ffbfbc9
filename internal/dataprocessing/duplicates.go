package dataprocessing

import (
	"context"
	"log/slog"

	"codonusage/pkg/contracts/domain"
)

// DuplicateKey is a (Triplet, Species) pair that occurs more than once.
type DuplicateKey struct {
	Key   domain.CodonKey
	Count int
}

// FindDuplicateKeys lists repeated (Triplet, Species) keys in order of first
// occurrence. Records are not modified.
func FindDuplicateKeys(records []domain.CodonRecord) []DuplicateKey {
	counts := make(map[domain.CodonKey]int)
	var order []domain.CodonKey
	for _, r := range records {
		k := r.Key()
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	var dups []DuplicateKey
	for _, k := range order {
		if counts[k] > 1 {
			dups = append(dups, DuplicateKey{Key: k, Count: counts[k]})
		}
	}
	return dups
}

// AuditDuplicates logs a warning per repeated key and returns how many keys
// were repeated. Duplicates are kept in the table.
func AuditDuplicates(ctx context.Context, logger *slog.Logger, records []domain.CodonRecord) int {
	if logger == nil {
		logger = slog.Default()
	}
	dups := FindDuplicateKeys(records)
	for _, d := range dups {
		logger.WarnContext(ctx, "Duplicate codon entry",
			slog.String("triplet", d.Key.Triplet),
			slog.String("species", d.Key.Species),
			slog.Int("occurrences", d.Count))
	}
	return len(dups)
}
