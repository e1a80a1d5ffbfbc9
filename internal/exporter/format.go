package exporter

import (
	"strconv"
	"strings"
)

// formatFloat formats a float64 with the shortest representation that
// round-trips, so 0.45 stays 0.45 and 17.6 stays 17.6.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// parseFloat parses a table cell. Surrounding whitespace is ignored.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseInt parses a count cell. Empty cells are zero and integral floats
// such as "800.0" are accepted.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, &strconv.NumError{Func: "parseInt", Num: s, Err: strconv.ErrSyntax}
	}
	return int64(f), nil
}
