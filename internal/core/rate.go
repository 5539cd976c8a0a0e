// Package core holds the attendance register's domain model: the document
// value, its mutation operations, calendar utilities, and the monthly
// aggregation pass. It performs no I/O.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseRate converts a daily wage entered as text into a whole number of
// currency units. Both dot and comma decimal separators are accepted and
// the fractional part is rounded half-up, so "799.50" becomes 800. Money
// stays integral through the whole system; fractional rates only exist at
// the input boundary.
//
// Returns ErrInvalidRate for empty, signed, non-numeric, zero, or
// overflowing input.
func ParseRate(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidRate
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidRate
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidRate
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidRate
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidRate
		}
	}

	rate, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidRate
	}
	if len(fracPart) > 0 && fracPart[0] >= '5' {
		rate++
	}
	if rate <= 0 {
		return 0, ErrInvalidRate
	}
	return rate, nil
}
