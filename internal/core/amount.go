// Package core holds the expense domain: ledger entries, the category
// keyword table and the amount pattern extraction.
//
// Amounts travel as decimal strings with a dot separator. Extraction
// accepts both "500", "12.50" and "12,50" spellings; the comma form is
// normalized to the dot form byte-for-byte on the matched digits.
package core

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	amountRe     = regexp.MustCompile(`\d+[.,]?\d*`)
	amountOnlyRe = regexp.MustCompile(`^\d+[.,]?\d*$`)
)

// FindAmount returns the first integer-or-decimal substring of text,
// normalized to a dot separator. An explicit number in the text always
// wins over any other extraction signal.
func FindAmount(text string) (string, bool) {
	m := amountRe.FindString(text)
	if m == "" {
		return "", false
	}
	return NormalizeAmount(m), true
}

// NormalizeAmount replaces a decimal comma with a dot.
func NormalizeAmount(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// ValidAmount reports whether s (after trimming) is nothing but an
// integer-or-decimal number. Used to vet fallback-service replies.
func ValidAmount(s string) bool {
	return amountOnlyRe.MatchString(strings.TrimSpace(s))
}

// ParseAmount parses a ledger amount cell for aggregation. Empty or
// malformed cells report false; historical rows are only partially
// trustworthy and never fail a query.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = NormalizeAmount(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
