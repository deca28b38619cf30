package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// TimestampLayout is the wire format of the first ledger column.
	TimestampLayout = "2006-01-02 15:04"
	// DayLayout is the date prefix used for day bucketing.
	DayLayout = "2006-01-02"
)

// CategoryOther is the open-ended fallback category.
const CategoryOther = "другое"

type (
	// Entry is one logged expense. Entries are append-only: once written
	// to the ledger they are never updated or deleted.
	Entry struct {
		Time     time.Time
		Category string
		Amount   string // normalized decimal string, empty when extraction failed
		Comment  string
	}
)

var (
	ErrEmptyText     = errors.New("empty message text")
	ErrEmptyCategory = errors.New("empty category")
)

// NewEntry composes an entry from the extraction results and the original
// message text. The comment keeps the text unmodified except for the
// capitalized first rune.
func NewEntry(now time.Time, category, amount, text string) Entry {
	return Entry{
		Time:     now,
		Category: category,
		Amount:   amount,
		Comment:  Capitalize(text),
	}
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Comment) == "" {
		return ErrEmptyText
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Row renders the entry in ledger column order: date, category, amount, comment.
func (e Entry) Row() []string {
	return []string{e.Time.Format(TimestampLayout), e.Category, e.Amount, e.Comment}
}

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ReportComment builds the marker placed in the date column of a
// daily-total row, e.g. "**2024-01-01 итого**".
func ReportComment(day string) string {
	return "**" + day + " итого**"
}

// IsReportRow reports whether a ledger row is a daily-total row rather
// than a user entry. Report rows are recognizable by the ** marker in
// the date column; skipping them keeps aggregation from double counting
// once reports accumulate in the same table.
func IsReportRow(row []string) bool {
	return len(row) > 0 && strings.HasPrefix(row[0], "**")
}

// Day returns the YYYY-MM-DD prefix of a ledger timestamp cell, or ""
// when the cell is too short to contain one.
func Day(ts string) string {
	if len(ts) < len(DayLayout) {
		return ""
	}
	return ts[:len(DayLayout)]
}
