// Package expense turns inbound message text into ledger rows and
// answers aggregation queries over the stored history.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/classify"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/core"
	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/ledger"
)

// EventPublisher fans out a logged entry to interested consumers.
// Publishing is best-effort; the entry is already persisted.
type EventPublisher interface {
	PublishEntryLogged(ctx context.Context, e core.Entry) error
}

// DayTotal is one point of the multi-day aggregate.
type DayTotal struct {
	Day   string // YYYY-MM-DD
	Total decimal.Decimal
}

type Service struct {
	store      ledger.Store
	classifier *classify.Service
	events     EventPublisher // may be nil
	now        func() time.Time
}

func NewService(store ledger.Store, classifier *classify.Service, events EventPublisher) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		events:     events,
		now:        time.Now,
	}
}

// Log extracts amount and category from text and appends exactly one
// entry. Extraction failures degrade to defaults and are never errors;
// an append failure is returned so the user sees it instead of silently
// losing the expense.
func (s *Service) Log(ctx context.Context, text string) (core.Entry, error) {
	amount := s.classifier.ExtractAmount(ctx, text)
	category := s.classifier.DetectCategory(ctx, text)
	entry := core.NewEntry(s.now(), category, amount, text)

	if err := entry.Validate(); err != nil {
		return core.Entry{}, err
	}
	if err := s.store.AppendRow(ctx, entry.Row()); err != nil {
		return core.Entry{}, fmt.Errorf("append entry: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishEntryLogged(ctx, entry); err != nil {
			slog.WarnContext(ctx, "Failed to publish entry event", "error", err)
		}
	}
	return entry, nil
}

// TotalFor sums the amounts of all entries logged on day (YYYY-MM-DD).
// Report rows are skipped and malformed amounts contribute zero; the
// store is treated as partially trustworthy.
func (s *Service) TotalFor(ctx context.Context, day string) (decimal.Decimal, error) {
	rows, err := s.store.Rows(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read ledger: %w", err)
	}
	total := decimal.Zero
	for _, row := range rows {
		if core.IsReportRow(row) || len(row) < 3 {
			continue
		}
		if core.Day(row[0]) != day {
			continue
		}
		if amount, ok := core.ParseAmount(row[2]); ok {
			total = total.Add(amount)
		}
	}
	return total, nil
}

// DailyTotals maps every date present in the ledger to its summed
// amount, sorted ascending by date string.
func (s *Service) DailyTotals(ctx context.Context) ([]DayTotal, error) {
	rows, err := s.store.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	byDay := map[string]decimal.Decimal{}
	for _, row := range rows {
		if core.IsReportRow(row) || len(row) < 3 {
			continue
		}
		day := core.Day(row[0])
		if day == "" {
			continue
		}
		amount, ok := core.ParseAmount(row[2])
		if !ok {
			continue
		}
		byDay[day] = byDay[day].Add(amount)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DayTotal, 0, len(days))
	for _, day := range days {
		out = append(out, DayTotal{Day: day, Total: byDay[day]})
	}
	return out, nil
}

// HasEntriesOn reports whether at least one user entry (report rows
// excluded) exists for day.
func (s *Service) HasEntriesOn(ctx context.Context, day string) (bool, error) {
	rows, err := s.store.Rows(ctx)
	if err != nil {
		return false, fmt.Errorf("read ledger: %w", err)
	}
	for _, row := range rows {
		if core.IsReportRow(row) || len(row) == 0 {
			continue
		}
		if core.Day(row[0]) == day {
			return true, nil
		}
	}
	return false, nil
}

// AllRows returns the full row set with the header prepended, in the
// shape the spreadsheet exporter expects.
func (s *Service) AllRows(ctx context.Context) ([][]string, error) {
	rows, err := s.store.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	out := make([][]string, 0, len(rows)+1)
	out = append(out, ledger.Header)
	return append(out, rows...), nil
}

// AppendReportRow writes the synthetic daily-total row for day.
func (s *Service) AppendReportRow(ctx context.Context, day string, total decimal.Decimal) error {
	row := []string{core.ReportComment(day), "", total.StringFixed(2), ""}
	if err := s.store.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append report row: %w", err)
	}
	return nil
}

// Today returns the current day key from the service clock.
func (s *Service) Today() string {
	return s.now().Format(core.DayLayout)
}

// SetClock replaces the service clock. Tests use it to pin the day
// boundary.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
