package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/expense"
)

// Notifier delivers the report text to the configured owner chat.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// EventPublisher mirrors a completed report onto the event bus.
type EventPublisher interface {
	PublishReportSent(ctx context.Context, day, total string) error
}

// Job computes today's total, notifies the owner and appends the
// daily-total row. The two side effects are independent: either may
// fail without aborting the other, and both failures are reported.
type Job struct {
	expenses *expense.Service
	notifier Notifier       // nil when no owner chat is configured
	events   EventPublisher // nil when no broker is configured
}

func NewJob(expenses *expense.Service, notifier Notifier, events EventPublisher) *Job {
	return &Job{expenses: expenses, notifier: notifier, events: events}
}

func (j *Job) Run(ctx context.Context) error {
	day := j.expenses.Today()
	total, err := j.expenses.TotalFor(ctx, day)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", day, err)
	}

	var notifyErr error
	if j.notifier != nil {
		message := fmt.Sprintf("📊 Расходы за %s: %s тг", day, total.StringFixed(2))
		hasEntries, err := j.expenses.HasEntriesOn(ctx, day)
		if err != nil {
			notifyErr = fmt.Errorf("check entries for %s: %w", day, err)
		} else {
			if !hasEntries {
				message = "🔔 Сегодня ещё не было записей о расходах!"
			}
			notifyErr = j.notifier.Notify(ctx, message)
		}
	}

	appendErr := j.expenses.AppendReportRow(ctx, day, total)

	if notifyErr == nil && appendErr == nil {
		slog.InfoContext(ctx, "Daily report completed", "day", day, "total", total.StringFixed(2))
		if j.events != nil {
			if err := j.events.PublishReportSent(ctx, day, total.StringFixed(2)); err != nil {
				slog.WarnContext(ctx, "Failed to publish report event", "error", err)
			}
		}
		return nil
	}
	return errors.Join(notifyErr, appendErr)
}
