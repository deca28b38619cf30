// Package classify decides the category and amount of a free-text
// expense message. Local heuristics run first; only inconclusive text
// is sent to the fallback completion service. Both operations degrade
// to a defined default on any service failure and never return an
// error to the caller.
package classify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/core"
)

// Completer is the fallback classification capability: one system
// instruction, one user text, one free-text reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Transcriber converts voice audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

const (
	categoryInstruction = "Классифицируй текст по категории расхода: еда, топливо, транспорт, развлечения, другое."
	amountInstruction   = "Извлеки числовое значение из этого текста. Просто напиши число в цифрах, без текста и символов."

	// DefaultTimeout bounds every fallback call; expiry counts as a
	// classification failure.
	DefaultTimeout = 15 * time.Second
)

type Service struct {
	completer Completer
	timeout   time.Duration
}

func NewService(completer Completer, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{completer: completer, timeout: timeout}
}

// DetectCategory returns exactly one category name for text. A keyword
// hit answers immediately without touching the fallback service;
// otherwise the service reply is coerced to a known category or
// "другое". Never fails.
func (s *Service) DetectCategory(ctx context.Context, text string) string {
	if cat, ok := core.DetectKeywordCategory(text); ok {
		return cat
	}
	reply, err := s.complete(ctx, categoryInstruction, text)
	if err != nil {
		slog.WarnContext(ctx, "Category fallback failed, defaulting",
			"error", err, "default", core.CategoryOther)
		return core.CategoryOther
	}
	if cat, ok := core.KnownCategory(strings.ToLower(strings.TrimSpace(reply))); ok {
		return cat
	}
	return core.CategoryOther
}

// ExtractAmount returns the numeric amount found in text, or "" when
// neither the pattern match nor the fallback service yields a clean
// number. Never fails.
func (s *Service) ExtractAmount(ctx context.Context, text string) string {
	if amount, ok := core.FindAmount(text); ok {
		return amount
	}
	reply, err := s.complete(ctx, amountInstruction, text)
	if err != nil {
		slog.WarnContext(ctx, "Amount fallback failed, recording empty amount", "error", err)
		return ""
	}
	reply = strings.TrimSpace(reply)
	if !core.ValidAmount(reply) {
		slog.WarnContext(ctx, "Amount fallback returned non-numeric reply", "reply", reply)
		return ""
	}
	return core.NormalizeAmount(reply)
}

var errNoCompleter = errors.New("no completer configured")

func (s *Service) complete(ctx context.Context, system, user string) (string, error) {
	if s.completer == nil {
		return "", errNoCompleter
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.completer.Complete(ctx, system, user)
}
