package classify

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
	last  struct{ system, user string }
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.last.system = system
	f.last.user = user
	return f.reply, f.err
}

func TestDetectCategoryKeywordSkipsFallback(t *testing.T) {
	fc := &fakeCompleter{reply: "транспорт"}
	s := NewService(fc, time.Second)
	if got := s.DetectCategory(context.Background(), "кофе 500"); got != "еда" {
		t.Fatalf("got %q, want еда", got)
	}
	if fc.calls != 0 {
		t.Fatalf("fallback invoked %d times for keyword text", fc.calls)
	}
}

func TestDetectCategoryFallback(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"known category", "транспорт", nil, "транспорт"},
		{"known with noise", "  Транспорт\n", nil, "транспорт"},
		{"unknown reply", "коммуналка", nil, "другое"},
		{"service error", "", errors.New("boom"), "другое"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewService(&fakeCompleter{reply: tc.reply, err: tc.err}, time.Second)
			if got := s.DetectCategory(context.Background(), "500"); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDetectCategoryNoCompleter(t *testing.T) {
	s := NewService(nil, time.Second)
	if got := s.DetectCategory(context.Background(), "что-то"); got != "другое" {
		t.Fatalf("got %q, want другое", got)
	}
}

func TestExtractAmountPatternWins(t *testing.T) {
	fc := &fakeCompleter{reply: "999"}
	s := NewService(fc, time.Second)
	if got := s.ExtractAmount(context.Background(), "обед 12,50"); got != "12.50" {
		t.Fatalf("got %q, want 12.50", got)
	}
	if fc.calls != 0 {
		t.Fatal("fallback invoked although the text contains a number")
	}
}

func TestExtractAmountFallback(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"digits", "500", nil, "500"},
		{"decimal comma", "12,50", nil, "12.50"},
		{"trailing newline", "500\n", nil, "500"},
		{"prose reply", "примерно 500 тг", nil, ""},
		{"service error", "", errors.New("timeout"), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewService(&fakeCompleter{reply: tc.reply, err: tc.err}, time.Second)
			if got := s.ExtractAmount(context.Background(), "обед на много"); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFallbackInstructions(t *testing.T) {
	fc := &fakeCompleter{reply: "другое"}
	s := NewService(fc, time.Second)
	s.DetectCategory(context.Background(), "500")
	if fc.last.system != categoryInstruction || fc.last.user != "500" {
		t.Fatalf("unexpected category request: %+v", fc.last)
	}
	s.ExtractAmount(context.Background(), "пятьсот")
	if fc.last.system != amountInstruction || fc.last.user != "пятьсот" {
		t.Fatalf("unexpected amount request: %+v", fc.last)
	}
}
