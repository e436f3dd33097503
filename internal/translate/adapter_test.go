package translate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"xinwen/internal/metrics"
	"xinwen/internal/ratelimit"
)

type stubTranslator struct {
	calls int
	fn    func(text string) (string, error)
}

func (s *stubTranslator) Translate(_ context.Context, text string) (string, error) {
	s.calls++
	return s.fn(text)
}

func newTestAdapter(tr Translator, budget *ratelimit.Budget) *Adapter {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAdapter(tr, budget, log, metrics.New(), 5*time.Second)
}

func TestFieldEmptyInputSkipsTranslator(t *testing.T) {
	t.Parallel()

	tr := &stubTranslator{fn: func(text string) (string, error) { return "译文", nil }}
	a := newTestAdapter(tr, nil)

	if got := a.Field(context.Background(), "   "); got != "   " {
		t.Fatalf("whitespace input must pass through, got %q", got)
	}
	if tr.calls != 0 {
		t.Fatalf("translator called %d times for empty input", tr.calls)
	}
}

func TestFieldPassThroughOnError(t *testing.T) {
	t.Parallel()

	tr := &stubTranslator{fn: func(text string) (string, error) { return "", errors.New("quota exceeded") }}
	a := newTestAdapter(tr, nil)

	if got := a.Field(context.Background(), "Storm warning issued"); got != "Storm warning issued" {
		t.Fatalf("failed translation must keep original, got %q", got)
	}
	if tr.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", tr.calls)
	}
}

func TestFieldCachesRepeatedText(t *testing.T) {
	t.Parallel()

	tr := &stubTranslator{fn: func(text string) (string, error) { return "风暴警告", nil }}
	a := newTestAdapter(tr, nil)

	first := a.Field(context.Background(), "Storm warning")
	second := a.Field(context.Background(), "Storm warning")
	if first != "风暴警告" || second != "风暴警告" {
		t.Fatalf("unexpected translations: %q, %q", first, second)
	}
	if tr.calls != 1 {
		t.Fatalf("repeated text should hit the cache, got %d calls", tr.calls)
	}
}

func TestFieldBudgetExhaustedKeepsOriginal(t *testing.T) {
	t.Parallel()

	tr := &stubTranslator{fn: func(text string) (string, error) { return "译文", nil }}
	a := newTestAdapter(tr, ratelimit.New(1))

	if got := a.Field(context.Background(), "first"); got != "译文" {
		t.Fatalf("budget of one should allow the first call, got %q", got)
	}
	if got := a.Field(context.Background(), "second"); got != "second" {
		t.Fatalf("exhausted budget must keep original, got %q", got)
	}
	if tr.calls != 1 {
		t.Fatalf("expected one translator call, got %d", tr.calls)
	}
}
