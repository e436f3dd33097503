package translate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"xinwen/internal/cache"
	"xinwen/internal/metrics"
	"xinwen/internal/ratelimit"
)

// Adapter applies the fail-soft rules around a Translator: empty input returns
// unchanged without a call, any failure substitutes the original text, every
// text is attempted at most once per run. Translation failure never aborts
// ingestion of an item.
type Adapter struct {
	tr      Translator
	budget  *ratelimit.Budget
	cache   *cache.Cache
	log     *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration
}

func NewAdapter(tr Translator, budget *ratelimit.Budget, log *slog.Logger, m *metrics.Metrics, timeout time.Duration) *Adapter {
	return &Adapter{
		tr:      tr,
		budget:  budget,
		cache:   cache.New(time.Hour),
		log:     log,
		metrics: m,
		timeout: timeout,
	}
}

// Field translates one text field, returning the original on any failure.
func (a *Adapter) Field(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if cached, ok := a.cache.Get(text); ok {
		return cached
	}

	if a.budget != nil && !a.budget.Take() {
		a.log.Warn("translation budget exhausted, keeping original", "text", snippet(text))
		return text
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.tr.Translate(ctx, text)
	if err != nil || strings.TrimSpace(out) == "" {
		a.log.Warn("translation failed, keeping original", "text", snippet(text), "err", err)
		a.metrics.IncrementTranslationFailures()
		return text
	}

	a.metrics.IncrementTranslationsOK()
	a.cache.Set(text, out)
	return out
}

func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= 50 {
		return s
	}
	return string(runes[:50]) + "..."
}
