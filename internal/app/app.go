package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"xinwen/internal/article"
	"xinwen/internal/config"
	"xinwen/internal/feedgen"
	"xinwen/internal/fetch"
	"xinwen/internal/ingest"
	"xinwen/internal/metrics"
	"xinwen/internal/ratelimit"
	"xinwen/internal/storage"
	"xinwen/internal/translate"
)

// Run executes one pipeline pass: load state, ingest new articles, merge with
// retention, persist, regenerate the output feed. Per-source and per-field
// failures degrade inside ingestion; an error returned here means the run
// failed before publishing, with the previous state left untouched.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, m *metrics.Metrics) error {
	start := time.Now()
	defer func() {
		m.RecordRun(time.Since(start))
	}()

	store := storage.New(cfg.StatePath, log)
	existing := store.Load()

	translator, closeTranslator, err := buildTranslator(ctx, cfg)
	if err != nil {
		m.SetError(err.Error())
		return fmt.Errorf("init translator: %w", err)
	}
	defer closeTranslator()

	budget := ratelimit.New(cfg.MaxTranslateRequests)
	adapter := translate.NewAdapter(translator, budget, log, m, cfg.RequestTimeout)
	ingestor := ingest.New(fetch.NewClient(cfg.RequestTimeout), adapter, log, m)

	fresh := ingestor.Run(ctx, cfg.Sources, article.Fingerprints(existing))
	log.Info("ingestion finished", "new", len(fresh), "existing", len(existing))

	merged := article.Merge(existing, fresh, cfg.MaxArticles)

	if err := store.Save(merged); err != nil {
		m.SetError(err.Error())
		return fmt.Errorf("persist state: %w", err)
	}

	doc := feedgen.Build(feedgen.ChannelInfo{
		Title:       cfg.Feed.Title,
		Link:        cfg.Feed.Link,
		Description: cfg.Feed.Description,
		Language:    cfg.Feed.Language,
	}, merged, time.Now())
	if err := feedgen.Write(cfg.FeedPath, doc); err != nil {
		m.SetError(err.Error())
		return fmt.Errorf("write feed: %w", err)
	}

	log.Info("run complete", "articles", len(merged), "new", len(fresh), "feed", cfg.FeedPath)
	return nil
}

func buildTranslator(ctx context.Context, cfg *config.Config) (translate.Translator, func(), error) {
	switch cfg.Translator {
	case "gemini":
		g, err := translate.NewGeminiTranslator(ctx, cfg.GeminiAPIKey, cfg.TargetLang)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	default:
		g, err := translate.NewGoogleTranslator(ctx, cfg.TranslateAPIKey, cfg.SourceLang, cfg.TargetLang)
		if err != nil {
			return nil, nil, err
		}
		return g, func() {}, nil
	}
}
