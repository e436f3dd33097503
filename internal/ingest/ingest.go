package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"xinwen/internal/article"
	"xinwen/internal/fetch"
	"xinwen/internal/metrics"
	"xinwen/internal/translate"
)

const defaultConcurrency = 4

// Ingestor turns configured sources into translated new articles. Known
// fingerprints are filtered before translation, so persisted items are never
// re-translated.
type Ingestor struct {
	fetcher     fetch.Fetcher
	translator  *translate.Adapter
	log         *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	concurrency int
}

func New(fetcher fetch.Fetcher, translator *translate.Adapter, log *slog.Logger, m *metrics.Metrics) *Ingestor {
	return &Ingestor{
		fetcher:     fetcher,
		translator:  translator,
		log:         log,
		metrics:     m,
		now:         time.Now,
		concurrency: defaultConcurrency,
	}
}

// Run fetches every source and returns only the genuinely new articles.
// Sources run concurrently; a failing source is logged and skipped without
// affecting the others. Output order is irrelevant, the merge step re-sorts.
func (in *Ingestor) Run(ctx context.Context, sources []fetch.Source, known map[string]struct{}) []article.Article {
	results := make(chan []article.Article, len(sources))
	sem := make(chan struct{}, in.concurrency)
	var wg sync.WaitGroup

	for _, src := range sources {
		wg.Add(1)
		sem <- struct{}{}
		go func(src fetch.Source) {
			defer wg.Done()
			defer func() { <-sem }()
			results <- in.ingestSource(ctx, src, known)
		}(src)
	}
	wg.Wait()
	close(results)

	// Two sources can carry the same story; fingerprints must stay unique
	// across the whole run, not just per source.
	seen := make(map[string]struct{})
	var fresh []article.Article
	for batch := range results {
		for _, art := range batch {
			if _, dup := seen[art.Fingerprint]; dup {
				in.metrics.IncrementDuplicatesSkipped()
				continue
			}
			seen[art.Fingerprint] = struct{}{}
			fresh = append(fresh, art)
			in.metrics.IncrementNewArticles()
		}
	}
	return fresh
}

func (in *Ingestor) ingestSource(ctx context.Context, src fetch.Source, known map[string]struct{}) []article.Article {
	entries, err := in.fetcher.Fetch(ctx, src)
	if err != nil {
		in.log.Error("source fetch failed, skipping", "source", src.Name, "err", err)
		in.metrics.IncrementSourceFailures()
		return nil
	}
	in.log.Info("fetched source", "source", src.Name, "entries", len(entries))

	var out []article.Article
	for _, entry := range entries {
		in.metrics.IncrementEntriesSeen()

		art, ok := article.FromEntry(entry, src.Name, src.TranslateURL, in.now())
		if !ok {
			in.metrics.IncrementRejectedEntries()
			continue
		}

		if _, exists := known[art.Fingerprint]; exists {
			in.log.Debug("skipping known article", "source", src.Name, "title", art.Title)
			in.metrics.IncrementDuplicatesSkipped()
			continue
		}

		art.TitleZh = in.translator.Field(ctx, art.Title)
		if art.Description != "" {
			art.DescriptionZh = in.translator.Field(ctx, art.Description)
		}
		out = append(out, art)
	}
	return out
}
