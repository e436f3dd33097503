package metrics

import (
	"sync"
	"time"
)

// Metrics collects per-run pipeline counters. One instance is created in main
// and passed down; the monitoring endpoints read it through GetStats.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	EntriesSeen         int64
	NewArticles         int64
	DuplicatesSkipped   int64
	RejectedEntries     int64
	TranslationsOK      int64
	TranslationFailures int64
	SourceFailures      int64

	// Status
	LastRunDuration time.Duration
	LastRunTime     time.Time
	LastError       string
	LastErrorTime   time.Time
	IsHealthy       bool
}

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

func (m *Metrics) IncrementEntriesSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesSeen++
}

func (m *Metrics) IncrementNewArticles() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NewArticles++
}

func (m *Metrics) IncrementDuplicatesSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesSkipped++
}

func (m *Metrics) IncrementRejectedEntries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RejectedEntries++
}

func (m *Metrics) IncrementTranslationsOK() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslationsOK++
}

func (m *Metrics) IncrementTranslationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslationFailures++
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_seen":         m.EntriesSeen,
		"new_articles":         m.NewArticles,
		"duplicates_skipped":   m.DuplicatesSkipped,
		"rejected_entries":     m.RejectedEntries,
		"translations_ok":      m.TranslationsOK,
		"translation_failures": m.TranslationFailures,
		"source_failures":      m.SourceFailures,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"is_healthy":           m.IsHealthy,
	}
}
