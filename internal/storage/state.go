package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"xinwen/internal/article"
)

// Store persists the article state as one JSON array, rewritten in full each
// run so the file stays human-diffable.
type Store struct {
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load returns the previously persisted articles. A missing or unreadable
// state file yields an empty list; the next Save rebuilds it.
func (s *Store) Load() []article.Article {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("no existing state", "path", s.path)
		} else {
			s.log.Warn("cannot read state, starting empty", "path", s.path, "err", err)
		}
		return nil
	}

	var items []article.Article
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn("corrupt state, starting empty", "path", s.path, "err", err)
		return nil
	}

	s.log.Info("loaded state", "path", s.path, "articles", len(items))
	return items
}

// Save writes the new state through a temp file and rename, so a crash
// mid-write leaves the previous state intact.
func (s *Store) Save(items []article.Article) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}

	s.log.Info("saved state", "path", s.path, "articles", len(items))
	return nil
}
