package article

import (
	"sort"
	"time"
)

// Article is the canonical news item kept in persisted state. Once written it
// is never updated in place; a later fetch of the same fingerprint is skipped.
type Article struct {
	Fingerprint   string    `json:"fingerprint"`
	Title         string    `json:"title"`
	TitleZh       string    `json:"title_zh"`
	Description   string    `json:"description"`
	DescriptionZh string    `json:"description_zh"`
	Link          string    `json:"link"`
	TranslateLink string    `json:"translate_link"`
	PubDate       time.Time `json:"pub_date"`
	SourceWebsite string    `json:"source_website"`
}

// Merge combines previously persisted articles with freshly ingested ones into
// the new canonical state: newest first, truncated to limit. Articles with
// equal timestamps keep their input order (existing before incoming).
func Merge(existing, incoming []Article, limit int) []Article {
	merged := make([]Article, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	merged = append(merged, incoming...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PubDate.After(merged[j].PubDate)
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// Fingerprints builds the lookup set used to filter already-known entries.
func Fingerprints(items []Article) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it.Fingerprint] = struct{}{}
	}
	return set
}
