package article

import (
	"fmt"
	"testing"
	"time"
)

func at(fp string, ts time.Time) Article {
	return Article{Fingerprint: fp, Title: fp, PubDate: ts}
}

func TestMergeOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	existing := []Article{at("old", base), at("mid", base.Add(time.Hour))}
	incoming := []Article{at("new", base.Add(2 * time.Hour))}

	merged := Merge(existing, incoming, 10)
	if len(merged) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].PubDate.After(merged[i-1].PubDate) {
			t.Fatalf("articles out of order at %d: %v before %v", i, merged[i-1].PubDate, merged[i].PubDate)
		}
	}
	if merged[0].Fingerprint != "new" {
		t.Fatalf("expected newest first, got %q", merged[0].Fingerprint)
	}
}

func TestMergeRetentionBoundDropsOldest(t *testing.T) {
	t.Parallel()

	const limit = 77
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	existing := make([]Article, limit)
	for i := range existing {
		existing[i] = at(fmt.Sprintf("e%d", i), base.Add(time.Duration(limit-i)*time.Minute))
	}
	incoming := []Article{
		at("n0", base.Add(100 * time.Hour)),
		at("n1", base.Add(101 * time.Hour)),
		at("n2", base.Add(102 * time.Hour)),
	}

	merged := Merge(existing, incoming, limit)
	if len(merged) != limit {
		t.Fatalf("expected %d articles, got %d", limit, len(merged))
	}

	kept := Fingerprints(merged)
	for _, fp := range []string{"n0", "n1", "n2"} {
		if _, ok := kept[fp]; !ok {
			t.Fatalf("new article %s missing after merge", fp)
		}
	}
	// The three oldest of the original set must be gone.
	for _, fp := range []string{"e74", "e75", "e76"} {
		if _, ok := kept[fp]; ok {
			t.Fatalf("expected oldest article %s to be dropped", fp)
		}
	}
}

func TestMergeStableOnEqualTimestamps(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	merged := Merge([]Article{at("first", ts)}, []Article{at("second", ts)}, 10)

	if merged[0].Fingerprint != "first" || merged[1].Fingerprint != "second" {
		t.Fatalf("tie-break changed input order: %q, %q", merged[0].Fingerprint, merged[1].Fingerprint)
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	t.Parallel()

	if got := Merge(nil, nil, 10); len(got) != 0 {
		t.Fatalf("expected empty merge, got %d items", len(got))
	}
}

func TestFingerprints(t *testing.T) {
	t.Parallel()

	set := Fingerprints([]Article{at("a", time.Now()), at("b", time.Now())})
	if len(set) != 2 {
		t.Fatalf("expected 2 fingerprints, got %d", len(set))
	}
	if _, ok := set["a"]; !ok {
		t.Fatalf("fingerprint a missing")
	}
}
