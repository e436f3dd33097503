package ratelimit

import "sync"

// Budget caps how many translation requests one run may spend. Max of zero
// means unlimited. An exhausted budget is not an error: callers degrade to the
// untranslated text.
type Budget struct {
	mu   sync.Mutex
	max  int
	used int
}

func New(max int) *Budget {
	return &Budget{max: max}
}

// Take reserves one request. It returns false once the budget is spent.
func (b *Budget) Take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max > 0 && b.used >= b.max {
		return false
	}
	b.used++
	return true
}

func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}
