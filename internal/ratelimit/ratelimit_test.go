package ratelimit

import "testing"

func TestBudgetTake(t *testing.T) {
	t.Parallel()

	b := New(2)
	if !b.Take() || !b.Take() {
		t.Fatalf("budget of 2 should allow two takes")
	}
	if b.Take() {
		t.Fatalf("third take should fail")
	}
	if b.Used() != 2 {
		t.Fatalf("expected 2 used, got %d", b.Used())
	}
}

func TestBudgetZeroIsUnlimited(t *testing.T) {
	t.Parallel()

	b := New(0)
	for i := 0; i < 100; i++ {
		if !b.Take() {
			t.Fatalf("unlimited budget refused take %d", i)
		}
	}
}
