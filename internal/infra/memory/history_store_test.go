package memory

import (
	"context"
	"testing"

	"geoquiz-service/internal/domain"
)

func TestHistoryStoreListsMostRecentFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	entries, err := store.ListAll(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty history, got %v %v", entries, err)
	}

	_ = store.Append(ctx, domain.HistoryEntry{Category: domain.CategoryCapitals, Score: 1})
	_ = store.Append(ctx, domain.HistoryEntry{Category: domain.CategoryFlags, Score: 2})

	entries, _ = store.ListAll(ctx)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Category != domain.CategoryFlags || entries[1].Category != domain.CategoryCapitals {
		t.Fatalf("expected most recent first, got %+v", entries)
	}
}
