package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"geoquiz-service/internal/domain"
)

func TestHistoryStoreAppendsAndLists(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewHistoryStore(newClient(mr))
	ctx := context.Background()
	completed := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	entries, err := store.ListAll(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty history, got %v %v", entries, err)
	}

	if err := store.Append(ctx, domain.HistoryEntry{
		Category:        domain.CategoryCapitals,
		Format:          domain.FormatFreeText,
		QuestionCount:   2,
		Score:           1,
		DurationSeconds: 31,
		HighestStreak:   1,
		CompletedAt:     completed,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, domain.HistoryEntry{Category: domain.CategoryFlags, CompletedAt: completed.Add(time.Hour)}); err != nil {
		t.Fatalf("append 2: %v", err)
	}

	entries, err = store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Category != domain.CategoryFlags {
		t.Fatalf("expected most recent first, got %+v", entries[0])
	}
	got := entries[1]
	if got.Score != 1 || got.DurationSeconds != 31 || got.HighestStreak != 1 || !got.CompletedAt.Equal(completed) {
		t.Fatalf("entry did not round-trip: %+v", got)
	}
}
