package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz-service/internal/domain"
)

func TestHistoryStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	completed := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	store, err := Open(ctx, path)
	require.NoError(t, err)

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, store.Append(ctx, domain.HistoryEntry{
		Category:        domain.CategoryCapitals,
		Format:          domain.FormatFreeText,
		QuestionCount:   2,
		Score:           1,
		DurationSeconds: 31,
		HighestStreak:   1,
		CompletedAt:     completed,
	}))
	require.NoError(t, store.Append(ctx, domain.HistoryEntry{
		Category:      domain.CategoryFlags,
		Format:        domain.FormatMCQ,
		QuestionCount: 5,
		CompletedAt:   completed.Add(time.Minute),
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err = reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.CategoryFlags, entries[0].Category)
	assert.Equal(t, domain.HistoryEntry{
		Category:        domain.CategoryCapitals,
		Format:          domain.FormatFreeText,
		QuestionCount:   2,
		Score:           1,
		DurationSeconds: 31,
		HighestStreak:   1,
		CompletedAt:     completed,
	}, entries[1])
}
