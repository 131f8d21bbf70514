package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"geoquiz-service/internal/domain"
)

const historyKey = "quiz:history"

// HistoryStore keeps completed attempts in a Redis list, newest at the head.
type HistoryStore struct {
	client *redis.Client
	key    string
}

func NewHistoryStore(client *redis.Client) *HistoryStore {
	return &HistoryStore{client: client, key: historyKey}
}

func (s *HistoryStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	return s.client.LPush(ctx, s.key, data).Err()
}

// ListAll returns entries most recent first.
func (s *HistoryStore) ListAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
