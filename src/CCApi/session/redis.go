package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/claimcheck/src/CCApi/types"
)

// RedisStore keeps each conversation as a JSON array under one key with a
// sliding TTL. Read-modify-write is safe here because the webserver's
// inflight guard admits one writer per session at a time.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "claimcheck:session:" + sessionID
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, entry types.ConversationEntry) error {
	entries, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return s.save(ctx, sessionID, entries)
}

func (s *RedisStore) Resolve(ctx context.Context, sessionID, entryID string, report *types.Report, errMsg string) error {
	entries, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == entryID {
			if err := settle(&entries[i], report, errMsg); err != nil {
				return err
			}
			return s.save(ctx, sessionID, entries)
		}
	}
	return ErrEntryNotFound
}

func (s *RedisStore) List(ctx context.Context, sessionID string) ([]types.ConversationEntry, error) {
	return s.load(ctx, sessionID)
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *RedisStore) load(ctx context.Context, sessionID string) ([]types.ConversationEntry, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	var entries []types.ConversationEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	return entries, nil
}

func (s *RedisStore) save(ctx context.Context, sessionID string, entries []types.ConversationEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}
