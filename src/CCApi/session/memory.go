package session

import (
	"context"
	"sync"
	"time"

	"github.com/stake-plus/claimcheck/src/CCApi/types"
)

type memorySession struct {
	entries  []types.ConversationEntry
	lastUsed time.Time
}

// MemoryStore keeps conversations in process memory. Used for tests and
// redis-less deployments; sessions expire after the configured TTL.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, entry types.ConversationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	sess := s.sessions[sessionID]
	if sess == nil {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	sess.entries = append(sess.entries, entry)
	sess.lastUsed = time.Now()
	return nil
}

func (s *MemoryStore) Resolve(ctx context.Context, sessionID, entryID string, report *types.Report, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[sessionID]
	if sess == nil {
		return ErrEntryNotFound
	}
	for i := range sess.entries {
		if sess.entries[i].ID == entryID {
			sess.lastUsed = time.Now()
			return settle(&sess.entries[i], report, errMsg)
		}
	}
	return ErrEntryNotFound
}

func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]types.ConversationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[sessionID]
	if sess == nil {
		return nil, nil
	}
	sess.lastUsed = time.Now()
	out := make([]types.ConversationEntry, len(sess.entries))
	copy(out, sess.entries)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) purgeLocked() {
	cutoff := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
