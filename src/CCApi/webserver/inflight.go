package webserver

import "sync"

// Inflight gates submissions so each session has at most one outstanding
// verification. Acquire fails while a prior request is unresolved; Release
// must run on every outcome so the user can resubmit after failures.
type Inflight struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewInflight() *Inflight {
	return &Inflight{pending: make(map[string]struct{})}
}

func (g *Inflight) Acquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.pending[sessionID]; busy {
		return false
	}
	g.pending[sessionID] = struct{}{}
	return true
}

func (g *Inflight) Release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, sessionID)
}
