// Package session owns per-session conversation state: an append-only
// sequence of claim entries, cleared when the session expires. Entries are
// immutable once resolved; only a pending entry may transition.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/stake-plus/claimcheck/src/CCApi/types"
)

var (
	ErrEntryNotFound = errors.New("session: entry not found")
	ErrEntrySettled  = errors.New("session: entry already settled")
)

// Store persists conversation entries for a session.
//
// Resolve may only be called on a pending entry: a report settles it as
// resolved, an error message settles it as failed. Both stores rely on the
// webserver's inflight guard for single-writer-per-session semantics.
type Store interface {
	Append(ctx context.Context, sessionID string, entry types.ConversationEntry) error
	Resolve(ctx context.Context, sessionID, entryID string, report *types.Report, errMsg string) error
	List(ctx context.Context, sessionID string) ([]types.ConversationEntry, error)
	Clear(ctx context.Context, sessionID string) error
}

func settle(entry *types.ConversationEntry, report *types.Report, errMsg string) error {
	if entry.Status != types.StatusPending {
		return ErrEntrySettled
	}
	now := time.Now().UTC()
	entry.ResolvedAt = &now
	if report != nil {
		entry.Status = types.StatusResolved
		entry.Report = report
	} else {
		entry.Status = types.StatusFailed
		entry.Error = errMsg
	}
	return nil
}
