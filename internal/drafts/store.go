package drafts

import (
	"context"
	"time"
)

// Store persists drafts in a TTL key-value mapping. Implementations must
// provide three atomic primitives: set-if-absent with TTL, set-if-present
// with TTL, and a compare-and-set transaction. A record whose TTL elapsed is
// indistinguishable from one that never existed.
type Store interface {
	// Save stores a new draft with its TTL; ErrDraftExists when the key is
	// already present.
	Save(ctx context.Context, draft *Draft) error
	// Update replaces an existing draft and refreshes its TTL;
	// ErrDraftNotFound when the key is absent.
	Update(ctx context.Context, draft *Draft) error
	// FindByID returns the draft or nil when absent. With slide=true a found
	// record has its TTL reset to the draft's ttlSeconds.
	FindByID(ctx context.Context, id string, slide bool) (*Draft, error)
	// Exists reports key presence without touching the TTL.
	Exists(ctx context.Context, id string) (bool, error)
	// Delete removes the draft; removing an absent key is not an error.
	Delete(ctx context.Context, id string) error
	// TTL returns the remaining lifetime in seconds, or nil when absent.
	TTL(ctx context.Context, id string) (*int64, error)
	// UpdateWithLock applies fn atomically under compare-and-set, retrying a
	// bounded number of times before surfacing ErrUpdateConflict. fn receives
	// a private copy it may mutate; the mutated record is stored with a
	// refreshed TTL.
	UpdateWithLock(ctx context.Context, id string, fn func(*Draft) error) (*Draft, error)
}

// DraftKey returns the store key for a draft id.
func DraftKey(id string) string {
	return "draft:" + id
}

// casAttempts bounds optimistic update retries.
const casAttempts = 3

// storeTTL computes the TTL the store applies when (re)writing a record:
// the shorter of the draft's ttlSeconds and its remaining semantic lifetime.
func storeTTL(draft *Draft, now time.Time) time.Duration {
	configured := time.Duration(draft.TTLSeconds) * time.Second
	remaining := draft.ExpiresAt.Sub(now)
	if remaining > 0 && remaining < configured {
		return remaining
	}
	return configured
}
