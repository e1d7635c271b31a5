package commit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-sitedraft/internal/domain"
)

// LockTTL bounds how long a crashed committer can block a draft.
const LockTTL = 30 * time.Second

// LockKey returns the draft's commit lock key.
func LockKey(draftID string) string {
	return "lock:commit:" + draftID
}

// Locker serializes commit attempts per draft. The lock is an optimization;
// the relational unique constraint remains the correctness floor.
type Locker interface {
	// Acquire returns false when another committer holds the lock.
	Acquire(ctx context.Context, draftID string) (bool, error)
	// Release is best-effort; an unreleased lock expires after LockTTL.
	Release(ctx context.Context, draftID string) error
}

// RedisLocker implements Locker with a set-if-absent key.
type RedisLocker struct {
	client redis.UniversalClient
}

func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, draftID string) (bool, error) {
	return l.client.SetNX(ctx, LockKey(draftID), "1", LockTTL).Result()
}

func (l *RedisLocker) Release(ctx context.Context, draftID string) error {
	return l.client.Del(ctx, LockKey(draftID)).Err()
}

// MemoryLocker is the in-process Locker used by tests and local wiring.
// Held locks expire lazily after LockTTL, mirroring the key TTL.
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

// MemoryLockerOption customizes the in-memory locker.
type MemoryLockerOption func(*MemoryLocker)

// WithLockerClock injects a deterministic clock.
func WithLockerClock(clock func() time.Time) MemoryLockerOption {
	return func(l *MemoryLocker) {
		if clock != nil {
			l.clock = clock
		}
	}
}

func NewMemoryLocker(opts ...MemoryLockerOption) *MemoryLocker {
	locker := &MemoryLocker{
		held:  make(map[string]time.Time),
		clock: domain.UTCNow,
	}
	for _, opt := range opts {
		opt(locker)
	}
	return locker
}

func (l *MemoryLocker) Acquire(_ context.Context, draftID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if deadline, ok := l.held[draftID]; ok && now.Before(deadline) {
		return false, nil
	}
	l.held[draftID] = now.Add(LockTTL)
	return true, nil
}

func (l *MemoryLocker) Release(_ context.Context, draftID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, draftID)
	return nil
}

var (
	_ Locker = (*RedisLocker)(nil)
	_ Locker = (*MemoryLocker)(nil)
)
