package drafts

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
)

// MemoryStore is an in-memory draft store for scaffolding/tests. It mirrors
// the redis semantics including TTL expiry, which it applies lazily on
// access.
type MemoryStore struct {
	mu       sync.Mutex
	records  map[string]*memoryRecord
	clock    func() time.Time
	versions map[string]uint64
}

type memoryRecord struct {
	draft    *Draft
	deadline time.Time
}

// MemoryStoreOption customizes the store.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryClock injects a deterministic clock.
func WithMemoryClock(clock func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewMemoryStore constructs the store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	store := &MemoryStore{
		records:  make(map[string]*memoryRecord),
		versions: make(map[string]uint64),
		clock:    domain.UTCNow,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Save(_ context.Context, draft *Draft) error {
	if draft == nil || draft.DraftID == "" {
		return ErrDraftIDRequired
	}
	if draft.TTLSeconds <= 0 {
		return ErrTTLInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.expireLocked(now)
	if _, ok := s.records[draft.DraftID]; ok {
		return ErrDraftExists
	}
	s.records[draft.DraftID] = &memoryRecord{
		draft:    draft.Clone(),
		deadline: now.Add(storeTTL(draft, now)),
	}
	s.versions[draft.DraftID]++
	return nil
}

func (s *MemoryStore) Update(_ context.Context, draft *Draft) error {
	if draft == nil || draft.DraftID == "" {
		return ErrDraftIDRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.expireLocked(now)
	if _, ok := s.records[draft.DraftID]; !ok {
		return &NotFoundError{DraftID: draft.DraftID}
	}
	s.records[draft.DraftID] = &memoryRecord{
		draft:    draft.Clone(),
		deadline: now.Add(storeTTL(draft, now)),
	}
	s.versions[draft.DraftID]++
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string, slide bool) (*Draft, error) {
	if id == "" {
		return nil, ErrDraftIDRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.expireLocked(now)
	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	if slide {
		record.deadline = now.Add(time.Duration(record.draft.TTLSeconds) * time.Second)
	}
	return record.draft.Clone(), nil
}

func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(s.clock())
	_, ok := s.records[id]
	return ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) TTL(_ context.Context, id string) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.expireLocked(now)
	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	seconds := int64(record.deadline.Sub(now) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return &seconds, nil
}

func (s *MemoryStore) UpdateWithLock(ctx context.Context, id string, fn func(*Draft) error) (*Draft, error) {
	if id == "" {
		return nil, ErrDraftIDRequired
	}
	for attempt := 0; attempt < casAttempts; attempt++ {
		s.mu.Lock()
		now := s.clock()
		s.expireLocked(now)
		record, ok := s.records[id]
		if !ok {
			s.mu.Unlock()
			return nil, &NotFoundError{DraftID: id}
		}
		version := s.versions[id]
		working := record.draft.Clone()
		s.mu.Unlock()

		if err := fn(working); err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.versions[id] != version {
			s.mu.Unlock()
			continue
		}
		if _, ok := s.records[id]; !ok {
			s.mu.Unlock()
			return nil, &NotFoundError{DraftID: id}
		}
		now = s.clock()
		s.records[id] = &memoryRecord{
			draft:    working.Clone(),
			deadline: now.Add(storeTTL(working, now)),
		}
		s.versions[id]++
		s.mu.Unlock()
		return working, nil
	}
	return nil, ErrUpdateConflict
}

func (s *MemoryStore) expireLocked(now time.Time) {
	for id, record := range s.records {
		if !record.deadline.After(now) {
			delete(s.records, id)
		}
	}
}
