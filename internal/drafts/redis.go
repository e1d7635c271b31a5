package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// RedisStore keeps drafts in redis under draft:{id} with a native TTL.
type RedisStore struct {
	client redis.UniversalClient
	clock  func() time.Time
	logger interfaces.Logger
}

// RedisStoreOption customizes the store.
type RedisStoreOption func(*RedisStore)

// WithRedisClock injects a deterministic clock (tests).
func WithRedisClock(clock func() time.Time) RedisStoreOption {
	return func(s *RedisStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRedisLogger attaches a module logger.
func WithRedisLogger(logger interfaces.Logger) RedisStoreOption {
	return func(s *RedisStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRedisStore constructs a draft store over the supplied client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	store := &RedisStore{
		client: client,
		clock:  domain.UTCNow,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) Save(ctx context.Context, draft *Draft) error {
	if draft == nil || draft.DraftID == "" {
		return ErrDraftIDRequired
	}
	if draft.TTLSeconds <= 0 {
		return ErrTTLInvalid
	}
	payload, err := encodeDraft(draft)
	if err != nil {
		return err
	}
	stored, err := s.client.SetNX(ctx, DraftKey(draft.DraftID), payload, storeTTL(draft, s.clock())).Result()
	if err != nil {
		return fmt.Errorf("drafts: redis save: %w", err)
	}
	if !stored {
		return ErrDraftExists
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, draft *Draft) error {
	if draft == nil || draft.DraftID == "" {
		return ErrDraftIDRequired
	}
	payload, err := encodeDraft(draft)
	if err != nil {
		return err
	}
	stored, err := s.client.SetXX(ctx, DraftKey(draft.DraftID), payload, storeTTL(draft, s.clock())).Result()
	if err != nil {
		return fmt.Errorf("drafts: redis update: %w", err)
	}
	if !stored {
		return &NotFoundError{DraftID: draft.DraftID}
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, id string, slide bool) (*Draft, error) {
	if id == "" {
		return nil, ErrDraftIDRequired
	}
	key := DraftKey(id)
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("drafts: redis get: %w", err)
	}
	draft, err := decodeDraft(payload)
	if err != nil {
		// Corrupt blob: reclaim the key and report absence.
		s.logger.Warn("dropping corrupt draft record", "draft_id", id, "error", err)
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.logger.Warn("failed to delete corrupt draft record", "draft_id", id, "error", delErr)
		}
		return nil, nil
	}
	if slide {
		if err := s.client.Expire(ctx, key, time.Duration(draft.TTLSeconds)*time.Second).Err(); err != nil {
			return nil, fmt.Errorf("drafts: redis expire: %w", err)
		}
	}
	return draft, nil
}

func (s *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	count, err := s.client.Exists(ctx, DraftKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("drafts: redis exists: %w", err)
	}
	return count > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, DraftKey(id)).Err(); err != nil {
		return fmt.Errorf("drafts: redis delete: %w", err)
	}
	return nil
}

func (s *RedisStore) TTL(ctx context.Context, id string) (*int64, error) {
	remaining, err := s.client.TTL(ctx, DraftKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("drafts: redis ttl: %w", err)
	}
	if remaining < 0 {
		// -2 absent key, -1 no expiry; a draft key always carries a TTL so
		// both read as absence.
		return nil, nil
	}
	seconds := int64(remaining / time.Second)
	return &seconds, nil
}

func (s *RedisStore) UpdateWithLock(ctx context.Context, id string, fn func(*Draft) error) (*Draft, error) {
	if id == "" {
		return nil, ErrDraftIDRequired
	}
	key := DraftKey(id)

	var updated *Draft
	transact := func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return &NotFoundError{DraftID: id}
		}
		if err != nil {
			return err
		}
		draft, err := decodeDraft(payload)
		if err != nil {
			return &NotFoundError{DraftID: id}
		}
		if err := fn(draft); err != nil {
			return err
		}
		encoded, err := encodeDraft(draft)
		if err != nil {
			return err
		}
		ttl := storeTTL(draft, s.clock())
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = draft
		return nil
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		err := s.client.Watch(ctx, transact, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrUpdateConflict
}

func encodeDraft(draft *Draft) ([]byte, error) {
	payload, err := domain.MarshalCanonical(draft)
	if err != nil {
		return nil, fmt.Errorf("drafts: encode: %w", err)
	}
	return payload, nil
}

func decodeDraft(payload []byte) (*Draft, error) {
	var draft Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("drafts: decode: %w", err)
	}
	if draft.DraftID == "" {
		return nil, fmt.Errorf("drafts: decode: missing draft id")
	}
	return &draft, nil
}
