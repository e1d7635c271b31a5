package assets

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// MetadataKey is where the upload pipeline publishes asset metadata.
func MetadataKey(assetID string) string {
	return "asset:" + assetID
}

// RedisResolver reads asset metadata published by the upload pipeline. The
// resolver is read-only; uploads themselves are out of scope here.
type RedisResolver struct {
	client  redis.UniversalClient
	baseURL string
	logger  interfaces.Logger
}

// RedisResolverOption customizes the resolver.
type RedisResolverOption func(*RedisResolver)

// WithBaseURL rewrites relative asset URLs against the public asset host.
func WithBaseURL(baseURL string) RedisResolverOption {
	return func(r *RedisResolver) {
		r.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithResolverLogger attaches a module logger.
func WithResolverLogger(logger interfaces.Logger) RedisResolverOption {
	return func(r *RedisResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRedisResolver(client redis.UniversalClient, opts ...RedisResolverOption) *RedisResolver {
	resolver := &RedisResolver{
		client: client,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

func (r *RedisResolver) Resolve(ctx context.Context, assetID string) (*interfaces.AssetMetadata, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, &drafts.AssetNotFoundError{AssetID: assetID}
	}

	payload, err := r.client.Get(ctx, MetadataKey(assetID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, &drafts.AssetNotFoundError{AssetID: assetID}
		}
		return nil, err
	}

	var metadata interfaces.AssetMetadata
	if err := json.Unmarshal(payload, &metadata); err != nil {
		r.logger.Warn("corrupt asset metadata", "asset_id", assetID, "error", err)
		return nil, &drafts.AssetNotFoundError{AssetID: assetID}
	}
	if metadata.AssetID == "" {
		metadata.AssetID = assetID
	}
	metadata.URL = r.publicURL(metadata.URL)
	return &metadata, nil
}

// publicURL leaves absolute URLs alone and prefixes relative paths with the
// configured asset host.
func (r *RedisResolver) publicURL(raw string) string {
	if r.baseURL == "" || raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return r.baseURL + "/" + strings.TrimLeft(raw, "/")
}

// MemoryResolver is the in-process AssetResolver for tests and local wiring.
type MemoryResolver struct {
	mu      sync.RWMutex
	records map[string]interfaces.AssetMetadata
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{records: make(map[string]interfaces.AssetMetadata)}
}

// Register stores metadata under its asset id.
func (r *MemoryResolver) Register(metadata interfaces.AssetMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[metadata.AssetID] = metadata
}

func (r *MemoryResolver) Resolve(_ context.Context, assetID string) (*interfaces.AssetMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metadata, ok := r.records[strings.TrimSpace(assetID)]
	if !ok {
		return nil, &drafts.AssetNotFoundError{AssetID: assetID}
	}
	cloned := metadata
	return &cloned, nil
}

var (
	_ interfaces.AssetResolver = (*RedisResolver)(nil)
	_ interfaces.AssetResolver = (*MemoryResolver)(nil)
)
