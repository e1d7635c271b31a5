package drafts

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/identity"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// Generator build identity stamped on every draft.
const (
	EngineName    = "go-sitedraft"
	EngineVersion = "1.0.0"
	DefaultLocale = "ru"
)

// Service owns the draft lifecycle: creation, patching, reads, preview
// bookkeeping, and TTL policy.
type Service interface {
	Create(ctx context.Context, req CreateDraftRequest) (*Draft, error)
	Update(ctx context.Context, draftID string, req UpdateDraftRequest) (*Draft, error)
	// Get never slides the TTL.
	Get(ctx context.Context, draftID string) (*Draft, error)
	// GetForPreview slides the TTL back to the draft's ttlSeconds.
	GetForPreview(ctx context.Context, draftID string) (*Draft, error)
	// GetForCommit loads without sliding and distinguishes semantic expiry.
	GetForCommit(ctx context.Context, draftID string) (*Draft, error)
	// RecordPreview persists the latest preview mode/etag on the draft.
	RecordPreview(ctx context.Context, draftID, mode, etag string) (*Draft, error)
	Delete(ctx context.Context, draftID string) error
	TTL(ctx context.Context, draftID string) (*int64, error)
}

// TemplateLocator resolves the template a draft will be generated with.
// Satisfied by the template registry.
type TemplateLocator interface {
	LookupByIndustry(code string) (templateID string, templateVersion int)
}

// CreateDraftRequest carries the payload for a new draft.
type CreateDraftRequest struct {
	BrandName     string
	Industry      domain.IndustryInfo
	LogoAssetID   *string
	TTLSeconds    int64
	Source        string
	IPHash        *string
	UserAgentHash *string
}

// LogoPatch is a tagged optional: absent (no change), clear, or set to a new
// asset id. The zero value means "leave unchanged".
type LogoPatch struct {
	present bool
	clear   bool
	assetID string
}

// LogoUnset leaves the logo untouched.
func LogoUnset() LogoPatch { return LogoPatch{} }

// LogoClear removes the logo.
func LogoClear() LogoPatch { return LogoPatch{present: true, clear: true} }

// LogoSet replaces the logo with the referenced asset.
func LogoSet(assetID string) LogoPatch {
	return LogoPatch{present: true, assetID: strings.TrimSpace(assetID)}
}

// UpdateDraftRequest carries a partial draft mutation. Nil fields are left
// unchanged.
type UpdateDraftRequest struct {
	BrandName *string
	Industry  *domain.IndustryInfo
	Logo      LogoPatch
}

type service struct {
	store      Store
	assets     interfaces.AssetResolver
	templates  TemplateLocator
	clock      func() time.Time
	newDraftID func() string
	defaultTTL int64
	logger     interfaces.Logger
}

// ServiceOption customizes the draft service.
type ServiceOption func(*service)

// WithClock injects a deterministic clock.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDraftIDGenerator overrides draft id generation.
func WithDraftIDGenerator(gen func() string) ServiceOption {
	return func(s *service) {
		if gen != nil {
			s.newDraftID = gen
		}
	}
}

// WithDefaultTTL sets the TTL applied when a request omits one.
func WithDefaultTTL(seconds int64) ServiceOption {
	return func(s *service) {
		if seconds > 0 {
			s.defaultTTL = seconds
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the draft service.
func NewService(store Store, assets interfaces.AssetResolver, templates TemplateLocator, opts ...ServiceOption) Service {
	svc := &service{
		store:      store,
		assets:     assets,
		templates:  templates,
		clock:      domain.UTCNow,
		newDraftID: identity.NewDraftID,
		defaultTTL: 86400,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) Create(ctx context.Context, req CreateDraftRequest) (*Draft, error) {
	logo, err := s.resolveLogo(ctx, req.LogoAssetID)
	if err != nil {
		return nil, err
	}

	profile, err := domain.NewBrandProfile(req.BrandName, req.Industry, logo)
	if err != nil {
		return nil, err
	}

	ttl := req.TTLSeconds
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.clock()
	templateID, _ := s.templates.LookupByIndustry(profile.Industry.Code)
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "api"
	}

	draft := &Draft{
		SchemaVersion: domain.SchemaVersion,
		DraftID:       s.newDraftID(),
		Status:        StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     now.Add(time.Duration(ttl) * time.Second),
		TTLSeconds:    ttl,
		BrandProfile:  profile,
		Generator: GeneratorMeta{
			Engine:        EngineName,
			EngineVersion: EngineVersion,
			TemplateID:    templateID,
			Locale:        DefaultLocale,
		},
		Preview: PreviewState{Mode: PreviewModeHTML},
		Meta: RequestMeta{
			IPHash:        req.IPHash,
			UserAgentHash: req.UserAgentHash,
			Source:        source,
		},
	}

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.logger.Info("draft created",
		"draft_id", draft.DraftID,
		"industry", profile.Industry.Code,
		"ttl_seconds", ttl,
	)
	return draft, nil
}

func (s *service) Update(ctx context.Context, draftID string, req UpdateDraftRequest) (*Draft, error) {
	if strings.TrimSpace(draftID) == "" {
		return nil, ErrDraftIDRequired
	}

	var logo *domain.AssetInfo
	if req.Logo.present && !req.Logo.clear {
		resolved, err := s.resolveLogo(ctx, &req.Logo.assetID)
		if err != nil {
			return nil, err
		}
		logo = resolved
	}

	updated, err := s.store.UpdateWithLock(ctx, draftID, func(draft *Draft) error {
		now := s.clock()
		if draft.Expired(now) {
			return &ExpiredError{DraftID: draftID}
		}

		profile := draft.BrandProfile
		if req.BrandName != nil {
			normalized, err := domain.NormalizeBrandName(*req.BrandName)
			if err != nil {
				return err
			}
			profile.BrandName = normalized
		}
		if req.Industry != nil {
			profile.Industry = domain.ResolveIndustry(req.Industry.Code, req.Industry.Label)
		}
		if req.Logo.present {
			if req.Logo.clear {
				profile.Logo = nil
			} else {
				profile.Logo = domain.CloneAsset(logo)
			}
		}

		draft.BrandProfile = profile
		draft.UpdatedAt = now
		draft.ExpiresAt = now.Add(time.Duration(draft.TTLSeconds) * time.Second)
		if req.Industry != nil {
			templateID, _ := s.templates.LookupByIndustry(profile.Industry.Code)
			draft.Generator.TemplateID = templateID
		}
		// Any content change invalidates the cached preview tag.
		draft.Preview.ETag = nil
		draft.Preview.LastGeneratedAt = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("draft updated", "draft_id", draftID)
	return updated, nil
}

func (s *service) Get(ctx context.Context, draftID string) (*Draft, error) {
	return s.load(ctx, draftID, false)
}

func (s *service) GetForPreview(ctx context.Context, draftID string) (*Draft, error) {
	return s.load(ctx, draftID, true)
}

func (s *service) GetForCommit(ctx context.Context, draftID string) (*Draft, error) {
	return s.load(ctx, draftID, false)
}

func (s *service) RecordPreview(ctx context.Context, draftID, mode, etag string) (*Draft, error) {
	return s.store.UpdateWithLock(ctx, draftID, func(draft *Draft) error {
		now := s.clock()
		if draft.Expired(now) {
			return &ExpiredError{DraftID: draftID}
		}
		at := now
		draft.Preview.Mode = mode
		draft.Preview.ETag = &etag
		draft.Preview.LastGeneratedAt = &at
		// Preview counts as activity: slide the semantic lifetime too.
		draft.UpdatedAt = now
		draft.ExpiresAt = now.Add(time.Duration(draft.TTLSeconds) * time.Second)
		return nil
	})
}

func (s *service) Delete(ctx context.Context, draftID string) error {
	return s.store.Delete(ctx, draftID)
}

func (s *service) TTL(ctx context.Context, draftID string) (*int64, error) {
	return s.store.TTL(ctx, draftID)
}

func (s *service) load(ctx context.Context, draftID string, slide bool) (*Draft, error) {
	if strings.TrimSpace(draftID) == "" {
		return nil, ErrDraftIDRequired
	}
	draft, err := s.store.FindByID(ctx, draftID, slide)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, &NotFoundError{DraftID: draftID}
	}
	if draft.Expired(s.clock()) {
		// The store TTL lags the semantic deadline under clock skew; reclaim
		// eagerly and report the expiry distinctly.
		if err := s.store.Delete(ctx, draftID); err != nil {
			s.logger.Warn("failed to reclaim expired draft", "draft_id", draftID, "error", err)
		}
		return nil, &ExpiredError{DraftID: draftID}
	}
	return draft, nil
}

func (s *service) resolveLogo(ctx context.Context, assetID *string) (*domain.AssetInfo, error) {
	if assetID == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*assetID)
	if trimmed == "" {
		return nil, nil
	}
	if s.assets == nil {
		return nil, &AssetNotFoundError{AssetID: trimmed}
	}
	metadata, err := s.assets.Resolve(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		return nil, &AssetNotFoundError{AssetID: trimmed}
	}
	return metadata, nil
}
