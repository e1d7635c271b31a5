package drafts

import (
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
)

// StatusDraft is the only status a stored draft ever carries; commit removes
// the record instead of transitioning it.
const StatusDraft = "DRAFT"

// Preview output modes.
const (
	PreviewModeHTML = "html"
	PreviewModeJSON = "json"
)

// Draft is the temporary brand/industry/logo record with a bounded,
// sliding lifetime.
type Draft struct {
	SchemaVersion int                 `json:"schemaVersion"`
	DraftID       string              `json:"draftId"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	ExpiresAt     time.Time           `json:"expiresAt"`
	TTLSeconds    int64               `json:"ttlSeconds"`
	BrandProfile  domain.BrandProfile `json:"brandProfile"`
	Generator     GeneratorMeta       `json:"generator"`
	Preview       PreviewState        `json:"preview"`
	Meta          RequestMeta         `json:"meta"`
}

// GeneratorMeta pins the generator build a draft was created against.
type GeneratorMeta struct {
	Engine        string `json:"engine"`
	EngineVersion string `json:"engineVersion"`
	TemplateID    string `json:"templateId"`
	Locale        string `json:"locale"`
}

// PreviewState tracks the latest rendered preview for a draft.
type PreviewState struct {
	Mode            string     `json:"mode"`
	URL             *string    `json:"url,omitempty"`
	LastGeneratedAt *time.Time `json:"lastGeneratedAt,omitempty"`
	ETag            *string    `json:"etag,omitempty"`
}

// RequestMeta carries anonymized request context captured at create time.
type RequestMeta struct {
	IPHash        *string `json:"ipHash,omitempty"`
	UserAgentHash *string `json:"userAgentHash,omitempty"`
	Source        string  `json:"source"`
	Notes         *string `json:"notes,omitempty"`
}

// Expired reports whether the draft's semantic lifetime has elapsed at the
// supplied instant. The store's own TTL is authoritative for absence; this
// check covers clock skew between the store and the service.
func (d *Draft) Expired(now time.Time) bool {
	if d == nil {
		return true
	}
	return !d.ExpiresAt.After(now)
}

// RemainingTTL returns the semantic lifetime left at the supplied instant,
// floored at zero.
func (d *Draft) RemainingTTL(now time.Time) time.Duration {
	if d == nil {
		return 0
	}
	remaining := d.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Clone returns a deep copy so callers can mutate records without aliasing
// store internals.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	copied := *d
	copied.BrandProfile.Logo = domain.CloneAsset(d.BrandProfile.Logo)
	copied.Preview.URL = cloneString(d.Preview.URL)
	copied.Preview.ETag = cloneString(d.Preview.ETag)
	if d.Preview.LastGeneratedAt != nil {
		at := *d.Preview.LastGeneratedAt
		copied.Preview.LastGeneratedAt = &at
	}
	copied.Meta.IPHash = cloneString(d.Meta.IPHash)
	copied.Meta.UserAgentHash = cloneString(d.Meta.UserAgentHash)
	copied.Meta.Notes = cloneString(d.Meta.Notes)
	return &copied
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
