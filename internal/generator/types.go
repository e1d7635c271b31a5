package generator

import (
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/templates"
)

// ConfigVersion is the semver of the site configuration contract emitted by
// this engine. Schema v1 always emits 1.0.0.
const ConfigVersion = "1.0.0"

// GeneratorStamp records which engine and template produced a configuration.
type GeneratorStamp struct {
	Engine          string `json:"engine"`
	EngineVersion   string `json:"engineVersion"`
	TemplateID      string `json:"templateId"`
	TemplateVersion int    `json:"templateVersion"`
}

// BrandBlock is the brand identity section of a site configuration.
type BrandBlock struct {
	Name     string              `json:"name"`
	Industry domain.IndustryInfo `json:"industry"`
	Slug     string              `json:"slug"`
	Logo     *domain.AssetInfo   `json:"logo,omitempty"`
}

// SEOBlock carries search and social metadata. OGImageAssetID is explicitly
// null when the draft has no logo.
type SEOBlock struct {
	Keywords       []string `json:"keywords,omitempty"`
	OGImageAssetID *string  `json:"ogImageAssetId"`
}

// RoutingBlock mirrors the template's routing defaults.
type RoutingBlock struct {
	BasePath      string `json:"basePath"`
	TrailingSlash bool   `json:"trailingSlash"`
}

// SiteBlock is the site-wide presentation section.
type SiteBlock struct {
	Language    string       `json:"language"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Routing     RoutingBlock `json:"routing"`
	SEO         SEOBlock     `json:"seo"`
}

// ThemeBlock copies the template's theme defaults verbatim.
type ThemeBlock struct {
	ThemeID    string               `json:"themeId"`
	Palette    templates.Palette    `json:"palette"`
	Typography templates.Typography `json:"typography"`
	Radius     string               `json:"radius"`
	Spacing    string               `json:"spacing"`
}

// Section is a rendered page section with fully resolved props.
type Section struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// Page is a rendered page in declared template order.
type Page struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// PublishingBlock copies the template's publishing defaults.
type PublishingBlock struct {
	Target      string                          `json:"target"`
	Output      templates.PublishingOutput      `json:"output"`
	Constraints templates.PublishingConstraints `json:"constraints"`
}

// SiteConfig is the publish-ready configuration derived from a draft. Apart
// from ConfigID and GeneratedAt it is a pure function of the draft state and
// the template registry.
type SiteConfig struct {
	SchemaVersion int                 `json:"schemaVersion"`
	ConfigVersion string              `json:"configVersion"`
	ConfigID      string              `json:"configId"`
	DraftID       string              `json:"draftId"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	Generator     GeneratorStamp      `json:"generator"`
	Brand         BrandBlock          `json:"brand"`
	Site          SiteBlock           `json:"site"`
	Theme         ThemeBlock          `json:"theme"`
	Pages         []Page              `json:"pages"`
	Assets        []domain.AssetInfo  `json:"assets"`
	Publishing    PublishingBlock     `json:"publishing"`
}

// CanonicalJSON serializes the configuration with sorted keys.
func (c *SiteConfig) CanonicalJSON() ([]byte, error) {
	return domain.MarshalCanonical(c)
}

// ContentHash is the hex SHA-256 of the canonical JSON with ConfigID and
// GeneratedAt elided. Two configurations generated from the same draft state
// hash identically regardless of when they were stamped.
func (c *SiteConfig) ContentHash() (string, error) {
	canonical, err := domain.MarshalCanonicalElide(c, "configId", "generatedAt")
	if err != nil {
		return "", err
	}
	return domain.HashBytes(canonical), nil
}
