package templates

// DefaultTemplateID is the fallback used when no industry mapping exists or
// an unknown template id is requested.
const DefaultTemplateID = "default"

// Palette carries the theme color roles templates ship with.
type Palette struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	MutedText  string `json:"mutedText"`
}

// Typography carries font defaults.
type Typography struct {
	FontFamily string `json:"fontFamily"`
	Scale      string `json:"scale"`
}

// ThemeDefaults is copied verbatim into generated configurations.
type ThemeDefaults struct {
	ThemeID    string     `json:"themeId"`
	Palette    Palette    `json:"palette"`
	Typography Typography `json:"typography"`
	Radius     string     `json:"radius"`
	Spacing    string     `json:"spacing"`
}

// SEODefaults seeds the generated site's SEO block.
type SEODefaults struct {
	Keywords []string `json:"keywords,omitempty"`
}

// RoutingDefaults configure generated site routing.
type RoutingDefaults struct {
	BasePath      string `json:"basePath"`
	TrailingSlash bool   `json:"trailingSlash"`
}

// SectionTemplate is a tokenized section blueprint.
type SectionTemplate struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// PageTemplate is a tokenized page blueprint.
type PageTemplate struct {
	ID       string            `json:"id"`
	Path     string            `json:"path"`
	Title    string            `json:"title"`
	Sections []SectionTemplate `json:"sections"`
}

// PublishingOutput describes the artifact a publish run should emit.
type PublishingOutput struct {
	Format      string `json:"format"`
	EntryPageID string `json:"entryPageId"`
}

// PublishingConstraints bound generated sites.
type PublishingConstraints struct {
	MaxPages           int `json:"maxPages"`
	MaxSectionsPerPage int `json:"maxSectionsPerPage"`
}

// PublishingDefaults are copied into generated configurations.
type PublishingDefaults struct {
	Target      string                `json:"target"`
	Output      PublishingOutput      `json:"output"`
	Constraints PublishingConstraints `json:"constraints"`
}

// TemplateDefinition is a registered, versioned, industry-specific set of
// theme defaults and page/section blueprints. Definitions are read-only
// compiled data; updates ship with deploys.
type TemplateDefinition struct {
	TemplateID      string             `json:"templateId"`
	TemplateVersion int                `json:"templateVersion"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	TitleSuffix     string             `json:"titleSuffix"`
	Language        string             `json:"language"`
	Theme           ThemeDefaults      `json:"theme"`
	SEO             SEODefaults        `json:"seo"`
	Routing         RoutingDefaults    `json:"routing"`
	Pages           []PageTemplate     `json:"pages"`
	Publishing      PublishingDefaults `json:"publishing"`
}
