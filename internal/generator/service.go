package generator

import (
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/identity"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/internal/templates"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// Service derives publish-ready site configurations from drafts. Apart from
// the registry lookup the derivation performs no I/O.
type Service interface {
	Generate(draft *drafts.Draft) (*SiteConfig, error)
}

type service struct {
	registry    templates.Registry
	clock       func() time.Time
	newConfigID func(draftID, contentHash string) string
	logger      interfaces.Logger
}

// Option customizes the generator.
type Option func(*service)

// WithClock injects a deterministic clock for GeneratedAt stamping.
func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithConfigIDGenerator overrides config id derivation. The default maps a
// draft id and content hash to a deterministic id so repeated generations of
// the same draft state agree.
func WithConfigIDGenerator(gen func(draftID, contentHash string) string) Option {
	return func(s *service) {
		if gen != nil {
			s.newConfigID = gen
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the generator over a template registry.
func NewService(registry templates.Registry, opts ...Option) Service {
	svc := &service{
		registry:    registry,
		clock:       domain.UTCNow,
		newConfigID: identity.ConfigID,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) Generate(draft *drafts.Draft) (*SiteConfig, error) {
	if draft == nil {
		return nil, drafts.ErrDraftNotFound
	}

	name, err := domain.NormalizeBrandName(draft.BrandProfile.BrandName)
	if err != nil {
		return nil, err
	}
	industry := draft.BrandProfile.Industry
	logo := domain.CloneAsset(draft.BrandProfile.Logo)

	templateID, templateVersion := s.registry.LookupByIndustry(industry.Code)
	def := s.registry.Load(templateID)

	slugValue := Slug(name)
	tokens := newTokenContext(name, industry, slugValue, logo)

	pages := make([]Page, 0, len(def.Pages))
	for _, pageDef := range def.Pages {
		sections := make([]Section, 0, len(pageDef.Sections))
		for _, sectionDef := range pageDef.Sections {
			sections = append(sections, Section{
				ID:    sectionDef.ID,
				Type:  sectionDef.Type,
				Props: tokens.resolveProps(sectionDef.Props),
			})
		}
		pages = append(pages, Page{
			ID:       pageDef.ID,
			Path:     pageDef.Path,
			Title:    tokens.resolveString(pageDef.Title),
			Sections: sections,
		})
	}

	var ogImage *string
	assets := []domain.AssetInfo{}
	if logo != nil {
		id := logo.AssetID
		ogImage = &id
		assets = append(assets, *logo)
	}

	config := &SiteConfig{
		SchemaVersion: domain.SchemaVersion,
		ConfigVersion: ConfigVersion,
		DraftID:       draft.DraftID,
		GeneratedAt:   domain.TruncateTime(s.clock()),
		Generator: GeneratorStamp{
			Engine:          drafts.EngineName,
			EngineVersion:   drafts.EngineVersion,
			TemplateID:      templateID,
			TemplateVersion: templateVersion,
		},
		Brand: BrandBlock{
			Name:     name,
			Industry: industry,
			Slug:     slugValue,
			Logo:     logo,
		},
		Site: SiteBlock{
			Language:    def.Language,
			Title:       name + " — " + def.TitleSuffix,
			Description: tokens.resolveString(def.Description),
			Routing: RoutingBlock{
				BasePath:      def.Routing.BasePath,
				TrailingSlash: def.Routing.TrailingSlash,
			},
			SEO: SEOBlock{
				Keywords:       append([]string(nil), def.SEO.Keywords...),
				OGImageAssetID: ogImage,
			},
		},
		Theme: ThemeBlock{
			ThemeID:    def.Theme.ThemeID,
			Palette:    def.Theme.Palette,
			Typography: def.Theme.Typography,
			Radius:     def.Theme.Radius,
			Spacing:    def.Theme.Spacing,
		},
		Pages:  pages,
		Assets: assets,
		Publishing: PublishingBlock{
			Target:      def.Publishing.Target,
			Output:      def.Publishing.Output,
			Constraints: def.Publishing.Constraints,
		},
	}

	// The hash elides configId, so the id can be derived from it afterwards.
	hash, err := config.ContentHash()
	if err != nil {
		return nil, err
	}
	config.ConfigID = s.newConfigID(draft.DraftID, hash)

	s.logger.Debug("site config generated",
		"draft_id", draft.DraftID,
		"config_id", config.ConfigID,
		"template_id", templateID,
	)
	return config, nil
}
