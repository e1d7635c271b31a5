package preview

import (
	"context"
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/generator"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// Renderer turns site configurations into safe preview documents. The
// built-in path is pure; the optional external backend is consulted for HTML
// renders only and any failure falls through to the built-in output.
type Renderer interface {
	Render(ctx context.Context, config *generator.SiteConfig, format string) (*Result, error)
}

type renderer struct {
	external interfaces.ExternalRenderer
	clock    func() time.Time
	logger   interfaces.Logger
}

// Option customizes the renderer.
type Option func(*renderer)

// WithExternalRenderer attaches an optional external HTML backend.
func WithExternalRenderer(external interfaces.ExternalRenderer) Option {
	return func(r *renderer) {
		r.external = external
	}
}

// WithClock injects a deterministic clock.
func WithClock(clock func() time.Time) Option {
	return func(r *renderer) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer constructs the preview renderer.
func NewRenderer(opts ...Option) Renderer {
	r := &renderer{
		clock:  domain.UTCNow,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *renderer) Render(ctx context.Context, config *generator.SiteConfig, format string) (*Result, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}
	if format != FormatHTML && format != FormatJSON {
		return nil, ErrUnsupportedFormat
	}

	etag, err := ETag(config)
	if err != nil {
		return nil, err
	}
	pages, err := sanitizePages(config.Pages, brandMasks(config))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Type:        format,
		GeneratedAt: domain.TruncateTime(r.clock()),
		ETag:        etag,
	}

	if format == FormatJSON {
		result.Model = jsonModel(config, pages)
		return result, nil
	}

	if markup, ok := r.renderExternal(ctx, config); ok {
		result.Content = markup
		return result, nil
	}
	result.Content = renderDocument(config, pages)
	return result, nil
}

// brandMasks lists the user-entered strings the unsafe detector must not
// scan: they reach markup only through the escaper.
func brandMasks(config *generator.SiteConfig) []string {
	return []string{
		config.Brand.Name,
		config.Brand.Industry.Label,
	}
}

// renderExternal runs the optional backend and post-sanitizes its output.
// Any failure is logged and reported as a miss so the built-in path runs.
func (r *renderer) renderExternal(ctx context.Context, config *generator.SiteConfig) (string, bool) {
	if r.external == nil || !r.external.Available(ctx) {
		return "", false
	}
	canonical, err := config.CanonicalJSON()
	if err != nil {
		return "", false
	}
	markup, err := r.external.RenderHTML(ctx, canonical)
	if err != nil {
		r.logger.Warn("external renderer failed, using builtin",
			"config_id", config.ConfigID, "error", err)
		return "", false
	}
	sanitized, err := PostSanitize(markup)
	if err != nil {
		r.logger.Warn("external markup rejected, using builtin",
			"config_id", config.ConfigID, "error", err)
		return "", false
	}
	return sanitized, true
}

// jsonModel is the sanitized structured preview: brand, theme, and pages with
// escaped section props.
func jsonModel(config *generator.SiteConfig, pages []generator.Page) map[string]any {
	pageModels := make([]any, 0, len(pages))
	for _, page := range pages {
		sections := make([]any, 0, len(page.Sections))
		for _, section := range page.Sections {
			sections = append(sections, map[string]any{
				"id":    section.ID,
				"type":  section.Type,
				"props": section.Props,
			})
		}
		pageModels = append(pageModels, map[string]any{
			"id":       page.ID,
			"path":     page.Path,
			"title":    page.Title,
			"sections": sections,
		})
	}

	return map[string]any{
		"brand": map[string]any{
			"name":     config.Brand.Name,
			"industry": config.Brand.Industry,
			"slug":     config.Brand.Slug,
			"logo":     config.Brand.Logo,
		},
		"theme": map[string]any{
			"themeId":    config.Theme.ThemeID,
			"palette":    config.Theme.Palette,
			"typography": config.Theme.Typography,
			"radius":     config.Theme.Radius,
			"spacing":    config.Theme.Spacing,
		},
		"pages": pageModels,
	}
}
