package sitedraft

import (
	"net/http"

	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/di"
	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/generator"
	"github.com/goliatone/go-sitedraft/internal/preview"
	"github.com/goliatone/go-sitedraft/internal/projects"
	"github.com/goliatone/go-sitedraft/internal/templates"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// Draft exports the temporary brand/industry/logo record.
type Draft = drafts.Draft

// BrandProfile exports the brand identity value object.
type BrandProfile = domain.BrandProfile

// IndustryInfo exports the industry taxonomy pair.
type IndustryInfo = domain.IndustryInfo

// AssetInfo exports the uploaded-asset metadata record.
type AssetInfo = domain.AssetInfo

// SiteConfig exports the generated site configuration.
type SiteConfig = generator.SiteConfig

// PreviewResult exports a rendered preview document.
type PreviewResult = preview.Result

// CommitRequest exports the commit protocol input.
type CommitRequest = commit.Request

// CommitResult exports the commit protocol outcome.
type CommitResult = commit.Result

// Project exports the durable project row.
type Project = projects.Project

// ProjectConfig exports the durable configuration row.
type ProjectConfig = projects.ProjectConfig

// Owner exports the commit owner identity.
type Owner = projects.Owner

// TemplateDefinition exports a site template.
type TemplateDefinition = templates.TemplateDefinition

// DraftService exports the draft lifecycle contract.
type DraftService = drafts.Service

// GeneratorService exports the config generator contract.
type GeneratorService = generator.Service

// PreviewRenderer exports the preview renderer contract.
type PreviewRenderer = preview.Renderer

// CommitCoordinator exports the commit pipeline contract.
type CommitCoordinator = commit.Coordinator

// ProjectRepository exports the relational persistence contract.
type ProjectRepository = projects.Repository

// Logger exports the structured logging contract.
type Logger = interfaces.Logger

// LoggerProvider exports the named-logger factory contract.
type LoggerProvider = interfaces.LoggerProvider

// AssetResolver exports the blob-metadata adapter contract.
type AssetResolver = interfaces.AssetResolver

// ExternalRenderer exports the optional preview backend contract.
type ExternalRenderer = interfaces.ExternalRenderer

// Module is the embeddable sitedraft runtime: draft lifecycle, generator,
// preview, and commit behind one wiring surface.
type Module struct {
	container *di.Container
}

// New wires a module from the supplied configuration. Infrastructure
// bindings (redis, bun, loggers) are passed as di options; anything omitted
// falls back to an in-memory implementation.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Drafts returns the draft lifecycle service.
func (m *Module) Drafts() DraftService {
	return m.container.Drafts()
}

// Generator returns the config generator.
func (m *Module) Generator() GeneratorService {
	return m.container.Generator()
}

// Preview returns the preview renderer.
func (m *Module) Preview() PreviewRenderer {
	return m.container.Renderer()
}

// Commits returns the commit coordinator.
func (m *Module) Commits() CommitCoordinator {
	return m.container.Coordinator()
}

// Projects returns the project repository binding.
func (m *Module) Projects() ProjectRepository {
	return m.container.Projects()
}

// Handler returns the HTTP surface with middleware applied.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.Handler()
}
