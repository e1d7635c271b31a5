package di

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitedraft/internal/assets"
	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/generator"
	sdhttp "github.com/goliatone/go-sitedraft/internal/http"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/internal/preview"
	"github.com/goliatone/go-sitedraft/internal/projects"
	"github.com/goliatone/go-sitedraft/internal/runtimeconfig"
	"github.com/goliatone/go-sitedraft/internal/templates"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// Container wires module dependencies. Without a redis client or bun handle
// every binding falls back to its in-memory counterpart, which keeps local
// wiring and tests free of infrastructure.
type Container struct {
	Config runtimeconfig.Config

	loggers  interfaces.LoggerProvider
	redis    redis.UniversalClient
	bunDB    *bun.DB
	external interfaces.ExternalRenderer
	clock    func() time.Time

	registry *templates.MemoryRegistry
	store    drafts.Store
	resolver interfaces.AssetResolver
	repo     projects.Repository
	locker   commit.Locker

	draftSvc    drafts.Service
	generator   generator.Service
	renderer    preview.Renderer
	coordinator commit.Coordinator
	api         *sdhttp.API
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default no-op logging backend.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggers = provider
	}
}

// WithRedisClient supplies the connection backing the draft store, the
// commit lock, and the asset metadata reads.
func WithRedisClient(client redis.UniversalClient) Option {
	return func(c *Container) {
		c.redis = client
	}
}

// WithBunDB supplies the relational handle committed projects are written to.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithExternalRenderer attaches an optional preview backend.
func WithExternalRenderer(external interfaces.ExternalRenderer) Option {
	return func(c *Container) {
		c.external = external
	}
}

// WithClock injects a deterministic clock into every service.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDraftStore overrides the default draft store binding.
func WithDraftStore(store drafts.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithAssetResolver overrides the default asset metadata binding.
func WithAssetResolver(resolver interfaces.AssetResolver) Option {
	return func(c *Container) {
		c.resolver = resolver
	}
}

// WithProjectRepository overrides the default project repository binding.
func WithProjectRepository(repo projects.Repository) Option {
	return func(c *Container) {
		c.repo = repo
	}
}

// WithLocker overrides the default commit lock binding.
func WithLocker(locker commit.Locker) Option {
	return func(c *Container) {
		c.locker = locker
	}
}

// WithTemplateRegistry overrides the built-in template set.
func WithTemplateRegistry(registry *templates.MemoryRegistry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.registry == nil {
		c.registry = templates.Builtin(
			templates.WithRegistryLogger(c.moduleLogger("templates")),
		)
	}
	c.configureStores()
	c.configureServices()
	return c
}

func (c *Container) configureStores() {
	if c.store == nil {
		if c.redis != nil {
			c.store = drafts.NewRedisStore(c.redis,
				drafts.WithRedisLogger(c.moduleLogger("drafts")),
			)
		} else {
			c.store = drafts.NewMemoryStore()
		}
	}

	if c.resolver == nil {
		if c.redis != nil {
			c.resolver = assets.NewRedisResolver(c.redis,
				assets.WithBaseURL(c.Config.Assets.PublicBaseURL),
				assets.WithResolverLogger(c.moduleLogger("assets")),
			)
		} else {
			c.resolver = assets.NewMemoryResolver()
		}
	}

	if c.locker == nil {
		if c.redis != nil {
			c.locker = commit.NewRedisLocker(c.redis)
		} else {
			c.locker = commit.NewMemoryLocker()
		}
	}

	if c.repo == nil {
		if c.bunDB != nil {
			c.repo = projects.NewBunRepository(c.bunDB)
		} else {
			c.repo = projects.NewMemoryRepository()
		}
	}
}

func (c *Container) configureServices() {
	draftOpts := []drafts.ServiceOption{
		drafts.WithDefaultTTL(c.Config.Drafts.DefaultTTLSeconds),
		drafts.WithLogger(c.moduleLogger("drafts")),
	}
	generatorOpts := []generator.Option{
		generator.WithLogger(c.moduleLogger("generator")),
	}
	rendererOpts := []preview.Option{
		preview.WithLogger(c.moduleLogger("preview")),
	}
	commitOpts := []commit.Option{
		commit.WithLogger(c.moduleLogger("commit")),
	}
	if c.clock != nil {
		draftOpts = append(draftOpts, drafts.WithClock(c.clock))
		generatorOpts = append(generatorOpts, generator.WithClock(c.clock))
		rendererOpts = append(rendererOpts, preview.WithClock(c.clock))
		commitOpts = append(commitOpts, commit.WithClock(c.clock))
	}
	if c.external != nil {
		rendererOpts = append(rendererOpts, preview.WithExternalRenderer(c.external))
	}

	if c.draftSvc == nil {
		c.draftSvc = drafts.NewService(c.store, c.resolver, c.registry, draftOpts...)
	}
	if c.generator == nil {
		c.generator = generator.NewService(c.registry, generatorOpts...)
	}
	if c.renderer == nil {
		c.renderer = preview.NewRenderer(rendererOpts...)
	}
	if c.coordinator == nil {
		c.coordinator = commit.NewCoordinator(c.draftSvc, c.generator, c.repo, c.locker, commitOpts...)
	}

	c.api = sdhttp.NewAPI(
		sdhttp.WithDraftService(c.draftSvc),
		sdhttp.WithGeneratorService(c.generator),
		sdhttp.WithPreviewRenderer(c.renderer),
		sdhttp.WithCommitCoordinator(c.coordinator),
		sdhttp.WithInternalToken(c.Config.Commit.InternalToken),
		sdhttp.WithCORSOrigins(c.Config.HTTP.CORSOrigins),
		sdhttp.WithAPILogger(c.moduleLogger("http")),
	)
}

func (c *Container) moduleLogger(module string) interfaces.Logger {
	if c.loggers == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(c.loggers, module)
}

// Drafts returns the draft lifecycle service.
func (c *Container) Drafts() drafts.Service { return c.draftSvc }

// Generator returns the config generator.
func (c *Container) Generator() generator.Service { return c.generator }

// Renderer returns the preview renderer.
func (c *Container) Renderer() preview.Renderer { return c.renderer }

// Projects returns the project repository binding.
func (c *Container) Projects() projects.Repository { return c.repo }

// Coordinator returns the commit pipeline.
func (c *Container) Coordinator() commit.Coordinator { return c.coordinator }

// Templates returns the template registry.
func (c *Container) Templates() *templates.MemoryRegistry { return c.registry }

// API returns the configured HTTP surface.
func (c *Container) API() *sdhttp.API { return c.api }

// Handler returns the full HTTP handler including middleware.
func (c *Container) Handler() (http.Handler, error) { return c.api.Handler() }
