package commit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/generator"
	"github.com/goliatone/go-sitedraft/internal/identity"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/internal/projects"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// Commit outcome statuses.
const (
	StatusMigrated         = "MIGRATED"
	StatusAlreadyCommitted = "ALREADY_COMMITTED"
)

var (
	// ErrCommitInProgress reports a held per-draft lock.
	ErrCommitInProgress = errors.New("commit already in progress")
	// ErrOwnerRequired rejects a commit without an owner user id.
	ErrOwnerRequired = errors.New("owner user id required")
)

// Request carries a commit attempt for one draft.
type Request struct {
	DraftID        string
	Owner          projects.Owner
	IdempotencyKey *string
}

// Result reports a finished commit. Replayed marks idempotent replays, which
// surface as 200 instead of 201 at the transport layer.
type Result struct {
	ProjectID string
	ConfigID  string
	Status    string
	Replayed  bool
	Project   *projects.Project
	Config    *projects.ProjectConfig
}

// Coordinator migrates drafts into permanent projects. A successful commit
// is terminal: the draft is deleted and later attempts replay the original
// identifiers.
type Coordinator interface {
	Commit(ctx context.Context, req Request) (*Result, error)
}

type coordinator struct {
	drafts       drafts.Service
	generator    generator.Service
	repo         projects.Repository
	locker       Locker
	clock        func() time.Time
	newProjectID func() string
	logger       interfaces.Logger
}

// Option customizes the coordinator.
type Option func(*coordinator)

// WithClock injects a deterministic clock.
func WithClock(clock func() time.Time) Option {
	return func(c *coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithProjectIDGenerator overrides project id generation.
func WithProjectIDGenerator(gen func() string) Option {
	return func(c *coordinator) {
		if gen != nil {
			c.newProjectID = gen
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator wires the commit pipeline.
func NewCoordinator(draftService drafts.Service, generatorService generator.Service, repo projects.Repository, locker Locker, opts ...Option) Coordinator {
	c := &coordinator{
		drafts:       draftService,
		generator:    generatorService,
		repo:         repo,
		locker:       locker,
		clock:        domain.UTCNow,
		newProjectID: identity.NewProjectID,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *coordinator) Commit(ctx context.Context, req Request) (*Result, error) {
	draftID := strings.TrimSpace(req.DraftID)
	if draftID == "" {
		return nil, drafts.ErrDraftIDRequired
	}
	if strings.TrimSpace(req.Owner.UserID) == "" {
		return nil, ErrOwnerRequired
	}

	acquired, err := c.locker.Acquire(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrCommitInProgress
	}
	defer func() {
		if err := c.locker.Release(ctx, draftID); err != nil {
			c.logger.Warn("commit lock release failed, ttl will reclaim",
				"draft_id", draftID, "error", err)
		}
	}()

	// Idempotency check: a project for this draft means a prior commit
	// finished step 6; replay its identifiers.
	if existing, err := c.repo.FindByDraftID(ctx, draftID); err != nil {
		return nil, err
	} else if existing != nil {
		// A prior attempt may have died before deleting the draft.
		c.deleteDraft(ctx, draftID)
		return replayResult(existing), nil
	}

	draft, err := c.drafts.GetForCommit(ctx, draftID)
	if err != nil {
		return nil, err
	}

	config, err := c.generator.Generate(draft)
	if err != nil {
		return nil, err
	}
	canonical, err := config.CanonicalJSON()
	if err != nil {
		return nil, err
	}
	hash, err := config.ContentHash()
	if err != nil {
		return nil, err
	}

	now := domain.TruncateTime(c.clock())
	project := &projects.Project{
		ProjectID:     c.newProjectID(),
		DraftID:       draftID,
		OwnerUserID:   strings.TrimSpace(req.Owner.UserID),
		OwnerTenantID: req.Owner.TenantID,
		Status:        projects.StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	projectConfig := &projects.ProjectConfig{
		ConfigID:        config.ConfigID,
		SchemaVersion:   config.SchemaVersion,
		ConfigVersion:   config.ConfigVersion,
		TemplateID:      config.Generator.TemplateID,
		TemplateVersion: config.Generator.TemplateVersion,
		ConfigJSON:      canonical,
		ConfigHash:      hash,
		CreatedAt:       now,
	}

	committed, err := c.repo.CreateCommitted(ctx, project, projectConfig)
	if err != nil {
		// A racing writer slipped past a lost lock; the unique constraint
		// makes the replay safe.
		if errors.Is(err, projects.ErrDraftAlreadyCommitted) {
			existing, readErr := c.repo.FindByDraftID(ctx, draftID)
			if readErr != nil {
				return nil, readErr
			}
			if existing == nil {
				return nil, err
			}
			c.deleteDraft(ctx, draftID)
			return replayResult(existing), nil
		}
		return nil, err
	}

	c.deleteDraft(ctx, draftID)
	c.logger.Info("draft committed",
		"draft_id", draftID,
		"project_id", committed.Project.ProjectID,
		"config_id", committed.Config.ConfigID,
	)
	return &Result{
		ProjectID: committed.Project.ProjectID,
		ConfigID:  committed.Config.ConfigID,
		Status:    StatusMigrated,
		Project:   committed.Project,
		Config:    committed.Config,
	}, nil
}

// deleteDraft is best-effort: the store TTL reclaims leftovers.
func (c *coordinator) deleteDraft(ctx context.Context, draftID string) {
	if err := c.drafts.Delete(ctx, draftID); err != nil {
		c.logger.Warn("draft delete after commit failed, ttl will reclaim",
			"draft_id", draftID, "error", err)
	}
}

func replayResult(existing *projects.Committed) *Result {
	return &Result{
		ProjectID: existing.Project.ProjectID,
		ConfigID:  existing.Config.ConfigID,
		Status:    StatusAlreadyCommitted,
		Replayed:  true,
		Project:   existing.Project,
		Config:    existing.Config,
	}
}
