package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitedraft/internal/identity"
)

// BunRepository persists projects and their configuration snapshots through
// bun. It works against Postgres in production and sqlite in tests.
type BunRepository struct {
	db      *bun.DB
	repo    repository.Repository[*Project]
	configs repository.Repository[*ProjectConfig]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:      db,
		repo:    NewProjectRepository(db),
		configs: NewProjectConfigRepository(db),
	}
}

func (r *BunRepository) FindByDraftID(ctx context.Context, draftID string) (*Committed, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.draft_id = ?", draftID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("project lookup by draft: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	project := records[0]

	config, err := r.configByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return &Committed{Project: project, Config: config}, nil
}

// CreateCommitted inserts both rows in a single transaction. A unique
// violation on draft_id means another writer raced past a lost lock; the
// caller re-reads and replays idempotently.
func (r *BunRepository) CreateCommitted(ctx context.Context, project *Project, config *ProjectConfig) (*Committed, error) {
	if project == nil || config == nil {
		return nil, fmt.Errorf("project and config are required")
	}
	if project.ID == uuid.Nil {
		project.ID = identity.UUID(project.ProjectID)
	}
	if config.ID == uuid.Nil {
		config.ID = identity.UUID(config.ConfigID)
	}
	config.ProjectID = project.ID

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(project).Exec(ctx); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		if _, err := tx.NewInsert().Model(config).Exec(ctx); err != nil {
			return fmt.Errorf("insert project config: %w", err)
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &AlreadyCommittedError{DraftID: project.DraftID}
		}
		return nil, err
	}
	return &Committed{Project: project, Config: config}, nil
}

func (r *BunRepository) GetProject(ctx context.Context, projectID string) (*Project, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.project_id = ?", projectID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, projectID)
	}
	if len(records) == 0 {
		return nil, &ProjectNotFoundError{Key: projectID}
	}
	return records[0], nil
}

func (r *BunRepository) GetConfig(ctx context.Context, configID string) (*ProjectConfig, error) {
	result, err := r.configs.GetByIdentifier(ctx, configID)
	if err != nil {
		return nil, mapRepositoryError(err, configID)
	}
	return result, nil
}

func (r *BunRepository) configByProject(ctx context.Context, projectID uuid.UUID) (*ProjectConfig, error) {
	records, _, err := r.configs.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.project_id = ?", projectID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("config lookup by project: %w", err)
	}
	if len(records) == 0 {
		return nil, &ProjectNotFoundError{Key: projectID.String()}
	}
	return records[0], nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &ProjectNotFoundError{Key: key}
	}
	return fmt.Errorf("project repository error: %w", err)
}

// isUniqueViolation recognizes unique-constraint failures across the Postgres
// and sqlite drivers, with a message fallback for wrapped driver errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") ||
		strings.Contains(message, "duplicate key")
}
