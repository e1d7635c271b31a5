package projects

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists committed projects. FindByDraftID returns (nil, nil)
// when no project exists for the draft; CreateCommitted inserts both rows in
// one transaction and surfaces unique-constraint races as
// AlreadyCommittedError.
type Repository interface {
	FindByDraftID(ctx context.Context, draftID string) (*Committed, error)
	CreateCommitted(ctx context.Context, project *Project, config *ProjectConfig) (*Committed, error)
	GetProject(ctx context.Context, projectID string) (*Project, error)
	GetConfig(ctx context.Context, configID string) (*ProjectConfig, error)
}

func NewProjectRepository(db *bun.DB) repository.Repository[*Project] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Project]{
		NewRecord: func() *Project { return &Project{} },
		GetID: func(p *Project) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Project, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "draft_id"
		},
		GetIdentifierValue: func(p *Project) string {
			return p.DraftID
		},
	})
}

func NewProjectConfigRepository(db *bun.DB) repository.Repository[*ProjectConfig] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ProjectConfig]{
		NewRecord: func() *ProjectConfig { return &ProjectConfig{} },
		GetID: func(pc *ProjectConfig) uuid.UUID {
			return pc.ID
		},
		SetID: func(pc *ProjectConfig, id uuid.UUID) {
			pc.ID = id
		},
		GetIdentifier: func() string {
			return "config_id"
		},
		GetIdentifierValue: func(pc *ProjectConfig) string {
			return pc.ConfigID
		},
	})
}
