package projects

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitedraft/internal/identity"
)

// MemoryRepository is the in-memory Repository used by unit tests and local
// wiring without a database.
type MemoryRepository struct {
	mu       sync.RWMutex
	byDraft  map[string]*Committed
	byID     map[string]*Project
	byConfig map[string]*ProjectConfig
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byDraft:  make(map[string]*Committed),
		byID:     make(map[string]*Project),
		byConfig: make(map[string]*ProjectConfig),
	}
}

func (r *MemoryRepository) FindByDraftID(_ context.Context, draftID string) (*Committed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	committed, ok := r.byDraft[draftID]
	if !ok {
		return nil, nil
	}
	return cloneCommitted(committed), nil
}

func (r *MemoryRepository) CreateCommitted(_ context.Context, project *Project, config *ProjectConfig) (*Committed, error) {
	if project == nil || config == nil {
		return nil, fmt.Errorf("project and config are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byDraft[project.DraftID]; exists {
		return nil, &AlreadyCommittedError{DraftID: project.DraftID}
	}

	stored := *project
	if stored.ID == uuid.Nil {
		stored.ID = identity.UUID(stored.ProjectID)
	}
	storedConfig := *config
	if storedConfig.ID == uuid.Nil {
		storedConfig.ID = identity.UUID(storedConfig.ConfigID)
	}
	storedConfig.ProjectID = stored.ID

	committed := &Committed{Project: &stored, Config: &storedConfig}
	r.byDraft[stored.DraftID] = committed
	r.byID[stored.ProjectID] = &stored
	r.byConfig[storedConfig.ConfigID] = &storedConfig
	return cloneCommitted(committed), nil
}

func (r *MemoryRepository) GetProject(_ context.Context, projectID string) (*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.byID[projectID]
	if !ok {
		return nil, &ProjectNotFoundError{Key: projectID}
	}
	cloned := *project
	return &cloned, nil
}

func (r *MemoryRepository) GetConfig(_ context.Context, configID string) (*ProjectConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, ok := r.byConfig[configID]
	if !ok {
		return nil, &ProjectNotFoundError{Key: configID}
	}
	cloned := *config
	return &cloned, nil
}

func cloneCommitted(committed *Committed) *Committed {
	project := *committed.Project
	config := *committed.Config
	return &Committed{Project: &project, Config: &config}
}

var (
	_ Repository = (*MemoryRepository)(nil)
	_ Repository = (*BunRepository)(nil)
)
