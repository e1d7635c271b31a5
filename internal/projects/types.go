package projects

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Project statuses. A committed draft always lands as DRAFT; later pipeline
// stages advance it.
const (
	StatusDraft     = "DRAFT"
	StatusReady     = "READY"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Owner identifies who a project belongs to after commit.
type Owner struct {
	UserID   string  `json:"userId"`
	TenantID *string `json:"tenantId,omitempty"`
}

// Project is the permanent record created exactly once per origin draft.
// draft_id carries a unique constraint; it is the idempotency anchor for the
// whole commit protocol.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:prj"`

	ID            uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	ProjectID     string     `bun:"project_id,notnull,unique" json:"projectId"`
	DraftID       string     `bun:"draft_id,notnull,unique" json:"draftId"`
	OwnerUserID   string     `bun:"owner_user_id,notnull" json:"ownerUserId"`
	OwnerTenantID *string    `bun:"owner_tenant_id" json:"ownerTenantId,omitempty"`
	Status        string     `bun:"status,notnull,default:'DRAFT'" json:"status"`
	CreatedAt     time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull" json:"updatedAt"`
	DeletedAt     *time.Time `bun:"deleted_at,nullzero" json:"deletedAt,omitempty"`
}

// Owner reconstructs the owner block from the flattened columns.
func (p *Project) Owner() Owner {
	return Owner{UserID: p.OwnerUserID, TenantID: p.OwnerTenantID}
}

// ProjectConfig is the immutable configuration snapshot inserted in the same
// transaction as its project.
type ProjectConfig struct {
	bun.BaseModel `bun:"table:project_configs,alias:pc"`

	ID              uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	ConfigID        string          `bun:"config_id,notnull,unique" json:"configId"`
	ProjectID       uuid.UUID       `bun:"project_id,notnull,type:uuid" json:"projectId"`
	SchemaVersion   int             `bun:"schema_version,notnull" json:"schemaVersion"`
	ConfigVersion   string          `bun:"config_version,notnull" json:"configVersion"`
	TemplateID      string          `bun:"template_id,notnull" json:"templateId"`
	TemplateVersion int             `bun:"template_version,notnull" json:"templateVersion"`
	ConfigJSON      json.RawMessage `bun:"config_json,type:jsonb,notnull" json:"configJson"`
	ConfigHash      string          `bun:"config_hash,notnull" json:"configHash"`
	CreatedAt       time.Time       `bun:"created_at,notnull" json:"createdAt"`
}

// Committed pairs a project with its configuration snapshot. Commit responses
// are built from this.
type Committed struct {
	Project *Project       `json:"project"`
	Config  *ProjectConfig `json:"config"`
}
