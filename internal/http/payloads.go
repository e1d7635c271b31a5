package http

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/projects"
)

type industryPayload struct {
	Code  string `json:"code"`
	Label string `json:"label,omitempty"`
}

func (p industryPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Code, validation.Required),
	)
}

func (p industryPayload) toDomain() domain.IndustryInfo {
	return domain.IndustryInfo{Code: p.Code, Label: p.Label}
}

type logoPayload struct {
	AssetID string `json:"assetId"`
}

func (p logoPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.AssetID, validation.Required),
	)
}

type createDraftPayload struct {
	BrandName  string          `json:"brandName"`
	Industry   industryPayload `json:"industry"`
	Logo       *logoPayload    `json:"logo,omitempty"`
	TTLSeconds int64           `json:"ttlSeconds,omitempty"`
	Source     string          `json:"source,omitempty"`
}

func (p createDraftPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BrandName, validation.Required, validation.RuneLength(1, domain.MaxBrandNameLength)),
		validation.Field(&p.Industry, validation.Required),
		validation.Field(&p.Logo),
		validation.Field(&p.TTLSeconds, validation.Min(int64(0))),
	)
}

// updateDraftPayload keeps the wire-level distinction between an absent logo
// field (no change) and an explicit null (clear).
type updateDraftPayload struct {
	BrandName *string
	Industry  *industryPayload
	Logo      drafts.LogoPatch
}

func (p *updateDraftPayload) UnmarshalJSON(data []byte) error {
	var aux struct {
		BrandName *string          `json:"brandName"`
		Industry  *industryPayload `json:"industry"`
		Logo      json.RawMessage  `json:"logo"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.BrandName = aux.BrandName
	p.Industry = aux.Industry
	p.Logo = drafts.LogoUnset()

	switch {
	case aux.Logo == nil:
	case string(aux.Logo) == "null":
		p.Logo = drafts.LogoClear()
	default:
		var logo logoPayload
		if err := json.Unmarshal(aux.Logo, &logo); err != nil {
			return err
		}
		if err := logo.Validate(); err != nil {
			return err
		}
		p.Logo = drafts.LogoSet(logo.AssetID)
	}
	return nil
}

func (p updateDraftPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BrandName, validation.NilOrNotEmpty, validation.RuneLength(1, domain.MaxBrandNameLength)),
		validation.Field(&p.Industry),
	)
}

type ownerPayload struct {
	UserID   string  `json:"userId"`
	TenantID *string `json:"tenantId,omitempty"`
}

func (p ownerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.UserID, validation.Required),
	)
}

func (p ownerPayload) toDomain() projects.Owner {
	return projects.Owner{UserID: p.UserID, TenantID: p.TenantID}
}

type commitDraftPayload struct {
	Owner ownerPayload `json:"owner"`
}

func (p commitDraftPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Owner, validation.Required),
	)
}

type commitResponse struct {
	ProjectID string `json:"projectId"`
	ConfigID  string `json:"configId"`
	Status    string `json:"status"`
}
