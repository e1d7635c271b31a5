package drafts

import (
	"errors"
	"fmt"
)

var (
	ErrDraftExists      = errors.New("drafts: draft already exists")
	ErrDraftNotFound    = errors.New("drafts: draft not found")
	ErrDraftExpired     = errors.New("drafts: draft expired")
	ErrUpdateConflict   = errors.New("drafts: concurrent update conflict")
	ErrDraftIDRequired  = errors.New("drafts: draft id required")
	ErrTTLInvalid       = errors.New("drafts: ttl must be positive")
	ErrLogoAssetMissing = errors.New("drafts: logo asset not found")
)

// NotFoundError carries the identifier of a missing (or already expired and
// reclaimed) draft.
type NotFoundError struct {
	DraftID string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.DraftID == "" {
		return ErrDraftNotFound.Error()
	}
	return fmt.Sprintf("%s: id=%s", ErrDraftNotFound.Error(), e.DraftID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrDraftNotFound
}

// ExpiredError marks a draft whose record was still present but whose
// semantic lifetime elapsed.
type ExpiredError struct {
	DraftID string
}

func (e *ExpiredError) Error() string {
	if e == nil || e.DraftID == "" {
		return ErrDraftExpired.Error()
	}
	return fmt.Sprintf("%s: id=%s", ErrDraftExpired.Error(), e.DraftID)
}

func (e *ExpiredError) Unwrap() error {
	return ErrDraftExpired
}

// AssetNotFoundError surfaces a logo reference the asset store cannot resolve.
type AssetNotFoundError struct {
	AssetID string
}

func (e *AssetNotFoundError) Error() string {
	if e == nil || e.AssetID == "" {
		return ErrLogoAssetMissing.Error()
	}
	return fmt.Sprintf("%s: id=%s", ErrLogoAssetMissing.Error(), e.AssetID)
}

func (e *AssetNotFoundError) Unwrap() error {
	return ErrLogoAssetMissing
}
