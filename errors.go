package sitedraft

import (
	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/preview"
	"github.com/goliatone/go-sitedraft/internal/projects"
)

// Domain error sentinels, matchable with errors.Is.
var (
	ErrDraftNotFound         = drafts.ErrDraftNotFound
	ErrDraftExpired          = drafts.ErrDraftExpired
	ErrDraftExists           = drafts.ErrDraftExists
	ErrLogoAssetMissing      = drafts.ErrLogoAssetMissing
	ErrBrandNameEmpty        = domain.ErrBrandNameEmpty
	ErrCommitInProgress      = commit.ErrCommitInProgress
	ErrOwnerRequired         = commit.ErrOwnerRequired
	ErrDraftAlreadyCommitted = projects.ErrDraftAlreadyCommitted
	ErrProjectNotFound       = projects.ErrProjectNotFound
	ErrPreviewUnsafe         = preview.ErrUnsafeContent
	ErrUnsupportedFormat     = preview.ErrUnsupportedFormat
)
