package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Opaque identifier prefixes used across the module. Prefixes keep the ids
// self-describing in logs and persisted rows.
const (
	DraftPrefix   = "drf_"
	ConfigPrefix  = "cfg_"
	ProjectPrefix = "prj_"
	AssetPrefix   = "ast_"
)

// NewDraftID returns a fresh opaque draft identifier.
func NewDraftID() string {
	return DraftPrefix + compactUUID()
}

// ConfigID derives the stable configuration identifier for a draft's content.
// The same draft state always yields the same id; a content change yields a
// new one. Preview ETags depend on this stability.
func ConfigID(draftID, contentHash string) string {
	uid := UUID("go-sitedraft:config:" + draftID + ":" + contentHash)
	return ConfigPrefix + strings.ReplaceAll(uid.String(), "-", "")
}

// NewProjectID returns a fresh opaque project identifier.
func NewProjectID() string {
	return ProjectPrefix + compactUUID()
}

// HasPrefix reports whether the id carries the expected prefix and a non-empty
// remainder.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix) && len(id) > len(prefix)
}

func compactUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TemplateUUID derives the stable identity for a registered template.
func TemplateUUID(templateID string, templateVersion int) uuid.UUID {
	return UUID("go-sitedraft:template:" + strings.ToLower(strings.TrimSpace(templateID)) + ":" + strconv.Itoa(templateVersion))
}

// IndustryUUID derives the stable identity for an industry taxonomy entry.
func IndustryUUID(code string) uuid.UUID {
	return UUID("go-sitedraft:industry:" + strings.ToLower(strings.TrimSpace(code)))
}
