package preview

import (
	"fmt"

	"github.com/goliatone/go-sitedraft/internal/generator"
)

// ETag derives the weak validator for a configuration: the config id joined
// with the first 16 hex characters of the content hash. The hash elides the
// stamped fields, so the same logical config yields the same tag regardless
// of rendering format or when it was generated.
func ETag(config *generator.SiteConfig) (string, error) {
	hash, err := config.ContentHash()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`W/"%s:%s"`, config.ConfigID, hash[:16]), nil
}

// ETagMatches reports whether an If-None-Match header value matches the tag.
// A single literal comparison is enough: tags are always emitted weak.
func ETagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	return header == etag
}
