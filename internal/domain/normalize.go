package domain

import (
	"errors"
	"strings"
	"unicode"
)

// MaxBrandNameLength bounds brand names in code points after normalization.
const MaxBrandNameLength = 100

// ErrBrandNameEmpty signals that normalization produced an empty brand name.
var ErrBrandNameEmpty = errors.New("domain: brand name is empty")

// NormalizeBrandName applies the canonical brand-name rules: trim, drop
// control characters (U+0000..U+001F and U+007F), collapse whitespace runs to
// a single space, reject empty results, truncate at 100 code points.
func NormalizeBrandName(input string) (string, error) {
	var b strings.Builder
	b.Grow(len(input))

	lastSpace := false
	for _, r := range input {
		if r < 0x20 || r == 0x7F {
			continue
		}
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}

	normalized := strings.TrimSpace(b.String())
	if normalized == "" {
		return "", ErrBrandNameEmpty
	}

	runes := []rune(normalized)
	if len(runes) > MaxBrandNameLength {
		normalized = strings.TrimSpace(string(runes[:MaxBrandNameLength]))
		if normalized == "" {
			return "", ErrBrandNameEmpty
		}
	}
	return normalized, nil
}
