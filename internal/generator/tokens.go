package generator

import (
	"strings"

	"github.com/goliatone/go-sitedraft/internal/domain"
)

const logoAssetToken = "{{logoAssetId}}"

// tokenContext carries the closed token vocabulary for one generation run.
// There are no user-defined tokens and no expression evaluation: resolution
// is strict substitution.
type tokenContext struct {
	replacer    *strings.Replacer
	logoAssetID *string
}

func newTokenContext(brandName string, industry domain.IndustryInfo, slugValue string, logo *domain.AssetInfo) tokenContext {
	logoURL := ""
	logoAssetText := "null"
	var logoAssetID *string
	if logo != nil {
		logoURL = logo.URL
		logoAssetText = logo.AssetID
		id := logo.AssetID
		logoAssetID = &id
	}
	return tokenContext{
		replacer: strings.NewReplacer(
			"{{brandName}}", brandName,
			"{{industryLabel}}", industry.Label,
			"{{logoUrl}}", logoURL,
			logoAssetToken, logoAssetText,
			"{{slug}}", slugValue,
		),
		logoAssetID: logoAssetID,
	}
}

// resolveString substitutes every token occurrence inside a string.
func (c tokenContext) resolveString(s string) string {
	return c.replacer.Replace(s)
}

// resolve walks strings, arrays, and objects. A string that consists of
// exactly the logo-asset token becomes the raw asset id, or nil when the
// draft has no logo; embedded occurrences take the string form.
func (c tokenContext) resolve(value any) any {
	switch typed := value.(type) {
	case string:
		if typed == logoAssetToken {
			if c.logoAssetID == nil {
				return nil
			}
			return *c.logoAssetID
		}
		return c.resolveString(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[key] = c.resolve(entry)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			out[i] = c.resolve(entry)
		}
		return out
	default:
		return value
	}
}

// resolveProps resolves a section props tree without mutating the template.
func (c tokenContext) resolveProps(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	resolved := c.resolve(props)
	out, ok := resolved.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return out
}
