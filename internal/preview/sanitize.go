package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-sitedraft/internal/generator"
)

// renderableSections is the closed set of section types the renderer will
// emit. Anything else is silently dropped.
var renderableSections = map[string]struct{}{
	"hero":         {},
	"features":     {},
	"about":        {},
	"contact":      {},
	"services":     {},
	"gallery":      {},
	"testimonials": {},
	"pricing":      {},
	"faq":          {},
	"team":         {},
	"footer":       {},
}

// unsafePattern flags script-like payloads before any rendering happens.
var unsafePattern = regexp.MustCompile(`(?i)<script|<iframe|<object|<embed|javascript:|on\w+\s*=`)

// RenderableSection reports whether a section type is in the whitelist.
func RenderableSection(sectionType string) bool {
	_, ok := renderableSections[sectionType]
	return ok
}

// detectUnsafe scans the JSON serialization of a section for injection
// patterns. The encoder must not HTML-escape, or a script tag would hide
// behind a unicode escape. Brand-derived text is masked out first: it is
// always emitted through the escaper, so a script tag inside a brand name
// renders as inert text, while the same payload injected directly into
// template props aborts the preview. A match aborts the whole preview.
func detectUnsafe(section generator.Section, masks []string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(section); err != nil {
		return err
	}
	serialized := buf.String()
	for _, mask := range masks {
		if mask == "" {
			continue
		}
		serialized = strings.ReplaceAll(serialized, mask, "")
	}
	if match := unsafePattern.FindString(serialized); match != "" {
		return fmt.Errorf("%w: section %q matched %q", ErrUnsafeContent, section.ID, match)
	}
	return nil
}

// escapeValue HTML-escapes every string reachable from a props tree. The walk
// mirrors token resolution: strings, arrays, objects.
func escapeValue(value any) any {
	switch typed := value.(type) {
	case string:
		return html.EscapeString(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[key] = escapeValue(entry)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			out[i] = escapeValue(entry)
		}
		return out
	default:
		return value
	}
}

// sanitizePages filters sections through the whitelist, runs the unsafe
// detector, and escapes every string. The input pages are not mutated.
func sanitizePages(pages []generator.Page, masks []string) ([]generator.Page, error) {
	out := make([]generator.Page, 0, len(pages))
	for _, page := range pages {
		sections := make([]generator.Section, 0, len(page.Sections))
		for _, section := range page.Sections {
			if !RenderableSection(section.Type) {
				continue
			}
			if err := detectUnsafe(section, masks); err != nil {
				return nil, err
			}
			escaped, _ := escapeValue(section.Props).(map[string]any)
			sections = append(sections, generator.Section{
				ID:    section.ID,
				Type:  section.Type,
				Props: escaped,
			})
		}
		out = append(out, generator.Page{
			ID:       page.ID,
			Path:     page.Path,
			Title:    html.EscapeString(page.Title),
			Sections: sections,
		})
	}
	return out, nil
}

// Post-sanitization for markup produced by an external renderer: only the
// structural tags a preview document needs survive, with a matching
// attribute and URL-scheme whitelist.
var (
	allowedTags = map[string]struct{}{
		"html": {}, "head": {}, "meta": {}, "title": {}, "style": {}, "body": {},
		"main": {}, "header": {}, "footer": {}, "section": {}, "article": {},
		"div": {}, "span": {}, "p": {}, "a": {}, "img": {},
		"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
		"ul": {}, "ol": {}, "li": {}, "strong": {}, "em": {}, "br": {}, "hr": {},
	}
	allowedAttrs = map[string]struct{}{
		"class": {}, "id": {}, "href": {}, "src": {}, "alt": {}, "title": {},
		"lang": {}, "charset": {}, "name": {}, "content": {},
	}
	allowedSchemes = map[string]struct{}{
		"http": {}, "https": {}, "mailto": {}, "": {},
	}

	tagPattern  = regexp.MustCompile(`(?is)<\s*(/?)\s*([a-z][a-z0-9]*)((?:[^>"']|"[^"]*"|'[^']*')*?)>`)
	attrPattern = regexp.MustCompile(`(?is)([a-z][a-z0-9-]*)\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
)

// PostSanitize rewrites externally produced HTML so that only whitelisted
// tags, attributes, and URL schemes remain. Disallowed tags are dropped
// entirely; disallowed attributes and event handlers are stripped from kept
// tags.
func PostSanitize(markup string) (string, error) {
	if strings.Contains(strings.ToLower(markup), "<script") {
		return "", fmt.Errorf("%w: external markup carried a script tag", ErrUnsafeContent)
	}

	sanitized := tagPattern.ReplaceAllStringFunc(markup, func(tag string) string {
		groups := tagPattern.FindStringSubmatch(tag)
		closing, name, rawAttrs := groups[1], strings.ToLower(groups[2]), groups[3]
		if _, ok := allowedTags[name]; !ok {
			return ""
		}
		if closing != "" {
			return "</" + name + ">"
		}
		var attrs []string
		for _, match := range attrPattern.FindAllStringSubmatch(rawAttrs, -1) {
			attrName := strings.ToLower(match[1])
			if _, ok := allowedAttrs[attrName]; !ok {
				continue
			}
			attrValue := strings.Trim(match[2], `"'`)
			if attrName == "href" || attrName == "src" {
				if !allowedURL(attrValue) {
					continue
				}
			}
			attrs = append(attrs, fmt.Sprintf(`%s="%s"`, attrName, html.EscapeString(attrValue)))
		}
		if len(attrs) == 0 {
			return "<" + name + ">"
		}
		return "<" + name + " " + strings.Join(attrs, " ") + ">"
	})

	lower := strings.ToLower(sanitized)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") {
		return "", fmt.Errorf("%w: external markup survived sanitization with unsafe content", ErrUnsafeContent)
	}
	return sanitized, nil
}

func allowedURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	_, ok := allowedSchemes[strings.ToLower(parsed.Scheme)]
	return ok
}
