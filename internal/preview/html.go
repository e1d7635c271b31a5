package preview

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-sitedraft/internal/generator"
)

// Border-radius and section spacing are mapped through fixed tables so the
// style block never interpolates raw template values.
var (
	radiusScale = map[string]string{
		"none": "0",
		"sm":   "4px",
		"md":   "8px",
		"lg":   "16px",
		"full": "9999px",
	}
	spacingScale = map[string]string{
		"compact": "2rem",
		"normal":  "3rem",
		"relaxed": "4rem",
	}
)

func radiusValue(radius string) string {
	if v, ok := radiusScale[radius]; ok {
		return v
	}
	return radiusScale["md"]
}

func spacingValue(spacing string) string {
	if v, ok := spacingScale[spacing]; ok {
		return v
	}
	return spacingScale["normal"]
}

// renderDocument composes the built-in HTML preview from already sanitized
// pages. Every string written into the body comes out of the escaped props
// tree; the style block only carries table-mapped values and palette colors
// validated at template registration.
func renderDocument(config *generator.SiteConfig, pages []generator.Page) string {
	var b strings.Builder
	palette := config.Theme.Palette

	b.WriteString("<!doctype html>\n")
	fmt.Fprintf(&b, "<html lang=%q>\n<head>\n", config.Site.Language)
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(config.Site.Title))
	b.WriteString("<style>\n")
	fmt.Fprintf(&b, ":root{--primary:%s;--accent:%s;--background:%s;--surface:%s;--text:%s;--muted:%s;--radius:%s;--spacing:%s}\n",
		palette.Primary, palette.Accent, palette.Background, palette.Surface,
		palette.Text, palette.MutedText,
		radiusValue(config.Theme.Radius), spacingValue(config.Theme.Spacing))
	fmt.Fprintf(&b, "body{margin:0;font-family:%s;background:var(--background);color:var(--text)}\n",
		html.EscapeString(config.Theme.Typography.FontFamily))
	b.WriteString("section{padding:var(--spacing)}\n")
	b.WriteString(".card{background:var(--surface);border-radius:var(--radius);padding:1rem}\n")
	b.WriteString("a.cta{display:inline-block;background:var(--primary);color:var(--background);border-radius:var(--radius);padding:.75rem 1.5rem;text-decoration:none}\n")
	b.WriteString(".muted{color:var(--muted)}\n")
	b.WriteString("</style>\n</head>\n<body>\n<main>\n")

	for _, page := range pages {
		for _, section := range page.Sections {
			b.WriteString(sectionHTML(section))
		}
	}

	b.WriteString("</main>\n</body>\n</html>\n")
	return b.String()
}

// sectionHTML dispatches to a fixed per-type builder. The props values are
// pre-escaped; builders only concatenate them into static markup.
func sectionHTML(section generator.Section) string {
	switch section.Type {
	case "hero":
		return heroHTML(section)
	case "features":
		return listHTML(section, "features")
	case "services":
		return listHTML(section, "services")
	case "testimonials":
		return listHTML(section, "testimonials")
	case "pricing":
		return listHTML(section, "pricing")
	case "faq":
		return listHTML(section, "faq")
	case "team":
		return listHTML(section, "team")
	case "gallery":
		return galleryHTML(section)
	case "about":
		return aboutHTML(section)
	case "contact":
		return contactHTML(section)
	case "footer":
		return footerHTML(section)
	default:
		return ""
	}
}

func heroHTML(section generator.Section) string {
	var b strings.Builder
	b.WriteString(`<section class="hero">`)
	if title := stringProp(section.Props, "title"); title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>", title)
	}
	if subtitle := stringProp(section.Props, "subtitle"); subtitle != "" {
		fmt.Fprintf(&b, `<p class="muted">%s</p>`, subtitle)
	}
	if logoURL := stringProp(section.Props, "logoUrl"); logoURL != "" {
		fmt.Fprintf(&b, `<img src="%s" alt="">`, logoURL)
	}
	if cta := stringProp(section.Props, "ctaLabel"); cta != "" {
		fmt.Fprintf(&b, `<a class="cta" href="#contact">%s</a>`, cta)
	}
	b.WriteString("</section>\n")
	return b.String()
}

func listHTML(section generator.Section, class string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<section class=%q>`, class)
	if heading := stringProp(section.Props, "heading"); heading != "" {
		fmt.Fprintf(&b, "<h2>%s</h2>", heading)
	}
	items, _ := section.Props["items"].([]any)
	if len(items) > 0 {
		b.WriteString("<ul>")
		for _, entry := range items {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			b.WriteString(`<li class="card">`)
			if title := stringProp(item, "title"); title != "" {
				fmt.Fprintf(&b, "<strong>%s</strong>", title)
			}
			if text := stringProp(item, "text"); text != "" {
				fmt.Fprintf(&b, `<p class="muted">%s</p>`, text)
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</section>\n")
	return b.String()
}

func galleryHTML(section generator.Section) string {
	var b strings.Builder
	b.WriteString(`<section class="gallery">`)
	if heading := stringProp(section.Props, "heading"); heading != "" {
		fmt.Fprintf(&b, "<h2>%s</h2>", heading)
	}
	images, _ := section.Props["images"].([]any)
	for _, entry := range images {
		if src, ok := entry.(string); ok && src != "" {
			fmt.Fprintf(&b, `<img class="card" src="%s" alt="">`, src)
		}
	}
	b.WriteString("</section>\n")
	return b.String()
}

func aboutHTML(section generator.Section) string {
	var b strings.Builder
	b.WriteString(`<section class="about">`)
	if heading := stringProp(section.Props, "heading"); heading != "" {
		fmt.Fprintf(&b, "<h2>%s</h2>", heading)
	}
	if body := stringProp(section.Props, "body"); body != "" {
		fmt.Fprintf(&b, "<p>%s</p>", body)
	}
	b.WriteString("</section>\n")
	return b.String()
}

func contactHTML(section generator.Section) string {
	var b strings.Builder
	b.WriteString(`<section class="contact" id="contact">`)
	if heading := stringProp(section.Props, "heading"); heading != "" {
		fmt.Fprintf(&b, "<h2>%s</h2>", heading)
	}
	if email := stringProp(section.Props, "email"); email != "" {
		fmt.Fprintf(&b, `<p><a href="mailto:%s">%s</a></p>`, email, email)
	}
	if cta := stringProp(section.Props, "ctaLabel"); cta != "" {
		fmt.Fprintf(&b, `<a class="cta" href="#contact">%s</a>`, cta)
	}
	b.WriteString("</section>\n")
	return b.String()
}

func footerHTML(section generator.Section) string {
	var b strings.Builder
	b.WriteString(`<footer>`)
	if text := stringProp(section.Props, "text"); text != "" {
		fmt.Fprintf(&b, `<p class="muted">%s</p>`, text)
	}
	b.WriteString("</footer>\n")
	return b.String()
}

func stringProp(props map[string]any, key string) string {
	if props == nil {
		return ""
	}
	value, _ := props[key].(string)
	return value
}
