package generator

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	slugMaxLength = 50
	slugFallback  = "site"
)

// Fixed Cyrillic transliteration table. Lookup happens on the lowercased
// rune, so the table only carries lowercase entries.
var cyrillicTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Slug derives a URL-safe identifier from a brand name. The function is
// total: any input, including empty or fully non-alphanumeric strings, yields
// a non-empty slug.
func Slug(brandName string) string {
	var transliterated strings.Builder
	for _, r := range brandName {
		if mapped, ok := cyrillicTranslit[unicode.ToLower(r)]; ok {
			transliterated.WriteString(mapped)
			continue
		}
		transliterated.WriteRune(r)
	}

	// Decompose accented Latin characters and drop the combining marks.
	var stripped strings.Builder
	for _, r := range norm.NFD.String(transliterated.String()) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		stripped.WriteRune(r)
	}

	lowered := strings.ToLower(stripped.String())

	var out []rune
	pendingHyphen := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && len(out) > 0 {
				out = append(out, '-')
			}
			pendingHyphen = false
			out = append(out, r)
			continue
		}
		pendingHyphen = true
	}

	if len(out) > slugMaxLength {
		out = out[:slugMaxLength]
	}
	result := strings.Trim(string(out), "-")
	if result == "" {
		return slugFallback
	}
	return result
}
