package generator_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-sitedraft/internal/generator"
)

func TestSlugTransliteratesCyrillic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Кодовая", "kodovaya"},
		{"Щи и Борщ", "shchi-i-borshch"},
		{"Café Déjà Vu", "cafe-deja-vu"},
		{"Acme Co", "acme-co"},
		{"  --Acme--  ", "acme"},
		{"ООО «Ромашка»", "ooo-romashka"},
		{"Объём", "obem"},
		{"123", "123"},
		{"!!!", "site"},
		{"", "site"},
	}
	for _, tc := range cases {
		if got := generator.Slug(tc.in); got != tc.want {
			t.Fatalf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugTruncatesAtFiftyCodePoints(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := generator.Slug(long)
	if len([]rune(got)) != 50 {
		t.Fatalf("expected 50 code points, got %d", len([]rune(got)))
	}
}

func TestSlugIsStable(t *testing.T) {
	if generator.Slug("Кодовая") != generator.Slug("Кодовая") {
		t.Fatalf("slug derivation must be deterministic")
	}
}
