package generator_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/generator"
	"github.com/goliatone/go-sitedraft/internal/templates"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func fixedConfigID(id string) func(string, string) string {
	return func(string, string) string { return id }
}

func generatorDraft(t *testing.T, brandName, industryCode string, logo *domain.AssetInfo) *drafts.Draft {
	t.Helper()
	profile, err := domain.NewBrandProfile(brandName, domain.IndustryInfo{Code: industryCode}, logo)
	if err != nil {
		t.Fatalf("brand profile: %v", err)
	}
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	return &drafts.Draft{
		SchemaVersion: domain.SchemaVersion,
		DraftID:       "drf_gen",
		Status:        drafts.StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     now.Add(24 * time.Hour),
		TTLSeconds:    86400,
		BrandProfile:  profile,
	}
}

func TestGenerateTechConfig(t *testing.T) {
	registry := templates.Builtin()
	svc := generator.NewService(registry,
		generator.WithClock(fixedClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))),
	)

	config, err := svc.Generate(generatorDraft(t, "Кодовая", domain.IndustryTech, nil))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if config.Site.Title != "Кодовая — IT-услуги для роста бизнеса" {
		t.Fatalf("unexpected site title: %q", config.Site.Title)
	}
	if config.Brand.Slug != "kodovaya" {
		t.Fatalf("unexpected slug: %q", config.Brand.Slug)
	}
	if config.ConfigVersion != generator.ConfigVersion {
		t.Fatalf("unexpected config version: %q", config.ConfigVersion)
	}
	if !strings.HasPrefix(config.ConfigID, "cfg_") {
		t.Fatalf("unexpected config id: %q", config.ConfigID)
	}
	if config.Generator.TemplateID != "tech" || config.Generator.TemplateVersion != 1 {
		t.Fatalf("unexpected generator stamp: %+v", config.Generator)
	}
	if len(config.Pages) == 0 || len(config.Pages[0].Sections) == 0 {
		t.Fatalf("expected composed pages")
	}

	hero := config.Pages[0].Sections[0]
	title, _ := hero.Props["title"].(string)
	if title != "Кодовая — IT-услуги для роста бизнеса" {
		t.Fatalf("hero title not resolved: %q", title)
	}
	if strings.Contains(title, "{{") {
		t.Fatalf("unresolved token leaked: %q", title)
	}
}

func TestGenerateWithoutLogo(t *testing.T) {
	registry := templates.Builtin()
	svc := generator.NewService(registry)

	config, err := svc.Generate(generatorDraft(t, "Acme", domain.IndustryTech, nil))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if config.Site.SEO.OGImageAssetID != nil {
		t.Fatalf("expected null og image for logoless draft")
	}
	if len(config.Assets) != 0 {
		t.Fatalf("expected empty assets, got %d", len(config.Assets))
	}
	hero := config.Pages[0].Sections[0]
	if hero.Props["logoAssetId"] != nil {
		t.Fatalf("whole-token logoAssetId must resolve to nil, got %v", hero.Props["logoAssetId"])
	}
	if url, _ := hero.Props["logoUrl"].(string); url != "" {
		t.Fatalf("logoUrl must resolve to empty string, got %q", url)
	}
}

func TestGenerateWithLogo(t *testing.T) {
	registry := templates.Builtin()
	svc := generator.NewService(registry)

	logo := &domain.AssetInfo{
		AssetID:  "ast_logo",
		URL:      "https://assets.example/ast_logo.png",
		MimeType: "image/png",
		Bytes:    1024,
		SHA256:   "abc",
	}
	config, err := svc.Generate(generatorDraft(t, "Acme", domain.IndustryTech, logo))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if config.Site.SEO.OGImageAssetID == nil || *config.Site.SEO.OGImageAssetID != "ast_logo" {
		t.Fatalf("expected og image asset id, got %v", config.Site.SEO.OGImageAssetID)
	}
	if len(config.Assets) != 1 || config.Assets[0].AssetID != "ast_logo" {
		t.Fatalf("expected single logo asset, got %+v", config.Assets)
	}
	hero := config.Pages[0].Sections[0]
	if id, _ := hero.Props["logoAssetId"].(string); id != "ast_logo" {
		t.Fatalf("whole-token logoAssetId must resolve to raw id, got %v", hero.Props["logoAssetId"])
	}
	if url, _ := hero.Props["logoUrl"].(string); url != logo.URL {
		t.Fatalf("logoUrl not substituted: %q", url)
	}
}

func TestGenerateUnknownIndustryUsesDefaultTemplate(t *testing.T) {
	registry := templates.Builtin()
	svc := generator.NewService(registry)

	config, err := svc.Generate(generatorDraft(t, "Acme", "aerospace", nil))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if config.Generator.TemplateID != templates.DefaultTemplateID {
		t.Fatalf("expected default template, got %q", config.Generator.TemplateID)
	}
	if config.Brand.Industry.Code != domain.IndustryOther {
		t.Fatalf("expected other industry, got %q", config.Brand.Industry.Code)
	}
}

func TestGenerateDeterministicCanonicalJSON(t *testing.T) {
	registry := templates.Builtin()
	clock := fixedClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))
	svc := generator.NewService(registry,
		generator.WithClock(clock),
		generator.WithConfigIDGenerator(fixedConfigID("cfg_fixed")),
	)
	draft := generatorDraft(t, "Кодовая", domain.IndustryTech, nil)

	first, err := svc.Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := svc.Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	firstJSON, err := first.CanonicalJSON()
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	secondJSON, err := second.CanonicalJSON()
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("canonical serialization is not byte-identical")
	}
}

func TestGenerateStableConfigID(t *testing.T) {
	registry := templates.Builtin()
	svc := generator.NewService(registry)
	draft := generatorDraft(t, "Acme", domain.IndustryTech, nil)

	first, err := svc.Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := svc.Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first.ConfigID != second.ConfigID {
		t.Fatalf("config id must be stable for unchanged drafts: %q vs %q", first.ConfigID, second.ConfigID)
	}

	draft.BrandProfile.BrandName = "Acme Next"
	changed, err := svc.Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if changed.ConfigID == first.ConfigID {
		t.Fatalf("config id must change with the content hash")
	}

	other := generatorDraft(t, "Acme", domain.IndustryTech, nil)
	other.DraftID = "drf_other"
	distinct, err := svc.Generate(other)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if distinct.ConfigID == first.ConfigID {
		t.Fatalf("config id must differ across drafts with identical content")
	}
}

func TestContentHashElidesStampedFields(t *testing.T) {
	registry := templates.Builtin()
	draft := generatorDraft(t, "Acme", domain.IndustryTech, nil)

	first, err := generator.NewService(registry,
		generator.WithClock(fixedClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))),
		generator.WithConfigIDGenerator(fixedConfigID("cfg_one")),
	).Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := generator.NewService(registry,
		generator.WithClock(fixedClock(time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC))),
		generator.WithConfigIDGenerator(fixedConfigID("cfg_two")),
	).Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	firstHash, err := first.ContentHash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	secondHash, err := second.ContentHash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if firstHash != secondHash {
		t.Fatalf("content hash must ignore configId and generatedAt: %s vs %s", firstHash, secondHash)
	}
}
