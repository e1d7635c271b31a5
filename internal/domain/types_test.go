package domain_test

import (
	"testing"

	"github.com/goliatone/go-sitedraft/internal/domain"
)

func TestResolveIndustryMapsUnknownToOther(t *testing.T) {
	info := domain.ResolveIndustry("unknown", "")
	if info.Code != domain.IndustryOther {
		t.Fatalf("expected %q got %q", domain.IndustryOther, info.Code)
	}
	if info.Label == "" {
		t.Fatalf("expected taxonomy label fallback")
	}
}

func TestResolveIndustryKeepsKnownCodeAndCustomLabel(t *testing.T) {
	info := domain.ResolveIndustry(" Tech ", "Custom Label")
	if info.Code != domain.IndustryTech {
		t.Fatalf("expected %q got %q", domain.IndustryTech, info.Code)
	}
	if info.Label != "Custom Label" {
		t.Fatalf("expected caller label preserved, got %q", info.Label)
	}
}

func TestNewBrandProfileNormalizes(t *testing.T) {
	profile, err := domain.NewBrandProfile("  Кодовая  ", domain.IndustryInfo{Code: "tech"}, nil)
	if err != nil {
		t.Fatalf("new brand profile: %v", err)
	}
	if profile.BrandName != "Кодовая" {
		t.Fatalf("expected trimmed name got %q", profile.BrandName)
	}
	if profile.SchemaVersion != domain.SchemaVersion {
		t.Fatalf("expected schema version stamp")
	}
	if profile.Industry.Code != domain.IndustryTech {
		t.Fatalf("expected industry tech got %q", profile.Industry.Code)
	}
}

func TestBrandProfileEqual(t *testing.T) {
	left, err := domain.NewBrandProfile("Acme", domain.IndustryInfo{Code: "retail"}, nil)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	right, err := domain.NewBrandProfile("Acme", domain.IndustryInfo{Code: "retail"}, nil)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !left.Equal(right) {
		t.Fatalf("expected structural equality")
	}
	right.BrandName = "Other"
	if left.Equal(right) {
		t.Fatalf("expected inequality after mutation")
	}
}
