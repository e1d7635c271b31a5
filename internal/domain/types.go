package domain

import (
	"strings"
	"time"

	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

// SchemaVersion is stamped on every record to enable later evolution.
const SchemaVersion = 1

// AssetInfo describes a previously uploaded logo. The runtime only ever
// consumes this metadata record; the blob itself stays in the asset store.
type AssetInfo = interfaces.AssetMetadata

// IndustryInfo pairs a taxonomy code with its display label.
type IndustryInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// BrandProfile captures the user-supplied brand identity of a draft.
type BrandProfile struct {
	SchemaVersion int          `json:"schemaVersion"`
	BrandName     string       `json:"brandName"`
	Industry      IndustryInfo `json:"industry"`
	Logo          *AssetInfo   `json:"logo,omitempty"`
}

// NewBrandProfile builds a profile enforcing brand-name normalization and
// industry membership. Unknown industry codes map to IndustryOther.
func NewBrandProfile(brandName string, industry IndustryInfo, logo *AssetInfo) (BrandProfile, error) {
	normalized, err := NormalizeBrandName(brandName)
	if err != nil {
		return BrandProfile{}, err
	}
	return BrandProfile{
		SchemaVersion: SchemaVersion,
		BrandName:     normalized,
		Industry:      ResolveIndustry(industry.Code, industry.Label),
		Logo:          cloneAsset(logo),
	}, nil
}

// Equal reports structural equality between two profiles.
func (p BrandProfile) Equal(other BrandProfile) bool {
	if p.SchemaVersion != other.SchemaVersion ||
		p.BrandName != other.BrandName ||
		p.Industry != other.Industry {
		return false
	}
	if (p.Logo == nil) != (other.Logo == nil) {
		return false
	}
	if p.Logo == nil {
		return true
	}
	return p.Logo.AssetID == other.Logo.AssetID && p.Logo.SHA256 == other.Logo.SHA256
}

func cloneAsset(asset *AssetInfo) *AssetInfo {
	if asset == nil {
		return nil
	}
	copied := *asset
	if asset.Width != nil {
		w := *asset.Width
		copied.Width = &w
	}
	if asset.Height != nil {
		h := *asset.Height
		copied.Height = &h
	}
	return &copied
}

// CloneAsset returns a deep copy of the supplied asset metadata.
func CloneAsset(asset *AssetInfo) *AssetInfo {
	return cloneAsset(asset)
}

// UTCNow returns the current instant in UTC truncated to millisecond
// precision, the resolution every persisted timestamp uses.
func UTCNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// TruncateTime normalizes an instant to the persisted resolution.
func TruncateTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Industry taxonomy. The closed set is configuration data shipped with the
// service artifact; updates go out with deploys.
const (
	IndustryTech       = "tech"
	IndustryFinance    = "finance"
	IndustryHealthcare = "healthcare"
	IndustryRetail     = "retail"
	IndustryEducation  = "education"
	IndustryRealEstate = "real-estate"
	IndustryConsulting = "consulting"
	IndustryRestaurant = "restaurant"
	IndustryOther      = "other"
)

var industryLabels = map[string]string{
	IndustryTech:       "IT и технологии",
	IndustryFinance:    "Финансы",
	IndustryHealthcare: "Медицина",
	IndustryRetail:     "Розничная торговля",
	IndustryEducation:  "Образование",
	IndustryRealEstate: "Недвижимость",
	IndustryConsulting: "Консалтинг",
	IndustryRestaurant: "Ресторан",
	IndustryOther:      "Другое",
}

// KnownIndustry reports whether code belongs to the closed taxonomy.
func KnownIndustry(code string) bool {
	_, ok := industryLabels[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// IndustryCodes lists the closed taxonomy in stable order.
func IndustryCodes() []string {
	return []string{
		IndustryTech,
		IndustryFinance,
		IndustryHealthcare,
		IndustryRetail,
		IndustryEducation,
		IndustryRealEstate,
		IndustryConsulting,
		IndustryRestaurant,
		IndustryOther,
	}
}

// ResolveIndustry maps arbitrary input onto the closed taxonomy. Unknown
// codes collapse to IndustryOther; the label falls back to the taxonomy
// default when the caller omitted one.
func ResolveIndustry(code, label string) IndustryInfo {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if _, ok := industryLabels[normalized]; !ok {
		normalized = IndustryOther
	}
	resolvedLabel := strings.TrimSpace(label)
	if resolvedLabel == "" {
		resolvedLabel = industryLabels[normalized]
	}
	return IndustryInfo{Code: normalized, Label: resolvedLabel}
}
