package preview

import (
	"errors"
	"time"
)

// Rendering formats accepted by the preview endpoints.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

var (
	// ErrUnsafeContent aborts a preview whose sections carry markup or
	// script-like payloads.
	ErrUnsafeContent = errors.New("preview content unsafe")
	// ErrUnsupportedFormat rejects formats outside html|json.
	ErrUnsupportedFormat = errors.New("unsupported preview format")
	// ErrConfigRequired rejects a nil configuration.
	ErrConfigRequired = errors.New("site config required")
)

// Result is a rendered preview. HTML renders populate Content; JSON renders
// populate Model. The ETag is identical across formats for the same config.
type Result struct {
	Type        string         `json:"type"`
	Content     string         `json:"content,omitempty"`
	Model       map[string]any `json:"model,omitempty"`
	GeneratedAt time.Time      `json:"generatedAt"`
	ETag        string         `json:"etag"`
}
