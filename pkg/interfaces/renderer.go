package interfaces

import "context"

// ExternalRenderer is an optional preview backend. When available, its output
// replaces the builtin HTML document after sanitization; any error or
// unavailability falls back to the builtin renderer without becoming
// observable to callers.
type ExternalRenderer interface {
	// Available reports whether the backend can currently accept work.
	Available(ctx context.Context) bool
	// RenderHTML produces a full HTML document for the supplied site
	// configuration model (canonical JSON bytes).
	RenderHTML(ctx context.Context, configJSON []byte) (string, error)
}
