// Package http exposes the draft lifecycle over HTTP.
//
// Routes mount under /api/v1:
//   - Drafts: POST /drafts, GET|PATCH|DELETE /drafts/{draftId}
//   - Preview: GET /drafts/{draftId}/preview?type=html|json
//   - Commit: POST /drafts/{draftId}/commit (internal token required)
//
// A share-friendly HTML preview is served at /p/{draftId} and liveness at
// /health. Host applications can register the handlers on their own mux.
package http
