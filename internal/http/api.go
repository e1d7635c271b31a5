package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/generator"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/internal/preview"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

const internalTokenHeader = "X-Internal-Token"

// API registers the draft lifecycle endpoints.
type API struct {
	basePath      string
	drafts        drafts.Service
	generator     generator.Service
	renderer      preview.Renderer
	commits       commit.Coordinator
	internalToken string
	corsOrigins   []string
	logger        interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath:    "/api/v1",
		corsOrigins: []string{"*"},
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api/v1").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithDraftService wires the draft lifecycle service.
func WithDraftService(service drafts.Service) Option {
	return func(api *API) {
		if api != nil {
			api.drafts = service
		}
	}
}

// WithGeneratorService wires the config generator.
func WithGeneratorService(service generator.Service) Option {
	return func(api *API) {
		if api != nil {
			api.generator = service
		}
	}
}

// WithPreviewRenderer wires the preview renderer.
func WithPreviewRenderer(renderer preview.Renderer) Option {
	return func(api *API) {
		if api != nil {
			api.renderer = renderer
		}
	}
}

// WithCommitCoordinator wires the commit pipeline.
func WithCommitCoordinator(coordinator commit.Coordinator) Option {
	return func(api *API) {
		if api != nil {
			api.commits = coordinator
		}
	}
}

// WithInternalToken sets the shared secret the commit endpoint requires.
func WithInternalToken(token string) Option {
	return func(api *API) {
		if api != nil {
			api.internalToken = strings.TrimSpace(token)
		}
	}
}

// WithCORSOrigins sets the allowed browser origins.
func WithCORSOrigins(origins []string) Option {
	return func(api *API) {
		if api != nil && len(origins) > 0 {
			api.corsOrigins = origins
		}
	}
}

// WithAPILogger attaches a module logger.
func WithAPILogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts the API routes on the supplied mux.
func (api *API) Register(mux *http.ServeMux) error {
	if api == nil {
		return errors.New("api required")
	}
	if mux == nil {
		return errors.New("mux required")
	}

	root := joinPath(api.basePath, "drafts")
	mux.HandleFunc("POST "+root, api.handleDraftCreate)
	mux.HandleFunc("GET "+root+"/{draftID}", api.handleDraftGet)
	mux.HandleFunc("PATCH "+root+"/{draftID}", api.handleDraftUpdate)
	mux.HandleFunc("DELETE "+root+"/{draftID}", api.handleDraftDelete)
	mux.HandleFunc("GET "+root+"/{draftID}/preview", api.handleDraftPreview)
	mux.HandleFunc("POST "+root+"/{draftID}/commit", api.handleDraftCommit)
	mux.HandleFunc("GET /p/{draftID}", api.handlePublicPreview)
	mux.HandleFunc("GET /health", api.handleHealth)
	return nil
}

// Handler returns the mounted routes wrapped in the CORS middleware.
func (api *API) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	middleware := cors.Handler(cors.Options{
		AllowedOrigins: api.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match", "Idempotency-Key", internalTokenHeader},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	})
	return middleware(mux), nil
}

func (api *API) handleDraftCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.drafts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload createDraftPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	req := drafts.CreateDraftRequest{
		BrandName:     payload.BrandName,
		Industry:      payload.Industry.toDomain(),
		TTLSeconds:    payload.TTLSeconds,
		Source:        payload.Source,
		IPHash:        hashValue(clientIP(r)),
		UserAgentHash: hashValue(r.UserAgent()),
	}
	if payload.Logo != nil {
		assetID := payload.Logo.AssetID
		req.LogoAssetID = &assetID
	}

	draft, err := api.drafts.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

func (api *API) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.drafts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	draft, err := api.drafts.Get(r.Context(), r.PathValue("draftID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (api *API) handleDraftUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.drafts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload updateDraftPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	req := drafts.UpdateDraftRequest{
		BrandName: payload.BrandName,
		Logo:      payload.Logo,
	}
	if payload.Industry != nil {
		industry := payload.Industry.toDomain()
		req.Industry = &industry
	}

	draft, err := api.drafts.Update(r.Context(), r.PathValue("draftID"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (api *API) handleDraftDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.drafts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	if err := api.drafts.Delete(r.Context(), r.PathValue("draftID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *API) handleDraftPreview(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.drafts == nil || api.generator == nil || api.renderer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	if format == "" {
		format = preview.FormatHTML
	}
	api.renderPreview(w, r, r.PathValue("draftID"), format, true)
}

func (api *API) handlePublicPreview(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.drafts == nil || api.generator == nil || api.renderer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	api.renderPreview(w, r, r.PathValue("draftID"), preview.FormatHTML, false)
}

// renderPreview loads the draft with a TTL slide, short-circuits on a
// matching If-None-Match, and records the served preview on the draft.
func (api *API) renderPreview(w http.ResponseWriter, r *http.Request, draftID, format string, record bool) {
	if format != preview.FormatHTML && format != preview.FormatJSON {
		writeError(w, preview.ErrUnsupportedFormat)
		return
	}

	draft, err := api.drafts.GetForPreview(r.Context(), draftID)
	if err != nil {
		writeError(w, err)
		return
	}
	config, err := api.generator.Generate(draft)
	if err != nil {
		writeError(w, err)
		return
	}
	etag, err := preview.ETag(config)
	if err != nil {
		writeError(w, err)
		return
	}

	if preview.ETagMatches(r.Header.Get("If-None-Match"), etag) {
		// A 304 is still activity: keep the semantic deadline in step with
		// the store TTL the read just slid.
		if record {
			if _, err := api.drafts.RecordPreview(r.Context(), draftID, format, etag); err != nil {
				api.logger.Warn("preview bookkeeping failed", "draft_id", draftID, "error", err)
			}
		}
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	result, err := api.renderer.Render(r.Context(), config, format)
	if err != nil {
		writeError(w, err)
		return
	}

	if record {
		if _, err := api.drafts.RecordPreview(r.Context(), draftID, format, result.ETag); err != nil {
			api.logger.Warn("preview bookkeeping failed", "draft_id", draftID, "error", err)
		}
	}

	w.Header().Set("ETag", result.ETag)
	if format == preview.FormatJSON {
		writeJSON(w, http.StatusOK, result)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Content))
}

func (api *API) handleDraftCommit(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.commits == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requireInternalToken(w, r) {
		return
	}

	var payload commitDraftPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	req := commit.Request{
		DraftID: r.PathValue("draftID"),
		Owner:   payload.Owner.toDomain(),
	}
	if key := strings.TrimSpace(r.Header.Get("Idempotency-Key")); key != "" {
		req.IdempotencyKey = &key
	}

	result, err := api.commits.Commit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, commitResponse{
		ProjectID: result.ProjectID,
		ConfigID:  result.ConfigID,
		Status:    result.Status,
	})
}

func (api *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"engine":  drafts.EngineName,
		"version": drafts.EngineVersion,
	})
}

// requireInternalToken authenticates service-to-service commit calls. An
// unset server token refuses every request rather than opening the endpoint.
func (api *API) requireInternalToken(w http.ResponseWriter, r *http.Request) bool {
	presented := strings.TrimSpace(r.Header.Get(internalTokenHeader))
	if api.internalToken == "" || presented == "" ||
		subtle.ConstantTimeCompare([]byte(presented), []byte(api.internalToken)) != 1 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: "missing or invalid internal token",
		})
		return false
	}
	return true
}
