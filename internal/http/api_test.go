package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-sitedraft/internal/assets"
	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/generator"
	"github.com/goliatone/go-sitedraft/internal/preview"
	"github.com/goliatone/go-sitedraft/internal/projects"
	"github.com/goliatone/go-sitedraft/internal/templates"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

const testInternalToken = "internal-secret"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type apiHarness struct {
	mux   *http.ServeMux
	clock *testClock
	repo  *projects.MemoryRepository
}

func setupAPI(t *testing.T) *apiHarness {
	t.Helper()

	clock := newTestClock()
	registry := templates.Builtin()

	resolver := assets.NewMemoryResolver()
	resolver.Register(interfaces.AssetMetadata{
		AssetID:  "ast_x",
		URL:      "https://assets.example/logos/ast_x.png",
		MimeType: "image/png",
		Bytes:    2048,
		SHA256:   "hhh",
	})

	store := drafts.NewMemoryStore(drafts.WithMemoryClock(clock.Now))
	draftSvc := drafts.NewService(store, resolver, registry, drafts.WithClock(clock.Now))
	gen := generator.NewService(registry, generator.WithClock(clock.Now))
	renderer := preview.NewRenderer(preview.WithClock(clock.Now))
	repo := projects.NewMemoryRepository()
	locker := commit.NewMemoryLocker(commit.WithLockerClock(clock.Now))
	coordinator := commit.NewCoordinator(draftSvc, gen, repo, locker, commit.WithClock(clock.Now))

	api := NewAPI(
		WithDraftService(draftSvc),
		WithGeneratorService(gen),
		WithPreviewRenderer(renderer),
		WithCommitCoordinator(coordinator),
		WithInternalToken(testInternalToken),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return &apiHarness{mux: mux, clock: clock, repo: repo}
}

func (h *apiHarness) do(t *testing.T, method, path string, body any, headers map[string]string, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	h.mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d got %d (%s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (h *apiHarness) createDraft(t *testing.T, body map[string]any) drafts.Draft {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/api/v1/drafts", body, nil, http.StatusCreated)
	var draft drafts.Draft
	decodeJSONBody(t, rec, &draft)
	return draft
}

func internalHeaders() map[string]string {
	return map[string]string{internalTokenHeader: testInternalToken}
}

func TestAPIDraftLifecycle(t *testing.T) {
	h := setupAPI(t)

	draft := h.createDraft(t, map[string]any{
		"brandName": "Кодовая",
		"industry":  map[string]any{"code": "tech"},
		"logo":      map[string]any{"assetId": "ast_x"},
	})
	if !strings.HasPrefix(draft.DraftID, "drf_") {
		t.Fatalf("unexpected draft id %q", draft.DraftID)
	}
	if got := draft.ExpiresAt.Sub(draft.CreatedAt); got != 86400*time.Second {
		t.Fatalf("expected default ttl lifetime, got %v", got)
	}
	if draft.BrandProfile.Logo == nil || draft.BrandProfile.Logo.SHA256 != "hhh" {
		t.Fatalf("expected resolved logo metadata, got %+v", draft.BrandProfile.Logo)
	}

	getPath := "/api/v1/drafts/" + draft.DraftID
	rec := h.do(t, http.MethodGet, getPath, nil, nil, http.StatusOK)
	var fetched drafts.Draft
	decodeJSONBody(t, rec, &fetched)
	if !fetched.ExpiresAt.Equal(draft.ExpiresAt) {
		t.Fatalf("plain read must not slide the deadline: %v vs %v", fetched.ExpiresAt, draft.ExpiresAt)
	}

	rec = h.do(t, http.MethodGet, getPath+"/preview", nil, nil, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html preview, got content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Кодовая — IT-услуги для роста бизнеса</h1>") {
		t.Fatalf("expected hero heading in preview")
	}
	etag := rec.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"cfg_`) {
		t.Fatalf("unexpected etag %q", etag)
	}

	rec = h.do(t, http.MethodPost, getPath+"/commit",
		map[string]any{"owner": map[string]any{"userId": "usr_A"}},
		internalHeaders(), http.StatusCreated)
	var committed commitResponse
	decodeJSONBody(t, rec, &committed)
	if committed.Status != commit.StatusMigrated {
		t.Fatalf("expected MIGRATED, got %q", committed.Status)
	}
	if !strings.HasPrefix(committed.ProjectID, "prj_") || !strings.HasPrefix(committed.ConfigID, "cfg_") {
		t.Fatalf("unexpected identifiers %+v", committed)
	}

	h.do(t, http.MethodGet, getPath, nil, nil, http.StatusNotFound)
}

func TestAPICommitIsIdempotent(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Кодовая",
		"industry":  map[string]any{"code": "tech"},
	})
	path := "/api/v1/drafts/" + draft.DraftID + "/commit"
	body := map[string]any{"owner": map[string]any{"userId": "usr_A"}}

	var results []commitResponse
	for i, wantStatus := range []int{http.StatusCreated, http.StatusOK, http.StatusOK} {
		rec := h.do(t, http.MethodPost, path, body, internalHeaders(), wantStatus)
		var result commitResponse
		decodeJSONBody(t, rec, &result)
		results = append(results, result)
		if i > 0 && (result.ProjectID != results[0].ProjectID || result.ConfigID != results[0].ConfigID) {
			t.Fatalf("replay returned different identifiers: %+v vs %+v", result, results[0])
		}
	}
	if results[0].Status != commit.StatusMigrated || results[1].Status != commit.StatusAlreadyCommitted {
		t.Fatalf("unexpected statuses %+v", results)
	}
}

func TestAPICommitRequiresInternalToken(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Acme",
		"industry":  map[string]any{"code": "tech"},
	})
	path := "/api/v1/drafts/" + draft.DraftID + "/commit"
	body := map[string]any{"owner": map[string]any{"userId": "usr_A"}}

	h.do(t, http.MethodPost, path, body, nil, http.StatusUnauthorized)
	h.do(t, http.MethodPost, path, body, map[string]string{internalTokenHeader: "wrong"}, http.StatusUnauthorized)

	// The refused calls must not have consumed the draft.
	h.do(t, http.MethodGet, "/api/v1/drafts/"+draft.DraftID, nil, nil, http.StatusOK)
}

func TestAPIPreviewNotModified(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Acme",
		"industry":  map[string]any{"code": "tech"},
	})
	path := "/api/v1/drafts/" + draft.DraftID + "/preview"

	rec := h.do(t, http.MethodGet, path, nil, nil, http.StatusOK)
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected etag on first preview")
	}

	// Repeated previews of an unchanged draft answer with the same tag.
	rec = h.do(t, http.MethodGet, path, nil, nil, http.StatusOK)
	if again := rec.Header().Get("ETag"); again != etag {
		t.Fatalf("etag drifted between previews: %q vs %q", etag, again)
	}

	rec = h.do(t, http.MethodGet, path, nil, map[string]string{"If-None-Match": etag}, http.StatusNotModified)
	if rec.Header().Get("ETag") != etag {
		t.Fatalf("304 must echo the matched etag")
	}

	h.do(t, http.MethodPatch, "/api/v1/drafts/"+draft.DraftID,
		map[string]any{"brandName": "Acme Next"}, nil, http.StatusOK)

	rec = h.do(t, http.MethodGet, path, nil, map[string]string{"If-None-Match": etag}, http.StatusOK)
	if next := rec.Header().Get("ETag"); next == etag {
		t.Fatalf("etag must change after an update")
	}
}

func TestAPIPreviewJSONModel(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Acme",
		"industry":  map[string]any{"code": "tech"},
	})

	rec := h.do(t, http.MethodGet, "/api/v1/drafts/"+draft.DraftID+"/preview?type=json", nil, nil, http.StatusOK)
	var result preview.Result
	decodeJSONBody(t, rec, &result)
	if result.Type != preview.FormatJSON || result.Model == nil {
		t.Fatalf("expected json model, got %+v", result)
	}
	if result.ETag != rec.Header().Get("ETag") {
		t.Fatalf("etag header and payload disagree")
	}

	h.do(t, http.MethodGet, "/api/v1/drafts/"+draft.DraftID+"/preview?type=pdf", nil, nil, http.StatusBadRequest)
}

func TestAPIPublicPreviewServesHTML(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Кодовая",
		"industry":  map[string]any{"code": "tech"},
	})

	rec := h.do(t, http.MethodGet, "/p/"+draft.DraftID, nil, nil, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "<h1>Кодовая — IT-услуги для роста бизнеса</h1>") {
		t.Fatalf("expected rendered site in public preview")
	}
}

func TestAPICreateValidation(t *testing.T) {
	h := setupAPI(t)

	rec := h.do(t, http.MethodPost, "/api/v1/drafts",
		map[string]any{"brandName": "", "industry": map[string]any{"code": "tech"}},
		nil, http.StatusBadRequest)
	var payload errorResponse
	decodeJSONBody(t, rec, &payload)
	if payload.Error != "validation_failed" {
		t.Fatalf("expected validation_failed, got %q", payload.Error)
	}

	h.do(t, http.MethodPost, "/api/v1/drafts",
		map[string]any{"brandName": strings.Repeat("a", 101), "industry": map[string]any{"code": "tech"}},
		nil, http.StatusBadRequest)

	h.do(t, http.MethodPost, "/api/v1/drafts",
		map[string]any{"brandName": "Acme"},
		nil, http.StatusBadRequest)

	rec = h.do(t, http.MethodPost, "/api/v1/drafts",
		map[string]any{
			"brandName": "Acme",
			"industry":  map[string]any{"code": "tech"},
			"logo":      map[string]any{"assetId": "ast_ghost"},
		},
		nil, http.StatusNotFound)
	decodeJSONBody(t, rec, &payload)
	if payload.Error != "asset_not_found" {
		t.Fatalf("expected asset_not_found, got %q", payload.Error)
	}
}

func TestAPICreateAcceptsMaxLengthAndNormalizes(t *testing.T) {
	h := setupAPI(t)

	draft := h.createDraft(t, map[string]any{
		"brandName": strings.Repeat("a", 100),
		"industry":  map[string]any{"code": "tech"},
	})
	if len([]rune(draft.BrandProfile.BrandName)) != 100 {
		t.Fatalf("expected 100 code points kept, got %d", len([]rune(draft.BrandProfile.BrandName)))
	}

	draft = h.createDraft(t, map[string]any{
		"brandName": "  Acme\x00  \t\tCo  ",
		"industry":  map[string]any{"code": "tech"},
	})
	if draft.BrandProfile.BrandName != "Acme Co" {
		t.Fatalf("expected normalized brand name, got %q", draft.BrandProfile.BrandName)
	}
}

func TestAPIUnknownIndustryMapsToOther(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Acme",
		"industry":  map[string]any{"code": "unknown"},
	})
	if draft.BrandProfile.Industry.Code != "other" {
		t.Fatalf("expected industry other, got %q", draft.BrandProfile.Industry.Code)
	}
}

func TestAPILogoPatchDistinguishesAbsentAndNull(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Acme",
		"industry":  map[string]any{"code": "tech"},
		"logo":      map[string]any{"assetId": "ast_x"},
	})
	path := "/api/v1/drafts/" + draft.DraftID

	// Absent field leaves the logo untouched. Each response decodes into its
	// own struct so an omitted logo key cannot inherit the previous value.
	rec := h.do(t, http.MethodPatch, path, map[string]any{"brandName": "Acme Two"}, nil, http.StatusOK)
	var untouched drafts.Draft
	decodeJSONBody(t, rec, &untouched)
	if untouched.BrandProfile.Logo == nil {
		t.Fatalf("logo lost on unrelated patch")
	}

	// Explicit null clears it.
	rec = h.do(t, http.MethodPatch, path, map[string]any{"logo": nil}, nil, http.StatusOK)
	var cleared drafts.Draft
	decodeJSONBody(t, rec, &cleared)
	if cleared.BrandProfile.Logo != nil {
		t.Fatalf("explicit null must clear the logo")
	}

	// Setting it again resolves fresh metadata.
	rec = h.do(t, http.MethodPatch, path, map[string]any{"logo": map[string]any{"assetId": "ast_x"}}, nil, http.StatusOK)
	var restored drafts.Draft
	decodeJSONBody(t, rec, &restored)
	if restored.BrandProfile.Logo == nil || restored.BrandProfile.Logo.AssetID != "ast_x" {
		t.Fatalf("expected logo set, got %+v", restored.BrandProfile.Logo)
	}
}

func TestAPIExpiredDraftReads(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName":  "Acme",
		"industry":   map[string]any{"code": "tech"},
		"ttlSeconds": 2,
	})
	path := "/api/v1/drafts/" + draft.DraftID

	h.clock.Advance(3 * time.Second)

	rec := h.do(t, http.MethodGet, path, nil, nil, http.StatusNotFound)
	var payload errorResponse
	decodeJSONBody(t, rec, &payload)
	if payload.Error != "draft_not_found" {
		t.Fatalf("expected draft_not_found, got %q", payload.Error)
	}

	h.do(t, http.MethodPost, path+"/commit",
		map[string]any{"owner": map[string]any{"userId": "usr_A"}},
		internalHeaders(), http.StatusNotFound)

	if committed, err := h.repo.FindByDraftID(nil, draft.DraftID); err != nil || committed != nil {
		t.Fatalf("expired draft must never commit: %v %v", committed, err)
	}
}

func TestAPIDeleteDraft(t *testing.T) {
	h := setupAPI(t)
	draft := h.createDraft(t, map[string]any{
		"brandName": "Acme",
		"industry":  map[string]any{"code": "tech"},
	})
	path := "/api/v1/drafts/" + draft.DraftID

	h.do(t, http.MethodDelete, path, nil, nil, http.StatusNoContent)
	h.do(t, http.MethodGet, path, nil, nil, http.StatusNotFound)
}

func TestAPIHealth(t *testing.T) {
	h := setupAPI(t)
	rec := h.do(t, http.MethodGet, "/health", nil, nil, http.StatusOK)
	var payload map[string]string
	decodeJSONBody(t, rec, &payload)
	if payload["status"] != "ok" {
		t.Fatalf("unexpected health payload %+v", payload)
	}
}
