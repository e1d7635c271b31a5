package sitedraft_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sitedraft "github.com/goliatone/go-sitedraft"
	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/drafts"
)

func testModule(t *testing.T) *sitedraft.Module {
	t.Helper()
	cfg := sitedraft.DefaultConfig()
	cfg.Commit.InternalToken = "internal-secret"
	module, err := sitedraft.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := sitedraft.New(sitedraft.Config{})
	if err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestModuleDraftToProjectFlow(t *testing.T) {
	module := testModule(t)
	ctx := context.Background()

	draft, err := module.Drafts().Create(ctx, drafts.CreateDraftRequest{
		BrandName: "Кодовая",
		Industry:  sitedraft.IndustryInfo{Code: "tech"},
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	config, err := module.Generator().Generate(draft)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if config.Brand.Slug != "kodovaya" {
		t.Fatalf("unexpected slug %q", config.Brand.Slug)
	}

	result, err := module.Commits().Commit(ctx, sitedraft.CommitRequest{
		DraftID: draft.DraftID,
		Owner:   sitedraft.Owner{UserID: "usr_module"},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if result.Status != commit.StatusMigrated {
		t.Fatalf("expected MIGRATED, got %q", result.Status)
	}

	replay, err := module.Commits().Commit(ctx, sitedraft.CommitRequest{
		DraftID: draft.DraftID,
		Owner:   sitedraft.Owner{UserID: "usr_module"},
	})
	if err != nil {
		t.Fatalf("replay commit: %v", err)
	}
	if !replay.Replayed || replay.ProjectID != result.ProjectID {
		t.Fatalf("expected idempotent replay, got %+v", replay)
	}
}

func TestModuleHandlerServesPreview(t *testing.T) {
	module := testModule(t)
	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	draft, err := module.Drafts().Create(context.Background(), drafts.CreateDraftRequest{
		BrandName: "Кодовая",
		Industry:  sitedraft.IndustryInfo{Code: "tech"},
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/drafts/"+draft.DraftID+"/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Кодовая") {
		t.Fatalf("expected brand in preview markup")
	}
	if rec.Header().Get("ETag") == "" {
		t.Fatalf("expected preview etag header")
	}
}
