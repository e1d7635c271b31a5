package commit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/generator"
	"github.com/goliatone/go-sitedraft/internal/projects"
	"github.com/goliatone/go-sitedraft/internal/templates"
)

type commitHarness struct {
	clock       *testClock
	store       drafts.Store
	draftSvc    drafts.Service
	repo        *projects.MemoryRepository
	locker      *commit.MemoryLocker
	coordinator commit.Coordinator
}

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

func newHarness(t *testing.T) *commitHarness {
	t.Helper()

	clock := newTestClock()
	registry := templates.Builtin()
	store := drafts.NewMemoryStore(drafts.WithMemoryClock(clock.Now))
	draftSvc := drafts.NewService(store, nil, registry, drafts.WithClock(clock.Now))
	repo := projects.NewMemoryRepository()
	locker := commit.NewMemoryLocker(commit.WithLockerClock(clock.Now))
	coordinator := commit.NewCoordinator(draftSvc,
		generator.NewService(registry, generator.WithClock(clock.Now)),
		repo, locker,
		commit.WithClock(clock.Now),
	)
	return &commitHarness{
		clock:       clock,
		store:       store,
		draftSvc:    draftSvc,
		repo:        repo,
		locker:      locker,
		coordinator: coordinator,
	}
}

func (h *commitHarness) createDraft(t *testing.T) *drafts.Draft {
	t.Helper()
	draft, err := h.draftSvc.Create(context.Background(), drafts.CreateDraftRequest{
		BrandName:  "Кодовая",
		Industry:   domain.IndustryInfo{Code: domain.IndustryTech},
		TTLSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	return draft
}

func TestCommitMigratesDraft(t *testing.T) {
	h := newHarness(t)
	draft := h.createDraft(t)

	result, err := h.coordinator.Commit(context.Background(), commit.Request{
		DraftID: draft.DraftID,
		Owner:   projects.Owner{UserID: "usr_1"},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if result.Status != commit.StatusMigrated || result.Replayed {
		t.Fatalf("expected first commit MIGRATED, got %+v", result)
	}
	if result.ProjectID == "" || result.ConfigID == "" {
		t.Fatalf("expected identifiers, got %+v", result)
	}
	if result.Config.ConfigHash == "" || len(result.Config.ConfigJSON) == 0 {
		t.Fatalf("expected config snapshot persisted")
	}
	if result.Config.TemplateID != "tech" {
		t.Fatalf("unexpected template %q", result.Config.TemplateID)
	}

	// Commit is terminal: the draft is gone from the store.
	found, err := h.store.FindByID(context.Background(), draft.DraftID, false)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != nil {
		t.Fatalf("expected draft deleted after commit")
	}
}

func TestCommitReplayReturnsOriginalIdentifiers(t *testing.T) {
	h := newHarness(t)
	draft := h.createDraft(t)

	first, err := h.coordinator.Commit(context.Background(), commit.Request{
		DraftID: draft.DraftID,
		Owner:   projects.Owner{UserID: "usr_1"},
	})
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}

	second, err := h.coordinator.Commit(context.Background(), commit.Request{
		DraftID: draft.DraftID,
		Owner:   projects.Owner{UserID: "usr_other"},
	})
	if err != nil {
		t.Fatalf("replay commit: %v", err)
	}
	if second.Status != commit.StatusAlreadyCommitted || !second.Replayed {
		t.Fatalf("expected ALREADY_COMMITTED replay, got %+v", second)
	}
	if second.ProjectID != first.ProjectID || second.ConfigID != first.ConfigID {
		t.Fatalf("replay changed identifiers: %+v vs %+v", second, first)
	}
	// The replay must not adopt the second caller's owner.
	if second.Project.OwnerUserID != "usr_1" {
		t.Fatalf("replay rewrote owner: %q", second.Project.OwnerUserID)
	}
}

func TestCommitMissingDraft(t *testing.T) {
	h := newHarness(t)

	_, err := h.coordinator.Commit(context.Background(), commit.Request{
		DraftID: "drf_ghost",
		Owner:   projects.Owner{UserID: "usr_1"},
	})
	if !errors.Is(err, drafts.ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestCommitRequiresOwner(t *testing.T) {
	h := newHarness(t)
	draft := h.createDraft(t)

	_, err := h.coordinator.Commit(context.Background(), commit.Request{
		DraftID: draft.DraftID,
	})
	if !errors.Is(err, commit.ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestCommitHeldLockRejectsConcurrentAttempt(t *testing.T) {
	h := newHarness(t)
	draft := h.createDraft(t)

	acquired, err := h.locker.Acquire(context.Background(), draft.DraftID)
	if err != nil || !acquired {
		t.Fatalf("seed lock: %v %v", acquired, err)
	}

	_, err = h.coordinator.Commit(context.Background(), commit.Request{
		DraftID: draft.DraftID,
		Owner:   projects.Owner{UserID: "usr_1"},
	})
	if !errors.Is(err, commit.ErrCommitInProgress) {
		t.Fatalf("expected ErrCommitInProgress, got %v", err)
	}

	// After release the commit goes through.
	if err := h.locker.Release(context.Background(), draft.DraftID); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := h.coordinator.Commit(context.Background(), commit.Request{
		DraftID: draft.DraftID,
		Owner:   projects.Owner{UserID: "usr_1"},
	}); err != nil {
		t.Fatalf("commit after release: %v", err)
	}
}

func TestCommitConcurrentAttemptsCreateOneProject(t *testing.T) {
	h := newHarness(t)
	draft := h.createDraft(t)

	const attempts = 100
	results := make(chan *commit.Result, attempts)
	failures := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := h.coordinator.Commit(context.Background(), commit.Request{
				DraftID: draft.DraftID,
				Owner:   projects.Owner{UserID: "usr_1"},
			})
			if err != nil {
				failures <- err
				return
			}
			results <- result
		}()
	}
	wg.Wait()
	close(results)
	close(failures)

	migrated := 0
	var projectID string
	for result := range results {
		if result.Status == commit.StatusMigrated {
			migrated++
		}
		if projectID == "" {
			projectID = result.ProjectID
		} else if projectID != result.ProjectID {
			t.Fatalf("divergent project ids: %q vs %q", projectID, result.ProjectID)
		}
	}
	if migrated != 1 {
		t.Fatalf("expected exactly one MIGRATED result, got %d", migrated)
	}
	for err := range failures {
		if !errors.Is(err, commit.ErrCommitInProgress) {
			t.Fatalf("unexpected concurrent error: %v", err)
		}
	}

	committed, err := h.repo.FindByDraftID(context.Background(), draft.DraftID)
	if err != nil {
		t.Fatalf("find committed: %v", err)
	}
	if committed == nil || committed.Project.ProjectID != projectID {
		t.Fatalf("expected single durable project %q, got %+v", projectID, committed)
	}
}
