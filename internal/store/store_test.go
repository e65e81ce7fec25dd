package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todio/internal/model"
	"github.com/sandeepkv93/todio/internal/storage"
)

func setupStore(t *testing.T) (*Store, *storage.SQLiteRepository) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todio-store-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	s, err := Open(context.Background(), repo)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s, repo
}

func TestCreateAndSnapshot(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	due := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	task, err := s.Create(ctx, "Buy groceries", &due, model.PriorityHigh, "milk, eggs")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == "" || task.Completed || task.CompletedDate != nil {
		t.Fatalf("unexpected new task: %+v", task)
	}

	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].Text != "Buy groceries" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// Snapshot is a copy; mutating it must not touch the store.
	snap[0].Text = "mutated"
	if got, _ := s.Get(task.ID); got.Text != "Buy groceries" {
		t.Fatalf("snapshot mutation leaked into store: %q", got.Text)
	}
}

func TestCreateRejectsEmptyText(t *testing.T) {
	s, _ := setupStore(t)
	if _, err := s.Create(context.Background(), "   ", nil, model.PriorityMedium, ""); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestToggleSetsAndClearsCompletionDate(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	task, err := s.Create(ctx, "Toggle me", nil, model.PriorityMedium, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, err := s.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done.Completed || done.CompletedDate == nil || !done.CompletedDate.Equal(now) {
		t.Fatalf("expected completion at %v, got %+v", now, done)
	}

	reopened, err := s.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if reopened.Completed || reopened.CompletedDate != nil {
		t.Fatalf("expected completion date cleared, got %+v", reopened)
	}
}

func TestReorderPersistsOrdering(t *testing.T) {
	s, repo := setupStore(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if _, err := s.Create(ctx, text, nil, model.PriorityMedium, ""); err != nil {
			t.Fatalf("create %s: %v", text, err)
		}
	}

	// Move the head to the tail; the middle shifts up by one.
	if err := s.Reorder(ctx, 0, 2); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	want := []string{"second", "third", "first"}
	snap := s.Snapshot()
	for i := range want {
		if snap[i].Text != want[i] {
			t.Fatalf("expected order %v, got %+v", want, snap)
		}
	}

	// The order must survive a reload.
	reloaded, err := Open(ctx, repo)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	snap = reloaded.Snapshot()
	for i := range want {
		if snap[i].Text != want[i] {
			t.Fatalf("expected reloaded order %v, got %+v", want, snap)
		}
	}
}

func TestReorderRejectsBadIndex(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	if _, err := s.Create(ctx, "only", nil, model.PriorityMedium, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Reorder(ctx, 0, 5); !errors.Is(err, ErrBadIndex) {
		t.Fatalf("expected ErrBadIndex, got %v", err)
	}
}

func TestDeleteReportsRemovedIDs(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	task, err := s.Create(ctx, "Delete me", nil, model.PriorityMedium, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var removed []string
	s.SetOnChange(func(deletedIDs []string) { removed = append(removed, deletedIDs...) })

	if err := s.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(removed) != 1 || removed[0] != task.ID {
		t.Fatalf("expected change hook with deleted id, got %v", removed)
	}
	if _, err := s.Get(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestClearCompleted(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	keep, _ := s.Create(ctx, "keep", nil, model.PriorityMedium, "")
	doneA, _ := s.Create(ctx, "done a", nil, model.PriorityMedium, "")
	doneB, _ := s.Create(ctx, "done b", nil, model.PriorityMedium, "")
	for _, id := range []string{doneA.ID, doneB.ID} {
		if _, err := s.Toggle(ctx, id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}

	n, err := s.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("clear completed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 cleared, got %d", n)
	}
	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != keep.ID {
		t.Fatalf("expected only %s to remain, got %+v", keep.ID, snap)
	}
}

func TestReloadRoundTripsTimestamps(t *testing.T) {
	s, repo := setupStore(t)
	ctx := context.Background()
	due := time.Date(2026, 3, 5, 17, 30, 0, 0, time.UTC)

	created, err := s.Create(ctx, "Round trip", &due, model.PriorityLow, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reloaded, err := Open(ctx, repo)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reloaded.Get(created.ID)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if got.DueTime == nil || !got.DueTime.Equal(due) {
		t.Fatalf("due time did not survive reload: %v", got.DueTime)
	}
	if got.Priority != model.PriorityLow {
		t.Fatalf("priority did not survive reload: %q", got.Priority)
	}
}
