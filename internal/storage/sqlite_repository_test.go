package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todio-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-02T12:00:00Z")
	due := parseRFC3339(t, "2026-03-03T09:00:00Z")

	task := Task{
		ID:        "task-1",
		Text:      "Write schema",
		Details:   "Design storage layout",
		Priority:  "high",
		DueTime:   &due,
		CreatedAt: created,
		Position:  0,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Text != task.Text || got.Priority != "high" {
		t.Fatalf("unexpected task after get: %+v", got)
	}
	if got.DueTime == nil || !got.DueTime.Equal(due) {
		t.Fatalf("due time did not round-trip: %v", got.DueTime)
	}
	if got.Completed {
		t.Fatal("expected task not completed")
	}

	done := parseRFC3339(t, "2026-03-02T18:00:00Z")
	got.Completed = true
	got.CompletedDate = &done
	if err := repo.UpdateTask(ctx, got); err != nil {
		t.Fatalf("update task: %v", err)
	}

	updated, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get updated task: %v", err)
	}
	if !updated.Completed || updated.CompletedDate == nil || !updated.CompletedDate.Equal(done) {
		t.Fatalf("completion did not round-trip: %+v", updated)
	}

	list, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 task, got %d", len(list))
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListTasksOrdersByPosition(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-02T12:00:00Z")

	for i, id := range []string{"c", "a", "b"} {
		if err := repo.CreateTask(ctx, Task{
			ID: id, Text: "task " + id, Priority: "medium",
			CreatedAt: created.Add(time.Duration(i) * time.Minute), Position: i,
		}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	if err := repo.UpdatePositions(ctx, []string{"b", "c", "a"}); err != nil {
		t.Fatalf("update positions: %v", err)
	}

	list, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	want := []string{"b", "c", "a"}
	for i := range want {
		if list[i].ID != want[i] {
			t.Fatalf("expected order %v, got %+v", want, list)
		}
	}
}

func TestListTasksCompletedFilter(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-02T12:00:00Z")
	done := parseRFC3339(t, "2026-03-02T13:00:00Z")

	if err := repo.CreateTask(ctx, Task{ID: "open", Text: "open", Priority: "medium", CreatedAt: created}); err != nil {
		t.Fatalf("create open: %v", err)
	}
	if err := repo.CreateTask(ctx, Task{
		ID: "done", Text: "done", Priority: "medium", Completed: true,
		CompletedDate: &done, CreatedAt: created, Position: 1,
	}); err != nil {
		t.Fatalf("create done: %v", err)
	}

	completed := true
	list, err := repo.ListTasks(ctx, TaskListFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "done" {
		t.Fatalf("expected only completed task, got %+v", list)
	}
}

func TestDeleteTasksBulk(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-03-02T12:00:00Z")

	for i, id := range []string{"a", "b", "c"} {
		if err := repo.CreateTask(ctx, Task{ID: id, Text: id, Priority: "medium", CreatedAt: created, Position: i}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := repo.DeleteTasks(ctx, []string{"a", "c"}); err != nil {
		t.Fatalf("bulk delete: %v", err)
	}

	list, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(list) != 1 || list[0].ID != "b" {
		t.Fatalf("expected only b to remain, got %+v", list)
	}
}

func TestMalformedDueTimeTreatedAsUnscheduled(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.DB().ExecContext(ctx, `
		INSERT INTO tasks (id, text, completed, priority, due_time, created_at, position)
		VALUES ('bad', 'garbage due', 0, 'medium', 'not-a-timestamp', '2026-03-02T12:00:00Z', 0)`); err != nil {
		t.Fatalf("insert raw row: %v", err)
	}

	got, err := repo.GetTask(ctx, "bad")
	if err != nil {
		t.Fatalf("get task with malformed due: %v", err)
	}
	if got.DueTime != nil {
		t.Fatalf("expected malformed due time read back as nil, got %v", got.DueTime)
	}
}
