package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/todio/internal/model"
	"github.com/sandeepkv93/todio/internal/storage"
)

var (
	ErrNotFound  = errors.New("store: task not found")
	ErrEmptyText = errors.New("store: task text is required")
	ErrBadIndex  = errors.New("store: reorder index out of range")
)

// Store owns the authoritative ordered task list. All mutation routes through
// it; readers only ever see snapshot copies. Every mutation writes through to
// the repository so a restart reloads the same list in the same order.
type Store struct {
	mu       sync.Mutex
	repo     storage.Repository
	tasks    []model.Task
	clock    func() time.Time
	onChange func(deletedIDs []string)
}

// Open loads the persisted task list into a new Store.
func Open(ctx context.Context, repo storage.Repository) (*Store, error) {
	if repo == nil {
		return nil, errors.New("store: nil repository")
	}
	rows, err := repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, fromEntity(row))
	}
	return &Store{repo: repo, tasks: tasks, clock: time.Now}, nil
}

// SetClock replaces the wall-clock source used for completion timestamps.
func (s *Store) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if clock != nil {
		s.clock = clock
	}
}

// SetOnChange registers a hook invoked after every successful mutation, with
// the ids of any tasks that were removed. The hook runs outside the lock.
func (s *Store) SetOnChange(fn func(deletedIDs []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns a point-in-time copy of the task list in persisted order.
func (s *Store) Snapshot() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Store) Get(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}
	return s.tasks[idx], nil
}

func (s *Store) Create(ctx context.Context, text string, due *time.Time, priority model.Priority, details string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return model.Task{}, model.ErrInvalidPriority
	}

	s.mu.Lock()
	task := model.Task{
		ID:        uuid.NewString(),
		Text:      text,
		Details:   details,
		Priority:  priority,
		DueTime:   due,
		CreatedAt: s.clock(),
		Position:  len(s.tasks),
	}
	if err := s.repo.CreateTask(ctx, toEntity(task)); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.fireChange(nil)
	return task, nil
}

// Toggle flips completion. The completion date is set on the false-to-true
// transition and cleared on the way back.
func (s *Store) Toggle(ctx context.Context, id string) (model.Task, error) {
	return s.update(ctx, id, func(t *model.Task) {
		t.Completed = !t.Completed
		if t.Completed {
			now := s.clock()
			t.CompletedDate = &now
		} else {
			t.CompletedDate = nil
		}
	})
}

func (s *Store) Rename(ctx context.Context, id, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	return s.update(ctx, id, func(t *model.Task) {
		t.Text = text
	})
}

func (s *Store) UpdateDetails(ctx context.Context, id, details string) (model.Task, error) {
	return s.update(ctx, id, func(t *model.Task) {
		t.Details = details
	})
}

func (s *Store) UpdateDue(ctx context.Context, id string, due *time.Time) (model.Task, error) {
	return s.update(ctx, id, func(t *model.Task) {
		t.DueTime = due
	})
}

func (s *Store) UpdatePriority(ctx context.Context, id string, priority model.Priority) (model.Task, error) {
	if !priority.IsValid() {
		return model.Task{}, model.ErrInvalidPriority
	}
	return s.update(ctx, id, func(t *model.Task) {
		t.Priority = priority
	})
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	err := s.persistPositionsLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.fireChange([]string{id})
	return nil
}

func (s *Store) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	if err := s.repo.DeleteTasks(ctx, ids); err != nil {
		s.mu.Unlock()
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	err := s.persistPositionsLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.fireChange(ids)
	return nil
}

// ClearCompleted removes every completed task and reports how many went.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	ids := make([]string, 0)
	for _, t := range s.tasks {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	s.mu.Unlock()
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.BulkDelete(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Reorder moves the task at from to to, shifting the tasks in between by one
// position. The resulting order is persisted and becomes significant to views
// until an explicit sort is confirmed.
func (s *Store) Reorder(ctx context.Context, from, to int) error {
	s.mu.Lock()
	if from < 0 || from >= len(s.tasks) || to < 0 || to >= len(s.tasks) {
		s.mu.Unlock()
		return ErrBadIndex
	}
	if from != to {
		moved := s.tasks[from]
		s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)
		s.tasks = append(s.tasks[:to], append([]model.Task{moved}, s.tasks[to:]...)...)
	}
	err := s.persistPositionsLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.fireChange(nil)
	return nil
}

func (s *Store) update(ctx context.Context, id string, mutate func(*model.Task)) (model.Task, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, ErrNotFound
	}
	next := s.tasks[idx]
	mutate(&next)
	if err := s.repo.UpdateTask(ctx, toEntity(next)); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	s.tasks[idx] = next
	s.mu.Unlock()

	s.fireChange(nil)
	return next, nil
}

func (s *Store) persistPositionsLocked(ctx context.Context) error {
	ids := make([]string, 0, len(s.tasks))
	for i := range s.tasks {
		s.tasks[i].Position = i
		ids = append(ids, s.tasks[i].ID)
	}
	return s.repo.UpdatePositions(ctx, ids)
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) fireChange(deletedIDs []string) {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(deletedIDs)
	}
}

func toEntity(t model.Task) storage.Task {
	return storage.Task{
		ID:            t.ID,
		Text:          t.Text,
		Details:       t.Details,
		Completed:     t.Completed,
		Priority:      string(t.Priority),
		DueTime:       t.DueTime,
		CompletedDate: t.CompletedDate,
		CreatedAt:     t.CreatedAt,
		Position:      t.Position,
	}
}

func fromEntity(row storage.Task) model.Task {
	priority := model.Priority(row.Priority)
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}
	return model.Task{
		ID:            row.ID,
		Text:          row.Text,
		Details:       row.Details,
		Completed:     row.Completed,
		Priority:      priority,
		DueTime:       row.DueTime,
		CompletedDate: row.CompletedDate,
		CreatedAt:     row.CreatedAt,
		Position:      row.Position,
	}
}
