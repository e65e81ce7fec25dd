package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	DeleteTasks(ctx context.Context, ids []string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	// UpdatePositions persists a manual ordering: each id is assigned its
	// index in the slice as its position.
	UpdatePositions(ctx context.Context, ids []string) error
}
