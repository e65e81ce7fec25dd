package storage

import "time"

type Task struct {
	ID            string
	Text          string
	Details       string
	Completed     bool
	Priority      string
	DueTime       *time.Time
	CompletedDate *time.Time
	CreatedAt     time.Time
	Position      int
}

type TaskListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
