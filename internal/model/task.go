package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("model: invalid task priority")

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: low=1, medium=2, high=3.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 3
	default:
		return 2
	}
}

type Task struct {
	ID            string
	Text          string
	Details       string
	Completed     bool
	DueTime       *time.Time
	Priority      Priority
	CompletedDate *time.Time
	CreatedAt     time.Time
	Position      int
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if !t.Completed && t.CompletedDate != nil {
		return errors.New("model: completed_date must be nil when task is not completed")
	}
	return nil
}

// EffectiveDate is the instant views judge the task by: the completion date
// when one was recorded, otherwise the due time. A completed task that lost
// its completion date degrades to its due time rather than dropping out.
func (t Task) EffectiveDate() (time.Time, bool) {
	if t.CompletedDate != nil {
		return *t.CompletedDate, true
	}
	if t.DueTime != nil {
		return *t.DueTime, true
	}
	return time.Time{}, false
}
