package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/todio/internal/model"
)

func TestNotifierStressNoDuplicatePairs(t *testing.T) {
	const tasks = 500
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	snapshot := make([]model.Task, 0, tasks)
	for i := 0; i < tasks; i++ {
		// Spread due times so every task walks through every window.
		due := base.Add(24*time.Hour + time.Duration(i)*time.Second)
		snapshot = append(snapshot, taskDueAt(fmt.Sprintf("task-%d", i), due))
	}

	n := NewNotifier()
	seen := make(map[string]int)
	end := base.Add(25*time.Hour + 2*time.Minute)
	for tick := base; tick.Before(end); tick = tick.Add(10 * time.Second) {
		for _, ev := range n.Poll(tick, snapshot) {
			seen[ev.TaskID+"/"+string(ev.Stage)]++
		}
	}

	for pair, count := range seen {
		if count > 1 {
			t.Fatalf("pair %s fired %d times, want at most once", pair, count)
		}
	}
	// Every task should have fired every stage exactly once across the run.
	want := tasks * 5
	if len(seen) != want {
		t.Fatalf("expected %d distinct (task, stage) pairs, got %d", want, len(seen))
	}
}
