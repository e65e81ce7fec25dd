package scheduler

import (
	"time"

	"github.com/sandeepkv93/todio/internal/model"
)

// Event is one staged due alert for a task.
type Event struct {
	TaskID   string
	TaskText string
	Stage    Stage
	Message  string
	DueTime  time.Time
}

// Notifier turns approaching due times into a bounded stream of one-shot
// events. It owns the per-task record of the last stage fired; each
// (task, stage) pair fires at most once for the life of the Notifier.
// Notifier is not safe for concurrent use; the Runner serializes access.
type Notifier struct {
	lastFired map[string]Stage
}

func NewNotifier() *Notifier {
	return &Notifier{lastFired: make(map[string]Stage)}
}

// Poll inspects the task snapshot at the given instant and returns the events
// that newly crossed a threshold. Completed tasks and tasks without a due
// time are never scheduled. Stages only advance in urgency: a less urgent
// window reached by a backward clock adjustment does not re-fire.
func (n *Notifier) Poll(now time.Time, tasks []model.Task) []Event {
	var out []Event
	for _, t := range tasks {
		if t.Completed || t.DueTime == nil {
			continue
		}
		stage, ok := StageAt(t.DueTime.Sub(now))
		if !ok {
			continue
		}
		if last, fired := n.lastFired[t.ID]; fired && last.Urgency() >= stage.Urgency() {
			continue
		}
		n.lastFired[t.ID] = stage
		out = append(out, Event{
			TaskID:   t.ID,
			TaskText: t.Text,
			Stage:    stage,
			Message:  stage.Message(),
			DueTime:  *t.DueTime,
		})
	}
	return out
}

// Forget drops the fired-stage record for a deleted task. Stale entries are
// harmless since ids are never reused, but there is no reason to keep them.
func (n *Notifier) Forget(id string) {
	delete(n.lastFired, id)
}

// LastFired reports the most urgent stage fired so far for a task.
func (n *Notifier) LastFired(id string) (Stage, bool) {
	s, ok := n.lastFired[id]
	return s, ok
}
