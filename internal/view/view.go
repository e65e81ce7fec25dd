package view

import (
	"sort"
	"time"

	"github.com/sandeepkv93/todio/internal/model"
)

type Mode string

const (
	ModeToday  Mode = "today"
	ModePast   Mode = "past"
	ModeFuture Mode = "future"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeToday, ModePast, ModeFuture:
		return true
	default:
		return false
	}
}

type SortBy string

const (
	SortByTime     SortBy = "time"
	SortByPriority SortBy = "priority"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type Sort struct {
	By        SortBy
	Direction Direction
}

// StatusFilter restricts a view to completed or uncompleted tasks only when
// exactly one flag is set. Both or neither means show all.
type StatusFilter struct {
	Completed   bool
	Uncompleted bool
}

func (f StatusFilter) Allows(completed bool) bool {
	if f.Completed == f.Uncompleted {
		return true
	}
	if f.Completed {
		return completed
	}
	return !completed
}

// Selection is the full view request: which mode, an optional sort override,
// a status filter, and whether a manual drag order is in effect. While
// CustomOrder is set the sort override is suppressed and the input list order
// is preserved; mode inclusion and the status filter still apply.
type Selection struct {
	Mode        Mode
	Sort        *Sort
	Status      StatusFilter
	CustomOrder bool
}

// Apply selects and orders the tasks for a selection at the given instant.
// It never mutates the input slice. Day membership uses calendar-day
// boundaries in now's location, never raw timestamp subtraction.
func Apply(now time.Time, tasks []model.Task, sel Selection) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if includes(now, t, sel.Mode) && sel.Status.Allows(t.Completed) {
			out = append(out, t)
		}
	}
	if sel.CustomOrder {
		return out
	}
	if sel.Sort != nil {
		applySort(out, *sel.Sort)
	} else {
		applyDefaultOrder(now, out, sel.Mode)
	}
	return out
}

func includes(now time.Time, t model.Task, mode Mode) bool {
	if t.DueTime == nil {
		return false
	}
	loc := now.Location()
	today := dayOf(now, loc)
	switch mode {
	case ModeToday:
		if t.Completed {
			done, _ := t.EffectiveDate()
			return dayOf(done, loc).Equal(today)
		}
		return dayOf(*t.DueTime, loc).Equal(today)
	case ModePast:
		if t.Completed {
			// Completed on any day other than today counts as past, even a
			// later day reached through clock or manual date edits.
			done, _ := t.EffectiveDate()
			return !dayOf(done, loc).Equal(today)
		}
		return dayOf(*t.DueTime, loc).Before(today)
	case ModeFuture:
		if t.Completed {
			return false
		}
		return dayOf(*t.DueTime, loc).After(today)
	default:
		return false
	}
}

func applyDefaultOrder(now time.Time, tasks []model.Task, mode Mode) {
	loc := now.Location()
	switch mode {
	case ModePast:
		// Most recently finished first.
		sort.SliceStable(tasks, func(i, j int) bool {
			a, _ := tasks[i].EffectiveDate()
			b, _ := tasks[j].EffectiveDate()
			return a.After(b)
		})
	case ModeFuture:
		// Tomorrow's tasks lead, then everything ascends by due time.
		tomorrow := dayOf(now, loc).AddDate(0, 0, 1)
		sort.SliceStable(tasks, func(i, j int) bool {
			ti := dayOf(*tasks[i].DueTime, loc).Equal(tomorrow)
			tj := dayOf(*tasks[j].DueTime, loc).Equal(tomorrow)
			if ti != tj {
				return ti
			}
			return tasks[i].DueTime.Before(*tasks[j].DueTime)
		})
	}
}

// applySort reorders by the explicit selection. Time sorting treats a missing
// due time as the zero instant; equal keys fall back to the other dimension
// so the ordering stays deterministic when both would apply.
func applySort(tasks []model.Task, s Sort) {
	sort.SliceStable(tasks, func(i, j int) bool {
		var less, equal bool
		switch s.By {
		case SortByPriority:
			ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
			less, equal = ri < rj, ri == rj
			if equal {
				less = dueOrZero(tasks[i]).Before(dueOrZero(tasks[j]))
				equal = dueOrZero(tasks[i]).Equal(dueOrZero(tasks[j]))
			}
		default:
			ti, tj := dueOrZero(tasks[i]), dueOrZero(tasks[j])
			less, equal = ti.Before(tj), ti.Equal(tj)
			if equal {
				less = tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
				equal = tasks[i].Priority.Rank() == tasks[j].Priority.Rank()
			}
		}
		if equal {
			return false
		}
		if s.Direction == Descending {
			return !less
		}
		return less
	})
}

func dueOrZero(t model.Task) time.Time {
	if t.DueTime == nil {
		return time.Time{}
	}
	return *t.DueTime
}

// dayOf truncates an instant to its calendar day in the given location.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
