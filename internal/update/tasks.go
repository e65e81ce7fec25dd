package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todio/internal/model"
	"github.com/sandeepkv93/todio/internal/view"
)

// refreshVisible recomputes the task list shown for the current selection
// and keeps the cursor on a valid row.
func (m *Model) refreshVisible() {
	if m.Store == nil {
		m.Visible = nil
		m.Cursor = 0
		m.SelectedTaskID = ""
		return
	}
	m.Visible = view.Apply(m.clock(), m.Store.Snapshot(), m.Selection)
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.syncSelectedToCursor()
}

func (m *Model) syncSelectedToCursor() {
	if selected, ok := m.currentTask(); ok {
		m.SelectedTaskID = selected.ID
	} else {
		m.SelectedTaskID = ""
	}
}

func (m Model) currentTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return model.Task{}, false
	}
	return m.Visible[m.Cursor], true
}

func (m Model) handleTaskKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelectedToCursor()
	case "down", "j":
		if m.Cursor < len(m.Visible)-1 {
			m.Cursor++
		}
		m.syncSelectedToCursor()
	case "K":
		m = m.moveSelected(-1)
	case "J":
		m = m.moveSelected(1)
	case " ":
		m = m.toggleSelected()
	case "d":
		m = m.deleteSelected()
	case "o":
		m.Selection.CustomOrder = false
		m.Status = StatusBar{Text: "sort order restored"}
		m.refreshVisible()
	}
	return m
}

// moveSelected drags the selected task past its visible neighbor and
// switches the view to manual order so the result sticks.
func (m Model) moveSelected(delta int) Model {
	selected, ok := m.currentTask()
	if !ok {
		return m
	}
	neighborIdx := m.Cursor + delta
	if neighborIdx < 0 || neighborIdx >= len(m.Visible) {
		return m
	}
	neighbor := m.Visible[neighborIdx]

	snapshot := m.Store.Snapshot()
	from := indexOfID(snapshot, selected.ID)
	to := indexOfID(snapshot, neighbor.ID)
	if from < 0 || to < 0 {
		return m
	}
	if err := m.Store.Reorder(context.Background(), from, to); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("reorder failed: %v", err), IsError: true}
		return m
	}
	m.Selection.CustomOrder = true
	m.refreshVisible()
	if idx := indexOfID(m.Visible, selected.ID); idx >= 0 {
		m.Cursor = idx
		m.syncSelectedToCursor()
	}
	m.Status = StatusBar{Text: "manual order active, press o to restore sorting"}
	return m
}

func (m Model) toggleSelected() Model {
	selected, ok := m.currentTask()
	if !ok {
		return m
	}
	if m.Selection.Mode == view.ModePast && !selected.Completed {
		m.Status = StatusBar{Text: "overdue tasks cannot be completed from the past view, reschedule with /due first", IsError: true}
		return m
	}
	task, err := m.Store.Toggle(context.Background(), selected.ID)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("toggle failed: %v", err), IsError: true}
		return m
	}
	if task.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Text)}
		if m.Runner != nil {
			m.Runner.Forget(task.ID)
		}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Text)}
		if m.Runner != nil {
			m.Runner.Wake()
		}
	}
	m.refreshVisible()
	return m
}

func (m Model) deleteSelected() Model {
	selected, ok := m.currentTask()
	if !ok {
		return m
	}
	if err := m.Store.Delete(context.Background(), selected.ID); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("delete failed: %v", err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", selected.Text)}
	m.refreshVisible()
	return m
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.quickAddActive = false
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
	case "enter":
		text := m.quickAddInput.Value()
		m.quickAddActive = false
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
		task, err := m.Store.Create(context.Background(), text, nil, model.PriorityMedium, "")
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("add failed: %v", err), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text)}
		m.refreshVisible()
	default:
		if msg.Type == tea.KeyRunes {
			m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
	}
	return m
}

func indexOfID(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
