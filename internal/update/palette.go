package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todio/internal/commands"
	"github.com/sandeepkv93/todio/internal/model"
	"github.com/sandeepkv93/todio/internal/view"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	ctx := context.Background()
	err = commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) error {
			task, err := m.Store.Create(ctx, a.Text, nil, model.PriorityMedium, "")
			if err != nil {
				return err
			}
			m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text)}
			return nil
		},
		Done: func() error {
			selected, ok := m.currentTask()
			if !ok {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			if m.Selection.Mode == view.ModePast && !selected.Completed {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "overdue tasks cannot be completed from the past view, reschedule with due first"}
			}
			task, err := m.Store.Toggle(ctx, selected.ID)
			if err != nil {
				return err
			}
			if task.Completed && m.Runner != nil {
				m.Runner.Forget(task.ID)
			}
			m.Status = StatusBar{Text: fmt.Sprintf("toggled: %s", task.Text)}
			return nil
		},
		Rename: func(a commands.RenameArgs) error {
			selected, ok := m.currentTask()
			if !ok {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			task, err := m.Store.Rename(ctx, selected.ID, a.Text)
			if err != nil {
				return err
			}
			m.Status = StatusBar{Text: fmt.Sprintf("renamed: %s", task.Text)}
			return nil
		},
		Due: func(a commands.DueArgs) error {
			selected, ok := m.currentTask()
			if !ok {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			due, err := parseWhen(a.When, m.clock())
			if err != nil {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			task, err := m.Store.UpdateDue(ctx, selected.ID, due)
			if err != nil {
				return err
			}
			if m.Runner != nil {
				m.Runner.Forget(task.ID)
				m.Runner.Wake()
			}
			if due == nil {
				m.Status = StatusBar{Text: fmt.Sprintf("unscheduled: %s", task.Text)}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("due %s: %s", due.Format("2006-01-02 15:04"), task.Text)}
			}
			return nil
		},
		Note: func(a commands.NoteArgs) error {
			selected, ok := m.currentTask()
			if !ok {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			if _, err := m.Store.UpdateDetails(ctx, selected.ID, a.Text); err != nil {
				return err
			}
			m.Status = StatusBar{Text: "note updated"}
			return nil
		},
		Delete: func() error {
			selected, ok := m.currentTask()
			if !ok {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			if err := m.Store.Delete(ctx, selected.ID); err != nil {
				return err
			}
			m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", selected.Text)}
			return nil
		},
		Clear: func() error {
			n, err := m.Store.ClearCompleted(ctx)
			if err != nil {
				return err
			}
			m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed task(s)", n)}
			return nil
		},
		View: func(a commands.ViewArgs) error {
			m.Selection.Mode = view.Mode(a.Mode)
			m.Cursor = 0
			m.Status = StatusBar{Text: fmt.Sprintf("view: %s", a.Mode)}
			return nil
		},
		Sort: func(a commands.SortArgs) error {
			m.Selection.Sort = &view.Sort{
				By:        view.SortBy(a.By),
				Direction: view.Direction(a.Direction),
			}
			m.Selection.CustomOrder = false
			m.Status = StatusBar{Text: fmt.Sprintf("sort: %s %s", a.By, a.Direction)}
			return nil
		},
		Filter: func(a commands.FilterArgs) error {
			m.Selection.Status = view.StatusFilter{
				Completed:   a.Completed,
				Uncompleted: a.Uncompleted,
			}
			m.Status = StatusBar{Text: "filter updated"}
			return nil
		},
		Move: func(a commands.MoveArgs) error {
			// Palette indexes are 1-based rows of the visible list.
			from, to := a.From-1, a.To-1
			if from < 0 || from >= len(m.Visible) || to < 0 || to >= len(m.Visible) {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "move index out of range"}
			}
			snapshot := m.Store.Snapshot()
			storeFrom := indexOfID(snapshot, m.Visible[from].ID)
			storeTo := indexOfID(snapshot, m.Visible[to].ID)
			if err := m.Store.Reorder(ctx, storeFrom, storeTo); err != nil {
				return err
			}
			m.Selection.CustomOrder = true
			m.Status = StatusBar{Text: fmt.Sprintf("moved task %d to %d", a.From, a.To)}
			return nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.notify("Command", m.Status.Text, "info")
	}

	m.closePalette()
	m.refreshVisible()
	m.saveUIState()
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}
