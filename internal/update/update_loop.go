package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todio/internal/scheduler"
	"github.com/sandeepkv93/todio/internal/views"
)

const relativeTimeInterval = time.Minute

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{relativeTickCmd()}
	if m.Runner != nil {
		cmds = append(cmds, waitForDueCmd(m.Runner.C()))
	}
	if m.updateChecker != nil {
		cmds = append(cmds, checkUpdateCmd(m))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.quickAddActive {
			return m.handleQuickAddKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.QuickAdd:
			m.quickAddActive = true
			m.quickAddInput.Focus()
			return m, nil
		case m.Keys.Today:
			m = m.switchMode("today")
			return m, nil
		case m.Keys.Past:
			m = m.switchMode("past")
			return m, nil
		case m.Keys.Future:
			m = m.switchMode("future")
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			m.saveUIState()
			return m, tea.Quit
		}
		return m.handleTaskKey(typed), nil

	case DueEventMsg:
		m.onDueEvent(typed.Event)
		if m.Runner != nil {
			return m, waitForDueCmd(m.Runner.C())
		}
		return m, nil

	case RelativeTimeTickMsg:
		// Recompute day membership so tasks roll between views at
		// midnight without any user input.
		m.refreshVisible()
		return m, relativeTickCmd()

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil

	case UpdateCheckMsg:
		if typed.Err != nil {
			// Update checks are best effort, never surface as errors.
			return m, nil
		}
		if typed.Newer {
			m.notify("Update", fmt.Sprintf("todio %s is available: %s", typed.Release.Version, typed.Release.URL), "info")
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) onDueEvent(ev scheduler.Event) {
	m.appendNotification(Notification{
		Title: "Task Due",
		Body:  fmt.Sprintf("%s %s", ev.TaskText, ev.Message),
		Level: "info",
		Stage: ev.Stage,
		At:    m.clock(),
	})
	m.Status = StatusBar{Text: fmt.Sprintf("%s %s", ev.TaskText, ev.Message)}
	m.refreshVisible()
}

func (m Model) switchMode(mode string) Model {
	m.Selection.Mode = modeFromString(mode)
	m.Cursor = 0
	m.Status = StatusBar{Text: "view: " + mode}
	m.refreshVisible()
	m.saveUIState()
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := m.renderTaskPanel()
	if m.quickAddActive {
		left = "add: " + m.quickAddInput.View() + "\n" + left
	}

	right := m.renderMetadataPanel()
	if m.Palette.Active {
		right = m.renderCommandPalette() + "\n" + right
	}
	if m.HelpVisible {
		right = right + "\n" + m.renderHelpIfVisible()
	}

	notification := strings.TrimSpace(strings.Join([]string{
		strings.TrimSpace(m.renderLastNotification()),
		m.renderNotificationLog(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("todio | view: %s | selected: %s", m.Selection.Mode, m.SelectedTaskID),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s today | %s past | %s future | %s add | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.Past, m.Keys.Future, m.Keys.QuickAdd, m.Keys.Help, m.Keys.Quit),
	})
}

func waitForDueCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueEventMsg{Event: ev}
	}
}

func relativeTickCmd() tea.Cmd {
	return tea.Tick(relativeTimeInterval, func(t time.Time) tea.Msg {
		return RelativeTimeTickMsg{Now: t}
	})
}

func checkUpdateCmd(m Model) tea.Cmd {
	checker := m.updateChecker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		rel, newer, err := checker.Check(ctx)
		return UpdateCheckMsg{Release: rel, Newer: newer, Err: err}
	}
}
