package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/todio/internal/model"
	"github.com/sandeepkv93/todio/internal/views"
)

func (m Model) renderTaskPanel() string {
	now := m.clock()
	items := make([]views.TaskItemData, 0, len(m.Visible))
	for _, t := range m.Visible {
		items = append(items, taskItemData(now, t))
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		Mode:        string(m.Selection.Mode),
		SortLabel:   m.sortLabel(),
		FilterLabel: m.filterLabel(),
		CustomOrder: m.Selection.CustomOrder,
		Items:       items,
		SelectedID:  m.SelectedTaskID,
	})
}

func taskItemData(now time.Time, t model.Task) views.TaskItemData {
	item := views.TaskItemData{
		ID:        t.ID,
		Title:     t.Text,
		Completed: t.Completed,
		Priority:  string(t.Priority),
	}
	if t.DueTime != nil {
		item.DueAt = t.DueTime.Format("Mon 15:04")
		item.DueIn = formatRelative(now, *t.DueTime)
	}
	if t.CompletedDate != nil {
		item.DoneAt = t.CompletedDate.Format("Mon 15:04")
	}
	return item
}

func (m Model) renderMetadataPanel() string {
	selected, ok := m.currentTask()
	if !ok {
		return views.RenderMetadataPanel(views.MetadataPanelData{})
	}
	data := views.MetadataPanelData{
		SelectedID: selected.ID,
		Priority:   string(selected.Priority),
		CreatedAt:  selected.CreatedAt.Format("2006-01-02 15:04"),
	}
	if selected.DueTime != nil {
		data.DueAt = selected.DueTime.Format("2006-01-02 15:04")
	}
	if selected.CompletedDate != nil {
		data.CompletedAt = selected.CompletedDate.Format("2006-01-02 15:04")
	}
	if selected.Details != "" {
		vp := m.metaViewport
		vp.SetContent(views.RenderMarkdown(selected.Details, m.theme))
		data.DetailsView = vp.View()
	}
	return views.RenderMetadataPanel(data)
}

func (m Model) renderNotificationLog() string {
	recent := m.Notifications
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	entries := make([]views.NotificationEntryData, 0, len(recent))
	for _, n := range recent {
		entries = append(entries, views.NotificationEntryData{
			At:      n.At.Format("15:04:05"),
			Stage:   string(n.Stage),
			Message: n.Body,
		})
	}
	return views.RenderNotificationLog(entries)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderLastNotification() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) sortLabel() string {
	if m.Selection.Sort == nil {
		return "default"
	}
	return string(m.Selection.Sort.By) + " " + string(m.Selection.Sort.Direction)
}

func (m Model) filterLabel() string {
	f := m.Selection.Status
	switch {
	case f.Completed && !f.Uncompleted:
		return "completed"
	case f.Uncompleted && !f.Completed:
		return "uncompleted"
	default:
		return ""
	}
}

func (m *Model) notify(title, body, level string) {
	m.appendNotification(Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.clock(),
	})
}

func (m *Model) appendNotification(n Notification) {
	if strings.TrimSpace(n.Body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
