package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        string
	Title     string
	Completed bool
	Priority  string
	DueAt     string
	DueIn     string
	DoneAt    string
}

type TaskPanelData struct {
	Mode        string
	SortLabel   string
	FilterLabel string
	CustomOrder bool
	Items       []TaskItemData
	SelectedID  string
}

type MetadataPanelData struct {
	SelectedID  string
	Priority    string
	DueAt       string
	CreatedAt   string
	CompletedAt string
	DetailsView string
}

type NotificationEntryData struct {
	At      string
	Stage   string
	Message string
}

type HelpPanelData struct {
	Bindings []string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s:\n", data.Mode))

	order := "order: " + data.SortLabel
	if data.CustomOrder {
		order = "order: custom"
	}
	b.WriteString(order)
	if data.FilterLabel != "" {
		b.WriteString(" | filter: " + data.FilterLabel)
	}
	b.WriteString("\n")
	b.WriteString("actions: [1]today [2]past [3]future [j/k]move [J/K]reorder [space]done [/]command\n")

	if len(data.Items) == 0 {
		b.WriteString("  (no tasks)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		box := "[ ]"
		if item.Completed {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, box, priorityBadge(item.Priority), item.Title))
		switch {
		case item.Completed && item.DoneAt != "":
			b.WriteString(fmt.Sprintf(" done:%s", item.DoneAt))
		case item.DueAt != "":
			b.WriteString(fmt.Sprintf(" due:%s", item.DueAt))
			if item.DueIn != "" {
				b.WriteString(fmt.Sprintf(" (%s)", item.DueIn))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderMetadataPanel(data MetadataPanelData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "metadata:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("metadata:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.SelectedID))
	b.WriteString(fmt.Sprintf("priority: %s\n", data.Priority))
	if data.DueAt != "" {
		b.WriteString(fmt.Sprintf("due: %s\n", data.DueAt))
	}
	if data.CompletedAt != "" {
		b.WriteString(fmt.Sprintf("completed: %s\n", data.CompletedAt))
	}
	b.WriteString(fmt.Sprintf("created: %s\n", data.CreatedAt))
	if data.DetailsView != "" {
		b.WriteString("\nnotes:\n")
		b.WriteString(data.DetailsView)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderNotificationLog(entries []NotificationEntryData) string {
	if len(entries) == 0 {
		return "notifications:\n  (none yet)"
	}
	var b strings.Builder
	b.WriteString("notifications:\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s [%s] %s\n", e.At, strings.ToUpper(e.Stage), e.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
