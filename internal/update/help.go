package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todio/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.bindings()
	plain := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{Bindings: plain}) + "\n" +
		m.helpModel.View(helpKeyMap{
			short: m.helpBindings(),
			full:  [][]key.Binding{m.helpBindings()},
		})
}

func (m Model) bindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "today view"},
		{Key: m.Keys.Past, Action: "past view"},
		{Key: m.Keys.Future, Action: "future view"},
		{Key: "j/k", Action: "move cursor"},
		{Key: "J/K", Action: "drag task (manual order)"},
		{Key: "o", Action: "restore sorted order"},
		{Key: "space", Action: "toggle done"},
		{Key: "d", Action: "delete task"},
		{Key: m.Keys.QuickAdd, Action: "quick add"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	src := m.bindings()
	out := make([]key.Binding, 0, len(src))
	for _, kb := range src {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
