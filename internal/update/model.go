package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/todio/internal/config"
	"github.com/sandeepkv93/todio/internal/model"
	"github.com/sandeepkv93/todio/internal/release"
	"github.com/sandeepkv93/todio/internal/scheduler"
	"github.com/sandeepkv93/todio/internal/store"
	"github.com/sandeepkv93/todio/internal/view"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today    string
	Past     string
	Future   string
	QuickAdd string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	Stage scheduler.Stage
	At    time.Time
}

type Model struct {
	Store     *store.Store
	Runner    *scheduler.Runner
	Selection view.Selection

	Visible        []model.Task
	Cursor         int
	SelectedTaskID string

	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	DesktopEnabled bool
	notifier       DesktopNotifier
	updateChecker  *release.Checker
	theme          string
	stateFilePath  string
	clock          func() time.Time

	quickAddActive bool
	quickAddInput  textinput.Model
	commandInput   textinput.Model
	helpModel      help.Model
	metaViewport   viewport.Model
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type DueEventMsg struct {
	Event scheduler.Event
}

type RelativeTimeTickMsg struct {
	Now time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type UpdateCheckMsg struct {
	Release release.Release
	Newer   bool
	Err     error
}

func NewModel(st *store.Store) Model {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "task text"
	quickAdd.CharLimit = 200

	command := textinput.New()
	command.Placeholder = "add buy milk | view past | sort priority desc"
	command.CharLimit = 200

	m := Model{
		Store: st,
		Selection: view.Selection{
			Mode: view.ModeToday,
		},
		Keys: GlobalKeyMap{
			Today:    "1",
			Past:     "2",
			Future:   "3",
			QuickAdd: "a",
			Help:     "?",
			Quit:     "q",
		},
		notifier:      NoopDesktopNotifier{},
		theme:         "dark",
		clock:         time.Now,
		quickAddInput: quickAdd,
		commandInput:  command,
		helpModel:     help.New(),
		metaViewport:  viewport.New(44, 12),
	}
	m.refreshVisible()
	return m
}

func NewModelWithRuntime(st *store.Store, runner *scheduler.Runner, notifier DesktopNotifier, cfg config.Config) Model {
	m := NewModel(st)
	m.Runner = runner
	m.DesktopEnabled = cfg.DesktopNotifications
	m.stateFilePath = strings.TrimSpace(cfg.StatePath)
	if notifier != nil {
		m.notifier = notifier
	}
	if cfg.Theme != "" {
		m.theme = cfg.Theme
	}
	if cfg.UpdateFeedURL != "" {
		m.updateChecker = release.NewChecker(cfg.UpdateFeedURL, Version)
	}
	if m.stateFilePath != "" {
		if state, err := loadUIState(m.stateFilePath); err == nil {
			m.applyUIState(state)
		}
	}
	m.refreshVisible()
	return m
}

// SetClock fixes the instant used for view filtering. Tests use this.
func (m *Model) SetClock(clock func() time.Time) {
	if clock != nil {
		m.clock = clock
	}
}

// Version is stamped at build time via -ldflags.
var Version = "0.0.0-dev"
