package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/todio/internal/view"
)

func modeFromString(raw string) view.Mode {
	if mode := view.Mode(strings.ToLower(strings.TrimSpace(raw))); mode.IsValid() {
		return mode
	}
	return view.ModeToday
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// parseWhen turns palette due arguments into an absolute time. Accepted
// forms: "none" to unschedule, a relative offset like "+30m" or "+2h",
// a bare clock time for today ("15:04"), a full timestamp
// ("2006-01-02 15:04"), or a bare date which lands at end of day.
func parseWhen(raw string, now time.Time) (*time.Time, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" || trimmed == "none" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "+") {
		d, err := time.ParseDuration(strings.TrimPrefix(trimmed, "+"))
		if err != nil {
			return nil, fmt.Errorf("bad duration offset: %s", raw)
		}
		t := now.Add(d)
		return &t, nil
	}

	loc := now.Location()
	if clock, err := time.Parse("15:04", trimmed); err == nil {
		t := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		return &t, nil
	}
	if full, err := time.ParseInLocation("2006-01-02 15:04", trimmed, loc); err == nil {
		return &full, nil
	}
	if day, err := time.ParseInLocation("2006-01-02", trimmed, loc); err == nil {
		t := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, loc)
		return &t, nil
	}
	return nil, fmt.Errorf("unrecognized due time: %s", raw)
}

// formatRelative renders the distance from now to t for list rows,
// coarse on purpose so a minute tick keeps it honest.
func formatRelative(now, t time.Time) string {
	d := t.Sub(now)
	past := d < 0
	if past {
		d = -d
	}
	var body string
	switch {
	case d < time.Minute:
		body = "now"
	case d < time.Hour:
		body = fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		body = fmt.Sprintf("%dh", int(d.Hours()))
	default:
		body = fmt.Sprintf("%dd", int(d.Hours()/24))
	}
	if body == "now" {
		return body
	}
	if past {
		return body + " ago"
	}
	return "in " + body
}
