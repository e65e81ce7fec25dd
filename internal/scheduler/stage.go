package scheduler

import "time"

// Stage is a named due-time threshold at which a notification may fire.
type Stage string

const (
	Stage24Hours   Stage = "24h"
	Stage1Hour     Stage = "1h"
	Stage30Minutes Stage = "30m"
	Stage5Minutes  Stage = "5m"
	StageDue       Stage = "due"
)

// Urgency orders stages from most distant (1) to most urgent (5). A stage
// never fires after a more urgent stage has already fired for the same task.
func (s Stage) Urgency() int {
	switch s {
	case Stage24Hours:
		return 1
	case Stage1Hour:
		return 2
	case Stage30Minutes:
		return 3
	case Stage5Minutes:
		return 4
	case StageDue:
		return 5
	default:
		return 0
	}
}

func (s Stage) Message() string {
	switch s {
	case Stage24Hours:
		return "is due in 24 hours"
	case Stage1Hour:
		return "is due in 1 hour"
	case Stage30Minutes:
		return "is due in 30 minutes"
	case Stage5Minutes:
		return "is due in 5 minutes"
	case StageDue:
		return "is due now"
	default:
		return ""
	}
}

// StageAt classifies a time-to-due into its threshold window. The advance
// stages are half-open minute ranges before due; the due window covers the
// final minute before due plus a 60-second tail after it. The windows stay
// disjoint under a 10-second poll interval.
func StageAt(untilDue time.Duration) (Stage, bool) {
	switch {
	case untilDue > 1439*time.Minute && untilDue <= 1440*time.Minute:
		return Stage24Hours, true
	case untilDue > 59*time.Minute && untilDue <= 60*time.Minute:
		return Stage1Hour, true
	case untilDue > 29*time.Minute && untilDue <= 30*time.Minute:
		return Stage30Minutes, true
	case untilDue > 4*time.Minute && untilDue <= 5*time.Minute:
		return Stage5Minutes, true
	case untilDue > -time.Minute && untilDue < time.Minute:
		return StageDue, true
	default:
		return "", false
	}
}
