package scheduler

import (
	"testing"
	"time"
)

func TestStageAtWindows(t *testing.T) {
	cases := []struct {
		name     string
		untilDue time.Duration
		want     Stage
		inWindow bool
	}{
		{name: "exactly 24h", untilDue: 1440 * time.Minute, want: Stage24Hours, inWindow: true},
		{name: "just inside 24h window", untilDue: 1439*time.Minute + 30*time.Second, want: Stage24Hours, inWindow: true},
		{name: "below 24h window", untilDue: 1439 * time.Minute, inWindow: false},
		{name: "above 24h window", untilDue: 1441 * time.Minute, inWindow: false},
		{name: "exactly 1h", untilDue: 60 * time.Minute, want: Stage1Hour, inWindow: true},
		{name: "between 1h and 30m", untilDue: 45 * time.Minute, inWindow: false},
		{name: "exactly 30m", untilDue: 30 * time.Minute, want: Stage30Minutes, inWindow: true},
		{name: "exactly 5m", untilDue: 5 * time.Minute, want: Stage5Minutes, inWindow: true},
		{name: "between 5m and due", untilDue: 2 * time.Minute, inWindow: false},
		{name: "exactly 1m before due is outside", untilDue: time.Minute, inWindow: false},
		{name: "30s before due", untilDue: 30 * time.Second, want: StageDue, inWindow: true},
		{name: "exactly due", untilDue: 0, want: StageDue, inWindow: true},
		{name: "30s past due", untilDue: -30 * time.Second, want: StageDue, inWindow: true},
		{name: "60s past due is outside", untilDue: -60 * time.Second, inWindow: false},
		{name: "long overdue", untilDue: -2 * time.Hour, inWindow: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := StageAt(tc.untilDue)
			if ok != tc.inWindow {
				t.Fatalf("expected inWindow=%v, got %v (stage %q)", tc.inWindow, ok, got)
			}
			if ok && got != tc.want {
				t.Fatalf("expected stage %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStageUrgencyOrdering(t *testing.T) {
	ordered := []Stage{Stage24Hours, Stage1Hour, Stage30Minutes, Stage5Minutes, StageDue}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Urgency() >= ordered[i].Urgency() {
			t.Fatalf("expected %q less urgent than %q", ordered[i-1], ordered[i])
		}
	}
	if Stage("bogus").Urgency() != 0 {
		t.Fatalf("expected zero urgency for unknown stage")
	}
}
