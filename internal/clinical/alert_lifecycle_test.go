package clinical

import (
	"testing"
	"time"

	"github.com/yungbote/youthcare-backend/internal/domain/alert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"active", "acknowledged", true},
		{"active", "false-positive", true},
		{"active", "resolved", false},
		{"acknowledged", "resolved", true},
		{"acknowledged", "active", false},
		{"resolved", "active", false},
		{"false-positive", "acknowledged", false},
		{"resolved", "resolved", true},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q,%q)=%v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestApplyStatusStampsOnce(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := &alert.Alert{Status: alert.StatusActive}

	changed, err := ApplyStatus(a, alert.StatusAcknowledged, t0)
	if err != nil || !changed {
		t.Fatalf("ApplyStatus(ack): changed=%v err=%v", changed, err)
	}
	if a.AcknowledgedAt == nil || !a.AcknowledgedAt.Equal(t0) {
		t.Fatalf("AcknowledgedAt=%v, want %v", a.AcknowledgedAt, t0)
	}

	changed, err = ApplyStatus(a, alert.StatusAcknowledged, t0.Add(time.Hour))
	if err != nil || changed {
		t.Fatalf("ApplyStatus(ack again): changed=%v err=%v", changed, err)
	}
	if !a.AcknowledgedAt.Equal(t0) {
		t.Fatalf("AcknowledgedAt moved: %v", a.AcknowledgedAt)
	}

	t1 := t0.Add(2 * time.Hour)
	if _, err := ApplyStatus(a, alert.StatusResolved, t1); err != nil {
		t.Fatalf("ApplyStatus(resolve): %v", err)
	}
	if a.ResolvedAt == nil || !a.ResolvedAt.Equal(t1) || !a.AcknowledgedAt.Equal(t0) {
		t.Fatalf("timestamps: ack=%v resolved=%v", a.AcknowledgedAt, a.ResolvedAt)
	}

	if _, err := ApplyStatus(a, alert.StatusActive, t1); err == nil {
		t.Fatalf("ApplyStatus(resolved->active): expected error")
	}
	if _, err := ApplyStatus(a, "snoozed", t1); err == nil {
		t.Fatalf("ApplyStatus(snoozed): expected error")
	}
}
