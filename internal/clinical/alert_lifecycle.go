package clinical

import (
	"fmt"
	"time"

	"github.com/yungbote/youthcare-backend/internal/domain/alert"
)

var alertTransitions = map[string][]string{
	alert.StatusActive:       {alert.StatusAcknowledged, alert.StatusFalsePositive},
	alert.StatusAcknowledged: {alert.StatusResolved},
}

type ErrInvalidTransition struct{ From, To string }

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot move alert from %s to %s", e.From, e.To)
}

// CanTransition reports whether an alert may move from one status to
// another. Staying in place is always allowed so the assignee can change
// without a status change.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range alertTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplyStatus moves a to status, stamping acknowledged_at and resolved_at
// the first time each status is entered. It reports whether the status
// actually changed.
func ApplyStatus(a *alert.Alert, status string, now time.Time) (bool, error) {
	if !alert.ValidStatus(status) {
		return false, fmt.Errorf("invalid alert status %q", status)
	}
	if !CanTransition(a.Status, status) {
		return false, ErrInvalidTransition{From: a.Status, To: status}
	}
	if a.Status == status {
		return false, nil
	}
	a.Status = status
	switch status {
	case alert.StatusAcknowledged:
		if a.AcknowledgedAt == nil {
			t := now
			a.AcknowledgedAt = &t
		}
	case alert.StatusResolved:
		if a.ResolvedAt == nil {
			t := now
			a.ResolvedAt = &t
		}
	}
	return true, nil
}
