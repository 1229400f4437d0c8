package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/realtime"
	"github.com/yungbote/youthcare-backend/internal/realtime/bus"
)

type AlertNotifier interface {
	AlertCreated(ctx context.Context, a *types.Alert, recipients []uuid.UUID)
}

type alertNotifier struct {
	bus   bus.Bus
	log   *logger.Logger
	clock Clock
}

func NewAlertNotifier(b bus.Bus, log *logger.Logger, clock Clock) AlertNotifier {
	return &alertNotifier{bus: b, log: log.With("service", "AlertNotifier"), clock: clock}
}

// AlertCreated publishes best effort; a bus failure never fails the write
// that raised the alert.
func (n *alertNotifier) AlertCreated(ctx context.Context, a *types.Alert, recipients []uuid.UUID) {
	if n == nil || n.bus == nil || a == nil {
		return
	}
	ev := realtime.Event{
		Type:       realtime.EventAlertCreated,
		Recipients: recipients,
		Data: map[string]any{
			"alert_id": a.ID,
			"youth_id": a.YouthID,
			"severity": a.Severity,
			"type":     a.Type,
		},
		At: n.clock.Now(),
	}
	if err := n.bus.Publish(ctx, ev); err != nil {
		n.log.Warn("alert publish failed", "alert_id", a.ID, "error", err)
	}
}
