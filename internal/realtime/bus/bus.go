// Package bus carries alert events from the service that raises them to
// whatever delivers them to care-team members.
package bus

import (
	"context"

	"github.com/yungbote/youthcare-backend/internal/realtime"
)

// Bus is implemented by the Redis pub/sub bus and the in-process fallback.
// Publish after Close returns an error.
type Bus interface {
	Publish(ctx context.Context, ev realtime.Event) error
	// StartForwarder registers onEvent for every event published from now
	// on. It runs until ctx is done or the bus is closed.
	StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error
	Close() error
}
