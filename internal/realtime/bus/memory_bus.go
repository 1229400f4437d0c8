package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/realtime"
)

// memoryBus delivers events to in-process forwarders. It is the fallback
// when no Redis address is configured, so only this process sees them.
type memoryBus struct {
	log *logger.Logger

	mu       sync.RWMutex
	handlers []func(ev realtime.Event)
	closed   bool
}

func NewMemoryBus(log *logger.Logger) Bus {
	return &memoryBus{log: log.With("service", "MemoryAlertBus")}
}

func (b *memoryBus) Publish(ctx context.Context, ev realtime.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("alert bus closed")
	}
	b.log.Debug("alert event published", "event", ev.Type, "recipients", len(ev.Recipients))
	for _, h := range b.handlers {
		h(ev)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("alert bus closed")
	}
	b.handlers = append(b.handlers, onEvent)
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = nil
	return nil
}
