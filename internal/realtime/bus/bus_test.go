package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/realtime"
)

func TestMemoryBusDelivers(t *testing.T) {
	b := NewMemoryBus(logger.Nop())
	var got []realtime.Event
	if err := b.StartForwarder(context.Background(), func(ev realtime.Event) { got = append(got, ev) }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	ev := realtime.Event{Type: realtime.EventAlertCreated, Recipients: []uuid.UUID{uuid.New()}}
	if err := b.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 1 || got[0].Type != realtime.EventAlertCreated {
		t.Fatalf("delivered=%v, want one alert.created", got)
	}
	_ = b.Close()
	if err := b.Publish(context.Background(), ev); err == nil {
		t.Fatalf("Publish after Close: want error")
	}
}

func TestRedisBusRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rdb, err := NewRedisClient(ctx, addr)
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rdb.Close()
	b, err := NewRedisBus(logger.Nop(), rdb, "test-alerts-"+uuid.NewString())
	if err != nil {
		t.Fatalf("NewRedisBus: %v", err)
	}
	recv := make(chan realtime.Event, 1)
	if err := b.StartForwarder(ctx, func(ev realtime.Event) { recv <- ev }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	want := realtime.Event{Type: realtime.EventAlertCreated, Data: map[string]any{"severity": "critical"}}
	if err := b.Publish(ctx, want); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case got := <-recv:
		if got.Type != want.Type || got.Data["severity"] != "critical" {
			t.Fatalf("got=%+v, want %+v", got, want)
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for event")
	}
}
