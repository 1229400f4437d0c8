package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/realtime"
)

const defaultAlertChannel = "alerts"

var errBusClosed = errors.New("alert bus closed")

// redisBus fans alert events out over a Redis pub/sub channel so every API
// replica sees alerts raised on any other. The client belongs to the
// caller; Close only tears down this bus's subscriptions.
type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string

	mu     sync.Mutex
	subs   []*goredis.PubSub
	closed bool
}

func NewRedisBus(log *logger.Logger, rdb *goredis.Client, channel string) (Bus, error) {
	if log == nil {
		return nil, errors.New("logger required")
	}
	if rdb == nil {
		return nil, errors.New("redis client required")
	}
	if channel = strings.TrimSpace(channel); channel == "" {
		channel = defaultAlertChannel
	}
	return &redisBus{
		log:     log.With("service", "RedisAlertBus", "channel", channel),
		rdb:     rdb,
		channel: channel,
	}, nil
}

// NewRedisClient dials addr and fails fast when the server does not answer
// a ping within five seconds.
func NewRedisClient(ctx context.Context, addr string) (*goredis.Client, error) {
	if addr = strings.TrimSpace(addr); addr == "" {
		return nil, errors.New("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, DialTimeout: 5 * time.Second})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func (b *redisBus) Publish(ctx context.Context, ev realtime.Event) error {
	if b.isClosed() {
		return errBusClosed
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode alert event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *redisBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error {
	if onEvent == nil {
		return errors.New("onEvent callback required")
	}
	sub := b.rdb.Subscribe(ctx, b.channel)
	// Receive blocks until the subscription is confirmed, so events
	// published after StartForwarder returns are never missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = sub.Close()
		return errBusClosed
	}
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	go b.pump(ctx, sub, onEvent)
	return nil
}

func (b *redisBus) pump(ctx context.Context, sub *goredis.PubSub, onEvent func(ev realtime.Event)) {
	defer sub.Close()
	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}
			var ev realtime.Event
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				b.log.Warn("Dropping malformed alert payload", "error", err)
				continue
			}
			onEvent(ev)
		}
	}
}

func (b *redisBus) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *redisBus) Close() error {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.closed = true
	b.mu.Unlock()

	var errs []error
	for _, s := range subs {
		if err := s.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
