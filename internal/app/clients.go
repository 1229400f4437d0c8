package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	httpMW "github.com/yungbote/youthcare-backend/internal/http/middleware"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/realtime/bus"
	"github.com/yungbote/youthcare-backend/internal/services"
)

// Clients holds the outbound collaborators. Redis is optional: without it
// the alert bus and the auth rate limiter fall back to process memory.
type Clients struct {
	Redis       *goredis.Client
	AlertBus    bus.Bus
	AuthLimiter httpMW.Limiter
	Mailer      services.Mailer

	memLimiter *httpMW.MemoryLimiter
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	if cfg.RedisAddr != "" {
		rdb, err := bus.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		b, err := bus.NewRedisBus(log, rdb, cfg.RedisChannel)
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("init redis alert bus: %w", err)
		}
		out.Redis = rdb
		out.AlertBus = b
		if cfg.AuthRateLimit > 0 {
			out.AuthLimiter = httpMW.NewRedisLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWin)
		}
	} else {
		log.Warn("REDIS_ADDR not set, alert bus and rate limiting are process-local")
		out.AlertBus = bus.NewMemoryBus(log)
		if cfg.AuthRateLimit > 0 {
			out.memLimiter = httpMW.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWin)
			out.AuthLimiter = out.memLimiter
		}
	}

	out.Mailer = services.NewEmailService(log, services.EmailConfig{
		APIKey: cfg.ResendAPIKey,
		From:   cfg.EmailFrom,
		Dev:    !cfg.Production() && cfg.ResendAPIKey == "",
	})
	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.AlertBus != nil {
		_ = c.AlertBus.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
