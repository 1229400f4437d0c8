package observability

import (
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

type SentryConfig struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64
}

// InitSentry configures the global hub. An empty DSN leaves Sentry
// disabled; capture calls then become no-ops. The returned func flushes
// buffered events.
func InitSentry(log *logger.Logger, cfg SentryConfig) (func(), error) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return noop, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: cfg.TracesSampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return noop, fmt.Errorf("init sentry: %w", err)
	}
	if log != nil {
		log.Info("sentry initialized", "environment", cfg.Environment)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}
