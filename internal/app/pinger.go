package app

import (
	"context"
	"net/http"
	"time"

	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

// startHealthPinger requests url every interval so hosts that idle out
// quiet instances keep this one warm. An empty url disables it.
func startHealthPinger(ctx context.Context, log *logger.Logger, url string, interval time.Duration) {
	if url == "" || interval <= 0 {
		return
	}
	pingLog := log.With("component", "HealthPinger")
	client := &http.Client{Timeout: 10 * time.Second}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status, err := pingOnce(ctx, client, url)
				if err != nil {
					pingLog.Warn("Health ping failed", "url", url, "error", err)
					continue
				}
				pingLog.Debug("Health ping", "url", url, "status", status)
			}
		}
	}()
}

func pingOnce(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}
