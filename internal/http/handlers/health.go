package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	db    Pinger
	start time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, start: time.Now()}
}

// GET /api/health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, database := http.StatusOK, "ok"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db(ctx); err != nil {
			status, database = http.StatusServiceUnavailable, "unavailable"
		}
	}
	c.JSON(status, gin.H{
		"status":         http.StatusText(status),
		"database":       database,
		"uptime_seconds": int(time.Since(h.start).Seconds()),
	})
}
