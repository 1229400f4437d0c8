package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

// RequestLogger writes one line per request. Level follows the status class.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := requestFields(c, status, time.Since(start))
		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

func requestFields(c *gin.Context, status int, took time.Duration) []interface{} {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	size := c.Writer.Size()
	if size < 0 {
		size = 0
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"path", path,
		"status", status,
		"bytes", size,
		"client_ip", c.ClientIP(),
		"duration_ms", took.Milliseconds(),
	}
	ctx := c.Request.Context()
	if tr, ok := ctxutil.TraceFrom(ctx); ok {
		fields = append(fields, tr.LogFields()...)
	}
	if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		fields = append(fields, "user_id", rd.UserID.String(), "role", rd.Role)
	}
	if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
		fields = append(fields, "error", errs.String())
	}
	return fields
}
