package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

const sentryFlushTimeout = 2 * time.Second

// Recover turns a handler panic into a 500 envelope and reports it to
// Sentry with the request's trace ids.
func Recover(log *logger.Logger) gin.HandlerFunc {
	mwLog := log.With("middleware", "Recover")
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if errors.Is(asError(rec), http.ErrAbortHandler) {
				panic(rec)
			}
			hub := sentry.GetHubFromContext(c.Request.Context())
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
			}
			hub.WithScope(func(scope *sentry.Scope) {
				if tr, ok := ctxutil.TraceFrom(c.Request.Context()); ok {
					scope.SetTag("trace_id", tr.TraceID)
					scope.SetTag("request_id", tr.RequestID)
				}
				scope.SetTag("route", c.FullPath())
				hub.Recover(rec)
			})
			hub.Flush(sentryFlushTimeout)

			mwLog.Error("panic recovered", "panic", fmt.Sprint(rec), "path", c.Request.URL.Path)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
		}()
		c.Next()
	}
}

func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return nil
}
