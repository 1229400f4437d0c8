package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

var errForbidden = errors.New("forbidden")

// RequireRole admits only callers holding one of roles. It must run after
// RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		for _, r := range roles {
			if r == rd.Role {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "forbidden", errForbidden)
	}
}

// RequirePermission rejects callers whose role can never be granted act.
// Ownership checks stay in the services.
func RequirePermission(act policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		if !policy.MayAttempt(rd.Role, act) {
			response.AbortError(c, http.StatusForbidden, "forbidden", errForbidden)
			return
		}
		c.Next()
	}
}
