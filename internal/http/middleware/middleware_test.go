package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/observability"
	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

type fakeVerifier struct {
	tokens map[string]ctxutil.RequestData
}

func (f fakeVerifier) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	rd, ok := f.tokens[token]
	if !ok {
		return nil, errors.New("token is expired")
	}
	return ctxutil.WithRequestData(ctx, &rd), nil
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope %q: %v", rec.Body.String(), err)
	}
	return env.Error.Code
}

func TestRequireAuthAndPermission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	youthID, coachID := uuid.New(), uuid.New()
	am := NewAuthMiddleware(logger.Nop(), fakeVerifier{tokens: map[string]ctxutil.RequestData{
		"youth-token": {UserID: youthID, Role: user.RoleYouth},
		"coach-token": {UserID: coachID, Role: user.RoleCoach},
	}})

	r := gin.New()
	r.GET("/missions/mine", am.RequireAuth(), RequirePermission(policy.PlayMission), func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.String(http.StatusOK, rd.UserID.String())
	})
	r.GET("/users", am.RequireAuth(), RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		path   string
		header string
		status int
		code   string
	}{
		{"no header", "/missions/mine", "", http.StatusUnauthorized, "unauthorized"},
		{"not bearer", "/missions/mine", "Basic abc", http.StatusUnauthorized, "unauthorized"},
		{"unknown token", "/missions/mine", "Bearer stale", http.StatusUnauthorized, "unauthorized"},
		{"coach cannot play", "/missions/mine", "Bearer coach-token", http.StatusForbidden, "forbidden"},
		{"youth plays", "/missions/mine", "bearer youth-token", http.StatusOK, ""},
		{"coach is not admin", "/users", "Bearer coach-token", http.StatusForbidden, "forbidden"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.code != "" {
				if got := errorCode(t, rec); got != tc.code {
					t.Fatalf("code: got=%q want=%q", got, tc.code)
				}
			}
			if tc.status == http.StatusOK && rec.Body.String() != youthID.String() {
				t.Fatalf("request data user: got=%q want=%q", rec.Body.String(), youthID)
			}
		})
	}
}

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	for i, want := range []bool{true, true, false} {
		ok, _, err := l.Allow(context.Background(), "1.2.3.4")
		if err != nil || ok != want {
			t.Fatalf("hit %d: got=%v err=%v want=%v", i+1, ok, err, want)
		}
	}
	if ok, _, _ := l.Allow(context.Background(), "5.6.7.8"); !ok {
		t.Fatalf("other key limited")
	}

	now = now.Add(time.Minute)
	ok, left, _ := l.Allow(context.Background(), "1.2.3.4")
	if !ok || left != 1 {
		t.Fatalf("after window: got=%v remaining=%d want=true 1", ok, left)
	}

	now = now.Add(2 * time.Minute)
	if n := l.sweep(); n != 2 {
		t.Fatalf("sweep removed %d windows, want 2", n)
	}
}

func TestLimiterWindowFallsBackToDefault(t *testing.T) {
	for _, w := range []time.Duration{0, -time.Second} {
		l := NewMemoryLimiter(1, w)
		if l.window != defaultRateWindow {
			t.Fatalf("memory window(%v): got=%v want=%v", w, l.window, defaultRateWindow)
		}
		now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }
		for i, want := range []bool{true, false, false} {
			if ok, _, _ := l.Allow(context.Background(), "1.2.3.4"); ok != want {
				t.Fatalf("window(%v) hit %d: got=%v want=%v", w, i+1, ok, want)
			}
		}
		if rl := NewRedisLimiter(nil, 1, w).(*redisLimiter); rl.window != defaultRateWindow {
			t.Fatalf("redis window(%v): got=%v want=%v", w, rl.window, defaultRateWindow)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/login", RateLimit(logger.Nop(), NewMemoryLimiter(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: got=%d want=%d", i+1, rec.Code, want)
		}
		if want == http.StatusTooManyRequests {
			if got := errorCode(t, rec); got != "rate_limited" {
				t.Fatalf("code: got=%q want=rate_limited", got)
			}
			if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
				t.Fatalf("remaining header: got=%q want=0", got)
			}
		}
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/api/health", func(c *gin.Context) {
		tr, _ := ctxutil.TraceFrom(c.Request.Context())
		c.String(http.StatusOK, tr.TraceID+"|"+tr.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(headerRequestID, "req-42")
	req.Header.Set(headerTraceID, "trace-7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Body.String() != "trace-7|req-42" {
		t.Fatalf("trace data: got=%q want=%q", rec.Body.String(), "trace-7|req-42")
	}
	if rec.Header().Get(headerRequestID) != "req-42" || rec.Header().Get(headerTraceID) != "trace-7" {
		t.Fatalf("headers not echoed: %v", rec.Header())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if _, err := uuid.Parse(rec.Header().Get(headerRequestID)); err != nil {
		t.Fatalf("minted request id %q: %v", rec.Header().Get(headerRequestID), err)
	}
	if rec.Header().Get(headerTraceID) == "" {
		t.Fatalf("trace id not minted")
	}
}

func TestRecover(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachRequestContext(), Recover(logger.Nop()))
	r.GET("/boom", func(c *gin.Context) {
		panic("nil map write")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d want=500", rec.Code)
	}
	if got := errorCode(t, rec); got != "internal" {
		t.Fatalf("code: got=%q want=internal", got)
	}
}

func TestMetricsLabelsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.Init(true)
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/journals/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/journals/" + uuid.NewString(), "/api/health", "/wp-login.php"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`route="/api/journals/:id"`, `route="unmatched"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, `route="/api/health"`) {
		t.Fatalf("health route should not be recorded:\n%s", out)
	}
}

func TestMetricsNilIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusTeapot)
	}
}
