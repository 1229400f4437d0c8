package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	httpMW "github.com/yungbote/youthcare-backend/internal/http/middleware"
	"github.com/yungbote/youthcare-backend/internal/realtime"
	"github.com/yungbote/youthcare-backend/internal/realtime/bus"
	"github.com/yungbote/youthcare-backend/internal/services"
)

func newTestApp(t *testing.T, authLimit int) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	cfg := Config{
		AppEnv:          "test",
		JWTSecretKey:    "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		FrontendURL:     "http://localhost:3000",
		Timezone:        time.UTC,
	}
	clients := Clients{
		AlertBus:    bus.NewMemoryBus(log),
		AuthLimiter: httpMW.NewMemoryLimiter(authLimit, time.Minute),
		Mailer:      services.NewEmailService(log, services.EmailConfig{Dev: true}),
	}
	a := assemble(log, cfg, testutil.DB(t), clients, nil)
	t.Cleanup(a.Close)
	return a
}

type apiResult struct {
	status int
	body   map[string]any
}

func call(t *testing.T, a *App, method, path, token string, body any) apiResult {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(w, req)

	out := apiResult{status: w.Code}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out.body); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return out
}

func errCode(r apiResult) string {
	e, _ := r.body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func registerYouth(t *testing.T, a *App) (string, string) {
	t.Helper()
	email := "youth-" + uuid.NewString()[:8] + "@example.com"
	res := call(t, a, http.MethodPost, "/api/auth/register", "", map[string]any{
		"first_name":    "Riley",
		"last_name":     "Park",
		"email":         email,
		"password":      "secret123",
		"date_of_birth": "2011-05-01T00:00:00Z",
	})
	if res.status != http.StatusCreated {
		t.Fatalf("register: got=%d want=%d body=%v", res.status, http.StatusCreated, res.body)
	}
	token, _ := res.body["access_token"].(string)
	if token == "" {
		t.Fatalf("register: no access_token in %v", res.body)
	}
	return email, token
}

func TestYouthJournalFlow(t *testing.T) {
	a := newTestApp(t, 100)

	var mu sync.Mutex
	var events []realtime.Event
	if err := a.Clients.AlertBus.StartForwarder(context.Background(), func(ev realtime.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	email, token := registerYouth(t, a)

	me := call(t, a, http.MethodGet, "/api/auth/me", token, nil)
	if me.status != http.StatusOK {
		t.Fatalf("me: got=%d want=%d", me.status, http.StatusOK)
	}
	u, _ := me.body["user"].(map[string]any)
	if u["email"] != email || u["role"] != "youth" {
		t.Fatalf("me user: got=%v want email=%s role=youth", u, email)
	}
	if _, ok := u["password"]; ok {
		t.Fatalf("me leaked password hash")
	}

	created := call(t, a, http.MethodPost, "/api/journals", token, map[string]any{
		"title":   "Rough week",
		"content": "I feel hopeless about school",
	})
	if created.status != http.StatusCreated {
		t.Fatalf("create journal: got=%d want=%d body=%v", created.status, http.StatusCreated, created.body)
	}

	list := call(t, a, http.MethodGet, "/api/journals", token, nil)
	if list.status != http.StatusOK || list.body["total"] != float64(1) {
		t.Fatalf("list journals: got=%d total=%v want=200 total=1", list.status, list.body["total"])
	}

	mu.Lock()
	got := len(events)
	mu.Unlock()
	if got != 1 || events[0].Type != realtime.EventAlertCreated {
		t.Fatalf("alert events: got=%d want=1 %s", got, realtime.EventAlertCreated)
	}
}

func TestRouteGuards(t *testing.T) {
	a := newTestApp(t, 100)
	_, token := registerYouth(t, a)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		code   string
	}{
		{"health is public", http.MethodGet, "/api/health", "", http.StatusOK, ""},
		{"journals need auth", http.MethodGet, "/api/journals", "", http.StatusUnauthorized, "unauthorized"},
		{"garbage token", http.MethodGet, "/api/journals", "not-a-jwt", http.StatusUnauthorized, "unauthorized"},
		{"youth cannot list alerts", http.MethodGet, "/api/alerts", token, http.StatusForbidden, "forbidden"},
		{"youth cannot list users", http.MethodGet, "/api/users", token, http.StatusForbidden, "forbidden"},
		{"bad path id", http.MethodGet, "/api/journals/nope", token, http.StatusBadRequest, "invalid_id"},
		{"unknown journal", http.MethodGet, "/api/journals/" + uuid.NewString(), token, http.StatusNotFound, "journal_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := call(t, a, tc.method, tc.path, tc.token, nil)
			if res.status != tc.status {
				t.Fatalf("status: got=%d want=%d body=%v", res.status, tc.status, res.body)
			}
			if tc.code != "" && errCode(res) != tc.code {
				t.Fatalf("code: got=%q want=%q", errCode(res), tc.code)
			}
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	a := newTestApp(t, 100)
	_, token := registerYouth(t, a)

	if res := call(t, a, http.MethodPost, "/api/auth/logout", token, nil); res.status != http.StatusOK {
		t.Fatalf("logout: got=%d want=%d body=%v", res.status, http.StatusOK, res.body)
	}
	res := call(t, a, http.MethodGet, "/api/auth/me", token, nil)
	if res.status != http.StatusUnauthorized {
		t.Fatalf("me after logout: got=%d want=%d", res.status, http.StatusUnauthorized)
	}
}

func TestAuthRateLimit(t *testing.T) {
	a := newTestApp(t, 2)
	body := map[string]any{"email": "nobody@example.com", "password": "wrong-password"}
	for i := 0; i < 2; i++ {
		res := call(t, a, http.MethodPost, "/api/auth/login", "", body)
		if res.status != http.StatusUnauthorized {
			t.Fatalf("login %d: got=%d want=%d body=%v", i, res.status, http.StatusUnauthorized, res.body)
		}
	}
	res := call(t, a, http.MethodPost, "/api/auth/login", "", body)
	if res.status != http.StatusTooManyRequests || errCode(res) != "rate_limited" {
		t.Fatalf("third login: got=%d %q want=429 rate_limited", res.status, errCode(res))
	}
}
