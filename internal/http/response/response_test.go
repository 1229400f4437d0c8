package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", apierr.New(http.StatusBadRequest, "invalid_mood", errors.New("mood must be one of the five levels")), http.StatusBadRequest, "invalid_mood", "mood must be one of the five levels"},
		{"wrapped", fmt.Errorf("log mood: %w", apierr.New(http.StatusNotFound, "mood_not_found", errors.New("mood entry not found"))), http.StatusNotFound, "mood_not_found", "mood entry not found"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "internal", "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			RespondAPIError(c, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.status)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.code || env.Error.Message != tc.message {
				t.Fatalf("envelope: got=%+v want code=%q message=%q", env.Error, tc.code, tc.message)
			}
		})
	}
}
