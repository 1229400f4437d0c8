package logger

import (
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeKVs(t *testing.T) {
	redactOnce.Do(func() {})
	redactionEnabled = true
	hashSalt = "salt"

	uid := uuid.New()
	out := sanitizeKVs([]interface{}{
		"path", "/api/journals",
		"access_token", "abc",
		"content", "I feel hopeless",
		"user_id", uid,
		"dangling",
	})

	want := map[string]interface{}{
		"path":         "/api/journals",
		"access_token": "[REDACTED]",
		"content":      "[REDACTED]",
	}
	for i := 0; i+1 < len(out); i += 2 {
		k := out[i].(string)
		if w, ok := want[k]; ok && out[i+1] != w {
			t.Fatalf("sanitizeKVs(%q)=%v, want %v", k, out[i+1], w)
		}
		if k == "user_id" {
			s, _ := out[i+1].(string)
			if s == uid.String() || len(s) != len("hash:")+12 {
				t.Fatalf("sanitizeKVs(user_id)=%q, want hashed value", s)
			}
		}
	}
	if last := out[len(out)-1]; last != "dangling" {
		t.Fatalf("trailing key dropped: got=%v", last)
	}
}

func TestLooksLikeJWT(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig", true},
		{"not.a.jwt", false},
		{"plain", false},
	}
	for _, tc := range cases {
		if got := looksLikeJWT(tc.in); got != tc.want {
			t.Fatalf("looksLikeJWT(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}
