package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Minute},
		{"90", 90 * time.Second},
		{"15m", 15 * time.Minute},
		{"soon", time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Setenv("YC_TEST_DURATION", tc.raw)
			if got := Duration("YC_TEST_DURATION", time.Minute, nil); got != tc.want {
				t.Fatalf("Duration(%q)=%v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestIntBoolList(t *testing.T) {
	t.Setenv("YC_TEST_INT", "42")
	t.Setenv("YC_TEST_BAD_INT", "forty")
	t.Setenv("YC_TEST_BOOL", "off")
	t.Setenv("YC_TEST_LIST", " a, ,b ")

	if got := Int("YC_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("Int=%d, want 42", got)
	}
	if got := Int("YC_TEST_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int(bad)=%d, want 7", got)
	}
	if got := Bool("YC_TEST_BOOL", true, nil); got {
		t.Fatalf("Bool(off)=true, want false")
	}
	if got := List("YC_TEST_LIST", nil, nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List=%v, want [a b]", got)
	}
	if got := String("YC_TEST_UNSET", "fallback", nil); got != "fallback" {
		t.Fatalf("String(unset)=%q", got)
	}
}
