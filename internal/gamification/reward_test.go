package gamification

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"late evening", time.Date(2026, 5, 10, 23, 30, 0, 0, loc), time.Date(2026, 5, 10, 0, 0, 0, 0, loc)},
		{"already midnight", time.Date(2026, 5, 10, 0, 0, 0, 0, loc), time.Date(2026, 5, 10, 0, 0, 0, 0, loc)},
		// 03:00 UTC on the 11th is still the 10th in UTC-5.
		{"utc input", time.Date(2026, 5, 11, 3, 0, 0, 0, time.UTC), time.Date(2026, 5, 10, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StartOfDay(tc.in, loc); !got.Equal(tc.want) {
				t.Fatalf("StartOfDay(%v): got=%v want=%v", tc.in, got, tc.want)
			}
		})
	}
}
