package gamification

import "testing"

func TestLevelFor(t *testing.T) {
	cases := []struct {
		xp               int
		level, cur, next int
	}{
		{-50, 1, 0, 300},
		{0, 1, 0, 300},
		{299, 1, 0, 300},
		{300, 2, 300, 500},
		{499, 2, 300, 500},
		{500, 3, 500, 1000},
		{1000, 4, 1000, 1500},
		{1499, 4, 1000, 1500},
		{1500, 5, 1500, 2000},
		{2750, 7, 2500, 3000},
	}
	for _, tc := range cases {
		got := LevelFor(tc.xp)
		if got.Level != tc.level || got.CurrentThreshold != tc.cur || got.NextThreshold != tc.next {
			t.Fatalf("LevelFor(%d)=%+v, want {%d %d %d}", tc.xp, got, tc.level, tc.cur, tc.next)
		}
	}
}

func TestLevelForMonotonicAndBounded(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 10000; xp += 7 {
		got := LevelFor(xp)
		if got.Level < prev {
			t.Fatalf("LevelFor(%d).Level=%d dropped below %d", xp, got.Level, prev)
		}
		if got.CurrentThreshold > xp || xp >= got.NextThreshold {
			t.Fatalf("LevelFor(%d)=%+v: xp outside [current, next)", xp, got)
		}
		prev = got.Level
	}
}
