package gamification

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/mission"
)

func fiveDayMission() *mission.Mission {
	return &mission.Mission{ID: uuid.New(), Duration: 5, DurationUnit: mission.UnitDays, RewardPoints: 120}
}

func TestTotalDaysAndEndDate(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		m       mission.Mission
		days    int
		wantEnd time.Time
	}{
		{mission.Mission{Duration: 5, DurationUnit: mission.UnitDays}, 5, start.AddDate(0, 0, 5)},
		{mission.Mission{Duration: 30, DurationUnit: mission.UnitMinutes}, 1, start.Add(30 * time.Minute)},
		{mission.Mission{Duration: 2, DurationUnit: mission.UnitHours}, 1, start.Add(2 * time.Hour)},
		{mission.Mission{Duration: 0, DurationUnit: mission.UnitDays}, 1, start.AddDate(0, 0, 1)},
	}
	for _, tc := range cases {
		m := tc.m
		if got := TotalDays(&m); got != tc.days {
			t.Fatalf("TotalDays(%d %s)=%d, want %d", m.Duration, m.DurationUnit, got, tc.days)
		}
		if got := EndDate(&m, start); !got.Equal(tc.wantEnd) {
			t.Fatalf("EndDate(%d %s)=%v, want %v", m.Duration, m.DurationUnit, got, tc.wantEnd)
		}
	}
}

func TestRecordCompletesAtHundred(t *testing.T) {
	now := time.Now()
	p := NewProgress(uuid.New(), fiveDayMission(), now)
	for day := 1; day <= 4; day++ {
		out, err := Record(p, DayUpdate{Day: day, Completed: true}, now)
		if err != nil || out.StatusChanged {
			t.Fatalf("Record(day %d): out=%+v err=%v", day, out, err)
		}
	}
	out, err := Record(p, DayUpdate{Day: 5, Completed: true}, now)
	if err != nil {
		t.Fatalf("Record(day 5): %v", err)
	}
	if p.CompletionPercentage != 100 || p.Status != mission.ProgressCompleted || p.CompletedAt == nil {
		t.Fatalf("progress=%+v", p)
	}
	if !out.Completed || !out.AwardXP {
		t.Fatalf("outcome=%+v, want completed with award", out)
	}

	if _, err := Record(p, DayUpdate{Day: 5, Completed: true}, now); !errors.Is(err, ErrTerminal) {
		t.Fatalf("Record on completed: err=%v, want ErrTerminal", err)
	}
}

func TestRecordFailsOnFinalDayBelowBar(t *testing.T) {
	now := time.Now()
	p := NewProgress(uuid.New(), fiveDayMission(), now)
	if _, err := Record(p, DayUpdate{Day: 1, Completed: true}, now); err != nil {
		t.Fatalf("Record(1): %v", err)
	}
	if _, err := Record(p, DayUpdate{Day: 2, Completed: true}, now); err != nil {
		t.Fatalf("Record(2): %v", err)
	}
	out, err := Record(p, DayUpdate{Day: 5, Completed: true}, now)
	if err != nil {
		t.Fatalf("Record(5): %v", err)
	}
	if p.CompletionPercentage != 60 || p.Status != mission.ProgressFailed || !out.Failed || out.AwardXP {
		t.Fatalf("progress=%+v outcome=%+v", p, out)
	}
	if p.CompletedAt == nil {
		t.Fatalf("CompletedAt should be stamped on failure")
	}
}

func TestRecordFinalDayAtBarStaysActive(t *testing.T) {
	now := time.Now()
	p := NewProgress(uuid.New(), fiveDayMission(), now)
	for _, day := range []int{1, 2, 3} {
		if _, err := Record(p, DayUpdate{Day: day, Completed: true}, now); err != nil {
			t.Fatalf("Record(%d): %v", day, err)
		}
	}
	if _, err := Record(p, DayUpdate{Day: 5, Completed: true}, now); err != nil {
		t.Fatalf("Record(5): %v", err)
	}
	if p.CompletionPercentage != 80 || p.Status != mission.ProgressActive {
		t.Fatalf("progress=%+v, want 80%% and active", p)
	}
}

func TestRecordReplacesDay(t *testing.T) {
	now := time.Now()
	p := NewProgress(uuid.New(), fiveDayMission(), now)
	if _, err := Record(p, DayUpdate{Day: 2, Completed: true, Note: "walked"}, now); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := Record(p, DayUpdate{Day: 2, Skipped: true}, now); err != nil {
		t.Fatalf("Record: %v", err)
	}
	d := p.Days[1]
	if d.Completed || !d.Skipped || d.Note != "" {
		t.Fatalf("day 2=%+v, want full replace", d)
	}
	if p.CompletionPercentage != 0 {
		t.Fatalf("CompletionPercentage=%d, want 0", p.CompletionPercentage)
	}
}

func TestRecordDayOutOfRange(t *testing.T) {
	p := NewProgress(uuid.New(), fiveDayMission(), time.Now())
	for _, day := range []int{0, 6, -1} {
		_, err := Record(p, DayUpdate{Day: day}, time.Now())
		var rangeErr ErrDayOutOfRange
		if !errors.As(err, &rangeErr) {
			t.Fatalf("Record(day %d): err=%v, want ErrDayOutOfRange", day, err)
		}
	}
}

func TestAwardOnlyOnce(t *testing.T) {
	now := time.Now()
	m := &mission.Mission{ID: uuid.New(), Duration: 10, DurationUnit: mission.UnitMinutes}
	p := NewProgress(uuid.New(), m, now)
	out, err := Record(p, DayUpdate{Day: 1, Completed: true}, now)
	if err != nil || !out.AwardXP {
		t.Fatalf("Record: out=%+v err=%v", out, err)
	}
	MarkAwarded(p, m.Points())
	if p.XPEarned != 100 || !p.XPAwarded {
		t.Fatalf("MarkAwarded: %+v", p)
	}
	// A completed record revisited with the guard set must not award again.
	p.Status = mission.ProgressActive
	out, _ = Record(p, DayUpdate{Day: 1, Completed: true}, now)
	if out.AwardXP {
		t.Fatalf("AwardXP granted twice")
	}
}
