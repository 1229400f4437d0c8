package gamification

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/mission"
)

// FailBelow is the completion percentage a mission must reach by its final
// day to avoid failing.
const FailBelow = 80

var ErrTerminal = errors.New("mission progress is no longer active")

type ErrDayOutOfRange struct{ Day, Total int }

func (e ErrDayOutOfRange) Error() string {
	return fmt.Sprintf("day %d is outside 1..%d", e.Day, e.Total)
}

// TotalDays is the number of progress slots a mission gets. Only day-based
// missions get one slot per day.
func TotalDays(m *mission.Mission) int {
	if m.DurationUnit == mission.UnitDays && m.Duration > 1 {
		return m.Duration
	}
	return 1
}

// EndDate adds the mission duration to start in its declared unit.
func EndDate(m *mission.Mission, start time.Time) time.Time {
	n := m.Duration
	if n < 1 {
		n = 1
	}
	switch m.DurationUnit {
	case mission.UnitMinutes:
		return start.Add(time.Duration(n) * time.Minute)
	case mission.UnitHours:
		return start.Add(time.Duration(n) * time.Hour)
	default:
		return start.AddDate(0, 0, n)
	}
}

// NewProgress starts an active attempt with every day pending.
func NewProgress(userID uuid.UUID, m *mission.Mission, start time.Time) *mission.Progress {
	total := TotalDays(m)
	days := make([]mission.DayRecord, total)
	for i := range days {
		days[i] = mission.DayRecord{Day: i + 1}
	}
	return &mission.Progress{
		UserID:    userID,
		MissionID: m.ID,
		StartDate: start,
		EndDate:   EndDate(m, start),
		Days:      days,
		Status:    mission.ProgressActive,
	}
}

func Percentage(days []mission.DayRecord) int {
	if len(days) == 0 {
		return 0
	}
	done := 0
	for _, d := range days {
		if d.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(days))))
}

type DayUpdate struct {
	Day       int
	Completed bool
	Skipped   bool
	Note      string
}

// Outcome describes what a single day update did to the progress record.
type Outcome struct {
	StatusChanged bool
	Completed     bool
	Failed        bool
	// AwardXP is set exactly once per record: the first time it reaches
	// completed with xp_awarded still false.
	AwardXP bool
}

// Record overwrites the given day, recomputes the percentage and applies the
// terminal transitions. p is mutated in place.
func Record(p *mission.Progress, u DayUpdate, now time.Time) (Outcome, error) {
	if p.Status != mission.ProgressActive {
		return Outcome{}, ErrTerminal
	}
	total := p.TotalDays()
	if u.Day < 1 || u.Day > total {
		return Outcome{}, ErrDayOutOfRange{Day: u.Day, Total: total}
	}

	at := now
	days := append([]mission.DayRecord(nil), p.Days...)
	days[u.Day-1] = mission.DayRecord{
		Day:        u.Day,
		Completed:  u.Completed,
		Skipped:    u.Skipped,
		Note:       u.Note,
		RecordedAt: &at,
	}
	p.Days = days
	p.CompletionPercentage = Percentage(days)

	var out Outcome
	switch {
	case p.CompletionPercentage == 100:
		p.Status = mission.ProgressCompleted
		p.CompletedAt = &at
		out.StatusChanged, out.Completed = true, true
		out.AwardXP = !p.XPAwarded
	case u.Day == total && p.CompletionPercentage < FailBelow:
		p.Status = mission.ProgressFailed
		p.CompletedAt = &at
		out.StatusChanged, out.Failed = true, true
	}
	return out, nil
}

// MarkAwarded records the completion reward on p.
func MarkAwarded(p *mission.Progress, points int) {
	p.XPEarned = points
	p.XPAwarded = true
}
