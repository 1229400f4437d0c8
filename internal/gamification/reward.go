package gamification

import "time"

const DailyRewardXP = 100

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Award is the gamification delta returned to clients after XP changes.
type Award struct {
	XPAwarded   int `json:"xp_awarded"`
	TotalPoints int `json:"total_points"`
	Level
}
