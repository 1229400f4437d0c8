// Package gamification implements the XP ladder, daily reward rule and the
// mission progress state machine.
package gamification

// Ladder is the XP threshold table. Base[i] is the threshold of level i+1;
// every level past len(Base) adds Step over the previous threshold.
type Ladder struct {
	Base []int
	Step int
}

var DefaultLadder = Ladder{Base: []int{0, 300, 500, 1000}, Step: 500}

type Level struct {
	Level            int `json:"level"`
	CurrentThreshold int `json:"current_threshold"`
	NextThreshold    int `json:"next_threshold"`
}

func (l Ladder) threshold(level int) int {
	if level <= len(l.Base) {
		return l.Base[level-1]
	}
	return l.Base[len(l.Base)-1] + (level-len(l.Base))*l.Step
}

// For returns the largest level whose threshold is <= xp, with that level's
// threshold and the next one. Negative xp is treated as 0.
func (l Ladder) For(xp int) Level {
	if xp < 0 {
		xp = 0
	}
	level := 1
	for xp >= l.threshold(level+1) {
		level++
	}
	return Level{Level: level, CurrentThreshold: l.threshold(level), NextThreshold: l.threshold(level + 1)}
}

func LevelFor(xp int) Level { return DefaultLadder.For(xp) }
