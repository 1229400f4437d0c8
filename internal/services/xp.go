package services

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/gamification"
	"github.com/yungbote/youthcare-backend/internal/observability"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
)

// grantXP adds xp to the youth's total in place and stores the level the new
// total maps to.
func grantXP(dbc dbctx.Context, youth repos.YouthProfileRepo, userID uuid.UUID, xp int) (gamification.Award, error) {
	total, err := youth.AddPoints(dbc, userID, xp)
	if err != nil {
		return gamification.Award{}, fmt.Errorf("add points: %w", err)
	}
	level := gamification.LevelFor(total)
	if err := youth.SetLevel(dbc, userID, level.Level); err != nil {
		return gamification.Award{}, fmt.Errorf("set level: %w", err)
	}
	observability.Current().AddXP(strconv.Itoa(level.Level), xp)
	return gamification.Award{XPAwarded: xp, TotalPoints: total, Level: level}, nil
}
