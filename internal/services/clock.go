package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/gamification"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
)

// Clock supplies the current time and the zone calendar-day rules are
// evaluated in.
type Clock struct {
	NowFunc  func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{NowFunc: time.Now, Location: loc}
}

func (c Clock) Now() time.Time {
	if c.NowFunc == nil {
		return time.Now().UTC()
	}
	return c.NowFunc().UTC()
}

// Today is local midnight of the current day, as an instant.
func (c Clock) Today() time.Time {
	return gamification.StartOfDay(c.Now(), c.Location).UTC()
}

// inTx runs fn inside a transaction, nesting as a savepoint when dbc already
// carries one.
func inTx(dbc dbctx.Context, db *gorm.DB, fn func(dbctx.Context) error) error {
	return dbc.Conn(db).Transaction(func(tx *gorm.DB) error {
		return fn(dbc.WithTx(tx))
	})
}
