package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

type Filter struct {
	Mood string
	From *time.Time
	To   *time.Time
}

// MoodCount is one row of the admin report aggregation.
type MoodCount struct {
	Mood         string  `json:"mood"`
	Count        int64   `json:"count"`
	AvgIntensity float64 `json:"avg_intensity"`
}

type MoodRepo interface {
	Create(dbc dbctx.Context, e *types.MoodEntry) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MoodEntry, error)
	Save(dbc dbctx.Context, e *types.MoodEntry) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID, filter Filter, page pagination.Page) ([]*types.MoodEntry, int64, error)
	ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error)
	Latest(dbc dbctx.Context, userID uuid.UUID) (*types.MoodEntry, error)
	CountByMood(dbc dbctx.Context, from, to time.Time) ([]MoodCount, error)
}

type moodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodRepo(db *gorm.DB, baseLog *logger.Logger) MoodRepo {
	return &moodRepo{db: db, log: baseLog.With("repo", "MoodRepo")}
}

func (r *moodRepo) Create(dbc dbctx.Context, e *types.MoodEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(e).Error
}

func (r *moodRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MoodEntry, error) {
	var e types.MoodEntry
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&e).Error; err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, nil
	}
	return &e, nil
}

func (r *moodRepo) Save(dbc dbctx.Context, e *types.MoodEntry) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Save(e).Error
}

func (r *moodRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.Conn(r.db).Where("id = ?", id).Delete(&types.MoodEntry{}).Error
}

func (r *moodRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, filter Filter, page pagination.Page) ([]*types.MoodEntry, int64, error) {
	q := dbc.Conn(r.db).Model(&types.MoodEntry{}).Where("user_id = ?", userID)
	if filter.Mood != "" {
		q = q.Where("mood = ?", filter.Mood)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}
	return pagination.Find[types.MoodEntry](q, page, "created_at DESC")
}

// ListSince returns entries created at or after since, oldest first.
func (r *moodRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodRepo) Latest(dbc dbctx.Context, userID uuid.UUID) (*types.MoodEntry, error) {
	var e types.MoodEntry
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&e).Error; err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, nil
	}
	return &e, nil
}

func (r *moodRepo) CountByMood(dbc dbctx.Context, from, to time.Time) ([]MoodCount, error) {
	var rows []MoodCount
	if err := dbc.Conn(r.db).
		Model(&types.MoodEntry{}).
		Select("mood, COUNT(*) AS count, AVG(intensity) AS avg_intensity").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Group("mood").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
