package mission

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

type ProgressRepo interface {
	Create(dbc dbctx.Context, p *types.MissionProgress) error
	GetActive(dbc dbctx.Context, userID, missionID uuid.UUID) (*types.MissionProgress, error)
	GetLatest(dbc dbctx.Context, userID, missionID uuid.UUID) (*types.MissionProgress, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, status string, page pagination.Page) ([]*types.MissionProgress, int64, error)
	Leaderboard(dbc dbctx.Context, missionID uuid.UUID, limit int) ([]*types.MissionProgress, error)
	Save(dbc dbctx.Context, p *types.MissionProgress) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "MissionProgressRepo")}
}

func (r *progressRepo) Create(dbc dbctx.Context, p *types.MissionProgress) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(p).Error
}

func (r *progressRepo) GetActive(dbc dbctx.Context, userID, missionID uuid.UUID) (*types.MissionProgress, error) {
	return r.first(dbc.Conn(r.db).Where("user_id = ? AND mission_id = ? AND status = ?", userID, missionID, "active"))
}

// GetLatest returns the most recent attempt in any status.
func (r *progressRepo) GetLatest(dbc dbctx.Context, userID, missionID uuid.UUID) (*types.MissionProgress, error) {
	return r.first(dbc.Conn(r.db).
		Where("user_id = ? AND mission_id = ?", userID, missionID).
		Order("start_date DESC"))
}

func (r *progressRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, status string, page pagination.Page) ([]*types.MissionProgress, int64, error) {
	q := dbc.Conn(r.db).Model(&types.MissionProgress{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return pagination.Find[types.MissionProgress](q, page, "start_date DESC", "Mission")
}

// Leaderboard lists completed attempts, earliest finisher first.
func (r *progressRepo) Leaderboard(dbc dbctx.Context, missionID uuid.UUID, limit int) ([]*types.MissionProgress, error) {
	var results []*types.MissionProgress
	if err := dbc.Conn(r.db).
		Preload("User").
		Where("mission_id = ? AND status = ?", missionID, "completed").
		Order("completed_at ASC").
		Order("xp_earned DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *progressRepo) Save(dbc dbctx.Context, p *types.MissionProgress) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Save(p).Error
}

func (r *progressRepo) first(q *gorm.DB) (*types.MissionProgress, error) {
	var p types.MissionProgress
	if err := q.Limit(1).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}
