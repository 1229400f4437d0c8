package mission

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

type Filter struct {
	Query      string
	Category   string
	Difficulty string
	Tag        string
	Active     *bool
}

type MissionRepo interface {
	Create(dbc dbctx.Context, m *types.Mission) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Mission, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Mission, error)
	List(dbc dbctx.Context, filter Filter, page pagination.Page) ([]*types.Mission, int64, error)
	Save(dbc dbctx.Context, m *types.Mission) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	IncrementCompletions(dbc dbctx.Context, id uuid.UUID) error
}

type missionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMissionRepo(db *gorm.DB, baseLog *logger.Logger) MissionRepo {
	return &missionRepo{db: db, log: baseLog.With("repo", "MissionRepo")}
}

func (r *missionRepo) Create(dbc dbctx.Context, m *types.Mission) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(m).Error
}

func (r *missionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Mission, error) {
	var m types.Mission
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&m).Error; err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

func (r *missionRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Mission, error) {
	var results []*types.Mission
	if len(ids) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *missionRepo) List(dbc dbctx.Context, filter Filter, page pagination.Page) ([]*types.Mission, int64, error) {
	q := dbc.Conn(r.db).Model(&types.Mission{})
	if s := strings.ToLower(strings.TrimSpace(filter.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?)", like, like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q = q.Where("CAST(tags AS TEXT) LIKE ?", `%"`+tag+`"%`)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	return pagination.Find[types.Mission](q, page, "created_at DESC")
}

func (r *missionRepo) Save(dbc dbctx.Context, m *types.Mission) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Save(m).Error
}

// Delete removes the mission with its progress records and assignments.
func (r *missionRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.Conn(r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mission_id = ?", id).Delete(&types.MissionProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mission_id = ?", id).Delete(&types.MissionAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&types.Mission{}).Error
	})
}

func (r *missionRepo) IncrementCompletions(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.Conn(r.db).
		Model(&types.Mission{}).
		Where("id = ?", id).
		Update("completions", gorm.Expr("completions + ?", 1)).Error
}
