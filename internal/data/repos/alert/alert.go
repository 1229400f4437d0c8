package alert

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

type Filter struct {
	Status   string
	Severity string
	Type     string
	YouthID  *uuid.UUID
}

type Summary struct {
	Total          int64            `json:"total"`
	Active         int64            `json:"active"`
	CriticalActive int64            `json:"critical_active"`
	HighActive     int64            `json:"high_active"`
	ByType         map[string]int64 `json:"by_type"`
}

type AlertRepo interface {
	Create(dbc dbctx.Context, a *types.Alert) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Alert, error)
	GetByTrigger(dbc dbctx.Context, triggerID uuid.UUID, triggerModel string) (*types.Alert, error)
	List(dbc dbctx.Context, filter Filter, page pagination.Page) ([]*types.Alert, int64, error)
	Summary(dbc dbctx.Context) (*Summary, error)
	Save(dbc dbctx.Context, a *types.Alert) error
	AddAction(dbc dbctx.Context, action *types.AlertAction) error
}

type alertRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertRepo(db *gorm.DB, baseLog *logger.Logger) AlertRepo {
	return &alertRepo{db: db, log: baseLog.With("repo", "AlertRepo")}
}

func (r *alertRepo) Create(dbc dbctx.Context, a *types.Alert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(a).Error
}

// GetByID loads the alert with its youth, assignee and action log.
func (r *alertRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Alert, error) {
	var a types.Alert
	if err := dbc.Conn(r.db).
		Preload("Youth").
		Preload("Assignee").
		Preload("Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("taken_at ASC, id ASC")
		}).
		Where("id = ?", id).
		Limit(1).
		Find(&a).Error; err != nil {
		return nil, err
	}
	if a.ID == uuid.Nil {
		return nil, nil
	}
	return &a, nil
}

func (r *alertRepo) GetByTrigger(dbc dbctx.Context, triggerID uuid.UUID, triggerModel string) (*types.Alert, error) {
	var a types.Alert
	if err := dbc.Conn(r.db).
		Where("trigger_id = ? AND trigger_model = ?", triggerID, triggerModel).
		Limit(1).
		Find(&a).Error; err != nil {
		return nil, err
	}
	if a.ID == uuid.Nil {
		return nil, nil
	}
	return &a, nil
}

func (r *alertRepo) List(dbc dbctx.Context, filter Filter, page pagination.Page) ([]*types.Alert, int64, error) {
	q := dbc.Conn(r.db).Model(&types.Alert{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		q = q.Where("severity = ?", filter.Severity)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.YouthID != nil {
		q = q.Where("youth_id = ?", *filter.YouthID)
	}
	return pagination.Find[types.Alert](q, page, "created_at DESC", "Youth", "Assignee")
}

func (r *alertRepo) Summary(dbc dbctx.Context) (*Summary, error) {
	conn := dbc.Conn(r.db)
	out := &Summary{ByType: map[string]int64{}}

	counts := []struct {
		dst   *int64
		where string
		args  []interface{}
	}{
		{&out.Total, "1 = 1", nil},
		{&out.Active, "status = ?", []interface{}{"active"}},
		{&out.CriticalActive, "status = ? AND severity = ?", []interface{}{"active", "critical"}},
		{&out.HighActive, "status = ? AND severity = ?", []interface{}{"active", "high"}},
	}
	for _, c := range counts {
		if err := conn.Model(&types.Alert{}).Where(c.where, c.args...).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var rows []struct {
		Type  string
		Count int64
	}
	if err := conn.Model(&types.Alert{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out.ByType[row.Type] = row.Count
	}
	return out, nil
}

func (r *alertRepo) Save(dbc dbctx.Context, a *types.Alert) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Save(a).Error
}

// AddAction appends to the alert's log. Actions are never updated.
func (r *alertRepo) AddAction(dbc dbctx.Context, action *types.AlertAction) error {
	if action.ID == uuid.Nil {
		action.ID = uuid.New()
	}
	return dbc.Conn(r.db).Create(action).Error
}
