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

// OpenStatuses are the assignment states that block a second assignment.
var OpenStatuses = []string{"assigned", "in-progress"}

type AssignmentRepo interface {
	Create(dbc dbctx.Context, a *types.MissionAssignment) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MissionAssignment, error)
	GetOpen(dbc dbctx.Context, missionID, youthID uuid.UUID) (*types.MissionAssignment, error)
	ListByYouth(dbc dbctx.Context, youthID uuid.UUID, statuses []string, page pagination.Page) ([]*types.MissionAssignment, int64, error)
	ListByAssigner(dbc dbctx.Context, assignerID uuid.UUID, page pagination.Page) ([]*types.MissionAssignment, int64, error)
	Save(dbc dbctx.Context, a *types.MissionAssignment) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{db: db, log: baseLog.With("repo", "MissionAssignmentRepo")}
}

func (r *assignmentRepo) Create(dbc dbctx.Context, a *types.MissionAssignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(a).Error
}

func (r *assignmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MissionAssignment, error) {
	var a types.MissionAssignment
	if err := dbc.Conn(r.db).
		Preload("Mission").
		Preload("Youth").
		Preload("Assigner").
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

func (r *assignmentRepo) GetOpen(dbc dbctx.Context, missionID, youthID uuid.UUID) (*types.MissionAssignment, error) {
	var a types.MissionAssignment
	if err := dbc.Conn(r.db).
		Where("mission_id = ? AND youth_id = ? AND status IN ?", missionID, youthID, OpenStatuses).
		Limit(1).
		Find(&a).Error; err != nil {
		return nil, err
	}
	if a.ID == uuid.Nil {
		return nil, nil
	}
	return &a, nil
}

func (r *assignmentRepo) ListByYouth(dbc dbctx.Context, youthID uuid.UUID, statuses []string, page pagination.Page) ([]*types.MissionAssignment, int64, error) {
	q := dbc.Conn(r.db).Model(&types.MissionAssignment{}).Where("youth_id = ?", youthID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	return pagination.Find[types.MissionAssignment](q, page, "assigned_at DESC", "Mission", "Assigner")
}

func (r *assignmentRepo) ListByAssigner(dbc dbctx.Context, assignerID uuid.UUID, page pagination.Page) ([]*types.MissionAssignment, int64, error) {
	q := dbc.Conn(r.db).Model(&types.MissionAssignment{}).Where("assigned_by = ?", assignerID)
	return pagination.Find[types.MissionAssignment](q, page, "assigned_at DESC", "Mission", "Youth")
}

func (r *assignmentRepo) Save(dbc dbctx.Context, a *types.MissionAssignment) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Save(a).Error
}

func (r *assignmentRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.Conn(r.db).Where("id = ?", id).Delete(&types.MissionAssignment{}).Error
}
