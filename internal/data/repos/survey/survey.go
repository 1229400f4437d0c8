package survey

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

type SurveyRepo interface {
	UpsertByTitle(dbc dbctx.Context, s *types.Survey) (created bool, err error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Survey, error)
	ListActive(dbc dbctx.Context) ([]*types.Survey, error)
}

type surveyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSurveyRepo(db *gorm.DB, baseLog *logger.Logger) SurveyRepo {
	return &surveyRepo{db: db, log: baseLog.With("repo", "SurveyRepo")}
}

// UpsertByTitle inserts s or refreshes the stored survey with the same
// title, keeping its id so existing assignments stay attached.
func (r *surveyRepo) UpsertByTitle(dbc dbctx.Context, s *types.Survey) (bool, error) {
	conn := dbc.Conn(r.db)
	var existing types.Survey
	if err := conn.Where("title = ?", s.Title).Limit(1).Find(&existing).Error; err != nil {
		return false, err
	}
	if existing.ID == uuid.Nil {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		return true, conn.Create(s).Error
	}
	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	return false, conn.Model(&existing).Updates(map[string]interface{}{
		"description": s.Description,
		"version":     s.Version,
		"is_active":   s.IsActive,
		"questions":   s.Questions,
	}).Error
}

func (r *surveyRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Survey, error) {
	var s types.Survey
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&s).Error; err != nil {
		return nil, err
	}
	if s.ID == uuid.Nil {
		return nil, nil
	}
	return &s, nil
}

func (r *surveyRepo) ListActive(dbc dbctx.Context) ([]*types.Survey, error) {
	var results []*types.Survey
	if err := dbc.Conn(r.db).
		Where("is_active = ?", true).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type AssignmentRepo interface {
	Create(dbc dbctx.Context, a *types.SurveyAssignment) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SurveyAssignment, error)
	GetOpen(dbc dbctx.Context, surveyID, youthID uuid.UUID) (*types.SurveyAssignment, error)
	ListByYouth(dbc dbctx.Context, youthID uuid.UUID, statuses []string) ([]*types.SurveyAssignment, error)
	Save(dbc dbctx.Context, a *types.SurveyAssignment) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{db: db, log: baseLog.With("repo", "SurveyAssignmentRepo")}
}

func (r *assignmentRepo) Create(dbc dbctx.Context, a *types.SurveyAssignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(a).Error
}

func (r *assignmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SurveyAssignment, error) {
	var a types.SurveyAssignment
	if err := dbc.Conn(r.db).
		Preload("Survey").
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

func (r *assignmentRepo) GetOpen(dbc dbctx.Context, surveyID, youthID uuid.UUID) (*types.SurveyAssignment, error) {
	var a types.SurveyAssignment
	if err := dbc.Conn(r.db).
		Where("survey_id = ? AND youth_id = ? AND status IN ?", surveyID, youthID, []string{"assigned", "in-progress"}).
		Limit(1).
		Find(&a).Error; err != nil {
		return nil, err
	}
	if a.ID == uuid.Nil {
		return nil, nil
	}
	return &a, nil
}

// ListByYouth returns every assignment when statuses is empty.
func (r *assignmentRepo) ListByYouth(dbc dbctx.Context, youthID uuid.UUID, statuses []string) ([]*types.SurveyAssignment, error) {
	var results []*types.SurveyAssignment
	q := dbc.Conn(r.db).Preload("Survey").Where("youth_id = ?", youthID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("assigned_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assignmentRepo) Save(dbc dbctx.Context, a *types.SurveyAssignment) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Save(a).Error
}
