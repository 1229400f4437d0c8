package assessment

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

type AssessmentRepo interface {
	Create(dbc dbctx.Context, a *types.Assessment) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Assessment, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, kind string, page pagination.Page) ([]*types.Assessment, int64, error)
	ListPendingReview(dbc dbctx.Context, page pagination.Page) ([]*types.Assessment, int64, error)
	SetReview(dbc dbctx.Context, id, reviewerID uuid.UUID, notes string, at time.Time) error
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) Create(dbc dbctx.Context, a *types.Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(a).Error
}

func (r *assessmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Assessment, error) {
	var a types.Assessment
	if err := dbc.Conn(r.db).
		Preload("User").
		Preload("Reviewer").
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

func (r *assessmentRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, kind string, page pagination.Page) ([]*types.Assessment, int64, error) {
	q := dbc.Conn(r.db).Model(&types.Assessment{}).Where("user_id = ?", userID)
	if kind != "" {
		q = q.Where("type = ?", kind)
	}
	return pagination.Find[types.Assessment](q, page, "completed_at DESC")
}

// ListPendingReview returns flagged assessments nobody has reviewed yet,
// oldest first so the queue drains in order.
func (r *assessmentRepo) ListPendingReview(dbc dbctx.Context, page pagination.Page) ([]*types.Assessment, int64, error) {
	q := dbc.Conn(r.db).Model(&types.Assessment{}).
		Where("flagged_for_review = ? AND reviewed_by IS NULL", true)
	return pagination.Find[types.Assessment](q, page, "completed_at ASC", "User")
}

func (r *assessmentRepo) SetReview(dbc dbctx.Context, id, reviewerID uuid.UUID, notes string, at time.Time) error {
	res := dbc.Conn(r.db).
		Model(&types.Assessment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reviewed_by":  reviewerID,
			"review_date":  at,
			"review_notes": notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
