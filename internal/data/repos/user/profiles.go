package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

// Youth profile timestamp columns that gate once-per-day actions.
const (
	ColDailyReward    = "last_daily_reward_claim"
	ColPHQ9Submission = "last_phq9_submission_date"
	ColGAD7Submission = "last_gad7_submission_date"
	ColMoodCheck      = "last_mood_check_date"
)

var stampColumns = map[string]bool{
	ColDailyReward:    true,
	ColPHQ9Submission: true,
	ColGAD7Submission: true,
	ColMoodCheck:      true,
}

type YouthProfileRepo interface {
	Create(dbc dbctx.Context, profile *types.YouthProfile) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.YouthProfile, error)
	GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.YouthProfile, error)
	List(dbc dbctx.Context, page pagination.Page) ([]*types.YouthProfile, int64, error)
	ListByCoach(dbc dbctx.Context, coachID uuid.UUID) ([]*types.YouthProfile, error)
	ListByParent(dbc dbctx.Context, parentID uuid.UUID) ([]*types.YouthProfile, error)
	Update(dbc dbctx.Context, userID uuid.UUID, updates map[string]interface{}) error
	AddPoints(dbc dbctx.Context, userID uuid.UUID, xp int) (int, error)
	SetLevel(dbc dbctx.Context, userID uuid.UUID, level int) error
	StampIfBefore(dbc dbctx.Context, userID uuid.UUID, column string, cutoff, now time.Time) (bool, error)
}

type youthProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewYouthProfileRepo(db *gorm.DB, baseLog *logger.Logger) YouthProfileRepo {
	return &youthProfileRepo{db: db, log: baseLog.With("repo", "YouthProfileRepo")}
}

func (r *youthProfileRepo) Create(dbc dbctx.Context, profile *types.YouthProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.Level == 0 {
		profile.Level = 1
	}
	return dbc.Conn(r.db).Create(profile).Error
}

func (r *youthProfileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.YouthProfile, error) {
	var p types.YouthProfile
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}

func (r *youthProfileRepo) GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.YouthProfile, error) {
	var results []*types.YouthProfile
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *youthProfileRepo) List(dbc dbctx.Context, page pagination.Page) ([]*types.YouthProfile, int64, error) {
	q := dbc.Conn(r.db).Model(&types.YouthProfile{})
	return pagination.Find[types.YouthProfile](q, page, "created_at DESC", "User")
}

func (r *youthProfileRepo) ListByCoach(dbc dbctx.Context, coachID uuid.UUID) ([]*types.YouthProfile, error) {
	return r.listLinked(dbc, "coach_id", coachID)
}

func (r *youthProfileRepo) ListByParent(dbc dbctx.Context, parentID uuid.UUID) ([]*types.YouthProfile, error) {
	return r.listLinked(dbc, "parent_id", parentID)
}

func (r *youthProfileRepo) listLinked(dbc dbctx.Context, column string, id uuid.UUID) ([]*types.YouthProfile, error) {
	var results []*types.YouthProfile
	if err := dbc.Conn(r.db).
		Preload("User").
		Where(column+" = ?", id).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *youthProfileRepo) Update(dbc dbctx.Context, userID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&types.YouthProfile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

// AddPoints increments total_points in place and returns the new total. The
// increment takes the row lock, so concurrent grants serialise.
func (r *youthProfileRepo) AddPoints(dbc dbctx.Context, userID uuid.UUID, xp int) (int, error) {
	conn := dbc.Conn(r.db)
	res := conn.Model(&types.YouthProfile{}).
		Where("user_id = ?", userID).
		Update("total_points", gorm.Expr("total_points + ?", xp))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("youth profile for %s: %w", userID, gorm.ErrRecordNotFound)
	}
	var total int
	if err := conn.Model(&types.YouthProfile{}).
		Where("user_id = ?", userID).
		Select("total_points").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *youthProfileRepo) SetLevel(dbc dbctx.Context, userID uuid.UUID, level int) error {
	return dbc.Conn(r.db).
		Model(&types.YouthProfile{}).
		Where("user_id = ?", userID).
		Update("level", level).Error
}

// StampIfBefore sets column to now only when it is unset or earlier than
// cutoff. It reports false when another write already stamped the column
// at or after cutoff.
func (r *youthProfileRepo) StampIfBefore(dbc dbctx.Context, userID uuid.UUID, column string, cutoff, now time.Time) (bool, error) {
	if !stampColumns[column] {
		return false, fmt.Errorf("youth profile: column %q is not stampable", column)
	}
	res := dbc.Conn(r.db).
		Model(&types.YouthProfile{}).
		Where("user_id = ?", userID).
		Where("("+column+" IS NULL OR "+column+" < ?)", cutoff).
		Update(column, now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type CoachProfileRepo interface {
	Create(dbc dbctx.Context, profile *types.CoachProfile) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.CoachProfile, error)
}

type coachProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoachProfileRepo(db *gorm.DB, baseLog *logger.Logger) CoachProfileRepo {
	return &coachProfileRepo{db: db, log: baseLog.With("repo", "CoachProfileRepo")}
}

func (r *coachProfileRepo) Create(dbc dbctx.Context, profile *types.CoachProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return dbc.Conn(r.db).Create(profile).Error
}

func (r *coachProfileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.CoachProfile, error) {
	var p types.CoachProfile
	if err := dbc.Conn(r.db).Where("user_id = ?", userID).Limit(1).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}

type ClinicianProfileRepo interface {
	Create(dbc dbctx.Context, profile *types.ClinicianProfile) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ClinicianProfile, error)
}

type clinicianProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClinicianProfileRepo(db *gorm.DB, baseLog *logger.Logger) ClinicianProfileRepo {
	return &clinicianProfileRepo{db: db, log: baseLog.With("repo", "ClinicianProfileRepo")}
}

func (r *clinicianProfileRepo) Create(dbc dbctx.Context, profile *types.ClinicianProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return dbc.Conn(r.db).Create(profile).Error
}

func (r *clinicianProfileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ClinicianProfile, error) {
	var p types.ClinicianProfile
	if err := dbc.Conn(r.db).Where("user_id = ?", userID).Limit(1).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}

type ParentProfileRepo interface {
	Create(dbc dbctx.Context, profile *types.ParentProfile) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ParentProfile, error)
}

type parentProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParentProfileRepo(db *gorm.DB, baseLog *logger.Logger) ParentProfileRepo {
	return &parentProfileRepo{db: db, log: baseLog.With("repo", "ParentProfileRepo")}
}

func (r *parentProfileRepo) Create(dbc dbctx.Context, profile *types.ParentProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.Relationship == "" {
		profile.Relationship = "parent"
	}
	return dbc.Conn(r.db).Create(profile).Error
}

func (r *parentProfileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ParentProfile, error) {
	var p types.ParentProfile
	if err := dbc.Conn(r.db).Where("user_id = ?", userID).Limit(1).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}
