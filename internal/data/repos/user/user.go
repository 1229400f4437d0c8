package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

type UserFilter struct {
	Query    string
	Role     string
	IsActive *bool
}

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	GetByResetToken(dbc dbctx.Context, tokenHash string, now time.Time) (*types.User, error)
	List(dbc dbctx.Context, filter UserFilter, page pagination.Page) ([]*types.User, int64, error)
	ListByRole(dbc dbctx.Context, role string) ([]*types.User, error)
	Update(dbc dbctx.Context, userID uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, userID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		u.Email = NormalizeEmail(u.Email)
	}
	if err := dbc.Conn(ur.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := dbc.Conn(ur.db).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns nil, nil when no user has the id.
func (ur *userRepo) GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	return ur.first(dbc, "id = ?", userID)
}

func (ur *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	return ur.first(dbc, "email = ?", NormalizeEmail(email))
}

func (ur *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := dbc.Conn(ur.db).
		Model(&types.User{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) GetByResetToken(dbc dbctx.Context, tokenHash string, now time.Time) (*types.User, error) {
	return ur.first(dbc, "reset_password_token = ? AND reset_password_expire > ?", tokenHash, now)
}

func (ur *userRepo) List(dbc dbctx.Context, filter UserFilter, page pagination.Page) ([]*types.User, int64, error) {
	q := dbc.Conn(ur.db).Model(&types.User{})
	if s := strings.ToLower(strings.TrimSpace(filter.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	return pagination.Find[types.User](q, page, "created_at DESC")
}

func (ur *userRepo) ListByRole(dbc dbctx.Context, role string) ([]*types.User, error) {
	var results []*types.User
	if err := dbc.Conn(ur.db).
		Where("role = ? AND is_active = ?", role, true).
		Order("last_name ASC, first_name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Update(dbc dbctx.Context, userID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.Conn(ur.db).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

// ownedRows lists the tables whose rows belong to a user and go with it.
var ownedRows = []struct {
	model  interface{}
	column string
}{
	{&types.UserToken{}, "user_id"},
	{&types.YouthProfile{}, "user_id"},
	{&types.CoachProfile{}, "user_id"},
	{&types.ClinicianProfile{}, "user_id"},
	{&types.ParentProfile{}, "user_id"},
	{&types.Journal{}, "user_id"},
	{&types.MoodEntry{}, "user_id"},
	{&types.Assessment{}, "user_id"},
	{&types.MissionProgress{}, "user_id"},
	{&types.MissionAssignment{}, "youth_id"},
	{&types.MissionAssignment{}, "assigned_by"},
	{&types.Message{}, "sender_id"},
	{&types.Message{}, "recipient_id"},
	{&types.SurveyAssignment{}, "youth_id"},
}

// Delete removes the user with everything they own. Links held by other
// users (care team ids, alert assignee, assessment reviewer) are cleared.
func (ur *userRepo) Delete(dbc dbctx.Context, userID uuid.UUID) error {
	return dbc.Conn(ur.db).Transaction(func(tx *gorm.DB) error {
		alertIDs := tx.Model(&types.Alert{}).Select("id").Where("youth_id = ?", userID)
		if err := tx.Where("alert_id IN (?)", alertIDs).Delete(&types.AlertAction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("youth_id = ?", userID).Delete(&types.Alert{}).Error; err != nil {
			return err
		}
		for _, o := range ownedRows {
			if err := tx.Where(o.column+" = ?", userID).Delete(o.model).Error; err != nil {
				return err
			}
		}
		for _, col := range []string{"coach_id", "parent_id", "clinician_id"} {
			if err := tx.Model(&types.YouthProfile{}).Where(col+" = ?", userID).Update(col, nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&types.Alert{}).Where("assigned_to = ?", userID).Update("assigned_to", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&types.Assessment{}).Where("reviewed_by = ?", userID).Update("reviewed_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", userID).Delete(&types.User{}).Error; err != nil {
			return err
		}
		ur.log.Info("Deleted user", "user_id", userID)
		return nil
	})
}

func (ur *userRepo) first(dbc dbctx.Context, query string, args ...interface{}) (*types.User, error) {
	var u types.User
	if err := dbc.Conn(ur.db).
		Where(query, args...).
		Limit(1).
		Find(&u).Error; err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
