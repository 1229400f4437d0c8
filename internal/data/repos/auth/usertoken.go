package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

// UserTokenRepo stores one row per issued session. A row pairs the signed
// access token with its opaque refresh token; deleting the row revokes both.
type UserTokenRepo interface {
	Create(dbc dbctx.Context, token *types.UserToken) error
	FindByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error)
	FindByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error)
	ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserToken, error)
	Revoke(dbc dbctx.Context, ids ...uuid.UUID) error
	RevokeAllForUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: baseLog.With("repo", "UserTokenRepo")}
}

func (r *userTokenRepo) Create(dbc dbctx.Context, token *types.UserToken) error {
	if token == nil {
		return errors.New("nil user token")
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	return dbc.Conn(r.db).Create(token).Error
}

func (r *userTokenRepo) FindByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error) {
	return r.findOne(dbc, "access_token = ?", accessToken)
}

func (r *userTokenRepo) FindByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error) {
	return r.findOne(dbc, "refresh_token = ?", refreshToken)
}

// findOne returns nil, nil when no row matches.
func (r *userTokenRepo) findOne(dbc dbctx.Context, where string, value string) (*types.UserToken, error) {
	if value == "" {
		return nil, nil
	}
	var tok types.UserToken
	err := dbc.Conn(r.db).Where(where, value).Take(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func (r *userTokenRepo) ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserToken, error) {
	var out []*types.UserToken
	err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *userTokenRepo) Revoke(dbc dbctx.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.Conn(r.db).Where("id IN ?", ids).Delete(&types.UserToken{}).Error
}

func (r *userTokenRepo) RevokeAllForUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	res := dbc.Conn(r.db).Where("user_id = ?", userID).Delete(&types.UserToken{})
	return res.RowsAffected, res.Error
}

func (r *userTokenRepo) DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	res := dbc.Conn(r.db).Where("expires_at < ?", now).Delete(&types.UserToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		r.log.Debug("Deleted expired tokens", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
