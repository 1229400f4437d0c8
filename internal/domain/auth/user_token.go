// Package auth holds the session rows behind issued token pairs.
package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

// UserToken is one login session. ExpiresAt bounds the refresh token; the
// access token carries its own shorter expiry in the JWT.
type UserToken struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	User         *user.User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	AccessToken  string     `gorm:"uniqueIndex;not null" json:"-"`
	RefreshToken string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt    time.Time  `gorm:"index;not null" json:"expires_at"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserToken) TableName() string { return "user_token" }

func (t *UserToken) Expired(now time.Time) bool {
	return t == nil || !now.Before(t.ExpiresAt)
}
