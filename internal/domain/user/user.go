package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleYouth     = "youth"
	RoleParent    = "parent"
	RoleCoach     = "coach"
	RoleClinician = "clinician"
	RoleAdmin     = "admin"
)

var Roles = []string{RoleYouth, RoleParent, RoleCoach, RoleClinician, RoleAdmin}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email               string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password            string     `gorm:"not null;column:password" json:"-"`
	FirstName           string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName            string     `gorm:"not null;column:last_name" json:"last_name"`
	Role                string     `gorm:"not null;index;column:role;default:youth" json:"role"`
	DateOfBirth         *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	PhoneNumber         string     `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Location            string     `gorm:"column:location" json:"location,omitempty"`
	Avatar              string     `gorm:"column:avatar" json:"avatar,omitempty"`
	IsActive            bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	ResetPasswordToken  *string    `gorm:"index;column:reset_password_token" json:"-"`
	ResetPasswordExpire *time.Time `gorm:"column:reset_password_expire" json:"-"`
	LastLogin           *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt           time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return u.FirstName + " " + u.LastName
}

// Summary is the trimmed user shape embedded in other payloads.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
}

func (u *User) Summary() *Summary {
	if u == nil {
		return nil
	}
	return &Summary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role, Avatar: u.Avatar}
}
