package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Badge struct {
	Name     string    `json:"name"`
	Icon     string    `json:"icon,omitempty"`
	EarnedAt time.Time `json:"earned_at"`
}

type YouthProfile struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	GradeLevel  string     `gorm:"column:grade_level" json:"grade_level,omitempty"`
	School      string     `gorm:"column:school" json:"school,omitempty"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index;column:parent_id" json:"parent_id,omitempty"`
	CoachID     *uuid.UUID `gorm:"type:uuid;index;column:coach_id" json:"coach_id,omitempty"`
	ClinicianID *uuid.UUID `gorm:"type:uuid;index;column:clinician_id" json:"clinician_id,omitempty"`

	Interests datatypes.JSONSlice[string] `gorm:"column:interests" json:"interests"`
	Badges    datatypes.JSONSlice[Badge]  `gorm:"column:badges" json:"badges"`

	TotalPoints   int `gorm:"not null;default:0;column:total_points" json:"total_points"`
	Level         int `gorm:"not null;default:1;column:level" json:"level"`
	StreakMood    int `gorm:"not null;default:0;column:streak_mood" json:"streak_mood"`
	StreakJournal int `gorm:"not null;default:0;column:streak_journal" json:"streak_journal"`

	LastDailyRewardClaim   *time.Time `gorm:"column:last_daily_reward_claim" json:"last_daily_reward_claim,omitempty"`
	LastMoodCheckDate      *time.Time `gorm:"column:last_mood_check_date" json:"last_mood_check_date,omitempty"`
	LastPHQ9SubmissionDate *time.Time `gorm:"column:last_phq9_submission_date" json:"last_phq9_submission_date,omitempty"`
	LastGAD7SubmissionDate *time.Time `gorm:"column:last_gad7_submission_date" json:"last_gad7_submission_date,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (YouthProfile) TableName() string { return "youth_profile" }

type CoachProfile struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User              *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Specialization    datatypes.JSONSlice[string] `gorm:"column:specialization" json:"specialization"`
	Credentials       string                      `gorm:"column:credentials" json:"credentials,omitempty"`
	Bio               string                      `gorm:"column:bio" json:"bio,omitempty"`
	YearsOfExperience int                         `gorm:"not null;default:0;column:years_of_experience" json:"years_of_experience"`
	RatingAverage     float64                     `gorm:"not null;default:0;column:rating_average" json:"rating_average"`
	RatingCount       int                         `gorm:"not null;default:0;column:rating_count" json:"rating_count"`
	IsActive          bool                        `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt         time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time                   `gorm:"not null" json:"updated_at"`
}

func (CoachProfile) TableName() string { return "coach_profile" }

type ClinicianProfile struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User              *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	LicenseNumber     string                      `gorm:"column:license_number" json:"license_number,omitempty"`
	LicensingState    string                      `gorm:"column:licensing_state" json:"licensing_state,omitempty"`
	Specialization    datatypes.JSONSlice[string] `gorm:"column:specialization" json:"specialization"`
	Bio               string                      `gorm:"column:bio" json:"bio,omitempty"`
	YearsOfExperience int                         `gorm:"not null;default:0;column:years_of_experience" json:"years_of_experience"`
	IsActive          bool                        `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt         time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time                   `gorm:"not null" json:"updated_at"`
}

func (ClinicianProfile) TableName() string { return "clinician_profile" }

type ParentProfile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Relationship   string    `gorm:"not null;default:parent;column:relationship" json:"relationship"`
	EmailAlerts    bool      `gorm:"not null;default:true;column:email_alerts" json:"email_alerts"`
	WeeklyReport   bool      `gorm:"not null;default:true;column:weekly_report" json:"weekly_report"`
	CriticalAlerts bool      `gorm:"not null;default:true;column:critical_alerts" json:"critical_alerts"`
	IsActive       bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (ParentProfile) TableName() string { return "parent_profile" }
