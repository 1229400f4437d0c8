package mission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	ProgressActive    = "active"
	ProgressCompleted = "completed"
	ProgressFailed    = "failed"
)

type DayRecord struct {
	Day        int        `json:"day"`
	Completed  bool       `json:"completed"`
	Skipped    bool       `json:"skipped"`
	Note       string     `json:"note,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

type Progress struct {
	ID                   uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID                      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	User                 *user.User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	MissionID            uuid.UUID                      `gorm:"type:uuid;index;not null;column:mission_id" json:"mission_id"`
	Mission              *Mission                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:MissionID;references:ID" json:"mission,omitempty"`
	StartDate            time.Time                      `gorm:"not null;column:start_date" json:"start_date"`
	EndDate              time.Time                      `gorm:"not null;column:end_date" json:"end_date"`
	Days                 datatypes.JSONSlice[DayRecord] `gorm:"column:days" json:"progress"`
	Status               string                         `gorm:"not null;default:active;index;column:status" json:"status"`
	CompletionPercentage int                            `gorm:"not null;default:0;column:completion_percentage" json:"completion_percentage"`
	XPEarned             int                            `gorm:"not null;default:0;column:xp_earned" json:"xp_earned"`
	XPAwarded            bool                           `gorm:"not null;default:false;column:xp_awarded" json:"xp_awarded"`
	CompletedAt          *time.Time                     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt            time.Time                      `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time                      `gorm:"not null" json:"updated_at"`
}

func (Progress) TableName() string { return "mission_progress" }

func (p *Progress) TotalDays() int { return len(p.Days) }
