package mission

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	AssignmentAssigned   = "assigned"
	AssignmentInProgress = "in-progress"
	AssignmentCompleted  = "completed"
	AssignmentAbandoned  = "abandoned"
)

var AssignmentStatuses = []string{AssignmentAssigned, AssignmentInProgress, AssignmentCompleted, AssignmentAbandoned}

func ValidAssignmentStatus(v string) bool { return contains(AssignmentStatuses, v) }

type Assignment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MissionID   uuid.UUID  `gorm:"type:uuid;index;not null;column:mission_id" json:"mission_id"`
	Mission     *Mission   `gorm:"constraint:OnDelete:CASCADE;foreignKey:MissionID;references:ID" json:"mission,omitempty"`
	YouthID     uuid.UUID  `gorm:"type:uuid;index;not null;column:youth_id" json:"youth_id"`
	Youth       *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:YouthID;references:ID" json:"youth,omitempty"`
	AssignedBy  uuid.UUID  `gorm:"type:uuid;index;not null;column:assigned_by" json:"assigned_by"`
	Assigner    *user.User `gorm:"foreignKey:AssignedBy;references:ID" json:"assigner,omitempty"`
	Status      string     `gorm:"not null;default:assigned;index;column:status" json:"status"`
	AssignedAt  time.Time  `gorm:"not null;column:assigned_at" json:"assigned_at"`
	StartedAt   *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Score       *int       `gorm:"column:score" json:"score,omitempty"`
	Feedback    string     `gorm:"type:text;column:feedback" json:"feedback,omitempty"`
	Notes       string     `gorm:"type:text;column:notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Assignment) TableName() string { return "mission_assignment" }
