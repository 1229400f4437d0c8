package survey

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	AssignmentAssigned   = "assigned"
	AssignmentInProgress = "in-progress"
	AssignmentCompleted  = "completed"
)

type Response struct {
	QuestionID string    `json:"question_id"`
	Answer     any       `json:"answer"`
	AnsweredAt time.Time `json:"answered_at"`
}

type Assignment struct {
	ID             uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID       uuid.UUID                     `gorm:"type:uuid;index;not null;column:survey_id" json:"survey_id"`
	Survey         *Survey                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SurveyID;references:ID" json:"survey,omitempty"`
	YouthID        uuid.UUID                     `gorm:"type:uuid;index;not null;column:youth_id" json:"youth_id"`
	Youth          *user.User                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:YouthID;references:ID" json:"youth,omitempty"`
	AssignedBy     uuid.UUID                     `gorm:"type:uuid;index;not null;column:assigned_by" json:"assigned_by"`
	AssignedByRole string                        `gorm:"not null;column:assigned_by_role" json:"assigned_by_role"`
	Status         string                        `gorm:"not null;default:assigned;index;column:status" json:"status"`
	AssignedAt     time.Time                     `gorm:"not null;column:assigned_at" json:"assigned_at"`
	StartedAt      *time.Time                    `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt    *time.Time                    `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Responses      datatypes.JSONSlice[Response] `gorm:"column:responses" json:"responses"`
	CreatedAt      time.Time                     `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                     `gorm:"not null" json:"updated_at"`
}

func (Assignment) TableName() string { return "survey_assignment" }
