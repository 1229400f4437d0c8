package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	TypePHQ9      = "PHQ9"
	TypeGAD7      = "GAD7"
	TypeMoodQuick = "mood-quick"
)

const (
	SeverityNone             = "none"
	SeverityMild             = "mild"
	SeverityModerate         = "moderate"
	SeverityModeratelySevere = "moderately-severe"
	SeveritySevere           = "severe"
)

const TriggerModel = "Assessment"

// Response is one answered item. Score is nil when the client sent no score.
type Response struct {
	QuestionID string `json:"question_id"`
	Answer     any    `json:"answer,omitempty"`
	Score      *int   `json:"score,omitempty"`
}

type Assessment struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                     `gorm:"type:uuid;index;not null" json:"user_id"`
	User             *user.User                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Type             string                        `gorm:"not null;index;column:type" json:"type"`
	Responses        datatypes.JSONSlice[Response] `gorm:"column:responses" json:"responses"`
	TotalScore       int                           `gorm:"not null;default:0;column:total_score" json:"total_score"`
	Severity         string                        `gorm:"not null;default:none;column:severity" json:"severity"`
	Recommendations  datatypes.JSONSlice[string]   `gorm:"column:recommendations" json:"recommendations"`
	FlaggedForReview bool                          `gorm:"not null;default:false;index;column:flagged_for_review" json:"flagged_for_review"`
	ReviewedBy       *uuid.UUID                    `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	Reviewer         *user.User                    `gorm:"foreignKey:ReviewedBy;references:ID" json:"reviewer,omitempty"`
	ReviewDate       *time.Time                    `gorm:"column:review_date" json:"review_date,omitempty"`
	ReviewNotes      string                        `gorm:"type:text;column:review_notes" json:"review_notes,omitempty"`
	CompletedAt      time.Time                     `gorm:"not null;column:completed_at" json:"completed_at"`
	CreatedAt        time.Time                     `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time                     `gorm:"not null" json:"updated_at"`
}

func (Assessment) TableName() string { return "assessment" }
