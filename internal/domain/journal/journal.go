package journal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	MoodVerySad   = "very-sad"
	MoodSad       = "sad"
	MoodNeutral   = "neutral"
	MoodHappy     = "happy"
	MoodVeryHappy = "very-happy"
)

var Moods = []string{MoodVerySad, MoodSad, MoodNeutral, MoodHappy, MoodVeryHappy}

func ValidMood(m string) bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// TriggerModel is the alert trigger kind recorded for journal-derived alerts.
const TriggerModel = "Journal"

type Journal struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                   `gorm:"type:uuid;index;not null" json:"user_id"`
	User             *user.User                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title            string                      `gorm:"not null;column:title" json:"title"`
	Content          string                      `gorm:"type:text;not null;column:content" json:"content"`
	Mood             string                      `gorm:"column:mood" json:"mood,omitempty"`
	EmotionTags      datatypes.JSONSlice[string] `gorm:"column:emotion_tags" json:"emotion_tags"`
	IsPrivate        bool                        `gorm:"not null;default:false;column:is_private" json:"is_private"`
	ReflectionPrompt string                      `gorm:"column:reflection_prompt" json:"reflection_prompt,omitempty"`
	GratitudeItems   datatypes.JSONSlice[string] `gorm:"column:gratitude_items" json:"gratitude_items"`
	Tags             datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	ReviewedByCoach  bool                        `gorm:"not null;default:false;column:reviewed_by_coach" json:"reviewed_by_coach"`
	CoachFeedback    *string                     `gorm:"type:text;column:coach_feedback" json:"coach_feedback,omitempty"`
	CoachID          *uuid.UUID                  `gorm:"type:uuid;column:coach_id" json:"coach_id,omitempty"`
	FeedbackDate     *time.Time                  `gorm:"column:feedback_date" json:"feedback_date,omitempty"`
	CreatedAt        time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Journal) TableName() string { return "journal" }

// ScanText is the text the risk scanner inspects.
func (j *Journal) ScanText() string {
	return j.Title + " " + j.Content
}
