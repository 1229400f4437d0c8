package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/youthcare-backend/internal/domain/journal"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

// Moods is the five-point scale shared with journals, saddest first.
var Moods = journal.Moods

func ValidMood(m string) bool { return journal.ValidMood(m) }

// Rank orders moods from saddest (0); unknown moods rank -1.
func Rank(m string) int {
	for i, v := range Moods {
		if v == m {
			return i
		}
	}
	return -1
}

const (
	SocialAlone       = "alone"
	SocialWithFamily  = "with-family"
	SocialWithFriends = "with-friends"
	SocialAtSchool    = "at-school"
	SocialAtWork      = "at-work"
	SocialInGroup     = "in-group"
)

var SocialContexts = []string{SocialAlone, SocialWithFamily, SocialWithFriends, SocialAtSchool, SocialAtWork, SocialInGroup}

func ValidSocialContext(s string) bool {
	for _, v := range SocialContexts {
		if v == s {
			return true
		}
	}
	return false
}

const (
	MinIntensity = 1
	MaxIntensity = 10
)

type Entry struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID                   `gorm:"type:uuid;index;not null" json:"user_id"`
	User               *user.User                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Mood               string                      `gorm:"not null;column:mood" json:"mood"`
	Intensity          int                         `gorm:"not null;column:intensity" json:"intensity"`
	Emotions           datatypes.JSONSlice[string] `gorm:"column:emotions" json:"emotions"`
	Triggers           datatypes.JSONSlice[string] `gorm:"column:triggers" json:"triggers"`
	Activities         datatypes.JSONSlice[string] `gorm:"column:activities" json:"activities"`
	Location           string                      `gorm:"column:location" json:"location,omitempty"`
	SocialContext      string                      `gorm:"column:social_context" json:"social_context,omitempty"`
	Notes              string                      `gorm:"type:text;column:notes" json:"notes,omitempty"`
	PhysicalSensations datatypes.JSONSlice[string] `gorm:"column:physical_sensations" json:"physical_sensations"`
	CopingStrategies   datatypes.JSONSlice[string] `gorm:"column:coping_strategies" json:"coping_strategies"`
	IsHelpful          *bool                       `gorm:"column:is_helpful" json:"is_helpful,omitempty"`
	CreatedAt          time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Entry) TableName() string { return "mood_entry" }
