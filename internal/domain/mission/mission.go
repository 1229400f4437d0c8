package mission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

var Categories = []string{
	"emotional-awareness",
	"social-skills",
	"stress-management",
	"resilience",
	"mindfulness",
	"creativity",
}

var AgeGroups = []string{"5-7", "8-10", "11-13", "14-16", "17+"}

const (
	UnitMinutes = "minutes"
	UnitHours   = "hours"
	UnitDays    = "days"
)

var DurationUnits = []string{UnitMinutes, UnitHours, UnitDays}

const DefaultRewardPoints = 100

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidDifficulty(v string) bool   { return contains(Difficulties, v) }
func ValidCategory(v string) bool     { return contains(Categories, v) }
func ValidAgeGroup(v string) bool     { return contains(AgeGroups, v) }
func ValidDurationUnit(v string) bool { return contains(DurationUnits, v) }

type Mission struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string                      `gorm:"not null;index;column:title" json:"title"`
	Description     string                      `gorm:"type:text;not null;column:description" json:"description"`
	Objectives      datatypes.JSONSlice[string] `gorm:"column:objectives" json:"objectives"`
	Difficulty      string                      `gorm:"not null;default:easy;column:difficulty" json:"difficulty"`
	Category        string                      `gorm:"not null;index;column:category" json:"category"`
	RewardPoints    int                         `gorm:"not null;default:100;column:reward_points" json:"reward_points"`
	RewardBadges    datatypes.JSONSlice[string] `gorm:"column:reward_badges" json:"reward_badges"`
	TargetAgeGroups datatypes.JSONSlice[string] `gorm:"column:target_age_groups" json:"target_age_groups"`
	Duration        int                         `gorm:"not null;default:1;column:duration" json:"duration"`
	DurationUnit    string                      `gorm:"not null;default:days;column:duration_unit" json:"duration_unit"`
	CreatedBy       uuid.UUID                   `gorm:"type:uuid;index;not null;column:created_by" json:"created_by"`
	Creator         *user.User                  `gorm:"foreignKey:CreatedBy;references:ID" json:"creator,omitempty"`
	IsActive        bool                        `gorm:"not null;default:true;index;column:is_active" json:"is_active"`
	Completions     int                         `gorm:"not null;default:0;column:completions" json:"completions"`
	RatingAverage   float64                     `gorm:"not null;default:0;column:rating_average" json:"rating_average"`
	RatingCount     int                         `gorm:"not null;default:0;column:rating_count" json:"rating_count"`
	Tags            datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	ImageURL        string                      `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt       time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Mission) TableName() string { return "mission" }

// Points is the completion reward, falling back to the default for legacy
// rows stored without one.
func (m *Mission) Points() int {
	if m == nil || m.RewardPoints <= 0 {
		return DefaultRewardPoints
	}
	return m.RewardPoints
}
