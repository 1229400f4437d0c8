package alert

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	TypeHighAnxiety          = "high-anxiety"
	TypeDepressionIndicators = "depression-indicators"
	TypeSelfHarmMention      = "self-harm-mention"
	TypeConcerningPattern    = "concerning-pattern"
	TypeMissingEngagement    = "missing-engagement"
	TypeCriticalAlert        = "critical-alert"
)

var Types = []string{TypeHighAnxiety, TypeDepressionIndicators, TypeSelfHarmMention, TypeConcerningPattern, TypeMissingEngagement, TypeCriticalAlert}

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

var Severities = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

const (
	SourceAssessment       = "assessment"
	SourceJournal          = "journal"
	SourceMoodTrend        = "mood-trend"
	SourceClinicianFlagged = "clinician-flagged"
	SourceSystemAutomated  = "system-automated"
)

const (
	StatusActive        = "active"
	StatusAcknowledged  = "acknowledged"
	StatusResolved      = "resolved"
	StatusFalsePositive = "false-positive"
)

var Statuses = []string{StatusActive, StatusAcknowledged, StatusResolved, StatusFalsePositive}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidType(v string) bool     { return oneOf(v, Types) }
func ValidSeverity(v string) bool { return oneOf(v, Severities) }
func ValidStatus(v string) bool   { return oneOf(v, Statuses) }

type Alert struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	YouthID          uuid.UUID      `gorm:"type:uuid;index;not null;column:youth_id" json:"youth_id"`
	Youth            *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:YouthID;references:ID" json:"youth,omitempty"`
	Type             string         `gorm:"not null;index;column:type" json:"type"`
	Severity         string         `gorm:"not null;index;column:severity" json:"severity"`
	Source           string         `gorm:"not null;column:source" json:"source"`
	TriggerID        *uuid.UUID     `gorm:"type:uuid;column:trigger_id;uniqueIndex:idx_alert_trigger,priority:1" json:"trigger_id,omitempty"`
	TriggerModel     *string        `gorm:"column:trigger_model;uniqueIndex:idx_alert_trigger,priority:2" json:"trigger_model,omitempty"`
	Description      string         `gorm:"type:text;not null;column:description" json:"description"`
	Details          datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	Status           string         `gorm:"not null;default:active;index;column:status" json:"status"`
	AssignedTo       *uuid.UUID     `gorm:"type:uuid;index;column:assigned_to" json:"assigned_to,omitempty"`
	Assignee         *user.User     `gorm:"foreignKey:AssignedTo;references:ID" json:"assignee,omitempty"`
	FollowUpRequired bool           `gorm:"not null;default:false;column:follow_up_required" json:"follow_up_required"`
	FollowUpDate     *time.Time     `gorm:"column:follow_up_date" json:"follow_up_date,omitempty"`
	AcknowledgedAt   *time.Time     `gorm:"column:acknowledged_at" json:"acknowledged_at,omitempty"`
	ResolvedAt       *time.Time     `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	Actions          []Action       `gorm:"foreignKey:AlertID;references:ID" json:"actions_taken"`
	CreatedAt        time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (Alert) TableName() string { return "alert" }

// Action is one entry in an alert's append-only activity log.
type Action struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlertID   uuid.UUID `gorm:"type:uuid;index;not null;column:alert_id" json:"alert_id"`
	Action    string    `gorm:"not null;column:action" json:"action"`
	TakenBy   uuid.UUID `gorm:"type:uuid;not null;column:taken_by" json:"taken_by"`
	Notes     string    `gorm:"type:text;column:notes" json:"notes,omitempty"`
	TakenAt   time.Time `gorm:"not null;index;column:taken_at" json:"timestamp"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (Action) TableName() string { return "alert_action" }
