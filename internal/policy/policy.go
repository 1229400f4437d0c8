// Package policy is the single authorization decision point. Handlers and
// services describe who is calling and whose data is touched; Allow decides.
package policy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

var ErrForbidden = errors.New("forbidden")

type Actor struct {
	UserID uuid.UUID
	Role   string
}

// Resource identifies whose data an action touches. OwnerID is the youth
// (or other user) the record belongs to; Managers are users linked to the
// record with rights over it, such as the youth's coach or the assigner.
type Resource struct {
	OwnerID  uuid.UUID
	Managers []uuid.UUID
}

func Owned(owner uuid.UUID, managers ...uuid.UUID) Resource {
	return Resource{OwnerID: owner, Managers: managers}
}

type Action string

const (
	ManageUsers        Action = "users:manage"
	ListYouth          Action = "users:list-youth"
	ViewCoachDetails   Action = "users:coach-details"
	LinkCoach          Action = "users:link-coach"
	LinkParent         Action = "users:link-parent"
	ViewYouthRecords   Action = "youth:records"
	ViewYouthProfile   Action = "youth:profile"
	ClaimReward        Action = "youth:claim-reward"
	ReadJournal        Action = "journal:read"
	WriteJournal       Action = "journal:write"
	CreateJournal      Action = "journal:create"
	JournalFeedback    Action = "journal:feedback"
	JournalAudit       Action = "journal:audit"
	LogMood            Action = "mood:log"
	WriteMood          Action = "mood:write"
	MoodReports        Action = "mood:reports"
	CoachMoodTracking  Action = "mood:coach-tracking"
	SubmitAssessment   Action = "assessment:submit"
	ReadAssessment     Action = "assessment:read"
	ReviewAssessment   Action = "assessment:review"
	ManageAlerts       Action = "alert:manage"
	AssignAlert        Action = "alert:assign"
	ReadYouthAlerts    Action = "alert:read-youth"
	ManageMissions     Action = "mission:manage"
	PlayMission        Action = "mission:play"
	AssignMission      Action = "mission:assign"
	UpdateAssignment   Action = "mission-assignment:update"
	DeleteAssignment   Action = "mission-assignment:delete"
	ReadMessage        Action = "message:read"
	DeleteMessage      Action = "message:delete"
	ListSurveys        Action = "survey:list"
	AssignSurvey       Action = "survey:assign"
	TakeSurvey         Action = "survey:take"
	ReadSurveyAssigned Action = "survey-assignment:read"
)

// Rule grants an action to every caller holding one of Roles, to the
// resource owner when Owner is set, and to any listed manager when Managers
// is set.
type Rule struct {
	Roles    []string
	Owner    bool
	Managers bool
}

var (
	staff     = []string{user.RoleCoach, user.RoleClinician, user.RoleAdmin}
	clinical  = []string{user.RoleClinician, user.RoleAdmin}
	adminOnly = []string{user.RoleAdmin}
	youthOnly = []string{user.RoleYouth}
)

var Rules = map[Action]Rule{
	ManageUsers:        {Roles: adminOnly},
	ListYouth:          {Roles: clinical},
	ViewCoachDetails:   {Roles: adminOnly},
	LinkCoach:          {Roles: adminOnly, Owner: true},
	LinkParent:         {Roles: adminOnly},
	ViewYouthRecords:   {Roles: staff, Owner: true, Managers: true},
	ViewYouthProfile:   {Roles: staff, Owner: true, Managers: true},
	ClaimReward:        {Roles: youthOnly},
	CreateJournal:      {Roles: youthOnly},
	ReadJournal:        {Roles: staff, Owner: true},
	WriteJournal:       {Owner: true},
	JournalFeedback:    {Roles: []string{user.RoleCoach, user.RoleAdmin}},
	JournalAudit:       {Roles: clinical},
	LogMood:            {Roles: youthOnly},
	WriteMood:          {Owner: true},
	MoodReports:        {Roles: adminOnly},
	CoachMoodTracking:  {Roles: []string{user.RoleCoach, user.RoleAdmin}},
	SubmitAssessment:   {Roles: youthOnly},
	ReadAssessment:     {Roles: staff, Owner: true, Managers: true},
	ReviewAssessment:   {Roles: clinical},
	ManageAlerts:       {Roles: clinical},
	AssignAlert:        {Roles: adminOnly},
	ReadYouthAlerts:    {Roles: staff, Owner: true},
	ManageMissions:     {Roles: []string{user.RoleCoach, user.RoleAdmin}},
	PlayMission:        {Roles: youthOnly},
	AssignMission:      {Roles: staff},
	UpdateAssignment:   {Roles: adminOnly, Owner: true, Managers: true},
	DeleteAssignment:   {Roles: adminOnly, Managers: true},
	ReadMessage:        {Owner: true},
	DeleteMessage:      {Owner: true, Managers: true},
	ListSurveys:        {Roles: []string{user.RoleYouth, user.RoleCoach, user.RoleClinician, user.RoleAdmin}},
	AssignSurvey:       {Roles: clinical, Managers: true},
	TakeSurvey:         {Owner: true},
	ReadSurveyAssigned: {Roles: clinical, Owner: true, Managers: true},
}

// Allow is the authorization decision for actor performing act on res.
// Unknown actions and anonymous actors are denied.
func Allow(actor Actor, act Action, res Resource) bool {
	rule, ok := Rules[act]
	if !ok || actor.UserID == uuid.Nil {
		return false
	}
	if hasRole(rule.Roles, actor.Role) {
		return true
	}
	if rule.Owner && res.OwnerID != uuid.Nil && res.OwnerID == actor.UserID {
		return true
	}
	if rule.Managers {
		for _, m := range res.Managers {
			if m != uuid.Nil && m == actor.UserID {
				return true
			}
		}
	}
	return false
}

// Check is Allow returning ErrForbidden on deny.
func Check(actor Actor, act Action, res Resource) error {
	if Allow(actor, act, res) {
		return nil
	}
	return fmt.Errorf("%w: %s may not %s", ErrForbidden, actor.Role, act)
}

// MayAttempt reports whether role could ever be granted act. Route guards
// use it to reject callers before any data is loaded; ownership is settled
// later by Allow.
func MayAttempt(role string, act Action) bool {
	rule, ok := Rules[act]
	if !ok {
		return false
	}
	return rule.Owner || rule.Managers || hasRole(rule.Roles, role)
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
