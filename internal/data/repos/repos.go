package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos/alert"
	"github.com/yungbote/youthcare-backend/internal/data/repos/assessment"
	"github.com/yungbote/youthcare-backend/internal/data/repos/auth"
	"github.com/yungbote/youthcare-backend/internal/data/repos/journal"
	"github.com/yungbote/youthcare-backend/internal/data/repos/message"
	"github.com/yungbote/youthcare-backend/internal/data/repos/mission"
	"github.com/yungbote/youthcare-backend/internal/data/repos/mood"
	"github.com/yungbote/youthcare-backend/internal/data/repos/survey"
	"github.com/yungbote/youthcare-backend/internal/data/repos/user"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserFilter = user.UserFilter
type UserTokenRepo = auth.UserTokenRepo
type YouthProfileRepo = user.YouthProfileRepo
type CoachProfileRepo = user.CoachProfileRepo
type ClinicianProfileRepo = user.ClinicianProfileRepo
type ParentProfileRepo = user.ParentProfileRepo

type JournalRepo = journal.JournalRepo
type JournalFilter = journal.Filter

type MoodRepo = mood.MoodRepo
type MoodFilter = mood.Filter
type MoodCount = mood.MoodCount

type AssessmentRepo = assessment.AssessmentRepo

type AlertRepo = alert.AlertRepo
type AlertFilter = alert.Filter
type AlertSummary = alert.Summary

type MissionRepo = mission.MissionRepo
type MissionFilter = mission.Filter
type MissionProgressRepo = mission.ProgressRepo
type MissionAssignmentRepo = mission.AssignmentRepo

type MessageRepo = message.MessageRepo

type SurveyRepo = survey.SurveyRepo
type SurveyAssignmentRepo = survey.AssignmentRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }
func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}
func NewYouthProfileRepo(db *gorm.DB, log *logger.Logger) YouthProfileRepo {
	return user.NewYouthProfileRepo(db, log)
}
func NewCoachProfileRepo(db *gorm.DB, log *logger.Logger) CoachProfileRepo {
	return user.NewCoachProfileRepo(db, log)
}
func NewClinicianProfileRepo(db *gorm.DB, log *logger.Logger) ClinicianProfileRepo {
	return user.NewClinicianProfileRepo(db, log)
}
func NewParentProfileRepo(db *gorm.DB, log *logger.Logger) ParentProfileRepo {
	return user.NewParentProfileRepo(db, log)
}

func NewJournalRepo(db *gorm.DB, log *logger.Logger) JournalRepo { return journal.NewJournalRepo(db, log) }
func NewMoodRepo(db *gorm.DB, log *logger.Logger) MoodRepo       { return mood.NewMoodRepo(db, log) }
func NewAssessmentRepo(db *gorm.DB, log *logger.Logger) AssessmentRepo {
	return assessment.NewAssessmentRepo(db, log)
}
func NewAlertRepo(db *gorm.DB, log *logger.Logger) AlertRepo { return alert.NewAlertRepo(db, log) }

func NewMissionRepo(db *gorm.DB, log *logger.Logger) MissionRepo { return mission.NewMissionRepo(db, log) }
func NewMissionProgressRepo(db *gorm.DB, log *logger.Logger) MissionProgressRepo {
	return mission.NewProgressRepo(db, log)
}
func NewMissionAssignmentRepo(db *gorm.DB, log *logger.Logger) MissionAssignmentRepo {
	return mission.NewAssignmentRepo(db, log)
}

func NewMessageRepo(db *gorm.DB, log *logger.Logger) MessageRepo { return message.NewMessageRepo(db, log) }

func NewSurveyRepo(db *gorm.DB, log *logger.Logger) SurveyRepo { return survey.NewSurveyRepo(db, log) }
func NewSurveyAssignmentRepo(db *gorm.DB, log *logger.Logger) SurveyAssignmentRepo {
	return survey.NewAssignmentRepo(db, log)
}
