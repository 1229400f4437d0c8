package domain

import (
	"github.com/yungbote/youthcare-backend/internal/domain/alert"
	"github.com/yungbote/youthcare-backend/internal/domain/assessment"
	"github.com/yungbote/youthcare-backend/internal/domain/auth"
	"github.com/yungbote/youthcare-backend/internal/domain/journal"
	"github.com/yungbote/youthcare-backend/internal/domain/message"
	"github.com/yungbote/youthcare-backend/internal/domain/mission"
	"github.com/yungbote/youthcare-backend/internal/domain/mood"
	"github.com/yungbote/youthcare-backend/internal/domain/survey"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

type User = user.User
type UserSummary = user.Summary
type UserToken = auth.UserToken
type YouthProfile = user.YouthProfile
type CoachProfile = user.CoachProfile
type ClinicianProfile = user.ClinicianProfile
type ParentProfile = user.ParentProfile
type Badge = user.Badge

type Journal = journal.Journal
type MoodEntry = mood.Entry

type Assessment = assessment.Assessment
type AssessmentResponse = assessment.Response

type Alert = alert.Alert
type AlertAction = alert.Action

type Mission = mission.Mission
type MissionProgress = mission.Progress
type MissionDay = mission.DayRecord
type MissionAssignment = mission.Assignment

type Message = message.Message

type Survey = survey.Survey
type SurveyQuestion = survey.Question
type SurveyOption = survey.Option
type SurveyAssignment = survey.Assignment
type SurveyResponse = survey.Response

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&UserToken{},
		&YouthProfile{},
		&CoachProfile{},
		&ClinicianProfile{},
		&ParentProfile{},
		&Journal{},
		&MoodEntry{},
		&Assessment{},
		&Alert{},
		&AlertAction{},
		&Mission{},
		&MissionProgress{},
		&MissionAssignment{},
		&Message{},
		&Survey{},
		&SurveyAssignment{},
	}
}
