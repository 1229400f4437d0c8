package app

import (
	httpH "github.com/yungbote/youthcare-backend/internal/http/handlers"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

type Handlers struct {
	Health            *httpH.HealthHandler
	Auth              *httpH.AuthHandler
	User              *httpH.UserHandler
	Journal           *httpH.JournalHandler
	Mood              *httpH.MoodHandler
	Assessment        *httpH.AssessmentHandler
	Alert             *httpH.AlertHandler
	Mission           *httpH.MissionHandler
	MissionAssignment *httpH.MissionAssignmentHandler
	Message           *httpH.MessageHandler
	Survey            *httpH.SurveyHandler
}

func wireHandlers(log *logger.Logger, s Services, ping httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:            httpH.NewHealthHandler(ping),
		Auth:              httpH.NewAuthHandler(s.Auth, s.User),
		User:              httpH.NewUserHandler(s.User, s.Journal, s.Mood, s.Mission),
		Journal:           httpH.NewJournalHandler(s.Journal),
		Mood:              httpH.NewMoodHandler(s.Mood),
		Assessment:        httpH.NewAssessmentHandler(s.Assessment),
		Alert:             httpH.NewAlertHandler(s.Alert),
		Mission:           httpH.NewMissionHandler(s.Mission),
		MissionAssignment: httpH.NewMissionAssignmentHandler(s.MissionAssignment),
		Message:           httpH.NewMessageHandler(s.Message),
		Survey:            httpH.NewSurveyHandler(s.Survey),
	}
}
