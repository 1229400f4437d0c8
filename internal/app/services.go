package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type Services struct {
	Clock services.Clock

	Auth              services.AuthService
	User              services.UserService
	Journal           services.JournalService
	Mood              services.MoodService
	Assessment        services.AssessmentService
	Alert             services.AlertService
	Mission           services.MissionService
	MissionAssignment services.MissionAssignmentService
	Message           services.MessageService
	Survey            services.SurveyService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients) Services {
	log.Info("Wiring services...")

	clock := services.NewClock(cfg.Timezone)
	notifier := services.NewAlertNotifier(clients.AlertBus, log, clock)

	authService := services.NewAuthService(
		db, log,
		r.User,
		r.UserToken,
		r.YouthProfile,
		r.CoachProfile,
		r.ClinicianProfile,
		r.ParentProfile,
		clients.Mailer,
		services.AuthConfig{
			JWTSecretKey: cfg.JWTSecretKey,
			AccessTTL:    cfg.AccessTokenTTL,
			RefreshTTL:   cfg.RefreshTokenTTL,
			FrontendURL:  cfg.FrontendURL,
			Production:   cfg.Production(),
		},
		clock,
	)
	userService := services.NewUserService(
		db, log,
		r.User,
		r.UserToken,
		r.YouthProfile,
		r.CoachProfile,
		r.ClinicianProfile,
		r.ParentProfile,
		r.Journal,
		r.Mood,
		r.MissionProgress,
		clock,
	)
	alertService := services.NewAlertService(db, log, r.Alert, r.User, r.YouthProfile, notifier, clock)

	return Services{
		Clock:             clock,
		Auth:              authService,
		User:              userService,
		Journal:           services.NewJournalService(db, log, r.Journal, alertService, clock),
		Mood:              services.NewMoodService(db, log, r.Mood, r.YouthProfile, clock),
		Assessment:        services.NewAssessmentService(db, log, r.Assessment, r.YouthProfile, alertService, clock),
		Alert:             alertService,
		Mission:           services.NewMissionService(db, log, r.Mission, r.MissionProgress, r.YouthProfile, clock),
		MissionAssignment: services.NewMissionAssignmentService(db, log, r.MissionAssignment, r.Mission, r.Message, r.User, r.YouthProfile, clock),
		Message:           services.NewMessageService(db, log, r.Message, r.User, clock),
		Survey:            services.NewSurveyService(db, log, r.Survey, r.SurveyAssignment, r.YouthProfile, clock),
	}
}
