package app

import (
	apphttp "github.com/yungbote/youthcare-backend/internal/http"
	httpMW "github.com/yungbote/youthcare-backend/internal/http/middleware"
	"github.com/yungbote/youthcare-backend/internal/observability"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

type Middleware struct {
	Auth        *httpMW.AuthMiddleware
	AuthLimiter httpMW.Limiter
}

func wireMiddleware(log *logger.Logger, s Services, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:        httpMW.NewAuthMiddleware(log, s.Auth),
		AuthLimiter: clients.AuthLimiter,
	}
}

func wireServer(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:                      log,
		ServiceName:              cfg.ServiceName,
		CORSOrigins:              cfg.CORSOrigins,
		Metrics:                  metrics,
		AuthLimiter:              mw.AuthLimiter,
		AuthMiddleware:           mw.Auth,
		HealthHandler:            h.Health,
		AuthHandler:              h.Auth,
		UserHandler:              h.User,
		JournalHandler:           h.Journal,
		MoodHandler:              h.Mood,
		AssessmentHandler:        h.Assessment,
		AlertHandler:             h.Alert,
		MissionHandler:           h.Mission,
		MissionAssignmentHandler: h.MissionAssignment,
		MessageHandler:           h.Message,
		SurveyHandler:            h.Survey,
	})
}
