package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/youthcare-backend/internal/http/handlers"
	httpMW "github.com/yungbote/youthcare-backend/internal/http/middleware"
	"github.com/yungbote/youthcare-backend/internal/observability"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics
	// AuthLimiter throttles the public credential endpoints; nil disables it.
	AuthLimiter httpMW.Limiter

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler            *httpH.HealthHandler
	AuthHandler              *httpH.AuthHandler
	UserHandler              *httpH.UserHandler
	JournalHandler           *httpH.JournalHandler
	MoodHandler              *httpH.MoodHandler
	AssessmentHandler        *httpH.AssessmentHandler
	AlertHandler             *httpH.AlertHandler
	MissionHandler           *httpH.MissionHandler
	MissionAssignmentHandler *httpH.MissionAssignmentHandler
	MessageHandler           *httpH.MessageHandler
	SurveyHandler            *httpH.SurveyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "youthcare"
	}

	r := gin.New()
	r.Use(httpMW.AttachRequestContext())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Recover(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	if cfg.HealthHandler != nil {
		api.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		limited := api.Group("/auth")
		if cfg.AuthLimiter != nil {
			limited.Use(httpMW.RateLimit(log, cfg.AuthLimiter))
		}
		limited.POST("/register", cfg.AuthHandler.Register)
		limited.POST("/login", cfg.AuthHandler.Login)
		limited.POST("/refresh-token", cfg.AuthHandler.Refresh)
		limited.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
		limited.POST("/reset-password", cfg.AuthHandler.ResetPassword)
	}

	protected := api.Group("")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	can := httpMW.RequirePermission

	if h := cfg.AuthHandler; h != nil {
		protected.POST("/auth/logout", h.Logout)
		protected.GET("/auth/me", h.Me)
	}

	if h := cfg.UserHandler; h != nil {
		users := protected.Group("/users")
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
		users.DELETE("/account", h.DeleteAccount)
		users.GET("/search", h.Search)
		users.GET("", can(policy.ManageUsers), h.List)
		users.GET("/admins", h.ListAdmins)
		users.GET("/youth/list/all", can(policy.ListYouth), h.ListYouth)
		users.GET("/coaches/list/all", h.ListCoaches)
		users.PUT("/coaches/:coachId/add-youth", h.AddYouthToCoach)
		users.PUT("/coaches/:coachId/remove-youth", h.RemoveYouthFromCoach)
		users.GET("/coaches/:coachId/details", can(policy.ViewCoachDetails), h.CoachDetails)
		users.PUT("/parents/:parentId/add-youth", can(policy.LinkParent), h.AddYouthToParent)
		users.POST("/youth/claim-daily-reward", can(policy.ClaimReward), h.ClaimDailyReward)
		users.GET("/:id", h.Get)
		users.GET("/:id/care-team", h.CareTeam)
		users.GET("/:id/youth-profile", h.YouthProfile)
		users.GET("/:id/journals", h.Journals)
		users.GET("/:id/moods", h.Moods)
		users.GET("/:id/missions", h.Missions)
		users.GET("/:id/active-missions", h.ActiveMissions)
		users.PUT("/:id/activate", can(policy.ManageUsers), h.Activate)
		users.PUT("/:id/deactivate", can(policy.ManageUsers), h.Deactivate)
		users.DELETE("/:id", can(policy.ManageUsers), h.Delete)
	}

	if h := cfg.JournalHandler; h != nil {
		journals := protected.Group("/journals")
		journals.GET("", h.ListMine)
		journals.GET("/search", h.Search)
		journals.GET("/audit", can(policy.JournalAudit), h.Audit)
		journals.POST("", can(policy.CreateJournal), h.Create)
		journals.GET("/:id", h.Get)
		journals.PUT("/:id", h.Update)
		journals.DELETE("/:id", h.Delete)
		journals.POST("/:id/feedback", can(policy.JournalFeedback), h.AddFeedback)
	}

	if h := cfg.MoodHandler; h != nil {
		moods := protected.Group("/moods")
		moods.POST("", can(policy.LogMood), h.Log)
		moods.GET("", h.ListMine)
		moods.GET("/history", h.History)
		moods.GET("/trends", h.Trends)
		moods.GET("/reports", can(policy.MoodReports), h.Reports)
		moods.GET("/coach/assigned", can(policy.CoachMoodTracking), h.CoachTracking)
		moods.PUT("/:id", h.Update)
		moods.DELETE("/:id", h.Delete)
	}

	if h := cfg.AssessmentHandler; h != nil {
		assessments := protected.Group("/assessments")
		assessments.POST("", can(policy.SubmitAssessment), h.Submit)
		assessments.GET("/review", can(policy.ReviewAssessment), h.PendingReview)
		assessments.GET("/user/:userId/history", h.History)
		assessments.GET("/:id", h.Get)
		assessments.POST("/:id/review", can(policy.ReviewAssessment), h.Review)
	}

	if h := cfg.AlertHandler; h != nil {
		alerts := protected.Group("/alerts")
		alerts.GET("", can(policy.ManageAlerts), h.List)
		alerts.GET("/summary", can(policy.ManageAlerts), h.Summary)
		alerts.GET("/youth/:userId", h.ListForYouth)
		alerts.GET("/:id", can(policy.ManageAlerts), h.Get)
		alerts.PUT("/:id/status", can(policy.ManageAlerts), h.UpdateStatus)
		alerts.POST("/:id/notes", can(policy.ManageAlerts), h.AddNote)
		alerts.POST("/:id/assign", can(policy.AssignAlert), h.Assign)
	}

	if h := cfg.MissionHandler; h != nil {
		missions := protected.Group("/missions")
		missions.GET("", h.List)
		missions.GET("/search", h.Search)
		missions.GET("/user/active", h.ListMineActive)
		missions.GET("/user/completed", h.ListMineCompleted)
		missions.GET("/user/history", h.ListMineHistory)
		missions.POST("", can(policy.ManageMissions), h.Create)
		missions.GET("/:id", h.Get)
		missions.PUT("/:id", can(policy.ManageMissions), h.Update)
		missions.DELETE("/:id", can(policy.ManageMissions), h.Delete)
		missions.POST("/:id/start", can(policy.PlayMission), h.Start)
		missions.POST("/:id/progress", can(policy.PlayMission), h.RecordDay)
		missions.GET("/:id/user-progress", h.UserProgress)
		missions.GET("/:id/leaderboard", h.Leaderboard)
	}

	if h := cfg.MissionAssignmentHandler; h != nil {
		assignments := protected.Group("/mission-assignments")
		assignments.POST("", can(policy.AssignMission), h.Assign)
		assignments.GET("/active/mine", h.ActiveMine)
		assignments.GET("/coach/assigned", can(policy.AssignMission), h.AssignedByMe)
		assignments.GET("/youth/:youthId", h.ListForYouth)
		assignments.PUT("/:id", h.Update)
		assignments.DELETE("/:id", h.Delete)
	}

	if h := cfg.MessageHandler; h != nil {
		messages := protected.Group("/messages")
		messages.POST("", h.Send)
		messages.GET("", h.Inbox)
		messages.GET("/sent", h.Sent)
		messages.GET("/unread/count", h.UnreadCount)
		messages.PUT("/:id/read", h.MarkRead)
		messages.DELETE("/:id", h.Delete)
	}

	if h := cfg.SurveyHandler; h != nil {
		protected.GET("/surveys", h.List)
		protected.GET("/surveys/:id", h.Get)
		surveyAssignments := protected.Group("/survey-assignments")
		surveyAssignments.POST("", h.Assign)
		surveyAssignments.GET("/mine", h.Mine)
		surveyAssignments.GET("/:id", h.GetAssignment)
		surveyAssignments.POST("/:id/start", h.Start)
		surveyAssignments.POST("/:id/submit", h.Submit)
	}

	return r
}
