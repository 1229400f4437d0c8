package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/apierr"
	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

// fixedNow is a Wednesday afternoon in UTC.
var fixedNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

type harness struct {
	db    *gorm.DB
	tx    *gorm.DB
	log   *logger.Logger
	ctx   context.Context
	clock Clock

	users       repos.UserRepo
	tokens      repos.UserTokenRepo
	youth       repos.YouthProfileRepo
	coaches     repos.CoachProfileRepo
	clinicians  repos.ClinicianProfileRepo
	parents     repos.ParentProfileRepo
	journals    repos.JournalRepo
	moods       repos.MoodRepo
	assessments repos.AssessmentRepo
	alertRepo   repos.AlertRepo
	missions    repos.MissionRepo
	progress    repos.MissionProgressRepo
	assignments repos.MissionAssignmentRepo
	messages    repos.MessageRepo
	surveys     repos.SurveyRepo
	surveyAsg   repos.SurveyAssignmentRepo

	alerts AlertService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	h := &harness{
		db:          db,
		tx:          tx,
		log:         log,
		ctx:         context.Background(),
		clock:       Clock{NowFunc: func() time.Time { return fixedNow }, Location: time.UTC},
		users:       repos.NewUserRepo(db, log),
		tokens:      repos.NewUserTokenRepo(db, log),
		youth:       repos.NewYouthProfileRepo(db, log),
		coaches:     repos.NewCoachProfileRepo(db, log),
		clinicians:  repos.NewClinicianProfileRepo(db, log),
		parents:     repos.NewParentProfileRepo(db, log),
		journals:    repos.NewJournalRepo(db, log),
		moods:       repos.NewMoodRepo(db, log),
		assessments: repos.NewAssessmentRepo(db, log),
		alertRepo:   repos.NewAlertRepo(db, log),
		missions:    repos.NewMissionRepo(db, log),
		progress:    repos.NewMissionProgressRepo(db, log),
		assignments: repos.NewMissionAssignmentRepo(db, log),
		messages:    repos.NewMessageRepo(db, log),
		surveys:     repos.NewSurveyRepo(db, log),
		surveyAsg:   repos.NewSurveyAssignmentRepo(db, log),
	}
	h.alerts = NewAlertService(db, log, h.alertRepo, h.users, h.youth, nil, h.clock)
	return h
}

// as returns a db context authenticated as u and bound to the test tx.
func (h *harness) as(u *types.User) dbctx.Context {
	ctx := ctxutil.WithRequestData(h.ctx, &ctxutil.RequestData{UserID: u.ID, Role: u.Role})
	return dbctx.Context{Ctx: ctx, Tx: h.tx}
}

func (h *harness) anon() dbctx.Context {
	return dbctx.Context{Ctx: h.ctx, Tx: h.tx}
}

func (h *harness) userService() UserService {
	return NewUserService(h.db, h.log, h.users, h.tokens, h.youth, h.coaches, h.clinicians, h.parents, h.journals, h.moods, h.progress, h.clock)
}

func (h *harness) authService() AuthService {
	cfg := AuthConfig{
		JWTSecretKey: "test-secret",
		AccessTTL:    15 * time.Minute,
		RefreshTTL:   24 * time.Hour,
		FrontendURL:  "http://localhost:3000",
		BcryptCost:   bcrypt.MinCost,
	}
	return NewAuthService(h.db, h.log, h.users, h.tokens, h.youth, h.coaches, h.clinicians, h.parents, nil, cfg, h.clock)
}

func (h *harness) missionService() MissionService {
	return NewMissionService(h.db, h.log, h.missions, h.progress, h.youth, h.clock)
}

func (h *harness) assignmentService() MissionAssignmentService {
	return NewMissionAssignmentService(h.db, h.log, h.assignments, h.missions, h.messages, h.users, h.youth, h.clock)
}

func (h *harness) messageService() MessageService {
	return NewMessageService(h.db, h.log, h.messages, h.users, h.clock)
}

func (h *harness) moodService() MoodService {
	return NewMoodService(h.db, h.log, h.moods, h.youth, h.clock)
}

func (h *harness) journalService() JournalService {
	return NewJournalService(h.db, h.log, h.journals, h.alerts, h.clock)
}

func (h *harness) assessmentService() AssessmentService {
	return NewAssessmentService(h.db, h.log, h.assessments, h.youth, h.alerts, h.clock)
}

func (h *harness) surveyService() SurveyService {
	return NewSurveyService(h.db, h.log, h.surveys, h.surveyAsg, h.youth, h.clock)
}

func (h *harness) seedUser(t *testing.T, role string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, h.ctx, h.tx, role)
}

func (h *harness) seedYouth(t *testing.T, coachID *uuid.UUID) (*types.User, *types.YouthProfile) {
	t.Helper()
	return testutil.SeedYouth(t, h.ctx, h.tx, coachID)
}

func wantCode(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("err=nil, want %d %s", status, code)
	}
	ae := apierr.From(err)
	if ae.Status != status || ae.Code != code {
		t.Fatalf("err=%v (status=%d code=%q), want %d %s", err, ae.Status, ae.Code, status, code)
	}
}
