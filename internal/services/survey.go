package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/data/seeds"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/survey"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

type SurveyAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     any    `json:"answer"`
}

type SurveyService interface {
	Seed(dbc dbctx.Context) error
	ListActive(dbc dbctx.Context) ([]*types.Survey, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Survey, error)
	Assign(dbc dbctx.Context, surveyID, youthID uuid.UUID) (*types.SurveyAssignment, error)
	Mine(dbc dbctx.Context, status string) ([]*types.SurveyAssignment, error)
	GetAssignment(dbc dbctx.Context, id uuid.UUID) (*types.SurveyAssignment, error)
	Start(dbc dbctx.Context, id uuid.UUID) (*types.SurveyAssignment, error)
	Submit(dbc dbctx.Context, id uuid.UUID, answers []SurveyAnswer) (*types.SurveyAssignment, error)
}

type surveyService struct {
	db          *gorm.DB
	log         *logger.Logger
	surveys     repos.SurveyRepo
	assignments repos.SurveyAssignmentRepo
	youth       repos.YouthProfileRepo
	clock       Clock
}

func NewSurveyService(db *gorm.DB, log *logger.Logger, surveys repos.SurveyRepo, assignments repos.SurveyAssignmentRepo, youth repos.YouthProfileRepo, clock Clock) SurveyService {
	return &surveyService{
		db:          db,
		log:         log.With("service", "SurveyService"),
		surveys:     surveys,
		assignments: assignments,
		youth:       youth,
		clock:       clock,
	}
}

// Seed upserts the bundled surveys. It runs at startup without a caller.
func (s *surveyService) Seed(dbc dbctx.Context) error {
	return inTx(dbc, s.db, func(inner dbctx.Context) error {
		return seeds.SeedSurveys(inner, s.surveys, s.log)
	})
}

func (s *surveyService) ListActive(dbc dbctx.Context) ([]*types.Survey, error) {
	if _, err := authorize(dbc, policy.ListSurveys, policy.Resource{}); err != nil {
		return nil, err
	}
	items, err := s.surveys.ListActive(dbc)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	if items == nil {
		items = []*types.Survey{}
	}
	return items, nil
}

func (s *surveyService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Survey, error) {
	if _, err := authorize(dbc, policy.ListSurveys, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.loadSurvey(dbc, id)
}

func (s *surveyService) loadSurvey(dbc dbctx.Context, id uuid.UUID) (*types.Survey, error) {
	sv, err := s.surveys.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	if sv == nil {
		return nil, notFound("survey_not_found", "survey not found")
	}
	return sv, nil
}

// Assign gives a survey to a youth. Coaches may only assign to youth they
// coach; clinicians and admins to anyone.
func (s *surveyService) Assign(dbc dbctx.Context, surveyID, youthID uuid.UUID) (*types.SurveyAssignment, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	if actor.Role != user.RoleCoach && !policy.Allow(actor, policy.AssignSurvey, policy.Resource{}) {
		return nil, ErrForbidden
	}
	if surveyID == uuid.Nil || youthID == uuid.Nil {
		return nil, badRequest("ids_required", "survey_id and youth_id are required")
	}
	var a *types.SurveyAssignment
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		sv, err := s.loadSurvey(inner, surveyID)
		if err != nil {
			return err
		}
		if !sv.IsActive {
			return badRequest("survey_inactive", "survey is not active")
		}
		profile, err := s.youth.GetByUserID(inner, youthID)
		if err != nil {
			return fmt.Errorf("load youth profile: %w", err)
		}
		if profile == nil {
			return notFound("youth_not_found", "youth not found")
		}
		var managers []uuid.UUID
		if profile.CoachID != nil {
			managers = append(managers, *profile.CoachID)
		}
		if _, err := authorize(inner, policy.AssignSurvey, policy.Owned(youthID, managers...)); err != nil {
			return forbidden("you can only assign surveys to your assigned youth")
		}
		open, err := s.assignments.GetOpen(inner, surveyID, youthID)
		if err != nil {
			return fmt.Errorf("check open assignment: %w", err)
		}
		if open != nil {
			return conflict("already_assigned", "this survey is already assigned to the youth")
		}
		a = &types.SurveyAssignment{
			SurveyID:       surveyID,
			YouthID:        youthID,
			AssignedBy:     actor.UserID,
			AssignedByRole: actor.Role,
			Status:         survey.AssignmentAssigned,
			AssignedAt:     s.clock.Now(),
		}
		if err := s.assignments.Create(inner, a); err != nil {
			return fmt.Errorf("create survey assignment: %w", err)
		}
		a.Survey = sv
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Survey assigned", "assignment_id", a.ID, "survey_id", surveyID, "youth_id", youthID, "by", actor.UserID)
	return a, nil
}

func (s *surveyService) Mine(dbc dbctx.Context, status string) ([]*types.SurveyAssignment, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	var statuses []string
	switch status {
	case "", "all":
	case survey.AssignmentAssigned, survey.AssignmentInProgress, survey.AssignmentCompleted:
		statuses = []string{status}
	default:
		return nil, badRequest("invalid_status", "unknown assignment status %q", status)
	}
	items, err := s.assignments.ListByYouth(dbc, actor.UserID, statuses)
	if err != nil {
		return nil, fmt.Errorf("list survey assignments: %w", err)
	}
	if items == nil {
		items = []*types.SurveyAssignment{}
	}
	return items, nil
}

func (s *surveyService) loadAssignment(dbc dbctx.Context, id uuid.UUID) (*types.SurveyAssignment, error) {
	a, err := s.assignments.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load survey assignment: %w", err)
	}
	if a == nil {
		return nil, notFound("assignment_not_found", "survey assignment not found")
	}
	return a, nil
}

func (s *surveyService) GetAssignment(dbc dbctx.Context, id uuid.UUID) (*types.SurveyAssignment, error) {
	a, err := s.loadAssignment(dbc, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(dbc, policy.ReadSurveyAssigned, policy.Owned(a.YouthID, a.AssignedBy)); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *surveyService) Start(dbc dbctx.Context, id uuid.UUID) (*types.SurveyAssignment, error) {
	a, err := s.loadAssignment(dbc, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(dbc, policy.TakeSurvey, policy.Owned(a.YouthID)); err != nil {
		return nil, err
	}
	switch a.Status {
	case survey.AssignmentCompleted:
		return nil, conflict("survey_already_completed", "this survey has already been submitted")
	case survey.AssignmentInProgress:
		return a, nil
	}
	now := s.clock.Now()
	a.Status = survey.AssignmentInProgress
	a.StartedAt = &now
	if err := s.assignments.Save(dbc, a); err != nil {
		return nil, fmt.Errorf("start survey: %w", err)
	}
	return a, nil
}

func (s *surveyService) Submit(dbc dbctx.Context, id uuid.UUID, answers []SurveyAnswer) (*types.SurveyAssignment, error) {
	a, err := s.loadAssignment(dbc, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(dbc, policy.TakeSurvey, policy.Owned(a.YouthID)); err != nil {
		return nil, err
	}
	if a.Status == survey.AssignmentCompleted {
		return nil, conflict("survey_already_completed", "this survey has already been submitted")
	}
	sv := a.Survey
	if sv == nil {
		if sv, err = s.loadSurvey(dbc, a.SurveyID); err != nil {
			return nil, err
		}
	}
	now := s.clock.Now()
	responses, err := ValidateAnswers(sv, answers, now)
	if err != nil {
		return nil, err
	}
	if a.StartedAt == nil {
		a.StartedAt = &now
	}
	a.Status = survey.AssignmentCompleted
	a.CompletedAt = &now
	a.Responses = responses
	if err := s.assignments.Save(dbc, a); err != nil {
		return nil, fmt.Errorf("submit survey: %w", err)
	}
	s.log.Info("Survey submitted", "assignment_id", a.ID, "survey_id", a.SurveyID, "responses", len(responses))
	return a, nil
}

// ValidateAnswers checks answers against the survey's questions and stamps
// each with answeredAt. Every required question needs a non-blank answer.
func ValidateAnswers(sv *types.Survey, answers []SurveyAnswer, answeredAt time.Time) ([]types.SurveyResponse, error) {
	if len(answers) == 0 {
		return nil, badRequest("responses_required", "responses are required")
	}
	seen := map[string]bool{}
	out := make([]types.SurveyResponse, 0, len(answers))
	for _, ans := range answers {
		qid := strings.TrimSpace(ans.QuestionID)
		q, ok := sv.Question(qid)
		if !ok {
			return nil, badRequest("unknown_question", "survey has no question %q", qid)
		}
		if seen[qid] {
			return nil, badRequest("duplicate_response", "question %s answered twice", qid)
		}
		seen[qid] = true
		if !q.Answerable() {
			continue
		}
		if err := checkChoice(q, ans.Answer); err != nil {
			return nil, err
		}
		if blank(ans.Answer) {
			continue
		}
		out = append(out, types.SurveyResponse{QuestionID: qid, Answer: ans.Answer, AnsweredAt: answeredAt})
	}
	answered := map[string]bool{}
	for _, r := range out {
		answered[r.QuestionID] = true
	}
	for _, q := range sv.Questions {
		if q.Required && !answered[q.ID] {
			return nil, badRequest("missing_required_answer", "question %s is required", q.ID)
		}
	}
	return out, nil
}

func blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

// checkChoice rejects choice answers that are not among the options.
func checkChoice(q types.SurveyQuestion, v any) error {
	if len(q.Options) == 0 || blank(v) {
		return nil
	}
	var picked []string
	switch t := v.(type) {
	case string:
		picked = []string{t}
	case []string:
		picked = t
	case []any:
		for _, e := range t {
			str, ok := e.(string)
			if !ok {
				return badRequest("invalid_answer", "question %s expects option values", q.ID)
			}
			picked = append(picked, str)
		}
	default:
		return badRequest("invalid_answer", "question %s expects option values", q.ID)
	}
	if len(picked) > 1 && !q.AllowMultiple {
		return badRequest("invalid_answer", "question %s takes a single choice", q.ID)
	}
	for _, p := range picked {
		if !hasOption(q, p) {
			return badRequest("invalid_answer", "%q is not an option for question %s", p, q.ID)
		}
	}
	return nil
}

func hasOption(q types.SurveyQuestion, v string) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}
