package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/clinical"
	"github.com/yungbote/youthcare-backend/internal/data/repos"
	userrepo "github.com/yungbote/youthcare-backend/internal/data/repos/user"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/alert"
	"github.com/yungbote/youthcare-backend/internal/domain/assessment"
	"github.com/yungbote/youthcare-backend/internal/gamification"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

// submissionColumns maps each assessment type to the youth profile column
// that limits it to once per calendar day.
var submissionColumns = map[string]string{
	assessment.TypePHQ9:      userrepo.ColPHQ9Submission,
	assessment.TypeGAD7:      userrepo.ColGAD7Submission,
	assessment.TypeMoodQuick: userrepo.ColMoodCheck,
}

type AssessmentResult struct {
	Assessment *types.Assessment `json:"assessment"`
	gamification.Award
	LastSubmissionDate time.Time `json:"last_submission_date"`
}

type AssessmentService interface {
	Submit(dbc dbctx.Context, kind string, responses []types.AssessmentResponse) (*AssessmentResult, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Assessment, error)
	History(dbc dbctx.Context, userID uuid.UUID, kind string, page pagination.Page) (pagination.List[*types.Assessment], error)
	PendingReview(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.Assessment], error)
	Review(dbc dbctx.Context, id uuid.UUID, notes string) (*types.Assessment, error)
}

type assessmentService struct {
	db          *gorm.DB
	log         *logger.Logger
	assessments repos.AssessmentRepo
	youth       repos.YouthProfileRepo
	alerts      AlertService
	scales      clinical.Scales
	clock       Clock
}

func NewAssessmentService(db *gorm.DB, log *logger.Logger, assessments repos.AssessmentRepo, youth repos.YouthProfileRepo, alerts AlertService, clock Clock) AssessmentService {
	return &assessmentService{
		db:          db,
		log:         log.With("service", "AssessmentService"),
		assessments: assessments,
		youth:       youth,
		alerts:      alerts,
		scales:      clinical.DefaultScales,
		clock:       clock,
	}
}

func (s *assessmentService) Submit(dbc dbctx.Context, kind string, responses []types.AssessmentResponse) (*AssessmentResult, error) {
	actor, err := authorize(dbc, policy.SubmitAssessment, policy.Resource{})
	if err != nil {
		return nil, err
	}
	scale, err := s.scales.Lookup(kind)
	var unknown clinical.ErrUnknownType
	if errors.As(err, &unknown) {
		return nil, badRequest("invalid_type", "%s", unknown.Error())
	}
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, badRequest("responses_required", "responses are required")
	}
	for _, r := range responses {
		if strings.TrimSpace(r.QuestionID) == "" {
			return nil, badRequest("invalid_response", "every response needs a question_id")
		}
		if r.Score != nil && *r.Score < 0 {
			return nil, badRequest("invalid_score", "score for %s must not be negative", r.QuestionID)
		}
	}
	result, err := s.scales.Score(kind, responses)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := &AssessmentResult{LastSubmissionDate: now}
	var raised *types.Alert
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		profile, err := s.youth.GetByUserID(inner, actor.UserID)
		if err != nil {
			return fmt.Errorf("load youth profile: %w", err)
		}
		if profile == nil {
			return notFound("youth_profile_not_found", "youth profile not found")
		}
		stamped, err := s.youth.StampIfBefore(inner, actor.UserID, submissionColumns[kind], s.clock.Today(), now)
		if err != nil {
			return fmt.Errorf("stamp submission: %w", err)
		}
		if !stamped {
			return conflict("duplicate_submission", "a %s assessment was already submitted today", kind)
		}

		a := &types.Assessment{
			UserID:           actor.UserID,
			Type:             kind,
			Responses:        datatypes.JSONSlice[types.AssessmentResponse](responses),
			TotalScore:       result.TotalScore,
			Severity:         result.Severity,
			Recommendations:  datatypes.JSONSlice[string](result.Recommendations),
			FlaggedForReview: result.FlaggedForReview,
			CompletedAt:      now,
		}
		if err := s.assessments.Create(inner, a); err != nil {
			return fmt.Errorf("create assessment: %w", err)
		}
		out.Assessment = a

		award, err := grantXP(inner, s.youth, actor.UserID, scale.XP)
		if err != nil {
			return err
		}
		out.Award = award

		if a.FlaggedForReview {
			raised, err = s.raiseFor(inner, a)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Assessment submitted", "assessment_id", out.Assessment.ID, "type", kind, "severity", result.Severity, "flagged", result.FlaggedForReview)
	s.alerts.Announce(dbc.Ctx, raised)
	return out, nil
}

// raiseFor opens the alert for a flagged assessment. PHQ-9 reports as
// depression indicators and everything else as anxiety; a severe band is
// critical.
func (s *assessmentService) raiseFor(dbc dbctx.Context, a *types.Assessment) (*types.Alert, error) {
	kind := alert.TypeHighAnxiety
	if a.Type == assessment.TypePHQ9 {
		kind = alert.TypeDepressionIndicators
	}
	severity := alert.SeverityHigh
	if a.Severity == assessment.SeveritySevere {
		severity = alert.SeverityCritical
	}
	details, err := json.Marshal(map[string]any{"total_score": a.TotalScore, "severity": a.Severity})
	if err != nil {
		return nil, fmt.Errorf("encode alert details: %w", err)
	}
	triggerID := a.ID
	triggerModel := assessment.TriggerModel
	created, isNew, err := s.alerts.Raise(dbc, &types.Alert{
		YouthID:      a.UserID,
		Type:         kind,
		Severity:     severity,
		Source:       alert.SourceAssessment,
		TriggerID:    &triggerID,
		TriggerModel: &triggerModel,
		Description:  fmt.Sprintf("High %s score: %d", a.Type, a.TotalScore),
		Details:      datatypes.JSON(details),
	})
	if err != nil || !isNew {
		return nil, err
	}
	return created, nil
}

func (s *assessmentService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Assessment, error) {
	a, err := s.assessments.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}
	if a == nil {
		return nil, notFound("assessment_not_found", "assessment not found")
	}
	if _, err := authorize(dbc, policy.ReadAssessment, policy.Owned(a.UserID)); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assessmentService) History(dbc dbctx.Context, userID uuid.UUID, kind string, page pagination.Page) (pagination.List[*types.Assessment], error) {
	if _, err := authorize(dbc, policy.ReadAssessment, policy.Owned(userID)); err != nil {
		return pagination.List[*types.Assessment]{}, err
	}
	if kind != "" {
		if _, err := s.scales.Lookup(kind); err != nil {
			return pagination.List[*types.Assessment]{}, badRequest("invalid_type", "%s", err.Error())
		}
	}
	items, total, err := s.assessments.ListByUser(dbc, userID, kind, page)
	if err != nil {
		return pagination.List[*types.Assessment]{}, fmt.Errorf("list assessments: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *assessmentService) PendingReview(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.Assessment], error) {
	if _, err := authorize(dbc, policy.ReviewAssessment, policy.Resource{}); err != nil {
		return pagination.List[*types.Assessment]{}, err
	}
	items, total, err := s.assessments.ListPendingReview(dbc, page)
	if err != nil {
		return pagination.List[*types.Assessment]{}, fmt.Errorf("list pending review: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *assessmentService) Review(dbc dbctx.Context, id uuid.UUID, notes string) (*types.Assessment, error) {
	actor, err := authorize(dbc, policy.ReviewAssessment, policy.Resource{})
	if err != nil {
		return nil, err
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, badRequest("notes_required", "review notes are required")
	}
	a, err := s.assessments.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}
	if a == nil {
		return nil, notFound("assessment_not_found", "assessment not found")
	}
	if err := s.assessments.SetReview(dbc, id, actor.UserID, notes, s.clock.Now()); err != nil {
		return nil, fmt.Errorf("review assessment: %w", err)
	}
	return s.assessments.GetByID(dbc, id)
}
