package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	missionrepo "github.com/yungbote/youthcare-backend/internal/data/repos/mission"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/message"
	"github.com/yungbote/youthcare-backend/internal/domain/mission"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

const relatedMission = "mission"

type AssignMissionInput struct {
	MissionID uuid.UUID
	YouthID   uuid.UUID
	DueDate   *time.Time
	Notes     string
}

type AssignmentUpdate struct {
	Status   *string
	Score    *int
	Feedback *string
}

type MissionAssignmentService interface {
	Assign(dbc dbctx.Context, in AssignMissionInput) (*types.MissionAssignment, error)
	ActiveMine(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.MissionAssignment], error)
	AssignedByMe(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.MissionAssignment], error)
	ListForYouth(dbc dbctx.Context, youthID uuid.UUID, status string, page pagination.Page) (pagination.List[*types.MissionAssignment], error)
	Update(dbc dbctx.Context, id uuid.UUID, in AssignmentUpdate) (*types.MissionAssignment, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type missionAssignmentService struct {
	db          *gorm.DB
	log         *logger.Logger
	assignments repos.MissionAssignmentRepo
	missions    repos.MissionRepo
	messages    repos.MessageRepo
	users       repos.UserRepo
	youth       repos.YouthProfileRepo
	clock       Clock
}

func NewMissionAssignmentService(
	db *gorm.DB,
	log *logger.Logger,
	assignments repos.MissionAssignmentRepo,
	missions repos.MissionRepo,
	messages repos.MessageRepo,
	users repos.UserRepo,
	youth repos.YouthProfileRepo,
	clock Clock,
) MissionAssignmentService {
	return &missionAssignmentService{
		db:          db,
		log:         log.With("service", "MissionAssignmentService"),
		assignments: assignments,
		missions:    missions,
		messages:    messages,
		users:       users,
		youth:       youth,
		clock:       clock,
	}
}

// Assign gives a mission to a youth and drops a notification in the youth's
// inbox in the same transaction.
func (s *missionAssignmentService) Assign(dbc dbctx.Context, in AssignMissionInput) (*types.MissionAssignment, error) {
	actor, err := authorize(dbc, policy.AssignMission, policy.Resource{})
	if err != nil {
		return nil, err
	}
	if in.MissionID == uuid.Nil || in.YouthID == uuid.Nil {
		return nil, badRequest("ids_required", "mission_id and youth_id are required")
	}
	now := s.clock.Now()
	if in.DueDate != nil && in.DueDate.Before(now) {
		return nil, badRequest("invalid_due_date", "due date is in the past")
	}

	var a *types.MissionAssignment
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		m, err := s.missions.GetByID(inner, in.MissionID)
		if err != nil {
			return fmt.Errorf("load mission: %w", err)
		}
		if m == nil {
			return notFound("mission_not_found", "mission not found")
		}
		if !m.IsActive {
			return badRequest("mission_inactive", "mission is not active")
		}
		youth, err := s.users.GetByID(inner, in.YouthID)
		if err != nil {
			return fmt.Errorf("load youth: %w", err)
		}
		if youth == nil || youth.Role != user.RoleYouth {
			return notFound("youth_not_found", "youth not found")
		}
		open, err := s.assignments.GetOpen(inner, in.MissionID, in.YouthID)
		if err != nil {
			return fmt.Errorf("check open assignment: %w", err)
		}
		if open != nil {
			return conflict("already_assigned", "this mission is already assigned to the youth")
		}

		a = &types.MissionAssignment{
			MissionID:  in.MissionID,
			YouthID:    in.YouthID,
			AssignedBy: actor.UserID,
			Status:     mission.AssignmentAssigned,
			AssignedAt: now,
			DueDate:    in.DueDate,
			Notes:      strings.TrimSpace(in.Notes),
		}
		if err := s.assignments.Create(inner, a); err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}
		missionID := m.ID
		if err := s.messages.Create(inner, &types.Message{
			SenderID:          actor.UserID,
			RecipientID:       in.YouthID,
			Content:           "You have been assigned a new mission: " + m.Title,
			MessageType:       message.TypeAssignment,
			RelatedEntityType: relatedMission,
			RelatedEntityID:   &missionID,
		}); err != nil {
			return fmt.Errorf("create assignment message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Mission assigned", "assignment_id", a.ID, "mission_id", in.MissionID, "youth_id", in.YouthID, "by", actor.UserID)
	return s.assignments.GetByID(dbc, a.ID)
}

func (s *missionAssignmentService) ActiveMine(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.MissionAssignment], error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return pagination.List[*types.MissionAssignment]{}, err
	}
	return s.listByYouth(dbc, actor.UserID, missionrepo.OpenStatuses, page)
}

func (s *missionAssignmentService) AssignedByMe(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.MissionAssignment], error) {
	actor, err := authorize(dbc, policy.AssignMission, policy.Resource{})
	if err != nil {
		return pagination.List[*types.MissionAssignment]{}, err
	}
	items, total, err := s.assignments.ListByAssigner(dbc, actor.UserID, page)
	if err != nil {
		return pagination.List[*types.MissionAssignment]{}, fmt.Errorf("list assignments: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *missionAssignmentService) ListForYouth(dbc dbctx.Context, youthID uuid.UUID, status string, page pagination.Page) (pagination.List[*types.MissionAssignment], error) {
	p, err := s.youth.GetByUserID(dbc, youthID)
	if err != nil {
		return pagination.List[*types.MissionAssignment]{}, fmt.Errorf("load youth profile: %w", err)
	}
	if p == nil {
		return pagination.List[*types.MissionAssignment]{}, notFound("youth_profile_not_found", "youth profile not found")
	}
	if _, err := authorize(dbc, policy.ViewYouthRecords, youthResource(p)); err != nil {
		return pagination.List[*types.MissionAssignment]{}, err
	}
	var statuses []string
	if status != "" {
		if !mission.ValidAssignmentStatus(status) {
			return pagination.List[*types.MissionAssignment]{}, badRequest("invalid_status", "unknown assignment status %q", status)
		}
		statuses = []string{status}
	}
	return s.listByYouth(dbc, youthID, statuses, page)
}

func (s *missionAssignmentService) listByYouth(dbc dbctx.Context, youthID uuid.UUID, statuses []string, page pagination.Page) (pagination.List[*types.MissionAssignment], error) {
	items, total, err := s.assignments.ListByYouth(dbc, youthID, statuses, page)
	if err != nil {
		return pagination.List[*types.MissionAssignment]{}, fmt.Errorf("list assignments: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *missionAssignmentService) load(dbc dbctx.Context, id uuid.UUID) (*types.MissionAssignment, error) {
	a, err := s.assignments.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if a == nil {
		return nil, notFound("assignment_not_found", "assignment not found")
	}
	return a, nil
}

// Update changes status, score or feedback. started_at and completed_at are
// stamped on the first move into in-progress and completed.
func (s *missionAssignmentService) Update(dbc dbctx.Context, id uuid.UUID, in AssignmentUpdate) (*types.MissionAssignment, error) {
	a, err := s.load(dbc, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(dbc, policy.UpdateAssignment, policy.Owned(a.YouthID, a.AssignedBy)); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if in.Status != nil {
		status := strings.TrimSpace(*in.Status)
		if !mission.ValidAssignmentStatus(status) {
			return nil, badRequest("invalid_status", "status must be one of %s", strings.Join(mission.AssignmentStatuses, ", "))
		}
		a.Status = status
		if status == mission.AssignmentInProgress && a.StartedAt == nil {
			a.StartedAt = &now
		}
		if status == mission.AssignmentCompleted && a.CompletedAt == nil {
			a.CompletedAt = &now
		}
	}
	if in.Score != nil {
		if *in.Score < 0 || *in.Score > 100 {
			return nil, badRequest("invalid_score", "score must be between 0 and 100")
		}
		a.Score = in.Score
	}
	if in.Feedback != nil {
		a.Feedback = strings.TrimSpace(*in.Feedback)
	}
	if err := s.assignments.Save(dbc, a); err != nil {
		return nil, fmt.Errorf("save assignment: %w", err)
	}
	return a, nil
}

func (s *missionAssignmentService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	a, err := s.load(dbc, id)
	if err != nil {
		return err
	}
	if _, err := authorize(dbc, policy.DeleteAssignment, policy.Owned(a.YouthID, a.AssignedBy)); err != nil {
		return err
	}
	if err := s.assignments.Delete(dbc, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
