package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/clinical"
	"github.com/yungbote/youthcare-backend/internal/db"
	"github.com/yungbote/youthcare-backend/internal/data/repos"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/alert"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/observability"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

type AlertStatusInput struct {
	Status           string
	AssignedTo       *uuid.UUID
	FollowUpRequired *bool
	FollowUpDate     *time.Time
	Notes            string
}

type AlertService interface {
	// Raise stores a unless an alert already exists for its trigger, in
	// which case the existing alert is returned with created=false.
	Raise(dbc dbctx.Context, a *types.Alert) (*types.Alert, bool, error)
	// Announce publishes alert.created to the youth's coach and clinician.
	Announce(ctx context.Context, a *types.Alert)

	List(dbc dbctx.Context, filter repos.AlertFilter, page pagination.Page) (pagination.List[*types.Alert], error)
	Summary(dbc dbctx.Context) (*repos.AlertSummary, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Alert, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, in AlertStatusInput) (*types.Alert, error)
	AddNote(dbc dbctx.Context, id uuid.UUID, action, notes string) (*types.Alert, error)
	Assign(dbc dbctx.Context, id, clinicianID uuid.UUID) (*types.Alert, error)
	ListForYouth(dbc dbctx.Context, youthID uuid.UUID, page pagination.Page) (pagination.List[*types.Alert], error)
}

type alertService struct {
	db       *gorm.DB
	log      *logger.Logger
	alerts   repos.AlertRepo
	users    repos.UserRepo
	youth    repos.YouthProfileRepo
	notifier AlertNotifier
	clock    Clock
}

func NewAlertService(db *gorm.DB, log *logger.Logger, alerts repos.AlertRepo, users repos.UserRepo, youth repos.YouthProfileRepo, notifier AlertNotifier, clock Clock) AlertService {
	return &alertService{
		db:       db,
		log:      log.With("service", "AlertService"),
		alerts:   alerts,
		users:    users,
		youth:    youth,
		notifier: notifier,
		clock:    clock,
	}
}

func (s *alertService) Raise(dbc dbctx.Context, a *types.Alert) (*types.Alert, bool, error) {
	if a.TriggerID != nil && a.TriggerModel != nil {
		existing, err := s.alerts.GetByTrigger(dbc, *a.TriggerID, *a.TriggerModel)
		if err != nil {
			return nil, false, fmt.Errorf("lookup alert trigger: %w", err)
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	if a.Status == "" {
		a.Status = alert.StatusActive
	}

	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		return s.alerts.Create(inner, a)
	})
	if err != nil && db.IsUniqueViolation(err) && a.TriggerID != nil && a.TriggerModel != nil {
		// Lost the race to a concurrent writer for the same trigger.
		existing, lookupErr := s.alerts.GetByTrigger(dbc, *a.TriggerID, *a.TriggerModel)
		if lookupErr != nil {
			return nil, false, fmt.Errorf("lookup alert trigger: %w", lookupErr)
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("create alert: %w", err)
	}
	s.log.Info("Alert raised", "alert_id", a.ID, "youth_id", a.YouthID, "type", a.Type, "severity", a.Severity)
	return a, true, nil
}

func (s *alertService) Announce(ctx context.Context, a *types.Alert) {
	if a == nil {
		return
	}
	observability.Current().IncAlertRaised(a.Type, a.Severity)
	if s.notifier == nil {
		return
	}
	dbc := dbctx.Context{Ctx: ctx}
	var recipients []uuid.UUID
	profile, err := s.youth.GetByUserID(dbc, a.YouthID)
	if err != nil {
		s.log.Warn("alert recipients lookup failed", "alert_id", a.ID, "error", err)
	}
	if profile != nil {
		for _, id := range []*uuid.UUID{profile.CoachID, profile.ClinicianID} {
			if id != nil && *id != uuid.Nil {
				recipients = append(recipients, *id)
			}
		}
	}
	s.notifier.AlertCreated(ctx, a, recipients)
}

func (s *alertService) List(dbc dbctx.Context, filter repos.AlertFilter, page pagination.Page) (pagination.List[*types.Alert], error) {
	if _, err := authorize(dbc, policy.ManageAlerts, policy.Resource{}); err != nil {
		return pagination.List[*types.Alert]{}, err
	}
	if filter.Status != "" && !alert.ValidStatus(filter.Status) {
		return pagination.List[*types.Alert]{}, badRequest("invalid_status", "invalid alert status %q", filter.Status)
	}
	if filter.Severity != "" && !alert.ValidSeverity(filter.Severity) {
		return pagination.List[*types.Alert]{}, badRequest("invalid_severity", "invalid alert severity %q", filter.Severity)
	}
	if filter.Type != "" && !alert.ValidType(filter.Type) {
		return pagination.List[*types.Alert]{}, badRequest("invalid_type", "invalid alert type %q", filter.Type)
	}
	items, total, err := s.alerts.List(dbc, filter, page)
	if err != nil {
		return pagination.List[*types.Alert]{}, fmt.Errorf("list alerts: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *alertService) Summary(dbc dbctx.Context) (*repos.AlertSummary, error) {
	if _, err := authorize(dbc, policy.ManageAlerts, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.alerts.Summary(dbc)
}

func (s *alertService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Alert, error) {
	if _, err := authorize(dbc, policy.ManageAlerts, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.load(dbc, id)
}

func (s *alertService) load(dbc dbctx.Context, id uuid.UUID) (*types.Alert, error) {
	a, err := s.alerts.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load alert: %w", err)
	}
	if a == nil {
		return nil, notFound("alert_not_found", "alert not found")
	}
	return a, nil
}

func (s *alertService) UpdateStatus(dbc dbctx.Context, id uuid.UUID, in AlertStatusInput) (*types.Alert, error) {
	actor, err := authorize(dbc, policy.ManageAlerts, policy.Resource{})
	if err != nil {
		return nil, err
	}
	if !alert.ValidStatus(in.Status) {
		return nil, badRequest("invalid_status", "invalid alert status %q", in.Status)
	}

	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		a, err := s.load(inner, id)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		changed, err := clinical.ApplyStatus(a, in.Status, now)
		var invalid clinical.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return badRequest("invalid_transition", "%s", invalid.Error())
		}
		if err != nil {
			return badRequest("invalid_status", "%s", err.Error())
		}
		if in.AssignedTo != nil {
			if err := s.requireClinician(inner, *in.AssignedTo); err != nil {
				return err
			}
			a.AssignedTo = in.AssignedTo
		}
		if in.FollowUpRequired != nil {
			a.FollowUpRequired = *in.FollowUpRequired
		}
		if in.FollowUpDate != nil {
			a.FollowUpDate = in.FollowUpDate
		}
		if err := s.alerts.Save(inner, a); err != nil {
			return fmt.Errorf("save alert: %w", err)
		}
		action := "status:" + in.Status
		notes := strings.TrimSpace(in.Notes)
		if !changed {
			if notes == "" {
				return nil
			}
			action = "note"
		}
		if err := s.alerts.AddAction(inner, &types.AlertAction{
			AlertID: a.ID,
			Action:  action,
			TakenBy: actor.UserID,
			Notes:   notes,
			TakenAt: now,
		}); err != nil {
			return fmt.Errorf("record alert action: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(dbc, id)
}

func (s *alertService) AddNote(dbc dbctx.Context, id uuid.UUID, action, notes string) (*types.Alert, error) {
	actor, err := authorize(dbc, policy.ManageAlerts, policy.Resource{})
	if err != nil {
		return nil, err
	}
	action = strings.TrimSpace(action)
	notes = strings.TrimSpace(notes)
	if action == "" {
		action = "note"
	}
	if notes == "" {
		return nil, badRequest("notes_required", "notes are required")
	}
	if _, err := s.load(dbc, id); err != nil {
		return nil, err
	}
	if err := s.alerts.AddAction(dbc, &types.AlertAction{
		AlertID: id,
		Action:  action,
		TakenBy: actor.UserID,
		Notes:   notes,
		TakenAt: s.clock.Now(),
	}); err != nil {
		return nil, fmt.Errorf("record alert action: %w", err)
	}
	return s.load(dbc, id)
}

func (s *alertService) Assign(dbc dbctx.Context, id, clinicianID uuid.UUID) (*types.Alert, error) {
	actor, err := authorize(dbc, policy.AssignAlert, policy.Resource{})
	if err != nil {
		return nil, err
	}
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		a, err := s.load(inner, id)
		if err != nil {
			return err
		}
		if err := s.requireClinician(inner, clinicianID); err != nil {
			return err
		}
		a.AssignedTo = &clinicianID
		if err := s.alerts.Save(inner, a); err != nil {
			return fmt.Errorf("save alert: %w", err)
		}
		return s.alerts.AddAction(inner, &types.AlertAction{
			AlertID: a.ID,
			Action:  "assigned",
			TakenBy: actor.UserID,
			Notes:   clinicianID.String(),
			TakenAt: s.clock.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.load(dbc, id)
}

func (s *alertService) requireClinician(dbc dbctx.Context, id uuid.UUID) error {
	u, err := s.users.GetByID(dbc, id)
	if err != nil {
		return fmt.Errorf("load clinician: %w", err)
	}
	if u == nil || u.Role != user.RoleClinician || !u.IsActive {
		return badRequest("invalid_clinician", "assignee must be an active clinician")
	}
	return nil
}

func (s *alertService) ListForYouth(dbc dbctx.Context, youthID uuid.UUID, page pagination.Page) (pagination.List[*types.Alert], error) {
	if _, err := authorize(dbc, policy.ReadYouthAlerts, policy.Owned(youthID)); err != nil {
		return pagination.List[*types.Alert]{}, err
	}
	items, total, err := s.alerts.List(dbc, repos.AlertFilter{YouthID: &youthID}, page)
	if err != nil {
		return pagination.List[*types.Alert]{}, fmt.Errorf("list youth alerts: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}
