package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/mission"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/gamification"
	"github.com/yungbote/youthcare-backend/internal/normalization"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

const (
	missionSearchLimit      = 20
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type MissionInput struct {
	Title           string
	Description     string
	Objectives      []string
	Difficulty      string
	Category        string
	RewardPoints    int
	RewardBadges    []string
	TargetAgeGroups []string
	Duration        int
	DurationUnit    string
	Tags            []string
	ImageURL        string
}

type MissionPatch struct {
	Title           *string
	Description     *string
	Objectives      *[]string
	Difficulty      *string
	Category        *string
	RewardPoints    *int
	RewardBadges    *[]string
	TargetAgeGroups *[]string
	Duration        *int
	DurationUnit    *string
	Tags            *[]string
	ImageURL        *string
	IsActive        *bool
}

// DayInput is one day's report. At least one of Completed or Skipped must
// be given.
type DayInput struct {
	Day       int
	Completed *bool
	Skipped   *bool
	Note      string
}

type ProgressResult struct {
	Progress *types.MissionProgress `json:"progress"`
	Reward   *gamification.Award    `json:"reward,omitempty"`
}

type LeaderboardEntry struct {
	Rank        int                `json:"rank"`
	User        *types.UserSummary `json:"user"`
	XPEarned    int                `json:"xp_earned"`
	CompletedAt *time.Time         `json:"completed_at"`
}

type MissionService interface {
	List(dbc dbctx.Context, filter repos.MissionFilter, page pagination.Page) (pagination.List[*types.Mission], error)
	Search(dbc dbctx.Context, query string) ([]*types.Mission, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Mission, error)
	Create(dbc dbctx.Context, in MissionInput) (*types.Mission, error)
	Update(dbc dbctx.Context, id uuid.UUID, patch MissionPatch) (*types.Mission, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	Start(dbc dbctx.Context, missionID uuid.UUID) (*types.MissionProgress, error)
	RecordDay(dbc dbctx.Context, missionID uuid.UUID, in DayInput) (*ProgressResult, error)
	UserProgress(dbc dbctx.Context, missionID uuid.UUID) (*types.MissionProgress, error)
	ListMine(dbc dbctx.Context, status string, page pagination.Page) (pagination.List[*types.MissionProgress], error)
	ListForYouth(dbc dbctx.Context, youthID uuid.UUID, status string, page pagination.Page) (pagination.List[*types.MissionProgress], error)
	Leaderboard(dbc dbctx.Context, missionID uuid.UUID, limit int) ([]*LeaderboardEntry, error)
}

type missionService struct {
	db       *gorm.DB
	log      *logger.Logger
	missions repos.MissionRepo
	progress repos.MissionProgressRepo
	youth    repos.YouthProfileRepo
	clock    Clock
}

func NewMissionService(db *gorm.DB, log *logger.Logger, missions repos.MissionRepo, progress repos.MissionProgressRepo, youth repos.YouthProfileRepo, clock Clock) MissionService {
	return &missionService{
		db:       db,
		log:      log.With("service", "MissionService"),
		missions: missions,
		progress: progress,
		youth:    youth,
		clock:    clock,
	}
}

func (s *missionService) List(dbc dbctx.Context, filter repos.MissionFilter, page pagination.Page) (pagination.List[*types.Mission], error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return pagination.List[*types.Mission]{}, err
	}
	if filter.Category != "" && !mission.ValidCategory(filter.Category) {
		return pagination.List[*types.Mission]{}, badRequest("invalid_category", "unknown category %q", filter.Category)
	}
	if filter.Difficulty != "" && !mission.ValidDifficulty(filter.Difficulty) {
		return pagination.List[*types.Mission]{}, badRequest("invalid_difficulty", "unknown difficulty %q", filter.Difficulty)
	}
	// Retired missions are only listed for the people who manage them.
	if filter.Active == nil || !policy.Allow(actor, policy.ManageMissions, policy.Resource{}) {
		active := true
		filter.Active = &active
	}
	items, total, err := s.missions.List(dbc, filter, page)
	if err != nil {
		return pagination.List[*types.Mission]{}, fmt.Errorf("list missions: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *missionService) Search(dbc dbctx.Context, query string) ([]*types.Mission, error) {
	if _, err := actorFrom(dbc); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, badRequest("query_required", "search query is required")
	}
	active := true
	items, _, err := s.missions.List(dbc, repos.MissionFilter{Query: query, Active: &active}, pagination.Page{Page: 1, Limit: missionSearchLimit})
	if err != nil {
		return nil, fmt.Errorf("search missions: %w", err)
	}
	if items == nil {
		items = []*types.Mission{}
	}
	return items, nil
}

func (s *missionService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Mission, error) {
	if _, err := actorFrom(dbc); err != nil {
		return nil, err
	}
	return s.load(dbc, id)
}

func (s *missionService) load(dbc dbctx.Context, id uuid.UUID) (*types.Mission, error) {
	m, err := s.missions.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}
	if m == nil {
		return nil, notFound("mission_not_found", "mission not found")
	}
	return m, nil
}

func (s *missionService) Create(dbc dbctx.Context, in MissionInput) (*types.Mission, error) {
	actor, err := authorize(dbc, policy.ManageMissions, policy.Resource{})
	if err != nil {
		return nil, err
	}
	m := &types.Mission{
		Title:           normalization.Name(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Objectives:      normalization.List(in.Objectives),
		Difficulty:      strings.TrimSpace(in.Difficulty),
		Category:        strings.TrimSpace(in.Category),
		RewardPoints:    in.RewardPoints,
		RewardBadges:    normalization.List(in.RewardBadges),
		TargetAgeGroups: normalization.List(in.TargetAgeGroups),
		Duration:        in.Duration,
		DurationUnit:    strings.TrimSpace(in.DurationUnit),
		Tags:            normalization.List(in.Tags),
		ImageURL:        strings.TrimSpace(in.ImageURL),
		CreatedBy:       actor.UserID,
		IsActive:        true,
	}
	if m.Difficulty == "" {
		m.Difficulty = mission.DifficultyEasy
	}
	if m.DurationUnit == "" {
		m.DurationUnit = mission.UnitDays
	}
	if m.Duration == 0 {
		m.Duration = 1
	}
	if m.RewardPoints == 0 {
		m.RewardPoints = mission.DefaultRewardPoints
	}
	if err := validateMission(m); err != nil {
		return nil, err
	}
	if err := s.missions.Create(dbc, m); err != nil {
		return nil, fmt.Errorf("create mission: %w", err)
	}
	s.log.Info("Mission created", "mission_id", m.ID, "created_by", actor.UserID)
	return m, nil
}

func validateMission(m *types.Mission) error {
	switch {
	case m.Title == "":
		return badRequest("title_required", "title is required")
	case m.Description == "":
		return badRequest("description_required", "description is required")
	case !mission.ValidDifficulty(m.Difficulty):
		return badRequest("invalid_difficulty", "difficulty must be one of %s", strings.Join(mission.Difficulties, ", "))
	case !mission.ValidCategory(m.Category):
		return badRequest("invalid_category", "category must be one of %s", strings.Join(mission.Categories, ", "))
	case !mission.ValidDurationUnit(m.DurationUnit):
		return badRequest("invalid_duration_unit", "duration_unit must be one of %s", strings.Join(mission.DurationUnits, ", "))
	case m.Duration < 1:
		return badRequest("invalid_duration", "duration must be at least 1")
	case m.RewardPoints < 0:
		return badRequest("invalid_reward_points", "reward_points must not be negative")
	}
	for _, g := range m.TargetAgeGroups {
		if !mission.ValidAgeGroup(g) {
			return badRequest("invalid_age_group", "unknown age group %q", g)
		}
	}
	return nil
}

// loadOwned loads a mission the caller may edit: its creator, or an admin.
func (s *missionService) loadOwned(dbc dbctx.Context, id uuid.UUID) (*types.Mission, error) {
	actor, err := authorize(dbc, policy.ManageMissions, policy.Resource{})
	if err != nil {
		return nil, err
	}
	m, err := s.load(dbc, id)
	if err != nil {
		return nil, err
	}
	if m.CreatedBy != actor.UserID && actor.Role != user.RoleAdmin {
		return nil, forbidden("only the creator or an admin may change this mission")
	}
	return m, nil
}

func (s *missionService) Update(dbc dbctx.Context, id uuid.UUID, patch MissionPatch) (*types.Mission, error) {
	m, err := s.loadOwned(dbc, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		m.Title = normalization.Name(*patch.Title)
	}
	if patch.Description != nil {
		m.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Objectives != nil {
		m.Objectives = normalization.List(*patch.Objectives)
	}
	if patch.Difficulty != nil {
		m.Difficulty = strings.TrimSpace(*patch.Difficulty)
	}
	if patch.Category != nil {
		m.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.RewardPoints != nil {
		m.RewardPoints = *patch.RewardPoints
	}
	if patch.RewardBadges != nil {
		m.RewardBadges = normalization.List(*patch.RewardBadges)
	}
	if patch.TargetAgeGroups != nil {
		m.TargetAgeGroups = normalization.List(*patch.TargetAgeGroups)
	}
	if patch.Duration != nil {
		m.Duration = *patch.Duration
	}
	if patch.DurationUnit != nil {
		m.DurationUnit = strings.TrimSpace(*patch.DurationUnit)
	}
	if patch.Tags != nil {
		m.Tags = normalization.List(*patch.Tags)
	}
	if patch.ImageURL != nil {
		m.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.IsActive != nil {
		m.IsActive = *patch.IsActive
	}
	if err := validateMission(m); err != nil {
		return nil, err
	}
	if err := s.missions.Save(dbc, m); err != nil {
		return nil, fmt.Errorf("save mission: %w", err)
	}
	return m, nil
}

func (s *missionService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	m, err := s.loadOwned(dbc, id)
	if err != nil {
		return err
	}
	if err := s.missions.Delete(dbc, m.ID); err != nil {
		return fmt.Errorf("delete mission: %w", err)
	}
	s.log.Info("Mission deleted", "mission_id", m.ID)
	return nil
}

func (s *missionService) Start(dbc dbctx.Context, missionID uuid.UUID) (*types.MissionProgress, error) {
	actor, err := authorize(dbc, policy.PlayMission, policy.Resource{})
	if err != nil {
		return nil, err
	}
	m, err := s.load(dbc, missionID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, badRequest("mission_inactive", "mission is not active")
	}
	p := gamification.NewProgress(actor.UserID, m, s.clock.Now())
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		existing, err := s.progress.GetActive(inner, actor.UserID, missionID)
		if err != nil {
			return fmt.Errorf("load active progress: %w", err)
		}
		if existing != nil {
			return conflict("mission_already_active", "this mission is already in progress; complete or fail it before starting again")
		}
		if err := s.progress.Create(inner, p); err != nil {
			return uniqueAs(err, "mission_already_active", "this mission is already in progress")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.Mission = m
	s.log.Info("Mission started", "mission_id", missionID, "user_id", actor.UserID, "days", p.TotalDays())
	return p, nil
}

func (s *missionService) RecordDay(dbc dbctx.Context, missionID uuid.UUID, in DayInput) (*ProgressResult, error) {
	actor, err := authorize(dbc, policy.PlayMission, policy.Resource{})
	if err != nil {
		return nil, err
	}
	if in.Day == 0 || (in.Completed == nil && in.Skipped == nil) {
		return nil, badRequest("action_required", "day and completed or skipped are required")
	}
	update := gamification.DayUpdate{Day: in.Day, Note: strings.TrimSpace(in.Note)}
	if in.Completed != nil {
		update.Completed = *in.Completed
	}
	if in.Skipped != nil {
		update.Skipped = *in.Skipped
	}

	out := &ProgressResult{}
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		p, err := s.progress.GetActive(inner, actor.UserID, missionID)
		if err != nil {
			return fmt.Errorf("load active progress: %w", err)
		}
		if p == nil {
			return notFound("progress_not_found", "no active progress for this mission")
		}
		outcome, err := gamification.Record(p, update, s.clock.Now())
		var outOfRange gamification.ErrDayOutOfRange
		switch {
		case errors.As(err, &outOfRange):
			return badRequest("day_out_of_range", "%s", outOfRange.Error())
		case errors.Is(err, gamification.ErrTerminal):
			return badRequest("progress_not_active", "%s", err.Error())
		case err != nil:
			return err
		}

		m, err := s.load(inner, missionID)
		if err != nil {
			return err
		}
		if outcome.AwardXP {
			award, err := grantXP(inner, s.youth, actor.UserID, m.Points())
			if err != nil {
				return err
			}
			gamification.MarkAwarded(p, m.Points())
			if err := s.missions.IncrementCompletions(inner, missionID); err != nil {
				return fmt.Errorf("count completion: %w", err)
			}
			out.Reward = &award
		}
		if err := s.progress.Save(inner, p); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		p.Mission = m
		out.Progress = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Mission day recorded", "mission_id", missionID, "user_id", actor.UserID, "day", in.Day, "status", out.Progress.Status)
	return out, nil
}

func (s *missionService) UserProgress(dbc dbctx.Context, missionID uuid.UUID) (*types.MissionProgress, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	p, err := s.progress.GetLatest(dbc, actor.UserID, missionID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if p == nil {
		return nil, notFound("progress_not_found", "mission progress not found")
	}
	if p.Mission, err = s.missions.GetByID(dbc, missionID); err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}
	return p, nil
}

func validProgressStatus(status string) bool {
	switch status {
	case "", mission.ProgressActive, mission.ProgressCompleted, mission.ProgressFailed:
		return true
	}
	return false
}

func (s *missionService) ListMine(dbc dbctx.Context, status string, page pagination.Page) (pagination.List[*types.MissionProgress], error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return pagination.List[*types.MissionProgress]{}, err
	}
	return s.listProgress(dbc, actor.UserID, status, page)
}

func (s *missionService) ListForYouth(dbc dbctx.Context, youthID uuid.UUID, status string, page pagination.Page) (pagination.List[*types.MissionProgress], error) {
	p, err := s.youth.GetByUserID(dbc, youthID)
	if err != nil {
		return pagination.List[*types.MissionProgress]{}, fmt.Errorf("load youth profile: %w", err)
	}
	if p == nil {
		return pagination.List[*types.MissionProgress]{}, notFound("youth_profile_not_found", "youth profile not found")
	}
	if _, err := authorize(dbc, policy.ViewYouthRecords, youthResource(p)); err != nil {
		return pagination.List[*types.MissionProgress]{}, err
	}
	return s.listProgress(dbc, youthID, status, page)
}

func (s *missionService) listProgress(dbc dbctx.Context, userID uuid.UUID, status string, page pagination.Page) (pagination.List[*types.MissionProgress], error) {
	if !validProgressStatus(status) {
		return pagination.List[*types.MissionProgress]{}, badRequest("invalid_status", "unknown progress status %q", status)
	}
	items, total, err := s.progress.ListByUser(dbc, userID, status, page)
	if err != nil {
		return pagination.List[*types.MissionProgress]{}, fmt.Errorf("list mission progress: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *missionService) Leaderboard(dbc dbctx.Context, missionID uuid.UUID, limit int) ([]*LeaderboardEntry, error) {
	if _, err := actorFrom(dbc); err != nil {
		return nil, err
	}
	if _, err := s.load(dbc, missionID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	rows, err := s.progress.Leaderboard(dbc, missionID, limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	out := make([]*LeaderboardEntry, 0, len(rows))
	for i, p := range rows {
		out = append(out, &LeaderboardEntry{
			Rank:        i + 1,
			User:        p.User.Summary(),
			XPEarned:    p.XPEarned,
			CompletedAt: p.CompletedAt,
		})
	}
	return out, nil
}
