package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	userrepo "github.com/yungbote/youthcare-backend/internal/data/repos/user"
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

// YouthStanding is a youth profile with the level recomputed from points.
type YouthStanding struct {
	*types.YouthProfile
	gamification.Level
}

type YouthStats struct {
	JournalsWritten   int64 `json:"journals_written"`
	MoodsLogged       int64 `json:"moods_logged"`
	MissionsCompleted int64 `json:"missions_completed"`
}

// YouthCard is the per-youth row shown to coaches and parents.
type YouthCard struct {
	User              *types.UserSummary `json:"user"`
	TotalPoints       int                `json:"total_points"`
	Level             int                `json:"level"`
	StreakMood        int                `json:"streak_mood"`
	StreakJournal     int                `json:"streak_journal"`
	MissionsCompleted int64              `json:"missions_completed"`
	JournalsWritten   *int64             `json:"journals_written,omitempty"`
	MoodsLogged       *int64             `json:"moods_logged,omitempty"`
	LastMoodCheckDate *time.Time         `json:"last_mood_check_date,omitempty"`
}

type Profile struct {
	User      *types.User             `json:"user"`
	Youth     *YouthStanding          `json:"youth_profile,omitempty"`
	Coach     *types.CoachProfile     `json:"coach_profile,omitempty"`
	Clinician *types.ClinicianProfile `json:"clinician_profile,omitempty"`
	Parent    *types.ParentProfile    `json:"parent_profile,omitempty"`
	// Youth assigned to a coach, or linked to a parent.
	LinkedYouth []*YouthCard `json:"linked_youth,omitempty"`
}

type ProfilePatch struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	PhoneNumber *string    `json:"phone_number"`
	Location    *string    `json:"location"`
	Avatar      *string    `json:"avatar"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

type CoachCard struct {
	User               *types.UserSummary  `json:"user"`
	Profile            *types.CoachProfile `json:"profile,omitempty"`
	AssignedYouthCount int                 `json:"assigned_youth_count"`
}

type CoachDetails struct {
	User          *types.User         `json:"user"`
	Profile       *types.CoachProfile `json:"profile,omitempty"`
	AssignedYouth []*YouthCard        `json:"assigned_youth"`
}

type ParentLink struct {
	ParentID uuid.UUID `json:"parent_id"`
	YouthID  uuid.UUID `json:"youth_id"`
}

type YouthDetails struct {
	User     *types.User        `json:"user"`
	Youth    *YouthStanding     `json:"youth_profile"`
	Stats    YouthStats         `json:"stats"`
	Parent   *types.UserSummary `json:"parent,omitempty"`
	ParentID *uuid.UUID         `json:"parent_id,omitempty"`
}

type CareTeam struct {
	YouthID   uuid.UUID          `json:"youth_id"`
	Coach     *types.UserSummary `json:"coach"`
	Clinician *types.UserSummary `json:"clinician"`
	Parent    *types.UserSummary `json:"parent"`
}

type DailyReward struct {
	gamification.Award
	LastDailyRewardClaim time.Time `json:"last_daily_reward_claim"`
}

type UserService interface {
	Profile(dbc dbctx.Context) (*Profile, error)
	UpdateProfile(dbc dbctx.Context, patch ProfilePatch) (*types.User, error)
	DeleteAccount(dbc dbctx.Context) error

	Get(dbc dbctx.Context, id uuid.UUID) (*types.User, error)
	Search(dbc dbctx.Context, query, role string, page pagination.Page) (pagination.List[*types.User], error)
	List(dbc dbctx.Context, filter repos.UserFilter, page pagination.Page) (pagination.List[*types.User], error)
	ListAdmins(dbc dbctx.Context) ([]*types.UserSummary, error)
	ListYouth(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.YouthProfile], error)
	ListCoaches(dbc dbctx.Context) ([]*CoachCard, error)
	CareTeam(dbc dbctx.Context, youthID uuid.UUID) (*CareTeam, error)
	YouthDetails(dbc dbctx.Context, youthID uuid.UUID) (*YouthDetails, error)

	AddYouthToCoach(dbc dbctx.Context, coachID, youthID uuid.UUID) (*CoachDetails, error)
	RemoveYouthFromCoach(dbc dbctx.Context, coachID, youthID uuid.UUID) (*CoachDetails, error)
	CoachDetails(dbc dbctx.Context, coachID uuid.UUID) (*CoachDetails, error)
	AddYouthToParent(dbc dbctx.Context, parentID, youthID uuid.UUID) (*ParentLink, error)

	SetActive(dbc dbctx.Context, id uuid.UUID, active bool) (*types.User, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	ClaimDailyReward(dbc dbctx.Context) (*DailyReward, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	youthRepo     repos.YouthProfileRepo
	coachRepo     repos.CoachProfileRepo
	clinicianRepo repos.ClinicianProfileRepo
	parentRepo    repos.ParentProfileRepo
	journalRepo   repos.JournalRepo
	moodRepo      repos.MoodRepo
	progressRepo  repos.MissionProgressRepo
	clock         Clock
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	youthRepo repos.YouthProfileRepo,
	coachRepo repos.CoachProfileRepo,
	clinicianRepo repos.ClinicianProfileRepo,
	parentRepo repos.ParentProfileRepo,
	journalRepo repos.JournalRepo,
	moodRepo repos.MoodRepo,
	progressRepo repos.MissionProgressRepo,
	clock Clock,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		youthRepo:     youthRepo,
		coachRepo:     coachRepo,
		clinicianRepo: clinicianRepo,
		parentRepo:    parentRepo,
		journalRepo:   journalRepo,
		moodRepo:      moodRepo,
		progressRepo:  progressRepo,
		clock:         clock,
	}
}

func (us *userService) Profile(dbc dbctx.Context) (*Profile, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	u, err := us.userRepo.GetByID(dbc, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, notFound("user_not_found", "user not found")
	}
	out := &Profile{User: u}
	switch u.Role {
	case user.RoleYouth:
		out.Youth, err = us.standing(dbc, u.ID)
	case user.RoleCoach:
		if out.Coach, err = us.coachRepo.GetByUserID(dbc, u.ID); err == nil {
			out.LinkedYouth, err = us.linkedYouth(dbc, us.youthRepo.ListByCoach, u.ID, false)
		}
	case user.RoleParent:
		if out.Parent, err = us.parentRepo.GetByUserID(dbc, u.ID); err == nil {
			out.LinkedYouth, err = us.linkedYouth(dbc, us.youthRepo.ListByParent, u.ID, true)
		}
	case user.RoleClinician:
		out.Clinician, err = us.clinicianRepo.GetByUserID(dbc, u.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("load role profile: %w", err)
	}
	return out, nil
}

// standing loads the youth profile and corrects a stored level that no
// longer matches the point total.
func (us *userService) standing(dbc dbctx.Context, userID uuid.UUID) (*YouthStanding, error) {
	p, err := us.youthRepo.GetByUserID(dbc, userID)
	if err != nil || p == nil {
		return nil, err
	}
	level := gamification.LevelFor(p.TotalPoints)
	if p.Level != level.Level {
		if err := us.youthRepo.SetLevel(dbc, userID, level.Level); err != nil {
			return nil, err
		}
		us.log.Debug("Corrected youth level", "user_id", userID, "from", p.Level, "to", level.Level)
		p.Level = level.Level
	}
	return &YouthStanding{YouthProfile: p, Level: level}, nil
}

func (us *userService) linkedYouth(dbc dbctx.Context, list func(dbctx.Context, uuid.UUID) ([]*types.YouthProfile, error), id uuid.UUID, activity bool) ([]*YouthCard, error) {
	profiles, err := list(dbc, id)
	if err != nil {
		return nil, err
	}
	cards := make([]*YouthCard, len(profiles))
	err = fanOut(dbc, len(profiles), func(inner dbctx.Context, i int) error {
		p := profiles[i]
		card := &YouthCard{
			User:              p.User.Summary(),
			TotalPoints:       p.TotalPoints,
			Level:             gamification.LevelFor(p.TotalPoints).Level,
			StreakMood:        p.StreakMood,
			StreakJournal:     p.StreakJournal,
			LastMoodCheckDate: p.LastMoodCheckDate,
		}
		stats, err := us.stats(inner, p.UserID)
		if err != nil {
			return err
		}
		card.MissionsCompleted = stats.MissionsCompleted
		if activity {
			card.JournalsWritten = &stats.JournalsWritten
			card.MoodsLogged = &stats.MoodsLogged
		}
		cards[i] = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// stats counts a youth's records using the list totals.
func (us *userService) stats(dbc dbctx.Context, userID uuid.UUID) (YouthStats, error) {
	one := pagination.Page{Page: 1, Limit: 1}
	var out YouthStats
	var err error
	if _, out.JournalsWritten, err = us.journalRepo.ListByUser(dbc, userID, repos.JournalFilter{}, one); err != nil {
		return out, fmt.Errorf("count journals: %w", err)
	}
	if _, out.MoodsLogged, err = us.moodRepo.ListByUser(dbc, userID, repos.MoodFilter{}, one); err != nil {
		return out, fmt.Errorf("count moods: %w", err)
	}
	if _, out.MissionsCompleted, err = us.progressRepo.ListByUser(dbc, userID, mission.ProgressCompleted, one); err != nil {
		return out, fmt.Errorf("count missions: %w", err)
	}
	return out, nil
}

func (us *userService) UpdateProfile(dbc dbctx.Context, patch ProfilePatch) (*types.User, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.FirstName != nil {
		name := normalization.Name(*patch.FirstName)
		if name == "" {
			return nil, badRequest("name_required", "first name must not be empty")
		}
		updates["first_name"] = name
	}
	if patch.LastName != nil {
		name := normalization.Name(*patch.LastName)
		if name == "" {
			return nil, badRequest("name_required", "last name must not be empty")
		}
		updates["last_name"] = name
	}
	if patch.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.Location != nil {
		updates["location"] = strings.TrimSpace(*patch.Location)
	}
	if patch.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*patch.Avatar)
	}
	if patch.DateOfBirth != nil {
		if patch.DateOfBirth.After(us.clock.Now()) {
			return nil, badRequest("invalid_date_of_birth", "date of birth is in the future")
		}
		updates["date_of_birth"] = *patch.DateOfBirth
	}
	if err := us.userRepo.Update(dbc, actor.UserID, updates); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return us.userRepo.GetByID(dbc, actor.UserID)
}

func (us *userService) DeleteAccount(dbc dbctx.Context) error {
	actor, err := actorFrom(dbc)
	if err != nil {
		return err
	}
	if err := inTx(dbc, us.db, func(inner dbctx.Context) error {
		return us.userRepo.Delete(inner, actor.UserID)
	}); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	us.log.Info("Account deleted", "user_id", actor.UserID)
	return nil
}

func (us *userService) Get(dbc dbctx.Context, id uuid.UUID) (*types.User, error) {
	if _, err := actorFrom(dbc); err != nil {
		return nil, err
	}
	return us.mustUser(dbc, id, "")
}

// mustUser loads id and, when role is set, requires the user to hold it.
func (us *userService) mustUser(dbc dbctx.Context, id uuid.UUID, role string) (*types.User, error) {
	u, err := us.userRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	label := role
	if label == "" {
		label = "user"
	}
	if u == nil {
		return nil, notFound(label+"_not_found", "%s not found", label)
	}
	if role != "" && u.Role != role {
		return nil, badRequest("not_a_"+role, "user %s is not a %s", id, role)
	}
	return u, nil
}

func (us *userService) Search(dbc dbctx.Context, query, role string, page pagination.Page) (pagination.List[*types.User], error) {
	if _, err := actorFrom(dbc); err != nil {
		return pagination.List[*types.User]{}, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return pagination.List[*types.User]{}, badRequest("query_required", "search query is required")
	}
	if role != "" && !user.ValidRole(role) {
		return pagination.List[*types.User]{}, badRequest("invalid_role", "unknown role %q", role)
	}
	active := true
	return us.list(dbc, repos.UserFilter{Query: query, Role: role, IsActive: &active}, page)
}

func (us *userService) List(dbc dbctx.Context, filter repos.UserFilter, page pagination.Page) (pagination.List[*types.User], error) {
	if _, err := authorize(dbc, policy.ManageUsers, policy.Resource{}); err != nil {
		return pagination.List[*types.User]{}, err
	}
	if filter.Role != "" && !user.ValidRole(filter.Role) {
		return pagination.List[*types.User]{}, badRequest("invalid_role", "unknown role %q", filter.Role)
	}
	return us.list(dbc, filter, page)
}

func (us *userService) list(dbc dbctx.Context, filter repos.UserFilter, page pagination.Page) (pagination.List[*types.User], error) {
	items, total, err := us.userRepo.List(dbc, filter, page)
	if err != nil {
		return pagination.List[*types.User]{}, fmt.Errorf("list users: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (us *userService) ListAdmins(dbc dbctx.Context) ([]*types.UserSummary, error) {
	if _, err := actorFrom(dbc); err != nil {
		return nil, err
	}
	admins, err := us.userRepo.ListByRole(dbc, user.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	out := make([]*types.UserSummary, 0, len(admins))
	for _, a := range admins {
		out = append(out, a.Summary())
	}
	return out, nil
}

func (us *userService) ListYouth(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.YouthProfile], error) {
	if _, err := authorize(dbc, policy.ListYouth, policy.Resource{}); err != nil {
		return pagination.List[*types.YouthProfile]{}, err
	}
	items, total, err := us.youthRepo.List(dbc, page)
	if err != nil {
		return pagination.List[*types.YouthProfile]{}, fmt.Errorf("list youth: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (us *userService) ListCoaches(dbc dbctx.Context) ([]*CoachCard, error) {
	if _, err := actorFrom(dbc); err != nil {
		return nil, err
	}
	coaches, err := us.userRepo.ListByRole(dbc, user.RoleCoach)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	cards := make([]*CoachCard, len(coaches))
	err = fanOut(dbc, len(coaches), func(inner dbctx.Context, i int) error {
		c := coaches[i]
		profile, err := us.coachRepo.GetByUserID(inner, c.ID)
		if err != nil {
			return fmt.Errorf("load coach profile: %w", err)
		}
		youth, err := us.youthRepo.ListByCoach(inner, c.ID)
		if err != nil {
			return fmt.Errorf("list assigned youth: %w", err)
		}
		cards[i] = &CoachCard{User: c.Summary(), Profile: profile, AssignedYouthCount: len(youth)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (us *userService) CareTeam(dbc dbctx.Context, youthID uuid.UUID) (*CareTeam, error) {
	p, err := us.youthProfile(dbc, youthID)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(dbc, policy.ViewYouthProfile, youthResource(p)); err != nil {
		return nil, err
	}
	out := &CareTeam{YouthID: youthID}
	for _, link := range []struct {
		id  *uuid.UUID
		dst **types.UserSummary
	}{{p.CoachID, &out.Coach}, {p.ClinicianID, &out.Clinician}, {p.ParentID, &out.Parent}} {
		if link.id == nil {
			continue
		}
		u, err := us.userRepo.GetByID(dbc, *link.id)
		if err != nil {
			return nil, fmt.Errorf("load care team member: %w", err)
		}
		*link.dst = u.Summary()
	}
	return out, nil
}

func (us *userService) youthProfile(dbc dbctx.Context, youthID uuid.UUID) (*types.YouthProfile, error) {
	p, err := us.youthRepo.GetByUserID(dbc, youthID)
	if err != nil {
		return nil, fmt.Errorf("load youth profile: %w", err)
	}
	if p == nil {
		return nil, notFound("youth_profile_not_found", "youth profile not found")
	}
	return p, nil
}

// youthResource names the youth as owner and their linked care team as
// managers.
func youthResource(p *types.YouthProfile) policy.Resource {
	var managers []uuid.UUID
	for _, id := range []*uuid.UUID{p.CoachID, p.ParentID, p.ClinicianID} {
		if id != nil {
			managers = append(managers, *id)
		}
	}
	return policy.Owned(p.UserID, managers...)
}

func (us *userService) YouthDetails(dbc dbctx.Context, youthID uuid.UUID) (*YouthDetails, error) {
	u, err := us.mustUser(dbc, youthID, user.RoleYouth)
	if err != nil {
		return nil, err
	}
	p, err := us.youthProfile(dbc, youthID)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(dbc, policy.ViewYouthProfile, youthResource(p)); err != nil {
		return nil, err
	}
	standing, err := us.standing(dbc, youthID)
	if err != nil {
		return nil, fmt.Errorf("load standing: %w", err)
	}
	stats, err := us.stats(dbc, youthID)
	if err != nil {
		return nil, err
	}
	out := &YouthDetails{User: u, Youth: standing, Stats: stats, ParentID: p.ParentID}
	if p.ParentID != nil {
		parent, err := us.userRepo.GetByID(dbc, *p.ParentID)
		if err != nil {
			return nil, fmt.Errorf("load parent: %w", err)
		}
		out.Parent = parent.Summary()
	}
	return out, nil
}

func (us *userService) AddYouthToCoach(dbc dbctx.Context, coachID, youthID uuid.UUID) (*CoachDetails, error) {
	return us.linkCoach(dbc, coachID, youthID, true)
}

func (us *userService) RemoveYouthFromCoach(dbc dbctx.Context, coachID, youthID uuid.UUID) (*CoachDetails, error) {
	return us.linkCoach(dbc, coachID, youthID, false)
}

func (us *userService) linkCoach(dbc dbctx.Context, coachID, youthID uuid.UUID, add bool) (*CoachDetails, error) {
	if _, err := authorize(dbc, policy.LinkCoach, policy.Owned(coachID)); err != nil {
		return nil, err
	}
	if youthID == uuid.Nil {
		return nil, badRequest("youth_id_required", "youth_id is required")
	}
	err := inTx(dbc, us.db, func(inner dbctx.Context) error {
		if _, err := us.mustUser(inner, coachID, user.RoleCoach); err != nil {
			return err
		}
		if _, err := us.mustUser(inner, youthID, user.RoleYouth); err != nil {
			return err
		}
		p, err := us.youthProfile(inner, youthID)
		if err != nil {
			return err
		}
		linked := p.CoachID != nil && *p.CoachID == coachID
		switch {
		case add && linked:
			return conflict("already_assigned", "youth is already assigned to this coach")
		case !add && !linked:
			return conflict("not_assigned", "youth is not assigned to this coach")
		}
		var value interface{} = coachID
		if !add {
			value = nil
		}
		return us.youthRepo.Update(inner, youthID, map[string]interface{}{"coach_id": value})
	})
	if err != nil {
		return nil, err
	}
	us.log.Info("Coach link changed", "coach_id", coachID, "youth_id", youthID, "linked", add)
	return us.coachDetails(dbc, coachID)
}

func (us *userService) CoachDetails(dbc dbctx.Context, coachID uuid.UUID) (*CoachDetails, error) {
	if _, err := authorize(dbc, policy.ViewCoachDetails, policy.Resource{}); err != nil {
		return nil, err
	}
	return us.coachDetails(dbc, coachID)
}

func (us *userService) coachDetails(dbc dbctx.Context, coachID uuid.UUID) (*CoachDetails, error) {
	u, err := us.mustUser(dbc, coachID, user.RoleCoach)
	if err != nil {
		return nil, err
	}
	profile, err := us.coachRepo.GetByUserID(dbc, coachID)
	if err != nil {
		return nil, fmt.Errorf("load coach profile: %w", err)
	}
	youth, err := us.linkedYouth(dbc, us.youthRepo.ListByCoach, coachID, false)
	if err != nil {
		return nil, fmt.Errorf("load assigned youth: %w", err)
	}
	return &CoachDetails{User: u, Profile: profile, AssignedYouth: youth}, nil
}

func (us *userService) AddYouthToParent(dbc dbctx.Context, parentID, youthID uuid.UUID) (*ParentLink, error) {
	if _, err := authorize(dbc, policy.LinkParent, policy.Resource{}); err != nil {
		return nil, err
	}
	if youthID == uuid.Nil {
		return nil, badRequest("youth_id_required", "youth_id is required")
	}
	err := inTx(dbc, us.db, func(inner dbctx.Context) error {
		if _, err := us.mustUser(inner, parentID, user.RoleParent); err != nil {
			return err
		}
		if _, err := us.mustUser(inner, youthID, user.RoleYouth); err != nil {
			return err
		}
		if _, err := us.youthProfile(inner, youthID); err != nil {
			return err
		}
		return us.youthRepo.Update(inner, youthID, map[string]interface{}{"parent_id": parentID})
	})
	if err != nil {
		return nil, err
	}
	us.log.Info("Parent linked", "parent_id", parentID, "youth_id", youthID)
	return &ParentLink{ParentID: parentID, YouthID: youthID}, nil
}

func (us *userService) SetActive(dbc dbctx.Context, id uuid.UUID, active bool) (*types.User, error) {
	actor, err := authorize(dbc, policy.ManageUsers, policy.Resource{})
	if err != nil {
		return nil, err
	}
	if !active && id == actor.UserID {
		return nil, badRequest("cannot_deactivate_self", "you cannot deactivate your own account")
	}
	err = inTx(dbc, us.db, func(inner dbctx.Context) error {
		if _, err := us.mustUser(inner, id, ""); err != nil {
			return err
		}
		if err := us.userRepo.Update(inner, id, map[string]interface{}{"is_active": active}); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if !active {
			if _, err := us.userTokenRepo.RevokeAllForUser(inner, id); err != nil {
				return fmt.Errorf("revoke tokens: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	us.log.Info("User activation changed", "user_id", id, "active", active, "by", actor.UserID)
	return us.userRepo.GetByID(dbc, id)
}

func (us *userService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	actor, err := authorize(dbc, policy.ManageUsers, policy.Resource{})
	if err != nil {
		return err
	}
	if id == actor.UserID {
		return badRequest("cannot_delete_self", "use account deletion to remove your own account")
	}
	err = inTx(dbc, us.db, func(inner dbctx.Context) error {
		if _, err := us.mustUser(inner, id, ""); err != nil {
			return err
		}
		return us.userRepo.Delete(inner, id)
	})
	if err != nil {
		return err
	}
	us.log.Info("User deleted", "user_id", id, "by", actor.UserID)
	return nil
}

func (us *userService) ClaimDailyReward(dbc dbctx.Context) (*DailyReward, error) {
	actor, err := authorize(dbc, policy.ClaimReward, policy.Resource{})
	if err != nil {
		return nil, err
	}
	now := us.clock.Now()
	out := &DailyReward{LastDailyRewardClaim: now}
	err = inTx(dbc, us.db, func(inner dbctx.Context) error {
		if _, err := us.youthProfile(inner, actor.UserID); err != nil {
			return err
		}
		stamped, err := us.youthRepo.StampIfBefore(inner, actor.UserID, userrepo.ColDailyReward, us.clock.Today(), now)
		if err != nil {
			return fmt.Errorf("stamp daily reward: %w", err)
		}
		if !stamped {
			return conflict("reward_already_claimed", "daily reward already claimed today")
		}
		out.Award, err = grantXP(inner, us.youthRepo, actor.UserID, gamification.DailyRewardXP)
		return err
	})
	if err != nil {
		return nil, err
	}
	us.log.Info("Daily reward claimed", "user_id", actor.UserID, "total_points", out.TotalPoints)
	return out, nil
}
