package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/clinical"
	"github.com/yungbote/youthcare-backend/internal/data/repos"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/alert"
	"github.com/yungbote/youthcare-backend/internal/domain/journal"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

const journalSearchLimit = 20

type JournalInput struct {
	Title            string
	Content          string
	Mood             string
	EmotionTags      []string
	ReflectionPrompt string
	GratitudeItems   []string
	Tags             []string
	IsPrivate        bool
}

// JournalPatch updates only the fields that are set.
type JournalPatch struct {
	Title            *string
	Content          *string
	Mood             *string
	EmotionTags      *[]string
	ReflectionPrompt *string
	GratitudeItems   *[]string
	Tags             *[]string
	IsPrivate        *bool
}

// JournalAuditEntry is a journal flagged by the keyword scan, with the
// keywords it matched.
type JournalAuditEntry struct {
	*types.Journal
	Flagged  bool     `json:"flagged"`
	Keywords []string `json:"keywords"`
}

type JournalService interface {
	ListMine(dbc dbctx.Context, filter repos.JournalFilter, page pagination.Page) (pagination.List[*types.Journal], error)
	Search(dbc dbctx.Context, query string) ([]*types.Journal, error)
	Create(dbc dbctx.Context, in JournalInput) (*types.Journal, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Journal, error)
	Update(dbc dbctx.Context, id uuid.UUID, in JournalPatch) (*types.Journal, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	AddFeedback(dbc dbctx.Context, id uuid.UUID, feedback string) (*types.Journal, error)
	Audit(dbc dbctx.Context, page pagination.Page) (pagination.List[*JournalAuditEntry], error)
	ListForYouth(dbc dbctx.Context, youthID uuid.UUID, page pagination.Page) (pagination.List[*types.Journal], error)
}

type journalService struct {
	db       *gorm.DB
	log      *logger.Logger
	journals repos.JournalRepo
	alerts   AlertService
	keywords clinical.KeywordTable
	clock    Clock
}

func NewJournalService(db *gorm.DB, log *logger.Logger, journals repos.JournalRepo, alerts AlertService, clock Clock) JournalService {
	return &journalService{
		db:       db,
		log:      log.With("service", "JournalService"),
		journals: journals,
		alerts:   alerts,
		keywords: clinical.DefaultKeywords,
		clock:    clock,
	}
}

func (s *journalService) ListMine(dbc dbctx.Context, filter repos.JournalFilter, page pagination.Page) (pagination.List[*types.Journal], error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return pagination.List[*types.Journal]{}, err
	}
	if filter.Mood != "" && !journal.ValidMood(filter.Mood) {
		return pagination.List[*types.Journal]{}, badRequest("invalid_mood", "invalid mood %q", filter.Mood)
	}
	filter.ExcludePrivate = false
	items, total, err := s.journals.ListByUser(dbc, actor.UserID, filter, page)
	if err != nil {
		return pagination.List[*types.Journal]{}, fmt.Errorf("list journals: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *journalService) Search(dbc dbctx.Context, query string) ([]*types.Journal, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, badRequest("query_required", "query is required")
	}
	return s.journals.Search(dbc, actor.UserID, query, journalSearchLimit)
}

func (s *journalService) Create(dbc dbctx.Context, in JournalInput) (*types.Journal, error) {
	actor, err := authorize(dbc, policy.CreateJournal, policy.Resource{})
	if err != nil {
		return nil, err
	}
	j := &types.Journal{
		UserID:           actor.UserID,
		Title:            strings.TrimSpace(in.Title),
		Content:          in.Content,
		Mood:             in.Mood,
		EmotionTags:      datatypes.JSONSlice[string](in.EmotionTags),
		ReflectionPrompt: in.ReflectionPrompt,
		GratitudeItems:   datatypes.JSONSlice[string](in.GratitudeItems),
		Tags:             datatypes.JSONSlice[string](in.Tags),
		IsPrivate:        in.IsPrivate,
	}
	if err := validateJournal(j); err != nil {
		return nil, err
	}

	var raised *types.Alert
	err = inTx(dbc, s.db, func(inner dbctx.Context) error {
		if err := s.journals.Create(inner, j); err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		raised, err = s.scan(inner, j)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.alerts.Announce(dbc.Ctx, raised)
	return j, nil
}

func (s *journalService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Journal, error) {
	j, err := s.load(dbc, id)
	if err != nil {
		return nil, err
	}
	actor, err := authorize(dbc, policy.ReadJournal, policy.Owned(j.UserID))
	if err != nil {
		return nil, err
	}
	if err := ownerOnlyIfPrivate(actor, j); err != nil {
		return nil, err
	}
	return j, nil
}

// ownerOnlyIfPrivate hides entries the youth marked private from everyone
// else, the same rule ListForYouth applies.
func ownerOnlyIfPrivate(actor policy.Actor, j *types.Journal) error {
	if j.IsPrivate && actor.UserID != j.UserID {
		return forbidden("journal %s is private", j.ID)
	}
	return nil
}

func (s *journalService) Update(dbc dbctx.Context, id uuid.UUID, in JournalPatch) (*types.Journal, error) {
	var (
		j      *types.Journal
		raised *types.Alert
	)
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		var err error
		j, err = s.load(inner, id)
		if err != nil {
			return err
		}
		if _, err := authorize(inner, policy.WriteJournal, policy.Owned(j.UserID)); err != nil {
			return err
		}
		applyJournalPatch(j, in)
		if err := validateJournal(j); err != nil {
			return err
		}
		if err := s.journals.Save(inner, j); err != nil {
			return fmt.Errorf("save journal: %w", err)
		}
		raised, err = s.scan(inner, j)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.alerts.Announce(dbc.Ctx, raised)
	return j, nil
}

func (s *journalService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	j, err := s.load(dbc, id)
	if err != nil {
		return err
	}
	if _, err := authorize(dbc, policy.WriteJournal, policy.Owned(j.UserID)); err != nil {
		return err
	}
	if err := s.journals.Delete(dbc, id); err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	return nil
}

func (s *journalService) AddFeedback(dbc dbctx.Context, id uuid.UUID, feedback string) (*types.Journal, error) {
	actor, err := authorize(dbc, policy.JournalFeedback, policy.Resource{})
	if err != nil {
		return nil, err
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, badRequest("feedback_required", "feedback is required")
	}
	j, err := s.load(dbc, id)
	if err != nil {
		return nil, err
	}
	if err := ownerOnlyIfPrivate(actor, j); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	j.CoachFeedback = &feedback
	j.CoachID = &actor.UserID
	j.FeedbackDate = &now
	j.ReviewedByCoach = true
	if err := s.journals.Save(dbc, j); err != nil {
		return nil, fmt.Errorf("save journal feedback: %w", err)
	}
	return j, nil
}

func (s *journalService) Audit(dbc dbctx.Context, page pagination.Page) (pagination.List[*JournalAuditEntry], error) {
	if _, err := authorize(dbc, policy.JournalAudit, policy.Resource{}); err != nil {
		return pagination.List[*JournalAuditEntry]{}, err
	}
	items, total, err := s.journals.ListMatching(dbc, s.keywords.Keywords, page)
	if err != nil {
		return pagination.List[*JournalAuditEntry]{}, fmt.Errorf("list audit journals: %w", err)
	}
	entries := make([]*JournalAuditEntry, 0, len(items))
	for _, j := range items {
		kws := s.keywords.Scan(j.ScanText()).Keywords
		if kws == nil {
			kws = []string{}
		}
		entries = append(entries, &JournalAuditEntry{Journal: j, Flagged: true, Keywords: kws})
	}
	return pagination.NewList(entries, total, page), nil
}

// ListForYouth is the care-team view of a youth's journals. Entries the
// youth marked private are left out for everyone but the youth.
func (s *journalService) ListForYouth(dbc dbctx.Context, youthID uuid.UUID, page pagination.Page) (pagination.List[*types.Journal], error) {
	actor, err := authorize(dbc, policy.ReadJournal, policy.Owned(youthID))
	if err != nil {
		return pagination.List[*types.Journal]{}, err
	}
	filter := repos.JournalFilter{ExcludePrivate: actor.UserID != youthID}
	items, total, err := s.journals.ListByUser(dbc, youthID, filter, page)
	if err != nil {
		return pagination.List[*types.Journal]{}, fmt.Errorf("list youth journals: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *journalService) load(dbc dbctx.Context, id uuid.UUID) (*types.Journal, error) {
	j, err := s.journals.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	if j == nil {
		return nil, notFound("journal_not_found", "journal not found")
	}
	return j, nil
}

// scan runs the keyword scanner over j and raises a self-harm alert keyed on
// the journal. It returns the alert only when this call created it.
func (s *journalService) scan(dbc dbctx.Context, j *types.Journal) (*types.Alert, error) {
	res := s.keywords.Scan(j.ScanText())
	if !res.Matched() {
		return nil, nil
	}
	details, err := json.Marshal(map[string]any{"keywords": res.Keywords})
	if err != nil {
		return nil, fmt.Errorf("encode alert details: %w", err)
	}
	triggerID := j.ID
	triggerModel := journal.TriggerModel
	a, created, err := s.alerts.Raise(dbc, &types.Alert{
		YouthID:      j.UserID,
		Type:         alert.TypeSelfHarmMention,
		Severity:     res.Severity,
		Source:       alert.SourceJournal,
		TriggerID:    &triggerID,
		TriggerModel: &triggerModel,
		Description:  "Concerning language detected in journal entry",
		Details:      datatypes.JSON(details),
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	s.log.Warn("Journal flagged", "journal_id", j.ID, "alert_id", a.ID, "severity", a.Severity, "keyword_count", len(res.Keywords))
	return a, nil
}

func validateJournal(j *types.Journal) error {
	if strings.TrimSpace(j.Title) == "" {
		return badRequest("title_required", "title is required")
	}
	if strings.TrimSpace(j.Content) == "" {
		return badRequest("content_required", "content is required")
	}
	if j.Mood != "" && !journal.ValidMood(j.Mood) {
		return badRequest("invalid_mood", "invalid mood %q", j.Mood)
	}
	return nil
}

func applyJournalPatch(j *types.Journal, in JournalPatch) {
	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		j.Content = *in.Content
	}
	if in.Mood != nil {
		j.Mood = *in.Mood
	}
	if in.EmotionTags != nil {
		j.EmotionTags = datatypes.JSONSlice[string](*in.EmotionTags)
	}
	if in.ReflectionPrompt != nil {
		j.ReflectionPrompt = *in.ReflectionPrompt
	}
	if in.GratitudeItems != nil {
		j.GratitudeItems = datatypes.JSONSlice[string](*in.GratitudeItems)
	}
	if in.Tags != nil {
		j.Tags = datatypes.JSONSlice[string](*in.Tags)
	}
	if in.IsPrivate != nil {
		j.IsPrivate = *in.IsPrivate
	}
}
