package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/mood"
	"github.com/yungbote/youthcare-backend/internal/gamification"
	"github.com/yungbote/youthcare-backend/internal/normalization"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

const (
	defaultHistoryDays = 30
	defaultTrendDays   = 7
	maxMoodDays        = 365
	coachWindowDays    = 7
	topN               = 5
)

type MoodInput struct {
	Mood               string
	Intensity          int
	Emotions           []string
	Triggers           []string
	Activities         []string
	Location           string
	SocialContext      string
	Notes              string
	PhysicalSensations []string
	CopingStrategies   []string
	IsHelpful          *bool
}

type MoodPatch struct {
	Mood             *string
	Intensity        *int
	Emotions         *[]string
	Triggers         *[]string
	Activities       *[]string
	Notes            *string
	CopingStrategies *[]string
	IsHelpful        *bool
}

type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type MoodStats struct {
	Days                    int            `json:"days"`
	TotalEntries            int            `json:"total_entries"`
	AverageIntensity        float64        `json:"average_intensity"`
	Distribution            map[string]int `json:"distribution"`
	TopEmotions             []TermCount    `json:"top_emotions"`
	TopTriggers             []TermCount    `json:"top_triggers"`
	HelpfulCopingStrategies []TermCount    `json:"helpful_coping_strategies"`
}

type MoodHistory struct {
	Entries []*types.MoodEntry `json:"entries"`
	Stats   MoodStats          `json:"stats"`
}

type MoodTrend struct {
	Date             string  `json:"date"`
	Count            int     `json:"count"`
	AverageIntensity float64 `json:"average_intensity"`
	DominantMood     string  `json:"dominant_mood"`
}

type YouthMoodTracking struct {
	User             *types.UserSummary `json:"user"`
	Level            int                `json:"level"`
	Latest           *types.MoodEntry   `json:"latest"`
	WeekEntries      int                `json:"week_entries"`
	WeekAverage      float64            `json:"week_average_intensity"`
	WeekDistribution map[string]int     `json:"week_distribution"`
}

type MoodReport struct {
	From             time.Time         `json:"from"`
	To               time.Time         `json:"to"`
	TotalEntries     int64             `json:"total_entries"`
	AverageIntensity float64           `json:"average_intensity"`
	Distribution     []repos.MoodCount `json:"distribution"`
}

type MoodService interface {
	Log(dbc dbctx.Context, in MoodInput) (*types.MoodEntry, error)
	ListMine(dbc dbctx.Context, filter repos.MoodFilter, page pagination.Page) (pagination.List[*types.MoodEntry], error)
	Update(dbc dbctx.Context, id uuid.UUID, patch MoodPatch) (*types.MoodEntry, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	History(dbc dbctx.Context, days int) (*MoodHistory, error)
	Trends(dbc dbctx.Context, days int) ([]MoodTrend, error)
	CoachTracking(dbc dbctx.Context) ([]*YouthMoodTracking, error)
	Reports(dbc dbctx.Context, from, to *time.Time) (*MoodReport, error)
	ListForYouth(dbc dbctx.Context, youthID uuid.UUID, filter repos.MoodFilter, page pagination.Page) (pagination.List[*types.MoodEntry], error)
}

type moodService struct {
	db    *gorm.DB
	log   *logger.Logger
	moods repos.MoodRepo
	youth repos.YouthProfileRepo
	clock Clock
}

func NewMoodService(db *gorm.DB, log *logger.Logger, moods repos.MoodRepo, youth repos.YouthProfileRepo, clock Clock) MoodService {
	return &moodService{
		db:    db,
		log:   log.With("service", "MoodService"),
		moods: moods,
		youth: youth,
		clock: clock,
	}
}

func (s *moodService) Log(dbc dbctx.Context, in MoodInput) (*types.MoodEntry, error) {
	actor, err := authorize(dbc, policy.LogMood, policy.Resource{})
	if err != nil {
		return nil, err
	}
	e := &types.MoodEntry{
		UserID:             actor.UserID,
		Mood:               strings.TrimSpace(in.Mood),
		Intensity:          in.Intensity,
		Emotions:           datatypes.JSONSlice[string](normalization.List(in.Emotions)),
		Triggers:           datatypes.JSONSlice[string](normalization.List(in.Triggers)),
		Activities:         datatypes.JSONSlice[string](normalization.List(in.Activities)),
		Location:           strings.TrimSpace(in.Location),
		SocialContext:      strings.TrimSpace(in.SocialContext),
		Notes:              strings.TrimSpace(in.Notes),
		PhysicalSensations: datatypes.JSONSlice[string](normalization.List(in.PhysicalSensations)),
		CopingStrategies:   datatypes.JSONSlice[string](normalization.List(in.CopingStrategies)),
		IsHelpful:          in.IsHelpful,
	}
	if err := validateMood(e); err != nil {
		return nil, err
	}
	if err := s.moods.Create(dbc, e); err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	s.log.Debug("Mood logged", "entry_id", e.ID, "user_id", actor.UserID, "mood", e.Mood)
	return e, nil
}

func validateMood(e *types.MoodEntry) error {
	if !mood.ValidMood(e.Mood) {
		return badRequest("invalid_mood", "mood must be one of %s", strings.Join(mood.Moods, ", "))
	}
	if e.Intensity < mood.MinIntensity || e.Intensity > mood.MaxIntensity {
		return badRequest("invalid_intensity", "intensity must be between %d and %d", mood.MinIntensity, mood.MaxIntensity)
	}
	if e.SocialContext != "" && !mood.ValidSocialContext(e.SocialContext) {
		return badRequest("invalid_social_context", "social_context must be one of %s", strings.Join(mood.SocialContexts, ", "))
	}
	return nil
}

func validMoodFilter(filter repos.MoodFilter) error {
	if filter.Mood != "" && !mood.ValidMood(filter.Mood) {
		return badRequest("invalid_mood", "invalid mood %q", filter.Mood)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return badRequest("invalid_date_range", "end date is before start date")
	}
	return nil
}

func (s *moodService) ListMine(dbc dbctx.Context, filter repos.MoodFilter, page pagination.Page) (pagination.List[*types.MoodEntry], error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return pagination.List[*types.MoodEntry]{}, err
	}
	return s.list(dbc, actor.UserID, filter, page)
}

func (s *moodService) list(dbc dbctx.Context, userID uuid.UUID, filter repos.MoodFilter, page pagination.Page) (pagination.List[*types.MoodEntry], error) {
	if err := validMoodFilter(filter); err != nil {
		return pagination.List[*types.MoodEntry]{}, err
	}
	items, total, err := s.moods.ListByUser(dbc, userID, filter, page)
	if err != nil {
		return pagination.List[*types.MoodEntry]{}, fmt.Errorf("list mood entries: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *moodService) ListForYouth(dbc dbctx.Context, youthID uuid.UUID, filter repos.MoodFilter, page pagination.Page) (pagination.List[*types.MoodEntry], error) {
	p, err := s.youth.GetByUserID(dbc, youthID)
	if err != nil {
		return pagination.List[*types.MoodEntry]{}, fmt.Errorf("load youth profile: %w", err)
	}
	if p == nil {
		return pagination.List[*types.MoodEntry]{}, notFound("youth_profile_not_found", "youth profile not found")
	}
	if _, err := authorize(dbc, policy.ViewYouthRecords, youthResource(p)); err != nil {
		return pagination.List[*types.MoodEntry]{}, err
	}
	return s.list(dbc, youthID, filter, page)
}

func (s *moodService) load(dbc dbctx.Context, id uuid.UUID) (*types.MoodEntry, error) {
	e, err := s.moods.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load mood entry: %w", err)
	}
	if e == nil {
		return nil, notFound("mood_entry_not_found", "mood entry not found")
	}
	if _, err := authorize(dbc, policy.WriteMood, policy.Owned(e.UserID)); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *moodService) Update(dbc dbctx.Context, id uuid.UUID, patch MoodPatch) (*types.MoodEntry, error) {
	e, err := s.load(dbc, id)
	if err != nil {
		return nil, err
	}
	if patch.Mood != nil {
		e.Mood = strings.TrimSpace(*patch.Mood)
	}
	if patch.Intensity != nil {
		e.Intensity = *patch.Intensity
	}
	if patch.Emotions != nil {
		e.Emotions = normalization.List(*patch.Emotions)
	}
	if patch.Triggers != nil {
		e.Triggers = normalization.List(*patch.Triggers)
	}
	if patch.Activities != nil {
		e.Activities = normalization.List(*patch.Activities)
	}
	if patch.Notes != nil {
		e.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.CopingStrategies != nil {
		e.CopingStrategies = normalization.List(*patch.CopingStrategies)
	}
	if patch.IsHelpful != nil {
		e.IsHelpful = patch.IsHelpful
	}
	if err := validateMood(e); err != nil {
		return nil, err
	}
	if err := s.moods.Save(dbc, e); err != nil {
		return nil, fmt.Errorf("save mood entry: %w", err)
	}
	return e, nil
}

func (s *moodService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if _, err := s.load(dbc, id); err != nil {
		return err
	}
	if err := s.moods.Delete(dbc, id); err != nil {
		return fmt.Errorf("delete mood entry: %w", err)
	}
	return nil
}

func clampDays(days, def int) int {
	if days <= 0 {
		return def
	}
	if days > maxMoodDays {
		return maxMoodDays
	}
	return days
}

// windowStart is local midnight days-1 days ago, so the window covers today
// plus the days before it.
func (s *moodService) windowStart(days int) time.Time {
	return s.clock.Today().AddDate(0, 0, -(days - 1))
}

func (s *moodService) History(dbc dbctx.Context, days int) (*MoodHistory, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	days = clampDays(days, defaultHistoryDays)
	entries, err := s.moods.ListSince(dbc, actor.UserID, s.windowStart(days))
	if err != nil {
		return nil, fmt.Errorf("load mood history: %w", err)
	}
	stats := Summarize(entries)
	stats.Days = days
	if entries == nil {
		entries = []*types.MoodEntry{}
	}
	return &MoodHistory{Entries: entries, Stats: stats}, nil
}

// Summarize computes the aggregate view of a set of mood entries. Coping
// strategies count only from entries marked helpful.
func Summarize(entries []*types.MoodEntry) MoodStats {
	stats := MoodStats{Distribution: emptyDistribution()}
	emotions := map[string]int{}
	triggers := map[string]int{}
	coping := map[string]int{}
	sum := 0
	for _, e := range entries {
		stats.TotalEntries++
		sum += e.Intensity
		stats.Distribution[e.Mood]++
		for _, v := range e.Emotions {
			emotions[v]++
		}
		for _, v := range e.Triggers {
			triggers[v]++
		}
		if e.IsHelpful != nil && *e.IsHelpful {
			for _, v := range e.CopingStrategies {
				coping[v]++
			}
		}
	}
	if stats.TotalEntries > 0 {
		stats.AverageIntensity = round1(float64(sum) / float64(stats.TotalEntries))
	}
	stats.TopEmotions = topTerms(emotions, topN)
	stats.TopTriggers = topTerms(triggers, topN)
	stats.HelpfulCopingStrategies = topTerms(coping, topN)
	return stats
}

func emptyDistribution() map[string]int {
	d := make(map[string]int, len(mood.Moods))
	for _, m := range mood.Moods {
		d[m] = 0
	}
	return d
}

// topTerms returns the n most frequent terms, ties broken alphabetically.
func topTerms(freq map[string]int, n int) []TermCount {
	out := make([]TermCount, 0, len(freq))
	for term, count := range freq {
		out = append(out, TermCount{Term: term, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func (s *moodService) Trends(dbc dbctx.Context, days int) ([]MoodTrend, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	days = clampDays(days, defaultTrendDays)
	entries, err := s.moods.ListSince(dbc, actor.UserID, s.windowStart(days))
	if err != nil {
		return nil, fmt.Errorf("load mood trends: %w", err)
	}
	return DailyTrends(entries, s.clock.Location), nil
}

// DailyTrends groups entries by calendar date in loc. The dominant mood of a
// day is the most frequent one; a tie goes to the sadder mood.
func DailyTrends(entries []*types.MoodEntry, loc *time.Location) []MoodTrend {
	type bucket struct {
		count int
		sum   int
		moods map[string]int
	}
	buckets := map[string]*bucket{}
	var order []string
	for _, e := range entries {
		day := gamification.StartOfDay(e.CreatedAt, loc).Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{moods: map[string]int{}}
			buckets[day] = b
			order = append(order, day)
		}
		b.count++
		b.sum += e.Intensity
		b.moods[e.Mood]++
	}
	sort.Strings(order)

	out := make([]MoodTrend, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		out = append(out, MoodTrend{
			Date:             day,
			Count:            b.count,
			AverageIntensity: round1(float64(b.sum) / float64(b.count)),
			DominantMood:     dominantMood(b.moods),
		})
	}
	return out
}

func dominantMood(counts map[string]int) string {
	best, bestCount := "", 0
	for _, m := range mood.Moods {
		if c := counts[m]; c > bestCount {
			best, bestCount = m, c
		}
	}
	return best
}

func (s *moodService) CoachTracking(dbc dbctx.Context) ([]*YouthMoodTracking, error) {
	actor, err := authorize(dbc, policy.CoachMoodTracking, policy.Resource{})
	if err != nil {
		return nil, err
	}
	profiles, err := s.youth.ListByCoach(dbc, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list assigned youth: %w", err)
	}
	since := s.windowStart(coachWindowDays)
	out := make([]*YouthMoodTracking, len(profiles))
	err = fanOut(dbc, len(profiles), func(inner dbctx.Context, i int) error {
		p := profiles[i]
		latest, err := s.moods.Latest(inner, p.UserID)
		if err != nil {
			return fmt.Errorf("load latest mood: %w", err)
		}
		week, err := s.moods.ListSince(inner, p.UserID, since)
		if err != nil {
			return fmt.Errorf("load weekly moods: %w", err)
		}
		stats := Summarize(week)
		out[i] = &YouthMoodTracking{
			User:             p.User.Summary(),
			Level:            gamification.LevelFor(p.TotalPoints).Level,
			Latest:           latest,
			WeekEntries:      stats.TotalEntries,
			WeekAverage:      stats.AverageIntensity,
			WeekDistribution: stats.Distribution,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *moodService) Reports(dbc dbctx.Context, from, to *time.Time) (*MoodReport, error) {
	if _, err := authorize(dbc, policy.MoodReports, policy.Resource{}); err != nil {
		return nil, err
	}
	end := s.clock.Now()
	if to != nil {
		end = *to
	}
	start := s.windowStart(defaultTrendDays)
	if from != nil {
		start = *from
	}
	if end.Before(start) {
		return nil, badRequest("invalid_date_range", "end date is before start date")
	}
	rows, err := s.moods.CountByMood(dbc, start, end)
	if err != nil {
		return nil, fmt.Errorf("count moods: %w", err)
	}
	report := &MoodReport{From: start, To: end, Distribution: rows}
	if report.Distribution == nil {
		report.Distribution = []repos.MoodCount{}
	}
	var weighted float64
	for _, r := range rows {
		report.TotalEntries += r.Count
		weighted += r.AvgIntensity * float64(r.Count)
	}
	if report.TotalEntries > 0 {
		report.AverageIntensity = round1(weighted / float64(report.TotalEntries))
	}
	return report, nil
}
