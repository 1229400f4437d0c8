package services

import (
	"net/http"
	"reflect"
	"testing"
	"time"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/journal"
	"github.com/yungbote/youthcare-backend/internal/domain/mood"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

func entry(m string, intensity int, at time.Time) *types.MoodEntry {
	return &types.MoodEntry{Mood: m, Intensity: intensity, CreatedAt: at}
}

func TestSummarize(t *testing.T) {
	yes, no := true, false
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	a := entry(mood.Moods[1], 4, day)
	a.Emotions = []string{"tired", "anxious"}
	a.Triggers = []string{"school"}
	a.CopingStrategies = []string{"walk"}
	a.IsHelpful = &yes
	b := entry(mood.Moods[3], 7, day)
	b.Emotions = []string{"anxious"}
	b.CopingStrategies = []string{"music"}
	b.IsHelpful = &no
	c := entry(mood.Moods[3], 8, day)
	c.Emotions = []string{"calm"}
	c.Triggers = []string{"school", "friends"}

	got := Summarize([]*types.MoodEntry{a, b, c})
	if got.TotalEntries != 3 || got.AverageIntensity != 6.3 {
		t.Fatalf("Summarize total=%d avg=%v, want 3 6.3", got.TotalEntries, got.AverageIntensity)
	}
	if got.Distribution[mood.Moods[3]] != 2 || got.Distribution[mood.Moods[1]] != 1 || got.Distribution[mood.Moods[0]] != 0 {
		t.Fatalf("Distribution=%v", got.Distribution)
	}
	if len(got.Distribution) != len(mood.Moods) {
		t.Fatalf("Distribution has %d keys, want every mood", len(got.Distribution))
	}
	wantEmotions := []TermCount{{"anxious", 2}, {"calm", 1}, {"tired", 1}}
	if !reflect.DeepEqual(got.TopEmotions, wantEmotions) {
		t.Fatalf("TopEmotions=%v, want %v", got.TopEmotions, wantEmotions)
	}
	wantTriggers := []TermCount{{"school", 2}, {"friends", 1}}
	if !reflect.DeepEqual(got.TopTriggers, wantTriggers) {
		t.Fatalf("TopTriggers=%v, want %v", got.TopTriggers, wantTriggers)
	}
	wantCoping := []TermCount{{"walk", 1}}
	if !reflect.DeepEqual(got.HelpfulCopingStrategies, wantCoping) {
		t.Fatalf("HelpfulCopingStrategies=%v, want %v", got.HelpfulCopingStrategies, wantCoping)
	}

	empty := Summarize(nil)
	if empty.TotalEntries != 0 || empty.AverageIntensity != 0 || len(empty.TopEmotions) != 0 {
		t.Fatalf("Summarize(nil)=%+v", empty)
	}
}

func TestTopTermsLimit(t *testing.T) {
	freq := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6}
	got := topTerms(freq, 5)
	if len(got) != 5 || got[0].Term != "f" || got[4].Term != "b" {
		t.Fatalf("topTerms=%v", got)
	}
}

func TestDailyTrends(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 03:00 UTC on the 11th is still the 10th in loc.
	late := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)
	noon := time.Date(2025, 3, 11, 17, 0, 0, 0, time.UTC)
	entries := []*types.MoodEntry{
		entry(journal.MoodHappy, 6, late),
		entry(journal.MoodSad, 3, late),
		entry(journal.MoodHappy, 7, noon),
		entry(journal.MoodHappy, 9, noon),
		entry(journal.MoodVerySad, 2, noon),
	}
	got := DailyTrends(entries, loc)
	want := []MoodTrend{
		{Date: "2025-03-10", Count: 2, AverageIntensity: 4.5, DominantMood: journal.MoodSad},
		{Date: "2025-03-11", Count: 3, AverageIntensity: 6, DominantMood: journal.MoodHappy},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DailyTrends=%+v, want %+v", got, want)
	}
	if got := DailyTrends(nil, loc); len(got) != 0 {
		t.Fatalf("DailyTrends(nil)=%v, want empty", got)
	}
}

func TestClampDays(t *testing.T) {
	cases := []struct{ in, def, want int }{
		{0, 7, 7},
		{-3, 30, 30},
		{14, 7, 14},
		{1000, 7, maxMoodDays},
	}
	for _, tc := range cases {
		if got := clampDays(tc.in, tc.def); got != tc.want {
			t.Fatalf("clampDays(%d, %d)=%d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestMoodLogValidation(t *testing.T) {
	h := newHarness(t)
	svc := h.moodService()
	youth, _ := h.seedYouth(t, nil)
	coach := h.seedUser(t, user.RoleCoach)

	cases := []struct {
		name   string
		in     MoodInput
		status int
		code   string
	}{
		{"bad mood", MoodInput{Mood: "elated", Intensity: 5}, http.StatusBadRequest, "invalid_mood"},
		{"intensity low", MoodInput{Mood: journal.MoodHappy, Intensity: 0}, http.StatusBadRequest, "invalid_intensity"},
		{"intensity high", MoodInput{Mood: journal.MoodHappy, Intensity: 11}, http.StatusBadRequest, "invalid_intensity"},
		{"social context", MoodInput{Mood: journal.MoodHappy, Intensity: 5, SocialContext: "on-mars"}, http.StatusBadRequest, "invalid_social_context"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Log(h.as(youth), tc.in)
			wantCode(t, err, tc.status, tc.code)
		})
	}

	_, err := svc.Log(h.as(coach), MoodInput{Mood: journal.MoodHappy, Intensity: 5})
	wantCode(t, err, http.StatusForbidden, "forbidden")

	e, err := svc.Log(h.as(youth), MoodInput{Mood: journal.MoodHappy, Intensity: 5, SocialContext: mood.SocialWithFriends})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if e.UserID != youth.ID || e.Intensity != 5 {
		t.Fatalf("Log entry=%+v", e)
	}
}
