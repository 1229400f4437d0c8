package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/survey"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

func intakeSurvey() *types.Survey {
	return &types.Survey{
		ID:       uuid.New(),
		Title:    "Intake " + uuid.NewString()[:8],
		Version:  1,
		IsActive: true,
		Questions: []types.SurveyQuestion{
			{ID: "welcome", Prompt: "Welcome", Type: survey.QuestionInfo, Order: 1},
			{ID: "name", Prompt: "What should we call you?", Type: survey.QuestionText, Required: true, Order: 2},
			{ID: "goal", Prompt: "Pick a goal", Type: survey.QuestionSingleChoice, Required: true, Order: 3, Options: []types.SurveyOption{
				{Value: "sleep", Label: "Sleep better"},
				{Value: "focus", Label: "Focus"},
			}},
			{ID: "hobbies", Prompt: "Hobbies", Type: survey.QuestionMultiChoice, AllowMultiple: true, Order: 4, Options: []types.SurveyOption{
				{Value: "art", Label: "Art"},
				{Value: "music", Label: "Music"},
				{Value: "sport", Label: "Sport"},
			}},
		},
	}
}

func TestValidateAnswers(t *testing.T) {
	sv := intakeSurvey()
	at := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		answers []SurveyAnswer
		code    string
		want    int
	}{
		{"empty", nil, "responses_required", 0},
		{"unknown question", []SurveyAnswer{{QuestionID: "age", Answer: "12"}}, "unknown_question", 0},
		{"duplicate", []SurveyAnswer{{QuestionID: "name", Answer: "Jo"}, {QuestionID: "name", Answer: "Jo"}}, "duplicate_response", 0},
		{"bad option", []SurveyAnswer{{QuestionID: "name", Answer: "Jo"}, {QuestionID: "goal", Answer: "fly"}}, "invalid_answer", 0},
		{"two single choices", []SurveyAnswer{{QuestionID: "name", Answer: "Jo"}, {QuestionID: "goal", Answer: []any{"sleep", "focus"}}}, "invalid_answer", 0},
		{"non-string option", []SurveyAnswer{{QuestionID: "name", Answer: "Jo"}, {QuestionID: "goal", Answer: 3}}, "invalid_answer", 0},
		{"missing required", []SurveyAnswer{{QuestionID: "name", Answer: "Jo"}}, "missing_required_answer", 0},
		{"blank required", []SurveyAnswer{{QuestionID: "name", Answer: "  "}, {QuestionID: "goal", Answer: "sleep"}}, "missing_required_answer", 0},
		{"ok", []SurveyAnswer{
			{QuestionID: "welcome", Answer: "seen"},
			{QuestionID: " name ", Answer: "Jo"},
			{QuestionID: "goal", Answer: "focus"},
			{QuestionID: "hobbies", Answer: []any{"art", "sport"}},
		}, "", 3},
		{"ok without optional", []SurveyAnswer{{QuestionID: "name", Answer: "Jo"}, {QuestionID: "goal", Answer: "sleep"}, {QuestionID: "hobbies", Answer: []any{}}}, "", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateAnswers(sv, tc.answers, at)
			if tc.code != "" {
				wantCode(t, err, http.StatusBadRequest, tc.code)
				return
			}
			if err != nil {
				t.Fatalf("ValidateAnswers: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("ValidateAnswers returned %d responses, want %d", len(got), tc.want)
			}
			for _, r := range got {
				if !r.AnsweredAt.Equal(at) {
					t.Fatalf("response %s answered_at=%v, want %v", r.QuestionID, r.AnsweredAt, at)
				}
			}
		})
	}
}

func TestSurveyAssignAndSubmit(t *testing.T) {
	h := newHarness(t)
	svc := h.surveyService()
	coach := h.seedUser(t, user.RoleCoach)
	other := h.seedUser(t, user.RoleCoach)
	youth, _ := h.seedYouth(t, testutil.PtrUUID(coach.ID))
	sv := intakeSurvey()
	if err := h.tx.Create(sv).Error; err != nil {
		t.Fatalf("create survey: %v", err)
	}

	_, err := svc.Assign(h.as(other), sv.ID, youth.ID)
	wantCode(t, err, http.StatusForbidden, "forbidden")
	_, err = svc.Assign(h.as(youth), sv.ID, youth.ID)
	wantCode(t, err, http.StatusForbidden, "forbidden")

	a, err := svc.Assign(h.as(coach), sv.ID, youth.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if a.Status != survey.AssignmentAssigned || a.AssignedByRole != user.RoleCoach {
		t.Fatalf("assignment=%+v", a)
	}
	_, err = svc.Assign(h.as(coach), sv.ID, youth.ID)
	wantCode(t, err, http.StatusConflict, "already_assigned")

	mine, err := svc.Mine(h.as(youth), "")
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != a.ID {
		t.Fatalf("Mine=%d assignments, want [%s]", len(mine), a.ID)
	}
	_, err = svc.Mine(h.as(youth), "archived")
	wantCode(t, err, http.StatusBadRequest, "invalid_status")

	_, err = svc.Start(h.as(other), a.ID)
	wantCode(t, err, http.StatusForbidden, "forbidden")

	done, err := svc.Submit(h.as(youth), a.ID, []SurveyAnswer{
		{QuestionID: "name", Answer: "Jo"},
		{QuestionID: "goal", Answer: "sleep"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if done.Status != survey.AssignmentCompleted || done.StartedAt == nil || done.CompletedAt == nil || len(done.Responses) != 2 {
		t.Fatalf("submitted=%+v", done)
	}

	_, err = svc.Start(h.as(youth), a.ID)
	wantCode(t, err, http.StatusConflict, "survey_already_completed")
	_, err = svc.Submit(h.as(youth), a.ID, []SurveyAnswer{{QuestionID: "name", Answer: "Jo"}})
	wantCode(t, err, http.StatusConflict, "survey_already_completed")
}
