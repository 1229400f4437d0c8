package survey

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
)

func TestSurveyRepoUpsertKeepsID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSurveyRepo(db, testutil.Logger(t))

	title := "Check-in " + uuid.NewString()
	first := &types.Survey{Title: title, Version: 1, IsActive: true, Questions: []types.SurveyQuestion{{ID: "q1", Prompt: "How are you?", Type: "text", Required: true}}}
	created, err := repo.UpsertByTitle(dbc, first)
	if err != nil || !created {
		t.Fatalf("UpsertByTitle(new): created=%v err=%v", created, err)
	}

	second := &types.Survey{Title: title, Version: 2, IsActive: true, Questions: []types.SurveyQuestion{
		{ID: "q1", Prompt: "How are you?", Type: "text", Required: true},
		{ID: "q2", Prompt: "Anything else?", Type: "text"},
	}}
	created, err = repo.UpsertByTitle(dbc, second)
	if err != nil || created {
		t.Fatalf("UpsertByTitle(existing): created=%v err=%v", created, err)
	}
	if second.ID != first.ID {
		t.Fatalf("UpsertByTitle changed id: %s != %s", second.ID, first.ID)
	}
	got, err := repo.GetByID(dbc, first.ID)
	if err != nil || got == nil || got.Version != 2 || len(got.Questions) != 2 {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
}

func TestSurveyAssignmentRepoOpen(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	s := &types.Survey{Title: "Coping " + uuid.NewString(), Version: 1, IsActive: true}
	if _, err := NewSurveyRepo(db, log).UpsertByTitle(dbc, s); err != nil {
		t.Fatalf("seed survey: %v", err)
	}
	clinician := testutil.SeedUser(t, ctx, tx, "clinician")
	youth, _ := testutil.SeedYouth(t, ctx, tx, nil)

	repo := NewAssignmentRepo(db, log)
	a := &types.SurveyAssignment{SurveyID: s.ID, YouthID: youth.ID, AssignedBy: clinician.ID, AssignedByRole: "clinician", Status: "assigned", AssignedAt: time.Now().UTC()}
	if err := repo.Create(dbc, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if open, err := repo.GetOpen(dbc, s.ID, youth.ID); err != nil || open == nil {
		t.Fatalf("GetOpen: got=%v err=%v", open, err)
	}
	rows, err := repo.ListByYouth(dbc, youth.ID, nil)
	if err != nil || len(rows) != 1 || rows[0].Survey == nil {
		t.Fatalf("ListByYouth: len=%d err=%v", len(rows), err)
	}
	rows, err = repo.ListByYouth(dbc, youth.ID, []string{"completed"})
	if err != nil || len(rows) != 0 {
		t.Fatalf("ListByYouth(completed): len=%d err=%v", len(rows), err)
	}
}
