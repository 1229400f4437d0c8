package alert

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	"github.com/yungbote/youthcare-backend/internal/db"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

func TestAlertRepoTriggerIsUnique(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAlertRepo(conn, testutil.Logger(t))

	youth, _ := testutil.SeedYouth(t, ctx, tx, nil)
	triggerID := uuid.New()
	model := "Journal"

	first := &types.Alert{
		YouthID: youth.ID, Type: "self-harm-mention", Severity: "high", Source: "journal",
		TriggerID: &triggerID, TriggerModel: &model, Description: "d", Status: "active",
	}
	if err := repo.Create(dbc, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByTrigger(dbc, triggerID, model)
	if err != nil || got == nil || got.ID != first.ID {
		t.Fatalf("GetByTrigger: got=%v err=%v", got, err)
	}

	err = tx.Transaction(func(inner *gorm.DB) error {
		dup := &types.Alert{
			YouthID: youth.ID, Type: "self-harm-mention", Severity: "high", Source: "journal",
			TriggerID: &triggerID, TriggerModel: &model, Description: "d", Status: "active",
		}
		return repo.Create(dbc.WithTx(inner), dup)
	})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("duplicate trigger: err=%v, want unique violation", err)
	}
}

func TestAlertRepoActionsAndSummary(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAlertRepo(conn, testutil.Logger(t))

	youth, _ := testutil.SeedYouth(t, ctx, tx, nil)
	clinician := testutil.SeedUser(t, ctx, tx, "clinician")

	seed := []struct{ typ, severity, status string }{
		{"high-anxiety", "high", "active"},
		{"self-harm-mention", "critical", "active"},
		{"high-anxiety", "high", "resolved"},
	}
	var alerts []*types.Alert
	for _, s := range seed {
		a := &types.Alert{YouthID: youth.ID, Type: s.typ, Severity: s.severity, Source: "assessment", Description: "d", Status: s.status}
		if err := repo.Create(dbc, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
		alerts = append(alerts, a)
	}

	base := time.Now().UTC()
	for i, note := range []string{"second", "first"} {
		act := &types.AlertAction{AlertID: alerts[0].ID, Action: "note", TakenBy: clinician.ID, Notes: note, TakenAt: base.Add(-time.Duration(i) * time.Minute)}
		if err := repo.AddAction(dbc, act); err != nil {
			t.Fatalf("AddAction: %v", err)
		}
	}
	got, err := repo.GetByID(dbc, alerts[0].ID)
	if err != nil || got == nil || len(got.Actions) != 2 {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.Actions[0].Notes != "first" {
		t.Fatalf("actions not ordered by taken_at: %q first", got.Actions[0].Notes)
	}

	yid := youth.ID
	_, total, err := repo.List(dbc, Filter{Status: "active", YouthID: &yid}, pagination.Page{})
	if err != nil || total != 2 {
		t.Fatalf("List(active): total=%d err=%v", total, err)
	}

	sum, err := repo.Summary(dbc)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Total < 3 || sum.Active < 2 || sum.CriticalActive < 1 || sum.ByType["high-anxiety"] < 2 {
		t.Fatalf("Summary: %+v", sum)
	}
}
