package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

func TestAssessmentRepoReviewQueue(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAssessmentRepo(db, testutil.Logger(t))

	youth, _ := testutil.SeedYouth(t, ctx, tx, nil)
	clinician := testutil.SeedUser(t, ctx, tx, "clinician")
	now := time.Now().UTC()

	flagged := &types.Assessment{UserID: youth.ID, Type: "PHQ9", TotalScore: 22, Severity: "severe", FlaggedForReview: true, CompletedAt: now}
	calm := &types.Assessment{UserID: youth.ID, Type: "GAD7", TotalScore: 2, Severity: "none", CompletedAt: now}
	for _, a := range []*types.Assessment{flagged, calm} {
		if err := repo.Create(dbc, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if _, total, err := repo.ListByUser(dbc, youth.ID, "PHQ9", pagination.Page{}); err != nil || total != 1 {
		t.Fatalf("ListByUser(PHQ9): total=%d err=%v", total, err)
	}

	pending, _, err := repo.ListPendingReview(dbc, pagination.Page{Limit: 100})
	if err != nil {
		t.Fatalf("ListPendingReview: %v", err)
	}
	if !containsID(pending, flagged) || containsID(pending, calm) {
		t.Fatalf("ListPendingReview: unexpected rows")
	}

	if err := repo.SetReview(dbc, flagged.ID, clinician.ID, "spoke with family", now); err != nil {
		t.Fatalf("SetReview: %v", err)
	}
	got, err := repo.GetByID(dbc, flagged.ID)
	if err != nil || got == nil || got.Reviewer == nil || got.Reviewer.ID != clinician.ID {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	pending, _, _ = repo.ListPendingReview(dbc, pagination.Page{Limit: 100})
	if containsID(pending, flagged) {
		t.Fatalf("reviewed assessment still pending")
	}
}

func containsID(rows []*types.Assessment, target *types.Assessment) bool {
	for _, r := range rows {
		if r.ID == target.ID {
			return true
		}
	}
	return false
}
