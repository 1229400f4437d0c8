package mood

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

func TestMoodRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewMoodRepo(db, testutil.Logger(t))

	youth, _ := testutil.SeedYouth(t, ctx, tx, nil)
	now := time.Now().UTC()

	seed := []struct {
		mood      string
		intensity int
		age       time.Duration
	}{
		{"happy", 8, 72 * time.Hour},
		{"sad", 3, 48 * time.Hour},
		{"happy", 6, time.Hour},
	}
	for _, s := range seed {
		e := &types.MoodEntry{UserID: youth.ID, Mood: s.mood, Intensity: s.intensity, CreatedAt: now.Add(-s.age)}
		if err := repo.Create(dbc, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	_, total, err := repo.ListByUser(dbc, youth.ID, Filter{Mood: "happy"}, pagination.Page{})
	if err != nil || total != 2 {
		t.Fatalf("ListByUser(happy): total=%d err=%v", total, err)
	}
	since, err := repo.ListSince(dbc, youth.ID, now.Add(-50*time.Hour))
	if err != nil || len(since) != 2 || since[0].Mood != "sad" {
		t.Fatalf("ListSince: got=%d err=%v", len(since), err)
	}
	latest, err := repo.Latest(dbc, youth.ID)
	if err != nil || latest == nil || latest.Intensity != 6 {
		t.Fatalf("Latest: got=%v err=%v", latest, err)
	}

	counts, err := repo.CountByMood(dbc, now.Add(-96*time.Hour), now)
	if err != nil {
		t.Fatalf("CountByMood: %v", err)
	}
	byMood := map[string]MoodCount{}
	for _, c := range counts {
		byMood[c.Mood] = c
	}
	if byMood["happy"].Count < 2 || byMood["sad"].Count < 1 {
		t.Fatalf("CountByMood: %+v", counts)
	}
}
