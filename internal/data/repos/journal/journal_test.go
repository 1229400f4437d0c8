package journal

import (
	"context"
	"testing"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

func TestJournalRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewJournalRepo(db, testutil.Logger(t))

	youth, _ := testutil.SeedYouth(t, ctx, tx, nil)

	entries := []*types.Journal{
		{UserID: youth.ID, Title: "Morning", Content: "Walked the dog", Mood: "happy", Tags: []string{"pets"}},
		{UserID: youth.ID, Title: "Rough day", Content: "Feeling hopeless today", Mood: "sad", Tags: []string{"school"}, IsPrivate: true},
		{UserID: youth.ID, Title: "Evening", Content: "Dinner with family", Mood: "happy"},
	}
	for _, j := range entries {
		if err := repo.Create(dbc, j); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	cases := []struct {
		name   string
		filter Filter
		want   int64
	}{
		{"all", Filter{}, 3},
		{"mood", Filter{Mood: "happy"}, 2},
		{"tag", Filter{Tag: "school"}, 1},
		{"public only", Filter{ExcludePrivate: true}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, total, err := repo.ListByUser(dbc, youth.ID, tc.filter, pagination.Page{Page: 1, Limit: 10})
			if err != nil || total != tc.want {
				t.Fatalf("ListByUser(%s): total=%d err=%v, want %d", tc.name, total, err, tc.want)
			}
		})
	}

	found, err := repo.Search(dbc, youth.ID, "DOG", 20)
	if err != nil || len(found) != 1 || found[0].Title != "Morning" {
		t.Fatalf("Search: got=%v err=%v", found, err)
	}

	matched, total, err := repo.ListMatching(dbc, []string{"hopeless", "worthless"}, pagination.Page{})
	if err != nil || total != 1 || len(matched) != 1 || matched[0].User == nil {
		t.Fatalf("ListMatching: total=%d len=%d err=%v", total, len(matched), err)
	}

	entries[0].Content = "Walked the dog twice"
	if err := repo.Save(dbc, entries[0]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByID(dbc, entries[0].ID)
	if err != nil || got == nil || got.Content != "Walked the dog twice" {
		t.Fatalf("GetByID after Save: got=%v err=%v", got, err)
	}
	if err := repo.Delete(dbc, entries[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := repo.GetByID(dbc, entries[0].ID); got != nil {
		t.Fatalf("GetByID after Delete: still present")
	}
}
