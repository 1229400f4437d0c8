package message

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

func TestMessageRepoReadState(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewMessageRepo(db, testutil.Logger(t))

	coach := testutil.SeedUser(t, ctx, tx, "coach")
	youth, _ := testutil.SeedYouth(t, ctx, tx, nil)

	for _, body := range []string{"hello", "how are you?"} {
		if err := repo.Create(dbc, &types.Message{SenderID: coach.ID, RecipientID: youth.ID, Content: body, MessageType: "text"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	inbox, total, err := repo.Inbox(dbc, youth.ID, nil, pagination.Page{})
	if err != nil || total != 2 || inbox[0].Sender == nil {
		t.Fatalf("Inbox: total=%d err=%v", total, err)
	}
	if n, err := repo.UnreadCount(dbc, youth.ID); err != nil || n != 2 {
		t.Fatalf("UnreadCount: n=%d err=%v", n, err)
	}

	first := time.Now().UTC()
	if ok, err := repo.MarkRead(dbc, inbox[0].ID, first); err != nil || !ok {
		t.Fatalf("MarkRead: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.MarkRead(dbc, inbox[0].ID, first.Add(time.Hour)); err != nil || ok {
		t.Fatalf("MarkRead(again): ok=%v err=%v", ok, err)
	}
	got, err := repo.GetByID(dbc, inbox[0].ID)
	if err != nil || got == nil || got.ReadAt == nil || got.ReadAt.Sub(first).Abs() > time.Second {
		t.Fatalf("read_at restamped: got=%v err=%v", got, err)
	}

	unread := false
	if _, total, err := repo.Inbox(dbc, youth.ID, &unread, pagination.Page{}); err != nil || total != 1 {
		t.Fatalf("Inbox(unread): total=%d err=%v", total, err)
	}
	if _, total, err := repo.Sent(dbc, coach.ID, pagination.Page{}); err != nil || total != 2 {
		t.Fatalf("Sent: total=%d err=%v", total, err)
	}
}
