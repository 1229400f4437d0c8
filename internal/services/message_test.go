package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

func TestSendMessage(t *testing.T) {
	h := newHarness(t)
	svc := h.messageService()
	coach := h.seedUser(t, user.RoleCoach)
	youth, _ := h.seedYouth(t, nil)

	cases := []struct {
		name   string
		in     SendMessageInput
		status int
		code   string
	}{
		{"no recipient", SendMessageInput{Content: "hi"}, http.StatusBadRequest, "recipient_required"},
		{"self", SendMessageInput{RecipientID: coach.ID, Content: "hi"}, http.StatusBadRequest, "invalid_recipient"},
		{"blank", SendMessageInput{RecipientID: youth.ID, Content: "   "}, http.StatusBadRequest, "content_required"},
		{"too long", SendMessageInput{RecipientID: youth.ID, Content: strings.Repeat("a", maxMessageLength+1)}, http.StatusBadRequest, "content_too_long"},
		{"bad type", SendMessageInput{RecipientID: youth.ID, Content: "hi", MessageType: "telegram"}, http.StatusBadRequest, "invalid_message_type"},
		{"unknown recipient", SendMessageInput{RecipientID: uuid.New(), Content: "hi"}, http.StatusNotFound, "recipient_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Send(h.as(coach), tc.in)
			wantCode(t, err, tc.status, tc.code)
		})
	}

	m, err := svc.Send(h.as(coach), SendMessageInput{RecipientID: youth.ID, Content: "  How was today?  "})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.Content != "How was today?" || m.MessageType != "text" || m.IsRead {
		t.Fatalf("message=%+v", m)
	}

	count, err := svc.UnreadCount(h.as(youth))
	if err != nil || count.Unread != 1 {
		t.Fatalf("UnreadCount=%+v err=%v, want 1", count, err)
	}

	_, err = svc.MarkRead(h.as(coach), m.ID)
	wantCode(t, err, http.StatusForbidden, "forbidden")

	read, err := svc.MarkRead(h.as(youth), m.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !read.IsRead || read.ReadAt == nil {
		t.Fatalf("MarkRead=%+v, want read", read)
	}
	again, err := svc.MarkRead(h.as(youth), m.ID)
	if err != nil {
		t.Fatalf("MarkRead again: %v", err)
	}
	if !again.ReadAt.Equal(*read.ReadAt) {
		t.Fatalf("read_at moved from %v to %v", read.ReadAt, again.ReadAt)
	}

	unread := false
	inbox, err := svc.Inbox(h.as(youth), &unread, pagination.Page{Page: 1, Limit: 10})
	if err != nil || inbox.Total != 0 {
		t.Fatalf("Inbox(unread)=%d err=%v, want 0", inbox.Total, err)
	}
	sent, err := svc.Sent(h.as(coach), pagination.Page{Page: 1, Limit: 10})
	if err != nil || sent.Total != 1 {
		t.Fatalf("Sent=%d err=%v, want 1", sent.Total, err)
	}

	if err := svc.Delete(h.as(coach), m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = svc.MarkRead(h.as(youth), m.ID)
	wantCode(t, err, http.StatusNotFound, "message_not_found")
}
