package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/message"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

const maxMessageLength = 5000

type SendMessageInput struct {
	RecipientID       uuid.UUID
	Content           string
	MessageType       string
	RelatedEntityType string
	RelatedEntityID   *uuid.UUID
}

type UnreadCount struct {
	Unread int64 `json:"unread"`
}

type MessageService interface {
	Send(dbc dbctx.Context, in SendMessageInput) (*types.Message, error)
	Inbox(dbc dbctx.Context, isRead *bool, page pagination.Page) (pagination.List[*types.Message], error)
	Sent(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.Message], error)
	MarkRead(dbc dbctx.Context, id uuid.UUID) (*types.Message, error)
	UnreadCount(dbc dbctx.Context) (*UnreadCount, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type messageService struct {
	db       *gorm.DB
	log      *logger.Logger
	messages repos.MessageRepo
	users    repos.UserRepo
	clock    Clock
}

func NewMessageService(db *gorm.DB, log *logger.Logger, messages repos.MessageRepo, users repos.UserRepo, clock Clock) MessageService {
	return &messageService{
		db:       db,
		log:      log.With("service", "MessageService"),
		messages: messages,
		users:    users,
		clock:    clock,
	}
}

func (s *messageService) Send(dbc dbctx.Context, in SendMessageInput) (*types.Message, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(in.Content)
	switch {
	case in.RecipientID == uuid.Nil:
		return nil, badRequest("recipient_required", "recipient_id is required")
	case in.RecipientID == actor.UserID:
		return nil, badRequest("invalid_recipient", "you cannot message yourself")
	case content == "":
		return nil, badRequest("content_required", "content is required")
	case len(content) > maxMessageLength:
		return nil, badRequest("content_too_long", "content must be at most %d characters", maxMessageLength)
	}
	kind := strings.TrimSpace(in.MessageType)
	if kind == "" {
		kind = message.TypeText
	}
	if !message.ValidType(kind) {
		return nil, badRequest("invalid_message_type", "message_type must be one of %s", strings.Join(message.Types, ", "))
	}

	recipient, err := s.users.GetByID(dbc, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("load recipient: %w", err)
	}
	if recipient == nil || !recipient.IsActive {
		return nil, notFound("recipient_not_found", "recipient not found")
	}
	m := &types.Message{
		SenderID:          actor.UserID,
		RecipientID:       in.RecipientID,
		Content:           content,
		MessageType:       kind,
		RelatedEntityType: strings.TrimSpace(in.RelatedEntityType),
		RelatedEntityID:   in.RelatedEntityID,
	}
	if err := s.messages.Create(dbc, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	s.log.Debug("Message sent", "message_id", m.ID, "sender_id", actor.UserID, "recipient_id", in.RecipientID, "type", kind)
	return s.messages.GetByID(dbc, m.ID)
}

func (s *messageService) Inbox(dbc dbctx.Context, isRead *bool, page pagination.Page) (pagination.List[*types.Message], error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return pagination.List[*types.Message]{}, err
	}
	items, total, err := s.messages.Inbox(dbc, actor.UserID, isRead, page)
	if err != nil {
		return pagination.List[*types.Message]{}, fmt.Errorf("list inbox: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *messageService) Sent(dbc dbctx.Context, page pagination.Page) (pagination.List[*types.Message], error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return pagination.List[*types.Message]{}, err
	}
	items, total, err := s.messages.Sent(dbc, actor.UserID, page)
	if err != nil {
		return pagination.List[*types.Message]{}, fmt.Errorf("list sent: %w", err)
	}
	return pagination.NewList(items, total, page), nil
}

func (s *messageService) load(dbc dbctx.Context, id uuid.UUID) (*types.Message, error) {
	m, err := s.messages.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load message: %w", err)
	}
	if m == nil {
		return nil, notFound("message_not_found", "message not found")
	}
	return m, nil
}

// MarkRead is idempotent; read_at keeps the first read time.
func (s *messageService) MarkRead(dbc dbctx.Context, id uuid.UUID) (*types.Message, error) {
	m, err := s.load(dbc, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(dbc, policy.ReadMessage, policy.Owned(m.RecipientID)); err != nil {
		return nil, err
	}
	changed, err := s.messages.MarkRead(dbc, id, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	if !changed {
		return m, nil
	}
	return s.messages.GetByID(dbc, id)
}

func (s *messageService) UnreadCount(dbc dbctx.Context) (*UnreadCount, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return nil, err
	}
	n, err := s.messages.UnreadCount(dbc, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}
	return &UnreadCount{Unread: n}, nil
}

func (s *messageService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	m, err := s.load(dbc, id)
	if err != nil {
		return err
	}
	if _, err := authorize(dbc, policy.DeleteMessage, policy.Owned(m.RecipientID, m.SenderID)); err != nil {
		return err
	}
	if err := s.messages.Delete(dbc, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
