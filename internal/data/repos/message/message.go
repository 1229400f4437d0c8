package message

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

type MessageRepo interface {
	Create(dbc dbctx.Context, m *types.Message) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Message, error)
	Inbox(dbc dbctx.Context, recipientID uuid.UUID, isRead *bool, page pagination.Page) ([]*types.Message, int64, error)
	Sent(dbc dbctx.Context, senderID uuid.UUID, page pagination.Page) ([]*types.Message, int64, error)
	MarkRead(dbc dbctx.Context, id uuid.UUID, at time.Time) (bool, error)
	UnreadCount(dbc dbctx.Context, recipientID uuid.UUID) (int64, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: baseLog.With("repo", "MessageRepo")}
}

func (r *messageRepo) Create(dbc dbctx.Context, m *types.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(m).Error
}

func (r *messageRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Message, error) {
	var m types.Message
	if err := dbc.Conn(r.db).
		Preload("Sender").
		Where("id = ?", id).
		Limit(1).
		Find(&m).Error; err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

func (r *messageRepo) Inbox(dbc dbctx.Context, recipientID uuid.UUID, isRead *bool, page pagination.Page) ([]*types.Message, int64, error) {
	q := dbc.Conn(r.db).Model(&types.Message{}).Where("recipient_id = ?", recipientID)
	if isRead != nil {
		q = q.Where("is_read = ?", *isRead)
	}
	return pagination.Find[types.Message](q, page, "created_at DESC", "Sender")
}

func (r *messageRepo) Sent(dbc dbctx.Context, senderID uuid.UUID, page pagination.Page) ([]*types.Message, int64, error) {
	q := dbc.Conn(r.db).Model(&types.Message{}).Where("sender_id = ?", senderID)
	return pagination.Find[types.Message](q, page, "created_at DESC", "Recipient")
}

// MarkRead stamps read_at on the first read only. It reports whether this
// call flipped the flag.
func (r *messageRepo) MarkRead(dbc dbctx.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&types.Message{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *messageRepo) UnreadCount(dbc dbctx.Context, recipientID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).
		Model(&types.Message{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error
	return n, err
}

func (r *messageRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.Conn(r.db).Where("id = ?", id).Delete(&types.Message{}).Error
}
