package message

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/domain/user"
)

const (
	TypeText       = "text"
	TypeAssignment = "assignment"
	TypeAlert      = "alert"
	TypeFeedback   = "feedback"
)

var Types = []string{TypeText, TypeAssignment, TypeAlert, TypeFeedback}

func ValidType(v string) bool {
	for _, t := range Types {
		if t == v {
			return true
		}
	}
	return false
}

type Message struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID          uuid.UUID  `gorm:"type:uuid;index;not null;column:sender_id" json:"sender_id"`
	Sender            *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	RecipientID       uuid.UUID  `gorm:"type:uuid;index;not null;column:recipient_id" json:"recipient_id"`
	Recipient         *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipientID;references:ID" json:"recipient,omitempty"`
	Content           string     `gorm:"type:text;not null;column:content" json:"content"`
	MessageType       string     `gorm:"not null;default:text;column:message_type" json:"message_type"`
	RelatedEntityType string     `gorm:"column:related_entity_type" json:"related_entity_type,omitempty"`
	RelatedEntityID   *uuid.UUID `gorm:"type:uuid;column:related_entity_id" json:"related_entity_id,omitempty"`
	IsRead            bool       `gorm:"not null;default:false;index;column:is_read" json:"is_read"`
	ReadAt            *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt         time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}

func (Message) TableName() string { return "message" }
