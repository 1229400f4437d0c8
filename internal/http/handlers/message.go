package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type MessageHandler struct {
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// POST /messages
func (mh *MessageHandler) Send(c *gin.Context) {
	var req struct {
		RecipientID       uuid.UUID  `json:"recipient_id"`
		Content           string     `json:"content"`
		MessageType       string     `json:"message_type"`
		RelatedEntityType string     `json:"related_entity_type"`
		RelatedEntityID   *uuid.UUID `json:"related_entity_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	m, err := mh.messageService.Send(dbcFrom(c), services.SendMessageInput{
		RecipientID:       req.RecipientID,
		Content:           req.Content,
		MessageType:       req.MessageType,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, m)
}

// GET /messages?is_read=false
func (mh *MessageHandler) Inbox(c *gin.Context) {
	isRead, ok := queryBool(c, "is_read")
	if !ok {
		return
	}
	out, err := mh.messageService.Inbox(dbcFrom(c), isRead, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /messages/sent
func (mh *MessageHandler) Sent(c *gin.Context) {
	out, err := mh.messageService.Sent(dbcFrom(c), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /messages/unread/count
func (mh *MessageHandler) UnreadCount(c *gin.Context) {
	out, err := mh.messageService.UnreadCount(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /messages/:id/read
func (mh *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	m, err := mh.messageService.MarkRead(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, m)
}

// DELETE /messages/:id
func (mh *MessageHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := mh.messageService.Delete(dbcFrom(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
