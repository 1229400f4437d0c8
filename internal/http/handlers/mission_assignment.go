package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type MissionAssignmentHandler struct {
	assignmentService services.MissionAssignmentService
}

func NewMissionAssignmentHandler(assignmentService services.MissionAssignmentService) *MissionAssignmentHandler {
	return &MissionAssignmentHandler{assignmentService: assignmentService}
}

// POST /mission-assignments
func (h *MissionAssignmentHandler) Assign(c *gin.Context) {
	var req struct {
		MissionID uuid.UUID  `json:"mission_id"`
		YouthID   uuid.UUID  `json:"youth_id"`
		DueDate   *time.Time `json:"due_date"`
		Notes     string     `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.assignmentService.Assign(dbcFrom(c), services.AssignMissionInput{
		MissionID: req.MissionID,
		YouthID:   req.YouthID,
		DueDate:   req.DueDate,
		Notes:     req.Notes,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, a)
}

// GET /mission-assignments/active/mine
func (h *MissionAssignmentHandler) ActiveMine(c *gin.Context) {
	out, err := h.assignmentService.ActiveMine(dbcFrom(c), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /mission-assignments/coach/assigned
func (h *MissionAssignmentHandler) AssignedByMe(c *gin.Context) {
	out, err := h.assignmentService.AssignedByMe(dbcFrom(c), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /mission-assignments/youth/:youthId?status=...
func (h *MissionAssignmentHandler) ListForYouth(c *gin.Context) {
	youthID, ok := pathUUID(c, "youthId")
	if !ok {
		return
	}
	out, err := h.assignmentService.ListForYouth(dbcFrom(c), youthID, c.Query("status"), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /mission-assignments/:id
// body: { "status": "completed", "score": 90, "feedback": "..." }
func (h *MissionAssignmentHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status   *string `json:"status"`
		Score    *int    `json:"score"`
		Feedback *string `json:"feedback"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.assignmentService.Update(dbcFrom(c), id, services.AssignmentUpdate{
		Status:   req.Status,
		Score:    req.Score,
		Feedback: req.Feedback,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}

// DELETE /mission-assignments/:id
func (h *MissionAssignmentHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.assignmentService.Delete(dbcFrom(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
