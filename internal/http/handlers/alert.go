package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type AlertHandler struct {
	alertService services.AlertService
}

func NewAlertHandler(alertService services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GET /alerts?status=...&severity=...&type=...&youth_id=...
func (ah *AlertHandler) List(c *gin.Context) {
	youthID, err := optionalUUID(c.Query("youth_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	out, err := ah.alertService.List(dbcFrom(c), repos.AlertFilter{
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
		Type:     c.Query("type"),
		YouthID:  youthID,
	}, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /alerts/summary
func (ah *AlertHandler) Summary(c *gin.Context) {
	out, err := ah.alertService.Summary(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /alerts/youth/:userId
func (ah *AlertHandler) ListForYouth(c *gin.Context) {
	youthID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	out, err := ah.alertService.ListForYouth(dbcFrom(c), youthID, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /alerts/:id
func (ah *AlertHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	a, err := ah.alertService.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}

// PUT /alerts/:id/status
func (ah *AlertHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status           string     `json:"status"`
		AssignedTo       *uuid.UUID `json:"assigned_to"`
		FollowUpRequired *bool      `json:"follow_up_required"`
		FollowUpDate     *time.Time `json:"follow_up_date"`
		Notes            string     `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := ah.alertService.UpdateStatus(dbcFrom(c), id, services.AlertStatusInput{
		Status:           req.Status,
		AssignedTo:       req.AssignedTo,
		FollowUpRequired: req.FollowUpRequired,
		FollowUpDate:     req.FollowUpDate,
		Notes:            req.Notes,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}

// POST /alerts/:id/notes
// body: { "action": "called parent", "notes": "..." }
func (ah *AlertHandler) AddNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Action string `json:"action"`
		Notes  string `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := ah.alertService.AddNote(dbcFrom(c), id, req.Action, req.Notes)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}

// POST /alerts/:id/assign
// body: { "clinician_id": "..." }
func (ah *AlertHandler) Assign(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ClinicianID uuid.UUID `json:"clinician_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := ah.alertService.Assign(dbcFrom(c), id, req.ClinicianID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}
