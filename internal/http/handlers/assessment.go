package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// POST /assessments
// body: { "type": "PHQ9", "responses": [{ "question_id": "q1", "score": 2 }] }
func (ah *AssessmentHandler) Submit(c *gin.Context) {
	var req struct {
		Type      string                     `json:"type"`
		Responses []types.AssessmentResponse `json:"responses"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := ah.assessmentService.Submit(dbcFrom(c), req.Type, req.Responses)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// GET /assessments/review
func (ah *AssessmentHandler) PendingReview(c *gin.Context) {
	out, err := ah.assessmentService.PendingReview(dbcFrom(c), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /assessments/user/:userId/history?type=...
func (ah *AssessmentHandler) History(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	out, err := ah.assessmentService.History(dbcFrom(c), userID, c.Query("type"), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /assessments/:id
func (ah *AssessmentHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	a, err := ah.assessmentService.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}

// POST /assessments/:id/review
// body: { "notes": "..." }
func (ah *AssessmentHandler) Review(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := ah.assessmentService.Review(dbcFrom(c), id, req.Notes)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}
