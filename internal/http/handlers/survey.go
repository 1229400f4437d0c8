package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type SurveyHandler struct {
	surveyService services.SurveyService
}

func NewSurveyHandler(surveyService services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// GET /surveys
func (sh *SurveyHandler) List(c *gin.Context) {
	out, err := sh.surveyService.ListActive(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// GET /surveys/:id
func (sh *SurveyHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	s, err := sh.surveyService.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, s)
}

// POST /survey-assignments
// body: { "survey_id": "...", "youth_id": "..." }
func (sh *SurveyHandler) Assign(c *gin.Context) {
	var req struct {
		SurveyID uuid.UUID `json:"survey_id"`
		YouthID  uuid.UUID `json:"youth_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := sh.surveyService.Assign(dbcFrom(c), req.SurveyID, req.YouthID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, a)
}

// GET /survey-assignments/mine?status=...
func (sh *SurveyHandler) Mine(c *gin.Context) {
	out, err := sh.surveyService.Mine(dbcFrom(c), c.Query("status"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// GET /survey-assignments/:id
func (sh *SurveyHandler) GetAssignment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	a, err := sh.surveyService.GetAssignment(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}

// POST /survey-assignments/:id/start
func (sh *SurveyHandler) Start(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	a, err := sh.surveyService.Start(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}

// POST /survey-assignments/:id/submit
// body: { "responses": [{ "question_id": "...", "answer": ... }] }
func (sh *SurveyHandler) Submit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Responses []services.SurveyAnswer `json:"responses"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := sh.surveyService.Submit(dbcFrom(c), id, req.Responses)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, a)
}
