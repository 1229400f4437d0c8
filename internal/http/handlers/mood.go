package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type MoodHandler struct {
	moodService services.MoodService
}

func NewMoodHandler(moodService services.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

func moodFilterFrom(c *gin.Context) (repos.MoodFilter, bool) {
	from, ok := queryTime(c, "from")
	if !ok {
		return repos.MoodFilter{}, false
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return repos.MoodFilter{}, false
	}
	return repos.MoodFilter{Mood: c.Query("mood"), From: from, To: to}, true
}

// POST /moods
func (mh *MoodHandler) Log(c *gin.Context) {
	var req struct {
		Mood               string   `json:"mood"`
		Intensity          int      `json:"intensity"`
		Emotions           []string `json:"emotions"`
		Triggers           []string `json:"triggers"`
		Activities         []string `json:"activities"`
		Location           string   `json:"location"`
		SocialContext      string   `json:"social_context"`
		Notes              string   `json:"notes"`
		PhysicalSensations []string `json:"physical_sensations"`
		CopingStrategies   []string `json:"coping_strategies"`
		IsHelpful          *bool    `json:"is_helpful"`
	}
	if !bindJSON(c, &req) {
		return
	}
	e, err := mh.moodService.Log(dbcFrom(c), services.MoodInput{
		Mood:               req.Mood,
		Intensity:          req.Intensity,
		Emotions:           req.Emotions,
		Triggers:           req.Triggers,
		Activities:         req.Activities,
		Location:           req.Location,
		SocialContext:      req.SocialContext,
		Notes:              req.Notes,
		PhysicalSensations: req.PhysicalSensations,
		CopingStrategies:   req.CopingStrategies,
		IsHelpful:          req.IsHelpful,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, e)
}

// GET /moods?mood=...&from=...&to=...
func (mh *MoodHandler) ListMine(c *gin.Context) {
	filter, ok := moodFilterFrom(c)
	if !ok {
		return
	}
	out, err := mh.moodService.ListMine(dbcFrom(c), filter, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /moods/history?days=30
func (mh *MoodHandler) History(c *gin.Context) {
	days, ok := queryInt(c, "days")
	if !ok {
		return
	}
	out, err := mh.moodService.History(dbcFrom(c), days)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /moods/trends?days=7
func (mh *MoodHandler) Trends(c *gin.Context) {
	days, ok := queryInt(c, "days")
	if !ok {
		return
	}
	out, err := mh.moodService.Trends(dbcFrom(c), days)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// GET /moods/reports?from=...&to=...
func (mh *MoodHandler) Reports(c *gin.Context) {
	from, ok := queryTime(c, "from")
	if !ok {
		return
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return
	}
	out, err := mh.moodService.Reports(dbcFrom(c), from, to)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /moods/coach/assigned
func (mh *MoodHandler) CoachTracking(c *gin.Context) {
	out, err := mh.moodService.CoachTracking(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// PUT /moods/:id
func (mh *MoodHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Mood             *string   `json:"mood"`
		Intensity        *int      `json:"intensity"`
		Emotions         *[]string `json:"emotions"`
		Triggers         *[]string `json:"triggers"`
		Activities       *[]string `json:"activities"`
		Notes            *string   `json:"notes"`
		CopingStrategies *[]string `json:"coping_strategies"`
		IsHelpful        *bool     `json:"is_helpful"`
	}
	if !bindJSON(c, &req) {
		return
	}
	e, err := mh.moodService.Update(dbcFrom(c), id, services.MoodPatch{
		Mood:             req.Mood,
		Intensity:        req.Intensity,
		Emotions:         req.Emotions,
		Triggers:         req.Triggers,
		Activities:       req.Activities,
		Notes:            req.Notes,
		CopingStrategies: req.CopingStrategies,
		IsHelpful:        req.IsHelpful,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, e)
}

// DELETE /moods/:id
func (mh *MoodHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := mh.moodService.Delete(dbcFrom(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
