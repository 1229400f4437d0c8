package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type JournalHandler struct {
	journalService services.JournalService
}

func NewJournalHandler(journalService services.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// GET /journals?mood=...&tag=...
func (jh *JournalHandler) ListMine(c *gin.Context) {
	out, err := jh.journalService.ListMine(dbcFrom(c), repos.JournalFilter{
		Mood: c.Query("mood"),
		Tag:  c.Query("tag"),
	}, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /journals/search?q=...
func (jh *JournalHandler) Search(c *gin.Context) {
	out, err := jh.journalService.Search(dbcFrom(c), c.Query("q"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// GET /journals/audit
func (jh *JournalHandler) Audit(c *gin.Context) {
	out, err := jh.journalService.Audit(dbcFrom(c), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /journals
func (jh *JournalHandler) Create(c *gin.Context) {
	var req struct {
		Title            string   `json:"title"`
		Content          string   `json:"content"`
		Mood             string   `json:"mood"`
		EmotionTags      []string `json:"emotion_tags"`
		ReflectionPrompt string   `json:"reflection_prompt"`
		GratitudeItems   []string `json:"gratitude_items"`
		Tags             []string `json:"tags"`
		IsPrivate        bool     `json:"is_private"`
	}
	if !bindJSON(c, &req) {
		return
	}
	j, err := jh.journalService.Create(dbcFrom(c), services.JournalInput{
		Title:            req.Title,
		Content:          req.Content,
		Mood:             req.Mood,
		EmotionTags:      req.EmotionTags,
		ReflectionPrompt: req.ReflectionPrompt,
		GratitudeItems:   req.GratitudeItems,
		Tags:             req.Tags,
		IsPrivate:        req.IsPrivate,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, j)
}

// GET /journals/:id
func (jh *JournalHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	j, err := jh.journalService.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, j)
}

// PUT /journals/:id
func (jh *JournalHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title            *string   `json:"title"`
		Content          *string   `json:"content"`
		Mood             *string   `json:"mood"`
		EmotionTags      *[]string `json:"emotion_tags"`
		ReflectionPrompt *string   `json:"reflection_prompt"`
		GratitudeItems   *[]string `json:"gratitude_items"`
		Tags             *[]string `json:"tags"`
		IsPrivate        *bool     `json:"is_private"`
	}
	if !bindJSON(c, &req) {
		return
	}
	j, err := jh.journalService.Update(dbcFrom(c), id, services.JournalPatch{
		Title:            req.Title,
		Content:          req.Content,
		Mood:             req.Mood,
		EmotionTags:      req.EmotionTags,
		ReflectionPrompt: req.ReflectionPrompt,
		GratitudeItems:   req.GratitudeItems,
		Tags:             req.Tags,
		IsPrivate:        req.IsPrivate,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, j)
}

// DELETE /journals/:id
func (jh *JournalHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := jh.journalService.Delete(dbcFrom(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /journals/:id/feedback
// body: { "feedback": "..." }
func (jh *JournalHandler) AddFeedback(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Feedback string `json:"feedback"`
	}
	if !bindJSON(c, &req) {
		return
	}
	j, err := jh.journalService.AddFeedback(dbcFrom(c), id, req.Feedback)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, j)
}
