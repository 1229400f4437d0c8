package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/domain/mission"
	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type MissionHandler struct {
	missionService services.MissionService
}

func NewMissionHandler(missionService services.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

type missionRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Objectives      *[]string `json:"objectives"`
	Difficulty      *string   `json:"difficulty"`
	Category        *string   `json:"category"`
	RewardPoints    *int      `json:"reward_points"`
	RewardBadges    *[]string `json:"reward_badges"`
	TargetAgeGroups *[]string `json:"target_age_groups"`
	Duration        *int      `json:"duration"`
	DurationUnit    *string   `json:"duration_unit"`
	Tags            *[]string `json:"tags"`
	ImageURL        *string   `json:"image_url"`
	IsActive        *bool     `json:"is_active"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// GET /missions?q=...&category=...&difficulty=...&tag=...&active=...
func (mh *MissionHandler) List(c *gin.Context) {
	active, ok := queryBool(c, "active")
	if !ok {
		return
	}
	out, err := mh.missionService.List(dbcFrom(c), repos.MissionFilter{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Tag:        c.Query("tag"),
		Active:     active,
	}, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /missions/search?q=...
func (mh *MissionHandler) Search(c *gin.Context) {
	out, err := mh.missionService.Search(dbcFrom(c), c.Query("q"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// GET /missions/user/active
func (mh *MissionHandler) ListMineActive(c *gin.Context) {
	mh.listMine(c, mission.ProgressActive)
}

// GET /missions/user/completed
func (mh *MissionHandler) ListMineCompleted(c *gin.Context) {
	mh.listMine(c, mission.ProgressCompleted)
}

// GET /missions/user/history
func (mh *MissionHandler) ListMineHistory(c *gin.Context) {
	mh.listMine(c, "")
}

func (mh *MissionHandler) listMine(c *gin.Context, status string) {
	out, err := mh.missionService.ListMine(dbcFrom(c), status, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /missions
func (mh *MissionHandler) Create(c *gin.Context) {
	var req missionRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := mh.missionService.Create(dbcFrom(c), services.MissionInput{
		Title:           deref(req.Title),
		Description:     deref(req.Description),
		Objectives:      deref(req.Objectives),
		Difficulty:      deref(req.Difficulty),
		Category:        deref(req.Category),
		RewardPoints:    deref(req.RewardPoints),
		RewardBadges:    deref(req.RewardBadges),
		TargetAgeGroups: deref(req.TargetAgeGroups),
		Duration:        deref(req.Duration),
		DurationUnit:    deref(req.DurationUnit),
		Tags:            deref(req.Tags),
		ImageURL:        deref(req.ImageURL),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, m)
}

// GET /missions/:id
func (mh *MissionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	m, err := mh.missionService.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, m)
}

// PUT /missions/:id
func (mh *MissionHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req missionRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := mh.missionService.Update(dbcFrom(c), id, services.MissionPatch{
		Title:           req.Title,
		Description:     req.Description,
		Objectives:      req.Objectives,
		Difficulty:      req.Difficulty,
		Category:        req.Category,
		RewardPoints:    req.RewardPoints,
		RewardBadges:    req.RewardBadges,
		TargetAgeGroups: req.TargetAgeGroups,
		Duration:        req.Duration,
		DurationUnit:    req.DurationUnit,
		Tags:            req.Tags,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, m)
}

// DELETE /missions/:id
func (mh *MissionHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := mh.missionService.Delete(dbcFrom(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /missions/:id/start
func (mh *MissionHandler) Start(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	p, err := mh.missionService.Start(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, p)
}

// POST /missions/:id/progress
// body: { "day": 2, "completed": true, "note": "..." }
func (mh *MissionHandler) RecordDay(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Day       int    `json:"day"`
		Completed *bool  `json:"completed"`
		Skipped   *bool  `json:"skipped"`
		Note      string `json:"note"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := mh.missionService.RecordDay(dbcFrom(c), id, services.DayInput{
		Day:       req.Day,
		Completed: req.Completed,
		Skipped:   req.Skipped,
		Note:      req.Note,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /missions/:id/user-progress
func (mh *MissionHandler) UserProgress(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	p, err := mh.missionService.UserProgress(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// GET /missions/:id/leaderboard?limit=10
func (mh *MissionHandler) Leaderboard(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	out, err := mh.missionService.Leaderboard(dbcFrom(c), id, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}
