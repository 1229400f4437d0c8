package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/domain/mission"
	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type UserHandler struct {
	userService    services.UserService
	journalService services.JournalService
	moodService    services.MoodService
	missionService services.MissionService
}

func NewUserHandler(
	userService services.UserService,
	journalService services.JournalService,
	moodService services.MoodService,
	missionService services.MissionService,
) *UserHandler {
	return &UserHandler{
		userService:    userService,
		journalService: journalService,
		moodService:    moodService,
		missionService: missionService,
	}
}

// GET /users/profile
func (uh *UserHandler) GetProfile(c *gin.Context) {
	profile, err := uh.userService.Profile(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

// PUT /users/profile
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	var patch services.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	u, err := uh.userService.UpdateProfile(dbcFrom(c), patch)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// DELETE /users/account
func (uh *UserHandler) DeleteAccount(c *gin.Context) {
	if err := uh.userService.DeleteAccount(dbcFrom(c)); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /users/search?q=...&role=...
func (uh *UserHandler) Search(c *gin.Context) {
	out, err := uh.userService.Search(dbcFrom(c), c.Query("q"), c.Query("role"), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users?q=...&role=...&is_active=...
func (uh *UserHandler) List(c *gin.Context) {
	active, ok := queryBool(c, "is_active")
	if !ok {
		return
	}
	out, err := uh.userService.List(dbcFrom(c), repos.UserFilter{
		Query:    c.Query("q"),
		Role:     c.Query("role"),
		IsActive: active,
	}, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/admins
func (uh *UserHandler) ListAdmins(c *gin.Context) {
	out, err := uh.userService.ListAdmins(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// GET /users/youth/list/all
func (uh *UserHandler) ListYouth(c *gin.Context) {
	out, err := uh.userService.ListYouth(dbcFrom(c), pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/coaches/list/all
func (uh *UserHandler) ListCoaches(c *gin.Context) {
	out, err := uh.userService.ListCoaches(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

type youthLinkRequest struct {
	YouthID uuid.UUID `json:"youth_id"`
}

// PUT /users/coaches/:coachId/add-youth
// body: { "youth_id": "..." }
func (uh *UserHandler) AddYouthToCoach(c *gin.Context) {
	coachID, ok := pathUUID(c, "coachId")
	if !ok {
		return
	}
	var req youthLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := uh.userService.AddYouthToCoach(dbcFrom(c), coachID, req.YouthID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /users/coaches/:coachId/remove-youth
func (uh *UserHandler) RemoveYouthFromCoach(c *gin.Context) {
	coachID, ok := pathUUID(c, "coachId")
	if !ok {
		return
	}
	var req youthLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := uh.userService.RemoveYouthFromCoach(dbcFrom(c), coachID, req.YouthID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/coaches/:coachId/details
func (uh *UserHandler) CoachDetails(c *gin.Context) {
	coachID, ok := pathUUID(c, "coachId")
	if !ok {
		return
	}
	out, err := uh.userService.CoachDetails(dbcFrom(c), coachID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /users/parents/:parentId/add-youth
func (uh *UserHandler) AddYouthToParent(c *gin.Context) {
	parentID, ok := pathUUID(c, "parentId")
	if !ok {
		return
	}
	var req youthLinkRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := uh.userService.AddYouthToParent(dbcFrom(c), parentID, req.YouthID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /users/youth/claim-daily-reward
func (uh *UserHandler) ClaimDailyReward(c *gin.Context) {
	out, err := uh.userService.ClaimDailyReward(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	u, err := uh.userService.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// GET /users/:id/care-team
func (uh *UserHandler) CareTeam(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	out, err := uh.userService.CareTeam(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/:id/youth-profile
func (uh *UserHandler) YouthProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	out, err := uh.userService.YouthDetails(dbcFrom(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/:id/journals
func (uh *UserHandler) Journals(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	out, err := uh.journalService.ListForYouth(dbcFrom(c), id, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/:id/moods?mood=...&from=...&to=...
func (uh *UserHandler) Moods(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	filter, ok := moodFilterFrom(c)
	if !ok {
		return
	}
	out, err := uh.moodService.ListForYouth(dbcFrom(c), id, filter, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /users/:id/missions?status=...
func (uh *UserHandler) Missions(c *gin.Context) {
	uh.youthMissions(c, c.Query("status"))
}

// GET /users/:id/active-missions
func (uh *UserHandler) ActiveMissions(c *gin.Context) {
	uh.youthMissions(c, mission.ProgressActive)
}

func (uh *UserHandler) youthMissions(c *gin.Context, status string) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	out, err := uh.missionService.ListForYouth(dbcFrom(c), id, status, pageFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /users/:id/activate
func (uh *UserHandler) Activate(c *gin.Context) {
	uh.setActive(c, true)
}

// PUT /users/:id/deactivate
func (uh *UserHandler) Deactivate(c *gin.Context) {
	uh.setActive(c, false)
}

func (uh *UserHandler) setActive(c *gin.Context, active bool) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	u, err := uh.userService.SetActive(dbcFrom(c), id, active)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// DELETE /users/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := uh.userService.Delete(dbcFrom(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
