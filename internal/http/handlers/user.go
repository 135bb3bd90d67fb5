package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Andrew-Develops/PhysiQuest/internal/http/response"
	"github.com/Andrew-Develops/PhysiQuest/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/user
func (uh *UserHandler) ListUsers(c *gin.Context) {
	users, err := uh.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// GET /api/user/:user
func (uh *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	user, err := uh.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// POST /api/user
func (uh *UserHandler) CreateUser(c *gin.Context) {
	var input services.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := uh.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/user/%s", user.ID), user)
}

// PUT /api/user/:user
func (uh *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	var input services.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := uh.userService.UpdateUser(c.Request.Context(), userID, input)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// DELETE /api/user/:user
func (uh *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	if err := uh.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/user/top
func (uh *UserHandler) ListTopUsers(c *gin.Context) {
	users, err := uh.userService.GetTopUsers(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// POST /api/user/:user/badges
// body: { "badgeId": "..." }
func (uh *UserHandler) AddBadgeToUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	var req struct {
		BadgeID uuid.UUID `json:"badgeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userBadge, err := uh.userService.AddBadgeToUser(c.Request.Context(), userID, req.BadgeID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/user/%s/badges", userID), userBadge)
}

// GET /api/user/:user/badges
// The path segment is the user's name, not their id.
func (uh *UserHandler) ListUserBadges(c *gin.Context) {
	username := c.Param("user")
	badges, err := uh.userService.GetUserBadgesByName(c.Request.Context(), username)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, badges)
}

// POST /api/quest/assign/:username/:questId
func (uh *UserHandler) AssignQuestToUser(c *gin.Context) {
	username := c.Param("username")
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	userQuest, err := uh.userService.AssignQuestToUser(c.Request.Context(), username, questID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/quest/user?username=%s", username), userQuest)
}

// POST /api/user/create-user-quest?username=...
func (uh *UserHandler) CreateUserQuest(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	var input services.QuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quest, err := uh.userService.CreateUserQuest(c.Request.Context(), username, input)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/quest/%s", quest.ID), quest)
}
