package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Andrew-Develops/PhysiQuest/internal/http/response"
	"github.com/Andrew-Develops/PhysiQuest/internal/services"
)

type QuestHandler struct {
	questService services.QuestService
}

func NewQuestHandler(questService services.QuestService) *QuestHandler {
	return &QuestHandler{questService: questService}
}

// GET /api/quest
func (qh *QuestHandler) ListQuests(c *gin.Context) {
	quests, err := qh.questService.GetAllQuests(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, quests)
}

// GET /api/quest/:questId
func (qh *QuestHandler) GetQuest(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	quest, err := qh.questService.GetQuest(c.Request.Context(), questID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, quest)
}

// POST /api/quest
func (qh *QuestHandler) CreateQuest(c *gin.Context) {
	var input services.QuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quest, err := qh.questService.CreateQuest(c.Request.Context(), input)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/quest/%s", quest.ID), quest)
}

// PUT /api/quest/:questId
func (qh *QuestHandler) UpdateQuest(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	var input services.QuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quest, err := qh.questService.UpdateQuest(c.Request.Context(), questID, input)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, quest)
}

// DELETE /api/quest/:questId
func (qh *QuestHandler) DeleteQuest(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	if err := qh.questService.DeleteQuest(c.Request.Context(), questID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/quest/alphabetical
func (qh *QuestHandler) ListQuestsAlphabetical(c *gin.Context) {
	quests, err := qh.questService.GetQuestsAlphabetical(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, quests)
}

// GET /api/quest/reward-points
func (qh *QuestHandler) ListQuestsByRewardPoints(c *gin.Context) {
	quests, err := qh.questService.GetQuestsByRewardPoints(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, quests)
}

// GET /api/quest/reward-tokens
func (qh *QuestHandler) ListQuestsByRewardTokens(c *gin.Context) {
	quests, err := qh.questService.GetQuestsByRewardTokens(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, quests)
}

// PUT /api/quest/complete/:questId?username=...
// body: { "imageUrl": "..." }
func (qh *QuestHandler) CompleteUserQuest(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userQuest, err := qh.questService.CompleteUserQuest(c.Request.Context(), username, questID, req.ImageURL)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, userQuest)
}

// GET /api/quest/user?username=...
func (qh *QuestHandler) ListUserQuests(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	details, err := qh.questService.GetUserQuests(c.Request.Context(), username)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, details)
}

// DELETE /api/quest/delete/:questId?username=...
func (qh *QuestHandler) DeleteUserQuest(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	if _, err := qh.questService.DeleteUserQuest(c.Request.Context(), username, questID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/quest/proof-image-url/:questId?username=...
func (qh *QuestHandler) GetProofImageURL(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	url, err := qh.questService.GetProofImageURL(c.Request.Context(), username, questID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"imageUrl": url})
}

// DELETE /api/quest/proof-image-url/:questId?username=...
func (qh *QuestHandler) DeleteProofImageURL(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("questId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	if _, err := qh.questService.DeleteProofImageURL(c.Request.Context(), username, questID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func requireUsername(c *gin.Context) (string, bool) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		response.RespondError(c, http.StatusBadRequest, "username_required", fmt.Errorf("username query parameter is required"))
		return "", false
	}
	return username, true
}
