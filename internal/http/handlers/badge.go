package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Andrew-Develops/PhysiQuest/internal/http/response"
	"github.com/Andrew-Develops/PhysiQuest/internal/services"
)

type BadgeHandler struct {
	badgeService services.BadgeService
}

func NewBadgeHandler(badgeService services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// GET /api/badge
func (bh *BadgeHandler) ListBadges(c *gin.Context) {
	badges, err := bh.badgeService.GetAllBadges(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, badges)
}

// GET /api/badge/:badgeId
func (bh *BadgeHandler) GetBadge(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("badgeId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_badge_id", err)
		return
	}
	badge, err := bh.badgeService.GetBadge(c.Request.Context(), badgeID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, badge)
}

// POST /api/badge
func (bh *BadgeHandler) CreateBadge(c *gin.Context) {
	var input services.BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	badge, err := bh.badgeService.CreateBadge(c.Request.Context(), input)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/badge/%s", badge.ID), badge)
}

// PUT /api/badge/:badgeId
func (bh *BadgeHandler) UpdateBadge(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("badgeId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_badge_id", err)
		return
	}
	var input services.BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	badge, err := bh.badgeService.UpdateBadge(c.Request.Context(), badgeID, input)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, badge)
}

// DELETE /api/badge/:badgeId
func (bh *BadgeHandler) DeleteBadge(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("badgeId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_badge_id", err)
		return
	}
	if err := bh.badgeService.DeleteBadge(c.Request.Context(), badgeID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/badge/user/:badgeId?username=...
func (bh *BadgeHandler) DeleteUserBadge(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("badgeId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_badge_id", err)
		return
	}
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	if _, err := bh.badgeService.DeleteUserBadge(c.Request.Context(), username, badgeID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}
