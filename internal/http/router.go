package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/Andrew-Develops/PhysiQuest/internal/http/handlers"
	httpMW "github.com/Andrew-Develops/PhysiQuest/internal/http/middleware"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	CORSOrigins []string

	QuestHandler  *httpH.QuestHandler
	UserHandler   *httpH.UserHandler
	BadgeHandler  *httpH.BadgeHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(httpMW.CORS(cfg.CORSOrigins))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Quests
	quest := api.Group("/quest")
	{
		if cfg.QuestHandler != nil {
			quest.GET("", cfg.QuestHandler.ListQuests)
			quest.POST("", cfg.QuestHandler.CreateQuest)
			quest.GET("/alphabetical", cfg.QuestHandler.ListQuestsAlphabetical)
			quest.GET("/reward-points", cfg.QuestHandler.ListQuestsByRewardPoints)
			quest.GET("/reward-tokens", cfg.QuestHandler.ListQuestsByRewardTokens)
			quest.GET("/user", cfg.QuestHandler.ListUserQuests)
			quest.PUT("/complete/:questId", cfg.QuestHandler.CompleteUserQuest)
			quest.DELETE("/delete/:questId", cfg.QuestHandler.DeleteUserQuest)
			quest.GET("/proof-image-url/:questId", cfg.QuestHandler.GetProofImageURL)
			quest.DELETE("/proof-image-url/:questId", cfg.QuestHandler.DeleteProofImageURL)
			quest.GET("/:questId", cfg.QuestHandler.GetQuest)
			quest.PUT("/:questId", cfg.QuestHandler.UpdateQuest)
			quest.DELETE("/:questId", cfg.QuestHandler.DeleteQuest)
		}
		if cfg.UserHandler != nil {
			quest.POST("/assign/:username/:questId", cfg.UserHandler.AssignQuestToUser)
		}
	}

	// Users
	if cfg.UserHandler != nil {
		user := api.Group("/user")
		user.GET("", cfg.UserHandler.ListUsers)
		user.POST("", cfg.UserHandler.CreateUser)
		user.GET("/top", cfg.UserHandler.ListTopUsers)
		user.POST("/create-user-quest", cfg.UserHandler.CreateUserQuest)
		user.GET("/:user", cfg.UserHandler.GetUser)
		user.PUT("/:user", cfg.UserHandler.UpdateUser)
		user.DELETE("/:user", cfg.UserHandler.DeleteUser)
		user.POST("/:user/badges", cfg.UserHandler.AddBadgeToUser)
		user.GET("/:user/badges", cfg.UserHandler.ListUserBadges)
	}

	// Badges
	if cfg.BadgeHandler != nil {
		badge := api.Group("/badge")
		badge.GET("", cfg.BadgeHandler.ListBadges)
		badge.POST("", cfg.BadgeHandler.CreateBadge)
		badge.DELETE("/user/:badgeId", cfg.BadgeHandler.DeleteUserBadge)
		badge.GET("/:badgeId", cfg.BadgeHandler.GetBadge)
		badge.PUT("/:badgeId", cfg.BadgeHandler.UpdateBadge)
		badge.DELETE("/:badgeId", cfg.BadgeHandler.DeleteBadge)
	}

	return r
}
