package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Andrew-Develops/PhysiQuest/internal/cache"
	"github.com/Andrew-Develops/PhysiQuest/internal/data/repos"
	"github.com/Andrew-Develops/PhysiQuest/internal/db"
	apphttp "github.com/Andrew-Develops/PhysiQuest/internal/http"
	httpH "github.com/Andrew-Develops/PhysiQuest/internal/http/handlers"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/envutil"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
	"github.com/Andrew-Develops/PhysiQuest/internal/services"
)

func main() {
	// Logger
	log, err := logger.New(envutil.Str("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	port := envutil.Str("PORT", "8080")
	topUsersLimit := envutil.Int("TOP_USERS_LIMIT", 10)
	corsOrigins := strings.Split(envutil.Str("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	if err := postgresService.SeedBadges(); err != nil {
		log.Fatal("Badge seeding failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis leaderboard cache (optional; nil disables caching)
	leaderboard, err := cache.NewLeaderboard(log)
	if err != nil {
		log.Warn("Leaderboard cache unavailable, continuing without it", "error", err)
		leaderboard = nil
	}
	defer leaderboard.Close()

	// Repos
	userRepo := repos.NewUserRepo(thePG, log)
	questRepo := repos.NewQuestRepo(thePG, log)
	badgeRepo := repos.NewBadgeRepo(thePG, log)
	userQuestRepo := repos.NewUserQuestRepo(thePG, log)
	userBadgeRepo := repos.NewUserBadgeRepo(thePG, log)

	// Services
	questService := services.NewQuestService(thePG, log, questRepo, userRepo, userQuestRepo, badgeRepo, userBadgeRepo, leaderboard)
	userService := services.NewUserService(thePG, log, userRepo, questRepo, badgeRepo, userQuestRepo, userBadgeRepo, leaderboard, topUsersLimit)
	badgeService := services.NewBadgeService(thePG, log, badgeRepo, userRepo, userBadgeRepo)

	// Handlers
	questHandler := httpH.NewQuestHandler(questService)
	userHandler := httpH.NewUserHandler(userService)
	badgeHandler := httpH.NewBadgeHandler(badgeService)
	healthHandler := httpH.NewHealthHandler()

	// HTTP server
	srv := apphttp.NewServer(apphttp.RouterConfig{
		Log:           log,
		CORSOrigins:   corsOrigins,
		QuestHandler:  questHandler,
		UserHandler:   userHandler,
		BadgeHandler:  badgeHandler,
		HealthHandler: healthHandler,
	})

	log.Info("Starting HTTP server", "port", port)
	if err := srv.Run(":" + port); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
