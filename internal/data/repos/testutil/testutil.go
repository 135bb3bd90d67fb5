// Package testutil provides database helpers for repo and service
// integration tests. Tests using it are skipped unless the
// TEST_POSTGRES_DSN environment variable points at a postgres instance
// the test run may truncate.
package testutil

import (
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

// DB opens the test database named by TEST_POSTGRES_DSN, migrates the
// schema and truncates all tables so each test starts clean. Skips the
// test when the variable is unset.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set, skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("opening test database: %v", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		tb.Fatalf("creating uuid-ossp extension: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Quest{},
		&domain.Badge{},
		&domain.UserQuest{},
		&domain.UserBadge{},
	); err != nil {
		tb.Fatalf("migrating test schema: %v", err)
	}
	if err := db.Exec(`TRUNCATE "user_badge", "user_quest", "badge", "quest", "user" CASCADE`).Error; err != nil {
		tb.Fatalf("truncating test tables: %v", err)
	}

	return db
}

// Log returns a development logger for constructors that require one.
func Log(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("development")
	if err != nil {
		tb.Fatalf("creating test logger: %v", err)
	}
	return log
}

func CreateUser(tb testing.TB, db *gorm.DB, name, email string) *domain.User {
	tb.Helper()
	user := &domain.User{
		Name:   name,
		Email:  email,
		Tokens: domain.DefaultUserTokens,
	}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("creating test user %q: %v", name, err)
	}
	return user
}

func CreateQuest(tb testing.TB, db *gorm.DB, title string, rewardPoints, rewardTokens int) *domain.Quest {
	tb.Helper()
	quest := &domain.Quest{
		Title:        title,
		Description:  fmt.Sprintf("%s description", title),
		RewardPoints: rewardPoints,
		RewardTokens: rewardTokens,
	}
	if err := db.Create(quest).Error; err != nil {
		tb.Fatalf("creating test quest %q: %v", title, err)
	}
	return quest
}

// SeedBadges inserts the full badge catalog the reward engine awards.
func SeedBadges(tb testing.TB, db *gorm.DB) {
	tb.Helper()
	for _, sb := range domain.SeedBadges {
		badge := &domain.Badge{Name: sb.Name, Description: sb.Description}
		if err := db.Create(badge).Error; err != nil {
			tb.Fatalf("seeding badge %q: %v", sb.Name, err)
		}
	}
}

func AssignQuest(tb testing.TB, db *gorm.DB, user *domain.User, quest *domain.Quest) *domain.UserQuest {
	tb.Helper()
	userQuest := &domain.UserQuest{
		UserID:  user.ID,
		QuestID: quest.ID,
		Status:  domain.UserQuestStatusAssigned,
	}
	if err := db.Create(userQuest).Error; err != nil {
		tb.Fatalf("assigning quest %q to user %q: %v", quest.Title, user.Name, err)
	}
	return userQuest
}
