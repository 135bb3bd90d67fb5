package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/envutil"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := envutil.Str("POSTGRES_HOST", "localhost")
	postgresPort := envutil.Str("POSTGRES_PORT", "5432")
	postgresUser := envutil.Str("POSTGRES_USER", "postgres")
	postgresPassword := envutil.Str("POSTGRES_PASSWORD", "")
	postgresName := envutil.Str("POSTGRES_NAME", "physiquest")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&domain.User{},
		&domain.Quest{},
		&domain.Badge{},
		&domain.UserQuest{},
		&domain.UserBadge{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_user_quest_user_id", `
			ALTER TABLE "user_quest"
			ADD CONSTRAINT "fk_user_quest_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "user"("id")
			ON DELETE CASCADE`},
		{"fk_user_quest_quest_id", `
			ALTER TABLE "user_quest"
			ADD CONSTRAINT "fk_user_quest_quest_id"
			FOREIGN KEY ("quest_id")
			REFERENCES "quest"("id")
			ON DELETE CASCADE`},
		{"fk_user_badge_user_id", `
			ALTER TABLE "user_badge"
			ADD CONSTRAINT "fk_user_badge_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "user"("id")
			ON DELETE CASCADE`},
		{"fk_user_badge_badge_id", `
			ALTER TABLE "user_badge"
			ADD CONSTRAINT "fk_user_badge_badge_id"
			FOREIGN KEY ("badge_id")
			REFERENCES "badge"("id")
			ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", c.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

// SeedBadges inserts the badges the reward engine awards, keyed by
// name. Existing rows are left untouched.
func (s *PostgresService) SeedBadges() error {
	s.log.Info("Seeding reward badges...")
	for _, sb := range domain.SeedBadges {
		badge := domain.Badge{Name: sb.Name, Description: sb.Description}
		if err := s.db.
			Where(domain.Badge{Name: sb.Name}).
			FirstOrCreate(&badge).Error; err != nil {
			s.log.Error("Failed to seed badge", "name", sb.Name, "error", err)
			return fmt.Errorf("failed to seed badge %q: %w", sb.Name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
