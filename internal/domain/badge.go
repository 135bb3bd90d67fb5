package domain

import (
	"time"

	"github.com/google/uuid"
)

// BadgeKey is a semantic identifier for a seed badge. Reward rules are
// expressed in keys and resolved to badge rows by name, so the engine
// never depends on how the badge table happens to be numbered.
type BadgeKey string

const (
	BadgeFirstQuest BadgeKey = "first_quest"
	BadgeFiveQuests BadgeKey = "five_quests"
	BadgeTenQuests  BadgeKey = "ten_quests"

	BadgePoints500   BadgeKey = "points_500"
	BadgePoints1000  BadgeKey = "points_1000"
	BadgePoints5000  BadgeKey = "points_5000"
	BadgePoints15000 BadgeKey = "points_15000"
)

// SeedBadge describes one badge created at migration time.
type SeedBadge struct {
	Key         BadgeKey
	Name        string
	Description string
}

// SeedBadges lists every badge the reward engine can award. There is no
// fourth completion-count tier past ten quests.
var SeedBadges = []SeedBadge{
	{Key: BadgeFirstQuest, Name: "First Quest", Description: "Complete your first quest."},
	{Key: BadgeFiveQuests, Name: "Five Quests", Description: "Complete five quests."},
	{Key: BadgeTenQuests, Name: "Ten Quests", Description: "Complete ten quests."},
	{Key: BadgePoints500, Name: "Point Collector", Description: "Reach 500 points."},
	{Key: BadgePoints1000, Name: "Point Expert", Description: "Reach 1000 points."},
	{Key: BadgePoints5000, Name: "Point Master", Description: "Reach 5000 points."},
	{Key: BadgePoints15000, Name: "Point Legend", Description: "Reach 15000 points."},
}

// BadgeNameForKey resolves a semantic key to the seeded badge name.
// Returns "" for unknown keys.
func BadgeNameForKey(key BadgeKey) string {
	for _, sb := range SeedBadges {
		if sb.Key == key {
			return sb.Name
		}
	}
	return ""
}

type Badge struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`

	UserBadges []UserBadge `gorm:"foreignKey:BadgeID" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Badge) TableName() string { return "badge" }
