package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRewardPoints and DefaultRewardTokens apply when a quest is
	// created without explicit reward values.
	DefaultRewardPoints = 20
	DefaultRewardTokens = 15

	// MaxUserQuestRewardPoints and MaxUserQuestRewardTokens cap the
	// rewards of user-created quests; values above are clamped down.
	MaxUserQuestRewardPoints = 100
	MaxUserQuestRewardTokens = 25

	// QuestCreationFee is the flat token cost of creating a quest,
	// independent of the quest's own reward values.
	QuestCreationFee = 20
)

type Quest struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string    `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description  string    `gorm:"not null;column:description" json:"description"`
	RewardPoints int       `gorm:"not null;default:20" json:"reward_points"`
	RewardTokens int       `gorm:"not null;default:15" json:"reward_tokens"`

	UserQuests []UserQuest `gorm:"foreignKey:QuestID" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Quest) TableName() string { return "quest" }
