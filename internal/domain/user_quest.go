package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserQuestStatusAssigned  = "Assigned"
	UserQuestStatusCompleted = "Completed"
)

// UserQuest is one user's attempt at one quest. It is created in the
// Assigned state, flips to Completed at most once, and may be deleted
// at any point (with reward reversal if it was Completed).
type UserQuest struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	QuestID uuid.UUID `gorm:"type:uuid;primaryKey;column:quest_id" json:"quest_id"`

	Status string `gorm:"not null;default:'Assigned';column:status" json:"status"`

	// ProofImage is an opaque proof reference (a stored URL). Only set
	// once the quest is Completed.
	ProofImage string `gorm:"column:proof_image" json:"proof_image,omitempty"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Quest *Quest `gorm:"foreignKey:QuestID" json:"quest,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserQuest) TableName() string { return "user_quest" }
