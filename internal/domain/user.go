package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUserTokens is the starting token balance for a new user.
const DefaultUserTokens = 100

type User struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name   string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Email  string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Points int       `gorm:"not null;default:0" json:"points"`
	Tokens int       `gorm:"not null;default:100" json:"tokens"`

	UserQuests []UserQuest `gorm:"foreignKey:UserID" json:"-"`
	UserBadges []UserBadge `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
