package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserBadge records that a user earned a badge at a point in time. At
// most one row exists per (user, badge) pair; the services check before
// inserting.
type UserBadge struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	BadgeID uuid.UUID `gorm:"type:uuid;primaryKey;column:badge_id" json:"badge_id"`

	AwardDate time.Time `gorm:"not null;default:now();column:award_date" json:"award_date"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Badge *Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (UserBadge) TableName() string { return "user_badge" }
