package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/data/repos"
	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

// badgesToAward decides which badges a completion event qualifies for.
//
// Count rules fire at exactly 1, 5 and 10 completed quests; nothing is
// awarded past the tenth. Points tiers are mutually exclusive: only the
// single highest threshold met fires per evaluation, so a user jumping
// from 400 to 600 points earns Point Collector only. Count and points
// rules are independent and can both fire on the same event.
func badgesToAward(completedCount int, totalPoints int) []domain.BadgeKey {
	var keys []domain.BadgeKey

	switch completedCount {
	case 1:
		keys = append(keys, domain.BadgeFirstQuest)
	case 5:
		keys = append(keys, domain.BadgeFiveQuests)
	case 10:
		keys = append(keys, domain.BadgeTenQuests)
	}

	switch {
	case totalPoints >= 15000:
		keys = append(keys, domain.BadgePoints15000)
	case totalPoints >= 5000:
		keys = append(keys, domain.BadgePoints5000)
	case totalPoints >= 1000:
		keys = append(keys, domain.BadgePoints1000)
	case totalPoints >= 500:
		keys = append(keys, domain.BadgePoints500)
	}

	return keys
}

// rewardEngine turns badge decisions into user_badge rows. It runs
// inside the caller's transaction.
type rewardEngine struct {
	log           *logger.Logger
	badgeRepo     repos.BadgeRepo
	userBadgeRepo repos.UserBadgeRepo
}

func newRewardEngine(log *logger.Logger, badgeRepo repos.BadgeRepo, userBadgeRepo repos.UserBadgeRepo) *rewardEngine {
	return &rewardEngine{
		log:           log.With("service", "RewardEngine"),
		badgeRepo:     badgeRepo,
		userBadgeRepo: userBadgeRepo,
	}
}

// grant awards every qualifying badge the user does not already hold.
// Held is the set of badge ids the user owned before this event. A key
// whose badge row is missing from the badge table is skipped silently.
func (re *rewardEngine) grant(ctx context.Context, tx *gorm.DB, userID uuid.UUID, held map[uuid.UUID]struct{}, keys []domain.BadgeKey) ([]*domain.UserBadge, error) {
	var granted []*domain.UserBadge
	for _, key := range keys {
		name := domain.BadgeNameForKey(key)
		if name == "" {
			continue
		}
		badge, err := re.badgeRepo.GetByName(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if badge == nil {
			re.log.Warn("Badge missing from badge table, skipping grant", "badge_key", string(key), "badge_name", name)
			continue
		}
		if _, ok := held[badge.ID]; ok {
			continue
		}
		userBadge := &domain.UserBadge{
			UserID:    userID,
			BadgeID:   badge.ID,
			AwardDate: time.Now().UTC(),
		}
		if _, err := re.userBadgeRepo.Create(ctx, tx, userBadge); err != nil {
			return nil, err
		}
		held[badge.ID] = struct{}{}
		granted = append(granted, userBadge)
	}
	return granted, nil
}
