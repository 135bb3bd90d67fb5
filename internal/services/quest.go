package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/cache"
	"github.com/Andrew-Develops/PhysiQuest/internal/data/repos"
	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/apierr"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

// QuestInput carries caller-supplied quest fields for create/update.
// Zero reward values fall back to the store defaults.
type QuestInput struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	RewardPoints int    `json:"reward_points"`
	RewardTokens int    `json:"reward_tokens"`
}

// UserQuestDetail is the per-user quest listing row: the quest fields a
// user cares about plus their own status on it.
type UserQuestDetail struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	RewardPoints int    `json:"reward_points"`
	RewardTokens int    `json:"reward_tokens"`
	Status       string `json:"status"`
}

type QuestService interface {
	GetAllQuests(ctx context.Context) ([]*domain.Quest, error)
	GetQuest(ctx context.Context, questID uuid.UUID) (*domain.Quest, error)
	CreateQuest(ctx context.Context, input QuestInput) (*domain.Quest, error)
	UpdateQuest(ctx context.Context, questID uuid.UUID, input QuestInput) (*domain.Quest, error)
	DeleteQuest(ctx context.Context, questID uuid.UUID) error
	GetQuestsAlphabetical(ctx context.Context) ([]*domain.Quest, error)
	GetQuestsByRewardPoints(ctx context.Context) ([]*domain.Quest, error)
	GetQuestsByRewardTokens(ctx context.Context) ([]*domain.Quest, error)

	CompleteUserQuest(ctx context.Context, username string, questID uuid.UUID, proofImage string) (*domain.UserQuest, error)
	GetUserQuests(ctx context.Context, username string) ([]UserQuestDetail, error)
	DeleteUserQuest(ctx context.Context, username string, questID uuid.UUID) (*domain.UserQuest, error)
	GetProofImageURL(ctx context.Context, username string, questID uuid.UUID) (string, error)
	DeleteProofImageURL(ctx context.Context, username string, questID uuid.UUID) (*domain.UserQuest, error)
}

type questService struct {
	db            *gorm.DB
	log           *logger.Logger
	questRepo     repos.QuestRepo
	userRepo      repos.UserRepo
	userQuestRepo repos.UserQuestRepo
	rewards       *rewardEngine
	leaderboard   *cache.Leaderboard
}

func NewQuestService(
	db *gorm.DB,
	log *logger.Logger,
	questRepo repos.QuestRepo,
	userRepo repos.UserRepo,
	userQuestRepo repos.UserQuestRepo,
	badgeRepo repos.BadgeRepo,
	userBadgeRepo repos.UserBadgeRepo,
	leaderboard *cache.Leaderboard,
) QuestService {
	return &questService{
		db:            db,
		log:           log.With("service", "QuestService"),
		questRepo:     questRepo,
		userRepo:      userRepo,
		userQuestRepo: userQuestRepo,
		rewards:       newRewardEngine(log, badgeRepo, userBadgeRepo),
		leaderboard:   leaderboard,
	}
}

func (qs *questService) GetAllQuests(ctx context.Context) ([]*domain.Quest, error) {
	return qs.questRepo.List(ctx, nil)
}

func (qs *questService) GetQuest(ctx context.Context, questID uuid.UUID) (*domain.Quest, error) {
	quest, err := qs.questRepo.GetByID(ctx, nil, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, apierr.QuestNotFound(questID.String())
	}
	return quest, nil
}

func (qs *questService) CreateQuest(ctx context.Context, input QuestInput) (*domain.Quest, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.InvalidArgument("quest title cannot be empty")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apierr.InvalidArgument("quest description cannot be empty")
	}

	var out *domain.Quest
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := qs.questRepo.GetByTitle(ctx, tx, input.Title)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.DuplicateQuest(input.Title)
		}
		quest := &domain.Quest{
			Title:        input.Title,
			Description:  input.Description,
			RewardPoints: input.RewardPoints,
			RewardTokens: input.RewardTokens,
		}
		if quest.RewardPoints == 0 {
			quest.RewardPoints = domain.DefaultRewardPoints
		}
		if quest.RewardTokens == 0 {
			quest.RewardTokens = domain.DefaultRewardTokens
		}
		out, err = qs.questRepo.Create(ctx, tx, quest)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (qs *questService) UpdateQuest(ctx context.Context, questID uuid.UUID, input QuestInput) (*domain.Quest, error) {
	var out *domain.Quest
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quest, err := qs.questRepo.GetByID(ctx, tx, questID)
		if err != nil {
			return err
		}
		if quest == nil {
			return apierr.QuestNotFound(questID.String())
		}
		existing, err := qs.questRepo.GetByTitle(ctx, tx, input.Title)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != questID {
			return apierr.DuplicateQuest(input.Title)
		}
		quest.Title = input.Title
		quest.Description = input.Description
		if input.RewardPoints != 0 {
			quest.RewardPoints = input.RewardPoints
		}
		if input.RewardTokens != 0 {
			quest.RewardTokens = input.RewardTokens
		}
		if err := qs.questRepo.Update(ctx, tx, quest); err != nil {
			return err
		}
		out = quest
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (qs *questService) DeleteQuest(ctx context.Context, questID uuid.UUID) error {
	return qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quest, err := qs.questRepo.GetByID(ctx, tx, questID)
		if err != nil {
			return err
		}
		if quest == nil {
			return apierr.QuestNotFound(questID.String())
		}
		deleted, err := qs.questRepo.Delete(ctx, tx, questID)
		if err != nil {
			return err
		}
		if !deleted {
			return apierr.DeletionFailed("quest", questID.String())
		}
		return nil
	})
}

func (qs *questService) GetQuestsAlphabetical(ctx context.Context) ([]*domain.Quest, error) {
	return qs.questRepo.ListAlphabetical(ctx, nil)
}

func (qs *questService) GetQuestsByRewardPoints(ctx context.Context) ([]*domain.Quest, error) {
	return qs.questRepo.ListByRewardPointsDesc(ctx, nil)
}

func (qs *questService) GetQuestsByRewardTokens(ctx context.Context) ([]*domain.Quest, error) {
	return qs.questRepo.ListByRewardTokensDesc(ctx, nil)
}

// CompleteUserQuest flips a user quest to Completed, credits the
// quest's rewards, and awards any badges the new totals qualify for.
// Re-completing an already Completed quest is a no-op that returns the
// record unchanged. Everything runs in one transaction; the status
// check happens inside it so two racing completions cannot both
// credit.
func (qs *questService) CompleteUserQuest(ctx context.Context, username string, questID uuid.UUID, proofImage string) (*domain.UserQuest, error) {
	var out *domain.UserQuest
	var credited bool
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := qs.userRepo.GetByNameWithBadges(ctx, tx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserNotFound(username)
		}

		userQuest, err := qs.userQuestRepo.GetWithQuest(ctx, tx, user.ID, questID)
		if err != nil {
			return err
		}
		if userQuest == nil {
			return apierr.UserQuestNotFound(username, questID.String())
		}
		if userQuest.Status == domain.UserQuestStatusCompleted {
			out = userQuest
			return nil
		}

		// Count is taken before the status flip and interpreted as
		// including the quest being completed.
		completedBefore, err := qs.userQuestRepo.CountCompleted(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		completedCount := int(completedBefore) + 1

		newPoints := user.Points + userQuest.Quest.RewardPoints
		newTokens := user.Tokens + userQuest.Quest.RewardTokens
		if err := qs.userRepo.UpdateBalance(ctx, tx, user.ID, newPoints, newTokens); err != nil {
			return err
		}
		if err := qs.userQuestRepo.UpdateCompletion(ctx, tx, user.ID, questID, proofImage); err != nil {
			return err
		}

		held := make(map[uuid.UUID]struct{}, len(user.UserBadges))
		for _, ub := range user.UserBadges {
			held[ub.BadgeID] = struct{}{}
		}
		granted, err := qs.rewards.grant(ctx, tx, user.ID, held, badgesToAward(completedCount, newPoints))
		if err != nil {
			return err
		}

		qs.log.Info("User quest completed",
			"username", username,
			"quest_id", questID.String(),
			"completed_count", completedCount,
			"points", newPoints,
			"tokens", newTokens,
			"badges_granted", len(granted),
		)

		userQuest.Status = domain.UserQuestStatusCompleted
		userQuest.ProofImage = proofImage
		out = userQuest
		credited = true
		return nil
	}); err != nil {
		return nil, err
	}
	if credited {
		qs.leaderboard.Invalidate(ctx)
	}
	return out, nil
}

func (qs *questService) GetUserQuests(ctx context.Context, username string) ([]UserQuestDetail, error) {
	user, err := qs.userRepo.GetByName(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.UserNotFound(username)
	}
	userQuests, err := qs.userQuestRepo.ListByUser(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	details := make([]UserQuestDetail, 0, len(userQuests))
	for _, uq := range userQuests {
		if uq.Quest == nil {
			continue
		}
		details = append(details, UserQuestDetail{
			Title:        uq.Quest.Title,
			Description:  uq.Quest.Description,
			RewardPoints: uq.Quest.RewardPoints,
			RewardTokens: uq.Quest.RewardTokens,
			Status:       uq.Status,
		})
	}
	return details, nil
}

// DeleteUserQuest removes a user's quest attempt. A Completed attempt
// has exactly the credited points and tokens reversed first; badges
// earned along the way are never revoked.
func (qs *questService) DeleteUserQuest(ctx context.Context, username string, questID uuid.UUID) (*domain.UserQuest, error) {
	var out *domain.UserQuest
	var reversed bool
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := qs.userRepo.GetByName(ctx, tx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserNotFound(username)
		}
		userQuest, err := qs.userQuestRepo.GetWithQuest(ctx, tx, user.ID, questID)
		if err != nil {
			return err
		}
		if userQuest == nil {
			return apierr.UserQuestNotFound(username, questID.String())
		}
		if userQuest.Status == domain.UserQuestStatusCompleted {
			newPoints := user.Points - userQuest.Quest.RewardPoints
			newTokens := user.Tokens - userQuest.Quest.RewardTokens
			if err := qs.userRepo.UpdateBalance(ctx, tx, user.ID, newPoints, newTokens); err != nil {
				return err
			}
			reversed = true
		}
		deleted, err := qs.userQuestRepo.Delete(ctx, tx, user.ID, questID)
		if err != nil {
			return err
		}
		if !deleted {
			return apierr.DeletionFailed("user quest", questID.String())
		}
		out = userQuest
		return nil
	}); err != nil {
		return nil, err
	}
	if reversed {
		qs.leaderboard.Invalidate(ctx)
	}
	return out, nil
}

func (qs *questService) GetProofImageURL(ctx context.Context, username string, questID uuid.UUID) (string, error) {
	user, err := qs.userRepo.GetByName(ctx, nil, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apierr.UserNotFound(username)
	}
	userQuest, err := qs.userQuestRepo.Get(ctx, nil, user.ID, questID)
	if err != nil {
		return "", err
	}
	if userQuest == nil || userQuest.Status != domain.UserQuestStatusCompleted {
		return "", apierr.UserQuestNotFound(username, questID.String())
	}
	return userQuest.ProofImage, nil
}

func (qs *questService) DeleteProofImageURL(ctx context.Context, username string, questID uuid.UUID) (*domain.UserQuest, error) {
	var out *domain.UserQuest
	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := qs.userRepo.GetByName(ctx, tx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserNotFound(username)
		}
		userQuest, err := qs.userQuestRepo.Get(ctx, tx, user.ID, questID)
		if err != nil {
			return err
		}
		if userQuest == nil || userQuest.Status != domain.UserQuestStatusCompleted {
			return apierr.UserQuestNotFound(username, questID.String())
		}
		if err := qs.userQuestRepo.ClearProofImage(ctx, tx, user.ID, questID); err != nil {
			return err
		}
		userQuest.ProofImage = ""
		out = userQuest
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
