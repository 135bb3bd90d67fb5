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

type UserInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UserService interface {
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	CreateUser(ctx context.Context, input UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	GetTopUsers(ctx context.Context) ([]*domain.User, error)

	AddBadgeToUser(ctx context.Context, userID, badgeID uuid.UUID) (*domain.UserBadge, error)
	GetUserBadgesByName(ctx context.Context, username string) ([]*domain.Badge, error)
	AssignQuestToUser(ctx context.Context, username string, questID uuid.UUID) (*domain.UserQuest, error)
	CreateUserQuest(ctx context.Context, username string, input QuestInput) (*domain.Quest, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	questRepo     repos.QuestRepo
	badgeRepo     repos.BadgeRepo
	userQuestRepo repos.UserQuestRepo
	userBadgeRepo repos.UserBadgeRepo
	leaderboard   *cache.Leaderboard
	topUsersLimit int
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	questRepo repos.QuestRepo,
	badgeRepo repos.BadgeRepo,
	userQuestRepo repos.UserQuestRepo,
	userBadgeRepo repos.UserBadgeRepo,
	leaderboard *cache.Leaderboard,
	topUsersLimit int,
) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		questRepo:     questRepo,
		badgeRepo:     badgeRepo,
		userQuestRepo: userQuestRepo,
		userBadgeRepo: userBadgeRepo,
		leaderboard:   leaderboard,
		topUsersLimit: topUsersLimit,
	}
}

func (us *userService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.UserIDNotFound(userID.String())
	}
	return user, nil
}

func (us *userService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apierr.InvalidArgument("user name cannot be empty")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, apierr.InvalidArgument("user email cannot be empty")
	}

	var out *domain.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := us.userRepo.GetByEmail(ctx, tx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.DuplicateEmail(input.Email)
		}
		existing, err = us.userRepo.GetByName(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.DuplicateName(input.Name)
		}
		out, err = us.userRepo.Create(ctx, tx, &domain.User{
			Name:   input.Name,
			Email:  input.Email,
			Tokens: domain.DefaultUserTokens,
		})
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID uuid.UUID, input UserInput) (*domain.User, error) {
	var out *domain.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserIDNotFound(userID.String())
		}
		existing, err := us.userRepo.GetByEmail(ctx, tx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != userID {
			return apierr.DuplicateEmail(input.Email)
		}
		existing, err = us.userRepo.GetByName(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != userID {
			return apierr.DuplicateName(input.Name)
		}
		user.Name = input.Name
		user.Email = input.Email
		if err := us.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}
		out = user
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserIDNotFound(userID.String())
		}
		deleted, err := us.userRepo.Delete(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return apierr.DeletionFailed("user", userID.String())
		}
		return nil
	})
	if err == nil {
		us.leaderboard.Invalidate(ctx)
	}
	return err
}

// GetTopUsers returns users ordered by points descending, served from
// the leaderboard cache when warm.
func (us *userService) GetTopUsers(ctx context.Context) ([]*domain.User, error) {
	if users, ok := us.leaderboard.Get(ctx); ok {
		return users, nil
	}
	users, err := us.userRepo.ListByPointsDesc(ctx, nil, us.topUsersLimit)
	if err != nil {
		return nil, err
	}
	us.leaderboard.Set(ctx, users)
	return users, nil
}

// AddBadgeToUser grants a badge by explicit request (admin path), as
// opposed to the reward engine's threshold grants.
func (us *userService) AddBadgeToUser(ctx context.Context, userID, badgeID uuid.UUID) (*domain.UserBadge, error) {
	var out *domain.UserBadge
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserIDNotFound(userID.String())
		}
		badge, err := us.badgeRepo.GetByID(ctx, tx, badgeID)
		if err != nil {
			return err
		}
		if badge == nil {
			return apierr.BadgeNotFound(badgeID.String())
		}
		existing, err := us.userBadgeRepo.Get(ctx, tx, userID, badgeID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.DuplicateUserBadge(user.Name, badgeID.String())
		}
		out, err = us.userBadgeRepo.Create(ctx, tx, &domain.UserBadge{
			UserID:  userID,
			BadgeID: badgeID,
		})
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) GetUserBadgesByName(ctx context.Context, username string) ([]*domain.Badge, error) {
	user, err := us.userRepo.GetByName(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.UserNotFound(username)
	}
	userBadges, err := us.userBadgeRepo.ListByUser(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	badgeIDs := make([]uuid.UUID, 0, len(userBadges))
	for _, ub := range userBadges {
		badgeIDs = append(badgeIDs, ub.BadgeID)
	}
	return us.badgeRepo.GetByIDs(ctx, nil, badgeIDs)
}

// AssignQuestToUser creates a fresh Assigned attempt. Re-assigning a
// quest the user already holds returns a duplicate error instead of
// surfacing the composite-key violation from the store.
func (us *userService) AssignQuestToUser(ctx context.Context, username string, questID uuid.UUID) (*domain.UserQuest, error) {
	var out *domain.UserQuest
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByName(ctx, tx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserNotFound(username)
		}
		quest, err := us.questRepo.GetByID(ctx, tx, questID)
		if err != nil {
			return err
		}
		if quest == nil {
			return apierr.QuestNotFound(questID.String())
		}
		existing, err := us.userQuestRepo.Get(ctx, tx, user.ID, questID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.DuplicateUserQuest(username, questID.String())
		}
		out, err = us.userQuestRepo.Create(ctx, tx, &domain.UserQuest{
			UserID:  user.ID,
			QuestID: questID,
			Status:  domain.UserQuestStatusAssigned,
			Quest:   quest,
		})
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUserQuest lets a user spend tokens to publish their own quest.
// Rewards above the caps are clamped down silently; the creation fee is
// flat and independent of the clamped values.
func (us *userService) CreateUserQuest(ctx context.Context, username string, input QuestInput) (*domain.Quest, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.InvalidArgument("quest title cannot be empty")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apierr.InvalidArgument("quest description cannot be empty")
	}

	var out *domain.Quest
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByName(ctx, tx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserNotFound(username)
		}
		if user.Tokens < domain.QuestCreationFee {
			return apierr.InsufficientTokens(user.Tokens, domain.QuestCreationFee)
		}
		existing, err := us.questRepo.GetByTitle(ctx, tx, input.Title)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.DuplicateQuestConflict(input.Title)
		}

		quest := &domain.Quest{
			Title:        input.Title,
			Description:  input.Description,
			RewardPoints: clampReward(input.RewardPoints, domain.DefaultRewardPoints, domain.MaxUserQuestRewardPoints),
			RewardTokens: clampReward(input.RewardTokens, domain.DefaultRewardTokens, domain.MaxUserQuestRewardTokens),
		}
		if out, err = us.questRepo.Create(ctx, tx, quest); err != nil {
			return err
		}
		if err := us.userRepo.UpdateBalance(ctx, tx, user.ID, user.Points, user.Tokens-domain.QuestCreationFee); err != nil {
			return err
		}
		us.log.Info("User quest created",
			"username", username,
			"quest_title", quest.Title,
			"reward_points", quest.RewardPoints,
			"reward_tokens", quest.RewardTokens,
			"tokens_remaining", user.Tokens-domain.QuestCreationFee,
		)
		return nil
	}); err != nil {
		return nil, err
	}
	us.leaderboard.Invalidate(ctx)
	return out, nil
}

// clampReward lowers values above max to max and fills zero with the
// default; it never raises a caller-supplied value.
func clampReward(value, def, max int) int {
	if value == 0 {
		return def
	}
	if value > max {
		return max
	}
	return value
}
