package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/data/repos"
	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/apierr"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

type BadgeInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type BadgeService interface {
	GetAllBadges(ctx context.Context) ([]*domain.Badge, error)
	GetBadge(ctx context.Context, badgeID uuid.UUID) (*domain.Badge, error)
	CreateBadge(ctx context.Context, input BadgeInput) (*domain.Badge, error)
	UpdateBadge(ctx context.Context, badgeID uuid.UUID, input BadgeInput) (*domain.Badge, error)
	DeleteBadge(ctx context.Context, badgeID uuid.UUID) error
	DeleteUserBadge(ctx context.Context, username string, badgeID uuid.UUID) (*domain.UserBadge, error)
}

type badgeService struct {
	db            *gorm.DB
	log           *logger.Logger
	badgeRepo     repos.BadgeRepo
	userRepo      repos.UserRepo
	userBadgeRepo repos.UserBadgeRepo
}

func NewBadgeService(
	db *gorm.DB,
	log *logger.Logger,
	badgeRepo repos.BadgeRepo,
	userRepo repos.UserRepo,
	userBadgeRepo repos.UserBadgeRepo,
) BadgeService {
	return &badgeService{
		db:            db,
		log:           log.With("service", "BadgeService"),
		badgeRepo:     badgeRepo,
		userRepo:      userRepo,
		userBadgeRepo: userBadgeRepo,
	}
}

func (bs *badgeService) GetAllBadges(ctx context.Context) ([]*domain.Badge, error) {
	return bs.badgeRepo.List(ctx, nil)
}

func (bs *badgeService) GetBadge(ctx context.Context, badgeID uuid.UUID) (*domain.Badge, error) {
	badge, err := bs.badgeRepo.GetByID(ctx, nil, badgeID)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, apierr.BadgeNotFound(badgeID.String())
	}
	return badge, nil
}

func (bs *badgeService) CreateBadge(ctx context.Context, input BadgeInput) (*domain.Badge, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apierr.InvalidArgument("badge name cannot be empty")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apierr.InvalidArgument("badge description cannot be empty")
	}

	var out *domain.Badge
	if err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := bs.badgeRepo.GetByName(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.DuplicateBadge(input.Name)
		}
		out, err = bs.badgeRepo.Create(ctx, tx, &domain.Badge{
			Name:        input.Name,
			Description: input.Description,
		})
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (bs *badgeService) UpdateBadge(ctx context.Context, badgeID uuid.UUID, input BadgeInput) (*domain.Badge, error) {
	var out *domain.Badge
	if err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		badge, err := bs.badgeRepo.GetByID(ctx, tx, badgeID)
		if err != nil {
			return err
		}
		if badge == nil {
			return apierr.BadgeNotFound(badgeID.String())
		}
		existing, err := bs.badgeRepo.GetByName(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != badgeID {
			return apierr.DuplicateBadge(input.Name)
		}
		badge.Name = input.Name
		badge.Description = input.Description
		if err := bs.badgeRepo.Update(ctx, tx, badge); err != nil {
			return err
		}
		out = badge
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (bs *badgeService) DeleteBadge(ctx context.Context, badgeID uuid.UUID) error {
	return bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		badge, err := bs.badgeRepo.GetByID(ctx, tx, badgeID)
		if err != nil {
			return err
		}
		if badge == nil {
			return apierr.BadgeNotFound(badgeID.String())
		}
		deleted, err := bs.badgeRepo.Delete(ctx, tx, badgeID)
		if err != nil {
			return err
		}
		if !deleted {
			return apierr.DeletionFailed("badge", badgeID.String())
		}
		return nil
	})
}

func (bs *badgeService) DeleteUserBadge(ctx context.Context, username string, badgeID uuid.UUID) (*domain.UserBadge, error) {
	var out *domain.UserBadge
	if err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := bs.userRepo.GetByName(ctx, tx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.UserNotFound(username)
		}
		userBadge, err := bs.userBadgeRepo.Get(ctx, tx, user.ID, badgeID)
		if err != nil {
			return err
		}
		if userBadge == nil {
			return apierr.UserBadgeNotFound(username, badgeID.String())
		}
		deleted, err := bs.userBadgeRepo.Delete(ctx, tx, user.ID, badgeID)
		if err != nil {
			return err
		}
		if !deleted {
			return apierr.DeletionFailed("user badge", badgeID.String())
		}
		out = userBadge
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
