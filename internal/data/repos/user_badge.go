package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

type UserBadgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, userBadge *domain.UserBadge) (*domain.UserBadge, error)
	Get(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (*domain.UserBadge, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserBadge, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (bool, error)
}

type userBadgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBadgeRepo(db *gorm.DB, baseLog *logger.Logger) UserBadgeRepo {
	return &userBadgeRepo{db: db, log: baseLog.With("repo", "UserBadgeRepo")}
}

func (ubr *userBadgeRepo) Create(ctx context.Context, tx *gorm.DB, userBadge *domain.UserBadge) (*domain.UserBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	if err := transaction.WithContext(ctx).Create(userBadge).Error; err != nil {
		return nil, err
	}
	return userBadge, nil
}

func (ubr *userBadgeRepo) Get(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (*domain.UserBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	var userBadge domain.UserBadge
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		First(&userBadge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &userBadge, nil
}

func (ubr *userBadgeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	var results []*domain.UserBadge
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ubr *userBadgeRepo) Delete(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	res := transaction.WithContext(ctx).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Delete(&domain.UserBadge{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
