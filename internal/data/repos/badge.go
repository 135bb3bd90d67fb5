package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

type BadgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, badge *domain.Badge) (*domain.Badge, error)
	GetByID(ctx context.Context, tx *gorm.DB, badgeID uuid.UUID) (*domain.Badge, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Badge, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, badgeIDs []uuid.UUID) ([]*domain.Badge, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Badge, error)
	Update(ctx context.Context, tx *gorm.DB, badge *domain.Badge) error
	Delete(ctx context.Context, tx *gorm.DB, badgeID uuid.UUID) (bool, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (br *badgeRepo) Create(ctx context.Context, tx *gorm.DB, badge *domain.Badge) (*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if err := transaction.WithContext(ctx).Create(badge).Error; err != nil {
		return nil, err
	}
	return badge, nil
}

func (br *badgeRepo) GetByID(ctx context.Context, tx *gorm.DB, badgeID uuid.UUID) (*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var badge domain.Badge
	err := transaction.WithContext(ctx).
		Where("id = ?", badgeID).
		First(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (br *badgeRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var badge domain.Badge
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (br *badgeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, badgeIDs []uuid.UUID) ([]*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*domain.Badge
	if len(badgeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", badgeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *badgeRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*domain.Badge
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *badgeRepo) Update(ctx context.Context, tx *gorm.DB, badge *domain.Badge) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Badge{}).
		Where("id = ?", badge.ID).
		Updates(map[string]any{
			"name":        badge.Name,
			"description": badge.Description,
		}).Error
}

func (br *badgeRepo) Delete(ctx context.Context, tx *gorm.DB, badgeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", badgeID).
		Delete(&domain.Badge{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
