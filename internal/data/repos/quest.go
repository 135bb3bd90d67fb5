package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

type QuestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quest *domain.Quest) (*domain.Quest, error)
	GetByID(ctx context.Context, tx *gorm.DB, questID uuid.UUID) (*domain.Quest, error)
	GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*domain.Quest, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error)
	ListAlphabetical(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error)
	ListByRewardPointsDesc(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error)
	ListByRewardTokensDesc(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error)
	Update(ctx context.Context, tx *gorm.DB, quest *domain.Quest) error
	Delete(ctx context.Context, tx *gorm.DB, questID uuid.UUID) (bool, error)
}

type questRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestRepo(db *gorm.DB, baseLog *logger.Logger) QuestRepo {
	return &questRepo{db: db, log: baseLog.With("repo", "QuestRepo")}
}

func (qr *questRepo) Create(ctx context.Context, tx *gorm.DB, quest *domain.Quest) (*domain.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if err := transaction.WithContext(ctx).Create(quest).Error; err != nil {
		return nil, err
	}
	return quest, nil
}

func (qr *questRepo) GetByID(ctx context.Context, tx *gorm.DB, questID uuid.UUID) (*domain.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var quest domain.Quest
	err := transaction.WithContext(ctx).
		Where("id = ?", questID).
		First(&quest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (qr *questRepo) GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*domain.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var quest domain.Quest
	err := transaction.WithContext(ctx).
		Where("title = ?", title).
		First(&quest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (qr *questRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*domain.Quest
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questRepo) ListAlphabetical(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*domain.Quest
	if err := transaction.WithContext(ctx).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questRepo) ListByRewardPointsDesc(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*domain.Quest
	if err := transaction.WithContext(ctx).
		Order("reward_points DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questRepo) ListByRewardTokensDesc(ctx context.Context, tx *gorm.DB) ([]*domain.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*domain.Quest
	if err := transaction.WithContext(ctx).
		Order("reward_tokens DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questRepo) Update(ctx context.Context, tx *gorm.DB, quest *domain.Quest) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Quest{}).
		Where("id = ?", quest.ID).
		Updates(map[string]any{
			"title":         quest.Title,
			"description":   quest.Description,
			"reward_points": quest.RewardPoints,
			"reward_tokens": quest.RewardTokens,
		}).Error
}

func (qr *questRepo) Delete(ctx context.Context, tx *gorm.DB, questID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", questID).
		Delete(&domain.Quest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
