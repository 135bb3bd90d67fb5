package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

type UserQuestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, userQuest *domain.UserQuest) (*domain.UserQuest, error)
	Get(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (*domain.UserQuest, error)
	GetWithQuest(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (*domain.UserQuest, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserQuest, error)
	CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	UpdateCompletion(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID, proofImage string) error
	ClearProofImage(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (bool, error)
}

type userQuestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserQuestRepo(db *gorm.DB, baseLog *logger.Logger) UserQuestRepo {
	return &userQuestRepo{db: db, log: baseLog.With("repo", "UserQuestRepo")}
}

func (uqr *userQuestRepo) Create(ctx context.Context, tx *gorm.DB, userQuest *domain.UserQuest) (*domain.UserQuest, error) {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	if err := transaction.WithContext(ctx).Create(userQuest).Error; err != nil {
		return nil, err
	}
	return userQuest, nil
}

func (uqr *userQuestRepo) Get(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (*domain.UserQuest, error) {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	var userQuest domain.UserQuest
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		First(&userQuest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &userQuest, nil
}

func (uqr *userQuestRepo) GetWithQuest(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (*domain.UserQuest, error) {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	var userQuest domain.UserQuest
	err := transaction.WithContext(ctx).
		Preload("Quest").
		Where("user_id = ? AND quest_id = ?", userID, questID).
		First(&userQuest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &userQuest, nil
}

func (uqr *userQuestRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserQuest, error) {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	var results []*domain.UserQuest
	if err := transaction.WithContext(ctx).
		Preload("Quest").
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uqr *userQuestRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.UserQuest{}).
		Where("user_id = ? AND status = ?", userID, domain.UserQuestStatusCompleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (uqr *userQuestRepo) UpdateCompletion(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID, proofImage string) error {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.UserQuest{}).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		Updates(map[string]any{
			"status":      domain.UserQuestStatusCompleted,
			"proof_image": proofImage,
		}).Error
}

func (uqr *userQuestRepo) ClearProofImage(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.UserQuest{}).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		Update("proof_image", "").Error
}

func (uqr *userQuestRepo) Delete(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = uqr.db
	}
	res := transaction.WithContext(ctx).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		Delete(&domain.UserQuest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
