// internal/repository/exclusion_repository.go
package repository

import (
	"context"
	"errors"

	"go_4_vocab_sync/internal/model"

	"gorm.io/gorm"
)

type ExclusionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, exclusion *model.WordExclusion) error
	Exists(ctx context.Context, db *gorm.DB, userID, wordID, listID int64) (bool, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID int64, listID *int64) ([]*model.WordExclusion, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, wordID, listID int64) error // 復元 = 物理削除
}

type gormExclusionRepository struct{}

func NewGormExclusionRepository() ExclusionRepository {
	return &gormExclusionRepository{}
}

func (r *gormExclusionRepository) Create(ctx context.Context, tx *gorm.DB, exclusion *model.WordExclusion) error {
	result := tx.WithContext(ctx).Create(exclusion)
	return result.Error
}

func (r *gormExclusionRepository) Exists(ctx context.Context, db *gorm.DB, userID, wordID, listID int64) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.WordExclusion{}).
		Where("user_id = ? AND word_id = ? AND vocabulary_list_id = ?", userID, wordID, listID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *gormExclusionRepository) FindByUser(ctx context.Context, db *gorm.DB, userID int64, listID *int64) ([]*model.WordExclusion, error) {
	query := db.WithContext(ctx).Where("user_id = ?", userID)
	if listID != nil {
		query = query.Where("vocabulary_list_id = ?", *listID)
	}

	var exclusions []*model.WordExclusion
	result := query.Order("excluded_at DESC").Find(&exclusions)
	if result.Error != nil {
		return nil, result.Error
	}
	return exclusions, nil
}

func (r *gormExclusionRepository) Delete(ctx context.Context, tx *gorm.DB, userID, wordID, listID int64) error {
	result := tx.WithContext(ctx).
		Where("user_id = ? AND word_id = ? AND vocabulary_list_id = ?", userID, wordID, listID).
		Delete(&model.WordExclusion{})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.ErrNotFound
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 排除マーカーが存在しない場合は復元対象なし
		return model.ErrNotFound
	}
	return nil
}
