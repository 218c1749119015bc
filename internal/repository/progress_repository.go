// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"go_4_vocab_sync/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.WordProgress) error // トランザクション対応
	FindByKey(ctx context.Context, db *gorm.DB, userID, wordID, listID int64) (*model.WordProgress, error)
	Update(ctx context.Context, tx *gorm.DB, progress *model.WordProgress) error // トランザクション対応
	FindByUser(ctx context.Context, db *gorm.DB, userID int64, listID *int64, since *time.Time) ([]*model.WordProgress, error)
	FindDueReviews(ctx context.Context, db *gorm.DB, userID, listID int64, now time.Time, limit int) ([]*model.WordProgress, error)
	FindWrongWords(ctx context.Context, db *gorm.DB, userID, listID int64, limit int) ([]*model.WordProgress, error)
	CountLearned(ctx context.Context, db *gorm.DB, userID int64) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, userID int64, status model.ProgressStatus) (int64, error)
	CountByListAndStatus(ctx context.Context, db *gorm.DB, userID, listID int64, status model.ProgressStatus) (int64, error)
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.WordProgress) error {
	// UUIDはService層で設定済み想定
	result := tx.WithContext(ctx).Create(progress)
	// 複合ユニーク制約違反はGORMがErrorで返す
	return result.Error
}

func (r *gormProgressRepository) FindByKey(ctx context.Context, db *gorm.DB, userID, wordID, listID int64) (*model.WordProgress, error) {
	var progress model.WordProgress
	result := db.WithContext(ctx).
		Where("user_id = ? AND word_id = ? AND vocabulary_list_id = ?", userID, wordID, listID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.WordProgress) error {
	// progress オブジェクト全体を渡して更新
	// 事前の存在確認は呼び出し元(Service)で行っている想定
	result := tx.WithContext(ctx).Save(progress)
	return result.Error
}

func (r *gormProgressRepository) FindByUser(ctx context.Context, db *gorm.DB, userID int64, listID *int64, since *time.Time) ([]*model.WordProgress, error) {
	query := db.WithContext(ctx).Where("user_id = ?", userID)
	if listID != nil {
		query = query.Where("vocabulary_list_id = ?", *listID)
	}
	if since != nil {
		// 差分ダウンロード用: 指定時刻より後に復習された進捗のみ
		query = query.Where("last_review_at > ?", *since)
	}

	var progresses []*model.WordProgress
	result := query.Order("word_id ASC").Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindDueReviews(ctx context.Context, db *gorm.DB, userID, listID int64, now time.Time, limit int) ([]*model.WordProgress, error) {
	var progresses []*model.WordProgress
	result := db.WithContext(ctx).
		Where("user_id = ? AND vocabulary_list_id = ? AND status = ?", userID, listID, model.StatusNeedReview).
		Where("next_review_at <= ?", now).
		Order("next_review_at ASC").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindWrongWords(ctx context.Context, db *gorm.DB, userID, listID int64, limit int) ([]*model.WordProgress, error) {
	var progresses []*model.WordProgress
	result := db.WithContext(ctx).
		Where("user_id = ? AND vocabulary_list_id = ?", userID, listID).
		Where("error_count > 0").
		Order("error_count DESC").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}

func (r *gormProgressRepository) CountLearned(ctx context.Context, db *gorm.DB, userID int64) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.WordProgress{}).
		Where("user_id = ? AND learned_at IS NOT NULL", userID).
		Count(&count)
	return count, result.Error
}

func (r *gormProgressRepository) CountByStatus(ctx context.Context, db *gorm.DB, userID int64, status model.ProgressStatus) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.WordProgress{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count)
	return count, result.Error
}

func (r *gormProgressRepository) CountByListAndStatus(ctx context.Context, db *gorm.DB, userID, listID int64, status model.ProgressStatus) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.WordProgress{}).
		Where("user_id = ? AND vocabulary_list_id = ? AND status = ?", userID, listID, status).
		Count(&count)
	return count, result.Error
}
