// internal/repository/statistics_repository.go
package repository

import (
	"context"
	"errors"

	"go_4_vocab_sync/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID int64) (*model.UserStatistics, error)
	Create(ctx context.Context, tx *gorm.DB, stats *model.UserStatistics) error
	Update(ctx context.Context, tx *gorm.DB, stats *model.UserStatistics) error
	FindDailyRecord(ctx context.Context, db *gorm.DB, userID int64, learnDate string) (*model.DailyLearningRecord, error)
	CreateDailyRecord(ctx context.Context, tx *gorm.DB, record *model.DailyLearningRecord) error
	UpdateDailyRecord(ctx context.Context, tx *gorm.DB, record *model.DailyLearningRecord) error
	FindDailyRecordsSince(ctx context.Context, db *gorm.DB, userID int64, sinceDate string) ([]*model.DailyLearningRecord, error)
}

type gormStatisticsRepository struct{}

func NewGormStatisticsRepository() StatisticsRepository {
	return &gormStatisticsRepository{}
}

func (r *gormStatisticsRepository) FindByUser(ctx context.Context, db *gorm.DB, userID int64) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&stats)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &stats, nil
}

func (r *gormStatisticsRepository) Create(ctx context.Context, tx *gorm.DB, stats *model.UserStatistics) error {
	result := tx.WithContext(ctx).Create(stats)
	return result.Error
}

func (r *gormStatisticsRepository) Update(ctx context.Context, tx *gorm.DB, stats *model.UserStatistics) error {
	result := tx.WithContext(ctx).Save(stats)
	return result.Error
}

func (r *gormStatisticsRepository) FindDailyRecord(ctx context.Context, db *gorm.DB, userID int64, learnDate string) (*model.DailyLearningRecord, error) {
	var record model.DailyLearningRecord
	result := db.WithContext(ctx).
		Where("user_id = ? AND learn_date = ?", userID, learnDate).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &record, nil
}

func (r *gormStatisticsRepository) CreateDailyRecord(ctx context.Context, tx *gorm.DB, record *model.DailyLearningRecord) error {
	result := tx.WithContext(ctx).Create(record)
	return result.Error
}

func (r *gormStatisticsRepository) UpdateDailyRecord(ctx context.Context, tx *gorm.DB, record *model.DailyLearningRecord) error {
	result := tx.WithContext(ctx).Save(record)
	return result.Error
}

func (r *gormStatisticsRepository) FindDailyRecordsSince(ctx context.Context, db *gorm.DB, userID int64, sinceDate string) ([]*model.DailyLearningRecord, error) {
	var records []*model.DailyLearningRecord
	result := db.WithContext(ctx).
		Where("user_id = ? AND learn_date >= ?", userID, sinceDate).
		Order("learn_date DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
