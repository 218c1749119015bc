// internal/service/statistics_service.go
package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatisticsService は学習統計の集計・更新・連続日数の管理を提供します
type StatisticsService interface {
	GetStatistics(ctx context.Context, userID int64) (*model.StatisticsResponse, error)
	UpdateStatistics(ctx context.Context, userID int64, req *model.UpdateStatisticsRequest) (*model.UserStatistics, error)
	RecordDailyLearning(ctx context.Context, userID int64, learnDate string, newCount, reviewCount int) (*model.UserStatistics, error)
	CheckContinuousDays(ctx context.Context, userID int64) (*model.UserStatistics, error)
}

type statisticsService struct {
	db         *gorm.DB
	statsRepo  repository.StatisticsRepository
	progRepo   repository.ProgressRepository
	notifier   NotificationSender
	milestones []int
}

func NewStatisticsService(db *gorm.DB, statsRepo repository.StatisticsRepository, progRepo repository.ProgressRepository, notifier NotificationSender, milestones []int) StatisticsService {
	return &statisticsService{
		db:         db,
		statsRepo:  statsRepo,
		progRepo:   progRepo,
		notifier:   notifier,
		milestones: milestones,
	}
}

// GetStatistics はユーザーの統計を返します
// 学習済み・習得済みの件数は統計テーブルの値ではなく進捗テーブルから再集計する
// 日次記録は直近30日分を新しい順で付ける
func (s *statisticsService) GetStatistics(ctx context.Context, userID int64) (*model.StatisticsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	stats, err := s.getOrCreateStatistics(ctx, userID)
	if err != nil {
		logger.Error("Failed to get or create statistics", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", model.ErrInternalServer)
	}

	learned, err := s.progRepo.CountLearned(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to count learned words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", model.ErrInternalServer)
	}
	mastered, err := s.progRepo.CountByStatus(ctx, s.db, userID, model.StatusMastered)
	if err != nil {
		logger.Error("Failed to count mastered words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", model.ErrInternalServer)
	}

	sinceDate := time.Now().AddDate(0, 0, -29).Format(model.LearnDateLayout)
	records, err := s.statsRepo.FindDailyRecordsSince(ctx, s.db, userID, sinceDate)
	if err != nil {
		logger.Error("Failed to fetch daily records", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", model.ErrInternalServer)
	}

	return &model.StatisticsResponse{
		TotalDays:          stats.TotalDays,
		ContinuousDays:     stats.ContinuousDays,
		TotalWordsLearned:  int(learned),
		TotalWordsMastered: int(mastered),
		LastLearnDate:      stats.LastLearnDate,
		DailyRecords:       records,
	}, nil
}

// UpdateStatistics はクライアントからの統計アップロードを反映します
// 各カウンタはフィールド単位の最大値でマージする (端末間で減ることはない前提)
func (s *statisticsService) UpdateStatistics(ctx context.Context, userID int64, req *model.UpdateStatisticsRequest) (*model.UserStatistics, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var merged *model.UserStatistics
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stats, err := s.statsRepo.FindByUser(ctx, tx, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}

		isNew := errors.Is(err, model.ErrNotFound)
		if isNew {
			stats = &model.UserStatistics{
				StatisticsID: uuid.New(),
				UserID:       userID,
			}
		}

		stats.TotalDays = max(stats.TotalDays, req.TotalDays)
		stats.ContinuousDays = max(stats.ContinuousDays, req.ContinuousDays)
		stats.TotalWordsLearned = max(stats.TotalWordsLearned, req.TotalWordsLearned)
		stats.TotalWordsMastered = max(stats.TotalWordsMastered, req.TotalWordsMastered)
		// 日付は文字列比較で遅い方を採用 (YYYY-MM-DD は辞書順 = 時系列順)
		if req.LastLearnDate != nil {
			if stats.LastLearnDate == nil || *req.LastLearnDate > *stats.LastLearnDate {
				stats.LastLearnDate = req.LastLearnDate
			}
		}

		if isNew {
			if createErr := s.statsRepo.Create(ctx, tx, stats); createErr != nil {
				return createErr
			}
		} else {
			if updateErr := s.statsRepo.Update(ctx, tx, stats); updateErr != nil {
				return updateErr
			}
		}
		merged = stats
		return nil
	})
	if err != nil {
		logger.Error("Failed to merge uploaded statistics", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の更新に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Statistics merged from client upload",
		"total_days", merged.TotalDays,
		"continuous_days", merged.ContinuousDays,
	)
	return merged, nil
}

// RecordDailyLearning は1日分の学習実績を記録し、連続学習日数を更新します
// 同日2回目以降の呼び出しは件数の加算のみで、日数カウンタは動かない
// 連続日数が設定された節目に到達したらコミット後に通知する
func (s *statisticsService) RecordDailyLearning(ctx context.Context, userID int64, learnDate string, newCount, reviewCount int) (*model.UserStatistics, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "learn_date", learnDate)

	if _, err := time.Parse(model.LearnDateLayout, learnDate); err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "学習日はYYYY-MM-DD形式で入力してください。", "learn_date", model.ErrInvalidInput)
	}

	var updated *model.UserStatistics
	milestoneReached := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 日次記録の加算 (なければ作成)
		record, err := s.statsRepo.FindDailyRecord(ctx, tx, userID, learnDate)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
		if errors.Is(err, model.ErrNotFound) {
			record = &model.DailyLearningRecord{
				RecordID:         uuid.New(),
				UserID:           userID,
				LearnDate:        learnDate,
				NewWordsCount:    newCount,
				ReviewWordsCount: reviewCount,
			}
			if createErr := s.statsRepo.CreateDailyRecord(ctx, tx, record); createErr != nil {
				return createErr
			}
		} else {
			record.NewWordsCount += newCount
			record.ReviewWordsCount += reviewCount
			if updateErr := s.statsRepo.UpdateDailyRecord(ctx, tx, record); updateErr != nil {
				return updateErr
			}
		}

		// 2. 連続学習日数の遷移
		stats, err := s.statsRepo.FindByUser(ctx, tx, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
		isNew := errors.Is(err, model.ErrNotFound)
		if isNew {
			stats = &model.UserStatistics{
				StatisticsID: uuid.New(),
				UserID:       userID,
			}
		}

		if stats.LastLearnDate == nil || *stats.LastLearnDate != learnDate {
			if stats.LastLearnDate != nil && *stats.LastLearnDate == previousDate(learnDate) {
				// 昨日も学習していた: 連続記録を伸ばす
				stats.ContinuousDays++
			} else {
				// 初回または間が空いた: 連続記録は1から
				stats.ContinuousDays = 1
			}
			stats.TotalDays++
			date := learnDate
			stats.LastLearnDate = &date

			if slices.Contains(s.milestones, stats.ContinuousDays) {
				milestoneReached = stats.ContinuousDays
			}
		}

		if isNew {
			if createErr := s.statsRepo.Create(ctx, tx, stats); createErr != nil {
				return createErr
			}
		} else {
			if updateErr := s.statsRepo.Update(ctx, tx, stats); updateErr != nil {
				return updateErr
			}
		}
		updated = stats
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Failed to record daily learning", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習記録の更新に失敗しました。", "", model.ErrInternalServer)
	}

	// 通知はコミット後にベストエフォートで送る。失敗してもAPI自体は成功
	if milestoneReached > 0 && s.notifier != nil {
		if notifyErr := s.notifier.NotifyStreakMilestone(ctx, userID, milestoneReached); notifyErr != nil {
			logger.Warn("Failed to send streak milestone notification", "error", notifyErr, "continuous_days", milestoneReached)
		}
	}

	logger.Info("Daily learning recorded",
		"continuous_days", updated.ContinuousDays,
		"total_days", updated.TotalDays,
	)
	return updated, nil
}

// CheckContinuousDays は連続学習が途切れていないかを確認します
// 最終学習日が今日でも昨日でもなければ連続日数を0に戻す (累計日数は触らない)
func (s *statisticsService) CheckContinuousDays(ctx context.Context, userID int64) (*model.UserStatistics, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var checked *model.UserStatistics
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stats, err := s.statsRepo.FindByUser(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// 統計がなければ連続0日の空レコードを返すだけで作成はしない
				checked = &model.UserStatistics{UserID: userID}
				return nil
			}
			return err
		}

		now := time.Now()
		today := now.Format(model.LearnDateLayout)
		yesterday := now.AddDate(0, 0, -1).Format(model.LearnDateLayout)

		if stats.LastLearnDate == nil || (*stats.LastLearnDate != today && *stats.LastLearnDate != yesterday) {
			if stats.ContinuousDays != 0 {
				stats.ContinuousDays = 0
				if updateErr := s.statsRepo.Update(ctx, tx, stats); updateErr != nil {
					return updateErr
				}
				logger.Info("Continuous days reset", "last_learn_date", stats.LastLearnDate)
			}
		}
		checked = stats
		return nil
	})
	if err != nil {
		logger.Error("Failed to check continuous days", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "連続学習日数の確認に失敗しました。", "", model.ErrInternalServer)
	}
	return checked, nil
}

func (s *statisticsService) getOrCreateStatistics(ctx context.Context, userID int64) (*model.UserStatistics, error) {
	stats, err := s.statsRepo.FindByUser(ctx, s.db, userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	stats = &model.UserStatistics{
		StatisticsID: uuid.New(),
		UserID:       userID,
	}
	createErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.statsRepo.Create(ctx, tx, stats)
	})
	if createErr != nil {
		return nil, createErr
	}
	return stats, nil
}

// previousDate は YYYY-MM-DD 形式の前日を返します
func previousDate(date string) string {
	t, err := time.Parse(model.LearnDateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(model.LearnDateLayout)
}
