// internal/service/review_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService は復習結果の登録と復習対象の取得を提供します
type ReviewService interface {
	SubmitReview(ctx context.Context, userID, wordID int64, req *model.SubmitReviewRequest) (*model.SubmitReviewResult, error)
	GetDueReviews(ctx context.Context, userID, listID int64, limit int) ([]*model.WordProgress, error)
	GetWrongWords(ctx context.Context, userID, listID int64, limit int) ([]*model.WordProgress, error)
	GetListSummary(ctx context.Context, userID, listID int64) (*model.ListProgressSummary, error)
}

type reviewService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
}

func NewReviewService(db *gorm.DB, progRepo repository.ProgressRepository) ReviewService {
	return &reviewService{
		db:       db,
		progRepo: progRepo,
	}
}

// SubmitReview は1単語の復習結果を登録します
// 進捗レコードが未作成なら初期状態で作成してから結果を適用する
// FirstLearn はこの回答が初回学習だったかどうかを示す (日次記録の new/review 判定用)
func (s *reviewService) SubmitReview(ctx context.Context, userID, wordID int64, req *model.SubmitReviewRequest) (*model.SubmitReviewResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)

	if wordID == 0 || req.VocabularyListID == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "単語IDまたは単語帳IDが指定されていません。", "", model.ErrInvalidInput)
	}

	result := &model.SubmitReviewResult{}
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.progRepo.FindByKey(ctx, tx, userID, wordID, req.VocabularyListID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress for review", "error", err)
			return err
		}

		isNew := errors.Is(err, model.ErrNotFound)
		if isNew {
			progress = &model.WordProgress{
				ProgressID:       uuid.New(),
				UserID:           userID,
				WordID:           wordID,
				VocabularyListID: req.VocabularyListID,
				Status:           model.StatusNotLearned,
			}
		}

		result.FirstLearn = progress.LearnedAt == nil

		applyReviewOutcome(progress, *req.IsKnown, now)

		if isNew {
			if createErr := s.progRepo.Create(ctx, tx, progress); createErr != nil {
				logger.Error("Error creating progress for review", "error", createErr)
				return createErr
			}
		} else {
			if updateErr := s.progRepo.Update(ctx, tx, progress); updateErr != nil {
				logger.Error("Error updating progress for review", "error", updateErr)
				return updateErr
			}
		}

		result.Progress = progress
		return nil
	})

	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習結果の登録に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Review result applied",
		"is_known", *req.IsKnown,
		"memory_level", result.Progress.MemoryLevel,
		"status", result.Progress.Status,
	)
	return result, nil
}

// GetDueReviews は next_review_at が現在時刻以前の復習対象を返します
func (s *reviewService) GetDueReviews(ctx context.Context, userID, listID int64, limit int) ([]*model.WordProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "list_id", listID)

	if listID == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "単語帳IDが指定されていません。", "list_id", model.ErrInvalidInput)
	}

	progresses, err := s.progRepo.FindDueReviews(ctx, s.db, userID, listID, time.Now(), limit)
	if err != nil {
		logger.Error("Failed to fetch due reviews", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", model.ErrInternalServer)
	}
	return progresses, nil
}

// GetWrongWords は間違えたことのある単語を error_count の多い順に返します
func (s *reviewService) GetWrongWords(ctx context.Context, userID, listID int64, limit int) ([]*model.WordProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "list_id", listID)

	if listID == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "単語帳IDが指定されていません。", "list_id", model.ErrInvalidInput)
	}

	progresses, err := s.progRepo.FindWrongWords(ctx, s.db, userID, listID, limit)
	if err != nil {
		logger.Error("Failed to fetch wrong words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "間違えた単語の取得に失敗しました。", "", model.ErrInternalServer)
	}
	return progresses, nil
}

// GetListSummary は単語帳単位の学習進捗サマリを返します
// 総数は単語帳マスタの word_count を採用し、進捗レコードのない単語は未学習に数える
func (s *reviewService) GetListSummary(ctx context.Context, userID, listID int64) (*model.ListProgressSummary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "list_id", listID)

	if listID == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "単語帳IDが指定されていません。", "list_id", model.ErrInvalidInput)
	}

	var list model.VocabularyList
	if err := s.db.WithContext(ctx).First(&list, "vocabulary_list_id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "単語帳が見つかりませんでした。", "", model.ErrNotFound)
		}
		logger.Error("Failed to fetch vocabulary list", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の取得に失敗しました。", "", model.ErrInternalServer)
	}

	mastered, err := s.progRepo.CountByListAndStatus(ctx, s.db, userID, listID, model.StatusMastered)
	if err != nil {
		logger.Error("Failed to count mastered words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗サマリの取得に失敗しました。", "", model.ErrInternalServer)
	}
	needReview, err := s.progRepo.CountByListAndStatus(ctx, s.db, userID, listID, model.StatusNeedReview)
	if err != nil {
		logger.Error("Failed to count review words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗サマリの取得に失敗しました。", "", model.ErrInternalServer)
	}

	summary := &model.ListProgressSummary{
		Total:      list.WordCount,
		Mastered:   mastered,
		NeedReview: needReview,
	}
	summary.NotLearned = summary.Total - mastered - needReview
	if summary.NotLearned < 0 {
		summary.NotLearned = 0
	}
	if summary.Total > 0 {
		summary.Progress = float64(mastered) / float64(summary.Total) * 100
	}
	return summary, nil
}
