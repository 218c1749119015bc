// internal/service/sync_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncService は複数端末間の学習データ同期を調停します
type SyncService interface {
	SyncProgress(ctx context.Context, userID int64, inputs []model.ProgressSyncInput) (*model.SyncProgressResult, error)
	SyncExclusions(ctx context.Context, userID int64, inputs []model.ExclusionSyncInput) (*model.SyncExclusionsResult, error)
	GetProgress(ctx context.Context, userID int64, listID *int64, since *time.Time) ([]*model.WordProgress, error)
	GetExclusions(ctx context.Context, userID int64, listID *int64) ([]*model.WordExclusion, error)
	RestoreExclusion(ctx context.Context, userID, wordID, listID int64) error
}

type syncService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
	exclRepo repository.ExclusionRepository
}

func NewSyncService(db *gorm.DB, progRepo repository.ProgressRepository, exclRepo repository.ExclusionRepository) SyncService {
	return &syncService{
		db:       db,
		progRepo: progRepo,
		exclRepo: exclRepo,
	}
}

// SyncProgress はクライアントから送られた進捗バッチを1トランザクションで適用します
// キーが存在しなければ挿入、存在すれば resolveProgress の判定に従って更新する
// 1件でも失敗するとバッチ全体をロールバックする (全か無か)
func (s *syncService) SyncProgress(ctx context.Context, userID int64, inputs []model.ProgressSyncInput) (*model.SyncProgressResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if len(inputs) == 0 {
		return nil, model.NewAppError("INVALID_REQUEST", "学習進捗データが空です。", "", model.ErrInvalidInput)
	}

	result := &model.SyncProgressResult{Conflicts: []model.SyncConflict{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range inputs {
			input := &inputs[i]

			// 必須キーの検証。1件でも不正ならバッチ全体を失敗させる
			if input.WordID == 0 || input.VocabularyListID == 0 {
				return model.NewAppError(
					"VALIDATION_ERROR",
					fmt.Sprintf("%d件目の単語IDまたは単語帳IDが指定されていません。", i+1),
					"",
					model.ErrInvalidInput,
				)
			}

			server, err := s.progRepo.FindByKey(ctx, tx, userID, input.WordID, input.VocabularyListID)
			if err != nil && !errors.Is(err, model.ErrNotFound) {
				logger.Error("Error finding server progress in sync transaction", "error", err, "word_id", input.WordID)
				return err
			}

			if errors.Is(err, model.ErrNotFound) {
				// サーバー側に存在しないキーはクライアントの値で挿入
				progress := newProgressFromInput(userID, input)
				if createErr := s.progRepo.Create(ctx, tx, progress); createErr != nil {
					logger.Error("Error inserting synced progress", "error", createErr, "word_id", input.WordID)
					return createErr
				}
				result.SyncedCount++
				continue
			}

			resolved := resolveProgress(server, input)
			if resolved.Updated {
				if updateErr := s.progRepo.Update(ctx, tx, resolved.Snapshot); updateErr != nil {
					logger.Error("Error updating resolved progress", "error", updateErr, "word_id", input.WordID)
					return updateErr
				}
			}
			if resolved.Conflict {
				result.Conflicts = append(result.Conflicts, model.SyncConflict{
					WordID:           input.WordID,
					VocabularyListID: input.VocabularyListID,
					Resolution:       resolved.Resolution,
				})
			}
			// サーバー側維持の場合も処理済みとして synced_count に含める
			result.SyncedCount++
		}
		return nil // コミット
	})

	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Progress sync transaction failed", "error", err)
		return nil, model.NewAppError("SYNC_FAILED", "同期に失敗しました: "+err.Error(), "", model.ErrInternalServer)
	}

	logger.Info("Progress sync completed",
		"synced_count", result.SyncedCount,
		"conflict_count", len(result.Conflicts),
	)
	return result, nil
}

// SyncExclusions は排除単語マーカーの冪等な和集合同期です
// 既存キーは黙ってスキップする。値の比較は存在しないため競合の概念はない
func (s *syncService) SyncExclusions(ctx context.Context, userID int64, inputs []model.ExclusionSyncInput) (*model.SyncExclusionsResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if len(inputs) == 0 {
		return nil, model.NewAppError("INVALID_REQUEST", "排除単語データが空です。", "", model.ErrInvalidInput)
	}

	result := &model.SyncExclusionsResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range inputs {
			input := &inputs[i]

			if input.WordID == 0 || input.VocabularyListID == 0 {
				return model.NewAppError(
					"VALIDATION_ERROR",
					fmt.Sprintf("%d件目の単語IDまたは単語帳IDが指定されていません。", i+1),
					"",
					model.ErrInvalidInput,
				)
			}

			exists, err := s.exclRepo.Exists(ctx, tx, userID, input.WordID, input.VocabularyListID)
			if err != nil {
				logger.Error("Error checking exclusion existence", "error", err, "word_id", input.WordID)
				return err
			}
			if exists {
				continue // 冪等: 既存は数えない
			}

			excludedAt := time.Now()
			if input.ExcludedAt != nil {
				excludedAt = *input.ExcludedAt
			}
			exclusion := &model.WordExclusion{
				ExclusionID:      uuid.New(),
				UserID:           userID,
				WordID:           input.WordID,
				VocabularyListID: input.VocabularyListID,
				ExcludedAt:       excludedAt,
			}
			if createErr := s.exclRepo.Create(ctx, tx, exclusion); createErr != nil {
				logger.Error("Error inserting exclusion", "error", createErr, "word_id", input.WordID)
				return createErr
			}
			result.SyncedCount++
		}
		return nil
	})

	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Exclusion sync transaction failed", "error", err)
		return nil, model.NewAppError("SYNC_FAILED", "同期に失敗しました: "+err.Error(), "", model.ErrInternalServer)
	}

	logger.Info("Exclusion sync completed", "synced_count", result.SyncedCount)
	return result, nil
}

// GetProgress はクライアントへのダウンロード用に進捗一覧を返します
// since 指定時はそれ以降に復習されたレコードのみの差分となる
func (s *syncService) GetProgress(ctx context.Context, userID int64, listID *int64, since *time.Time) ([]*model.WordProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	progresses, err := s.progRepo.FindByUser(ctx, s.db, userID, listID, since)
	if err != nil {
		logger.Error("Failed to fetch progress for download", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の取得に失敗しました。", "", model.ErrInternalServer)
	}
	return progresses, nil
}

func (s *syncService) GetExclusions(ctx context.Context, userID int64, listID *int64) ([]*model.WordExclusion, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	exclusions, err := s.exclRepo.FindByUser(ctx, s.db, userID, listID)
	if err != nil {
		logger.Error("Failed to fetch exclusions for download", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "排除単語の取得に失敗しました。", "", model.ErrInternalServer)
	}
	return exclusions, nil
}

// RestoreExclusion は排除マーカーを削除して単語を再表示します
func (s *syncService) RestoreExclusion(ctx context.Context, userID, wordID, listID int64) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.exclRepo.Delete(ctx, tx, userID, wordID, listID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "排除マーカーが見つかりませんでした。", "", model.ErrNotFound)
		}
		logger.Error("Failed to restore exclusion", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "排除単語の復元に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Exclusion restored")
	return nil
}

// newProgressFromInput は新規挿入用の進捗レコードを組み立てます
// 未指定フィールドはスキーマのデフォルト値になる
func newProgressFromInput(userID int64, input *model.ProgressSyncInput) *model.WordProgress {
	progress := &model.WordProgress{
		ProgressID:       uuid.New(),
		UserID:           userID,
		WordID:           input.WordID,
		VocabularyListID: input.VocabularyListID,
		Status:           model.StatusNotLearned,
	}
	if input.Status != nil {
		progress.Status = *input.Status
	}
	if input.MemoryLevel != nil {
		progress.MemoryLevel = *input.MemoryLevel
	}
	if input.ReviewCount != nil {
		progress.ReviewCount = *input.ReviewCount
	}
	if input.ErrorCount != nil {
		progress.ErrorCount = *input.ErrorCount
	}
	progress.LearnedAt = input.LearnedAt
	progress.LastReviewAt = input.LastReviewAt
	progress.NextReviewAt = input.NextReviewAt
	return progress
}
