// internal/service/sync_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/repository"
	"go_4_vocab_sync/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDBSync(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:syncsvc_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WordProgress{}, &model.WordExclusion{}))
	// 前のテストの残骸を掃除
	require.NoError(t, db.Exec("DELETE FROM user_word_progress").Error)
	require.NoError(t, db.Exec("DELETE FROM user_word_exclusion").Error)
	return db
}

func seedProgress(t *testing.T, db *gorm.DB, p *model.WordProgress) {
	if p.ProgressID == uuid.Nil {
		p.ProgressID = uuid.New()
	}
	require.NoError(t, db.Create(p).Error)
}

func Test_syncService_SyncProgress(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: 未知のキーはクライアントの値で挿入される", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		inputs := []model.ProgressSyncInput{
			{
				WordID: 10, VocabularyListID: 100,
				Status:       statusPtr(model.StatusNeedReview),
				MemoryLevel:  intPtr(2),
				ReviewCount:  intPtr(3),
				LastReviewAt: timePtr(base),
			},
		}

		result, err := svc.SyncProgress(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, result.SyncedCount)
		assert.Empty(t, result.Conflicts)

		var saved model.WordProgress
		require.NoError(t, db.Where("user_id = ? AND word_id = ?", userID, 10).First(&saved).Error)
		assert.Equal(t, 2, saved.MemoryLevel)
		assert.Equal(t, 3, saved.ReviewCount)
		assert.Equal(t, model.StatusNeedReview, saved.Status)
	})

	t.Run("正常系: 同一バッチの再同期は冪等", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		inputs := []model.ProgressSyncInput{
			{
				WordID: 10, VocabularyListID: 100,
				MemoryLevel: intPtr(2), ReviewCount: intPtr(3),
				LastReviewAt: timePtr(base),
			},
		}

		first, err := svc.SyncProgress(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, first.SyncedCount)

		// 2回目は値が完全一致するため競合も書き込みも発生しない
		second, err := svc.SyncProgress(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, second.SyncedCount)
		assert.Empty(t, second.Conflicts)

		var count int64
		require.NoError(t, db.Model(&model.WordProgress{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("正常系: クライアントのレベルが上なら全置換で採用", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 10, VocabularyListID: 100,
			Status: model.StatusNeedReview, MemoryLevel: 2, ReviewCount: 5, ErrorCount: 1,
		})

		inputs := []model.ProgressSyncInput{
			{
				WordID: 10, VocabularyListID: 100,
				Status:      statusPtr(model.StatusMastered),
				MemoryLevel: intPtr(5), ReviewCount: intPtr(8),
				LastReviewAt: timePtr(base),
			},
		}

		result, err := svc.SyncProgress(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, result.SyncedCount)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, model.ResolutionClientHigherMemoryLevel, result.Conflicts[0].Resolution)
		assert.Equal(t, int64(10), result.Conflicts[0].WordID)

		var saved model.WordProgress
		require.NoError(t, db.Where("user_id = ? AND word_id = ?", userID, 10).First(&saved).Error)
		assert.Equal(t, 5, saved.MemoryLevel)
		assert.Equal(t, 8, saved.ReviewCount)
		assert.Equal(t, model.StatusMastered, saved.Status)
		// クライアントが省略した error_count はサーバー値を維持
		assert.Equal(t, 1, saved.ErrorCount)
	})

	t.Run("正常系: サーバーのレベルが上なら書き込みなしで維持", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 10, VocabularyListID: 100,
			Status: model.StatusMastered, MemoryLevel: 5, ReviewCount: 9,
		})

		inputs := []model.ProgressSyncInput{
			{
				WordID: 10, VocabularyListID: 100,
				MemoryLevel: intPtr(1), ReviewCount: intPtr(20),
				LastReviewAt: timePtr(base.AddDate(0, 0, 1)),
			},
		}

		result, err := svc.SyncProgress(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, result.SyncedCount)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, model.ResolutionServerHigherMemoryLevel, result.Conflicts[0].Resolution)

		// レベルの単調性: 同期によってレベルが下がることはない
		var saved model.WordProgress
		require.NoError(t, db.Where("user_id = ? AND word_id = ?", userID, 10).First(&saved).Error)
		assert.Equal(t, 5, saved.MemoryLevel)
		assert.Equal(t, 9, saved.ReviewCount)
	})

	t.Run("正常系: レベル・回数同値なら最終復習の新しい方が勝つ", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 10, VocabularyListID: 100,
			Status: model.StatusNeedReview, MemoryLevel: 3, ReviewCount: 4,
			LastReviewAt: timePtr(base),
		})

		inputs := []model.ProgressSyncInput{
			{
				WordID: 10, VocabularyListID: 100,
				MemoryLevel: intPtr(3), ReviewCount: intPtr(4),
				LastReviewAt: timePtr(base.Add(time.Hour)),
			},
		}

		result, err := svc.SyncProgress(ctx, userID, inputs)
		require.NoError(t, err)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, model.ResolutionClientMoreRecent, result.Conflicts[0].Resolution)

		var saved model.WordProgress
		require.NoError(t, db.Where("user_id = ? AND word_id = ?", userID, 10).First(&saved).Error)
		require.NotNil(t, saved.LastReviewAt)
		assert.WithinDuration(t, base.Add(time.Hour), *saved.LastReviewAt, time.Second)
	})

	t.Run("異常系: 不正な要素が1件でもあればバッチ全体がロールバック", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		inputs := []model.ProgressSyncInput{
			{WordID: 10, VocabularyListID: 100, MemoryLevel: intPtr(1)},
			{WordID: 0, VocabularyListID: 100}, // word_id 欠落
		}

		result, err := svc.SyncProgress(ctx, userID, inputs)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, result)

		// 1件目も挿入されていないこと
		var count int64
		require.NoError(t, db.Model(&model.WordProgress{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("異常系: 空バッチは不正入力", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		result, err := svc.SyncProgress(ctx, userID, []model.ProgressSyncInput{})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, result)
	})

	t.Run("異常系: リポジトリエラーは同期失敗として変換", func(t *testing.T) {
		db := setupTestDBSync(t)
		mockProgRepo := new(mocks.ProgressRepository)
		svc := NewSyncService(db, mockProgRepo, repository.NewGormExclusionRepository())

		mockProgRepo.On("FindByKey", ctx, mock.AnythingOfType("*gorm.DB"), userID, int64(10), int64(100)).
			Return(nil, errors.New("db error finding progress")).Once()

		inputs := []model.ProgressSyncInput{
			{WordID: 10, VocabularyListID: 100, MemoryLevel: intPtr(1)},
		}

		result, err := svc.SyncProgress(ctx, userID, inputs)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInternalServer)
		assert.Nil(t, result)
		mockProgRepo.AssertExpectations(t)
	})
}

func Test_syncService_SyncExclusions(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: 新規マーカーは挿入され件数に含まれる", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		inputs := []model.ExclusionSyncInput{
			{WordID: 10, VocabularyListID: 100, ExcludedAt: timePtr(base)},
			{WordID: 11, VocabularyListID: 100},
		}

		result, err := svc.SyncExclusions(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 2, result.SyncedCount)

		var count int64
		require.NoError(t, db.Model(&model.WordExclusion{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("正常系: 既存マーカーは黙ってスキップ (冪等)", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		inputs := []model.ExclusionSyncInput{
			{WordID: 10, VocabularyListID: 100, ExcludedAt: timePtr(base)},
		}

		first, err := svc.SyncExclusions(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 1, first.SyncedCount)

		second, err := svc.SyncExclusions(ctx, userID, inputs)
		require.NoError(t, err)
		assert.Equal(t, 0, second.SyncedCount)

		var count int64
		require.NoError(t, db.Model(&model.WordExclusion{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("異常系: 不正な要素でバッチ全体がロールバック", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		inputs := []model.ExclusionSyncInput{
			{WordID: 10, VocabularyListID: 100},
			{WordID: 11, VocabularyListID: 0}, // list_id 欠落
		}

		result, err := svc.SyncExclusions(ctx, userID, inputs)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, result)

		var count int64
		require.NoError(t, db.Model(&model.WordExclusion{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func Test_syncService_RestoreExclusion(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	t.Run("正常系: マーカー削除で単語が復元される", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		require.NoError(t, db.Create(&model.WordExclusion{
			ExclusionID: uuid.New(), UserID: userID, WordID: 10, VocabularyListID: 100,
			ExcludedAt: time.Now(),
		}).Error)

		require.NoError(t, svc.RestoreExclusion(ctx, userID, 10, 100))

		var count int64
		require.NoError(t, db.Model(&model.WordExclusion{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("異常系: 存在しないマーカーはNotFound", func(t *testing.T) {
		db := setupTestDBSync(t)
		svc := NewSyncService(db, repository.NewGormProgressRepository(), repository.NewGormExclusionRepository())

		err := svc.RestoreExclusion(ctx, userID, 99, 100)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
