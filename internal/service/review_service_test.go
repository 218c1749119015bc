// internal/service/review_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"go_4_vocab_sync/internal/model"
	"go_4_vocab_sync/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBReview(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:reviewsvc_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WordProgress{}, &model.VocabularyList{}))
	require.NoError(t, db.Exec("DELETE FROM user_word_progress").Error)
	require.NoError(t, db.Exec("DELETE FROM vocabulary_lists").Error)
	return db
}

func boolPtr(v bool) *bool { return &v }

func Test_reviewService_SubmitReview(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	t.Run("正常系: 進捗未作成の単語への初回回答でレコード作成", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		result, err := svc.SubmitReview(ctx, userID, 10, &model.SubmitReviewRequest{
			VocabularyListID: 100,
			IsKnown:          boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, result.FirstLearn)
		assert.Equal(t, 1, result.Progress.MemoryLevel)
		assert.Equal(t, model.StatusNeedReview, result.Progress.Status)
		assert.Equal(t, 1, result.Progress.ReviewCount)
		require.NotNil(t, result.Progress.LearnedAt)

		var saved model.WordProgress
		require.NoError(t, db.Where("user_id = ? AND word_id = ?", userID, 10).First(&saved).Error)
		assert.Equal(t, 1, saved.MemoryLevel)
	})

	t.Run("正常系: 正解の積み重ねでレベル5到達で習得済み", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		req := &model.SubmitReviewRequest{VocabularyListID: 100, IsKnown: boolPtr(true)}
		var result *model.SubmitReviewResult
		var err error
		for i := 0; i < 5; i++ {
			result, err = svc.SubmitReview(ctx, userID, 10, req)
			require.NoError(t, err)
		}

		assert.Equal(t, model.MaxMemoryLevel, result.Progress.MemoryLevel)
		assert.Equal(t, model.StatusMastered, result.Progress.Status)
		assert.Equal(t, 5, result.Progress.ReviewCount)
		assert.False(t, result.FirstLearn)
	})

	t.Run("正常系: 不正解でレベル1へリセットされ間違い回数が増える", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		req := &model.SubmitReviewRequest{VocabularyListID: 100, IsKnown: boolPtr(true)}
		for i := 0; i < 4; i++ {
			_, err := svc.SubmitReview(ctx, userID, 10, req)
			require.NoError(t, err)
		}

		result, err := svc.SubmitReview(ctx, userID, 10, &model.SubmitReviewRequest{
			VocabularyListID: 100,
			IsKnown:          boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Progress.MemoryLevel)
		assert.Equal(t, model.StatusNeedReview, result.Progress.Status)
		assert.Equal(t, 1, result.Progress.ErrorCount)
		// 復習回数は不正解では増えない
		assert.Equal(t, 4, result.Progress.ReviewCount)
	})

	t.Run("異常系: 単語帳ID未指定", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		_, err := svc.SubmitReview(ctx, userID, 10, &model.SubmitReviewRequest{
			VocabularyListID: 0,
			IsKnown:          boolPtr(true),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func Test_reviewService_GetDueReviews(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	t.Run("正常系: 期限到来分のみ期限の古い順に返す", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		now := time.Now()
		overdue := now.Add(-48 * time.Hour)
		dueNow := now.Add(-time.Minute)
		future := now.Add(72 * time.Hour)

		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 10, VocabularyListID: 100,
			Status: model.StatusNeedReview, NextReviewAt: &dueNow,
		})
		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 11, VocabularyListID: 100,
			Status: model.StatusNeedReview, NextReviewAt: &overdue,
		})
		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 12, VocabularyListID: 100,
			Status: model.StatusNeedReview, NextReviewAt: &future,
		})
		// 習得済みは対象外
		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 13, VocabularyListID: 100,
			Status: model.StatusMastered, NextReviewAt: &overdue,
		})

		progresses, err := svc.GetDueReviews(ctx, userID, 100, 20)
		require.NoError(t, err)
		require.Len(t, progresses, 2)
		assert.Equal(t, int64(11), progresses[0].WordID)
		assert.Equal(t, int64(10), progresses[1].WordID)
	})

	t.Run("異常系: 単語帳ID未指定", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		_, err := svc.GetDueReviews(ctx, userID, 0, 20)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func Test_reviewService_GetWrongWords(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	t.Run("正常系: 間違い回数の多い順に返す", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 10, VocabularyListID: 100,
			Status: model.StatusNeedReview, ErrorCount: 2,
		})
		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 11, VocabularyListID: 100,
			Status: model.StatusNeedReview, ErrorCount: 5,
		})
		// 間違いゼロは対象外
		seedProgress(t, db, &model.WordProgress{
			UserID: userID, WordID: 12, VocabularyListID: 100,
			Status: model.StatusNeedReview, ErrorCount: 0,
		})

		progresses, err := svc.GetWrongWords(ctx, userID, 100, 20)
		require.NoError(t, err)
		require.Len(t, progresses, 2)
		assert.Equal(t, int64(11), progresses[0].WordID)
		assert.Equal(t, int64(10), progresses[1].WordID)
	})
}

func Test_reviewService_GetListSummary(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	t.Run("正常系: 単語帳の母数に対する進捗サマリ", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		require.NoError(t, db.Create(&model.VocabularyList{
			VocabularyListID: 100, Name: "基礎単語", WordCount: 10,
		}).Error)

		for i := 0; i < 4; i++ {
			seedProgress(t, db, &model.WordProgress{
				UserID: userID, WordID: int64(10 + i), VocabularyListID: 100,
				Status: model.StatusMastered, MemoryLevel: 5,
			})
		}
		for i := 0; i < 3; i++ {
			seedProgress(t, db, &model.WordProgress{
				UserID: userID, WordID: int64(20 + i), VocabularyListID: 100,
				Status: model.StatusNeedReview, MemoryLevel: 2,
			})
		}

		summary, err := svc.GetListSummary(ctx, userID, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(10), summary.Total)
		assert.Equal(t, int64(4), summary.Mastered)
		assert.Equal(t, int64(3), summary.NeedReview)
		// 進捗レコードのない単語は未学習に数える
		assert.Equal(t, int64(3), summary.NotLearned)
		assert.InDelta(t, 40.0, summary.Progress, 0.001)
	})

	t.Run("異常系: 存在しない単語帳", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc := NewReviewService(db, repository.NewGormProgressRepository())

		_, err := svc.GetListSummary(ctx, userID, 999)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
