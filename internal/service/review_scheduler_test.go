// internal/service/review_scheduler_test.go
package service

import (
	"testing"
	"time"

	"go_4_vocab_sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_applyReviewOutcome(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		initial          model.WordProgress
		known            bool
		wantLevel        int
		wantStatus       model.ProgressStatus
		wantReviewCount  int
		wantErrorCount   int
		wantNextReviewAt time.Time
	}{
		{
			name:             "正常系: 正解 -> レベル0から1へ、翌日復習",
			initial:          model.WordProgress{Status: model.StatusNotLearned, MemoryLevel: 0},
			known:            true,
			wantLevel:        1,
			wantStatus:       model.StatusNeedReview,
			wantReviewCount:  1,
			wantErrorCount:   0,
			wantNextReviewAt: now.AddDate(0, 0, 1),
		},
		{
			name:             "正常系: 正解 -> レベル2から3へ、4日後復習",
			initial:          model.WordProgress{Status: model.StatusNeedReview, MemoryLevel: 2, ReviewCount: 2},
			known:            true,
			wantLevel:        3,
			wantStatus:       model.StatusNeedReview,
			wantReviewCount:  3,
			wantErrorCount:   0,
			wantNextReviewAt: now.AddDate(0, 0, 4),
		},
		{
			name:             "正常系: 正解 -> レベル4から5へ、習得済みになり15日後復習",
			initial:          model.WordProgress{Status: model.StatusNeedReview, MemoryLevel: 4, ReviewCount: 4},
			known:            true,
			wantLevel:        5,
			wantStatus:       model.StatusMastered,
			wantReviewCount:  5,
			wantErrorCount:   0,
			wantNextReviewAt: now.AddDate(0, 0, 15),
		},
		{
			name:             "正常系: 正解 -> レベル5は上限で維持、習得済みのまま",
			initial:          model.WordProgress{Status: model.StatusMastered, MemoryLevel: 5, ReviewCount: 9},
			known:            true,
			wantLevel:        5,
			wantStatus:       model.StatusMastered,
			wantReviewCount:  10,
			wantErrorCount:   0,
			wantNextReviewAt: now.AddDate(0, 0, 15),
		},
		{
			name:             "正常系: 不正解 -> レベル4からレベル1へ強制リセット",
			initial:          model.WordProgress{Status: model.StatusNeedReview, MemoryLevel: 4, ReviewCount: 4, ErrorCount: 1},
			known:            false,
			wantLevel:        1,
			wantStatus:       model.StatusNeedReview,
			wantReviewCount:  4,
			wantErrorCount:   2,
			wantNextReviewAt: now.AddDate(0, 0, 1),
		},
		{
			name:             "正常系: 不正解 -> 習得済みでも復習対象に戻る",
			initial:          model.WordProgress{Status: model.StatusMastered, MemoryLevel: 5, ReviewCount: 5},
			known:            false,
			wantLevel:        1,
			wantStatus:       model.StatusNeedReview,
			wantReviewCount:  5,
			wantErrorCount:   1,
			wantNextReviewAt: now.AddDate(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := tt.initial

			applyReviewOutcome(&progress, tt.known, now)

			assert.Equal(t, tt.wantLevel, progress.MemoryLevel)
			assert.Equal(t, tt.wantStatus, progress.Status)
			assert.Equal(t, tt.wantReviewCount, progress.ReviewCount)
			assert.Equal(t, tt.wantErrorCount, progress.ErrorCount)
			require.NotNil(t, progress.NextReviewAt)
			assert.Equal(t, tt.wantNextReviewAt, *progress.NextReviewAt)
			require.NotNil(t, progress.LastReviewAt)
			assert.Equal(t, now, *progress.LastReviewAt)
			// 結果が適用された時点で not_learned には戻らない
			assert.NotEqual(t, model.StatusNotLearned, progress.Status)
		})
	}
}

func Test_applyReviewOutcome_LearnedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("正常系: 初回適用時のみ learned_at を設定", func(t *testing.T) {
		progress := model.WordProgress{Status: model.StatusNotLearned}

		applyReviewOutcome(&progress, true, now)
		require.NotNil(t, progress.LearnedAt)
		assert.Equal(t, now, *progress.LearnedAt)

		// 2回目以降は変更されない
		later := now.AddDate(0, 0, 3)
		applyReviewOutcome(&progress, false, later)
		assert.Equal(t, now, *progress.LearnedAt)
		assert.Equal(t, later, *progress.LastReviewAt)
	})
}
