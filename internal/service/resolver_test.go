// internal/service/resolver_test.go
package service

import (
	"testing"
	"time"

	"go_4_vocab_sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int                          { return &v }
func timePtr(t time.Time) *time.Time             { return &t }
func statusPtr(s model.ProgressStatus) *model.ProgressStatus { return &s }

func Test_resolveProgress(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		server         *model.WordProgress
		client         *model.ProgressSyncInput
		wantUpdated    bool
		wantConflict   bool
		wantResolution model.Resolution
	}{
		{
			name: "正常系: クライアントの記憶レベルが上 -> クライアント採用",
			server: &model.WordProgress{
				MemoryLevel: 2, ReviewCount: 5,
				LastReviewAt: timePtr(base),
			},
			client: &model.ProgressSyncInput{
				MemoryLevel: intPtr(4), ReviewCount: intPtr(3),
				LastReviewAt: timePtr(base.Add(-time.Hour)),
			},
			wantUpdated:    true,
			wantConflict:   true,
			wantResolution: model.ResolutionClientHigherMemoryLevel,
		},
		{
			name: "正常系: サーバーの記憶レベルが上 -> サーバー維持、書き込みなし",
			server: &model.WordProgress{
				MemoryLevel: 5, ReviewCount: 1,
			},
			client: &model.ProgressSyncInput{
				MemoryLevel: intPtr(3), ReviewCount: intPtr(10),
				LastReviewAt: timePtr(base.Add(24 * time.Hour)),
			},
			wantUpdated:    false,
			wantConflict:   true,
			wantResolution: model.ResolutionServerHigherMemoryLevel,
		},
		{
			name: "正常系: レベル同値でクライアントの復習回数が上",
			server: &model.WordProgress{
				MemoryLevel: 3, ReviewCount: 4,
			},
			client: &model.ProgressSyncInput{
				MemoryLevel: intPtr(3), ReviewCount: intPtr(7),
			},
			wantUpdated:    true,
			wantConflict:   true,
			wantResolution: model.ResolutionClientHigherReviewCount,
		},
		{
			name: "正常系: レベル同値でサーバーの復習回数が上",
			server: &model.WordProgress{
				MemoryLevel: 3, ReviewCount: 9,
			},
			client: &model.ProgressSyncInput{
				MemoryLevel: intPtr(3), ReviewCount: intPtr(2),
			},
			wantUpdated:    false,
			wantConflict:   true,
			wantResolution: model.ResolutionServerHigherReviewCount,
		},
		{
			name: "正常系: レベル・回数同値でクライアントの最終復習が新しい",
			server: &model.WordProgress{
				MemoryLevel: 2, ReviewCount: 3,
				LastReviewAt: timePtr(base),
			},
			client: &model.ProgressSyncInput{
				MemoryLevel: intPtr(2), ReviewCount: intPtr(3),
				LastReviewAt: timePtr(base.Add(time.Minute)),
			},
			wantUpdated:    true,
			wantConflict:   true,
			wantResolution: model.ResolutionClientMoreRecent,
		},
		{
			name: "正常系: 完全同値 -> サーバー維持、競合なし",
			server: &model.WordProgress{
				MemoryLevel: 2, ReviewCount: 3,
				LastReviewAt: timePtr(base),
			},
			client: &model.ProgressSyncInput{
				MemoryLevel: intPtr(2), ReviewCount: intPtr(3),
				LastReviewAt: timePtr(base),
			},
			wantUpdated:  false,
			wantConflict: false,
		},
		{
			name: "正常系: サーバーの最終復習が新しい -> サーバー維持、競合なし",
			server: &model.WordProgress{
				MemoryLevel: 2, ReviewCount: 3,
				LastReviewAt: timePtr(base.Add(time.Hour)),
			},
			client: &model.ProgressSyncInput{
				MemoryLevel: intPtr(2), ReviewCount: intPtr(3),
				LastReviewAt: timePtr(base),
			},
			wantUpdated:  false,
			wantConflict: false,
		},
		{
			name: "正常系: クライアント側のレベル・回数省略は0として比較",
			server: &model.WordProgress{
				MemoryLevel: 1, ReviewCount: 1,
			},
			client: &model.ProgressSyncInput{
				LastReviewAt: timePtr(base.Add(48 * time.Hour)),
			},
			wantUpdated:    false,
			wantConflict:   true,
			wantResolution: model.ResolutionServerHigherMemoryLevel,
		},
		{
			name: "正常系: 最終復習日時が両方未設定なら同値扱い",
			server: &model.WordProgress{
				MemoryLevel: 0, ReviewCount: 0,
			},
			client:       &model.ProgressSyncInput{},
			wantUpdated:  false,
			wantConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveProgress(tt.server, tt.client)

			assert.Equal(t, tt.wantUpdated, got.Updated)
			assert.Equal(t, tt.wantConflict, got.Conflict)
			if tt.wantConflict {
				assert.Equal(t, tt.wantResolution, got.Resolution)
			}
			if tt.wantUpdated {
				require.NotNil(t, got.Snapshot)
			} else {
				assert.Nil(t, got.Snapshot)
			}
		})
	}
}

func Test_resolveProgress_SnapshotMerge(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: クライアント採用時は指定フィールドのみ上書き", func(t *testing.T) {
		learnedAt := base.AddDate(0, 0, -10)
		server := &model.WordProgress{
			UserID: 1, WordID: 10, VocabularyListID: 100,
			Status:      model.StatusNeedReview,
			MemoryLevel: 2, ReviewCount: 3, ErrorCount: 2,
			LearnedAt:    &learnedAt,
			LastReviewAt: timePtr(base.Add(-time.Hour)),
		}
		client := &model.ProgressSyncInput{
			WordID: 10, VocabularyListID: 100,
			Status:       statusPtr(model.StatusMastered),
			MemoryLevel:  intPtr(5),
			ReviewCount:  intPtr(6),
			LastReviewAt: timePtr(base),
			// ErrorCount, LearnedAt, NextReviewAt は省略
		}

		got := resolveProgress(server, client)
		require.True(t, got.Updated)
		require.NotNil(t, got.Snapshot)

		// クライアント指定分は上書き
		assert.Equal(t, model.StatusMastered, got.Snapshot.Status)
		assert.Equal(t, 5, got.Snapshot.MemoryLevel)
		assert.Equal(t, 6, got.Snapshot.ReviewCount)
		assert.Equal(t, base, *got.Snapshot.LastReviewAt)
		// 省略分はサーバー値を維持
		assert.Equal(t, 2, got.Snapshot.ErrorCount)
		require.NotNil(t, got.Snapshot.LearnedAt)
		assert.Equal(t, learnedAt, *got.Snapshot.LearnedAt)
		// キーは変わらない
		assert.Equal(t, int64(1), got.Snapshot.UserID)
		assert.Equal(t, int64(10), got.Snapshot.WordID)
	})

	t.Run("正常系: 判定は決定的で入力を変更しない", func(t *testing.T) {
		server := &model.WordProgress{MemoryLevel: 3, ReviewCount: 2}
		client := &model.ProgressSyncInput{MemoryLevel: intPtr(4), ReviewCount: intPtr(1)}

		first := resolveProgress(server, client)
		second := resolveProgress(server, client)

		assert.Equal(t, first.Updated, second.Updated)
		assert.Equal(t, first.Resolution, second.Resolution)
		// サーバー側レコードは読み取り専用扱い
		assert.Equal(t, 3, server.MemoryLevel)
		assert.Equal(t, 2, server.ReviewCount)
	})
}
