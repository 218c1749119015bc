// internal/service/review_scheduler.go
package service

import (
	"time"

	"go_4_vocab_sync/internal/model"
)

// applyReviewOutcome は復習結果を進捗レコードへ適用します
// 純粋な状態遷移で、I/Oは行わない。現在時刻は引数で受け取る
//
// 正解: レベル+1 (上限5)、レベル5到達で mastered、次回復習日は間隔表から計算
// 不正解: 前のレベルに関係なくレベル1へ戻し、翌日復習
// 一度でも結果が適用されたレコードは not_learned には戻らない
func applyReviewOutcome(progress *model.WordProgress, known bool, now time.Time) {
	if progress.LearnedAt == nil {
		// 初回学習日時は一度だけ設定し、以後は変更しない
		learnedAt := now
		progress.LearnedAt = &learnedAt
	}
	lastReviewAt := now
	progress.LastReviewAt = &lastReviewAt

	if known {
		nextLevel := progress.MemoryLevel + 1
		if nextLevel > model.MaxMemoryLevel {
			nextLevel = model.MaxMemoryLevel
		}
		if nextLevel == model.MaxMemoryLevel {
			progress.Status = model.StatusMastered
		} else {
			progress.Status = model.StatusNeedReview
		}
		nextReviewAt := now.AddDate(0, 0, model.ReviewIntervals[nextLevel])
		progress.NextReviewAt = &nextReviewAt
		progress.ReviewCount++
		progress.MemoryLevel = nextLevel
		return
	}

	// 不正解
	progress.Status = model.StatusNeedReview
	nextReviewAt := now.AddDate(0, 0, model.ReviewIntervals[1])
	progress.NextReviewAt = &nextReviewAt
	progress.ErrorCount++
	progress.MemoryLevel = 1
}
