// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStatus は単語の学習状態を表します
type ProgressStatus string

const (
	StatusNotLearned ProgressStatus = "not_learned"
	StatusNeedReview ProgressStatus = "need_review"
	StatusMastered   ProgressStatus = "mastered"
)

// 記憶レベルの上限
const MaxMemoryLevel = 5

// ReviewIntervals は記憶レベルごとの復習間隔（日数）
// レベルを添字として次回復習日の計算に使う
var ReviewIntervals = [MaxMemoryLevel + 1]int{0, 1, 2, 4, 7, 15}

// WordProgress はユーザーの単語ごとの学習進捗を表します
// (user_id, word_id, vocabulary_list_id) で一意
type WordProgress struct {
	ProgressID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	UserID           int64          `gorm:"not null;index:idx_user_word_list,unique" json:"-"`
	WordID           int64          `gorm:"not null;index:idx_user_word_list,unique" json:"word_id"`
	VocabularyListID int64          `gorm:"not null;index:idx_user_word_list,unique" json:"vocabulary_list_id"`
	Status           ProgressStatus `gorm:"type:varchar(20);not null;default:not_learned" json:"status"`
	MemoryLevel      int            `gorm:"not null;default:0" json:"memory_level"`
	ReviewCount      int            `gorm:"not null;default:0" json:"review_count"`
	ErrorCount       int            `gorm:"not null;default:0" json:"error_count"`
	LearnedAt        *time.Time     `json:"learned_at"`
	LastReviewAt     *time.Time     `json:"last_review_at"`
	NextReviewAt     *time.Time     `gorm:"index" json:"next_review_at"`
	CreatedAt        time.Time      `json:"-"`
	UpdatedAt        time.Time      `json:"-"`
}

func (WordProgress) TableName() string {
	return "user_word_progress"
}

// SubmitReviewRequest は復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	VocabularyListID int64 `json:"vocabulary_list_id" validate:"required"`
	IsKnown          *bool `json:"is_known" validate:"required"`
}

// SubmitReviewResult は復習結果適用後のサービス戻り値
// FirstLearn はこの操作で learned_at が初めて設定されたかどうか
type SubmitReviewResult struct {
	Progress   *WordProgress
	FirstLearn bool
}

// ListProgressSummary は単語帳単位の進捗サマリ
type ListProgressSummary struct {
	Total      int64   `json:"total"`
	Mastered   int64   `json:"mastered"`
	NeedReview int64   `json:"need_review"`
	NotLearned int64   `json:"not_learned"`
	Progress   float64 `json:"progress"` // 掌握率（%）
}
