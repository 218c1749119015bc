// internal/model/sync.go
package model

import "time"

// ProgressSyncInput は同期バッチの1要素を表すDTO
// 省略されたフィールドは「サーバー側の値を維持する」を意味するため、
// ポインタ型で「未指定」と「ゼロ値」を区別する
type ProgressSyncInput struct {
	WordID           int64           `json:"word_id"`
	VocabularyListID int64           `json:"vocabulary_list_id"`
	Status           *ProgressStatus `json:"status,omitempty"`
	LearnedAt        *time.Time      `json:"learned_at,omitempty"`
	LastReviewAt     *time.Time      `json:"last_review_at,omitempty"`
	NextReviewAt     *time.Time      `json:"next_review_at,omitempty"`
	ReviewCount      *int            `json:"review_count,omitempty"`
	ErrorCount       *int            `json:"error_count,omitempty"`
	MemoryLevel      *int            `json:"memory_level,omitempty"`
}

// SyncProgressRequest は学習進捗同期APIのリクエストボディ
type SyncProgressRequest struct {
	Progress []ProgressSyncInput `json:"progress" validate:"required,min=1"`
}

// Resolution は競合解決の判定結果
type Resolution string

const (
	ResolutionClientHigherMemoryLevel Resolution = "client_higher_memory_level"
	ResolutionServerHigherMemoryLevel Resolution = "server_higher_memory_level"
	ResolutionClientHigherReviewCount Resolution = "client_higher_review_count"
	ResolutionServerHigherReviewCount Resolution = "server_higher_review_count"
	ResolutionClientMoreRecent        Resolution = "client_more_recent"
)

// SyncConflict は競合が発生したキーとその解決方法
type SyncConflict struct {
	WordID           int64      `json:"word_id"`
	VocabularyListID int64      `json:"vocabulary_list_id"`
	Resolution       Resolution `json:"resolution"`
}

// SyncProgressResult は学習進捗同期APIのレスポンス
type SyncProgressResult struct {
	SyncedCount int            `json:"synced_count"`
	Conflicts   []SyncConflict `json:"conflicts"`
}

// ExclusionSyncInput は排除単語同期バッチの1要素
type ExclusionSyncInput struct {
	WordID           int64      `json:"word_id"`
	VocabularyListID int64      `json:"vocabulary_list_id"`
	ExcludedAt       *time.Time `json:"excluded_at,omitempty"`
}

// SyncExclusionsRequest は排除単語同期APIのリクエストボディ
type SyncExclusionsRequest struct {
	Exclusions []ExclusionSyncInput `json:"exclusions" validate:"required,min=1"`
}

// SyncExclusionsResult は排除単語同期APIのレスポンス
type SyncExclusionsResult struct {
	SyncedCount int `json:"synced_count"`
}
