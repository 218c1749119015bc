// internal/model/statistics.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// 日付カラムの書式 (カレンダー日付、タイムスタンプではない)
const LearnDateLayout = "2006-01-02"

// UserStatistics はユーザーの学習統計を表します
// 学習済み・習得済みの件数は進捗テーブルから再集計できる派生値であり、
// このテーブル自体は正とはみなさない
type UserStatistics struct {
	StatisticsID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID             int64     `gorm:"not null;uniqueIndex" json:"-"`
	TotalDays          int       `gorm:"not null;default:0" json:"total_days"`
	ContinuousDays     int       `gorm:"not null;default:0" json:"continuous_days"`
	TotalWordsLearned  int       `gorm:"not null;default:0" json:"total_words_learned"`
	TotalWordsMastered int       `gorm:"not null;default:0" json:"total_words_mastered"`
	LastLearnDate      *string   `gorm:"type:varchar(10)" json:"last_learn_date"`
	UpdatedAt          time.Time `json:"-"`
}

func (UserStatistics) TableName() string {
	return "user_statistics"
}

// DailyLearningRecord は1日分の学習実績を表します
// (user_id, learn_date) で一意、件数は加算のみ
type DailyLearningRecord struct {
	RecordID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID           int64     `gorm:"not null;index:idx_user_learn_date,unique" json:"-"`
	LearnDate        string    `gorm:"type:varchar(10);not null;index:idx_user_learn_date,unique" json:"date"`
	NewWordsCount    int       `gorm:"not null;default:0" json:"new_words_count"`
	ReviewWordsCount int       `gorm:"not null;default:0" json:"review_words_count"`
	CreatedAt        time.Time `json:"-"`
}

func (DailyLearningRecord) TableName() string {
	return "daily_learning_record"
}

// StatisticsResponse は統計取得APIのレスポンス
type StatisticsResponse struct {
	TotalDays          int                    `json:"total_days"`
	ContinuousDays     int                    `json:"continuous_days"`
	TotalWordsLearned  int                    `json:"total_words_learned"`
	TotalWordsMastered int                    `json:"total_words_mastered"`
	LastLearnDate      *string                `json:"last_learn_date"`
	DailyRecords       []*DailyLearningRecord `json:"daily_records"`
}

// UpdateStatisticsRequest はクライアントからの統計アップロード
// 各カウンタはサーバー値とのフィールド単位の最大値でマージされる
type UpdateStatisticsRequest struct {
	TotalDays          int     `json:"total_days" validate:"min=0"`
	ContinuousDays     int     `json:"continuous_days" validate:"min=0"`
	TotalWordsLearned  int     `json:"total_words_learned" validate:"min=0"`
	TotalWordsMastered int     `json:"total_words_mastered" validate:"min=0"`
	LastLearnDate      *string `json:"last_learn_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// RecordDailyLearningRequest は日次学習記録APIのリクエストボディ
// learn_date 省略時はサーバーの当日扱い
type RecordDailyLearningRequest struct {
	LearnDate        *string `json:"learn_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NewWordsCount    int     `json:"new_words_count" validate:"min=0"`
	ReviewWordsCount int     `json:"review_words_count" validate:"min=0"`
}
