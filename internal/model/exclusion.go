// internal/model/exclusion.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// WordExclusion はユーザーが単語帳から非表示にした単語を表します
// 単語本体は共有データのため削除せず、ユーザー単位のマーカーで隠す
// 復元時はレコードごと削除する
type WordExclusion struct {
	ExclusionID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID           int64     `gorm:"not null;index:idx_user_word_list_excl,unique" json:"-"`
	WordID           int64     `gorm:"not null;index:idx_user_word_list_excl,unique" json:"word_id"`
	VocabularyListID int64     `gorm:"not null;index:idx_user_word_list_excl,unique" json:"vocabulary_list_id"`
	ExcludedAt       time.Time `gorm:"not null" json:"excluded_at"`
	CreatedAt        time.Time `json:"-"`
}

func (WordExclusion) TableName() string {
	return "user_word_exclusion"
}
