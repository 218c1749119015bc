// internal/model/word.go
package model

import "time"

// Word は共有の単語マスタを表します
// 管理はCRUD層（別サブシステム）の責務のため、この層では読み取り専用
type Word struct {
	WordID     int64     `gorm:"primaryKey" json:"word_id"`
	Term       string    `gorm:"not null" json:"term"`
	Definition string    `gorm:"not null" json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Word) TableName() string {
	return "words"
}

// VocabularyList は単語帳マスタを表します（読み取り専用）
// WordCount は単語帳に属する単語数の非正規化値で、進捗サマリの母数に使う
type VocabularyList struct {
	VocabularyListID int64     `gorm:"primaryKey" json:"vocabulary_list_id"`
	Name             string    `gorm:"not null" json:"name"`
	WordCount        int64     `gorm:"not null;default:0" json:"word_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (VocabularyList) TableName() string {
	return "vocabulary_lists"
}
