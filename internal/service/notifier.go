// internal/service/notifier.go
package service

import (
	"context"
	"fmt"

	"go_4_vocab_sync/internal/middleware"
)

// NotificationSender は連続学習日数の節目をユーザーへ知らせる境界です
// 送信失敗は呼び出し元でログのみとし、統計更新のコミットには影響させない
type NotificationSender interface {
	NotifyStreakMilestone(ctx context.Context, userID int64, continuousDays int) error
}

// MailStreakNotifier はメール経由の通知実装です
// 宛先はユーザーIDからの解決関数で受け取る (ユーザーマスタは別サブシステムの持ち物)
type MailStreakNotifier struct {
	Mailer  Mailer
	Resolve func(ctx context.Context, userID int64) (string, error)
}

func (n *MailStreakNotifier) NotifyStreakMilestone(ctx context.Context, userID int64, continuousDays int) error {
	to, err := n.Resolve(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve mail address for user %d: %w", userID, err)
	}

	subject := fmt.Sprintf("連続学習%d日達成！", continuousDays)
	body := fmt.Sprintf(
		"おめでとうございます！\n連続学習日数が%d日に到達しました。\nこの調子で学習を続けましょう。",
		continuousDays,
	)
	return n.Mailer.Send(ctx, to, subject, body)
}

// LogStreakNotifier は開発環境やテスト用のログ出力のみの実装です
type LogStreakNotifier struct{}

func (n *LogStreakNotifier) NotifyStreakMilestone(ctx context.Context, userID int64, continuousDays int) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Streak milestone reached (LogStreakNotifier) ---",
		"user_id", userID,
		"continuous_days", continuousDays,
	)
	return nil
}
