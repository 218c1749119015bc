// internal/service/resolver.go
package service

import (
	"time"

	"go_4_vocab_sync/internal/model"
)

// resolveResult は競合解決の判定結果
// Updated=true の場合のみ Snapshot に書き込むべきレコードが入る
type resolveResult struct {
	Updated    bool
	Conflict   bool
	Resolution model.Resolution
	Snapshot   *model.WordProgress
}

// resolveProgress はサーバー側とクライアント側の進捗を比較し、どちらを残すか決定します
// 決定的な全順序比較で、乱数や現在時刻には依存しない
//
// 比較順: 記憶レベル > 復習回数 > 最終復習日時
// 勝った側のスナップショットを丸ごと採用する (フィールド単位のマージはしない)
// クライアント側で省略されたフィールドは、レベル・回数は0として比較し、
// 採用時はサーバー側の既存値を引き継ぐ
//
// 注意: この方式では、別端末の古い高レベルスナップショットが、不正解による
// 正当なレベルリセットを上書きし得る。既知の制限として仕様通りに維持している
func resolveProgress(server *model.WordProgress, client *model.ProgressSyncInput) resolveResult {
	clientLevel := 0
	if client.MemoryLevel != nil {
		clientLevel = *client.MemoryLevel
	}
	clientCount := 0
	if client.ReviewCount != nil {
		clientCount = *client.ReviewCount
	}

	// 1. 記憶レベルの比較
	if clientLevel > server.MemoryLevel {
		return resolveResult{
			Updated:    true,
			Conflict:   true,
			Resolution: model.ResolutionClientHigherMemoryLevel,
			Snapshot:   mergeClientSnapshot(server, client),
		}
	}
	if clientLevel < server.MemoryLevel {
		// サーバー側が上。書き込みは発生しない
		return resolveResult{
			Conflict:   true,
			Resolution: model.ResolutionServerHigherMemoryLevel,
		}
	}

	// 2. レベルが同じ場合は復習回数の比較
	if clientCount > server.ReviewCount {
		return resolveResult{
			Updated:    true,
			Conflict:   true,
			Resolution: model.ResolutionClientHigherReviewCount,
			Snapshot:   mergeClientSnapshot(server, client),
		}
	}
	if clientCount < server.ReviewCount {
		return resolveResult{
			Conflict:   true,
			Resolution: model.ResolutionServerHigherReviewCount,
		}
	}

	// 3. 回数も同じ場合は最終復習日時の比較
	serverLast := time.Time{}
	if server.LastReviewAt != nil {
		serverLast = *server.LastReviewAt
	}
	clientLast := time.Time{}
	if client.LastReviewAt != nil {
		clientLast = *client.LastReviewAt
	}
	if clientLast.After(serverLast) {
		return resolveResult{
			Updated:    true,
			Conflict:   true,
			Resolution: model.ResolutionClientMoreRecent,
			Snapshot:   mergeClientSnapshot(server, client),
		}
	}

	// 4. 完全に同一 (またはサーバー側が新しい): サーバー側を維持
	return resolveResult{}
}

// mergeClientSnapshot はクライアント側が勝った場合の書き込みレコードを作ります
// クライアントが指定したフィールドで上書きし、省略分はサーバー値を維持する
func mergeClientSnapshot(server *model.WordProgress, client *model.ProgressSyncInput) *model.WordProgress {
	merged := *server
	if client.Status != nil {
		merged.Status = *client.Status
	}
	if client.LearnedAt != nil {
		merged.LearnedAt = client.LearnedAt
	}
	if client.LastReviewAt != nil {
		merged.LastReviewAt = client.LastReviewAt
	}
	if client.NextReviewAt != nil {
		merged.NextReviewAt = client.NextReviewAt
	}
	if client.ReviewCount != nil {
		merged.ReviewCount = *client.ReviewCount
	}
	if client.ErrorCount != nil {
		merged.ErrorCount = *client.ErrorCount
	}
	if client.MemoryLevel != nil {
		merged.MemoryLevel = *client.MemoryLevel
	}
	return &merged
}
