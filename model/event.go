// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import "strings"

// Event はアクティビティフィードの1レコードを表すモデルです。
// フィードのJSONをそのままデコードして使用し、取得後は変更しません。
type Event struct {
	EventID    string `json:"eventId"`    // イベントID（欠けている場合あり）
	Time       string `json:"time"`       // ISO-8601形式のタイムスタンプ
	Type       string `json:"type"`       // アクティビティ種別（discussion / upvote / like など）
	RepoID     string `json:"repoId"`     // 関連リポジトリID
	TargetType string `json:"targetType"` // 対象の種別
}

// DedupeKey は重複排除用のキーを導出します。
// eventIdがあればそれを使い、なければ複合キーにフォールバックします。
// 同じキーを持つイベントは1回の発生として扱います（先勝ち）。
func (e *Event) DedupeKey() string {
	if e.EventID != "" {
		return "event:" + e.EventID
	}
	return strings.Join([]string{e.Time, e.Type, e.RepoID, e.TargetType}, "|")
}
