// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Run は1回の生成実行を記録するジャーナルエントリです。
// フェッチのキャッシュではなく、打ち切りの有無などの診断情報を残すためのもの
// です（実行ごとにウィンドウ全体を再取得します）。
type Run struct {
	ID           uuid.UUID `json:"id"`
	User         string    `json:"user"`          // 対象ユーザー
	ActivityType string    `json:"activity_type"` // 種別フィルタ
	Days         int       `json:"days"`          // ウィンドウ長（日数）
	EventCount   int       `json:"event_count"`   // 重複排除後のイベント数
	Requests     int       `json:"requests"`      // 実行したリクエスト数
	Truncated    bool      `json:"truncated"`     // 安全上限で打ち切られたか
	CreatedAt    time.Time `json:"created_at"`    // 実行日時
}

// NewRun は新しいRunインスタンスを作成します。
func NewRun(user, activityType string, days, eventCount, requests int, truncated bool) (*Run, error) {
	run := &Run{
		ID:           uuid.New(),
		User:         user,
		ActivityType: activityType,
		Days:         days,
		EventCount:   eventCount,
		Requests:     requests,
		Truncated:    truncated,
		CreatedAt:    time.Now(),
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

// LoadRun は既存のRunインスタンスを作成します。
func LoadRun(id uuid.UUID, user, activityType string, days, eventCount, requests int, truncated bool, createdAt time.Time) (*Run, error) {
	run := &Run{
		ID:           id,
		User:         user,
		ActivityType: activityType,
		Days:         days,
		EventCount:   eventCount,
		Requests:     requests,
		Truncated:    truncated,
		CreatedAt:    createdAt,
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

// Validate はジャーナルエントリのデータバリデーションを行います。
func (r *Run) Validate() error {
	if r.User == "" {
		return errors.New("user is required")
	}
	if r.Days < 1 {
		return errors.New("days must be positive")
	}
	if r.EventCount < 0 {
		return errors.New("event_count must not be negative")
	}
	if r.CreatedAt.IsZero() {
		return errors.New("created_at is required")
	}
	return nil
}
