// Package store は、データの永続化機能を提供します。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/stsysd/kusagen/model"
)

// RunStore は生成実行ジャーナルの保存と取得を行うインターフェースです。
type RunStore interface {
	// CreateRun は新しいジャーナルエントリを保存します。
	CreateRun(ctx context.Context, run *model.Run) error
	// ListRuns は指定ユーザーのエントリを新しい順に取得します。
	ListRuns(ctx context.Context, user string, limit int) ([]*model.Run, error)
	// Close はストアの接続を閉じます。
	Close() error
}

// SQLiteStore はSQLiteを使用したRunStoreの実装です。
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore は新しいSQLiteStoreを作成します。
func NewSQLiteStore(dataDir string, migrate func(*sql.DB) error) (*SQLiteStore, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// SQLiteデータベースファイルのパス
	dbPath := filepath.Join(dataDir, "kusagen.db")

	// SQLiteデータベースへの接続
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	// テーブルの初期化
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// CreateRun は新しいジャーナルエントリをデータベースに保存します。
func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.Run) error {
	// バリデーション
	if err := run.Validate(); err != nil {
		return err
	}

	// 日時をRFC3339形式に統一して保存
	formattedTime := run.CreatedAt.UTC().Format(time.RFC3339)

	truncated := 0
	if run.Truncated {
		truncated = 1
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO runs (id, user, activity_type, days, event_count, requests, truncated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID.String(), run.User, run.ActivityType, run.Days, run.EventCount, run.Requests, truncated, formattedTime)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// ListRuns は指定ユーザーのジャーナルエントリを新しい順に取得します。
func (s *SQLiteStore) ListRuns(ctx context.Context, user string, limit int) ([]*model.Run, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, user, activity_type, days, event_count, requests, truncated, created_at
		FROM runs
		WHERE user = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, user, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		var (
			idStr        string
			u            string
			activityType string
			days         int
			eventCount   int
			requests     int
			truncated    int
			createdAtStr string
		)
		if err := rows.Scan(&idStr, &u, &activityType, &days, &eventCount, &requests, &truncated, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
		}
		createdAt, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("invalid run created_at %q: %w", createdAtStr, err)
		}

		run, err := model.LoadRun(id, u, activityType, days, eventCount, requests, truncated != 0, createdAt)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
