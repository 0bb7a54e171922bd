package store

import (
	"context"
	"os"
	"testing"

	"github.com/stsysd/kusagen/db"
	"github.com/stsysd/kusagen/model"
)

func setupTestStore(t *testing.T) (*SQLiteStore, func()) {
	// テスト用の一時ディレクトリを作成
	tempDir, err := os.MkdirTemp("", "kusagen-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// テスト用のSQLiteストアを初期化
	store, err := NewSQLiteStore(tempDir, db.Migrate)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to create test store: %v", err)
	}

	// クリーンアップ関数を返す
	cleanup := func() {
		store.Close()
		os.RemoveAll(tempDir)
	}
	return store, cleanup
}

func TestSQLiteStore_CreateAndListRuns(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	first, err := model.NewRun("alice", "all", 365, 120, 3, false)
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}
	if err := store.CreateRun(ctx, first); err != nil {
		t.Fatalf("Failed to save run: %v", err)
	}

	second, err := model.NewRun("alice", "like", 30, 5, 1, true)
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}
	if err := store.CreateRun(ctx, second); err != nil {
		t.Fatalf("Failed to save run: %v", err)
	}

	// 別ユーザーのエントリは混ざらない
	other, err := model.NewRun("bob", "all", 7, 2, 1, false)
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}
	if err := store.CreateRun(ctx, other); err != nil {
		t.Fatalf("Failed to save run: %v", err)
	}

	runs, err := store.ListRuns(ctx, "alice", 100)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs for alice, got %d", len(runs))
	}

	// フィールドが保存・復元される
	byID := map[string]*model.Run{}
	for _, r := range runs {
		byID[r.ID.String()] = r
	}
	got, ok := byID[second.ID.String()]
	if !ok {
		t.Fatal("Expected the second run in the listing")
	}
	if got.ActivityType != "like" || got.Days != 30 || got.EventCount != 5 || got.Requests != 1 {
		t.Errorf("Run fields not round-tripped: %+v", got)
	}
	if !got.Truncated {
		t.Error("Expected truncated flag to be persisted")
	}
}

func TestSQLiteStore_ListRunsLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		run, err := model.NewRun("alice", "all", 7, i, 1, false)
		if err != nil {
			t.Fatalf("Failed to create run: %v", err)
		}
		if err := store.CreateRun(ctx, run); err != nil {
			t.Fatalf("Failed to save run: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, "alice", 3)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit 3, got %d", len(runs))
	}
}

func TestSQLiteStore_ListRunsEmpty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	runs, err := store.ListRuns(context.Background(), "nobody", 10)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}
