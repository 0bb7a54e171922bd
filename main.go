// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/stsysd/kusagen/api"
	"github.com/stsysd/kusagen/config"
	"github.com/stsysd/kusagen/db"
	"github.com/stsysd/kusagen/feed"
	"github.com/stsysd/kusagen/heatmap"
	"github.com/stsysd/kusagen/model"
	"github.com/stsysd/kusagen/stats"
	"github.com/stsysd/kusagen/store"
	"github.com/stsysd/kusagen/theme"
)

func main() {
	var (
		user         = flag.String("user", "", "Hugging Face username (or set HF_USERNAME)")
		out          = flag.String("out", "assets/hf-grass.svg", "output SVG path")
		days         = flag.Int("days", 365, "days to show")
		activityType = flag.String("activity-type", "all", "activity type filter (all|discussion|upvote|like)")
		weekStart    = flag.String("week-start", "sunday", "week start day for the grid (sunday|monday)")
		cellSize     = flag.Int("cell-size", 11, "cell size in px")
		cellGap      = flag.Int("cell-gap", 2, "cell gap in px")
		maxRequests  = flag.Int("max-requests", 200, "safety cap for pagination requests")
		sleep        = flag.Duration("sleep", 0, "delay between requests (e.g. 500ms)")
		title        = flag.String("title", "", "title text at the top of the SVG")
		showLegend   = flag.Bool("show-legend", false, "include a small Less/More legend")
		themeName    = flag.String("theme", "light", "color theme for background and palette")
		themeFile    = flag.String("theme-file", "", "optional YAML file with additional themes")
		tzOffset     = flag.Int("tz-offset", 0, "timezone offset hours from UTC for daily buckets (e.g. 9 for KST)")
		serve        = flag.Bool("serve", false, "run as an HTTP server instead of generating once")
	)
	flag.Parse()

	// 設定の読み込み
	cfg := config.NewConfig()

	// テーマ表の構築（設定エラーはネットワークアクセスの前に報告する）
	themes := theme.Builtin()
	if *themeFile != "" {
		loaded, err := theme.LoadFile(*themeFile)
		if err != nil {
			log.Fatalf("Failed to load theme file: %v", err)
		}
		themes = loaded
	}

	// フィードクライアントの作成
	client := feed.NewClient(cfg.FeedURL)

	// サーブモード: リクエストごとにヒートマップを生成するサーバーを起動
	if *serve {
		var runStore store.RunStore
		if cfg.DataDir != "" {
			sqliteStore, err := store.NewSQLiteStore(cfg.DataDir, db.Migrate)
			if err != nil {
				log.Fatalf("Failed to initialize SQLite store: %v", err)
			}
			defer sqliteStore.Close()
			runStore = sqliteStore
		}

		server := api.NewServer(client, runStore, themes, cfg)
		log.Fatal(server.Run(":" + cfg.Port))
	}

	if err := generate(cfg, client, themes, &generateParams{
		User:         *user,
		Out:          *out,
		Days:         *days,
		ActivityType: *activityType,
		WeekStart:    *weekStart,
		CellSize:     *cellSize,
		CellGap:      *cellGap,
		MaxRequests:  *maxRequests,
		Sleep:        *sleep,
		Title:        *title,
		ShowLegend:   *showLegend,
		Theme:        *themeName,
		TZOffset:     *tzOffset,
	}); err != nil {
		log.Fatalf("%v", err)
	}
}

// generateParams はワンショット生成のパラメータです。
type generateParams struct {
	User         string
	Out          string
	Days         int
	ActivityType string
	WeekStart    string
	CellSize     int
	CellGap      int
	MaxRequests  int
	Sleep        time.Duration
	Title        string
	ShowLegend   bool
	Theme        string
	TZOffset     int
}

// generate は1回分のヒートマップ生成を実行します:
// フィード取得 → 日次集計 → SVG描画 → ファイル書き込み（＋ジャーナル記録）。
func generate(cfg *config.Config, client *feed.Client, themes theme.Table, params *generateParams) error {
	// 対象ユーザーの決定（フラグ優先、なければ環境変数）
	user := params.User
	if user == "" {
		user = cfg.User
	}
	if user == "" {
		return fmt.Errorf("missing -user (or set HF_USERNAME)")
	}

	// パラメータの検証（すべてネットワークアクセスの前に行う）
	activityType, err := model.NewActivityType(params.ActivityType)
	if err != nil {
		return err
	}
	weekStart, err := model.NewWeekStart(params.WeekStart)
	if err != nil {
		return err
	}
	th, err := themes.Get(params.Theme)
	if err != nil {
		return err
	}
	if err := th.Validate(); err != nil {
		return err
	}
	if params.MaxRequests < 1 {
		return model.NewValidationError("max-requests must be a positive integer greater than 0")
	}
	dateRange, err := model.NewDateRange(params.Days, params.TZOffset)
	if err != nil {
		return err
	}

	// フィードの取得
	result, err := client.Collect(context.Background(), &feed.CollectParams{
		User:         user,
		ActivityType: activityType,
		Range:        dateRange,
		OffsetHours:  params.TZOffset,
		MaxRequests:  params.MaxRequests,
		Delay:        params.Sleep,
	})
	if err != nil {
		return fmt.Errorf("collect activity for %s: %w", user, err)
	}
	if result.Truncated {
		log.Printf("Warning: pagination stopped at the request cap (%d); the window may be incomplete", params.MaxRequests)
	}

	// 日次集計
	dayStats := stats.Aggregate(result.Events, dateRange.From(), dateRange.To(), params.TZOffset)

	// SVGの生成
	title := params.Title
	if title == "" {
		title = fmt.Sprintf("Hugging Face activity (%s)", user)
	}
	svg, err := heatmap.Render(dayStats, dateRange.From(), dateRange.To(), &heatmap.Options{
		CellSize:       params.CellSize,
		CellGap:        params.CellGap,
		Colors:         th.Colors,
		ReactionColors: th.ReactionColors,
		Background:     th.Background,
		TextColor:      th.Text,
		Title:          title,
		ShowLegend:     params.ShowLegend,
		WeekStart:      weekStart,
	})
	if err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}

	// ファイルへの書き込み
	if dir := filepath.Dir(params.Out); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(params.Out, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	// ジャーナルへの記録（データディレクトリが設定されている場合のみ）
	if cfg.DataDir != "" {
		if err := journalRun(cfg.DataDir, user, activityType.String(), params.Days, result); err != nil {
			// ジャーナルの失敗で生成結果は無効にしない
			log.Printf("Warning: failed to journal run: %v", err)
		}
	}

	fmt.Printf("Saved %s with %d activities\n", params.Out, dayStats.Total())
	return nil
}

// journalRun は生成実行をSQLiteジャーナルに記録します。
func journalRun(dataDir, user, activityType string, days int, result *feed.Result) error {
	sqliteStore, err := store.NewSQLiteStore(dataDir, db.Migrate)
	if err != nil {
		return err
	}
	defer sqliteStore.Close()

	run, err := model.NewRun(user, activityType, days, len(result.Events), result.Requests, result.Truncated)
	if err != nil {
		return err
	}
	return sqliteStore.CreateRun(context.Background(), run)
}
