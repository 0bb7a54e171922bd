// Package api はkusagenのAPIサーバー実装を提供します。
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/stsysd/kusagen/config"
	"github.com/stsysd/kusagen/feed"
	"github.com/stsysd/kusagen/heatmap"
	"github.com/stsysd/kusagen/model"
	"github.com/stsysd/kusagen/stats"
	"github.com/stsysd/kusagen/store"
	"github.com/stsysd/kusagen/theme"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router *http.ServeMux
	client *feed.Client
	store  store.RunStore // nilの場合はジャーナル無効
	themes theme.Table
	config *config.Config
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Error: message,
		Code:  statusCode,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(client *feed.Client, runStore store.RunStore, themes theme.Table, config *config.Config) *Server {
	s := &Server{
		router: http.NewServeMux(),
		client: client,
		store:  runStore,
		themes: themes,
		config: config,
	}
	s.routes()
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// ヘルスチェックエンドポイントは認証不要
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)

	// ジャーナルAPIは認証ミドルウェアを適用
	securedHandler := http.NewServeMux()
	securedHandler.HandleFunc("GET /api/v0/runs", s.handleListRuns)
	s.router.Handle("/api/", s.authMiddleware(securedHandler))

	// Grass endpoints - support both with and without .svg extension
	s.router.HandleFunc("GET /u/{user}/grass.svg", s.handleGetGrass)
	s.router.HandleFunc("GET /u/{user}/grass", s.handleGetGrass)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := map[string]string{"status": "ok"}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// GetGrassParams represents parameters for generating a grass image.
type GetGrassParams struct {
	User         string
	ActivityType *model.ActivityType
	WeekStart    *model.WeekStart
	Theme        *theme.Theme
	Days         int
	OffsetHours  int
	CellSize     int
	CellGap      int
	MaxRequests  int
	Title        string
	ShowLegend   bool
}

// queryInt parses an integer query parameter with a default value.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError(fmt.Sprintf("invalid %s parameter: must be an integer", name))
	}
	return value, nil
}

// NewGetGrassParams creates parameters for grass generation from HTTP request.
func NewGetGrassParams(r *http.Request, themes theme.Table) (*GetGrassParams, error) {
	user := r.PathValue("user")
	if user == "" {
		return nil, model.NewValidationError("user is required")
	}

	query := r.URL.Query()

	activityType, err := model.NewActivityType(query.Get("activity_type"))
	if err != nil {
		return nil, err
	}

	weekStart, err := model.NewWeekStart(query.Get("week_start"))
	if err != nil {
		return nil, err
	}

	themeName := query.Get("theme")
	if themeName == "" {
		themeName = "light"
	}
	th, err := themes.Get(themeName)
	if err != nil {
		return nil, model.NewValidationError(fmt.Sprintf("unsupported theme: %s", themeName))
	}

	days, err := queryInt(r, "days", 365)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, model.NewValidationError("days must be a positive integer greater than 0")
	}

	offsetHours, err := queryInt(r, "tz_offset", 0)
	if err != nil {
		return nil, err
	}

	cellSize, err := queryInt(r, "cell_size", 11)
	if err != nil {
		return nil, err
	}
	cellGap, err := queryInt(r, "cell_gap", 2)
	if err != nil {
		return nil, err
	}
	if cellSize < 1 || cellGap < 0 {
		return nil, model.NewValidationError("cell dimensions must be positive")
	}

	maxRequests, err := queryInt(r, "max_requests", 200)
	if err != nil {
		return nil, err
	}
	if maxRequests < 1 {
		return nil, model.NewValidationError("max_requests must be a positive integer greater than 0")
	}

	return &GetGrassParams{
		User:         user,
		ActivityType: activityType,
		WeekStart:    weekStart,
		Theme:        th,
		Days:         days,
		OffsetHours:  offsetHours,
		CellSize:     cellSize,
		CellGap:      cellGap,
		MaxRequests:  maxRequests,
		Title:        query.Get("title"),
		ShowLegend:   query.Has("legend"),
	}, nil
}

// handleGetGrass は指定ユーザーのアクティビティヒートマップを生成・返却する
// ハンドラーです。リクエストごとにフィードを取得し直します（キャッシュなし）。
func (s *Server) handleGetGrass(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewGetGrassParams(r, s.themes)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	dateRange, err := model.NewDateRange(params.Days, params.OffsetHours)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// フィードの取得
	result, err := s.client.Collect(r.Context(), &feed.CollectParams{
		User:         params.User,
		ActivityType: params.ActivityType,
		Range:        dateRange,
		OffsetHours:  params.OffsetHours,
		MaxRequests:  params.MaxRequests,
	})
	if err != nil {
		log.Printf("Error collecting activity for %s: %v", params.User, err)
		writeJSONError(w, "Failed to fetch activity feed", http.StatusBadGateway)
		return
	}

	// 日次集計とSVGの生成
	dayStats := stats.Aggregate(result.Events, dateRange.From(), dateRange.To(), params.OffsetHours)

	svg, err := heatmap.Render(dayStats, dateRange.From(), dateRange.To(), &heatmap.Options{
		CellSize:       params.CellSize,
		CellGap:        params.CellGap,
		Colors:         params.Theme.Colors,
		ReactionColors: params.Theme.ReactionColors,
		Background:     params.Theme.Background,
		TextColor:      params.Theme.Text,
		Title:          params.Title,
		ShowLegend:     params.ShowLegend,
		WeekStart:      params.WeekStart,
	})
	if err != nil {
		log.Printf("Error rendering heatmap for %s: %v", params.User, err)
		writeJSONError(w, "Failed to render heatmap", http.StatusInternalServerError)
		return
	}

	// ジャーナルへの記録（失敗しても画像の返却は続行する）
	if s.store != nil {
		run, err := model.NewRun(params.User, params.ActivityType.String(), params.Days,
			len(result.Events), result.Requests, result.Truncated)
		if err != nil {
			log.Printf("Error creating run entry: %v", err)
		} else if err := s.store.CreateRun(r.Context(), run); err != nil {
			log.Printf("Error saving run entry: %v", err)
		}
	}

	// レスポンスの返却
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// ListRunsParams represents parameters for listing journal runs.
type ListRunsParams struct {
	User  string
	Limit int
}

// NewListRunsParams creates parameters for run listing from HTTP request.
func NewListRunsParams(r *http.Request) (*ListRunsParams, error) {
	query := r.URL.Query()

	user := query.Get("user")
	if user == "" {
		return nil, model.NewValidationError("user is required")
	}

	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, model.NewValidationError("limit must be greater than 0")
	}

	return &ListRunsParams{User: user, Limit: limit}, nil
}

// ListRunsResponse はジャーナル一覧取得のレスポンスです。
type ListRunsResponse struct {
	Items []*model.Run `json:"items"`
}

// handleListRuns は生成実行ジャーナルの一覧を取得するハンドラーです。
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSONError(w, "Run journal is not configured on server", http.StatusNotFound)
		return
	}

	// パラメータを検証
	params, err := NewListRunsParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	runs, err := s.store.ListRuns(r.Context(), params.User, params.Limit)
	if err != nil {
		log.Printf("Error retrieving runs: %v", err)
		writeJSONError(w, "Failed to retrieve runs", http.StatusInternalServerError)
		return
	}

	// レスポンスの構築
	response := &ListRunsResponse{Items: runs}
	// 空配列を返すためにnilチェック
	if response.Items == nil {
		response.Items = []*model.Run{}
	}

	// レスポンスの返却
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Run はサーバーを指定されたアドレスで起動します。
func (s *Server) Run(addr string) error {
	log.Printf("Server starting on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
