// Package feed は、アクティビティフィードのページネーション付き取得機能を提供します。
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stsysd/kusagen/model"
	"github.com/stsysd/kusagen/stats"
)

// DefaultBaseURL は公開アクティビティフィードのエンドポイントです。
const DefaultBaseURL = "https://huggingface.co/api/recent-activity"

// defaultPageSize は1リクエストあたりの取得件数です。
const defaultPageSize = 50

// userAgent はフィードへのリクエストに付与するUAです。
const userAgent = "kusagen"

// Client はアクティビティフィードのHTTPクライアントです。
type Client struct {
	http     *http.Client
	baseURL  string
	pageSize int
}

// NewClient は新しいフィードクライアントを作成します。
// baseURLが空の場合はDefaultBaseURLを使用します。
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		baseURL:  baseURL,
		pageSize: defaultPageSize,
	}
}

// page はフィードの1ページ分のレスポンスです。
type page struct {
	RecentActivity []model.Event `json:"recentActivity"`
	Cursor         string        `json:"cursor"`
}

// CollectParams はCollectのパラメータです。
type CollectParams struct {
	User         string              // 対象ユーザー
	ActivityType *model.ActivityType // 種別フィルタ
	Range        *model.DateRange    // 取得対象の日付範囲
	OffsetHours  int                 // 日付バケット用の固定UTCオフセット
	MaxRequests  int                 // ページネーションの安全上限
	Delay        time.Duration       // リクエスト間の待機時間（レート制限への配慮）
}

// Result はCollectの結果です。
type Result struct {
	Events   []model.Event // 重複排除済みのイベント列（フィード順）
	Requests int           // 実行したリクエスト数
	// Truncated は安全上限に達して打ち切られた場合にtrueになります。
	// 打ち切りはエラーではなく、不完全ながら正常な結果として扱います。
	Truncated bool
}

// Collect はカーソル付きフィードを辿り、重複排除済みのイベント一覧を返します。
// 停止条件: 空ページ、カーソルの欠落または再出現、ウィンドウより古いページ、
// リクエスト上限。ページ単位の取得・デコード失敗は全体のエラーになります。
func (c *Client) Collect(ctx context.Context, params *CollectParams) (*Result, error) {
	seen := make(map[string]struct{})
	seenCursors := make(map[string]struct{})
	cursor := ""

	result := &Result{}
	exhausted := false

	for i := 0; i < params.MaxRequests; i++ {
		data, err := c.fetchPage(ctx, params.User, params.ActivityType.String(), cursor)
		result.Requests++
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", result.Requests, err)
		}
		if len(data.RecentActivity) == 0 {
			exhausted = true
			break
		}

		// 重複排除: APIはページの重なりを返すことがあるため、先に見たものが勝つ
		for _, ev := range data.RecentActivity {
			key := ev.DedupeKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result.Events = append(result.Events, ev)
		}

		// カーソルがない、または同じカーソルが再出現した場合は打ち切る
		// （後者は不正なフィードによる無限ループへの対策）
		cursor = data.Cursor
		if cursor == "" {
			exhausted = true
			break
		}
		if _, ok := seenCursors[cursor]; ok {
			exhausted = true
			break
		}
		seenCursors[cursor] = struct{}{}

		// このページの最古のレコードがウィンドウより前なら、以降のページは
		// すべて範囲外なので打ち切る
		oldest := data.RecentActivity[len(data.RecentActivity)-1].Time
		if oldest != "" {
			oldestDate, err := stats.LocalDate(oldest, params.OffsetHours)
			if err == nil && oldestDate.Before(params.Range.From()) {
				exhausted = true
				break
			}
		}

		if params.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(params.Delay):
			}
		}
	}

	result.Truncated = !exhausted
	return result, nil
}

// fetchPage は1ページ分のフィードを取得します。
func (c *Client) fetchPage(ctx context.Context, user, activityType, cursor string) (*page, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.pageSize))
	query.Set("activityType", activityType)
	query.Set("feedType", "user")
	query.Set("entity", user)
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status: %s", resp.Status)
	}

	var data page
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &data, nil
}
