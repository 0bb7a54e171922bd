package stats

import (
	"testing"
	"time"

	"github.com/stsysd/kusagen/model"
)

func window(t *testing.T, from, to string) (time.Time, time.Time) {
	t.Helper()
	fromDate, err := time.Parse(DateKey, from)
	if err != nil {
		t.Fatalf("Invalid from date: %v", err)
	}
	toDate, err := time.Parse(DateKey, to)
	if err != nil {
		t.Fatalf("Invalid to date: %v", err)
	}
	return fromDate, toDate
}

func TestAggregate_WindowBoundaries(t *testing.T) {
	from, to := window(t, "2025-06-01", "2025-06-07")

	events := []model.Event{
		{Time: "2025-05-31T23:59:59Z", Type: "discussion"}, // 1日前: 除外
		{Time: "2025-06-01T00:00:00Z", Type: "discussion"}, // 開始日ちょうど: 含む
		{Time: "2025-06-07T23:59:59Z", Type: "like"},       // 終了日ちょうど: 含む
		{Time: "2025-06-08T00:00:00Z", Type: "like"},       // 1日後: 除外
	}

	result := Aggregate(events, from, to, 0)

	if len(result) != 2 {
		t.Fatalf("Expected 2 days in aggregate, got %d", len(result))
	}
	if stat := result["2025-06-01"]; stat == nil || stat.Count != 1 {
		t.Errorf("Expected count 1 on start date, got %+v", stat)
	}
	if stat := result["2025-06-07"]; stat == nil || stat.Count != 1 {
		t.Errorf("Expected count 1 on end date, got %+v", stat)
	}
	if _, ok := result["2025-05-31"]; ok {
		t.Error("Day before the window must be excluded")
	}
	if _, ok := result["2025-06-08"]; ok {
		t.Error("Day after the window must be excluded")
	}
}

func TestAggregate_SkipsMalformedRecords(t *testing.T) {
	from, to := window(t, "2025-06-01", "2025-06-07")

	events := []model.Event{
		{Time: "", Type: "discussion"},           // タイムスタンプなし: スキップ
		{Time: "not-a-date", Type: "discussion"}, // 不正: スキップ
		{Time: "2025-06-03T10:00:00Z", Type: "discussion"},
	}

	// 不正なレコードがあっても集計は続行する
	result := Aggregate(events, from, to, 0)

	if len(result) != 1 {
		t.Fatalf("Expected 1 day in aggregate, got %d", len(result))
	}
	if stat := result["2025-06-03"]; stat == nil || stat.Count != 1 {
		t.Errorf("Expected count 1 on 2025-06-03, got %+v", stat)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	from, to := window(t, "2025-06-01", "2025-06-07")

	events := []model.Event{
		{Time: "2025-06-02T10:00:00Z", Type: "discussion"},
		{Time: "2025-06-02T11:00:00Z", Type: "upvote"},
		{Time: "2025-06-05T09:00:00Z", Type: "like"},
	}
	reversed := []model.Event{events[2], events[1], events[0]}

	a := Aggregate(events, from, to, 0)
	b := Aggregate(reversed, from, to, 0)

	if len(a) != len(b) {
		t.Fatalf("Expected same number of days, got %d and %d", len(a), len(b))
	}
	for key, stat := range a {
		other := b[key]
		if other == nil {
			t.Errorf("Day %s missing in reversed aggregate", key)
			continue
		}
		if stat.Count != other.Count {
			t.Errorf("Day %s: count %d != %d", key, stat.Count, other.Count)
		}
		if len(stat.Types) != len(other.Types) {
			t.Errorf("Day %s: type sets differ", key)
		}
	}
}

func TestAggregate_TypeSets(t *testing.T) {
	from, to := window(t, "2025-06-01", "2025-06-07")

	events := []model.Event{
		{Time: "2025-06-02T10:00:00Z", Type: "discussion"},
		{Time: "2025-06-02T11:00:00Z", Type: "upvote"},
		{Time: "2025-06-02T12:00:00Z", Type: "upvote"},
		{Time: "2025-06-05T09:00:00Z", Type: "like"},
		{Time: "2025-06-05T10:00:00Z", Type: "upvote"},
	}

	result := Aggregate(events, from, to, 0)
	reactions := map[string]struct{}{"upvote": {}, "like": {}}

	// discussionとupvoteが混在する日はリアクション限定ではない
	mixed := result["2025-06-02"]
	if mixed == nil || mixed.Count != 3 {
		t.Fatalf("Expected count 3 on 2025-06-02, got %+v", mixed)
	}
	if mixed.ReactionOnly(reactions) {
		t.Error("Day mixing discussion and upvote must not be reaction-only")
	}

	// upvoteとlikeだけの日はリアクション限定
	quiet := result["2025-06-05"]
	if quiet == nil || quiet.Count != 2 {
		t.Fatalf("Expected count 2 on 2025-06-05, got %+v", quiet)
	}
	if !quiet.ReactionOnly(reactions) {
		t.Error("Day with only upvote and like must be reaction-only")
	}
}

func TestAggregate_NoZeroEntries(t *testing.T) {
	from, to := window(t, "2025-06-01", "2025-06-07")

	result := Aggregate(nil, from, to, 0)
	if len(result) != 0 {
		t.Errorf("Expected empty aggregate for no events, got %d entries", len(result))
	}
	if result.Total() != 0 {
		t.Errorf("Expected total 0, got %d", result.Total())
	}
}
