// Package stats は、フィードイベントの日次集計機能を提供します。
package stats

import (
	"time"

	"github.com/stsysd/kusagen/model"
)

// DayStats は日付（DateKey書式）からその日の集計へのマップです。
type DayStats map[string]*model.DayStat

// Get は指定日付の集計を返します。エントリがなければnilを返します。
func (s DayStats) Get(date time.Time) *model.DayStat {
	return s[date.Format(DateKey)]
}

// Total は全日の発生回数の合計を返します。
func (s DayStats) Total() int {
	total := 0
	for _, stat := range s {
		total += stat.Count
	}
	return total
}

// Aggregate はイベント列を日次集計に畳み込みます。
// タイムスタンプのないイベント、解析できないイベント、[from, to]の範囲外の
// イベントはスキップします。1件の不正なレコードで集計全体を中断しません。
// 結果は範囲内の(日付, 種別)の多重集合だけで決まり、入力順序に依存しません。
func Aggregate(events []model.Event, from, to time.Time, offsetHours int) DayStats {
	result := make(DayStats)
	for _, ev := range events {
		if ev.Time == "" {
			continue
		}
		date, err := LocalDate(ev.Time, offsetHours)
		if err != nil {
			continue
		}
		if date.Before(from) || date.After(to) {
			continue
		}
		key := date.Format(DateKey)
		stat, ok := result[key]
		if !ok {
			stat = model.NewDayStat()
			result[key] = stat
		}
		stat.Count++
		stat.AddType(ev.Type)
	}
	return result
}
