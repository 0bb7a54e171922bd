// Package stats は、フィードイベントの日次集計機能を提供します。
package stats

import (
	"fmt"
	"time"

	"github.com/stsysd/kusagen/model"
)

// DateKey はマップのキーに使う日付の書式です。
const DateKey = "2006-01-02"

// localDateLayouts はゾーン指定のないタイムスタンプ用のフォールバック書式です。
// ゾーンがない場合はUTCとして解釈します。
var localDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LocalDate はISO-8601のタイムスタンプ文字列を、UTC+offsetHoursの固定オフセット
// ゾーンにおけるカレンダー日付へ変換します。
// 末尾の"Z"はUTCとして扱い、ゾーン指定がなければUTCと見なします。
func LocalDate(timestamp string, offsetHours int) (time.Time, error) {
	instant, err := parseISO8601(timestamp)
	if err != nil {
		return time.Time{}, err
	}
	return model.DateOf(instant.In(model.FixedZone(offsetHours))), nil
}

// parseISO8601 parses an ISO-8601 timestamp, assuming UTC when no zone is
// given.
func parseISO8601(timestamp string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, timestamp); err == nil {
		return t, nil
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, timestamp, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp: %q", timestamp)
}
