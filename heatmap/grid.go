package heatmap

import (
	"time"

	"github.com/stsysd/kusagen/model"
)

// Cell は描画グリッド内の位置です。週が列、曜日が行になります。
type Cell struct {
	Week int // 0始まりの週インデックス
	Row  int // 0始まりの曜日インデックス（0 = 週の開始曜日）
}

// GridStart はウィンドウの開始日を直近の週の開始曜日まで遡らせます。
// ウィンドウが週の途中から始まっても、グリッドは常に週の境界から始まります。
func GridStart(start time.Time, ws *model.WeekStart) time.Time {
	return ws.AlignBack(start)
}

// CellFor はグリッド範囲内の日付に対応するセル位置を返します。
func CellFor(date, gridStart time.Time, ws *model.WeekStart) Cell {
	days := int(date.Sub(gridStart).Hours() / 24)
	return Cell{Week: days / 7, Row: ws.Index(date)}
}

// Weeks はgridStartからendまでを覆うのに必要な週数を返します。
func Weeks(gridStart, end time.Time) int {
	totalDays := int(end.Sub(gridStart).Hours()/24) + 1
	return (totalDays + 6) / 7
}
