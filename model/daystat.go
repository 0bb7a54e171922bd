// Package model は、アプリケーションのデータモデル定義を提供します。
package model

// DayStat は1日分のアクティビティ集計を表すモデルです。
// 集計結果に現れない日付は「活動なし」を意味します（0件のエントリは作らない）。
type DayStat struct {
	Count int                 // その日の発生回数
	Types map[string]struct{} // 観測されたアクティビティ種別の集合
}

// NewDayStat は空のDayStatを作成します。
func NewDayStat() *DayStat {
	return &DayStat{Types: make(map[string]struct{})}
}

// AddType は観測したアクティビティ種別を記録します。空文字は無視します。
func (d *DayStat) AddType(t string) {
	if t == "" {
		return
	}
	d.Types[t] = struct{}{}
}

// ReactionOnly はその日の種別がすべてリアクション系かどうかを判定します。
// 種別が1つも記録されていない日はリアクション限定とは見なしません。
func (d *DayStat) ReactionOnly(reactionTypes map[string]struct{}) bool {
	if len(d.Types) == 0 {
		return false
	}
	for t := range d.Types {
		if _, ok := reactionTypes[t]; !ok {
			return false
		}
	}
	return true
}
