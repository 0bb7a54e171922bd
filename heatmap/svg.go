// svg.go
// Generates a GitHub-like activity heatmap as an SVG string in Go.
package heatmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/stsysd/kusagen/model"
	"github.com/stsysd/kusagen/stats"
)

// Options configures rendering parameters.
type Options struct {
	CellSize       int                 // size of each day cell (px)
	CellGap        int                 // gap between cells (px)
	Colors         []string            // palette for regular activity, levels 0..N-1
	ReactionColors []string            // palette for reaction-only days, levels 0..N-1
	Background     string              // background CSS color
	TextColor      string              // label CSS color
	Title          string              // optional title text at the top
	ShowLegend     bool                // include a Less/More legend row
	WeekStart      *model.WeekStart    // week-start convention for the grid
	ReactionTypes  map[string]struct{} // type labels classified as reactions
}

// DefaultReactionTypes はリアクション系として扱うアクティビティ種別です。
func DefaultReactionTypes() map[string]struct{} {
	return map[string]struct{}{"upvote": {}, "like": {}}
}

// グリッド周囲の余白（px）。タイトルや凡例がある場合は広げます。
const (
	paddingX            = 12
	paddingTopPlain     = 10
	paddingTopTitle     = 20
	paddingBottomPlain  = 10
	paddingBottomLegend = 34
)

// Render は日次集計からヒートマップSVGを組み立てます。
// グリッドは週の境界に揃うため、fromより前の埋め草の日も描画されます
// （カウントは常に0）。出力は同じ入力に対して決定的です。
func Render(dayStats stats.DayStats, from, to time.Time, opts *Options) (string, error) {
	if len(opts.Colors) < 2 {
		return "", model.NewValidationError("palette must contain at least 2 colors")
	}
	if len(opts.ReactionColors) < 2 {
		return "", model.NewValidationError("reaction palette must contain at least 2 colors")
	}
	ws := opts.WeekStart
	if ws == nil {
		ws, _ = model.NewWeekStart("sunday")
	}
	reactionTypes := opts.ReactionTypes
	if reactionTypes == nil {
		reactionTypes = DefaultReactionTypes()
	}

	gridStart := GridStart(from, ws)
	totalDays := int(to.Sub(gridStart).Hours()/24) + 1
	weeks := Weeks(gridStart, to)

	// 2つの母集団ごとに最大値を求める。リアクションだけの静かな日々が
	// 高ボリュームの議論の日に埋もれないよう、別々にスケーリングする。
	maxDefault, maxReaction := 0, 0
	for _, stat := range dayStats {
		if stat.ReactionOnly(reactionTypes) {
			if stat.Count > maxReaction {
				maxReaction = stat.Count
			}
		} else {
			if stat.Count > maxDefault {
				maxDefault = stat.Count
			}
		}
	}

	paddingTop := paddingTopPlain
	if opts.Title != "" {
		paddingTop = paddingTopTitle
	}
	paddingBottom := paddingBottomPlain
	if opts.ShowLegend {
		paddingBottom = paddingBottomLegend
	}

	gridWidth := weeks*(opts.CellSize+opts.CellGap) - opts.CellGap
	gridHeight := 7*(opts.CellSize+opts.CellGap) - opts.CellGap

	width := paddingX*2 + gridWidth
	height := paddingTop + gridHeight + paddingBottom

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(fmt.Sprintf(
		`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="Hugging Face activity for %s to %s">`+"\n",
		width, height, width, height, from.Format(stats.DateKey), to.Format(stats.DateKey)))
	sb.WriteString(fmt.Sprintf(
		`  <style>.legend{font:11px 'IBM Plex Mono', ui-monospace, monospace;fill:%s}</style>`+"\n",
		opts.TextColor))
	sb.WriteString(fmt.Sprintf(`  <rect width="%d" height="%d" fill="%s"/>`+"\n", width, height, opts.Background))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="14" class="legend">%s</text>`+"\n", paddingX, opts.Title))
	}

	sb.WriteString("  <g>\n")
	for dayOffset := 0; dayOffset < totalDays; dayOffset++ {
		current := gridStart.AddDate(0, 0, dayOffset)
		cell := CellFor(current, gridStart, ws)

		// fromより前の埋め草の日はカウント0として描画する
		count := 0
		reactionOnly := false
		if !current.Before(from) {
			if stat := dayStats.Get(current); stat != nil {
				count = stat.Count
				reactionOnly = stat.ReactionOnly(reactionTypes)
			}
		}

		palette := opts.Colors
		maxCount := maxDefault
		if reactionOnly {
			palette = opts.ReactionColors
			maxCount = maxReaction
		}
		color := palette[LevelIndex(count, maxCount, len(palette))]

		x := paddingX + cell.Week*(opts.CellSize+opts.CellGap)
		y := paddingTop + cell.Row*(opts.CellSize+opts.CellGap)

		dateLabel := current.Format(stats.DateKey)
		sb.WriteString(fmt.Sprintf(
			`    <rect x="%d" y="%d" width="%d" height="%d" rx="2" ry="2" fill="%s" data-date="%s" data-count="%d">`+"\n",
			x, y, opts.CellSize, opts.CellSize, color, dateLabel, count))
		sb.WriteString(fmt.Sprintf(`      <title>%s: %d activity</title>`+"\n", dateLabel, count))
		sb.WriteString("    </rect>\n")
	}
	sb.WriteString("  </g>\n")

	if opts.ShowLegend {
		legendY := paddingTop + gridHeight + 14
		legendX := paddingX + gridWidth - (len(opts.Colors)*(opts.CellSize+2) + 40)
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="legend">Less</text>`+"\n", legendX-36, legendY+9))
		for idx, color := range opts.Colors {
			lx := legendX + idx*(opts.CellSize+2)
			sb.WriteString(fmt.Sprintf(
				`  <rect x="%d" y="%d" width="%d" height="%d" rx="2" ry="2" fill="%s"/>`+"\n",
				lx, legendY, opts.CellSize, opts.CellSize, color))
		}
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="legend">More</text>`+"\n",
			legendX+len(opts.Colors)*(opts.CellSize+2)+6, legendY+9))
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}
