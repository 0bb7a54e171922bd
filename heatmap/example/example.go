// Package main demonstrates the use of the heatmap package to generate SVG heatmaps.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/stsysd/kusagen/heatmap"
	"github.com/stsysd/kusagen/model"
	"github.com/stsysd/kusagen/stats"
	"github.com/stsysd/kusagen/theme"
)

func main() {
	// Generate sample stats for one year
	dateRange, err := model.NewDateRange(365, 0)
	if err != nil {
		log.Fatalf("Failed to build date range: %v", err)
	}
	dayStats := generateYearStats(dateRange)

	th, err := theme.Builtin().Get("light")
	if err != nil {
		log.Fatalf("Failed to load theme: %v", err)
	}

	weekStart, err := model.NewWeekStart("sunday")
	if err != nil {
		log.Fatalf("Failed to build week start: %v", err)
	}

	// Create SVG heatmap
	svg, err := heatmap.Render(dayStats, dateRange.From(), dateRange.To(), &heatmap.Options{
		CellSize:       11,
		CellGap:        2,
		Colors:         th.Colors,
		ReactionColors: th.ReactionColors,
		Background:     th.Background,
		TextColor:      th.Text,
		Title:          "Sample activity",
		ShowLegend:     true,
		WeekStart:      weekStart,
	})
	if err != nil {
		log.Fatalf("Failed to render heatmap: %v", err)
	}

	// Output to stdout
	fmt.Println(svg)
}

// generateYearStats creates random activity stats over the given window
func generateYearStats(dateRange *model.DateRange) stats.DayStats {
	dayStats := stats.DayStats{}

	// Fill with data for each day
	current := dateRange.From()
	for !current.After(dateRange.To()) {
		// Generate random count
		// Higher probability of activity on weekends
		var count int
		if current.Weekday() == time.Saturday || current.Weekday() == time.Sunday {
			count = rand.Intn(10) // 0-9
		} else {
			count = rand.Intn(6) // 0-5
		}

		// Add occasional spikes of activity
		if rand.Intn(20) == 0 {
			count += rand.Intn(20) // Add 0-19 additional counts
		}

		if count != 0 {
			stat := model.NewDayStat()
			stat.Count = count
			// Mark roughly one day in five as reaction-only
			if rand.Intn(5) == 0 {
				stat.AddType("like")
			} else {
				stat.AddType("discussion")
			}
			dayStats[current.Format(stats.DateKey)] = stat
		}

		// Move to next day
		current = current.AddDate(0, 0, 1)
	}

	return dayStats
}
