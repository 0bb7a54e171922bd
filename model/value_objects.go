// Package model provides value objects for parameter validation.
package model

import (
	"fmt"
	"time"
)

// ActivityType represents the feed activity-type filter value object.
type ActivityType struct {
	value string
}

// validActivityTypes はフィードが受け付ける種別フィルタの一覧です。
var validActivityTypes = map[string]struct{}{
	"all":        {},
	"discussion": {},
	"upvote":     {},
	"like":       {},
}

// NewActivityType creates a new activity type value object.
func NewActivityType(s string) (*ActivityType, error) {
	if s == "" {
		s = "all"
	}
	if _, ok := validActivityTypes[s]; !ok {
		return nil, NewValidationError(fmt.Sprintf("unsupported activity type: %s", s))
	}
	return &ActivityType{value: s}, nil
}

// String returns the activity type string.
func (a *ActivityType) String() string {
	return a.value
}

// WeekStart represents the week-start convention value object.
type WeekStart struct {
	value string
}

// NewWeekStart creates a new week start value object ("sunday" or "monday").
func NewWeekStart(s string) (*WeekStart, error) {
	if s == "" {
		s = "sunday"
	}
	if s != "sunday" && s != "monday" {
		return nil, NewValidationError(fmt.Sprintf("unsupported week start: %s", s))
	}
	return &WeekStart{value: s}, nil
}

// String returns the week start string.
func (w *WeekStart) String() string {
	return w.value
}

// Index returns the row index (0..6) of the date's weekday, where 0 is the
// configured week-start day.
func (w *WeekStart) Index(t time.Time) int {
	// time.WeekdayはSunday=0なので、月曜始まりのときだけずらす
	if w.value == "monday" {
		return (int(t.Weekday()) + 6) % 7
	}
	return int(t.Weekday())
}

// AlignBack walks the date backward to the most recent week-start day.
// The date itself is returned when it already is one.
func (w *WeekStart) AlignBack(t time.Time) time.Time {
	return t.AddDate(0, 0, -w.Index(t))
}

// DateRange represents a closed interval of calendar dates in a fixed-offset
// timezone.
type DateRange struct {
	from time.Time
	to   time.Time
}

// NewDateRange creates the trailing window [today-(days-1), today], where
// "today" is the current date in the UTC+offsetHours zone.
func NewDateRange(days, offsetHours int) (*DateRange, error) {
	return NewDateRangeEndingAt(time.Now(), days, offsetHours)
}

// NewDateRangeEndingAt creates the trailing window ending on the date of the
// given instant in the UTC+offsetHours zone. Used by tests and the server to
// pin the window.
func NewDateRangeEndingAt(end time.Time, days, offsetHours int) (*DateRange, error) {
	if days < 1 {
		return nil, NewValidationError("days must be a positive integer greater than 0")
	}
	to := DateOf(end.In(FixedZone(offsetHours)))
	from := to.AddDate(0, 0, -(days - 1))
	return &DateRange{from: from, to: to}, nil
}

// From returns the start date.
func (d *DateRange) From() time.Time {
	return d.from
}

// To returns the end date.
func (d *DateRange) To() time.Time {
	return d.to
}

// Days returns the number of calendar days in the range.
func (d *DateRange) Days() int {
	return int(d.to.Sub(d.from).Hours()/24) + 1
}

// FixedZone はUTCからの固定オフセット（時間単位）のタイムゾーンを返します。
// 地理的なタイムゾーンではないため、夏時間の補正は行いません。
func FixedZone(offsetHours int) *time.Location {
	if offsetHours == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// DateOf は時刻成分を落とし、その時点のカレンダー日付を返します。
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
