// Package dateutil provides date parsing, formatting, and range helpers
// shared by the log store, corpus builder, and template engine.
package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the canonical key format for daily work logs.
const DateLayout = "2006-01-02"

var weekdayNamesJa = map[time.Weekday]string{
	time.Monday:    "月",
	time.Tuesday:   "火",
	time.Wednesday: "水",
	time.Thursday:  "木",
	time.Friday:    "金",
	time.Saturday:  "土",
	time.Sunday:    "日",
}

// Format renders a date in the canonical YYYY-MM-DD form.
func Format(d time.Time) string {
	return d.Format(DateLayout)
}

// Parse parses a YYYY-MM-DD date string.
func Parse(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// WeekdayNameJa returns the single-character Japanese weekday name.
func WeekdayNameJa(d time.Time) string {
	return weekdayNamesJa[d.Weekday()]
}

// FormatJapanese renders a date as 2024年1月15日（月）.
// Month and day are not zero-padded.
func FormatJapanese(d time.Time) string {
	return fmt.Sprintf("%d年%d月%d日（%s）", d.Year(), int(d.Month()), d.Day(), WeekdayNameJa(d))
}

// FormatJapaneseDateTime renders a timestamp as 2024年01月15日 09:30.
func FormatJapaneseDateTime(t time.Time) string {
	return t.Format("2006年01月02日 15:04")
}

// WeekRange returns the Monday and Sunday of the week containing d.
func WeekRange(d time.Time) (time.Time, time.Time) {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	start := d.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last day of the month containing d.
func MonthRange(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return start, start.AddDate(0, 1, -1)
}

// DaysBetween returns every date from start to end inclusive.
func DaysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
