// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"strconv"
	"time"
)

// monthLabels are the chart labels for the twelve monthly buckets.
var monthLabels = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthLabel returns the chart label for a calendar month.
func MonthLabel(month time.Month) string {
	return monthLabels[month-1]
}

// YearLabel returns the chart label for a calendar year.
func YearLabel(year int) string {
	return strconv.Itoa(year)
}

// MonthKey formats a year and month as "YYYY-MM", the budget month key.
func MonthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// MonthBounds returns the first and last day of the month containing date.
func MonthBounds(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// PreviousMonth returns the first day of the month before the one
// containing date.
func PreviousMonth(date time.Time) time.Time {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, -1, 0)
}
