package core

import "time"

// DateLayout is the canonical day encoding used throughout the document.
// It is lexicographically order-isomorphic to calendar order, so date keys
// can be range-compared as plain strings.
const DateLayout = "2006-01-02"

// DateKey encodes a time as a yyyy-mm-dd day key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a yyyy-mm-dd day key.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StartOfMonth returns the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// AddMonths returns the start of the month n months away from t's month.
// n may be negative. The result is always normalized to day 1.
func AddMonths(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// GridCell is one slot of a month grid. Padding cells have Day == 0.
type GridCell struct {
	Day int
	Key string // yyyy-mm-dd, empty for padding
}

// MonthGrid lays the month containing t out as calendar weeks. Weeks start
// on Sunday (weekday 0). Every row has exactly 7 cells: padding before
// day 1 aligns it under its weekday, day cells run 1..last consecutively,
// and trailing padding completes the final week.
func MonthGrid(t time.Time) [][]GridCell {
	first := StartOfMonth(t)
	days := EndOfMonth(t).Day()
	lead := int(first.Weekday())

	rows := (lead + days + 6) / 7
	grid := make([][]GridCell, rows)
	for i := range grid {
		grid[i] = make([]GridCell, 7)
	}
	for day := 1; day <= days; day++ {
		slot := lead + day - 1
		grid[slot/7][slot%7] = GridCell{
			Day: day,
			Key: DateKey(first.AddDate(0, 0, day-1)),
		}
	}
	return grid
}
