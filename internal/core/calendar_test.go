package core

import (
	"testing"
	"time"
)

func TestStartEndOfMonth(t *testing.T) {
	d := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	if got := DateKey(StartOfMonth(d)); got != "2024-03-01" {
		t.Fatalf("StartOfMonth = %s", got)
	}
	if got := DateKey(EndOfMonth(d)); got != "2024-03-31" {
		t.Fatalf("EndOfMonth = %s", got)
	}
	// Leap February
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	if got := DateKey(EndOfMonth(feb)); got != "2024-02-29" {
		t.Fatalf("EndOfMonth leap = %s", got)
	}
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"2024-03-17", 1, "2024-04-01"},
		{"2024-03-17", -1, "2024-02-01"},
		{"2024-12-05", 1, "2025-01-01"},
		{"2024-01-05", -1, "2023-12-01"},
		{"2024-03-31", 0, "2024-03-01"},
		{"2024-06-15", 13, "2025-07-01"},
	}
	for i, tc := range cases {
		from, err := ParseDateKey(tc.from)
		if err != nil {
			t.Fatalf("case %d parse: %v", i, err)
		}
		if got := DateKey(AddMonths(from, tc.n)); got != tc.want {
			t.Fatalf("case %d AddMonths(%s, %d) = %s, want %s", i, tc.from, tc.n, got, tc.want)
		}
	}
}

func TestMonthGridShape(t *testing.T) {
	// Months with different leading weekdays and lengths. February 2015
	// started on a Sunday and fits exactly 4 weeks; August 2026 needs 6.
	months := []string{
		"2024-03-01", // Friday start, 31 days, 6 rows
		"2015-02-01", // Sunday start, 28 days, 4 rows
		"2024-09-01", // Sunday start, 30 days, 5 rows
		"2026-08-01", // Saturday start, 31 days, 6 rows
		"2024-02-01", // leap February
	}
	for _, m := range months {
		month, err := ParseDateKey(m)
		if err != nil {
			t.Fatalf("parse %s: %v", m, err)
		}
		grid := MonthGrid(month)
		days := EndOfMonth(month).Day()
		lead := int(StartOfMonth(month).Weekday())
		wantRows := (lead + days + 6) / 7
		if len(grid) != wantRows {
			t.Fatalf("%s: %d rows, want %d", m, len(grid), wantRows)
		}

		var seen []int
		for _, week := range grid {
			if len(week) != 7 {
				t.Fatalf("%s: week of %d cells", m, len(week))
			}
			for _, cell := range week {
				if cell.Day != 0 {
					seen = append(seen, cell.Day)
				}
			}
		}
		if len(seen) != days {
			t.Fatalf("%s: %d day cells, want %d", m, len(seen), days)
		}
		for i, day := range seen {
			if day != i+1 {
				t.Fatalf("%s: day cell %d holds %d", m, i, day)
			}
		}
	}
}

func TestMonthGridAlignment(t *testing.T) {
	// 2024-03-01 was a Friday: five leading pads, day 1 in column 5.
	march, _ := ParseDateKey("2024-03-01")
	grid := MonthGrid(march)
	for col := 0; col < 5; col++ {
		if grid[0][col].Day != 0 {
			t.Fatalf("column %d expected padding, got day %d", col, grid[0][col].Day)
		}
	}
	if grid[0][5].Day != 1 || grid[0][5].Key != "2024-03-01" {
		t.Fatalf("day 1 misplaced: %+v", grid[0][5])
	}
	if grid[0][6].Day != 2 {
		t.Fatalf("day 2 misplaced: %+v", grid[0][6])
	}
	// Last row: 31st lands on a Sunday, trailing cells padded.
	last := grid[len(grid)-1]
	if last[0].Day != 31 {
		t.Fatalf("day 31 misplaced: %+v", last[0])
	}
	for col := 1; col < 7; col++ {
		if last[col].Day != 0 {
			t.Fatalf("trailing column %d not padded: %+v", col, last[col])
		}
	}
}
