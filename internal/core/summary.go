package core

import (
	"sort"
	"time"
)

// Totals is one aggregation bucket: how many labourers it covers, the sum
// of their days present, and the amount owed for those days.
type Totals struct {
	LabourCount int
	Days        int
	Amount      int64
}

// MonthlyTotals aggregates one month of attendance. PerContractor holds a
// bucket per contractor that employs at least one labourer; callers must
// default to a zero bucket for absent keys.
type MonthlyTotals struct {
	PerContractor map[string]Totals
	Grand         Totals
}

// ReportRow is one display row of a monthly report, materialized for every
// contractor including those with an empty roster.
type ReportRow struct {
	ContractorID   string
	ContractorName string
	Totals
}

// MonthlyReport is the renderable form of MonthlyTotals, rows sorted by
// contractor name.
type MonthlyReport struct {
	Year  int
	Month time.Month
	Rows  []ReportRow
	Grand Totals
}

// DaysPresent counts the labourer's present days within the month
// containing t, bounds inclusive. Date keys compare lexicographically,
// which matches calendar order for the yyyy-mm-dd encoding.
func DaysPresent(d Document, labourID string, t time.Time) int {
	from := DateKey(StartOfMonth(t))
	to := DateKey(EndOfMonth(t))
	n := 0
	for _, a := range d.Attendance {
		if a.LabourID == labourID && a.Present && a.Date >= from && a.Date <= to {
			n++
		}
	}
	return n
}

// ComputeMonthlyTotals runs the aggregation pass for the month containing
// t. The result depends only on (d, t); document sizes are bounded by
// manual data entry, so everything is recomputed on every call rather than
// maintained incrementally.
func ComputeMonthlyTotals(d Document, t time.Time) MonthlyTotals {
	out := MonthlyTotals{PerContractor: make(map[string]Totals)}
	for _, l := range d.Labours {
		days := DaysPresent(d, l.ID, t)
		amount := int64(days) * l.DailyRate

		bucket := out.PerContractor[l.ContractorID]
		bucket.LabourCount++
		bucket.Days += days
		bucket.Amount += amount
		out.PerContractor[l.ContractorID] = bucket

		out.Grand.LabourCount++
		out.Grand.Days += days
		out.Grand.Amount += amount
	}
	return out
}

// BuildMonthlyReport materializes MonthlyTotals into display rows, one per
// contractor (zeroed when the contractor has no labourers), sorted by name.
func BuildMonthlyReport(d Document, t time.Time) MonthlyReport {
	totals := ComputeMonthlyTotals(d, t)
	report := MonthlyReport{
		Year:  StartOfMonth(t).Year(),
		Month: StartOfMonth(t).Month(),
		Grand: totals.Grand,
	}
	for _, c := range d.Contractors {
		report.Rows = append(report.Rows, ReportRow{
			ContractorID:   c.ID,
			ContractorName: c.Name,
			Totals:         totals.PerContractor[c.ID],
		})
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].ContractorName < report.Rows[j].ContractorName
	})
	return report
}
