package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"hajeri/internal/core"
	"hajeri/internal/export"
)

type reportRowView struct {
	Contractor  string
	LabourCount int
	Days        int
	Amount      string
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	month := parseMonth(r)
	report := core.BuildMonthlyReport(s.store.Document(), month)

	data := struct {
		Month       string
		MonthName   string
		Prev        string
		Next        string
		Rows        []reportRowView
		GrandCount  int
		GrandDays   int
		GrandAmount string
	}{
		Month:       monthParam(month),
		MonthName:   month.Format("January 2006"),
		Prev:        monthParam(core.AddMonths(month, -1)),
		Next:        monthParam(core.AddMonths(month, 1)),
		GrandCount:  report.Grand.LabourCount,
		GrandDays:   report.Grand.Days,
		GrandAmount: formatAmount(report.Grand.Amount),
	}
	for _, row := range report.Rows {
		data.Rows = append(data.Rows, reportRowView{
			Contractor:  row.ContractorName,
			LabourCount: row.LabourCount,
			Days:        row.Days,
			Amount:      formatAmount(row.Amount),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "reports.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Reports template execution failed", "error", err, "template", "reports.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	month := parseMonth(r)
	report := core.BuildMonthlyReport(s.store.Document(), month)

	f, err := export.MonthlyReportWorkbook(report)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report workbook build failed", "error", err, "month", monthParam(month))
		http.Error(w, "could not build report", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("attendance-%s.xlsx", monthParam(month))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		slog.ErrorContext(r.Context(), "Report download write failed", "error", err, "month", monthParam(month))
	}
}
