package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"hajeri/internal/core"
)

type dayCell struct {
	Day     int
	Key     string
	Present bool
	Marked  bool
}

type labourOption struct {
	ID         string
	Name       string
	Contractor string
	Selected   bool
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	doc := s.store.Document()
	month := parseMonth(r)
	labourID := strings.TrimSpace(r.URL.Query().Get("labour"))

	data := struct {
		Labours   []labourOption
		LabourID  string
		Month     string
		MonthName string
		Prev      string
		Next      string
		Weeks     [][]dayCell
		Weekdays  []string
	}{
		LabourID:  labourID,
		Month:     monthParam(month),
		MonthName: month.Format("January 2006"),
		Prev:      monthParam(core.AddMonths(month, -1)),
		Next:      monthParam(core.AddMonths(month, 1)),
		Weekdays:  []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}

	for _, l := range doc.Labours {
		opt := labourOption{ID: l.ID, Name: l.Name, Selected: l.ID == labourID}
		if c, ok := doc.Contractor(l.ContractorID); ok {
			opt.Contractor = c.Name
		}
		data.Labours = append(data.Labours, opt)
	}

	if _, ok := doc.Labour(labourID); ok {
		marked := make(map[string]bool)
		for _, a := range doc.Attendance {
			if a.LabourID == labourID {
				marked[a.Date] = a.Present
			}
		}
		for _, gridRow := range core.MonthGrid(month) {
			week := make([]dayCell, 0, len(gridRow))
			for _, cell := range gridRow {
				dc := dayCell{Day: cell.Day, Key: cell.Key}
				if present, ok := marked[cell.Key]; ok {
					dc.Marked = true
					dc.Present = present
				}
				week = append(week, dc)
			}
			data.Weeks = append(data.Weeks, week)
		}
	}

	if err := s.templates.ExecuteTemplate(w, "attendance.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Attendance template execution failed", "error", err, "template", "attendance.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	labourID := strings.TrimSpace(r.Form.Get("labour"))
	dateKey := strings.TrimSpace(r.Form.Get("date"))
	present := r.Form.Get("present") == "1"

	if err := s.store.SetAttendance(r.Context(), labourID, dateKey, present); err != nil {
		slog.WarnContext(r.Context(), "Attendance rejected", "error", err, "labour_id", labourID, "date", dateKey)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Could not record attendance</div>`))
		return
	}

	day, _ := core.ParseDateKey(dateKey)
	target := "/attendance?labour=" + url.QueryEscape(labourID) + "&month=" + monthParam(day)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
