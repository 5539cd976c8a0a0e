package http

import (
	"log/slog"
	"net/http"
	"strings"

	"hajeri/internal/core"
)

type labourView struct {
	ID   string
	Name string
	Rate string
}

type contractorView struct {
	ID      string
	Name    string
	Note    string
	Labours []labourView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	doc := s.store.Document()
	data := struct {
		Contractors []contractorView
		LabourCount int
		Month       string
	}{Month: monthParam(parseMonth(r))}

	for _, c := range doc.Contractors {
		cv := contractorView{ID: c.ID, Name: c.Name, Note: c.Note}
		for _, l := range doc.ContractorLabours(c.ID) {
			cv.Labours = append(cv.Labours, labourView{ID: l.ID, Name: l.Name, Rate: formatAmount(l.DailyRate)})
			data.LabourCount++
		}
		data.Contractors = append(data.Contractors, cv)
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateContractor(w http.ResponseWriter, r *http.Request) {
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

	name := sanitizeInput(r.Form.Get("name"))
	note := sanitizeInput(r.Form.Get("note"))

	if _, err := s.store.AddContractor(r.Context(), name, note); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Contractor name is required</div>`))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteContractor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if id != "" {
		s.store.RemoveContractor(r.Context(), id)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCreateLabour(w http.ResponseWriter, r *http.Request) {
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

	contractorID := strings.TrimSpace(r.Form.Get("contractor"))
	name := sanitizeInput(r.Form.Get("name"))
	rateStr := strings.TrimSpace(r.Form.Get("rate"))

	rate, err := core.ParseRate(rateStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Daily rate must be a positive amount</div>`))
		return
	}

	if _, err := s.store.AddLabour(r.Context(), contractorID, name, rate); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid labourer details</div>`))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteLabour(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if id != "" {
		s.store.RemoveLabour(r.Context(), id)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
