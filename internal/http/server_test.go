package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	kvmem "hajeri/internal/kv/memory"
	"hajeri/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), kvmem.New(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	srv := NewServer(":0", st)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, st
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Add Contractor") {
		t.Fatalf("index body missing contractor form")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	// Unknown paths fall through to the index handler and must 404.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rr.Code)
	}
}

func TestCreateContractorValidationAndSuccess(t *testing.T) {
	srv, st := newTestServer(t)

	// Wrong method
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contractors", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Blank name
	rr = postForm(t, srv, "/contractors", url.Values{"name": {"   "}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if len(st.Document().Contractors) != 0 {
		t.Fatal("rejected contractor was stored")
	}

	// Success redirects back to the roster
	rr = postForm(t, srv, "/contractors", url.Values{"name": {"Ravi Plumbing"}, "note": {"pipes"}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	doc := st.Document()
	if len(doc.Contractors) != 1 || doc.Contractors[0].Name != "Ravi Plumbing" {
		t.Fatalf("contractors = %+v", doc.Contractors)
	}
}

func TestCreateLabourParsesRate(t *testing.T) {
	srv, st := newTestServer(t)
	c, err := st.AddContractor(context.Background(), "Ravi Plumbing", "")
	if err != nil {
		t.Fatalf("seed contractor: %v", err)
	}

	// Invalid rate
	rr := postForm(t, srv, "/labours", url.Values{
		"contractor": {c.ID}, "name": {"Suresh"}, "rate": {"abc"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad rate, got %d", rr.Code)
	}

	// Unknown contractor
	rr = postForm(t, srv, "/labours", url.Values{
		"contractor": {"ghost"}, "name": {"Suresh"}, "rate": {"800"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown contractor, got %d", rr.Code)
	}

	// Decimal rates round to whole rupees
	rr = postForm(t, srv, "/labours", url.Values{
		"contractor": {c.ID}, "name": {"Suresh"}, "rate": {"799.50"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	doc := st.Document()
	if len(doc.Labours) != 1 || doc.Labours[0].DailyRate != 800 {
		t.Fatalf("labours = %+v", doc.Labours)
	}
}

func TestMarkAttendanceRedirectsToMarkedMonth(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	c, _ := st.AddContractor(ctx, "Ravi Plumbing", "")
	l, _ := st.AddLabour(ctx, c.ID, "Suresh", 800)

	rr := postForm(t, srv, "/attendance/mark", url.Values{
		"labour": {l.ID}, "date": {"2024-03-05"}, "present": {"1"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body.String())
	}
	loc := rr.Header().Get("Location")
	if !strings.Contains(loc, "month=2024-03") || !strings.Contains(loc, "labour="+l.ID) {
		t.Fatalf("redirect location = %q", loc)
	}

	// Unknown labourer is rejected
	rr = postForm(t, srv, "/attendance/mark", url.Values{
		"labour": {"ghost"}, "date": {"2024-03-05"}, "present": {"1"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown labourer, got %d", rr.Code)
	}

	// Bad date is rejected
	rr = postForm(t, srv, "/attendance/mark", url.Values{
		"labour": {l.ID}, "date": {"05/03/2024"}, "present": {"1"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad date, got %d", rr.Code)
	}
}

func TestAttendancePageShowsMarkedDays(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	c, _ := st.AddContractor(ctx, "Ravi Plumbing", "")
	l, _ := st.AddLabour(ctx, c.ID, "Suresh", 800)
	if err := st.SetAttendance(ctx, l.ID, "2024-03-05", true); err != nil {
		t.Fatalf("set attendance: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/attendance?labour="+l.ID+"&month=2024-03", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("attendance status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "March 2024") {
		t.Fatalf("body missing month heading")
	}
	if !strings.Contains(body, "2024-03-05") || !strings.Contains(body, "present") {
		t.Fatalf("body missing marked day")
	}
}

func TestReportsPageAndExport(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	c, _ := st.AddContractor(ctx, "Ravi Plumbing", "")
	l, _ := st.AddLabour(ctx, c.ID, "Suresh", 800)
	for _, day := range []string{"2024-03-05", "2024-03-12"} {
		if err := st.SetAttendance(ctx, l.ID, day, true); err != nil {
			t.Fatalf("set attendance: %v", err)
		}
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports?month=2024-03", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("reports status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Ravi Plumbing") || !strings.Contains(body, "₹1,600") {
		t.Fatalf("reports body missing totals: %s", body)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/reports/export?month=2024-03", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("export status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("export content type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attendance-2024-03.xlsx") {
		t.Fatalf("export disposition = %q", cd)
	}
	if rr.Body.Len() == 0 {
		t.Fatal("export body empty")
	}
}
