package memory

import (
	"context"
	"fmt"
	"sync"

	"hajeri/internal/core"
)

// Store keeps written reports in memory, keyed by "yyyy-mm". Used in
// tests and when no external register is configured.
type Store struct {
	mu      sync.Mutex
	reports map[string]core.MonthlyReport
}

func New() *Store {
	return &Store{reports: make(map[string]core.MonthlyReport)}
}

// WriteMonthlyReport replaces the stored report for the month.
func (s *Store) WriteMonthlyReport(_ context.Context, report core.MonthlyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[monthKey(report.Year, int(report.Month))] = report
	return nil
}

// Report returns the last report written for the month, if any.
func (s *Store) Report(year, month int) (core.MonthlyReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[monthKey(year, month)]
	return r, ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
