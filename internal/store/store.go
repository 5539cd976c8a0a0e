// Package store owns the current register document. It loads the
// document once at startup, applies core mutations under a single lock,
// writes through to the kv backend after every change, and notifies an
// optional register notifier about affected months.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hajeri/internal/core"
	"hajeri/internal/kv"
)

// DocumentKey is the single fixed key the register document lives under.
const DocumentKey = "register"

// Notifier is told which month's payroll register is stale after a
// successful mutation. Implementations must treat delivery as
// best-effort; failures never roll a mutation back.
type Notifier interface {
	DocumentChanged(ctx context.Context, year int, month time.Month) error
}

type Store struct {
	mu       sync.Mutex
	doc      core.Document
	backend  kv.Backend
	notifier Notifier
}

// Open loads the document from the backend. A missing or unparseable
// document starts the session from an empty one; only backend read
// errors fail startup.
func Open(ctx context.Context, backend kv.Backend, notifier Notifier) (*Store, error) {
	s := &Store{backend: backend, notifier: notifier}

	text, ok, err := backend.Load(ctx, DocumentKey)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "No persisted document, starting empty")
		return s, nil
	}
	if err := json.Unmarshal([]byte(text), &s.doc); err != nil {
		slog.WarnContext(ctx, "Persisted document is corrupt, starting empty", "error", err)
		s.doc = core.Document{}
	}
	return s, nil
}

// LoadDocument reads and decodes the document straight from a backend
// without constructing a store. The worker uses it for read-only passes.
func LoadDocument(ctx context.Context, backend kv.Backend) (core.Document, error) {
	var doc core.Document
	text, ok, err := backend.Load(ctx, DocumentKey)
	if err != nil {
		return doc, fmt.Errorf("load document: %w", err)
	}
	if !ok {
		return doc, nil
	}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		slog.WarnContext(ctx, "Persisted document is corrupt, treating as empty", "error", err)
		return core.Document{}, nil
	}
	return doc, nil
}

// Document returns the current document value. Mutations are
// copy-on-write, so the returned value can be read without further
// locking.
func (s *Store) Document() core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// AddContractor registers a contractor and persists the new document.
func (s *Store) AddContractor(ctx context.Context, name, note string) (core.Contractor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, c, err := s.doc.AddContractor(name, note)
	if err != nil {
		return core.Contractor{}, err
	}
	s.commit(ctx, doc, time.Now())
	slog.InfoContext(ctx, "Contractor added", "id", c.ID, "name", c.Name)
	return c, nil
}

// RemoveContractor deletes a contractor with its labourers and their
// attendance. Unknown ids are a no-op.
func (s *Store) RemoveContractor(ctx context.Context, contractorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.RemoveContractor(contractorID)
	s.commit(ctx, doc, time.Now())
	slog.InfoContext(ctx, "Contractor removed", "id", contractorID)
}

// AddLabour registers a labourer under a contractor.
func (s *Store) AddLabour(ctx context.Context, contractorID, name string, dailyRate int64) (core.Labour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, l, err := s.doc.AddLabour(contractorID, name, dailyRate)
	if err != nil {
		return core.Labour{}, err
	}
	s.commit(ctx, doc, time.Now())
	slog.InfoContext(ctx, "Labour added", "id", l.ID, "contractor_id", l.ContractorID, "daily_rate", l.DailyRate)
	return l, nil
}

// RemoveLabour deletes a labourer and its attendance records.
func (s *Store) RemoveLabour(ctx context.Context, labourID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.RemoveLabour(labourID)
	s.commit(ctx, doc, time.Now())
	slog.InfoContext(ctx, "Labour removed", "id", labourID)
}

// SetAttendance upserts one day's presence flag for a labourer.
func (s *Store) SetAttendance(ctx context.Context, labourID, dateKey string, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc.SetAttendance(labourID, dateKey, present)
	if err != nil {
		return err
	}
	day, _ := core.ParseDateKey(dateKey)
	s.commit(ctx, doc, day)
	slog.InfoContext(ctx, "Attendance set", "labour_id", labourID, "date", dateKey, "present", present)
	return nil
}

// commit swaps in the new document, writes through, and notifies.
// A failed save is logged and ignored: the in-memory document stays
// authoritative for the rest of the session, durability catches up on
// the next successful write. Callers hold the lock.
func (s *Store) commit(ctx context.Context, doc core.Document, affected time.Time) {
	s.doc = doc

	text, err := json.Marshal(doc)
	if err != nil {
		// A Document is plain data; this cannot happen in practice.
		slog.ErrorContext(ctx, "Document marshal failed", "error", err)
		return
	}
	if err := s.backend.Save(ctx, DocumentKey, string(text)); err != nil {
		slog.ErrorContext(ctx, "Document save failed, in-memory state kept", "error", err)
	}

	if s.notifier != nil {
		if err := s.notifier.DocumentChanged(ctx, affected.Year(), affected.Month()); err != nil {
			slog.WarnContext(ctx, "Register change notification failed", "error", err)
		}
	}
}
