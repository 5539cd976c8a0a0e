package store

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"hajeri/internal/core"
	"hajeri/internal/kv/memory"
)

// failingBackend starts returning save errors once tripped.
type failingBackend struct {
	mu    sync.Mutex
	saved map[string]string
	fail  bool
}

func newFailingBackend() *failingBackend {
	return &failingBackend{saved: make(map[string]string)}
}

func (b *failingBackend) Load(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	text, ok := b.saved[key]
	return text, ok, nil
}

func (b *failingBackend) Save(_ context.Context, key, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return errors.New("disk full")
	}
	b.saved[key] = text
	return nil
}

type recordingNotifier struct {
	years  []int
	months []time.Month
}

func (n *recordingNotifier) DocumentChanged(_ context.Context, year int, month time.Month) error {
	n.years = append(n.years, year)
	n.months = append(n.months, month)
	return nil
}

func TestOpenEmptyBackend(t *testing.T) {
	s, err := Open(context.Background(), memory.New(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc := s.Document(); len(doc.Contractors) != 0 || len(doc.Labours) != 0 || len(doc.Attendance) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestOpenCorruptDocumentStartsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	if err := backend.Save(ctx, DocumentKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s, err := Open(ctx, backend, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc := s.Document(); len(doc.Contractors) != 0 {
		t.Fatalf("corrupt document not treated as absent: %+v", doc)
	}
}

func TestMutationsWriteThrough(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s, err := Open(ctx, backend, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	c, err := s.AddContractor(ctx, "Ravi Plumbing", "")
	if err != nil {
		t.Fatalf("add contractor: %v", err)
	}
	l, err := s.AddLabour(ctx, c.ID, "Suresh", 800)
	if err != nil {
		t.Fatalf("add labour: %v", err)
	}
	if err := s.SetAttendance(ctx, l.ID, "2024-03-05", true); err != nil {
		t.Fatalf("set attendance: %v", err)
	}

	// A fresh store over the same backend sees the persisted state.
	reloaded, err := Open(ctx, backend, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Document(), s.Document()) {
		t.Fatalf("persisted document diverged:\n got %+v\nwant %+v",
			reloaded.Document(), s.Document())
	}

	// And the persisted text has the documented wire shape.
	text, ok, err := backend.Load(ctx, DocumentKey)
	if err != nil || !ok {
		t.Fatalf("load raw: ok=%v err=%v", ok, err)
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, field := range []string{"contractors", "labours", "attendance"} {
		if _, ok := wire[field]; !ok {
			t.Fatalf("wire document missing %q: %s", field, text)
		}
	}
}

func TestValidationRejectionLeavesDocumentAndBackendUntouched(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s, _ := Open(ctx, backend, nil)
	c, _ := s.AddContractor(ctx, "Ravi Plumbing", "")
	before := s.Document()
	savedBefore, _, _ := backend.Load(ctx, DocumentKey)

	if _, err := s.AddContractor(ctx, "   ", ""); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.AddLabour(ctx, c.ID, "Suresh", 0); !errors.Is(err, core.ErrInvalidRate) {
		t.Fatalf("err = %v", err)
	}
	if err := s.SetAttendance(ctx, "ghost", "2024-03-05", true); !errors.Is(err, core.ErrNoLabour) {
		t.Fatalf("err = %v", err)
	}

	if !reflect.DeepEqual(s.Document(), before) {
		t.Fatal("rejected mutation changed the document")
	}
	savedAfter, _, _ := backend.Load(ctx, DocumentKey)
	if savedAfter != savedBefore {
		t.Fatal("rejected mutation reached the backend")
	}
}

func TestSaveFailureKeepsInMemoryDocument(t *testing.T) {
	ctx := context.Background()
	backend := newFailingBackend()
	s, err := Open(ctx, backend, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	backend.fail = true
	c, err := s.AddContractor(ctx, "Ravi Plumbing", "")
	if err != nil {
		t.Fatalf("add under failing backend: %v", err)
	}
	if _, ok := s.Document().Contractor(c.ID); !ok {
		t.Fatal("in-memory document lost the mutation")
	}

	// Durability catches up on the next successful write.
	backend.fail = false
	if _, err := s.AddContractor(ctx, "Mohan Electric", ""); err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
	reloaded, _ := Open(ctx, backend, nil)
	if len(reloaded.Document().Contractors) != 2 {
		t.Fatalf("recovered document = %+v", reloaded.Document())
	}
}

func TestNotifierToldAffectedMonth(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	s, _ := Open(ctx, memory.New(), n)

	c, _ := s.AddContractor(ctx, "Ravi Plumbing", "")
	l, _ := s.AddLabour(ctx, c.ID, "Suresh", 800)
	if err := s.SetAttendance(ctx, l.ID, "2023-11-20", true); err != nil {
		t.Fatalf("set attendance: %v", err)
	}

	if len(n.months) != 3 {
		t.Fatalf("notifications = %d, want 3", len(n.months))
	}
	// Attendance notifies the month of the marked day, not today.
	if n.years[2] != 2023 || n.months[2] != time.November {
		t.Fatalf("attendance notified %d-%d", n.years[2], n.months[2])
	}
}
