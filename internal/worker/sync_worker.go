// Package worker pushes monthly payroll reports from the register
// document to the external register on demand and on a schedule.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hajeri/internal/amqp"
	"hajeri/internal/core"
	"hajeri/internal/kv"
	"hajeri/internal/register"
	"hajeri/internal/store"
)

// SyncWorker rebuilds a month's report from the persisted document and
// writes it to the external register.
type SyncWorker struct {
	backend  kv.Backend
	register register.Writer
}

func NewSyncWorker(backend kv.Backend, register register.Writer) *SyncWorker {
	return &SyncWorker{
		backend:  backend,
		register: register,
	}
}

// HandleSyncMessage processes a single register sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RegisterSyncMessage) error {
	slog.InfoContext(ctx, "Processing register sync message",
		"year", msg.Year,
		"month", msg.Month)

	if msg.Month < 1 || msg.Month > 12 {
		return fmt.Errorf("invalid month in message: %d", msg.Month)
	}

	day := time.Date(msg.Year, time.Month(msg.Month), 1, 0, 0, 0, 0, time.UTC)
	return w.syncMonth(ctx, day)
}

// SyncCurrentMonth rebuilds and writes the current month's report. The
// worker runs it on a schedule as a backup in case AMQP messages are
// lost.
func (w *SyncWorker) SyncCurrentMonth(ctx context.Context) error {
	return w.syncMonth(ctx, time.Now().UTC())
}

func (w *SyncWorker) syncMonth(ctx context.Context, day time.Time) error {
	doc, err := store.LoadDocument(ctx, w.backend)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	report := core.BuildMonthlyReport(doc, day)
	if err := w.register.WriteMonthlyReport(ctx, report); err != nil {
		return fmt.Errorf("write monthly report: %w", err)
	}

	slog.InfoContext(ctx, "Synced monthly report to register",
		"year", report.Year,
		"month", int(report.Month),
		"contractors", len(report.Rows),
		"grand_amount", report.Grand.Amount)

	return nil
}
