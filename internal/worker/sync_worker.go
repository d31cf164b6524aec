// Package worker mirrors ledger mutations into the backup sheet. It
// consumes spend events from AMQP and keeps its own synced-id state in
// the kv store, so records missed while the worker was down are picked
// up by the periodic pending scan.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"parksmart/internal/amqp"
	"parksmart/internal/kv"
	"parksmart/internal/ledger"
	"parksmart/internal/sheets"
)

// SyncStateKey holds the worker's private map of synced record ids to
// sheet row references.
const SyncStateKey = "parksmart_sync_state"

type SyncWorker struct {
	ledger    *ledger.Ledger
	state     kv.Store
	writer    sheets.SpendWriter
	deleter   sheets.SpendDeleter
	batchSize int
}

func NewSyncWorker(l *ledger.Ledger, state kv.Store, writer sheets.SpendWriter, deleter sheets.SpendDeleter, batchSize int) *SyncWorker {
	return &SyncWorker{
		ledger:    l,
		state:     state,
		writer:    writer,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleMessage processes one spend event from the queue.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.SpendMessage) error {
	switch msg.Kind {
	case amqp.KindSpendSync:
		return w.handleSync(ctx, msg.ID)
	case amqp.KindSpendDelete:
		return w.handleDelete(ctx, msg.ID)
	default:
		// Unknown kinds are dropped, not requeued.
		slog.WarnContext(ctx, "Unknown spend message kind", "kind", msg.Kind, "id", msg.ID)
		return nil
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, id string) error {
	rec, ok := w.ledger.Find(id)
	if !ok {
		// Deleted before the sync ran; nothing to mirror.
		slog.InfoContext(ctx, "Record gone before sync, skipping", "id", id)
		return nil
	}

	synced := w.loadState()
	if _, done := synced[id]; done {
		slog.DebugContext(ctx, "Record already synced", "id", id)
		return nil
	}

	ref, err := w.writer.Append(ctx, rec)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	synced[id] = ref
	w.saveState(ctx, synced)

	slog.InfoContext(ctx, "Synced spend record",
		"id", id,
		"sheet_ref", ref,
		"carpark", rec.CarparkName,
		"cost", rec.Cost)
	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, id string) error {
	if w.deleter == nil {
		slog.WarnContext(ctx, "No deleter configured, skipping sheet delete", "id", id)
		return nil
	}

	if err := w.deleter.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete from sheet: %w", err)
	}

	synced := w.loadState()
	if _, ok := synced[id]; ok {
		delete(synced, id)
		w.saveState(ctx, synced)
	}

	slog.InfoContext(ctx, "Deleted spend record from sheet", "id", id)
	return nil
}

// ProcessPending syncs up to batchSize records that are in the ledger
// but not yet in the sheet. Backup mechanism for lost AMQP messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize)
}

// StartupSyncCheck runs a wider pending scan at worker startup to
// recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize*5)
}

func (w *SyncWorker) processPending(ctx context.Context, limit int) error {
	synced := w.loadState()

	processed := 0
	errorCount := 0
	for _, rec := range w.ledger.Records() {
		if processed >= limit {
			break
		}
		if _, done := synced[rec.ID]; done {
			continue
		}

		ref, err := w.writer.Append(ctx, rec)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending record", "id", rec.ID, "error", err)
			errorCount++
			continue
		}
		synced[rec.ID] = ref
		processed++
	}

	if processed > 0 || errorCount > 0 {
		w.saveState(ctx, synced)
		slog.InfoContext(ctx, "Pending sync pass completed",
			"synced", processed,
			"errors", errorCount)
	}
	return nil
}

// loadState reads the synced-id map; corrupt or missing state means
// nothing is synced yet.
func (w *SyncWorker) loadState() map[string]string {
	raw, ok, err := w.state.Get(SyncStateKey)
	if err != nil || !ok {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
		return map[string]string{}
	}
	return m
}

func (w *SyncWorker) saveState(ctx context.Context, m map[string]string) {
	raw, err := json.Marshal(m)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal sync state", "error", err)
		return
	}
	if err := w.state.Set(SyncStateKey, string(raw)); err != nil {
		slog.ErrorContext(ctx, "Failed to persist sync state", "error", err)
	}
}
