package worker

import (
	"context"
	"testing"

	"parksmart/internal/amqp"
	"parksmart/internal/core"
	"parksmart/internal/kv"
	"parksmart/internal/ledger"
	"parksmart/internal/sheets/memory"
)

func newTestWorker(t *testing.T) (*SyncWorker, *ledger.Ledger, *memory.Store) {
	t.Helper()
	store := kv.NewMemory()
	l := ledger.New(store)
	sheet := memory.New()
	return NewSyncWorker(l, store, sheet, sheet, 10), l, sheet
}

func TestHandleSyncMirrorsRecord(t *testing.T) {
	w, l, sheet := newTestWorker(t)
	entry, _ := l.Append(core.SpendRecord{CarparkName: "A", Cost: 4.2, ParkedAt: 1000})

	if err := w.HandleMessage(context.Background(), amqp.NewSpendSyncMessage(entry.ID)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := sheet.Records(); len(got) != 1 || got[0].ID != entry.ID {
		t.Fatalf("expected mirrored record, got %+v", got)
	}

	// Duplicate delivery is idempotent.
	if err := w.HandleMessage(context.Background(), amqp.NewSpendSyncMessage(entry.ID)); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if len(sheet.Records()) != 1 {
		t.Fatalf("redelivery must not duplicate the row")
	}
}

func TestHandleSyncForDeletedRecord(t *testing.T) {
	w, _, sheet := newTestWorker(t)
	if err := w.HandleMessage(context.Background(), amqp.NewSpendSyncMessage("spend_404")); err != nil {
		t.Fatalf("missing record must not be an error: %v", err)
	}
	if len(sheet.Records()) != 0 {
		t.Fatalf("nothing should be mirrored")
	}
}

func TestHandleDelete(t *testing.T) {
	w, l, sheet := newTestWorker(t)
	entry, _ := l.Append(core.SpendRecord{CarparkName: "A", Cost: 1, ParkedAt: 1000})
	w.HandleMessage(context.Background(), amqp.NewSpendSyncMessage(entry.ID))

	if err := w.HandleMessage(context.Background(), amqp.NewSpendDeleteMessage(entry.ID)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(sheet.Records()) != 0 {
		t.Fatalf("row should be removed from sheet")
	}

	// The id can be synced again after deletion state is cleared.
	l.Append(core.SpendRecord{CarparkName: "A", Cost: 1, ParkedAt: 1000})
	if err := w.HandleMessage(context.Background(), amqp.NewSpendSyncMessage(entry.ID)); err != nil {
		t.Fatalf("resync: %v", err)
	}
	if len(sheet.Records()) != 1 {
		t.Fatalf("resync after delete should mirror again")
	}
}

func TestProcessPending(t *testing.T) {
	w, l, sheet := newTestWorker(t)
	l.Append(core.SpendRecord{CarparkName: "A", Cost: 1, ParkedAt: 1000})
	l.Append(core.SpendRecord{CarparkName: "B", Cost: 2, ParkedAt: 2000})

	// No messages were handled; the pending scan catches up.
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(sheet.Records()) != 2 {
		t.Fatalf("expected both records mirrored, got %d", len(sheet.Records()))
	}

	// A second pass has nothing left to do.
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(sheet.Records()) != 2 {
		t.Fatalf("second pass must be a no-op")
	}
}

func TestUnknownKindDropped(t *testing.T) {
	w, _, _ := newTestWorker(t)
	msg := &amqp.SpendMessage{Kind: "spend.unknown", ID: "x"}
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unknown kind must not requeue: %v", err)
	}
}
