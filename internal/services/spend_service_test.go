package services

import (
	"context"
	"errors"
	"testing"

	"parksmart/internal/core"
	"parksmart/internal/kv"
	"parksmart/internal/ledger"
)

type fakePublisher struct {
	synced  []string
	deleted []string
	fail    bool
}

func (f *fakePublisher) PublishSpendSync(_ context.Context, id string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.synced = append(f.synced, id)
	return nil
}

func (f *fakePublisher) PublishSpendDelete(_ context.Context, id string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService(pub SyncPublisher) (*SpendService, *ledger.Ledger) {
	l := ledger.New(kv.NewMemory())
	return NewSpendService(l, pub), l
}

func TestLogPublishesSync(t *testing.T) {
	pub := &fakePublisher{}
	svc, l := newTestService(pub)

	entry, err := svc.Log(context.Background(), core.SpendRecord{CarparkName: "A", Cost: 2.5, ParkedAt: 1000})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(l.Records()) != 1 {
		t.Fatalf("record not persisted")
	}
	if len(pub.synced) != 1 || pub.synced[0] != entry.ID {
		t.Fatalf("expected sync event for %q, got %v", entry.ID, pub.synced)
	}
}

func TestLogSurvivesPublishFailure(t *testing.T) {
	svc, l := newTestService(&fakePublisher{fail: true})

	if _, err := svc.Log(context.Background(), core.SpendRecord{CarparkName: "A", Cost: 2.5, ParkedAt: 1000}); err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}
	if len(l.Records()) != 1 {
		t.Fatalf("record must be persisted despite publish failure")
	}
}

func TestLogWithoutPublisher(t *testing.T) {
	svc, _ := newTestService(nil)
	if _, err := svc.Log(context.Background(), core.SpendRecord{CarparkName: "A", Cost: 1, ParkedAt: 1000}); err != nil {
		t.Fatalf("nil publisher must be tolerated: %v", err)
	}
}

func TestDeletePublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc, l := newTestService(pub)

	entry, _ := svc.Log(context.Background(), core.SpendRecord{CarparkName: "A", Cost: 1, ParkedAt: 1000})
	if err := svc.Delete(context.Background(), entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(l.Records()) != 0 {
		t.Fatalf("record still present")
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != entry.ID {
		t.Fatalf("expected delete event, got %v", pub.deleted)
	}
}

func TestClearDoesNotPublish(t *testing.T) {
	pub := &fakePublisher{}
	svc, l := newTestService(pub)

	svc.Log(context.Background(), core.SpendRecord{CarparkName: "A", Cost: 1, ParkedAt: 1000})
	if err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(l.Records()) != 0 {
		t.Fatalf("ledger not cleared")
	}
	if len(pub.deleted) != 0 {
		t.Fatalf("clear must not emit delete events")
	}
}
