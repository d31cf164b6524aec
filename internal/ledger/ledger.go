// Package ledger keeps the personal spend log: an append-only,
// newest-first collection of completed parking sessions persisted
// through the kv port, with aggregation queries for the analytics
// views. Every operation re-reads the persisted collection, so each
// call reflects the latest committed state.
package ledger

import (
	"encoding/json"
	"sync"
	"time"

	"parksmart/internal/core"
	"parksmart/internal/kv"
)

// StorageKey is the fixed key the serialized collection lives under.
const StorageKey = "parksmart_spend_log"

// Subscriber receives the complete updated collection synchronously
// after every committed mutation, so it never needs a follow-up read.
type Subscriber func(records []core.SpendRecord)

// Ledger owns the persisted spend collection. Single writer, single
// reader: concurrent mutation from two logical callers is out of scope
// and last write wins.
type Ledger struct {
	store kv.Store
	key   string
	now   func() time.Time

	subMu   sync.Mutex // guards the subscriber registry only
	subs    map[int]Subscriber
	nextSub int
}

func New(store kv.Store) *Ledger {
	return &Ledger{
		store: store,
		key:   StorageKey,
		subs:  make(map[int]Subscriber),
		now:   time.Now,
	}
}

// Subscribe registers a callback for mutation broadcasts and returns
// its cancel function. Delivery is synchronous and in-process.
func (l *Ledger) Subscribe(fn Subscriber) (cancel func()) {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		delete(l.subs, id)
	}
}

// Records returns the full collection, newest first. Corrupt or
// missing persisted data degrades to an empty collection, never an
// error.
func (l *Ledger) Records() []core.SpendRecord {
	raw, ok, err := l.store.Get(l.key)
	if err != nil || !ok {
		return nil
	}
	var records []core.SpendRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil
	}
	return records
}

// Find returns the record with the given id.
func (l *Ledger) Find(id string) (core.SpendRecord, bool) {
	for _, r := range l.Records() {
		if r.ID == id {
			return r, true
		}
	}
	return core.SpendRecord{}, false
}

// Append normalizes the record (rounded cost and duration, derived id,
// display defaults), inserts it at the front, persists, and notifies
// subscribers. The returned record is the normalized form.
func (l *Ledger) Append(rec core.SpendRecord) (core.SpendRecord, error) {
	entry := core.NewSpendRecord(rec.CarparkName, rec.CarparkID, rec.Agency,
		rec.Cost, rec.DurationHours, rec.ParkedAt, rec.EndedAt)
	entry.Lat, entry.Lng = rec.Lat, rec.Lng

	records := append([]core.SpendRecord{entry}, l.Records()...)
	if err := l.persist(records); err != nil {
		return core.SpendRecord{}, err
	}
	l.notify(records)
	return entry, nil
}

// Remove deletes the record with the given id. Removing an unknown id
// is a no-op that still persists and notifies with the unchanged
// collection.
func (l *Ledger) Remove(id string) error {
	records := l.Records()
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if err := l.persist(kept); err != nil {
		return err
	}
	l.notify(kept)
	return nil
}

// Clear deletes the whole history.
func (l *Ledger) Clear() error {
	if err := l.store.Remove(l.key); err != nil {
		return err
	}
	l.notify(nil)
	return nil
}

func (l *Ledger) persist(records []core.SpendRecord) error {
	if records == nil {
		records = []core.SpendRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return l.store.Set(l.key, string(raw))
}

func (l *Ledger) notify(records []core.SpendRecord) {
	l.subMu.Lock()
	subs := make([]Subscriber, 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.subMu.Unlock()
	for _, fn := range subs {
		fn(records)
	}
}
