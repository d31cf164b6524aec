// Package memory is the in-process stand-in for the sheet backup,
// used by tests and by deployments without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"parksmart/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.SpendRecord
}

func New() *Store {
	return &Store{}
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, rec core.SpendRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rec)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Delete removes the record with the given id; unknown ids are a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, r := range s.items {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.items = kept
	return nil
}

// Records returns a copy of everything appended so far.
func (s *Store) Records() []core.SpendRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SpendRecord(nil), s.items...)
}
