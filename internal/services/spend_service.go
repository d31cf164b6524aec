// Package services orchestrates the ledger against the sync pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"parksmart/internal/core"
	"parksmart/internal/ledger"
)

// SyncPublisher emits spend mutation events for the backup worker.
// *amqp.Client satisfies it; tests use a fake.
type SyncPublisher interface {
	PublishSpendSync(ctx context.Context, id string) error
	PublishSpendDelete(ctx context.Context, id string) error
}

// SpendService couples ledger writes with best-effort sync events. The
// local write always wins: a publish failure is logged, never returned.
type SpendService struct {
	ledger    *ledger.Ledger
	publisher SyncPublisher
}

func NewSpendService(l *ledger.Ledger, publisher SyncPublisher) *SpendService {
	return &SpendService{ledger: l, publisher: publisher}
}

// Log appends a completed session to the ledger and emits a sync event.
func (s *SpendService) Log(ctx context.Context, rec core.SpendRecord) (core.SpendRecord, error) {
	entry, err := s.ledger.Append(rec)
	if err != nil {
		return core.SpendRecord{}, fmt.Errorf("append spend record: %w", err)
	}

	if err := s.publishSync(ctx, entry.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", entry.ID, "error", err)
		// Don't fail the request - the record is saved locally.
	}

	return entry, nil
}

// Delete removes a record from the ledger and emits a delete event.
func (s *SpendService) Delete(ctx context.Context, id string) error {
	if err := s.ledger.Remove(id); err != nil {
		return fmt.Errorf("remove spend record: %w", err)
	}

	if err := s.publishDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
	}

	return nil
}

// Clear wipes the whole history. No sync event: the backup sheet keeps
// its copy deliberately, since clearing is a local reset.
func (s *SpendService) Clear(ctx context.Context) error {
	if err := s.ledger.Clear(); err != nil {
		return fmt.Errorf("clear spend history: %w", err)
	}
	return nil
}

func (s *SpendService) publishSync(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishSpendSync(ctx, id)
}

func (s *SpendService) publishDelete(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping delete message")
		return nil
	}
	return s.publisher.PublishSpendDelete(ctx, id)
}
