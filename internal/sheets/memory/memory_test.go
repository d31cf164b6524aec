package memory

import (
	"context"
	"testing"

	"parksmart/internal/core"
)

func TestAppendAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.SpendRecord{ID: "spend_1", CarparkName: "A", Cost: 2.5})
	if err != nil || ref != "mem:1" {
		t.Fatalf("append: ref=%q err=%v", ref, err)
	}
	s.Append(ctx, core.SpendRecord{ID: "spend_2", CarparkName: "B", Cost: 3})

	if err := s.Delete(ctx, "spend_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records := s.Records()
	if len(records) != 1 || records[0].ID != "spend_2" {
		t.Fatalf("unexpected records %+v", records)
	}

	// Unknown id is a no-op.
	if err := s.Delete(ctx, "spend_404"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if len(s.Records()) != 1 {
		t.Fatalf("no-op delete must not change records")
	}
}
