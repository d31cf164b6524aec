package cache

import (
	"testing"
	"time"
)

func TestManagerCleansExpiredEntries(t *testing.T) {
	c := NewLRUCache[int](4, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)

	m := NewManager()
	m.Register(c)
	m.StartCleanup(5 * time.Millisecond)
	defer m.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for c.Size() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := c.Size(); got != 0 {
		t.Errorf("Size() = %d, want 0 after cleanup sweep", got)
	}
}

func TestManagerStopTerminatesCleanup(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[int](2, time.Minute))
	m.StartCleanup(time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return")
	}
}
