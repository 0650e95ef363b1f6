package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestCollectorRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpTurn, 10*time.Millisecond)
	c.RecordTiming(OpTurn, 30*time.Millisecond)
	c.RecordError(OpTurn)

	snap := c.Snapshot()
	op, ok := snap.Operations[OpTurn]
	if !ok {
		t.Fatal("turn operation missing from snapshot")
	}
	if op.Count != 2 {
		t.Errorf("Count = %d, want 2", op.Count)
	}
	if op.Errors != 1 {
		t.Errorf("Errors = %d, want 1", op.Errors)
	}
	if op.MinTimeMs != 10 || op.MaxTimeMs != 30 {
		t.Errorf("Min/Max = %d/%d, want 10/30", op.MinTimeMs, op.MaxTimeMs)
	}
	if op.AvgTimeMs != 20 {
		t.Errorf("AvgTimeMs = %v, want 20", op.AvgTimeMs)
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()
	if len(snap.Operations) != 0 {
		t.Errorf("expected empty operations, got %v", snap.Operations)
	}
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordTiming(OpSearch, time.Millisecond)
			_ = c.Snapshot()
		}()
	}
	wg.Wait()

	if got := c.Snapshot().Operations[OpSearch].Count; got != 20 {
		t.Errorf("Count = %d, want 20", got)
	}
}
