package console

import (
	"sync"
	"testing"
	"time"
)

func TestAppendCoalescesConsecutiveIdentical(t *testing.T) {
	b := NewBuffer(100)

	b.Append(LevelError, "boom", "ctx")
	b.Append(LevelError, "boom", "ctx")
	b.Append(LevelError, "boom", "ctx")

	snap := b.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 coalesced entry, got %d", len(snap))
	}
	if snap[0].Count != 3 {
		t.Errorf("expected repeat count 3, got %d", snap[0].Count)
	}
	if snap[0].Level != LevelError || snap[0].Message != "boom" || snap[0].Context != "ctx" {
		t.Errorf("unexpected entry contents: %+v", snap[0])
	}
}

func TestAppendOnlyMergesWithTail(t *testing.T) {
	b := NewBuffer(100)

	b.Append(LevelWarning, "x", "")
	b.Append(LevelError, "boom", "")
	b.Append(LevelWarning, "x", "")

	snap := b.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 separate entries, got %d", len(snap))
	}
	for i, e := range snap {
		if e.Count != 1 {
			t.Errorf("entry %d: expected count 1, got %d", i, e.Count)
		}
	}
}

func TestAppendDistinguishesLevelAndContext(t *testing.T) {
	b := NewBuffer(100)

	b.Append(LevelInfo, "msg", "a")
	b.Append(LevelInfo, "msg", "b")
	b.Append(LevelWarning, "msg", "b")

	if got := b.Len(); got != 3 {
		t.Errorf("expected 3 entries (differing context/level), got %d", got)
	}
}

func TestEvictionKeepsNewest(t *testing.T) {
	b := NewBuffer(2)

	b.Append(LevelInfo, "one", "")
	b.Append(LevelInfo, "two", "")
	b.Append(LevelInfo, "three", "")

	snap := b.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries after eviction, got %d", len(snap))
	}
	if snap[0].Message != "two" || snap[1].Message != "three" {
		t.Errorf("expected [two three], got [%s %s]", snap[0].Message, snap[1].Message)
	}
}

func TestPausedDropsEvents(t *testing.T) {
	b := NewBuffer(100)
	b.Append(LevelInfo, "before", "")

	b.SetPaused(true)
	b.Append(LevelInfo, "during", "")
	b.Append(LevelError, "during too", "")
	if got := b.Len(); got != 1 {
		t.Fatalf("expected paused appends to be dropped, len=%d", got)
	}

	// Unpausing does not replay dropped events.
	b.SetPaused(false)
	snap := b.Snapshot()
	if len(snap) != 1 || snap[0].Message != "before" {
		t.Errorf("expected only the pre-pause entry, got %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewBuffer(100)
	b.Append(LevelInfo, "one", "")

	snap := b.Snapshot()
	snap[0].Message = "mutated"

	if got := b.Snapshot()[0].Message; got != "one" {
		t.Errorf("snapshot mutation leaked into the buffer: %q", got)
	}
}

func TestClear(t *testing.T) {
	b := NewBuffer(100)
	b.Append(LevelInfo, "one", "")
	b.Append(LevelInfo, "two", "")

	b.Clear()
	if b.Len() != 0 {
		t.Errorf("expected empty buffer after Clear, len=%d", b.Len())
	}
}

func TestEntryTimestampUsesClock(t *testing.T) {
	b := NewBuffer(100)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	b.Append(LevelInfo, "one", "")
	if got := b.Snapshot()[0].Time; !got.Equal(fixed) {
		t.Errorf("expected timestamp %v, got %v", fixed, got)
	}
}

func TestConcurrentAppendAndSnapshot(t *testing.T) {
	const max = 200
	b := NewBuffer(max)

	stop := make(chan struct{})
	readerDone := make(chan struct{})

	// Reader drains snapshots while writers hammer Append. The bound
	// must hold at every observation and no entry may be torn.
	go func() {
		defer close(readerDone)
		for {
			select {
			case <-stop:
				return
			default:
			}
			snap := b.Snapshot()
			if len(snap) > max {
				t.Errorf("snapshot length %d exceeds maximum %d", len(snap), max)
				return
			}
			for _, e := range snap {
				if e.Count < 1 {
					t.Errorf("torn entry observed: %+v", e)
					return
				}
				if e.Message == "" {
					t.Errorf("empty message observed: %+v", e)
					return
				}
			}
		}
	}()

	var writers sync.WaitGroup
	for w := 0; w < 4; w++ {
		writers.Add(1)
		go func(w int) {
			defer writers.Done()
			messages := []string{"alpha", "beta", "gamma"}
			for i := 0; i < 2000; i++ {
				b.Append(Level(i%3), messages[(i+w)%3], "ctx")
			}
		}(w)
	}

	writers.Wait()
	close(stop)
	<-readerDone

	if b.Len() > max {
		t.Errorf("final length %d exceeds maximum %d", b.Len(), max)
	}
}
