package audio

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func testChunk(id string) Chunk {
	return Chunk{ID: id, Samples: make([]float32, 16), SampleRate: DefaultSampleRate, Captured: time.Now()}
}

func TestParseQueuePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    QueuePolicy
		wantErr bool
	}{
		{"unbounded", PolicyUnbounded, false},
		{"block", PolicyBlock, false},
		{"drop_oldest", PolicyDropOldest, false},
		{"", PolicyUnbounded, false},
		{"bogus", "", true},
	}

	for _, tt := range tests {
		got, err := ParseQueuePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseQueuePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseQueuePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChunkQueueFIFO(t *testing.T) {
	q, err := NewChunkQueue(PolicyUnbounded, 0)
	if err != nil {
		t.Fatalf("NewChunkQueue failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		q.Enqueue(context.Background(), testChunk(fmt.Sprintf("c%d", i)))
	}

	if q.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", q.Len())
	}

	for i := 0; i < 10; i++ {
		c, ok := q.Dequeue(100 * time.Millisecond)
		if !ok {
			t.Fatalf("Dequeue() returned empty at index %d", i)
		}
		want := fmt.Sprintf("c%d", i)
		if c.ID != want {
			t.Errorf("Dequeue() chunk ID = %q, want %q", c.ID, want)
		}
	}

	if q.Len() != 0 {
		t.Errorf("Len() after draining = %d, want 0", q.Len())
	}
}

func TestChunkQueueDequeueTimeout(t *testing.T) {
	q, _ := NewChunkQueue(PolicyUnbounded, 0)

	start := time.Now()
	_, ok := q.Dequeue(50 * time.Millisecond)
	elapsed := time.Since(start)

	if ok {
		t.Error("Dequeue() on empty queue should report empty")
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("Dequeue() returned after %v, should wait close to the bound", elapsed)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("Dequeue() waited %v, should respect the bound", elapsed)
	}
}

func TestChunkQueueDequeueTimeoutTinyWaits(t *testing.T) {
	q, _ := NewChunkQueue(PolicyUnbounded, 0)

	// Sub-millisecond waits make the timer fire while the consumer is
	// still between its empty check and the cond wait. A wakeup lost in
	// that window leaves Dequeue blocked with nothing left to wake it.
	for i := 0; i < 200; i++ {
		start := time.Now()
		if _, ok := q.Dequeue(time.Microsecond); ok {
			t.Fatal("Dequeue() on an empty queue reported a chunk")
		}
		if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
			t.Fatalf("Dequeue(1µs) took %v, timer wakeup lost", elapsed)
		}
	}
}

func TestChunkQueueDequeueWakesOnEnqueue(t *testing.T) {
	q, _ := NewChunkQueue(PolicyUnbounded, 0)

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.Enqueue(context.Background(), testChunk("late"))
	}()

	c, ok := q.Dequeue(time.Second)
	if !ok {
		t.Fatal("Dequeue() should return the chunk enqueued during the wait")
	}
	if c.ID != "late" {
		t.Errorf("Dequeue() chunk ID = %q, want %q", c.ID, "late")
	}
}

func TestChunkQueueDropOldest(t *testing.T) {
	q, err := NewChunkQueue(PolicyDropOldest, 3)
	if err != nil {
		t.Fatalf("NewChunkQueue failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		q.Enqueue(context.Background(), testChunk(fmt.Sprintf("c%d", i)))
	}

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	if q.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", q.Dropped())
	}

	// The head must be the oldest surviving chunk, not the newest.
	c, ok := q.Dequeue(10 * time.Millisecond)
	if !ok {
		t.Fatal("Dequeue() returned empty")
	}
	if c.ID != "c2" {
		t.Errorf("Dequeue() chunk ID = %q, want %q", c.ID, "c2")
	}
}

func TestChunkQueueBlockPolicy(t *testing.T) {
	q, err := NewChunkQueue(PolicyBlock, 1)
	if err != nil {
		t.Fatalf("NewChunkQueue failed: %v", err)
	}

	q.Enqueue(context.Background(), testChunk("first"))

	var wg sync.WaitGroup
	enqueued := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Enqueue(context.Background(), testChunk("second")) // blocks until the consumer makes room
		close(enqueued)
	}()

	select {
	case <-enqueued:
		t.Fatal("Enqueue() on a full blocking queue should not return before a Dequeue")
	case <-time.After(50 * time.Millisecond):
	}

	c, ok := q.Dequeue(time.Second)
	if !ok || c.ID != "first" {
		t.Fatalf("Dequeue() = (%q, %v), want (first, true)", c.ID, ok)
	}

	select {
	case <-enqueued:
	case <-time.After(time.Second):
		t.Fatal("Enqueue() should complete once room is available")
	}
	wg.Wait()

	if q.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0 under block policy", q.Dropped())
	}
}

func TestChunkQueueEnqueueReleasedByCancel(t *testing.T) {
	q, err := NewChunkQueue(PolicyBlock, 1)
	if err != nil {
		t.Fatalf("NewChunkQueue failed: %v", err)
	}
	q.Enqueue(context.Background(), testChunk("first"))

	ctx, cancel := context.WithCancel(context.Background())
	returned := make(chan struct{})
	go func() {
		q.Enqueue(ctx, testChunk("second"))
		close(returned)
	}()

	select {
	case <-returned:
		t.Fatal("Enqueue() on a full blocking queue should not return before cancellation")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Enqueue() should return once its context is cancelled")
	}

	// The cancelled chunk must not have been admitted.
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestChunkQueueCloseReleasesWaiters(t *testing.T) {
	q, _ := NewChunkQueue(PolicyUnbounded, 0)

	done := make(chan struct{})
	go func() {
		q.Dequeue(10 * time.Second)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close() should release a blocked Dequeue")
	}
}

func TestNewChunkQueueValidation(t *testing.T) {
	if _, err := NewChunkQueue(PolicyBlock, 0); err == nil {
		t.Error("NewChunkQueue(block, 0) should fail")
	}
	if _, err := NewChunkQueue(PolicyDropOldest, -1); err == nil {
		t.Error("NewChunkQueue(drop_oldest, -1) should fail")
	}
	if _, err := NewChunkQueue(PolicyUnbounded, 0); err != nil {
		t.Errorf("NewChunkQueue(unbounded, 0) failed: %v", err)
	}
}
