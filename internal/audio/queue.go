// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     audio
// Description: Chunk queue between capture and processing
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-12
// License:     MIT
// ============================================================================

package audio

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// QueuePolicy controls what happens when transcription falls behind capture.
type QueuePolicy string

const (
	// PolicyUnbounded lets the queue grow without limit.
	PolicyUnbounded QueuePolicy = "unbounded"

	// PolicyBlock bounds the queue and blocks the producer when full.
	PolicyBlock QueuePolicy = "block"

	// PolicyDropOldest bounds the queue and discards the oldest chunk
	// to make room for the newest.
	PolicyDropOldest QueuePolicy = "drop_oldest"
)

// ParseQueuePolicy parses a policy name from configuration.
func ParseQueuePolicy(s string) (QueuePolicy, error) {
	switch QueuePolicy(s) {
	case PolicyUnbounded, PolicyBlock, PolicyDropOldest:
		return QueuePolicy(s), nil
	case "":
		return PolicyUnbounded, nil
	default:
		return "", fmt.Errorf("unknown queue policy %q", s)
	}
}

// ChunkQueue is an order-preserving queue of audio chunks with a single
// producer and a single consumer. Enqueue never fails; under the unbounded
// policy it never blocks either. Dequeue waits a bounded time so the
// consumer can re-check for cancellation.
type ChunkQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	items    []Chunk
	capacity int // 0 = unbounded
	policy   QueuePolicy
	closed   bool
	dropped  uint64
}

// NewChunkQueue creates a queue with the given policy. capacity is ignored
// for PolicyUnbounded and must be positive otherwise.
func NewChunkQueue(policy QueuePolicy, capacity int) (*ChunkQueue, error) {
	if policy != PolicyUnbounded && capacity <= 0 {
		return nil, fmt.Errorf("queue policy %q requires positive capacity, got %d", policy, capacity)
	}
	if policy == PolicyUnbounded {
		capacity = 0
	}

	q := &ChunkQueue{
		capacity: capacity,
		policy:   policy,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// Enqueue adds a chunk to the tail of the queue. Under PolicyBlock it waits
// until the consumer makes room, the queue closes, or ctx is cancelled; the
// other policies return immediately.
func (q *ChunkQueue) Enqueue(ctx context.Context, c Chunk) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	if q.capacity > 0 && len(q.items) >= q.capacity {
		switch q.policy {
		case PolicyBlock:
			stop := context.AfterFunc(ctx, func() {
				// Holding the lock here guarantees the broadcast cannot
				// slip in between the wait loop's check and its Wait.
				q.mu.Lock()
				defer q.mu.Unlock()
				q.notFull.Broadcast()
			})
			defer stop()
			for len(q.items) >= q.capacity && !q.closed && ctx.Err() == nil {
				q.notFull.Wait()
			}
			if q.closed || ctx.Err() != nil {
				return
			}
		case PolicyDropOldest:
			q.items = q.items[1:]
			q.dropped++
		}
	}

	q.items = append(q.items, c)
	q.notEmpty.Signal()
}

// Dequeue removes and returns the head of the queue, waiting at most wait
// for a chunk to arrive. The boolean is false when the wait expired or the
// queue was closed while empty.
func (q *ChunkQueue) Dequeue(wait time.Duration) (Chunk, bool) {
	deadline := time.Now().Add(wait)

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed {
			return Chunk{}, false
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Chunk{}, false
		}
		// sync.Cond has no timed wait; a timer broadcast bounds it. The
		// callback takes the lock so it cannot fire between this check
		// and the Wait below.
		t := time.AfterFunc(remaining, func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			q.notEmpty.Broadcast()
		})
		q.notEmpty.Wait()
		t.Stop()
	}

	c := q.items[0]
	q.items = q.items[1:]
	q.notFull.Signal()
	return c, true
}

// Close releases any waiting producer or consumer. Chunks already queued
// can still be dequeued.
func (q *ChunkQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the number of queued chunks.
func (q *ChunkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dropped returns how many chunks PolicyDropOldest discarded.
func (q *ChunkQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
