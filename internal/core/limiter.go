package core

// limiter.go bounds how many catalog files are read at once.
//
// The limiter uses a semaphore pattern: Acquire blocks until a slot is free,
// the context is cancelled, or the optional wait limit expires with
// ErrLimiterBusy.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLimiterBusy is returned when no slot frees up within the wait limit.
var ErrLimiterBusy = errors.New("all read slots busy, wait limit exceeded")

// DefaultMaxConcurrentReads is the default limit for parallel file reads.
const DefaultMaxConcurrentReads = 4

// ReadLimiter controls concurrent catalog reads using a semaphore pattern.
type ReadLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewReadLimiter creates a limiter that allows at most maxConcurrent
// simultaneous reads. A maxWait of zero waits until the context ends.
func NewReadLimiter(maxConcurrent int, maxWait time.Duration) *ReadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentReads
	}

	return &ReadLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a read slot.
// The caller MUST call Release() when the read completes (use defer).
func (l *ReadLimiter) Acquire(ctx context.Context) error {
	waitCtx := ctx
	if l.maxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.maxWait)
		defer cancel()
	}

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		// Check if original context was cancelled vs timeout
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrLimiterBusy
	}
}

// Release releases a previously acquired slot.
// Must be called exactly once for each successful Acquire.
func (l *ReadLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of reads holding a slot.
func (l *ReadLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the maximum allowed concurrent reads.
func (l *ReadLimiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// Available returns the number of free slots.
func (l *ReadLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}
