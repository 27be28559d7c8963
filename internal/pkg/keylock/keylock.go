// Package keylock provides a table of per-key mutual exclusion scopes.
// Waiters are bounded by their context, so a busy key yields ErrTimeout instead of blocking forever.
package keylock

import (
	"context"
	"sync"
	"time"

	"appointment-scheduler/internal/pkg/errs"
)

var ErrTimeout = errs.New("keylock: acquisition timed out")

type Table struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	sem  chan struct{}
	refs int
}

func New() *Table {
	return &Table{entries: make(map[string]*entry)}
}

// Acquire blocks until key is free or ctx is done. The returned release func is idempotent.
func (t *Table) Acquire(ctx context.Context, key string) (func(), error) {
	e := t.ref(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		t.unref(key, e)
		return nil, errs.Mark(errs.Wrapf(ctx.Err(), "waiting for %s", key), ErrTimeout)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			t.unref(key, e)
		})
	}, nil
}

// AcquireWithin is Acquire bounded by timeout; timeout <= 0 falls back to ctx alone.
func (t *Table) AcquireWithin(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		return t.Acquire(ctx, key)
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return t.Acquire(waitCtx, key)
}

// Len reports keys currently held or waited on.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *Table) ref(key string) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		t.entries[key] = e
	}
	e.refs++
	return e
}

func (t *Table) unref(key string, e *entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(t.entries, key)
	}
}
