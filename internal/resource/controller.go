// Package resource implements the list/mutate/refresh pattern shared
// by the feed, challenge and badge collections: an authorized view of
// a server-owned collection that is re-fetched after every local
// mutation instead of patched optimistically. Participant counts,
// vote tallies and badge status are server-computed, so a local patch
// could display states the server never produced.
package resource

import (
	"context"
	"errors"
	"sync"
)

// Phase is the controller lifecycle state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// ErrBusy is returned when a mutation is requested while a previous
// one is still in flight.
var ErrBusy = errors.New("operation already in progress")

// ListFunc fetches the collection's current server state.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// Controller maintains a snapshot of one server-owned collection.
type Controller[T any] struct {
	mu      sync.Mutex
	list    ListFunc[T]
	items   []T
	phase   Phase
	lastErr error

	// seq numbers refresh requests; only the latest one may publish
	// its result, so a late response never clobbers a newer snapshot.
	seq  uint64
	busy bool
}

func NewController[T any](list ListFunc[T]) *Controller[T] {
	return &Controller[T]{list: list, phase: PhaseIdle}
}

// Items returns the current snapshot.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Phase returns the controller's lifecycle state.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LastError returns the captured error while the phase is error.
func (c *Controller[T]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Refresh fetches the collection and replaces the snapshot, keeping
// server order. On failure the previous snapshot stays intact. A
// refresh issued while another is in flight supersedes it: only the
// most recent request's result is applied.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.phase = PhaseLoading
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	items, err := c.list(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// Superseded by a newer refresh.
		return nil
	}
	if err != nil {
		c.phase = PhaseError
		c.lastErr = err
		return err
	}
	c.items = items
	c.phase = PhaseReady
	c.lastErr = nil
	return nil
}

// do runs a mutation and, only on success, refreshes the collection
// so the snapshot reflects the mutation's server-side effect. The
// mutation is complete once the refresh has been applied, not merely
// once the write succeeded. Concurrent mutations are rejected with
// ErrBusy.
func (c *Controller[T]) do(ctx context.Context, action func(context.Context) error) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if err := action(ctx); err != nil {
		return err
	}
	return c.Refresh(ctx)
}
