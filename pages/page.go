// Package pages owns the per-page load state machine:
// Idle -> Loading -> {Ready | Failed}, re-entering Loading on every trigger
// (manual refresh, scheduled refresh, first request). Each load carries a
// generation number; a newer load supersedes an older in-flight one, whose
// completion is discarded so a stale response can never overwrite the view.
package pages

import (
	"context"
	"log"
	"sync"
	"time"
)

// Status is the page load state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// View is a point-in-time snapshot of a page's state.
type View[T any] struct {
	Data      T
	Status    Status
	Err       string
	UpdatedAt time.Time
}

// Page holds one page's working data and drives its loads.
type Page[T any] struct {
	name string
	load func(ctx context.Context) (T, error)

	mu      sync.Mutex
	status  Status
	gen     uint64
	data    T
	lastErr string
	updated time.Time
	cancel  context.CancelFunc
}

// New creates an idle page around a load function.
func New[T any](name string, load func(ctx context.Context) (T, error)) *Page[T] {
	return &Page[T]{name: name, load: load, status: StatusIdle}
}

// Load runs one load cycle synchronously. Starting a load cancels any load
// already in flight; if this load is itself superseded before it completes,
// its result is discarded and Load returns nil.
func (p *Page[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.status = StatusLoading
	p.mu.Unlock()

	data, err := p.load(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		// Superseded while in flight; a newer load owns the state now.
		return nil
	}
	// Release this load's registration on the parent context.
	cancel()
	p.cancel = nil
	p.updated = time.Now()
	if err != nil {
		var zero T
		p.data = zero
		p.status = StatusFailed
		p.lastErr = err.Error()
		return err
	}
	p.data = data
	p.status = StatusReady
	p.lastErr = ""
	return nil
}

// View returns the current state. The data is shared, not deep-copied;
// mutators must replace slices rather than edit them in place.
func (p *Page[T]) View() View[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return View[T]{
		Data:      p.data,
		Status:    p.status,
		Err:       p.lastErr,
		UpdatedAt: p.updated,
	}
}

// Mutate applies a session-scoped edit to the working data. Edits only
// apply when the page is Ready and are lost on the next load.
func (p *Page[T]) Mutate(fn func(*T)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != StatusReady {
		return false
	}
	fn(&p.data)
	return true
}

// Run drives fixed-interval auto-refresh until ctx is done. It reuses the
// same load path as a manual refresh.
func (p *Page[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Load(ctx); err != nil {
				log.Printf("%s page refresh failed: %v", p.name, err)
			}
		}
	}
}
