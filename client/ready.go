package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/APWine/apwine-sdk/types"
)

// ReadyState is the readiness gate's explicit state machine. It starts
// Pending and transitions exactly once, to Ready or Failed.
type ReadyState uint8

const (
	Pending ReadyState = iota
	Ready
	Failed
)

func (s ReadyState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("readystate(%d)", uint8(s))
	}
}

// readyGate is a one-shot future with an inspectable state. Waiters block on
// the done channel; the first transition wins and later ones are ignored.
type readyGate struct {
	mu    sync.Mutex
	state ReadyState
	err   error
	done  chan struct{}
}

func newReadyGate() *readyGate {
	return &readyGate{done: make(chan struct{})}
}

func (g *readyGate) succeed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Pending {
		return
	}
	g.state = Ready
	close(g.done)
}

func (g *readyGate) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Pending {
		return
	}
	g.state = Failed
	g.err = err
	close(g.done)
}

// snapshot returns the current state and, for Failed, the initialization error.
func (g *readyGate) snapshot() (ReadyState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, g.err
}

// await blocks until the gate resolves or ctx expires.
func (g *readyGate) await(ctx context.Context) error {
	select {
	case <-g.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	state, err := g.snapshot()
	if state == Failed {
		return fmt.Errorf("%w: %w", types.ErrInitializationFailed, err)
	}
	return nil
}

// guard returns the error an operation should fail with when it needs a
// resolved session: ErrNotInitialized while Pending, the initialization
// failure after Failed, nil once Ready.
func (g *readyGate) guard() error {
	state, err := g.snapshot()
	switch state {
	case Ready:
		return nil
	case Failed:
		return fmt.Errorf("%w: %w", types.ErrInitializationFailed, err)
	default:
		return types.ErrNotInitialized
	}
}
