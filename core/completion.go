package core

import (
	"context"
	"sync"
)

// Stage is a state of the file pipeline. Stages only ever move forward.
type Stage int

const (
	StagePending Stage = iota
	StageLoading
	StageDecoding
	StageTransforming
	StageEncoding
	StageResolved
	StageRejected
)

var stageNames = [...]string{
	StagePending:      "pending",
	StageLoading:      "loading",
	StageDecoding:     "decoding",
	StageTransforming: "transforming",
	StageEncoding:     "encoding",
	StageResolved:     "resolved",
	StageRejected:     "rejected",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Terminal reports whether s is Resolved or Rejected.
func (s Stage) Terminal() bool { return s == StageResolved || s == StageRejected }

// Completion is the one-shot outcome of a single file-pipeline invocation.
// It settles exactly once, either resolved with encoded bytes or rejected
// with a stage-tagged error, and is never reused.
type Completion struct {
	id string

	mu    sync.Mutex
	stage Stage

	once   sync.Once
	done   chan struct{}
	result []byte
	err    error
}

// newCompletion returns a pending Completion.
func newCompletion(id string) *Completion {
	return &Completion{id: id, done: make(chan struct{})}
}

// ID identifies the invocation in logs.
func (c *Completion) ID() string { return c.id }

// Stage returns the current state.
func (c *Completion) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// Done is closed once the Completion settles.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Wait blocks until the Completion settles or ctx is done. Cancelling ctx
// only stops the wait; the pipeline itself keeps running.
func (c *Completion) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-c.done:
		return c.result, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the rejection error, or nil while pending or when resolved.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// advance moves to a non-terminal stage. It reports false, leaving the state
// unchanged, if s is terminal or does not come after the current stage.
func (c *Completion) advance(s Stage) bool {
	if s.Terminal() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage.Terminal() || s <= c.stage {
		return false
	}
	c.stage = s
	return true
}

// resolve settles the Completion with data. Only the first settle wins.
func (c *Completion) resolve(data []byte) bool {
	return c.settle(StageResolved, data, nil)
}

// reject settles the Completion with err. Only the first settle wins.
func (c *Completion) reject(err error) bool {
	return c.settle(StageRejected, nil, err)
}

func (c *Completion) settle(s Stage, data []byte, err error) bool {
	settled := false
	c.once.Do(func() {
		c.mu.Lock()
		c.stage = s
		c.mu.Unlock()
		c.result, c.err = data, err
		close(c.done)
		settled = true
	})
	return settled
}
