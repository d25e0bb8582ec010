// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

import (
	"context"
	"fmt"
)

// An AsyncCycle runs one background read at a time on behalf of a [Source],
// handing each result back across the goroutine boundary through a shared
// control block. It exists so that a pipeline driver can keep its own
// goroutine free while a read is in flight, multiplexing on
// [AsyncCycle.Ready] alongside its other readiness sources.
//
// An AsyncCycle is not thread-safe. Stage, Launch, Collect, and Close must
// all be called from the single goroutine that drives the owning Source;
// the background job communicates only through the control block it
// captured at launch.
type AsyncCycle[T any] struct {
	runner  Runner
	control *control[T]
	closed  bool
}

// NewAsyncCycle creates a cycle that submits its background jobs to runner.
func NewAsyncCycle[T any](runner Runner) *AsyncCycle[T] {
	if runner == nil {
		panic("runner must be non-nil")
	}
	return &AsyncCycle[T]{
		runner:  runner,
		control: newControl[T](),
	}
}

// Stage reports where the current read cycle is. It has no side effects.
func (a *AsyncCycle[T]) Stage() Stage {
	return a.control.loadStage()
}

// Ready returns the channel a driver should include in its select while
// Stage reports InProgress. It becomes ready once the in-flight job has
// delivered its result or error; receiving from it does not consume the
// readiness, so it stays ready until the result is collected.
func (a *AsyncCycle[T]) Ready() <-chan struct{} {
	return a.control.ready.Done()
}

// Launch starts body on a worker goroutine. The stage must be NotStarted.
// Launch never blocks; the outcome becomes available through
// [AsyncCycle.Collect] once [AsyncCycle.Ready] fires.
//
// The job closure captures its own reference to the control block, so a
// Source torn down mid-flight cannot leave the job publishing into state
// the close path has already abandoned; see [AsyncCycle.Close].
func (a *AsyncCycle[T]) Launch(ctx context.Context, body ReadFunc[T]) {
	if a.closed {
		panic("launch on closed cycle")
	}
	c := a.control.start()
	a.runner.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				c.setError(fmt.Errorf("%w: %v", ErrReadPanic, r))
			}
		}()
		result, err := body(ctx)
		if err != nil {
			c.setError(err)
			return
		}
		c.setResult(result)
	})
}

// Collect consumes the finished job's outcome, surfacing on the calling
// goroutine any failure the job captured. The stage must be Finished.
func (a *AsyncCycle[T]) Collect() (ReadResult[T], error) {
	return a.control.takeResult()
}

// Close joins any in-flight job and retires the cycle. If a job is in
// flight its eventual result is discarded, but Close returns only after
// the job has signalled completion, so the caller may free resources the
// job's read was scanning. Close is terminal: launching on a closed cycle
// panics. Calling Close again has no effect.
func (a *AsyncCycle[T]) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.control.loadStage() == StageInProgress {
		a.control.ready.Wait()
	}
}
