// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

import (
	"sync/atomic"

	"github.com/shumlol/rowsource/internal/wakeup"
)

// Stage identifies where an asynchronous read cycle is in its lifecycle.
// The only legal transition sequence is NotStarted -> InProgress ->
// Finished -> NotStarted -> and so on, one full lap per background read.
type Stage int32

const (
	// StageNotStarted means no read is in flight and none has a pending
	// result.
	StageNotStarted Stage = iota
	// StageInProgress means a read is running on a worker goroutine.
	StageInProgress
	// StageFinished means a read has completed and its result or error is
	// waiting to be collected.
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageNotStarted:
		return "NotStarted"
	case StageInProgress:
		return "InProgress"
	case StageFinished:
		return "Finished"
	default:
		return "InvalidStage"
	}
}

// control is the synchronization nucleus shared between an [AsyncCycle] and
// the one background job it has in flight. The cycle side calls start and
// takeResult; the job side calls setResult or setError, exactly once per
// episode. The atomic stage together with the wakeup signal's
// close-then-observe ordering is the only synchronization guarding the
// result slots; no lock is involved.
//
// Invariant:
//   - only the job side moves InProgress -> Finished
//   - only the cycle side moves NotStarted -> InProgress and
//     Finished -> NotStarted
//   - result and err are written at most once per episode, and never both
//
// A call that finds the stage in any state its precondition forbids is a
// defect in the orchestration logic, not a runtime condition, and panics.
type control[T any] struct {
	stage  atomic.Int32
	ready  *wakeup.Signal
	result ReadResult[T]
	err    error
}

func newControl[T any]() *control[T] {
	return &control[T]{ready: wakeup.New()}
}

func (c *control[T]) loadStage() Stage {
	return Stage(c.stage.Load())
}

// start arms the signal and moves the stage to InProgress, returning the
// control for the job closure to capture. Cycle side only.
func (c *control[T]) start() *control[T] {
	if s := c.loadStage(); s != StageNotStarted {
		panic("read cycle started in stage " + s.String())
	}
	c.ready.Arm()
	c.stage.Store(int32(StageInProgress))
	return c
}

// setResult stores the job's result and publishes completion. Job side
// only, at most once per episode.
func (c *control[T]) setResult(result ReadResult[T]) {
	if s := c.loadStage(); s != StageInProgress {
		panic("read result delivered in stage " + s.String())
	}
	c.result = result
	c.finish()
}

// setError stores the job's failure and publishes completion. Job side
// only, at most once per episode.
func (c *control[T]) setError(err error) {
	if s := c.loadStage(); s != StageInProgress {
		panic("read error delivered in stage " + s.String())
	}
	c.err = err
	c.finish()
}

func (c *control[T]) finish() {
	c.stage.Store(int32(StageFinished))
	c.ready.Notify()
}

// takeResult consumes the completed episode and resets the stage for the
// next one, returning the stored result or the error exactly as the job
// captured it. Cycle side only. The wait on the signal pairs with the
// job's notify, ordering the slot reads after the job's writes.
func (c *control[T]) takeResult() (ReadResult[T], error) {
	if s := c.loadStage(); s != StageFinished {
		panic("read result taken in stage " + s.String())
	}
	c.ready.Wait()
	c.stage.Store(int32(StageNotStarted))
	result, err := c.result, c.err
	c.result, c.err = ReadResult[T]{}, nil
	return result, err
}
