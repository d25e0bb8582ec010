// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

import (
	"context"
	"sync/atomic"
)

// Status is a source's answer to [Source.Prepare], telling the pipeline
// driver how to proceed with the node.
type Status int

const (
	// StatusReady means the driver should call [Source.TryGenerate] now.
	StatusReady Status = iota
	// StatusAsync means a background read is in flight; the driver should
	// wait on the channel returned by [Source.Schedule] and come back once
	// it fires.
	StatusAsync
	// StatusFinished means the source will produce no more chunks and may
	// be torn down.
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusAsync:
		return "Async"
	case StatusFinished:
		return "Finished"
	default:
		return "InvalidStatus"
	}
}

// A Source adapts a row-producing [ReadFunc] to the pull contract a
// streaming pipeline driver speaks: [Source.Prepare] to learn the node's
// state, [Source.TryGenerate] to obtain a chunk, [Source.Schedule] to
// obtain a waitable handle while a background read is in flight, and
// [Source.OnCancel] to abort the node.
//
// Construction chooses the reading strategy. With a nil [Runner] every read
// runs synchronously inside TryGenerate and Prepare never reports
// [StatusAsync]. With a non-nil Runner each read is handed to a worker
// goroutine and the driver multiplexes on Schedule instead of blocking.
// The contract observed by the driver is identical either way.
//
// A Source is not thread-safe: the pull-contract methods must be called
// from one goroutine at a time. OnCancel and Progress are the exceptions
// and may be called from any goroutine.
type Source[T any] struct {
	read   ReadFunc[T]
	cycle  *AsyncCycle[T] // nil when reading synchronously
	ctx    context.Context
	cancel context.CancelFunc

	finished bool
	closed   bool

	totalRows  atomic.Uint64
	totalBytes atomic.Uint64
	progressFn func(rowsRead, bytesRead uint64)
}

// NewSource creates a source over read. The context bounds every read the
// source issues; cancelling it has the same effect as [Source.OnCancel]. A
// nil runner selects the synchronous strategy.
//
// Each call to NewSource should typically be paired with a deferred call
// to [Source.Close] so that tearing the node down joins any read still in
// flight.
func NewSource[T any](ctx context.Context, read ReadFunc[T], runner Runner) *Source[T] {
	if read == nil {
		panic("read function must be non-nil")
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Source[T]{
		read:   read,
		ctx:    ctx,
		cancel: cancel,
	}
	if runner != nil {
		s.cycle = NewAsyncCycle[T](runner)
	}
	return s
}

// SetProgressFunc installs a callback invoked with the row and byte deltas
// of every read that consumed data, including reads that produced no
// output rows. It must be called before the first Prepare and the callback
// runs on the goroutine driving the source.
func (s *Source[T]) SetProgressFunc(fn func(rowsRead, bytesRead uint64)) {
	s.progressFn = fn
}

// Progress returns the total rows and bytes read over the source's
// lifetime. The totals are monotonically non-decreasing and include reads
// that produced no output rows. Thread-safe.
func (s *Source[T]) Progress() (rowsRead, bytesRead uint64) {
	return s.totalRows.Load(), s.totalBytes.Load()
}

// Prepare reports how the driver should proceed: call TryGenerate now
// (Ready), wait on Schedule (Async), or stop (Finished).
func (s *Source[T]) Prepare() Status {
	if s.cycle == nil {
		return s.prepareSync()
	}

	// The cancellation check must come before reporting Async. A cancelled
	// source with a read conceptually in flight would otherwise tell the
	// driver to wait on a readiness handle whose result it will never
	// collect, and the driver would wait forever.
	if s.ctx.Err() != nil {
		s.finished = true
		return StatusFinished
	}

	if s.cycle.Stage() == StageInProgress {
		return StatusAsync
	}

	return s.prepareSync()
}

func (s *Source[T]) prepareSync() Status {
	if s.finished || s.ctx.Err() != nil {
		s.finished = true
		return StatusFinished
	}
	return StatusReady
}

// TryGenerate produces the next chunk. An empty chunk with a nil error is
// not by itself end of stream: it means either that a background read was
// just launched or that a read consumed data without producing rows. The
// driver should call Prepare again and act on its answer; Prepare reports
// Finished once the stream has ended. A non-nil error terminates the
// source, and a failure captured on a worker goroutine is surfaced here,
// so the driver sees one failure surface regardless of strategy.
//
// TryGenerate is only meaningful after Prepare reported Ready.
func (s *Source[T]) TryGenerate() ([]T, error) {
	if s.closed {
		panic("TryGenerate on closed source")
	}

	if s.cycle != nil {
		switch stage := s.cycle.Stage(); stage {
		case StageFinished:
			result, err := s.cycle.Collect()
			if err != nil {
				s.finished = true
				return nil, err
			}
			return s.deliver(result), nil
		case StageInProgress:
			panic("TryGenerate while a read is in flight")
		}

		s.cycle.Launch(s.ctx, s.read)
		return nil, nil
	}

	result, err := s.read(s.ctx)
	if err != nil {
		s.finished = true
		return nil, err
	}
	return s.deliver(result), nil
}

// deliver reports progress and decides whether result ends the stream.
// Progress is accounted before the chunk is inspected so that reads with
// counters but no rows still show up in throughput accounting.
func (s *Source[T]) deliver(result ReadResult[T]) []T {
	if result.RowsRead != 0 || result.BytesRead != 0 {
		s.totalRows.Add(result.RowsRead)
		s.totalBytes.Add(result.BytesRead)
		if s.progressFn != nil {
			s.progressFn(result.RowsRead, result.BytesRead)
		}
	}
	if result.EndOfStream() {
		s.finished = true
		return nil
	}
	return result.Chunk
}

// Schedule returns the handle the driver waits on after Prepare reported
// Async. It fires once the in-flight read has completed; the driver then
// resumes calling Prepare and TryGenerate. Only meaningful while a read is
// in flight, and panics on a source constructed without a runner.
func (s *Source[T]) Schedule() <-chan struct{} {
	if s.cycle == nil {
		panic("Schedule on a synchronous source")
	}
	return s.cycle.Ready()
}

// OnCancel asks the source to stop. The context passed to the underlying
// read is cancelled as a best-effort interrupt, and the next Prepare
// reports Finished. A read already in flight is not forcibly stopped; its
// result is discarded when the source is closed. Thread-safe and
// idempotent.
func (s *Source[T]) OnCancel() {
	s.cancel()
}

// Close cancels the source and joins any in-flight background read,
// returning only after that read has signalled completion. Resources the
// read was scanning may be freed once Close returns. Calling Close again
// returns [ErrSourceClosed].
func (s *Source[T]) Close() error {
	if s.closed {
		return ErrSourceClosed
	}
	s.closed = true
	s.cancel()
	if s.cycle != nil {
		s.cycle.Close()
	}
	return nil
}
