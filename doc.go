// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package rowsource implements the pull-facing side of a streaming data
// source: a node that a pipeline driver repeatedly asks either to produce a
// chunk of rows right away or to run the read on a background worker while
// the driver multiplexes on a readiness channel alongside its other work.
// The node wraps an arbitrary row-producing read function that yields chunks
// of rows plus counters for rows and bytes consumed from the underlying
// storage.
//
// The heart of the package is the handoff between the goroutine that drives
// a [Source] and the worker goroutine running its read. A shared control
// block carries an atomic stage tag, a single result-or-error slot, and a
// wakeup signal; the worker publishes exactly one result per cycle and the
// driver consumes it exactly once, with no lock guarding the slot. The same
// discipline makes teardown safe: [Source.Close] returns only after an
// in-flight read has signalled completion, so a driver can free the
// resources a read was scanning without racing it.
//
// Sources speak the same pull contract whether reads run synchronously or
// asynchronously. Construction chooses the strategy: a nil [Runner] keeps
// every read inside [Source.TryGenerate], while a non-nil Runner (for
// example a [WorkerPool]) moves reads off the driver's goroutine and turns
// [Source.Prepare] into a non-blocking poll.
package rowsource
