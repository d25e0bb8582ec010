// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

import (
	"context"
)

// A ReadFunc is the row-producing algorithm behind a [Source]. Each call
// performs one bounded unit of work and returns a [ReadResult]: a chunk of
// rows, counters for the rows and bytes consumed to produce it, or the
// terminal result (empty chunk, zero counters) once no data remains. Any
// state the algorithm needs between calls is expected to be carried by
// specifying the ReadFunc as a [function literal] that references and
// therefore captures local variables via [lexical closure].
//
// A Source calls its ReadFunc at most once at a time, but when asynchronous
// reading is enabled the call happens on a worker goroutine, so a ReadFunc
// must not assume it runs on the goroutine driving the Source. Access to
// captured variables is safe as long as they are touched only inside the
// ReadFunc: the source's handoff protocol orders each call after the
// previous one completed.
//
// The provided context is cancelled when the source is cancelled or closed.
// Cancellation is a best-effort interrupt: a ReadFunc that ignores it still
// works, it just delays teardown until the current call returns. A ReadFunc
// that fails should return a non-nil error rather than panic; panics on a
// worker goroutine are recovered and reported as errors wrapping
// [ErrReadPanic], but lose their stack by the time the driver sees them.
//
// [function literal]: https://go.dev/ref/spec#Function_literals
// [lexical closure]: https://en.wikipedia.org/wiki/Closure_(computer_programming)
type ReadFunc[T any] func(context.Context) (ReadResult[T], error)
