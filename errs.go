// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrReadPanic wraps a panic recovered from a read running on a worker
// goroutine. The panic value is carried in the error message and the error
// surfaces from [Source.TryGenerate] on the driving goroutine.
const ErrReadPanic = constError("read panicked")

// ErrSourceClosed is returned by [Source.Close] when the source was already
// closed.
const ErrSourceClosed = constError("source closed")
