// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

// A ReadResult is the unit of output from one invocation of a [ReadFunc]: a
// chunk of rows plus counters for the rows and bytes newly consumed from
// the underlying storage to produce it. A result may carry zero rows with
// nonzero counters, meaning the read made progress without producing output
// yet; long scans with selective filters report throughput this way.
type ReadResult[T any] struct {
	Chunk     []T
	RowsRead  uint64
	BytesRead uint64
}

// EndOfStream reports whether the result is the terminal marker: an empty
// chunk with both counters zero.
func (r ReadResult[T]) EndOfStream() bool {
	return len(r.Chunk) == 0 && r.RowsRead == 0 && r.BytesRead == 0
}
